package ogimage

import (
	"errors"
	"fmt"
	"math"
	"net/url"
	"strings"
)

// DefaultService is the image generation host.
const DefaultService = "dummyimage.com"

// ErrInvalidRatio is returned when a ratio is not two positive integers joined by ':'.
var ErrInvalidRatio = errors.New("invalid ratio")

// Dimensions is a pixel size.
type Dimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// String returns "WxH".
func (d Dimensions) String() string {
	return fmt.Sprintf("%dx%d", d.Width, d.Height)
}

// ComputeDimensions derives the pixel size from a "W:H" ratio and the long edge.
// Landscape ratios fix the width to size; portrait and square ones fix the height.
func ComputeDimensions(ratio string, size int) (Dimensions, error) {
	w, h, err := ParseRatio(ratio)
	if err != nil {
		return Dimensions{}, err
	}

	if w > h {
		return Dimensions{
			Width:  size,
			Height: int(math.Round(float64(size) * (float64(h) / float64(w)))),
		}, nil
	}
	return Dimensions{
		Width:  int(math.Round(float64(size) * (float64(w) / float64(h)))),
		Height: size,
	}, nil
}

// ParseRatio splits "W:H" into its parts. Each part is parsed like ParseInt.
func ParseRatio(ratio string) (w, h int, err error) {
	left, right, ok := strings.Cut(ratio, ":")
	if !ok {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidRatio, ratio)
	}
	w, okW := ParseInt(left)
	h, okH := ParseInt(right)
	if !okW || !okH || w <= 0 || h <= 0 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidRatio, ratio)
	}
	return w, h, nil
}

// ParseInt reads a base-10 integer prefix: optional leading spaces, an optional
// sign, then at least one digit. Trailing characters are ignored ("12px" is 12).
func ParseInt(s string) (int, bool) {
	s = strings.TrimLeft(s, " \t\n\r\f\v")
	neg := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		s = s[1:]
	}

	n, digits := 0, 0
	for digits < len(s) && s[digits] >= '0' && s[digits] <= '9' {
		if n > (math.MaxInt-9)/10 {
			return 0, false
		}
		n = n*10 + int(s[digits]-'0')
		digits++
	}
	if digits == 0 {
		return 0, false
	}
	if neg {
		n = -n
	}
	return n, true
}

// BuildImageURL derives the remote image URL for p.
// Text is appended only when the fields include FieldText and it is non-empty.
func BuildImageURL(service string, p Params, fields FieldSet) string {
	if service == "" {
		service = DefaultService
	}
	u := fmt.Sprintf("https://%s/%sx%d/%s/%s", service, p.Ratio, p.Size, p.BgColor, p.TextColor)
	if fields.Has(FieldText) && p.Text != "" {
		u += "&text=" + EscapeComponent(p.Text)
	}
	return u
}

// EscapeComponent percent-encodes s for use inside a URL component.
// Spaces become %20.
func EscapeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// UnescapeComponent reverses EscapeComponent. Invalid escapes yield s unchanged.
func UnescapeComponent(s string) string {
	out, err := url.PathUnescape(s)
	if err != nil {
		return s
	}
	return out
}
