package ogimage

import (
	"net/url"
	"strconv"
	"strings"
)

// Query parameter keys.
const (
	KeyRatio = "ratio"
	KeySize  = "size"
	KeyBg    = "bg"
	KeyColor = "color"
	KeyText  = "text"
	KeyFont  = "font"
)

// Decode copies recognized query parameters into the store.
// Absent, empty or unparseable values leave the current value in place.
// All assignments happen in one batch.
func Decode(q url.Values, s *Store, fields FieldSet) {
	s.Batch(func() {
		if v := q.Get(KeyRatio); v != "" {
			s.Ratio.Set(v)
		}
		if v := q.Get(KeySize); v != "" {
			if n, ok := ParseInt(v); ok {
				s.Size.Set(n)
			}
		}
		if v := q.Get(KeyBg); v != "" {
			s.BgColor.Set(stripHash(v))
		}
		if v := q.Get(KeyColor); v != "" {
			s.TextColor.Set(stripHash(v))
		}
		if fields.Has(FieldText) {
			if v := q.Get(KeyText); v != "" {
				s.Text.Set(UnescapeComponent(v))
			}
		}
		if fields.Has(FieldFont) {
			if v := q.Get(KeyFont); v != "" {
				s.Font.Set(v)
			}
		}
	})
}

// Encode writes p into q. Keys outside the recognized set are preserved.
// An empty text removes the text key.
func Encode(q url.Values, p Params, fields FieldSet) {
	q.Set(KeyRatio, p.Ratio)
	q.Set(KeySize, strconv.Itoa(p.Size))
	q.Set(KeyBg, p.BgColor)
	q.Set(KeyColor, p.TextColor)
	if fields.Has(FieldText) {
		if p.Text != "" {
			q.Set(KeyText, EscapeComponent(p.Text))
		} else {
			q.Del(KeyText)
		}
	}
	if fields.Has(FieldFont) {
		q.Set(KeyFont, p.Font)
	}
}

func stripHash(v string) string {
	return strings.TrimPrefix(v, "#")
}
