package ogimage

import (
	"fmt"
	"strings"
)

// Field identifies one configurable parameter of the preview image.
type Field uint8

const (
	FieldRatio Field = 1 << iota
	FieldSize
	FieldBgColor
	FieldTextColor
	FieldText
	FieldFont
)

var fieldNames = []struct {
	field Field
	name  string
}{
	{FieldRatio, "ratio"},
	{FieldSize, "size"},
	{FieldBgColor, "bg"},
	{FieldTextColor, "color"},
	{FieldText, "text"},
	{FieldFont, "font"},
}

// String returns the query parameter name of the field.
func (f Field) String() string {
	for _, fn := range fieldNames {
		if fn.field == f {
			return fn.name
		}
	}
	return "unknown"
}

// FieldSet is a set of fields.
type FieldSet uint8

const (
	// BaseFields are the fields every mode carries.
	BaseFields = FieldSet(FieldRatio | FieldSize | FieldBgColor | FieldTextColor)
	// TextFields adds the overlay text and font.
	TextFields = BaseFields | FieldSet(FieldText|FieldFont)
	// SizeFields is the narrow ratio/size set.
	SizeFields = FieldSet(FieldRatio | FieldSize)
)

// Fields builds a set from individual fields.
func Fields(fs ...Field) FieldSet {
	var set FieldSet
	for _, f := range fs {
		set |= FieldSet(f)
	}
	return set
}

// Has reports whether f is in the set.
func (s FieldSet) Has(f Field) bool {
	return s&FieldSet(f) != 0
}

// Intersects reports whether the sets share any field.
func (s FieldSet) Intersects(other FieldSet) bool {
	return s&other != 0
}

// String returns the comma-separated field names.
func (s FieldSet) String() string {
	names := s.Names()
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, ",")
}

// Names returns the field names in canonical order.
func (s FieldSet) Names() []string {
	var names []string
	for _, fn := range fieldNames {
		if s.Has(fn.field) {
			names = append(names, fn.name)
		}
	}
	return names
}

// ParseFieldSet parses field names such as "ratio", "size", "bg".
func ParseFieldSet(names []string) (FieldSet, error) {
	var set FieldSet
	for _, name := range names {
		name = strings.TrimSpace(strings.ToLower(name))
		if name == "" {
			continue
		}
		found := false
		for _, fn := range fieldNames {
			if fn.name == name {
				set |= FieldSet(fn.field)
				found = true
				break
			}
		}
		if !found {
			return 0, fmt.Errorf("unknown field: %s", name)
		}
	}
	return set, nil
}

// Mode describes the capabilities of a Preview.
type Mode struct {
	// Preload loads the derived image before meta tags are written.
	Preload bool
	// Fields are the parameters carried in the query string and image URL.
	Fields FieldSet
	// Triggers are the fields whose changes start a synchronization pass.
	Triggers FieldSet
}

// ClassicMode preloads the image and syncs on any of the four base fields.
func ClassicMode() Mode {
	return Mode{
		Preload:  true,
		Fields:   BaseFields,
		Triggers: BaseFields,
	}
}

// TextMode carries overlay text and font, writes meta tags without preloading,
// and syncs on any carried field.
func TextMode() Mode {
	return Mode{
		Preload:  false,
		Fields:   TextFields,
		Triggers: TextFields,
	}
}

// LegacyTextMode is TextMode with only ratio and size triggering a sync.
// Text, color and font edits reach the URL and meta tags only on the next
// ratio/size change or an explicit Sync.
func LegacyTextMode() Mode {
	m := TextMode()
	m.Triggers = SizeFields
	return m
}

// Validate checks that the mode is usable.
func (m Mode) Validate() error {
	if !m.Fields.Has(FieldRatio) || !m.Fields.Has(FieldSize) {
		return fmt.Errorf("mode must carry ratio and size, got %s", m.Fields)
	}
	if m.Triggers&^m.Fields != 0 {
		return fmt.Errorf("triggers %s are not carried by fields %s", m.Triggers&^m.Fields, m.Fields)
	}
	return nil
}
