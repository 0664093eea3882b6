package ogimage

import (
	"net/url"
	"testing"
)

func TestDecode(t *testing.T) {
	q, _ := url.ParseQuery("ratio=4:3&size=800&bg=ff0000&color=000000")
	s := NewStore(DefaultParams())

	Decode(q, s, BaseFields)

	p := s.Params()
	if p.Ratio != "4:3" {
		t.Errorf("expected ratio '4:3', got %s", p.Ratio)
	}
	if p.Size != 800 {
		t.Errorf("expected size 800, got %d", p.Size)
	}
	if p.BgColor != "ff0000" {
		t.Errorf("expected bg 'ff0000', got %s", p.BgColor)
	}
	if p.TextColor != "000000" {
		t.Errorf("expected color '000000', got %s", p.TextColor)
	}

	dims, err := ComputeDimensions(p.Ratio, p.Size)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dims != (Dimensions{800, 600}) {
		t.Errorf("expected 800x600, got %v", dims)
	}
}

func TestDecode_StripsHash(t *testing.T) {
	q, _ := url.ParseQuery("bg=%23ff0000&color=%23abc")
	s := NewStore(DefaultParams())

	Decode(q, s, BaseFields)

	if s.BgColor.Get() != "ff0000" {
		t.Errorf("expected bg 'ff0000', got %s", s.BgColor.Get())
	}
	if s.TextColor.Get() != "abc" {
		t.Errorf("expected color 'abc', got %s", s.TextColor.Get())
	}
}

func TestDecode_IgnoresMalformed(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{"non-numeric size", "size=abc"},
		{"empty values", "ratio=&size=&bg=&color=&text=&font="},
		{"absent keys", "other=1"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			q, _ := url.ParseQuery(tc.query)
			s := NewStore(DefaultParams())

			Decode(q, s, TextFields)

			if s.Params() != DefaultParams() {
				t.Errorf("expected defaults to survive, got %+v", s.Params())
			}
		})
	}
}

func TestDecode_KeepsLastGoodSize(t *testing.T) {
	s := NewStore(DefaultParams())

	q, _ := url.ParseQuery("size=640")
	Decode(q, s, BaseFields)

	q, _ = url.ParseQuery("size=abc")
	Decode(q, s, BaseFields)

	if s.Size.Get() != 640 {
		t.Errorf("expected size to stay 640, got %d", s.Size.Get())
	}
}

func TestDecode_TextFieldsOnlyInTextMode(t *testing.T) {
	q, _ := url.ParseQuery("text=Hello%2520World&font=roboto")

	classic := NewStore(DefaultParams())
	Decode(q, classic, BaseFields)
	if classic.Text.Get() != "" || classic.Font.Get() != "arial" {
		t.Errorf("expected classic fields to ignore text/font, got %q/%q", classic.Text.Get(), classic.Font.Get())
	}

	text := NewStore(DefaultParams())
	Decode(q, text, TextFields)
	if text.Text.Get() != "Hello World" {
		t.Errorf("expected decoded text 'Hello World', got %q", text.Text.Get())
	}
	if text.Font.Get() != "roboto" {
		t.Errorf("expected font 'roboto', got %q", text.Font.Get())
	}
}

func TestDecode_SingleBatch(t *testing.T) {
	q, _ := url.ParseQuery("ratio=4:3&size=800&bg=ff0000")
	s := NewStore(DefaultParams())

	var changes []Change
	s.OnChange(func(c Change) { changes = append(changes, c) })

	Decode(q, s, BaseFields)

	if len(changes) != 1 {
		t.Fatalf("expected 1 change notification, got %d", len(changes))
	}
	want := Fields(FieldRatio, FieldSize, FieldBgColor)
	if changes[0].Fields != want {
		t.Errorf("expected fields %s, got %s", want, changes[0].Fields)
	}
}

func TestEncode(t *testing.T) {
	q := url.Values{"keep": {"me"}}
	p := DefaultParams()
	p.Text = "Hello World"

	Encode(q, p, TextFields)

	expected := map[string]string{
		"ratio": "16:9",
		"size":  "1080",
		"bg":    "4285f4",
		"color": "ffffff",
		"text":  "Hello%20World",
		"font":  "arial",
		"keep":  "me",
	}
	for k, v := range expected {
		if q.Get(k) != v {
			t.Errorf("expected %s=%q, got %q", k, v, q.Get(k))
		}
	}

	p.Text = ""
	Encode(q, p, TextFields)
	if _, ok := q["text"]; ok {
		t.Error("expected empty text to remove the text key")
	}
}

func TestEncode_ClassicOmitsTextAndFont(t *testing.T) {
	q := url.Values{}
	p := DefaultParams()
	p.Text = "ignored"

	Encode(q, p, BaseFields)

	if len(q) != 4 {
		t.Errorf("expected 4 keys, got %d: %v", len(q), q)
	}
}

func TestDecodeEncode_RoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		fields FieldSet
		query  url.Values
	}{
		{
			name:   "classic",
			fields: BaseFields,
			query: url.Values{
				"ratio": {"9:16"}, "size": {"1350"}, "bg": {"000000"}, "color": {"ff00ff"},
			},
		},
		{
			name:   "text",
			fields: TextFields,
			query: url.Values{
				"ratio": {"1:1"}, "size": {"500"}, "bg": {"eeeeee"}, "color": {"111111"},
				"text": {"Hello%20World%21"}, "font": {"roboto"},
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := NewStore(DefaultParams())
			Decode(tc.query, s, tc.fields)

			out := url.Values{}
			Encode(out, s.Params(), tc.fields)

			if out.Encode() != tc.query.Encode() {
				t.Errorf("round trip mismatch:\n got  %s\n want %s", out.Encode(), tc.query.Encode())
			}
		})
	}
}
