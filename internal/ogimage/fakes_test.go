package ogimage

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"net/url"
)

// memQuery is an in-memory query string that counts replacements.
type memQuery struct {
	values   url.Values
	replaced int
}

func newMemQuery(raw string) *memQuery {
	q, err := url.ParseQuery(raw)
	if err != nil {
		panic(err)
	}
	return &memQuery{values: q}
}

func (m *memQuery) Query() url.Values {
	out := make(url.Values, len(m.values))
	for k, v := range m.values {
		out[k] = append([]string(nil), v...)
	}
	return out
}

func (m *memQuery) ReplaceQuery(q url.Values) error {
	m.values = q
	m.replaced++
	return nil
}

// fakeElement records attribute writes.
type fakeElement struct {
	attrs map[string]string
}

func (e *fakeElement) SetAttribute(name, value string) {
	e.attrs[name] = value
}

// fakeDoc is a document holding the given element ids.
type fakeDoc struct {
	elements map[string]*fakeElement
}

func newFakeDoc(ids ...string) *fakeDoc {
	d := &fakeDoc{elements: make(map[string]*fakeElement)}
	for _, id := range ids {
		d.elements[id] = &fakeElement{attrs: make(map[string]string)}
	}
	return d
}

func (d *fakeDoc) ElementByID(id string) (Element, bool) {
	el, ok := d.elements[id]
	if !ok {
		return nil, false
	}
	return el, true
}

func (d *fakeDoc) content(id string) string {
	el, ok := d.elements[id]
	if !ok {
		return ""
	}
	return el.attrs["content"]
}

// mockLoader records loaded URLs and fails when err is set.
type mockLoader struct {
	urls []string
	err  error
	// during is called while the load is in flight.
	during func()
}

func (m *mockLoader) Load(ctx context.Context, imageURL string) error {
	m.urls = append(m.urls, imageURL)
	if m.during != nil {
		m.during()
	}
	if m.err != nil {
		return fmt.Errorf("%w: %v", ErrImageLoad, m.err)
	}
	return nil
}

func testLogger(buf *bytes.Buffer) *log.Logger {
	return log.New(buf, "", 0)
}
