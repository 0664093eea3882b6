package location

import (
	"net/url"
	"testing"
)

func TestNew(t *testing.T) {
	l, err := New("https://example.com/page?ratio=4:3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if l.Len() != 1 {
		t.Errorf("expected 1 history entry, got %d", l.Len())
	}
	if l.Query().Get("ratio") != "4:3" {
		t.Errorf("expected ratio '4:3', got %q", l.Query().Get("ratio"))
	}
}

func TestNew_Invalid(t *testing.T) {
	if _, err := New("http://[::1"); err == nil {
		t.Error("expected error for invalid URL")
	}
}

func TestReplaceQuery(t *testing.T) {
	l, _ := New("https://example.com/page?keep=1#frag")

	q := l.Query()
	q.Set("size", "800")
	if err := l.ReplaceQuery(q); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if l.Len() != 1 {
		t.Errorf("expected replace not to add history, got %d entries", l.Len())
	}
	if l.Href() != "https://example.com/page?keep=1&size=800#frag" {
		t.Errorf("unexpected href: %s", l.Href())
	}
}

func TestQueryIsCopy(t *testing.T) {
	l, _ := New("/?a=1")

	q := l.Query()
	q.Set("a", "2")

	if l.Query().Get("a") != "1" {
		t.Error("expected mutation of returned query not to leak into the location")
	}
}

func TestPush(t *testing.T) {
	l, _ := New("https://example.com/page?a=1")

	if err := l.Push("/other?b=2"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if l.Len() != 2 {
		t.Errorf("expected 2 entries, got %d", l.Len())
	}
	if l.Href() != "https://example.com/other?b=2" {
		t.Errorf("unexpected href: %s", l.Href())
	}
}

func TestFromURL(t *testing.T) {
	u, _ := url.Parse("/p?ratio=1:1")
	l := FromURL(u)

	u.RawQuery = "ratio=2:1"
	if l.RawQuery() != "ratio=1:1" {
		t.Errorf("expected location to keep its own copy, got %s", l.RawQuery())
	}
}
