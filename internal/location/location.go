// Package location models a browser location with a session history.
package location

import (
	"fmt"
	"net/url"
	"sync"
)

// Location holds the current URL and the history entries that led to it.
type Location struct {
	mu      sync.RWMutex
	entries []*url.URL
}

// New creates a location with a single history entry for href.
func New(href string) (*Location, error) {
	u, err := url.Parse(href)
	if err != nil {
		return nil, fmt.Errorf("failed to parse location: %w", err)
	}
	return &Location{entries: []*url.URL{u}}, nil
}

// FromURL creates a location from an already parsed URL.
func FromURL(u *url.URL) *Location {
	c := *u
	return &Location{entries: []*url.URL{&c}}
}

// Href returns the current URL.
func (l *Location) Href() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.current().String()
}

// URL returns a copy of the current URL.
func (l *Location) URL() *url.URL {
	l.mu.RLock()
	defer l.mu.RUnlock()
	c := *l.current()
	return &c
}

// Query returns a copy of the current query parameters.
func (l *Location) Query() url.Values {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.current().Query()
}

// RawQuery returns the encoded query string without the leading '?'.
func (l *Location) RawQuery() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.current().RawQuery
}

// ReplaceQuery rewrites the current entry's query. No entry is added.
func (l *Location) ReplaceQuery(q url.Values) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	c := *l.current()
	c.RawQuery = q.Encode()
	l.entries[len(l.entries)-1] = &c
	return nil
}

// Push navigates to href, adding a history entry.
func (l *Location) Push(href string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	u, err := l.current().Parse(href)
	if err != nil {
		return fmt.Errorf("failed to parse location: %w", err)
	}
	l.entries = append(l.entries, u)
	return nil
}

// Len returns the number of history entries.
func (l *Location) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

func (l *Location) current() *url.URL {
	return l.entries[len(l.entries)-1]
}
