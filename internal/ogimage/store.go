// Package ogimage derives social preview image URLs from a small set of visual
// parameters and keeps them in sync with the query string and page meta tags.
package ogimage

import (
	"sync"

	"github.com/roboco-io/ogpreview/internal/signal"
)

// Params is a snapshot of the visual parameters.
type Params struct {
	Ratio     string `json:"ratio" yaml:"ratio"`
	Size      int    `json:"size" yaml:"size"`
	BgColor   string `json:"bg" yaml:"bg"`
	TextColor string `json:"color" yaml:"color"`
	Text      string `json:"text,omitempty" yaml:"text,omitempty"`
	Font      string `json:"font,omitempty" yaml:"font,omitempty"`
}

// DefaultParams returns the built-in defaults.
func DefaultParams() Params {
	return Params{
		Ratio:     "16:9",
		Size:      1080,
		BgColor:   "4285f4",
		TextColor: "ffffff",
		Text:      "",
		Font:      "arial",
	}
}

// Change is the set of fields modified by one mutation or batch.
type Change struct {
	Fields FieldSet
}

// Store holds the parameters as independently observable fields.
// Assign through the fields' Set methods; every change is reported to
// OnChange listeners, once per Batch when mutations are batched.
type Store struct {
	Ratio     *signal.Signal[string]
	Size      *signal.Signal[int]
	BgColor   *signal.Signal[string]
	TextColor *signal.Signal[string]
	Text      *signal.Signal[string]
	Font      *signal.Signal[string]

	mu        sync.Mutex
	batching  int
	pending   FieldSet
	nextID    int
	listeners []changeListener
}

type changeListener struct {
	id int
	fn func(Change)
}

// NewStore creates a store initialised to p.
func NewStore(p Params) *Store {
	s := &Store{
		Ratio:     signal.New(p.Ratio),
		Size:      signal.New(p.Size),
		BgColor:   signal.New(p.BgColor),
		TextColor: signal.New(p.TextColor),
		Text:      signal.New(p.Text),
		Font:      signal.New(p.Font),
	}

	s.Ratio.Subscribe(func(_, _ string) { s.changed(FieldRatio) })
	s.Size.Subscribe(func(_, _ int) { s.changed(FieldSize) })
	s.BgColor.Subscribe(func(_, _ string) { s.changed(FieldBgColor) })
	s.TextColor.Subscribe(func(_, _ string) { s.changed(FieldTextColor) })
	s.Text.Subscribe(func(_, _ string) { s.changed(FieldText) })
	s.Font.Subscribe(func(_, _ string) { s.changed(FieldFont) })

	return s
}

// Params returns a snapshot of the current values.
func (s *Store) Params() Params {
	return Params{
		Ratio:     s.Ratio.Get(),
		Size:      s.Size.Get(),
		BgColor:   s.BgColor.Get(),
		TextColor: s.TextColor.Get(),
		Text:      s.Text.Get(),
		Font:      s.Font.Get(),
	}
}

// Apply assigns every field of p in a single batch.
func (s *Store) Apply(p Params) {
	s.Batch(func() {
		s.Ratio.Set(p.Ratio)
		s.Size.Set(p.Size)
		s.BgColor.Set(p.BgColor)
		s.TextColor.Set(p.TextColor)
		s.Text.Set(p.Text)
		s.Font.Set(p.Font)
	})
}

// Batch runs fn and coalesces the changes it makes into one notification.
// Batches nest; listeners run when the outermost batch ends.
func (s *Store) Batch(fn func()) {
	s.mu.Lock()
	s.batching++
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.batching--
		var change Change
		if s.batching == 0 {
			change.Fields = s.pending
			s.pending = 0
		}
		s.mu.Unlock()

		if change.Fields != 0 {
			s.notify(change)
		}
	}()

	fn()
}

// OnChange registers fn for change notifications and returns a func that removes it.
func (s *Store) OnChange(fn func(Change)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.listeners = append(s.listeners, changeListener{id: id, fn: fn})

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, l := range s.listeners {
			if l.id == id {
				s.listeners = append(s.listeners[:i], s.listeners[i+1:]...)
				return
			}
		}
	}
}

func (s *Store) changed(f Field) {
	s.mu.Lock()
	if s.batching > 0 {
		s.pending |= FieldSet(f)
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	s.notify(Change{Fields: FieldSet(f)})
}

func (s *Store) notify(c Change) {
	s.mu.Lock()
	listeners := make([]changeListener, len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	for _, l := range listeners {
		l.fn(c)
	}
}
