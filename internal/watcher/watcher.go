// Package watcher applies edits of a YAML controls file to a preview store.
package watcher

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/roboco-io/ogpreview/internal/ogimage"
	"gopkg.in/yaml.v3"
)

// DefaultDebounce is the quiet period before a changed file is re-read.
const DefaultDebounce = 200 * time.Millisecond

// Controls mirrors the UI controls. Absent keys leave the store untouched.
type Controls struct {
	Ratio     *string `yaml:"ratio,omitempty"`
	Size      *int    `yaml:"size,omitempty"`
	BgColor   *string `yaml:"bg,omitempty"`
	TextColor *string `yaml:"color,omitempty"`
	Text      *string `yaml:"text,omitempty"`
	Font      *string `yaml:"font,omitempty"`
}

// LoadControls reads a controls file.
func LoadControls(path string) (*Controls, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read controls file: %w", err)
	}

	var c Controls
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse controls file: %w", err)
	}
	return &c, nil
}

// ControlsFromParams returns controls holding every field of p.
func ControlsFromParams(p ogimage.Params) *Controls {
	return &Controls{
		Ratio:     &p.Ratio,
		Size:      &p.Size,
		BgColor:   &p.BgColor,
		TextColor: &p.TextColor,
		Text:      &p.Text,
		Font:      &p.Font,
	}
}

// Save writes the controls as YAML.
func (c *Controls) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal controls: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write controls file: %w", err)
	}
	return nil
}

// ApplyTo assigns the present controls to s in one batch.
func (c *Controls) ApplyTo(s *ogimage.Store) {
	s.Batch(func() {
		if c.Ratio != nil {
			s.Ratio.Set(*c.Ratio)
		}
		if c.Size != nil {
			s.Size.Set(*c.Size)
		}
		if c.BgColor != nil {
			s.BgColor.Set(strings.TrimPrefix(*c.BgColor, "#"))
		}
		if c.TextColor != nil {
			s.TextColor.Set(strings.TrimPrefix(*c.TextColor, "#"))
		}
		if c.Text != nil {
			s.Text.Set(*c.Text)
		}
		if c.Font != nil {
			s.Font.Set(*c.Font)
		}
	})
}

// Watcher monitors a controls file.
type Watcher struct {
	path     string
	store    *ogimage.Store
	watcher  *fsnotify.Watcher
	debounce time.Duration
	onApply  func(error)
	logger   *log.Logger
}

// Option customizes a Watcher.
type Option func(*Watcher)

// WithDebounce sets the quiet period before re-reading the file.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) { w.debounce = d }
}

// WithOnApply registers a callback run after each re-read, with the read error if any.
func WithOnApply(fn func(error)) Option {
	return func(w *Watcher) { w.onApply = fn }
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(w *Watcher) { w.logger = l }
}

// New creates a watcher for the controls file at path.
func New(path string, store *ogimage.Store, opts ...Option) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path: %w", err)
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	// Watch the directory so editors that replace the file are still seen.
	if err := fsWatcher.Add(filepath.Dir(abs)); err != nil {
		fsWatcher.Close()
		return nil, fmt.Errorf("failed to watch folder %s: %w", filepath.Dir(abs), err)
	}

	w := &Watcher{
		path:     abs,
		store:    store,
		watcher:  fsWatcher,
		debounce: DefaultDebounce,
		logger:   log.Default(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Path returns the watched file.
func (w *Watcher) Path() string {
	return w.path
}

// Apply reads the file once and applies it to the store.
func (w *Watcher) Apply() error {
	c, err := LoadControls(w.path)
	if err != nil {
		return err
	}
	c.ApplyTo(w.store)
	return nil
}

// Run processes file events until ctx is done. Store mutations happen on
// the calling goroutine.
func (w *Watcher) Run(ctx context.Context) error {
	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != filepath.Base(w.path) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}

			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Stop()
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			err := w.Apply()
			if err != nil {
				w.logger.Printf("Failed to apply controls: %v", err)
			}
			if w.onApply != nil {
				w.onApply(err)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Printf("Watcher error: %v", err)
		}
	}
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}
