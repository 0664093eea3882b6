package ogimage

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/roboco-io/ogpreview/internal/signal"
)

// Synchronizer pushes the derived image URL into the page meta tags and
// the current parameters back into the query string.
type Synchronizer struct {
	store   *Store
	mode    Mode
	service string
	query   QueryStore
	doc     Document
	loader  ImageLoader
	timeout time.Duration
	logger  *log.Logger

	// Loading is true while a preload is in flight.
	Loading *signal.Signal[bool]
	// ImageLoaded is true when the most recent preload succeeded.
	ImageLoaded *signal.Signal[bool]
}

// ImageURL derives the image URL from the current parameters.
func (s *Synchronizer) ImageURL() string {
	return BuildImageURL(s.service, s.store.Params(), s.mode.Fields)
}

// Dimensions derives the pixel size from the current ratio and size.
func (s *Synchronizer) Dimensions() (Dimensions, error) {
	return ComputeDimensions(s.store.Ratio.Get(), s.store.Size.Get())
}

// Preload loads imageURL and records the outcome in Loading and ImageLoaded.
// There is a single attempt; a configured timeout bounds it, otherwise only ctx does.
func (s *Synchronizer) Preload(ctx context.Context, imageURL string) error {
	s.Loading.Set(true)
	s.ImageLoaded.Set(false)

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	err := s.loader.Load(ctx, imageURL)
	s.Loading.Set(false)
	if err != nil {
		return fmt.Errorf("preload %s: %w", imageURL, err)
	}
	s.ImageLoaded.Set(true)
	return nil
}

// WriteMeta sets the content attribute of the og-image and twitter-image
// elements. Missing elements are skipped.
func (s *Synchronizer) WriteMeta(imageURL string) {
	if s.doc == nil {
		return
	}
	for _, id := range []string{OGImageID, TwitterImageID} {
		if el, ok := s.doc.ElementByID(id); ok {
			el.SetAttribute("content", imageURL)
		}
	}
}

// UpdateURL writes the current parameters into the query string in place.
func (s *Synchronizer) UpdateURL() error {
	q := s.query.Query()
	Encode(q, s.store.Params(), s.mode.Fields)
	if err := s.query.ReplaceQuery(q); err != nil {
		return fmt.Errorf("failed to replace query: %w", err)
	}
	return nil
}

// Sync runs one synchronization pass: preload (when the mode asks for it),
// meta tags, then the query string. A failed preload is logged and the
// meta tags still receive the derived URL.
func (s *Synchronizer) Sync(ctx context.Context) error {
	imageURL := s.ImageURL()

	if s.mode.Preload {
		if err := s.Preload(ctx, imageURL); err != nil {
			s.logger.Printf("image preload failed: %v", err)
		}
	}

	s.WriteMeta(imageURL)
	return s.UpdateURL()
}
