package ogimage

import (
	"context"
	"errors"
	"net/url"
)

// Meta element ids updated on every synchronization.
const (
	OGImageID      = "og-image"
	TwitterImageID = "twitter-image"
)

// ErrImageLoad is wrapped by ImageLoader implementations when the image cannot be loaded.
var ErrImageLoad = errors.New("image failed to load")

// QueryStore is the page's query string.
type QueryStore interface {
	// Query returns a copy of the current query parameters.
	Query() url.Values
	// ReplaceQuery rewrites the current URL's query in place without adding a history entry.
	ReplaceQuery(q url.Values) error
}

// Document looks up page elements by id.
type Document interface {
	ElementByID(id string) (Element, bool)
}

// Element is a page element with settable attributes.
type Element interface {
	SetAttribute(name, value string)
}

// ImageLoader fetches an image to check that it loads. Content is never inspected.
type ImageLoader interface {
	Load(ctx context.Context, imageURL string) error
}

// ImageLoaderFunc adapts a function to ImageLoader.
type ImageLoaderFunc func(ctx context.Context, imageURL string) error

// Load calls f.
func (f ImageLoaderFunc) Load(ctx context.Context, imageURL string) error {
	return f(ctx, imageURL)
}
