// Package preload checks that a remote image can be fetched before it is published.
package preload

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/roboco-io/ogpreview/internal/ogimage"
)

// DefaultUserAgent identifies preload requests.
const DefaultUserAgent = "ogpreview/1.0"

// Config holds the configuration for the HTTP loader.
type Config struct {
	Client    *http.Client
	UserAgent string
}

// Loader fetches images over HTTP.
type Loader struct {
	client    *http.Client
	userAgent string
}

// New creates a new HTTP image loader.
func New(cfg Config) *Loader {
	client := cfg.Client
	if client == nil {
		client = &http.Client{}
	}
	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &Loader{
		client:    client,
		userAgent: userAgent,
	}
}

// Load requests imageURL and succeeds on a 2xx response whose content type,
// when present, is an image. The body is discarded.
func (l *Loader) Load(ctx context.Context, imageURL string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ogimage.ErrImageLoad, err)
	}
	req.Header.Set("User-Agent", l.userAgent)
	req.Header.Set("Accept", "image/*")

	resp, err := l.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ogimage.ErrImageLoad, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: status %d", ogimage.ErrImageLoad, resp.StatusCode)
	}

	if ct := resp.Header.Get("Content-Type"); ct != "" && !strings.HasPrefix(ct, "image/") {
		return fmt.Errorf("%w: unexpected content type %s", ogimage.ErrImageLoad, ct)
	}

	return nil
}
