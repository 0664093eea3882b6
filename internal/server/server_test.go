package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/roboco-io/ogpreview/internal/config"
	"github.com/roboco-io/ogpreview/internal/htmldoc"
	"github.com/roboco-io/ogpreview/internal/ogimage"
)

// mockLoader counts loads and optionally fails.
type mockLoader struct {
	calls int
	fail  bool
}

func (m *mockLoader) Load(ctx context.Context, imageURL string) error {
	m.calls++
	if m.fail {
		return ogimage.ErrImageLoad
	}
	return nil
}

func newTestServer(t *testing.T, cfg *config.Config, loader *mockLoader) (*Server, *bytes.Buffer) {
	t.Helper()
	var logs bytes.Buffer
	s, err := New(cfg, WithLoader(loader), WithLogger(log.New(&logs, "", 0)))
	if err != nil {
		t.Fatalf("failed to create server: %v", err)
	}
	return s, &logs
}

func TestHandlePage(t *testing.T) {
	loader := &mockLoader{}
	s, _ := newTestServer(t, config.DefaultConfig(), loader)

	req := httptest.NewRequest(http.MethodGet, "/?ratio=4:3&size=800&bg=%23ff0000&color=000000&utm=x", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	doc, err := htmldoc.Parse(rec.Body)
	if err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}

	want := "https://dummyimage.com/4:3x800/ff0000/000000"
	for _, id := range []string{ogimage.OGImageID, ogimage.TwitterImageID} {
		if v, _ := doc.Attribute(id, "content"); v != want {
			t.Errorf("%s: expected %s, got %s", id, want, v)
		}
	}

	loc, err := url.Parse(rec.Header().Get("Content-Location"))
	if err != nil {
		t.Fatalf("invalid Content-Location: %v", err)
	}
	q := loc.Query()
	if q.Get("bg") != "ff0000" || q.Get("utm") != "x" {
		t.Errorf("expected canonical query with bg=ff0000 and utm kept, got %s", loc.RawQuery)
	}
	if loader.calls != 1 {
		t.Errorf("expected 1 preload, got %d", loader.calls)
	}
}

func TestHandlePage_PreloadFailure(t *testing.T) {
	loader := &mockLoader{fail: true}
	s, logs := newTestServer(t, config.DefaultConfig(), loader)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 despite preload failure, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "https://dummyimage.com/16:9x1080/4285f4/ffffff") {
		t.Error("expected meta tags to carry the derived URL")
	}
	if !strings.Contains(logs.String(), "image preload failed") {
		t.Errorf("expected failure to be logged, got %q", logs.String())
	}
}

func TestHandlePage_NotFound(t *testing.T) {
	s, _ := newTestServer(t, config.DefaultConfig(), &mockLoader{})

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/other", nil))

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestHandleJSON(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Mode = "text"
	loader := &mockLoader{}
	s, _ := newTestServer(t, cfg, loader)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/preview.json?ratio=9:16&text=Hello%2520World", nil))

	var resp PreviewResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.ImageURL != "https://dummyimage.com/9:16x1080/4285f4/ffffff&text=Hello%20World" {
		t.Errorf("unexpected image URL: %s", resp.ImageURL)
	}
	if resp.Dimensions == nil || *resp.Dimensions != (ogimage.Dimensions{Width: 608, Height: 1080}) {
		t.Errorf("expected 608x1080, got %v", resp.Dimensions)
	}
	if resp.Params.Text != "Hello World" {
		t.Errorf("expected text 'Hello World', got %q", resp.Params.Text)
	}
	if resp.Preload || loader.calls != 0 {
		t.Error("expected text mode not to preload")
	}
}

func TestHandleJSON_InvalidRatio(t *testing.T) {
	s, _ := newTestServer(t, config.DefaultConfig(), &mockLoader{})

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/preview.json?ratio=wide", nil))

	var resp PreviewResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Dimensions != nil || resp.Error == "" {
		t.Errorf("expected dimension error, got %+v", resp)
	}
	if resp.ImageURL != "https://dummyimage.com/widex1080/4285f4/ffffff" {
		t.Errorf("expected raw ratio to pass through, got %s", resp.ImageURL)
	}
}

func TestHandleImage(t *testing.T) {
	loader := &mockLoader{}
	s, _ := newTestServer(t, config.DefaultConfig(), loader)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/image?size=500&ratio=1:1", nil))

	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "https://dummyimage.com/1:1x500/4285f4/ffffff" {
		t.Errorf("unexpected redirect: %s", loc)
	}
	if loader.calls != 0 {
		t.Error("expected redirect not to preload")
	}
}

func TestNew_Errors(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Mode = "unknown"
	if _, err := New(cfg); err == nil {
		t.Error("expected error for unknown mode")
	}

	cfg = config.DefaultConfig()
	cfg.Server.Page = "/nonexistent/page.html"
	if _, err := New(cfg); err == nil {
		t.Error("expected error for missing page template")
	}
}

func TestListenAndServe_Shutdown(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Server.Port = 0
	s, _ := newTestServer(t, cfg, &mockLoader{})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.ListenAndServe(ctx) }()
	cancel()

	if err := <-done; err != nil && !errors.Is(err, http.ErrServerClosed) {
		t.Errorf("unexpected error: %v", err)
	}
}
