// Package server serves pages whose social preview meta tags follow the request query.
package server

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/roboco-io/ogpreview/internal/config"
	"github.com/roboco-io/ogpreview/internal/htmldoc"
	"github.com/roboco-io/ogpreview/internal/location"
	"github.com/roboco-io/ogpreview/internal/ogimage"
	"github.com/roboco-io/ogpreview/internal/preload"
)

//go:embed page.html
var defaultPage []byte

// Server renders preview pages.
type Server struct {
	cfg     *config.Config
	mode    ogimage.Mode
	page    []byte
	loader  ogimage.ImageLoader
	timeout time.Duration
	logger  *log.Logger
	handler http.Handler
}

// Option customizes a Server.
type Option func(*Server)

// WithLoader replaces the HTTP image loader.
func WithLoader(l ogimage.ImageLoader) Option {
	return func(s *Server) { s.loader = l }
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// WithPage sets the HTML template directly.
func WithPage(page []byte) Option {
	return func(s *Server) { s.page = page }
}

// New creates a server for cfg.
func New(cfg *config.Config, opts ...Option) (*Server, error) {
	mode, err := cfg.ResolveMode()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve mode: %w", err)
	}
	timeout, err := cfg.PreloadTimeout()
	if err != nil {
		return nil, err
	}

	s := &Server{
		cfg:     cfg,
		mode:    mode,
		page:    defaultPage,
		timeout: timeout,
		logger:  log.Default(),
	}

	if cfg.Server.Page != "" {
		page, err := os.ReadFile(cfg.Server.Page)
		if err != nil {
			return nil, fmt.Errorf("failed to read page template: %w", err)
		}
		s.page = page
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.mode.Preload && s.loader == nil {
		s.loader = preload.New(preload.Config{})
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handlePage)
	mux.HandleFunc("/preview.json", s.handleJSON)
	mux.HandleFunc("/image", s.handleImage)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	s.handler = mux

	return s, nil
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// ListenAndServe serves on the configured address until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.cfg.Addr(),
		Handler: s.handler,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Printf("Preview server starting on %s", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// newPreview builds a preview over the request URL.
func (s *Server) newPreview(r *http.Request, doc ogimage.Document) (*ogimage.Preview, *location.Location, error) {
	loc := location.FromURL(r.URL)
	p, err := ogimage.New(ogimage.Options{
		Mode:           s.mode,
		Service:        s.cfg.Service,
		Defaults:       s.cfg.Params(),
		Query:          loc,
		Document:       doc,
		Loader:         s.loader,
		PreloadTimeout: s.timeout,
		Logger:         s.logger,
	})
	if err != nil {
		return nil, nil, err
	}
	return p, loc, nil
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	doc, err := htmldoc.Parse(bytes.NewReader(s.page))
	if err != nil {
		http.Error(w, "Failed to parse page", http.StatusInternalServerError)
		return
	}

	p, loc, err := s.newPreview(r, doc)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if err := p.Mount(r.Context()); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	data, err := doc.Bytes()
	if err != nil {
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Location", loc.URL().RequestURI())
	w.Write(data)
}

// PreviewResponse is the JSON form of a preview.
type PreviewResponse struct {
	ImageURL      string              `json:"imageUrl"`
	Dimensions    *ogimage.Dimensions `json:"dimensions,omitempty"`
	Error         string              `json:"error,omitempty"`
	Params        ogimage.Params      `json:"params"`
	Query         string              `json:"query"`
	Preload       bool                `json:"preload"`
	IsLoading     bool                `json:"isLoading"`
	IsImageLoaded bool                `json:"isImageLoaded"`
}

func (s *Server) handleJSON(w http.ResponseWriter, r *http.Request) {
	p, loc, err := s.newPreview(r, nil)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if err := p.Mount(r.Context()); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := PreviewResponse{
		ImageURL:      p.ImageURL(),
		Params:        p.Params(),
		Query:         loc.RawQuery(),
		Preload:       s.mode.Preload,
		IsLoading:     p.IsLoading(),
		IsImageLoaded: p.IsImageLoaded(),
	}
	if dims, err := p.Dimensions(); err != nil {
		resp.Error = err.Error()
	} else {
		resp.Dimensions = &dims
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func (s *Server) handleImage(w http.ResponseWriter, r *http.Request) {
	p, _, err := s.newPreview(r, nil)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	p.ParseURLParams()
	http.Redirect(w, r, p.ImageURL(), http.StatusFound)
}
