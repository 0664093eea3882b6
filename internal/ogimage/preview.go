package ogimage

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/roboco-io/ogpreview/internal/signal"
)

// Options configures a Preview.
type Options struct {
	Mode     Mode
	Service  string // image host, DefaultService when empty
	Defaults Params // initial values, DefaultParams when zero

	Query    QueryStore  // required
	Document Document    // optional; meta tags are skipped when nil
	Loader   ImageLoader // required when Mode.Preload is set

	PreloadTimeout time.Duration // 0 waits as long as the context allows
	Logger         *log.Logger
}

// Preview is the component consumed by a UI: observable parameters, derived
// values and the operations that keep the query string and meta tags current.
// A Preview has a single owner; mutate it from one goroutine at a time.
type Preview struct {
	*Store

	mode   Mode
	syncer *Synchronizer

	mountOnce sync.Once
	mountErr  error
	ctx       context.Context
	unsub     func()
}

// New creates a Preview holding opts.Defaults.
func New(opts Options) (*Preview, error) {
	if err := opts.Mode.Validate(); err != nil {
		return nil, fmt.Errorf("invalid mode: %w", err)
	}
	if opts.Query == nil {
		return nil, errors.New("query store is required")
	}
	if opts.Mode.Preload && opts.Loader == nil {
		return nil, errors.New("image loader is required when preload is enabled")
	}

	service := opts.Service
	if service == "" {
		service = DefaultService
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	defaults := opts.Defaults
	if defaults == (Params{}) {
		defaults = DefaultParams()
	}

	store := NewStore(defaults)
	syncer := &Synchronizer{
		store:       store,
		mode:        opts.Mode,
		service:     service,
		query:       opts.Query,
		doc:         opts.Document,
		loader:      opts.Loader,
		timeout:     opts.PreloadTimeout,
		logger:      logger,
		Loading:     signal.New(false),
		ImageLoaded: signal.New(false),
	}

	return &Preview{
		Store:  store,
		mode:   opts.Mode,
		syncer: syncer,
	}, nil
}

// Mode returns the capabilities the preview was created with.
func (p *Preview) Mode() Mode {
	return p.mode
}

// ImageURL returns the derived image URL.
func (p *Preview) ImageURL() string {
	return p.syncer.ImageURL()
}

// Dimensions returns the derived pixel size.
func (p *Preview) Dimensions() (Dimensions, error) {
	return p.syncer.Dimensions()
}

// IsLoading reports whether a preload is in flight.
func (p *Preview) IsLoading() bool {
	return p.syncer.Loading.Get()
}

// IsImageLoaded reports whether the most recent preload succeeded.
func (p *Preview) IsImageLoaded() bool {
	return p.syncer.ImageLoaded.Get()
}

// Loading exposes the in-flight flag for observation.
func (p *Preview) Loading() *signal.Signal[bool] {
	return p.syncer.Loading
}

// ImageLoaded exposes the loaded flag for observation.
func (p *Preview) ImageLoaded() *signal.Signal[bool] {
	return p.syncer.ImageLoaded
}

// ParseURLParams reads the query string into the parameters.
func (p *Preview) ParseURLParams() {
	Decode(p.syncer.query.Query(), p.Store, p.mode.Fields)
}

// UpdateURL writes the parameters into the query string.
func (p *Preview) UpdateURL() error {
	return p.syncer.UpdateURL()
}

// Sync runs a synchronization pass immediately.
func (p *Preview) Sync(ctx context.Context) error {
	return p.syncer.Sync(ctx)
}

// Mount reads the query string, runs the initial synchronization and starts
// reacting to changes of the trigger fields. ctx bounds every later pass too.
// Only the first call has an effect.
func (p *Preview) Mount(ctx context.Context) error {
	p.mountOnce.Do(func() {
		p.ctx = ctx
		p.ParseURLParams()
		p.mountErr = p.syncer.Sync(ctx)
		p.unsub = p.OnChange(p.handleChange)
	})
	return p.mountErr
}

// Unmount stops reacting to changes.
func (p *Preview) Unmount() {
	if p.unsub != nil {
		p.unsub()
		p.unsub = nil
	}
}

func (p *Preview) handleChange(c Change) {
	if !c.Fields.Intersects(p.mode.Triggers) {
		return
	}
	if err := p.syncer.Sync(p.ctx); err != nil {
		p.syncer.logger.Printf("sync after %s change failed: %v", c.Fields, err)
	}
}
