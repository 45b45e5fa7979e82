package catalog

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

const (
	// DefaultCategory is the category the carousel shows.
	DefaultCategory = "popular"
	// DefaultInterval is the auto-advance period.
	DefaultInterval = 5 * time.Second
	// FetchErrorMessage is shown when the product list could not be loaded.
	FetchErrorMessage = "Error fetching products. Please try again."
)

// Options tune a Carousel.
type Options struct {
	Category string
	Interval time.Duration
	// OnAdvance is called after every automatic advance with the new state.
	OnAdvance func(State)
}

// State is a snapshot of the carousel.
type State struct {
	Loading  bool
	Products []Product
	Active   int
	Err      string
}

// Carousel loads products once and cycles through them on a ticker.
type Carousel struct {
	source    Source
	category  string
	interval  time.Duration
	onAdvance func(State)
	logger    *slog.Logger

	mu      sync.Mutex
	state   State
	cancel  context.CancelFunc
	loaded  chan struct{}
	wg      sync.WaitGroup
	mounted bool
}

// NewCarousel creates an unmounted carousel in the loading state.
func NewCarousel(source Source, opts Options, logger *slog.Logger) *Carousel {
	if opts.Category == "" {
		opts.Category = DefaultCategory
	}
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	return &Carousel{
		source:    source,
		category:  opts.Category,
		interval:  opts.Interval,
		onAdvance: opts.OnAdvance,
		logger:    logger,
		state:     State{Loading: true},
		loaded:    make(chan struct{}),
	}
}

// Mount starts the fetch and the auto-advance ticker. Repeated calls are no-ops.
func (c *Carousel) Mount(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.mounted {
		return
	}
	c.mounted = true

	ctx, cancel := context.WithCancel(ctx)
	c.cancel = cancel

	c.wg.Add(2)
	go c.fetch(ctx)
	go c.tick(ctx)
}

// Unmount cancels the in-flight fetch, stops the ticker and waits for both.
func (c *Carousel) Unmount() {
	c.mu.Lock()
	cancel := c.cancel
	c.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	c.wg.Wait()
}

// Loaded is closed once the fetch has finished, successfully or not.
func (c *Carousel) Loaded() <-chan struct{} {
	return c.loaded
}

// Next moves to the following slide, wrapping at the end.
func (c *Carousel) Next() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	if n := len(c.state.Products); n > 0 {
		c.state.Active = (c.state.Active + 1) % n
	}
	return c.snapshotLocked()
}

// State returns a copy of the current state.
func (c *Carousel) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Active returns the product on the active slide.
func (c *Carousel) Active() (Product, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.state.Products) == 0 {
		return Product{}, false
	}
	return c.state.Products[c.state.Active], true
}

func (c *Carousel) snapshotLocked() State {
	s := c.state
	s.Products = append([]Product(nil), c.state.Products...)
	return s
}

func (c *Carousel) fetch(ctx context.Context) {
	defer c.wg.Done()
	defer close(c.loaded)

	products, err := c.source.Products(ctx, c.category)

	c.mu.Lock()
	defer c.mu.Unlock()
	if ctx.Err() != nil {
		// unmounted while fetching
		return
	}
	c.state.Loading = false
	if err != nil {
		c.logger.Error("fetch products", slog.String("category", c.category), slog.Any("error", err))
		c.state.Err = FetchErrorMessage
		return
	}
	c.state.Products = products
	c.state.Active = 0
}

func (c *Carousel) tick(ctx context.Context) {
	defer c.wg.Done()

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			state := c.Next()
			if c.onAdvance != nil {
				c.onAdvance(state)
			}
		}
	}
}
