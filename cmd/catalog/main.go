package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/polkiloo/storefront/internal/catalog"
	"github.com/polkiloo/storefront/internal/config"
	"github.com/polkiloo/storefront/internal/logger"
)

func main() {
	if err := config.LoadEnvFile(config.EnvFile); err != nil {
		fmt.Fprintf(os.Stderr, "catalog: %v\n", err)
		os.Exit(1)
	}

	var (
		addr     = flag.String("addr", envOr("CATALOG_API_URL", "http://localhost:8080"), "Storefront API base URL")
		category = flag.String("category", catalog.DefaultCategory, "Product category to show")
		interval = flag.Duration("interval", catalog.DefaultInterval, "Auto-advance interval")
		timeout  = flag.Duration("timeout", catalog.DefaultTimeout, "Request timeout")
		html     = flag.Bool("html", false, "Print the rendered fragment after loading and on every advance")
		level    = flag.String("log-level", envOr("LOG_LEVEL", "info"), "Log level (debug, info, warn, error)")
	)
	flag.Parse()

	log := logger.NewWriter(os.Stderr, *level)

	client, err := catalog.NewHTTPClient(*addr, *timeout, log)
	if err != nil {
		log.Error("create catalog client", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	show := func(state catalog.State) {
		if !*html {
			return
		}
		if err := catalog.Render(os.Stdout, state); err != nil {
			log.Error("render carousel", "error", err)
		}
	}

	carousel := catalog.NewCarousel(client, catalog.Options{
		Category: *category,
		Interval: *interval,
		OnAdvance: func(state catalog.State) {
			if len(state.Products) > 0 {
				active := state.Products[state.Active]
				log.Info("slide", "index", state.Active, "id", active.ID, "name", active.Name, "price", active.Price.String())
			}
			show(state)
		},
	}, log)

	started := time.Now()
	carousel.Mount(ctx)

	select {
	case <-carousel.Loaded():
		state := carousel.State()
		log.Info("products loaded", "count", len(state.Products), "error", state.Err, "elapsed", time.Since(started))
		show(state)
	case <-ctx.Done():
	}

	<-ctx.Done()
	carousel.Unmount()
	log.Info("carousel unmounted")
}

func envOr(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}
