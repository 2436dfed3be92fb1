// Package main provides the poketimes web server: it loads the posts once
// at startup and serves the rendered page.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"poketimes/internal/config"
	"poketimes/internal/loader"
	"poketimes/internal/logger"
	"poketimes/internal/store"
	"poketimes/internal/web"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		logger.NewLogger("error").Error("failed to load .env", "error", err)
		os.Exit(1)
	}

	configFile := flag.String("config", os.Getenv(config.EnvConfig), "Path to YAML configuration file")
	addr := flag.String("addr", "", "HTTP listen address (overrides config)")
	sourceURL := flag.String("url", "", "Posts endpoint (overrides config)")

	flag.Parse()

	cfg, err := config.Load(*configFile, func(c *config.Config) {
		if *addr != "" {
			c.Server.Addr = *addr
		}

		if *sourceURL != "" {
			c.Source.URL = *sourceURL
		}
	})
	if err != nil {
		logger.NewLogger("error").Error("failed to load config", "error", err)
		os.Exit(1)
	}

	log := logger.NewLogger(cfg.Logging.Level)
	log.Info("starting poketimes", "config", cfg.String())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st := store.New(log)
	st.Subscribe(func(e store.Event, s store.State) {
		if _, ok := e.(store.PostsReceived); ok {
			log.Info("page state updated", "posts", len(s.Posts))
		}
	})

	// Fire and forget: the page shows "No posts to show" until the event lands.
	_ = loader.New(&cfg.Source, log).Start(ctx, st.Dispatch)

	srv := web.NewServer(cfg, st, log)
	if err := srv.ListenAndServe(ctx); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}

	log.Info("bye")
}
