// Package main provides the cards command: it loads the posts once and
// prints the rendered page as terminal text.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"poketimes/internal/config"
	"poketimes/internal/loader"
	"poketimes/internal/logger"
	"poketimes/internal/render"
	"poketimes/internal/store"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to load .env: %v\n", err)
		os.Exit(1)
	}

	configFile := flag.String("config", os.Getenv(config.EnvConfig), "Path to YAML configuration file")
	sourceURL := flag.String("url", "", "Posts endpoint (overrides config)")
	width := flag.Int("width", 0, "Output width in columns (overrides config)")
	showUsage := flag.Bool("help", false, "Show usage information")

	flag.Parse()

	if *showUsage {
		printUsage()
		os.Exit(0)
	}

	cfg, err := config.Load(*configFile, func(c *config.Config) {
		if *sourceURL != "" {
			c.Source.URL = *sourceURL
		}

		if *width > 0 {
			c.Render.TextWidth = *width
		}
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewLogger(cfg.Logging.Level)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st := store.New(log)

	// The store is rendered only after the load has settled.
	if err := <-loader.New(&cfg.Source, log).Start(ctx, st.Dispatch); err != nil {
		log.Error("load failed", "url", cfg.Source.URL, "error", err)
		os.Exit(1)
	}

	root := render.Renderer{Brand: cfg.Render.Title}.View(st.State())
	if err := render.Text(os.Stdout, root, cfg.Render.TextWidth); err != nil {
		log.Error("render failed", "error", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage: cards [-config file] [-url endpoint] [-width columns]")
	fmt.Println()
	fmt.Println("Fetches the posts once and prints them as text cards.")
	fmt.Println()
	flag.PrintDefaults()
}
