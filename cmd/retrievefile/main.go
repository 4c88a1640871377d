// Package main downloads the published translation of a file.
// Usage:
//
//	go run ./cmd/retrievefile [-config=config.yaml] \
//	  true "$API_KEY" "$PROJECT_ID" ./messages.properties fr-FR ./out
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"smartling/config"
	"smartling/internal/logging"
	"smartling/internal/retrieve"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file (default: "+config.DefaultPath+" if present)")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s\n\nFlags:\n", retrieve.Usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	level, err := logging.ParseLevel(cfg.Logging.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger := logging.New(os.Stderr, cfg.Logging.Format, level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	path, err := retrieve.Run(ctx, flag.Args(), retrieve.Options{Config: cfg, Logger: logger})
	if err != nil {
		logger.Error("retrieve failed", "error", err)
		stop()
		os.Exit(1)
	}
	fmt.Println(path)
}
