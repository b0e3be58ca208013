package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/handiism/telegram-downloader/internal/config"
	"github.com/handiism/telegram-downloader/internal/logger"
	"github.com/handiism/telegram-downloader/internal/telegram"
	"github.com/handiism/telegram-downloader/internal/tui"
)

func main() {
	configFlag := flag.String("config", "", "Path to config file")
	flag.Parse()

	settings := config.DefaultSettings()
	if *configFlag != "" {
		var err error
		settings, err = config.Load(*configFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}
	if err := settings.ApplyEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Error reading environment: %v\n", err)
		os.Exit(1)
	}
	if err := settings.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// The TUI owns the terminal, so gotd logging stays off here.
	log := logger.Nop()
	if settings.LogLevel == "debug" {
		log = logger.New(settings.LogLevel)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	client := telegram.New(settings.APIID, settings.APIHash, telegram.Options{
		SessionFile: settings.SessionFile(),
		PartSize:    settings.PartSize,
		MaxThreads:  settings.MaxThreads,
		Logger:      log,
	})

	err := client.RunAuthorized(ctx, func(ctx context.Context) error {
		return tui.Run(ctx, client, settings)
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
