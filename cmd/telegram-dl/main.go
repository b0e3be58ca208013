package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/handiism/telegram-downloader/internal/config"
	"github.com/handiism/telegram-downloader/internal/download"
	"github.com/handiism/telegram-downloader/internal/logger"
	"github.com/handiism/telegram-downloader/internal/model"
	"github.com/handiism/telegram-downloader/internal/telegram"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#2AABEE"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#95E1A3"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFE66D"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C757D"))
)

func main() {
	// Command line flags
	var (
		configFlag  = flag.String("config", "", "Path to config file")
		outputFlag  = flag.String("output", "", "Downloads directory (overrides config)")
		batchFlag   = flag.Int("batch", 0, "Concurrent downloads per batch (overrides config)")
		limitFlag   = flag.Int("limit", 0, "Maximum messages to scan (overrides config)")
		sessionFlag = flag.String("session", "", "Session name (overrides config)")
		verboseFlag = flag.Bool("verbose", false, "Show verbose output")
	)

	flag.Parse()

	// Load config, then overlay environment and flags
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
	if *outputFlag != "" {
		settings.DownloadsPath = *outputFlag
	}
	if *batchFlag > 0 {
		settings.BatchSize = *batchFlag
	}
	if *limitFlag > 0 {
		settings.MessageLimit = *limitFlag
	}
	if *sessionFlag != "" {
		settings.SessionName = *sessionFlag
	}
	if *verboseFlag {
		settings.LogLevel = "debug"
	}

	if err := settings.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Set API_ID and API_HASH in the environment or a .env file (see https://my.telegram.org/apps).")
		os.Exit(1)
	}

	log := logger.New(settings.LogLevel)
	defer func() { _ = log.Sync() }()

	// Handle interrupts
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Println("\nInterrupted, cancelling...")
		cancel()
	}()

	fmt.Println(headerStyle.Render("📨 Telegram Downloader"))
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Println()

	client := telegram.New(settings.APIID, settings.APIHash, telegram.Options{
		SessionFile: settings.SessionFile(),
		PartSize:    settings.PartSize,
		MaxThreads:  settings.MaxThreads,
		Logger:      log,
	})

	err := client.Run(ctx, func(ctx context.Context) error {
		return run(ctx, client, settings, *verboseFlag)
	})
	if err != nil {
		if ctx.Err() != nil {
			fmt.Println("\nDownload cancelled.")
			os.Exit(130)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run drives the interactive session against a connected client.
func run(ctx context.Context, client *telegram.Client, settings *config.Settings, verbose bool) error {
	fmt.Println(dimStyle.Render("Fetching joined channels..."))
	channels, err := client.ListChannels(ctx)
	if err != nil {
		return err
	}
	if len(channels) == 0 {
		fmt.Println("No joined channels found.")
		return nil
	}

	in := bufio.NewScanner(os.Stdin)

	channel, err := chooseChannel(in, channels)
	if err != nil {
		return err
	}
	category, err := chooseCategory(in)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(dimStyle.Render("Fetching media messages..."))
	msgs, err := client.MediaMessages(ctx, channel, category, settings.MessageLimit)
	if err != nil {
		return err
	}
	if len(msgs) == 0 {
		fmt.Println("No media found.")
		return nil
	}
	fmt.Printf("Found %d matching message(s)\n", len(msgs))

	history, err := download.LoadHistory(settings.HistoryFile(), channel.ID)
	if err != nil {
		return err
	}
	defer func() { _ = history.Close() }()

	manager := download.NewManager(download.Options{
		Root:      filepath.Join(settings.DownloadsPath, category.Folder()),
		BatchSize: settings.BatchSize,
		Fetcher:   client,
		History:   history,
	}, func(event download.ProgressEvent) {
		if event.Level == download.LevelVerbose && !verbose {
			return
		}
		switch event.Level {
		case download.LevelError:
			fmt.Println(errorStyle.Render("✗ " + event.Message))
		case download.LevelWarning:
			fmt.Println(warningStyle.Render("! " + event.Message))
		case download.LevelSuccess, download.LevelInfo:
			fmt.Println(successStyle.Render("✓ " + event.Message))
		default:
			fmt.Println(dimStyle.Render("  " + event.Message))
		}
	})

	fmt.Println()
	fmt.Println("📥 Starting downloads...")
	fmt.Println()

	result, err := manager.Run(ctx, msgs)
	if err != nil {
		return err
	}

	received, _, _, _ := manager.GetProgress()
	s := result.Summary
	fmt.Println()
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Println(successStyle.Render(fmt.Sprintf(
		"✨ Complete! Downloaded %d, skipped %d, failed %d (%s)",
		s.Succeeded, s.Skipped, s.Failed, humanize.Bytes(uint64(received)))))
	if s.Failed > 0 {
		for _, out := range result.Outcomes {
			if out.Status == model.OutcomeFailed {
				fmt.Println(errorStyle.Render(fmt.Sprintf("  ✗ %s: %v", out.Message.FileName, out.Err)))
			}
		}
	}

	return nil
}

// chooseChannel prints the numbered channel menu and reads a selection,
// re-prompting until the input is a valid number.
func chooseChannel(in *bufio.Scanner, channels []model.Channel) (model.Channel, error) {
	fmt.Printf("\nJoined channels (%d):\n", len(channels))
	for i, ch := range channels {
		label := ch.Title
		if ch.Username != "" {
			label = fmt.Sprintf("%s (@%s)", ch.Title, ch.Username)
		}
		fmt.Printf("  %d. %s %s\n", i+1, label, dimStyle.Render(fmt.Sprintf("[%d]", ch.ID)))
	}

	for {
		fmt.Print("\nSelect a channel: ")
		if !in.Scan() {
			return model.Channel{}, fmt.Errorf("no channel selected")
		}
		n, err := strconv.Atoi(strings.TrimSpace(in.Text()))
		if err != nil || n < 1 || n > len(channels) {
			fmt.Printf("Enter a number between 1 and %d.\n", len(channels))
			continue
		}
		return channels[n-1], nil
	}
}

// chooseCategory prints the media type menu and reads a selection,
// re-prompting until the input is one of 1-5.
func chooseCategory(in *bufio.Scanner) (model.MediaCategory, error) {
	fmt.Println("\nWhat would you like to download?")
	fmt.Println("  1. Images")
	fmt.Println("  2. Videos")
	fmt.Println("  3. PDFs")
	fmt.Println("  4. ZIP files")
	fmt.Println("  5. All media types")

	for {
		fmt.Print("\nSelect a media type: ")
		if !in.Scan() {
			return model.CategoryNone, fmt.Errorf("no media type selected")
		}
		category, ok := model.ParseCategory(strings.TrimSpace(in.Text()))
		if !ok {
			fmt.Println("Enter a number between 1 and 5.")
			continue
		}
		return category, nil
	}
}
