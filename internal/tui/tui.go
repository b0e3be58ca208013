// Package tui provides a Bubble Tea terminal user interface for telegram-downloader.
package tui

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/handiism/telegram-downloader/internal/config"
	"github.com/handiism/telegram-downloader/internal/download"
	"github.com/handiism/telegram-downloader/internal/model"
	"github.com/handiism/telegram-downloader/internal/telegram"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#2AABEE")).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1A3"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFE66D"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8DADC"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4ECDC4")).
			Padding(1, 2)

	channelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F8B500"))
)

// State represents the current UI state.
type State int

const (
	StateLoading State = iota
	StateChannels
	StateFilter
	StateFetching
	StateDownloading
	StateComplete
	StateError
)

// LogEntry represents a log message in the UI.
type LogEntry struct {
	Message string
	Level   download.ProgressLevel
}

// eventBuffer collects manager progress events across goroutines so the
// update loop can drain them on its own schedule.
type eventBuffer struct {
	mu     sync.Mutex
	events []download.ProgressEvent
}

func (b *eventBuffer) add(event download.ProgressEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, event)
}

func (b *eventBuffer) drain() []download.ProgressEvent {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := b.events
	b.events = nil
	return out
}

// Model is the Bubble Tea model for the TUI.
type Model struct {
	state     State
	textInput textinput.Model
	spinner   spinner.Model
	progress  progress.Model
	settings  *config.Settings
	client    *telegram.Client
	logs      []LogEntry
	events    *eventBuffer
	err       error

	channels []model.Channel
	channel  model.Channel
	category model.MediaCategory

	// Download context; parent outlives esc-cancels so a restart can
	// derive a fresh child.
	parent context.Context
	ctx    context.Context
	cancel context.CancelFunc

	// Download manager reference
	manager *download.Manager
	history *download.History
	result  *download.Result

	// Download progress
	totalItems    int32
	doneItems     int32
	totalBytes    int64
	receivedBytes int64

	// Options
	verbose bool

	width  int
	height int
}

// NewModel creates a new TUI model. The client must already be running
// and authorized; ctx bounds every Telegram call the UI makes.
func NewModel(ctx context.Context, client *telegram.Client, settings *config.Settings) Model {
	ti := textinput.New()
	ti.Placeholder = "channel number"
	ti.Focus()
	ti.CharLimit = 6
	ti.Width = 20

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#2AABEE"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 50

	runCtx, cancel := context.WithCancel(ctx)

	return Model{
		state:     StateLoading,
		textInput: ti,
		spinner:   sp,
		progress:  prog,
		settings:  settings,
		client:    client,
		logs:      make([]LogEntry, 0),
		events:    &eventBuffer{},
		parent:    ctx,
		ctx:       runCtx,
		cancel:    cancel,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick, m.loadChannels())
}

// Message types
type (
	// ChannelsMsg is sent when the joined channel list arrives.
	ChannelsMsg struct {
		Channels []model.Channel
		Err      error
	}

	// MessagesMsg is sent when matching media messages were collected
	// and the download manager is ready.
	MessagesMsg struct {
		Messages []*model.MediaMessage
		Manager  *download.Manager
		History  *download.History
		Err      error
	}

	// DownloadDoneMsg is sent when all downloads complete.
	DownloadDoneMsg struct {
		Result *download.Result
		Err    error
	}

	// TickMsg is for periodic progress updates.
	TickMsg struct{}
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = msg.Width - 20
		if m.progress.Width > 80 {
			m.progress.Width = 80
		}
		if m.progress.Width < 20 {
			m.progress.Width = 20
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.cancel()
			return m, tea.Quit

		case "esc":
			if m.state == StateChannels || m.state == StateFilter {
				m.cancel()
				return m, tea.Quit
			}
			if m.state == StateLoading || m.state == StateFetching || m.state == StateDownloading {
				m.cancel()
				m.state = StateError
				m.err = fmt.Errorf("cancelled by user")
			}

		case "enter":
			if m.state == StateChannels && m.textInput.Value() != "" {
				if ch, ok := m.pickChannel(m.textInput.Value()); ok {
					m.channel = ch
					m.state = StateFilter
					m.textInput.Blur()
				} else {
					m.textInput.SetValue("")
				}
			}

		case "1", "2", "3", "4", "5":
			if m.state == StateFilter {
				m.category, _ = model.ParseCategory(msg.String())
				m.state = StateFetching
				return m, tea.Batch(m.fetchMessages(), m.spinner.Tick)
			}

		case "v":
			if m.state == StateFilter {
				m.verbose = !m.verbose
			}

		case "b":
			if m.state == StateFilter {
				m.state = StateChannels
				m.textInput.SetValue("")
				m.textInput.Focus()
			}

		case "q":
			if m.state == StateComplete || m.state == StateError {
				m.cancel()
				return m, tea.Quit
			}

		case "r":
			if m.state == StateComplete || m.state == StateError {
				// Back to channel selection for another run. The old
				// context may have been cancelled by esc, so the new
				// run gets a fresh child of the parent.
				m.cancel()
				m.ctx, m.cancel = context.WithCancel(m.parent)
				m.logs = nil
				m.err = nil
				m.result = nil
				m.manager = nil
				m.history = nil
				m.doneItems = 0
				m.totalItems = 0
				m.receivedBytes = 0
				m.totalBytes = 0
				m.textInput.SetValue("")
				if len(m.channels) == 0 {
					m.state = StateLoading
					return m, tea.Batch(m.loadChannels(), m.spinner.Tick)
				}
				m.state = StateChannels
				m.textInput.Focus()
			}
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case ChannelsMsg:
		if msg.Err != nil {
			m.state = StateError
			m.err = msg.Err
		} else if len(msg.Channels) == 0 {
			m.state = StateError
			m.err = fmt.Errorf("no joined channels found")
		} else {
			m.channels = msg.Channels
			m.state = StateChannels
		}

	case MessagesMsg:
		if msg.Err != nil {
			m.state = StateError
			m.err = msg.Err
		} else if len(msg.Messages) == 0 {
			m.state = StateComplete
			m.result = &download.Result{}
		} else {
			m.manager = msg.Manager
			m.history = msg.History
			m.state = StateDownloading
			cmds = append(cmds, m.startDownload(msg.Messages), m.tickProgress())
		}

	case DownloadDoneMsg:
		if m.history != nil {
			_ = m.history.Close()
			m.history = nil
		}
		m.result = msg.Result
		if m.manager != nil {
			m.receivedBytes, m.totalBytes, m.doneItems, m.totalItems = m.manager.GetProgress()
		}
		if m.ctx.Err() != nil {
			m.state = StateError
			m.err = fmt.Errorf("cancelled by user")
		} else if msg.Err != nil {
			m.state = StateError
			m.err = msg.Err
		} else {
			m.state = StateComplete
		}

	case TickMsg:
		m.appendEvents()
		if m.manager != nil && m.state == StateDownloading {
			received, total, done, totalItems := m.manager.GetProgress()
			m.receivedBytes = received
			m.totalBytes = total
			m.doneItems = done
			m.totalItems = totalItems

			var percent float64
			if totalItems > 0 {
				percent = float64(done) / float64(totalItems)
			}
			progressCmd := m.progress.SetPercent(percent)
			cmds = append(cmds, progressCmd, m.tickProgress())
		}

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		cmds = append(cmds, cmd)
	}

	// Update text input
	if m.state == StateChannels {
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// pickChannel resolves a 1-based menu number typed by the user.
func (m Model) pickChannel(value string) (model.Channel, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || n < 1 || n > len(m.channels) {
		return model.Channel{}, false
	}
	return m.channels[n-1], true
}

// appendEvents drains buffered manager events into the visible log.
func (m *Model) appendEvents() {
	for _, event := range m.events.drain() {
		if event.Level == download.LevelVerbose && !m.verbose {
			continue
		}
		m.logs = append(m.logs, LogEntry{Message: event.Message, Level: event.Level})
	}
	// Keep only last 10 logs
	if len(m.logs) > 10 {
		m.logs = m.logs[len(m.logs)-10:]
	}
}

// tickProgress returns a command to tick progress updates.
func (m Model) tickProgress() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(_ time.Time) tea.Msg {
		return TickMsg{}
	})
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	// Header
	b.WriteString(titleStyle.Render("📨 Telegram Downloader"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Download media from Telegram channels"))
	b.WriteString("\n\n")

	switch m.state {
	case StateLoading:
		b.WriteString(m.viewLoading())
	case StateChannels:
		b.WriteString(m.viewChannels())
	case StateFilter:
		b.WriteString(m.viewFilter())
	case StateFetching:
		b.WriteString(m.viewFetching())
	case StateDownloading:
		b.WriteString(m.viewDownloading())
	case StateComplete:
		b.WriteString(m.viewComplete())
	case StateError:
		b.WriteString(m.viewError())
	}

	// Footer
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.getHelpText()))

	return b.String()
}

func (m Model) viewLoading() string {
	var b strings.Builder

	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(subtitleStyle.Render("Fetching joined channels..."))
	b.WriteString("\n")

	return b.String()
}

func (m Model) viewChannels() string {
	var b strings.Builder

	b.WriteString(subtitleStyle.Render(fmt.Sprintf("Joined channels (%d):", len(m.channels))))
	b.WriteString("\n\n")

	for i, ch := range m.channels {
		label := ch.Title
		if ch.Username != "" {
			label = fmt.Sprintf("%s (@%s)", ch.Title, ch.Username)
		}
		b.WriteString(channelStyle.Render(fmt.Sprintf("  %d. %s", i+1, label)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(infoStyle.Render("Select a channel:"))
	b.WriteString("\n")
	b.WriteString(m.textInput.View())
	b.WriteString("\n")

	return b.String()
}

func (m Model) viewFilter() string {
	var b strings.Builder

	b.WriteString(subtitleStyle.Render(fmt.Sprintf("Channel: %s", m.channel.Title)))
	b.WriteString("\n\n")
	b.WriteString(infoStyle.Render("What would you like to download?"))
	b.WriteString("\n")
	b.WriteString("  1. Images\n")
	b.WriteString("  2. Videos\n")
	b.WriteString("  3. PDFs\n")
	b.WriteString("  4. ZIP files\n")
	b.WriteString("  5. All media types\n")
	b.WriteString("\n")

	verboseCheck := "[ ]"
	if m.verbose {
		verboseCheck = "[×]"
	}
	b.WriteString(dimStyle.Render(fmt.Sprintf("%s Verbose output (v)", verboseCheck)))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("Download path: %s", m.settings.DownloadsPath)))
	b.WriteString("\n")

	return b.String()
}

func (m Model) viewFetching() string {
	var b strings.Builder

	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(subtitleStyle.Render(fmt.Sprintf(
		"Searching %s for %s...", m.channel.Title, strings.ToLower(m.category.String()))))
	b.WriteString("\n\n")
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewDownloading() string {
	var b strings.Builder

	b.WriteString(successStyle.Render(fmt.Sprintf(
		"Downloading %s from %s", strings.ToLower(m.category.String()), m.channel.Title)))
	b.WriteString("\n\n")

	var percent float64
	if m.totalItems > 0 {
		percent = float64(m.doneItems) / float64(m.totalItems)
	}
	b.WriteString(m.progress.ViewAs(percent))
	b.WriteString("\n")

	b.WriteString(infoStyle.Render(fmt.Sprintf(
		"Files: %d/%d | Received: %s",
		m.doneItems,
		m.totalItems,
		humanize.Bytes(uint64(m.receivedBytes)),
	)))
	b.WriteString("\n\n")
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewComplete() string {
	var b strings.Builder

	if m.result == nil || m.result.Summary.Total() == 0 {
		b.WriteString(boxStyle.Render("No matching media found."))
		return b.String()
	}

	s := m.result.Summary
	box := boxStyle.Render(fmt.Sprintf(
		"✨ Download Complete!\n\n"+
			"Downloaded: %d\n"+
			"Skipped: %d\n"+
			"Failed: %d\n"+
			"Size: %s",
		s.Succeeded,
		s.Skipped,
		s.Failed,
		humanize.Bytes(uint64(m.receivedBytes)),
	))
	b.WriteString(box)

	if s.Failed > 0 {
		b.WriteString("\n\n")
		b.WriteString(errorStyle.Render("Failures:"))
		b.WriteString("\n")
		for _, out := range m.result.Outcomes {
			if out.Status == model.OutcomeFailed {
				b.WriteString(errorStyle.Render(fmt.Sprintf("  ✗ %s: %v", out.Message.FileName, out.Err)))
				b.WriteString("\n")
			}
		}
	}

	return b.String()
}

func (m Model) viewError() string {
	var b strings.Builder

	b.WriteString(errorStyle.Render("❌ Error occurred:"))
	b.WriteString("\n\n")
	if m.err != nil {
		b.WriteString(fmt.Sprintf("  %s", m.err.Error()))
	}

	return b.String()
}

func (m Model) renderLogs() string {
	var b strings.Builder

	for _, log := range m.logs {
		var style lipgloss.Style
		prefix := "•"
		switch log.Level {
		case download.LevelError:
			style = errorStyle
			prefix = "✗"
		case download.LevelWarning:
			style = warningStyle
			prefix = "!"
		case download.LevelSuccess:
			style = successStyle
			prefix = "✓"
		case download.LevelInfo:
			style = infoStyle
			prefix = "›"
		default:
			style = dimStyle
		}
		b.WriteString(style.Render(prefix + " " + log.Message))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) getHelpText() string {
	switch m.state {
	case StateChannels:
		return "enter: select • esc: quit"
	case StateFilter:
		return "1-5: choose media type • v: verbose • b: back • esc: quit"
	case StateLoading, StateFetching, StateDownloading:
		return "esc: cancel"
	case StateComplete, StateError:
		return "r: another download • q: quit"
	}
	return ""
}

// loadChannels fetches the joined channel list.
func (m *Model) loadChannels() tea.Cmd {
	ctx, client := m.ctx, m.client
	return func() tea.Msg {
		channels, err := client.ListChannels(ctx)
		return ChannelsMsg{Channels: channels, Err: err}
	}
}

// fetchMessages collects matching media messages and builds the manager.
func (m *Model) fetchMessages() tea.Cmd {
	ctx, client := m.ctx, m.client
	settings := m.settings
	channel := m.channel
	category := m.category
	events := m.events

	return func() tea.Msg {
		msgs, err := client.MediaMessages(ctx, channel, category, settings.MessageLimit)
		if err != nil {
			return MessagesMsg{Err: err}
		}
		if len(msgs) == 0 {
			return MessagesMsg{}
		}

		history, err := download.LoadHistory(settings.HistoryFile(), channel.ID)
		if err != nil {
			return MessagesMsg{Err: err}
		}

		manager := download.NewManager(download.Options{
			Root:      filepath.Join(settings.DownloadsPath, category.Folder()),
			BatchSize: settings.BatchSize,
			Fetcher:   client,
			History:   history,
		}, events.add)

		return MessagesMsg{Messages: msgs, Manager: manager, History: history}
	}
}

// startDownload starts the actual download in background.
func (m *Model) startDownload(msgs []*model.MediaMessage) tea.Cmd {
	ctx, manager := m.ctx, m.manager
	return func() tea.Msg {
		result, err := manager.Run(ctx, msgs)
		return DownloadDoneMsg{Result: result, Err: err}
	}
}

// Run starts the TUI application. The client must be connected and
// authorized for the lifetime of the call.
func Run(ctx context.Context, client *telegram.Client, settings *config.Settings) error {
	p := tea.NewProgram(NewModel(ctx, client, settings), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
