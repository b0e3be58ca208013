package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/handiism/telegram-downloader/internal/config"
	"github.com/handiism/telegram-downloader/internal/model"
)

func keyMsg(s string) tea.KeyMsg {
	if s == "esc" {
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	updated, _ := m.Update(msg)
	next, ok := updated.(Model)
	if !ok {
		t.Fatalf("Update() returned %T, want Model", updated)
	}
	return next
}

func TestRestartAfterCancelGetsFreshContext(t *testing.T) {
	m := NewModel(context.Background(), nil, config.DefaultSettings())
	m.state = StateDownloading
	m.channels = []model.Channel{{ID: 1, Title: "one"}}

	m = update(t, m, keyMsg("esc"))
	if m.state != StateError {
		t.Fatalf("state after esc = %v, want StateError", m.state)
	}
	if m.ctx.Err() == nil {
		t.Fatal("esc did not cancel the run context")
	}

	m = update(t, m, keyMsg("r"))
	if m.state != StateChannels {
		t.Fatalf("state after r = %v, want StateChannels", m.state)
	}
	if m.ctx.Err() != nil {
		t.Fatalf("run context still cancelled after restart: %v", m.ctx.Err())
	}
	if m.result != nil || m.manager != nil || m.err != nil {
		t.Error("restart did not clear the previous run's state")
	}
}

func TestRestartWithoutChannelsReloadsThem(t *testing.T) {
	m := NewModel(context.Background(), nil, config.DefaultSettings())
	m.state = StateLoading

	m = update(t, m, keyMsg("esc"))
	if m.state != StateError {
		t.Fatalf("state after esc = %v, want StateError", m.state)
	}

	updated, cmd := m.Update(keyMsg("r"))
	m = updated.(Model)
	if m.state != StateLoading {
		t.Fatalf("state after r = %v, want StateLoading", m.state)
	}
	if cmd == nil {
		t.Fatal("restart without channels returned no reload command")
	}
	if m.ctx.Err() != nil {
		t.Fatalf("run context still cancelled after restart: %v", m.ctx.Err())
	}
}

func TestRestartCancelsPreviousContext(t *testing.T) {
	m := NewModel(context.Background(), nil, config.DefaultSettings())
	m.state = StateComplete
	m.channels = []model.Channel{{ID: 1, Title: "one"}}

	old := m.ctx
	m = update(t, m, keyMsg("r"))
	if old.Err() == nil {
		t.Error("restart left the previous run context alive")
	}
	if m.ctx.Err() != nil {
		t.Fatalf("fresh run context already cancelled: %v", m.ctx.Err())
	}
}
