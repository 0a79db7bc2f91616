package tui

import (
	"io"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/snake-rival/internal/core"
	_ "github.com/vovakirdan/snake-rival/internal/games/duel"
)

func newTestSession() SessionModel {
	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 30, TickRate: 60, Seed: 1}
	return NewSessionModel(nil, log.New(io.Discard), cfg)
}

func send(t *testing.T, m SessionModel, msg tea.Msg) (SessionModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	sm, ok := next.(SessionModel)
	if !ok {
		t.Fatalf("Update returned %T, want SessionModel", next)
	}
	return sm, cmd
}

func TestSessionMenuListsDuels(t *testing.T) {
	view := newTestSession().View()
	for _, title := range []string{"Snake Duel"} {
		if !strings.Contains(view, title) {
			t.Errorf("menu view missing %q:\n%s", title, view)
		}
	}
}

func TestSessionPlayPauseAndBack(t *testing.T) {
	m := newTestSession()

	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.screen != screenGame {
		t.Fatalf("screen after enter = %v, want game", m.screen)
	}
	if cmd == nil {
		t.Error("entering a game should start the tick loop")
	}

	m, _ = send(t, m, runeKey('p'))
	m, _ = send(t, m, TickMsg(time.Now()))
	if !m.gameModel.gameState.Paused {
		t.Fatal("duel should be paused after p and a tick")
	}

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.screen != screenMenu {
		t.Errorf("screen after esc while paused = %v, want menu", m.screen)
	}
	if m.quitting {
		t.Error("going back to the menu must not end the session")
	}
}

func TestSessionBackIgnoredWhileRunning(t *testing.T) {
	m := newTestSession()
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = send(t, m, TickMsg(time.Now()))

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.screen != screenGame {
		t.Errorf("esc during play should stay in the game, got screen %v", m.screen)
	}
}

func TestSessionHistoryRoundTrip(t *testing.T) {
	m := newTestSession()

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.screen != screenHistory {
		t.Fatalf("screen after tab = %v, want history", m.screen)
	}
	if !strings.Contains(m.View(), "DUEL HISTORY") {
		t.Errorf("history view missing title:\n%s", m.View())
	}

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.screen != screenMenu {
		t.Errorf("screen after esc in history = %v, want menu", m.screen)
	}
}

func TestSessionQuit(t *testing.T) {
	m, cmd := send(t, newTestSession(), runeKey('q'))
	if !m.quitting {
		t.Error("q in the menu should end the session")
	}
	if cmd == nil {
		t.Error("quitting should return tea.Quit")
	}
	if m.View() != "" {
		t.Error("a finished session renders nothing")
	}
}
