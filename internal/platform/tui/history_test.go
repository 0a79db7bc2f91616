package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/snake-rival/internal/core"
	"github.com/vovakirdan/snake-rival/internal/storage"
)

func openTestStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "duels.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestHistoryWithoutStore(t *testing.T) {
	m := NewHistoryModel(nil, 100, 30)
	view := m.View()
	if !strings.Contains(view, "unavailable") {
		t.Errorf("view without store should say history is unavailable:\n%s", view)
	}
}

func TestHistoryEmptyStore(t *testing.T) {
	m := NewHistoryModel(openTestStore(t), 100, 30)
	if !strings.Contains(m.View(), "No duels recorded yet") {
		t.Errorf("empty store should show placeholder:\n%s", m.View())
	}
}

func TestHistoryShowsDuels(t *testing.T) {
	store := openTestStore(t)
	reports := []core.DuelReport{
		{Score: 5, Policy: "greedy", Respawns: 1, Ticks: 300},
		{Score: 12, Policy: "minimax", Respawns: 3, Failures: 1, Ticks: 900},
	}
	for _, r := range reports {
		if _, err := store.SaveDuel("duel", r); err != nil {
			t.Fatalf("SaveDuel: %v", err)
		}
	}

	m := NewHistoryModel(store, 120, 30)
	if len(m.duels) != 2 {
		t.Fatalf("loaded %d duels, want 2", len(m.duels))
	}
	if len(m.table.Rows()) != 2 {
		t.Errorf("table has %d rows, want 2", len(m.table.Rows()))
	}

	line := m.statsLine()
	if !strings.Contains(line, "greedy: 1 duels") || !strings.Contains(line, "minimax: 1 duels") {
		t.Errorf("statsLine() = %q", line)
	}
}

func TestHistoryRows(t *testing.T) {
	at := time.Date(2026, 3, 4, 15, 6, 0, 0, time.UTC)
	rows := historyRows([]storage.DuelRecord{
		{ID: 7, GameID: "duel", Score: 9, Policy: "minimax", Respawns: 2, Failures: 1, Ticks: 42, CreatedAt: at},
	})
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	want := []string{"7", "duel", "9", "minimax", "2", "1", "42", "Mar 04 15:06"}
	for i, cell := range want {
		if rows[0][i] != cell {
			t.Errorf("column %d = %q, want %q", i, rows[0][i], cell)
		}
	}
}

func TestHistoryKeys(t *testing.T) {
	tests := []struct {
		name     string
		msg      tea.KeyMsg
		back     bool
		quitting bool
	}{
		{"esc goes back", tea.KeyMsg{Type: tea.KeyEsc}, true, false},
		{"b goes back", runeKey('b'), true, false},
		{"q quits", runeKey('q'), false, true},
		{"down scrolls", tea.KeyMsg{Type: tea.KeyDown}, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, _ := NewHistoryModel(nil, 100, 30).Update(tt.msg)
			m := next.(HistoryModel)
			if m.IsGoingBack() != tt.back || m.IsQuitting() != tt.quitting {
				t.Errorf("back=%v quitting=%v, want %v %v", m.IsGoingBack(), m.IsQuitting(), tt.back, tt.quitting)
			}
		})
	}
}

func TestHistoryTabsWrap(t *testing.T) {
	m := NewHistoryModel(nil, 100, 30)
	n := len(m.filters)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m = next.(HistoryModel)
	if m.cursor != n-1 {
		t.Errorf("cursor after shift+tab = %d, want %d", m.cursor, n-1)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(HistoryModel)
	if m.cursor != 0 {
		t.Errorf("cursor after tab = %d, want 0", m.cursor)
	}
}
