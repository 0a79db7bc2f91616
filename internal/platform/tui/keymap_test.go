package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/snake-rival/internal/core"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		name   string
		msg    tea.KeyMsg
		action core.Action
		quit   bool
	}{
		{"arrow up", tea.KeyMsg{Type: tea.KeyUp}, core.ActionUp, false},
		{"arrow left", tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft, false},
		{"wasd down", runeKey('s'), core.ActionDown, false},
		{"wasd right", runeKey('d'), core.ActionRight, false},
		{"pause", runeKey('p'), core.ActionPause, false},
		{"restart", runeKey('r'), core.ActionRestart, false},
		{"quit", runeKey('q'), core.ActionQuit, true},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{"unbound", runeKey('z'), core.ActionNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, quit := km.MapKey(tt.msg)
			if action != tt.action || quit != tt.quit {
				t.Errorf("MapKey(%q) = %v, %v; want %v, %v", tt.msg.String(), action, quit, tt.action, tt.quit)
			}
		})
	}
}

func TestMapKeyToFrame(t *testing.T) {
	km := NewKeyMapper()
	frame := core.NewInputFrame()

	if km.MapKeyToFrame(tea.KeyMsg{Type: tea.KeyRight}, &frame) {
		t.Fatal("right arrow is not a quit key")
	}
	if !frame.Has(core.ActionRight) {
		t.Error("frame missing ActionRight")
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()

	if got := km.MapKeyToMenuAction(tea.KeyMsg{Type: tea.KeyTab}); got != MenuActionHistory {
		t.Errorf("tab = %v, want MenuActionHistory", got)
	}
	if got := km.MapKeyToMenuAction(tea.KeyMsg{Type: tea.KeyEnter}); got != MenuActionSelect {
		t.Errorf("enter = %v, want MenuActionSelect", got)
	}
	if got := km.MapKeyToMenuAction(runeKey('j')); got != MenuActionDown {
		t.Errorf("j = %v, want MenuActionDown", got)
	}
}
