package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"

	"github.com/vovakirdan/snake-rival/internal/registry"
	"github.com/vovakirdan/snake-rival/internal/storage"
)

const maxDuels = 100 // Max duels to load per view

// HistoryKeyMap defines the key bindings for the duel history.
type HistoryKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextGame key.Binding
	PrevGame key.Binding
	Back     key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k HistoryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextGame, k.PrevGame, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k HistoryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextGame, k.PrevGame},
		{k.Back, k.Quit},
	}
}

// DefaultHistoryKeyMap returns default key bindings.
func DefaultHistoryKeyMap() HistoryKeyMap {
	return HistoryKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextGame: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next game"),
		),
		PrevGame: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev game"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// historyFilter is one tab of the history view; an empty GameID shows every game.
type historyFilter struct {
	GameID string
	Title  string
}

// HistoryModel is the Bubble Tea model for browsing recorded duels.
type HistoryModel struct {
	filters   []historyFilter
	cursor    int
	store     *storage.Store
	duels     []storage.DuelRecord
	stats     []storage.PolicyStats
	loadErr   error
	table     table.Model
	help      help.Model
	keys      HistoryKeyMap
	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewHistoryModel creates a new history model. store may be nil.
func NewHistoryModel(store *storage.Store, width, height int) HistoryModel {
	filters := append([]historyFilter{{Title: "All duels"}},
		lo.Map(registry.List(), func(g registry.GameInfo, _ int) historyFilter {
			return historyFilter{GameID: g.ID, Title: g.Title}
		})...)

	h := help.New()
	h.ShowAll = false

	m := HistoryModel{
		filters: filters,
		store:   store,
		keys:    DefaultHistoryKeyMap(),
		help:    h,
		width:   width,
		height:  height,
	}
	m.table = m.createTable()
	m.load()
	return m
}

// createTable creates a new table sized to the window.
func (m *HistoryModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 5},
		{Title: "Game", Width: 13},
		{Title: "Score", Width: 6},
		{Title: "Rival", Width: 8},
		{Title: "Spawns", Width: 7},
		{Title: "Fails", Width: 6},
		{Title: "Ticks", Width: 7},
		{Title: "Date", Width: 13},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(3, m.height-10)), // Leave room for header, stats and help
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("22")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// load refreshes duels for the current tab and the per-policy summary.
func (m *HistoryModel) load() {
	m.duels, m.stats, m.loadErr = nil, nil, nil
	if m.store != nil {
		m.duels, m.loadErr = m.store.RecentDuels(m.filters[m.cursor].GameID, maxDuels)
		if m.loadErr == nil {
			m.stats, m.loadErr = m.store.GetPolicyStats()
		}
	}
	m.updateTableRows()
}

// updateTableRows updates the table with the loaded duels.
func (m *HistoryModel) updateTableRows() {
	m.table.SetRows(historyRows(m.duels))
	m.table.GotoTop()
}

// historyRows formats duels as table rows.
func historyRows(duels []storage.DuelRecord) []table.Row {
	return lo.Map(duels, func(d storage.DuelRecord, _ int) table.Row {
		return table.Row{
			fmt.Sprintf("%d", d.ID),
			d.GameID,
			fmt.Sprintf("%d", d.Score),
			d.Policy,
			fmt.Sprintf("%d", d.Respawns),
			fmt.Sprintf("%d", d.Failures),
			fmt.Sprintf("%d", d.Ticks),
			d.CreatedAt.Format("Jan 02 15:04"),
		}
	})
}

// Init initializes the history model.
func (m HistoryModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the history view.
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextGame):
			m.cursor = (m.cursor + 1) % len(m.filters)
			m.load()
			return m, nil

		case key.Matches(msg, m.keys.PrevGame):
			m.cursor = (m.cursor - 1 + len(m.filters)) % len(m.filters)
			m.load()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	// Scrolling and everything else goes to the table
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

var (
	historyTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	historyBoxStyle   = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("240")).
				Padding(0, 1)
	historyDimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	historyTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("22")).
			Padding(0, 1)
)

// View renders the history.
func (m HistoryModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	b.WriteString(historyTitleStyle.Render(centerText("DUEL HISTORY", m.width)))
	b.WriteString("\n\n")

	tabs := lo.Map(m.filters, func(f historyFilter, i int) string {
		if i == m.cursor {
			return historyTabStyle.Render(f.Title)
		}
		return historyDimStyle.Render(" " + f.Title + " ")
	})
	b.WriteString(centerText(strings.Join(tabs, " "), m.width))
	b.WriteString("\n\n")

	b.WriteString(historyBoxStyle.Render(m.renderTableContent()))
	b.WriteString("\n")

	if line := m.statsLine(); line != "" {
		b.WriteString(historyDimStyle.Render(line))
		b.WriteString("\n")
	}

	b.WriteString(historyDimStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// statsLine summarises every recorded duel by rival policy.
func (m HistoryModel) statsLine() string {
	if len(m.stats) == 0 {
		return ""
	}
	parts := lo.Map(m.stats, func(s storage.PolicyStats, _ int) string {
		return fmt.Sprintf("%s: %d duels, avg %.1f", s.Policy, s.Duels, s.AvgScore)
	})
	return "By rival  " + strings.Join(parts, "  |  ")
}

// renderTableContent renders the table or a placeholder.
func (m HistoryModel) renderTableContent() string {
	empty := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(1, 4)

	switch {
	case m.store == nil:
		return empty.Render("Duel history is unavailable without a database.")
	case m.loadErr != nil:
		return empty.Render("Could not load duels: " + m.loadErr.Error())
	case len(m.duels) == 0:
		return empty.Render("No duels recorded yet.\nPlay one to start the history!")
	}
	return m.table.View()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m HistoryModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m HistoryModel) IsQuitting() bool {
	return m.quitting
}

// RunHistory runs the duel history screen.
// Returns true if user wants to go back, false if quitting.
func RunHistory(store *storage.Store, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(
		NewHistoryModel(store, width, height),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(HistoryModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
