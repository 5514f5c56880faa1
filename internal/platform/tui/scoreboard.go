package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tilesim/internal/storage"
)

// maxRuns caps how many runs one level's table loads.
const maxRuns = 100

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	NextLevel key.Binding
	PrevLevel key.Binding
	Back      key.Binding
	Quit      key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextLevel, k.PrevLevel, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.NextLevel, k.PrevLevel}, {k.Back, k.Quit}}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "scroll")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "scroll")),
		NextLevel: key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab/→", "next level")),
		PrevLevel: key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("S-tab/←", "prev level")),
		Back:      key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc/b", "back")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ScoreboardModel shows the best runs of one level at a time.
type ScoreboardModel struct {
	picker    levelPicker
	store     *storage.Store
	runs      []storage.RunRecord
	stats     storage.LevelStats
	table     table.Model
	help      help.Model
	keys      ScoreboardKeyMap
	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewScoreboardModel creates a scoreboard opened on the first level.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		picker: newLevelPicker(),
		store:  store,
		help:   help.New(),
		keys:   DefaultScoreboardKeyMap(),
		width:  width,
		height: height,
	}
	m.help.Width = width
	m.table = newRunTable(width, height)
	m.load()
	return m
}

// newRunTable sizes the runs table to the terminal. The player column
// takes whatever width is left.
func newRunTable(width, height int) table.Model {
	columns := RunColumns()
	used, player := 0, -1
	for i, c := range columns {
		if c.Title == "Player" {
			player = i
			continue
		}
		used += c.Width
	}
	if player >= 0 {
		columns[player].Width = max(columns[player].Width, min(24, width-used-10))
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(3, height-10)),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = activeStyle
	t.SetStyles(s)
	return t
}

// RunColumns returns the scoreboard table columns.
func RunColumns() []table.Column {
	return []table.Column{
		{Title: "Rank", Width: 5},
		{Title: "Score", Width: 7},
		{Title: "Ticks", Width: 7},
		{Title: "Grown", Width: 6},
		{Title: "End", Width: 9},
		{Title: "Player", Width: 10},
		{Title: "Date", Width: 13},
	}
}

// RunRows converts runs into table rows ranked from 1.
func RunRows(runs []storage.RunRecord) []table.Row {
	rows := make([]table.Row, len(runs))
	for i, r := range runs {
		player := r.Player
		if player == "" {
			player = "-"
		}
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			fmt.Sprintf("%d", r.Score),
			fmt.Sprintf("%d", r.Ticks),
			fmt.Sprintf("+%d", r.Spawned),
			r.Outcome,
			player,
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	return rows
}

// load fetches the highlighted level's runs and stats.
func (m *ScoreboardModel) load() {
	m.runs, m.stats = nil, storage.LevelStats{}
	if lvl, ok := m.picker.current(); ok && m.store != nil {
		if runs, err := m.store.TopRuns(lvl.ID, maxRuns); err == nil {
			m.runs = runs
		}
		if st, err := m.store.LevelStats(lvl.ID); err == nil {
			m.stats = st
		}
	}
	m.table.SetRows(RunRows(m.runs))
	m.table.GotoTop()
}

func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles level switching and table scrolling.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.NextLevel):
			m.picker.move(1)
			m.load()
			return m, nil
		case key.Matches(msg, m.keys.PrevLevel):
			m.picker.move(-1)
			m.load()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.table = newRunTable(m.width, m.height)
		m.load()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	body := helpStyle.Italic(true).Padding(1, 4).Render("No runs recorded yet.")
	if len(m.runs) > 0 {
		body = m.table.View()
	}

	summary := statsLine(m.stats)
	if m.stats.Completions > 0 {
		summary += fmt.Sprintf("  (%d complete)", m.stats.Completions)
	}

	return strings.Join([]string{
		"",
		center(m.width, titleStyle.Render("BEST RUNS")),
		"",
		center(m.width, m.picker.strip(m.width-4)),
		center(m.width, frameStyle.Render(body)),
		center(m.width, helpStyle.Render(summary)),
		"",
		helpStyle.Render(m.help.View(m.keys)),
	}, "\n")
}

// IsGoingBack reports whether the user asked to return to the menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard as its own program. It reports true
// when the user wants the menu back and false when they quit.
func RunScoreboard(store *storage.Store, width, height int) (bool, error) {
	final, err := tea.NewProgram(NewScoreboardModel(store, width, height), tea.WithAltScreen()).Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(ScoreboardModel)
	return ok && m.IsGoingBack(), nil
}
