package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tilesim/internal/core"
	"github.com/vovakirdan/tilesim/internal/storage"
)

// MenuItem is a level chosen from the menu.
type MenuItem struct {
	ScenarioID string
	Title      string
	Stats      storage.LevelStats
}

// MenuModel is the level picker shown before a world starts. Each level
// is listed with its recorded history from the runs database.
type MenuModel struct {
	picker         levelPicker
	stats          map[string]storage.LevelStats
	config         core.RuntimeConfig
	keyMapper      *KeyMapper
	quitting       bool
	selected       *MenuItem
	openScoreboard bool
}

// NewMenuModel creates a menu over all registered levels. A nil store
// leaves every level without history.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig) MenuModel {
	picker := newLevelPicker()
	stats := make(map[string]storage.LevelStats, len(picker.levels))
	if store != nil {
		for _, lvl := range picker.levels {
			if st, err := store.LevelStats(lvl.ID); err == nil {
				stats[lvl.ID] = st
			}
		}
	}

	return MenuModel{
		picker:    picker,
		stats:     stats,
		config:    cfg,
		keyMapper: NewKeyMapper(),
	}
}

func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles navigation. Selecting a level or opening the scoreboard
// quits the menu program so the caller can hand over.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height

	case tea.KeyMsg:
		switch m.keyMapper.MapKeyToMenuAction(msg) {
		case MenuActionQuit:
			m.quitting = true
			return m, tea.Quit
		case MenuActionUp:
			m.picker.move(-1)
		case MenuActionDown:
			m.picker.move(1)
		case MenuActionSelect:
			if lvl, ok := m.picker.current(); ok {
				m.selected = &MenuItem{ScenarioID: lvl.ID, Title: lvl.Title, Stats: m.stats[lvl.ID]}
				return m, tea.Quit
			}
		case MenuActionScoreboard:
			m.openScoreboard = true
			return m, tea.Quit
		}
	}
	return m, nil
}

// statsLine summarises a level's history in one line.
func statsLine(st storage.LevelStats) string {
	if st.Runs == 0 {
		return "no runs yet"
	}
	runs := "runs"
	if st.Runs == 1 {
		runs = "run"
	}
	return fmt.Sprintf("%d %s  best %d  longest %d ticks  grown %d", st.Runs, runs, st.BestScore, st.LongestRun, st.Grown)
}

func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}
	w := m.config.ScreenW

	var list strings.Builder
	for i, lvl := range m.picker.levels {
		if i > 0 {
			list.WriteString("\n")
		}
		line := fmt.Sprintf("  %-16s", lvl.Title)
		if best := m.stats[lvl.ID].BestScore; best > 0 {
			line += fmt.Sprintf(" %6d", best)
		} else {
			line += "      -"
		}
		if i == m.picker.cursor {
			list.WriteString(activeStyle.Render(">" + line[1:] + " "))
			continue
		}
		list.WriteString(line)
	}

	detail := "no levels registered"
	if lvl, ok := m.picker.current(); ok {
		detail = lvl.ID + ": " + statsLine(m.stats[lvl.ID])
	}

	return strings.Join([]string{
		"",
		center(w, titleStyle.Render("T I L E S I M")),
		"",
		center(w, frameStyle.Render(list.String())),
		center(w, helpStyle.Render(detail)),
		"",
		center(w, helpStyle.Render("↑/↓ level  enter play  tab best runs  q quit")),
	}, "\n")
}

// Selected returns the chosen level, or nil if none was chosen.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the runtime config, resized if the terminal changed.
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// MenuResult is what the standalone menu program hands back.
type MenuResult struct {
	ScenarioID      string
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunMenu runs the menu as its own program.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig) (MenuResult, error) {
	final, err := tea.NewProgram(NewMenuModel(store, cfg), tea.WithAltScreen()).Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := final.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	result := MenuResult{Config: m.Config(), WantsScoreboard: m.WantsScoreboard()}
	switch {
	case result.WantsScoreboard:
	case m.Selected() != nil:
		result.ScenarioID = m.Selected().ScenarioID
	default:
		result.Quit = true
	}
	return result, nil
}
