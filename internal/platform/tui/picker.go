package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tilesim/internal/registry"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	activeStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57"))
	frameStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
)

// levelPicker is a wrapping cursor over the registered levels. The menu
// and the scoreboard both browse levels through it.
type levelPicker struct {
	levels []registry.ScenarioInfo
	cursor int
}

func newLevelPicker() levelPicker {
	return levelPicker{levels: registry.List()}
}

// current returns the highlighted level.
func (p levelPicker) current() (registry.ScenarioInfo, bool) {
	if len(p.levels) == 0 {
		return registry.ScenarioInfo{}, false
	}
	return p.levels[p.cursor], true
}

// move shifts the cursor by delta, wrapping at both ends.
func (p *levelPicker) move(delta int) {
	n := len(p.levels)
	if n == 0 {
		return
	}
	p.cursor = ((p.cursor+delta)%n + n) % n
}

// strip renders the levels as a single line of tabs. When they do not fit
// in width only the highlighted level is shown, between arrows.
func (p levelPicker) strip(width int) string {
	cur, ok := p.current()
	if !ok {
		return helpStyle.Render("no levels registered")
	}

	tabs := make([]string, len(p.levels))
	for i, lvl := range p.levels {
		if i == p.cursor {
			tabs[i] = activeStyle.Render(" " + lvl.Title + " ")
		} else {
			tabs[i] = helpStyle.Render(" " + lvl.Title + " ")
		}
	}
	line := strings.Join(tabs, " ")
	if lipgloss.Width(line) > width {
		line = "< " + activeStyle.Render(" "+cur.Title+" ") + " >"
	}
	return line
}

// center places a block in the middle of a line of the given width.
func center(width int, s string) string {
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, s)
}
