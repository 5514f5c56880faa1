package tui

import (
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tilesim/internal/core"
	"github.com/vovakirdan/tilesim/internal/sim"
)

// CellsPerTile is how many terminal columns one tile spans; two columns
// keep tiles roughly square.
const CellsPerTile = 2

var (
	styleMu    sync.Mutex
	styleCache = map[core.RGB]lipgloss.Style{}
	plainStyle = lipgloss.NewStyle()
)

// styleFor returns a true-colour background style for c.
func styleFor(c core.RGB) lipgloss.Style {
	styleMu.Lock()
	defer styleMu.Unlock()

	if s, ok := styleCache[c]; ok {
		return s
	}
	s := lipgloss.NewStyle().Background(lipgloss.Color(c.Hex()))
	styleCache[c] = s
	return s
}

// PaintDescriptors paints render descriptors into the screen with the
// top-left tile at (originX, originY). Pixel coordinates are converted
// back to tiles; anything that lands off screen is dropped by the screen.
func PaintDescriptors(s *core.Screen, ds []sim.Descriptor, originX, originY int) {
	for _, d := range ds {
		if d.W == 0 || d.H == 0 {
			continue
		}
		col := int(d.X / sim.TileSize)
		row := int(d.Y / sim.TileSize)
		w := max(1, int(d.W/sim.TileSize))
		h := max(1, int(d.H/sim.TileSize))
		s.PaintRect(originX+col*CellsPerTile, originY+row, w*CellsPerTile, h, ' ', d.Color.Masked())
	}
}

// GridSize returns the on-screen size of a grid in cells.
func GridSize(g *sim.Grid) (w, h int) {
	return int(g.Width()) * CellsPerTile, int(g.Height())
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		// Group consecutive cells with the same color for efficiency
		x := 0
		for x < s.Width() {
			start := s.GetCell(x, y)

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Colored != start.Colored || cell.Color != start.Color {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			if !start.Colored {
				sb.WriteString(plainStyle.Render(run.String()))
				continue
			}
			sb.WriteString(styleFor(start.Color).Render(run.String()))
		}
	}
	return sb.String()
}
