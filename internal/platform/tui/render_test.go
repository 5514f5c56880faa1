package tui

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tilesim/internal/core"
	"github.com/vovakirdan/tilesim/internal/sim"
)

func TestPaintDescriptors(t *testing.T) {
	s := core.NewScreen(10, 4)
	ds := []sim.Descriptor{
		{Color: core.RGB(0x033499), X: 0, Y: 0, W: sim.TileSize, H: sim.TileSize},
		{Color: core.RGB(0x00ff00), X: 2 * sim.TileSize, Y: sim.TileSize, W: sim.TileSize, H: sim.TileSize},
	}

	PaintDescriptors(s, ds, 1, 1)

	tests := []struct {
		x, y    int
		colored bool
		color   core.RGB
	}{
		{1, 1, true, 0x033499},
		{2, 1, true, 0x033499},
		{3, 1, false, 0},
		{5, 2, true, 0x00ff00},
		{6, 2, true, 0x00ff00},
		{7, 2, false, 0},
	}
	for _, tt := range tests {
		cell := s.GetCell(tt.x, tt.y)
		if cell.Colored != tt.colored {
			t.Errorf("GetCell(%d, %d).Colored = %v, expected %v", tt.x, tt.y, cell.Colored, tt.colored)
			continue
		}
		if tt.colored && cell.Color != tt.color {
			t.Errorf("GetCell(%d, %d).Color = %v, expected %v", tt.x, tt.y, cell.Color, tt.color)
		}
	}
}

func TestPaintDescriptorsOffScreen(t *testing.T) {
	s := core.NewScreen(4, 2)
	ds := []sim.Descriptor{
		{Color: core.ColorWhite, X: 50 * sim.TileSize, Y: 50 * sim.TileSize, W: sim.TileSize, H: sim.TileSize},
		{Color: core.ColorWhite, W: 0, H: 0},
	}

	PaintDescriptors(s, ds, 0, 0)

	for y := range s.Height() {
		for x := range s.Width() {
			if s.GetCell(x, y).Colored {
				t.Fatalf("GetCell(%d, %d) painted by off-screen descriptor", x, y)
			}
		}
	}
}

func TestGridSize(t *testing.T) {
	w, h := GridSize(sim.FilledGrid(10, 10, sim.TileBlocking))
	if w != 20 || h != 10 {
		t.Errorf("GridSize() = (%d, %d), expected (20, 10)", w, h)
	}
}

func TestRenderScreen(t *testing.T) {
	s := core.NewScreen(6, 2)
	s.DrawText(0, 0, "hp 9")
	s.PaintRect(0, 1, 2, 1, 'x', core.RGB(0xff0000))

	out := RenderScreen(s)

	if got := strings.Count(out, "\n"); got != 1 {
		t.Errorf("RenderScreen() line breaks = %d, expected 1", got)
	}
	if !strings.Contains(out, "hp 9") {
		t.Errorf("RenderScreen() = %q, expected it to contain %q", out, "hp 9")
	}
	if !strings.Contains(out, "xx") {
		t.Errorf("RenderScreen() = %q, expected it to contain %q", out, "xx")
	}
}
