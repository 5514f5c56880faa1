package tui

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tilesim/internal/registry"
)

func testPicker() levelPicker {
	return levelPicker{levels: []registry.ScenarioInfo{
		{ID: "a", Title: "Alpha"},
		{ID: "b", Title: "Beta"},
		{ID: "c", Title: "Gamma"},
	}}
}

func TestLevelPickerMove(t *testing.T) {
	tests := []struct {
		delta    int
		expected string
	}{
		{1, "b"},
		{2, "c"},
		{3, "a"},
		{-1, "c"},
		{-4, "c"},
	}

	for _, tt := range tests {
		p := testPicker()
		p.move(tt.delta)
		got, ok := p.current()
		if !ok || got.ID != tt.expected {
			t.Errorf("move(%d) landed on %q, expected %q", tt.delta, got.ID, tt.expected)
		}
	}
}

func TestLevelPickerEmpty(t *testing.T) {
	var p levelPicker
	p.move(1)
	if _, ok := p.current(); ok {
		t.Error("current() ok = true on an empty picker, expected false")
	}
	if got := p.strip(80); !strings.Contains(got, "no levels") {
		t.Errorf("strip() = %q, expected a no-levels notice", got)
	}
}

func TestLevelPickerStrip(t *testing.T) {
	p := testPicker()
	p.move(1)

	wide := p.strip(80)
	for _, title := range []string{"Alpha", "Beta", "Gamma"} {
		if !strings.Contains(wide, title) {
			t.Errorf("strip(80) = %q, expected it to contain %q", wide, title)
		}
	}

	narrow := p.strip(10)
	if !strings.Contains(narrow, "Beta") {
		t.Errorf("strip(10) = %q, expected the current level", narrow)
	}
	if strings.Contains(narrow, "Alpha") || strings.Contains(narrow, "Gamma") {
		t.Errorf("strip(10) = %q, expected only the current level", narrow)
	}
}
