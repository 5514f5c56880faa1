package main

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tilesim/internal/core"
	"github.com/vovakirdan/tilesim/internal/registry"
	"github.com/vovakirdan/tilesim/internal/sim"
)

func TestParseScript(t *testing.T) {
	tests := []struct {
		input    string
		expected []core.Vector2
		wantErr  bool
	}{
		{"R,R,D", []core.Vector2{core.V(1, 0), core.V(1, 0), core.V(0, 1)}, false},
		{" u , left ,.", []core.Vector2{core.V(0, -1), core.V(-1, 0), core.V(0, 0)}, false},
		{"", []core.Vector2{core.V(0, 0)}, false},
		{"R,X", nil, true},
	}

	for _, tt := range tests {
		got, err := parseScript(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseScript(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if tt.wantErr {
			continue
		}
		if len(got) != len(tt.expected) {
			t.Errorf("parseScript(%q) = %v, expected %v", tt.input, got, tt.expected)
			continue
		}
		for i := range got {
			if got[i] != tt.expected[i] {
				t.Errorf("parseScript(%q)[%d] = %v, expected %v", tt.input, i, got[i], tt.expected[i])
			}
		}
	}
}

func TestDriveClassic(t *testing.T) {
	w, err := registry.NewWorld("classic", sim.DefaultRules())
	if err != nil {
		t.Fatalf("NewWorld(classic) error = %v", err)
	}

	buf := drive(w, 3, []core.Vector2{core.V(0, 1), core.V(0, 0)}, log.New(io.Discard), 1)

	if w.TickCount() != 3 {
		t.Errorf("TickCount() = %d, expected 3", w.TickCount())
	}
	// 100 tiles plus 3 entities.
	if len(buf) != 103*sim.ValuesPerDescriptor {
		t.Errorf("len(buf) = %d, expected %d", len(buf), 103*sim.ValuesPerDescriptor)
	}
	// Down, idle, down.
	if got := w.Entities().At(0).Position; got != core.V(1, 3) {
		t.Errorf("player position = %v, expected %v", got, core.V(1, 3))
	}
}

func TestRunReport(t *testing.T) {
	w, err := registry.NewWorld("classic", sim.DefaultRules())
	if err != nil {
		t.Fatalf("NewWorld(classic) error = %v", err)
	}
	buf := w.Tick(core.Vector2{})

	r := newRunReport("classic", w, buf)
	if r.Tick != 1 || len(r.Entities) != 3 || len(r.Render) != 103 {
		t.Fatalf("report = tick %d, %d entities, %d groups; expected 1, 3, 103", r.Tick, len(r.Entities), len(r.Render))
	}
	if r.Entities[0].Team != "player" || len(r.Entities[0].Behaviors) != 3 {
		t.Errorf("Entities[0] = %+v, expected the player with 3 behaviors", r.Entities[0])
	}

	var text bytes.Buffer
	writeText(&text, r)
	if !strings.Contains(text.String(), "Level classic after 1 ticks") {
		t.Errorf("writeText() = %q, expected level header", text.String())
	}

	var out bytes.Buffer
	if err := writeYAML(&out, r); err != nil {
		t.Fatalf("writeYAML() error = %v", err)
	}
	var decoded runReport
	if err := yaml.Unmarshal(out.Bytes(), &decoded); err != nil {
		t.Fatalf("yaml.Unmarshal() error = %v", err)
	}
	if decoded.Level != "classic" || len(decoded.Render) != 103 || decoded.Render[0][3] != sim.TileSize {
		t.Errorf("decoded report = level %q, %d groups", decoded.Level, len(decoded.Render))
	}
}
