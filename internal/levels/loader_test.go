package levels_test

import (
	"errors"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/vovakirdan/tilesim/internal/core"
	"github.com/vovakirdan/tilesim/internal/levels"
	"github.com/vovakirdan/tilesim/internal/levels/formats"
	"github.com/vovakirdan/tilesim/internal/registry"
	"github.com/vovakirdan/tilesim/internal/sim"
)

// getTestdataPath returns path to testdata/levels.
func getTestdataPath() string {
	_, filename, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(filename), "testdata", "levels")
}

func TestLoaderLoadAll(t *testing.T) {
	loader := levels.NewLoader(getTestdataPath())

	lvls, err := loader.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}

	// broken.yaml and notes.txt are skipped.
	if len(lvls) != 2 {
		t.Fatalf("expected 2 levels, got %d", len(lvls))
	}
	if lvls[0].ID != "box" || lvls[1].ID != "corridor" {
		t.Errorf("expected [box corridor], got [%s %s]", lvls[0].ID, lvls[1].ID)
	}
}

func TestLoaderLoadByID(t *testing.T) {
	loader := levels.NewLoader(getTestdataPath())

	lvl, err := loader.LoadByID("corridor")
	if err != nil {
		t.Fatalf("LoadByID failed: %v", err)
	}
	if lvl.Name != "Corridor" {
		t.Errorf("expected Name 'Corridor', got %q", lvl.Name)
	}
	if lvl.Width != 5 || lvl.Height != 5 {
		t.Errorf("expected 5x5, got %dx%d", lvl.Width, lvl.Height)
	}

	if _, err := loader.LoadByID("nope"); !errors.Is(err, levels.ErrNotFound) {
		t.Errorf("LoadByID(nope) error = %v, expected ErrNotFound", err)
	}
}

func TestLoaderListIDs(t *testing.T) {
	ids, err := levels.NewLoader(getTestdataPath()).ListIDs()
	if err != nil {
		t.Fatalf("ListIDs failed: %v", err)
	}
	if len(ids) != 2 || ids[0] != "box" {
		t.Errorf("ListIDs() = %v, expected [box corridor]", ids)
	}
}

func TestLoaderLoadFileInvalid(t *testing.T) {
	_, err := levels.NewLoader("").LoadFile(filepath.Join(getTestdataPath(), "broken.yaml"))
	var verr formats.ValidationError
	if !errors.As(err, &verr) || verr.Code != "RAGGED_LAYOUT" {
		t.Errorf("LoadFile(broken) error = %v, expected RAGGED_LAYOUT", err)
	}
}

func TestLevelNewWorld(t *testing.T) {
	lvl, err := levels.NewLoader(getTestdataPath()).LoadByID("corridor")
	if err != nil {
		t.Fatalf("LoadByID failed: %v", err)
	}

	w, err := lvl.NewWorld(sim.DefaultRules())
	if err != nil {
		t.Fatalf("NewWorld failed: %v", err)
	}
	if w.Len() != 2 {
		t.Fatalf("Len() = %d, expected 2", w.Len())
	}
	if c := w.Entities().At(1).BaseColor; c != 0xabcdef {
		t.Errorf("food colour = %v, expected 0xabcdef", c)
	}

	// The corridor runs along row 1. The first step lands on (2,1); food is
	// hostile to the player, so the next two steps onto it are cancelled
	// and cost one health each.
	for i := 0; i < 3; i++ {
		w.Process(core.V(1, 0))
	}
	player := w.Entities().At(0)
	if player.Position != core.V(2, 1) {
		t.Errorf("player Position = %v, expected (2,1)", player.Position)
	}
	if player.Health != 8 {
		t.Errorf("player Health = %d, expected 8", player.Health)
	}
	w.Process(core.V(0, 1))
	if got := w.Entities().At(0).Position; got != core.V(2, 1) {
		t.Errorf("player Position = %v after moving into wall, expected (2,1)", got)
	}
}

func TestLevelCustomEntity(t *testing.T) {
	lvl, err := levels.NewLoader(getTestdataPath()).LoadByID("box")
	if err != nil {
		t.Fatalf("LoadByID failed: %v", err)
	}
	rules := sim.DefaultRules()
	rules.FallTime = 0

	w, err := lvl.NewWorld(rules)
	if err != nil {
		t.Fatalf("NewWorld failed: %v", err)
	}
	st := w.Entities().At(0)
	if st.Team != sim.TeamEnemy || st.Health != 2 || st.MaxHealth != 4 {
		t.Errorf("custom entity = %+v", st)
	}

	w.Process(core.Vector2{})
	if got := w.Entities().At(0).Position; got != core.V(1, 2) {
		t.Errorf("Position = %v after one fall, expected (1,2)", got)
	}
	w.Process(core.Vector2{})
	if got := w.Entities().At(0).Position; got != core.V(1, 2) {
		t.Errorf("Position = %v on the floor, expected (1,2)", got)
	}
}

func TestToGridAddressing(t *testing.T) {
	lvl := levels.Level{
		ID:     "t",
		Width:  3,
		Height: 3,
		Layout: []string{
			"#..",
			"...",
			"..#",
		},
	}
	g, err := lvl.ToGrid()
	if err != nil {
		t.Fatalf("ToGrid failed: %v", err)
	}
	if g.Passable(core.V(0, 0)) || g.Passable(core.V(2, 2)) {
		t.Error("walls at (0,0) and (2,2) should block")
	}
	if !g.Passable(core.V(1, 0)) || !g.Passable(core.V(0, 2)) {
		t.Error("floors at (1,0) and (0,2) should pass")
	}
}

func TestNewWorldErrors(t *testing.T) {
	base := levels.Level{ID: "e", Width: 3, Height: 3, Layout: []string{"...", "...", "..."}}

	tests := []struct {
		name   string
		entity formats.YAMLEntity
	}{
		{"unknown kind", formats.YAMLEntity{Kind: "dragon", X: 1, Y: 1}},
		{"unknown team", formats.YAMLEntity{Kind: "custom", Team: "neutral", X: 1, Y: 1}},
		{"unknown behavior", formats.YAMLEntity{Kind: "custom", Team: "enemy", X: 1, Y: 1, Behaviors: []string{"fly"}}},
		{"bad colour", formats.YAMLEntity{Kind: "player", X: 1, Y: 1, Color: "green"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			lvl := base
			lvl.Entities = []formats.YAMLEntity{tc.entity}
			if _, err := lvl.NewWorld(sim.DefaultRules()); err == nil {
				t.Error("NewWorld() expected error")
			}
		})
	}
}

func TestSnakeOverrideNotInherited(t *testing.T) {
	health := uint32(5)
	lvl := levels.Level{
		ID:     "s",
		Width:  3,
		Height: 3,
		Layout: []string{"...", "...", "..."},
		Entities: []formats.YAMLEntity{
			{Kind: "snake-head", X: 1, Y: 1, Health: &health, MaxHealth: &health, Color: "#123456"},
			{Kind: "food", X: 2, Y: 1},
		},
	}
	rules := sim.DefaultRules()
	rules.SpawnCooldown = 0

	w, err := lvl.NewWorld(rules)
	if err != nil {
		t.Fatalf("NewWorld failed: %v", err)
	}
	w.Process(core.V(0, 0))

	roster := w.Entities()
	if roster.Len() != 3 {
		t.Fatalf("roster size = %d, expected 3 after a spawn", roster.Len())
	}
	head := roster.At(0)
	if head.Health != 5 || head.BaseColor != 0x123456 {
		t.Errorf("head = health %d colour %v, expected 5 and 0x123456", head.Health, head.BaseColor)
	}
	seg := roster.At(2)
	if seg.Health != rules.Snake.Health || seg.BaseColor != rules.Snake.Color {
		t.Errorf("segment = health %d colour %v, expected %d and %v",
			seg.Health, seg.BaseColor, rules.Snake.Health, rules.Snake.Color)
	}
}

func TestBuiltinLevels(t *testing.T) {
	lvls, err := levels.Builtin()
	if err != nil {
		t.Fatalf("Builtin() error = %v", err)
	}
	if len(lvls) < 3 {
		t.Fatalf("expected at least 3 built-in levels, got %d", len(lvls))
	}
	for _, lvl := range lvls {
		if _, err := lvl.NewWorld(sim.DefaultRules()); err != nil {
			t.Errorf("%s: NewWorld() error = %v", lvl.ID, err)
		}
		if !registry.Exists(lvl.ID) {
			t.Errorf("%s: not registered", lvl.ID)
		}
	}
}

func TestClassicLevel(t *testing.T) {
	w, err := registry.NewWorld("classic", sim.DefaultRules())
	if err != nil {
		t.Fatalf("NewWorld(classic) error = %v", err)
	}

	roster := w.Entities()
	expected := []struct {
		team sim.Team
		pos  core.Vector2
	}{
		{sim.TeamPlayer, core.V(1, 1)},
		{sim.TeamEnemy, core.V(2, 3)},
		{sim.TeamFood, core.V(7, 7)},
	}
	if roster.Len() != len(expected) {
		t.Fatalf("roster size = %d, expected %d", roster.Len(), len(expected))
	}
	for i, e := range expected {
		st := roster.At(i)
		if st.Team != e.team || st.Position != e.pos {
			t.Errorf("entity %d = %v at %v, expected %v at %v", i, st.Team, st.Position, e.team, e.pos)
		}
	}

	// Border is walled and the flat tile order matches the classic map:
	// index 20 (x=2, y=0) and index 21 (x=2, y=1) are walls, index 23 is floor.
	g := w.Grid()
	for _, p := range []core.Vector2{core.V(0, 5), core.V(9, 5), core.V(5, 0), core.V(5, 9), core.V(2, 0), core.V(2, 1)} {
		if g.Passable(p) {
			t.Errorf("Passable(%v) = true, expected wall", p)
		}
	}
	if !g.Passable(core.V(2, 3)) {
		t.Error("Passable((2,3)) = false, expected floor")
	}

	// 100 tiles plus 3 entities.
	if got := len(w.Render()); got != 103*sim.ValuesPerDescriptor {
		t.Errorf("len(Render()) = %d, expected %d", got, 103*sim.ValuesPerDescriptor)
	}
}

func TestLoaderCheck(t *testing.T) {
	results, err := levels.NewLoader(getTestdataPath()).Check(sim.DefaultRules())
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}

	expected := []struct {
		file string
		id   string
		ok   bool
	}{
		{"broken.yaml", "", false},
		{"corridor.yaml", "corridor", true},
		{filepath.Join("nested", "box.yml"), "box", true},
	}
	if len(results) != len(expected) {
		t.Fatalf("Check() returned %d results, expected %d", len(results), len(expected))
	}
	for i, e := range expected {
		r := results[i]
		if r.Path != filepath.Join(getTestdataPath(), e.file) {
			t.Errorf("results[%d].Path = %s, expected %s", i, r.Path, e.file)
		}
		if r.ID != e.id {
			t.Errorf("results[%d].ID = %q, expected %q", i, r.ID, e.id)
		}
		if (r.Err == nil) != e.ok {
			t.Errorf("results[%d].Err = %v, expected ok=%v", i, r.Err, e.ok)
		}
	}
}

func TestRegisterDir(t *testing.T) {
	added, err := levels.RegisterDir(getTestdataPath())
	if err != nil {
		t.Fatalf("RegisterDir failed: %v", err)
	}
	if len(added) != 2 {
		t.Errorf("RegisterDir() added %v, expected [box corridor]", added)
	}
	for _, id := range []string{"box", "corridor"} {
		if !registry.Exists(id) {
			t.Errorf("%s: not registered", id)
		}
	}

	again, err := levels.RegisterDir(getTestdataPath())
	if err != nil {
		t.Fatalf("RegisterDir (second) failed: %v", err)
	}
	if len(again) != 0 {
		t.Errorf("second RegisterDir() added %v, expected none", again)
	}
}
