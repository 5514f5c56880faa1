// Package levels loads level files and turns them into simulation worlds.
// This package depends on sim but sim does not depend on levels.
package levels

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vovakirdan/tilesim/internal/core"
	"github.com/vovakirdan/tilesim/internal/levels/formats"
	"github.com/vovakirdan/tilesim/internal/sim"
)

// ErrNotFound is returned when no level has the requested ID.
var ErrNotFound = errors.New("levels: level not found")

// Level represents a complete level definition.
type Level struct {
	ID          string
	Name        string
	Description string
	Width       int
	Height      int
	Layout      []string
	Entities    []formats.YAMLEntity
	Metadata    map[string]string
	FilePath    string
}

func fromParsed(p formats.Level, path string) Level {
	return Level{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Width:       p.Width,
		Height:      p.Height,
		Layout:      p.Layout,
		Entities:    p.Entities,
		Metadata:    p.Metadata,
		FilePath:    path,
	}
}

// ToGrid creates a Grid from the layout. Layout column x, row y lands at
// tile index x*width + y; flat slots no layout cell maps to are walls.
func (l *Level) ToGrid() (*sim.Grid, error) {
	w, h := l.Width, l.Height
	tiles := make([]sim.Tile, w*h)
	for i := range tiles {
		tiles[i] = sim.TileBlocking
	}
	for y, row := range l.Layout {
		for x, r := range row {
			idx := x*w + y
			if idx >= len(tiles) {
				continue
			}
			if r == formats.GlyphFloor {
				tiles[idx] = sim.TilePassable
			}
		}
	}
	return sim.NewGrid(uint32(w), uint32(h), tiles)
}

// NewWorld builds the grid and initial roster.
func (l *Level) NewWorld(rules sim.Rules) (*sim.World, error) {
	grid, err := l.ToGrid()
	if err != nil {
		return nil, fmt.Errorf("levels: %s: %w", l.ID, err)
	}

	entities := make([]*sim.Entity, 0, len(l.Entities))
	for i, ent := range l.Entities {
		e, err := buildEntity(ent, rules)
		if err != nil {
			return nil, fmt.Errorf("levels: %s: entity %d: %w", l.ID, i, err)
		}
		entities = append(entities, e)
	}
	return sim.NewWorld(grid, entities...), nil
}

// buildEntity resolves a prefab or custom entry.
func buildEntity(ent formats.YAMLEntity, rules sim.Rules) (*sim.Entity, error) {
	pos := core.V(ent.X, ent.Y)

	if ent.Kind != "custom" {
		team, ok := sim.PrefabTeam(ent.Kind)
		if !ok {
			return nil, fmt.Errorf("unknown kind %q", ent.Kind)
		}
		// Overrides apply to this entity only; its behaviors keep the
		// level's rules.
		p, err := overridePrefab(rules.PrefabFor(team), ent)
		if err != nil {
			return nil, err
		}
		return sim.NewPrefabWith(ent.Kind, pos, rules, p), nil
	}

	team, ok := sim.ParseTeam(ent.Team)
	if !ok {
		return nil, fmt.Errorf("unknown team %q", ent.Team)
	}
	p, err := overridePrefab(rules.PrefabFor(team), ent)
	if err != nil {
		return nil, err
	}
	behaviors := make([]sim.Behavior, 0, len(ent.Behaviors))
	for _, name := range ent.Behaviors {
		b, err := sim.NewBehavior(name, rules)
		if err != nil {
			return nil, err
		}
		behaviors = append(behaviors, b)
	}
	return sim.NewEntity(pos, p.Health, p.MaxHealth, p.Color, team, behaviors...), nil
}

func overridePrefab(p sim.Prefab, ent formats.YAMLEntity) (sim.Prefab, error) {
	if ent.Health != nil {
		p.Health = *ent.Health
	}
	if ent.MaxHealth != nil {
		p.MaxHealth = *ent.MaxHealth
	}
	if ent.Color != "" {
		c, err := core.ParseRGB(ent.Color)
		if err != nil {
			return p, err
		}
		p.Color = c
	}
	return p, nil
}

// Loader handles loading levels from a directory.
type Loader struct {
	Root string
}

// NewLoader creates a new level loader.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// LoadAll recursively scans and loads all level files.
// Returns levels sorted by ID for deterministic ordering.
func (l *Loader) LoadAll() ([]Level, error) {
	var levels []Level

	err := filepath.WalkDir(l.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			return nil
		}

		ext := strings.ToLower(filepath.Ext(path))
		if !isSupportedExtension(ext) {
			return nil
		}

		level, err := l.LoadFile(path)
		if err != nil {
			// Skip invalid files
			return nil
		}

		levels = append(levels, level)
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("walking directory %s: %w", l.Root, err)
	}

	sortByID(levels)
	return levels, nil
}

// CheckResult is the outcome of validating one level file.
type CheckResult struct {
	Path string
	ID   string
	Err  error
}

// Check validates every supported file under the root: each must parse
// and build a world with the given rules. Results are sorted by path.
func (l *Loader) Check(rules sim.Rules) ([]CheckResult, error) {
	var results []CheckResult

	err := filepath.WalkDir(l.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isSupportedExtension(strings.ToLower(filepath.Ext(path))) {
			return nil
		}

		res := CheckResult{Path: path}
		level, err := l.LoadFile(path)
		if err == nil {
			res.ID = level.ID
			_, err = level.NewWorld(rules)
		}
		res.Err = err
		results = append(results, res)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking directory %s: %w", l.Root, err)
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Path < results[j].Path
	})
	return results, nil
}

// LoadFile loads a single level file.
func (l *Loader) LoadFile(path string) (Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Level{}, fmt.Errorf("reading file %s: %w", path, err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	parsed, err := parseByExtension(data, ext)
	if err != nil {
		return Level{}, fmt.Errorf("parsing file %s: %w", path, err)
	}

	return fromParsed(parsed, path), nil
}

// LoadByID loads a specific level by ID.
func (l *Loader) LoadByID(id string) (Level, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return Level{}, err
	}
	return findByID(levels, id)
}

// ListIDs returns all level IDs in sorted order.
func (l *Loader) ListIDs() ([]string, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(levels))
	for i, lvl := range levels {
		ids[i] = lvl.ID
	}
	return ids, nil
}

func sortByID(levels []Level) {
	sort.Slice(levels, func(i, j int) bool {
		return levels[i].ID < levels[j].ID
	})
}

func findByID(levels []Level, id string) (Level, error) {
	for _, lvl := range levels {
		if lvl.ID == id {
			return lvl, nil
		}
	}
	return Level{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// isSupportedExtension checks if extension is supported.
func isSupportedExtension(ext string) bool {
	for _, supported := range formats.FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}

// parseByExtension routes to the correct parser.
func parseByExtension(data []byte, ext string) (formats.Level, error) {
	switch ext {
	case ".yaml", ".yml":
		return formats.ParseYAML(data)
	default:
		return formats.Level{}, fmt.Errorf("unsupported extension: %s", ext)
	}
}
