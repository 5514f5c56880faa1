package levels

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sync"

	"github.com/vovakirdan/tilesim/internal/levels/formats"
	"github.com/vovakirdan/tilesim/internal/registry"
	"github.com/vovakirdan/tilesim/internal/sim"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

var (
	builtinOnce   sync.Once
	builtinLevels []Level
	builtinErr    error
)

func init() {
	lvls, err := Builtin()
	if err != nil {
		panic(fmt.Sprintf("levels: built-in levels are invalid: %v", err))
	}
	for _, lvl := range lvls {
		Register(lvl)
	}
}

// Builtin returns the levels compiled into the binary, sorted by ID.
func Builtin() ([]Level, error) {
	builtinOnce.Do(func() {
		builtinLevels, builtinErr = loadFS(builtinFS, "builtin")
	})
	if builtinErr != nil {
		return nil, builtinErr
	}
	out := make([]Level, len(builtinLevels))
	copy(out, builtinLevels)
	return out, nil
}

// BuiltinByID returns one built-in level.
func BuiltinByID(id string) (Level, error) {
	lvls, err := Builtin()
	if err != nil {
		return Level{}, err
	}
	return findByID(lvls, id)
}

func loadFS(fsys fs.FS, dir string) ([]Level, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}

	var levels []Level
	for _, e := range entries {
		if e.IsDir() || !isSupportedExtension(path.Ext(e.Name())) {
			continue
		}
		p := path.Join(dir, e.Name())
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", p, err)
		}
		parsed, err := formats.ParseYAML(data)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", p, err)
		}
		levels = append(levels, fromParsed(parsed, p))
	}
	sortByID(levels)
	return levels, nil
}

// scenario adapts a Level to the registry.
type scenario struct {
	level Level
}

func (s scenario) ID() string    { return s.level.ID }
func (s scenario) Title() string { return s.level.Name }

func (s scenario) NewWorld(rules sim.Rules) (*sim.World, error) {
	return s.level.NewWorld(rules)
}

// Register publishes a level as a scenario. It panics on duplicate IDs,
// like registry.Register.
func Register(lvl Level) {
	registry.Register(lvl.ID, func() registry.Scenario { return scenario{level: lvl} })
}

// RegisterDir registers every valid level under dir whose ID is not taken
// yet and returns the IDs it added. Built-in IDs win over files.
func RegisterDir(dir string) ([]string, error) {
	lvls, err := NewLoader(dir).LoadAll()
	if err != nil {
		return nil, err
	}

	var added []string
	for _, lvl := range lvls {
		if registry.Exists(lvl.ID) {
			continue
		}
		Register(lvl)
		added = append(added, lvl.ID)
	}
	return added, nil
}
