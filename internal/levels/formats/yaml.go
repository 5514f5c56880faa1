// Package formats provides pluggable level file format parsers.
package formats

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Layout glyphs.
const (
	GlyphWall  = '#'
	GlyphFloor = '.'
)

// YAMLLevel represents the YAML structure for a level file.
type YAMLLevel struct {
	ID          string            `yaml:"id"`
	Name        string            `yaml:"name"`
	Description string            `yaml:"description,omitempty"`
	Layout      []string          `yaml:"layout"`
	Entities    []YAMLEntity      `yaml:"entities"`
	Metadata    map[string]string `yaml:"metadata,omitempty"`
}

// YAMLEntity represents one roster entry in YAML format. Kind selects a
// prefab; "custom" builds from Team and Behaviors instead. Vitals and
// colour override the prefab's when set.
type YAMLEntity struct {
	Kind      string   `yaml:"kind"`
	X         int      `yaml:"x"`
	Y         int      `yaml:"y"`
	Team      string   `yaml:"team,omitempty"`
	Health    *uint32  `yaml:"health,omitempty"`
	MaxHealth *uint32  `yaml:"max_health,omitempty"`
	Color     string   `yaml:"color,omitempty"` // "#rrggbb"
	Behaviors []string `yaml:"behaviors,omitempty"`
}

// Level represents a parsed level ready for use.
type Level struct {
	ID          string
	Name        string
	Description string
	Width       int
	Height      int
	Layout      []string
	Entities    []YAMLEntity
	Metadata    map[string]string
}

// ValidationError contains details about a malformed level.
type ValidationError struct {
	Code    string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// ParseYAML parses a YAML level file and validates its layout.
func ParseYAML(data []byte) (Level, error) {
	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return Level{}, fmt.Errorf("yaml unmarshal: %w", err)
	}

	if yl.ID == "" {
		return Level{}, ValidationError{Code: "MISSING_ID", Message: "level has no id"}
	}
	if len(yl.Layout) == 0 {
		return Level{}, ValidationError{Code: "EMPTY_LAYOUT", Message: "layout has no rows"}
	}

	width := len(yl.Layout[0])
	for y, row := range yl.Layout {
		if len(row) != width {
			return Level{}, ValidationError{
				Code:    "RAGGED_LAYOUT",
				Message: fmt.Sprintf("row %d has %d columns, expected %d", y, len(row), width),
			}
		}
		for x, r := range row {
			if r != GlyphWall && r != GlyphFloor {
				return Level{}, ValidationError{
					Code:    "UNKNOWN_GLYPH",
					Message: fmt.Sprintf("glyph %q at (%d,%d)", r, x, y),
				}
			}
		}
	}

	height := len(yl.Layout)
	// Tiles are addressed x*width + y, which only covers every cell of a
	// square layout.
	if height != width {
		return Level{}, ValidationError{
			Code:    "NOT_SQUARE",
			Message: fmt.Sprintf("layout is %dx%d; width and height must match", width, height),
		}
	}

	for i, e := range yl.Entities {
		if e.X < 0 || e.Y < 0 || e.X >= width || e.Y >= height {
			return Level{}, ValidationError{
				Code:    "ENTITY_OFF_GRID",
				Message: fmt.Sprintf("entity %d (%s) at (%d,%d) is outside %dx%d", i, e.Kind, e.X, e.Y, width, height),
			}
		}
	}

	name := yl.Name
	if name == "" {
		name = yl.ID
	}

	return Level{
		ID:          yl.ID,
		Name:        name,
		Description: yl.Description,
		Width:       width,
		Height:      height,
		Layout:      yl.Layout,
		Entities:    yl.Entities,
		Metadata:    yl.Metadata,
	}, nil
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}
