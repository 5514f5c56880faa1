package sim

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tilesim/internal/core"
)

// TileSize is the edge length in pixels of one tile in render output.
const TileSize uint32 = 20

// ErrTileCount is returned when a grid's tile slice does not hold exactly
// width*height tiles.
var ErrTileCount = errors.New("sim: tile count does not match grid dimensions")

// Tile classifies a grid cell for movement.
type Tile uint8

const (
	TilePassable Tile = iota // floor
	TileBlocking             // wall
)

// String returns the string representation of a tile.
func (t Tile) String() string {
	switch t {
	case TilePassable:
		return "floor"
	case TileBlocking:
		return "wall"
	default:
		return "unknown"
	}
}

// Color returns the packed colour a tile renders with.
func (t Tile) Color() core.RGB {
	if t == TileBlocking {
		return core.ColorWall
	}
	return core.ColorFloor
}

// Grid is an immutable tile layout.
//
// A position (x, y) is stored at index x*width + y. The first coordinate
// strides by width, which swaps the usual row/column roles; level files
// and renderers rely on this addressing, so it is kept as is.
type Grid struct {
	width  uint32
	height uint32
	tiles  []Tile
}

// NewGrid creates a grid. The tiles slice is copied.
func NewGrid(width, height uint32, tiles []Tile) (*Grid, error) {
	if uint64(len(tiles)) != uint64(width)*uint64(height) {
		return nil, fmt.Errorf("%w: %dx%d needs %d tiles, got %d",
			ErrTileCount, width, height, uint64(width)*uint64(height), len(tiles))
	}
	owned := make([]Tile, len(tiles))
	copy(owned, tiles)
	return &Grid{width: width, height: height, tiles: owned}, nil
}

// FilledGrid creates a width×height grid where every tile is t.
func FilledGrid(width, height uint32, t Tile) *Grid {
	tiles := make([]Tile, int(width)*int(height))
	for i := range tiles {
		tiles[i] = t
	}
	return &Grid{width: width, height: height, tiles: tiles}
}

// Width returns the grid width.
func (g *Grid) Width() uint32 { return g.width }

// Height returns the grid height.
func (g *Grid) Height() uint32 { return g.height }

// Len returns the number of stored tiles.
func (g *Grid) Len() int { return len(g.tiles) }

// GetTile returns the tile at pos, or false when pos does not map into
// the tile slice. Negative coordinates always miss; they are rejected
// before conversion so they cannot wrap onto a valid index.
func (g *Grid) GetTile(pos core.Vector2) (Tile, bool) {
	idx, ok := g.index(pos)
	if !ok {
		return TileBlocking, false
	}
	return g.tiles[idx], true
}

// Passable reports whether pos holds a passable tile. Missing tiles are
// not passable.
func (g *Grid) Passable(pos core.Vector2) bool {
	t, ok := g.GetTile(pos)
	return ok && t == TilePassable
}

// index converts pos to a flat index, checking x*width + y < len(tiles)
// without overflowing.
func (g *Grid) index(pos core.Vector2) (int, bool) {
	if pos.X < 0 || pos.Y < 0 {
		return 0, false
	}
	n := uint64(len(g.tiles))
	x, y := uint64(pos.X), uint64(pos.Y)
	if y >= n {
		return 0, false
	}
	if g.width > 0 && x > (n-1-y)/uint64(g.width) {
		return 0, false
	}
	return int(x*uint64(g.width) + y), true
}

// RenderDescriptors returns one descriptor per addressable tile, x-major
// then y. Positions the addressing scheme cannot reach are skipped.
// On a non-square grid the result can be shorter than width*height.
func (g *Grid) RenderDescriptors() []Descriptor {
	out := make([]Descriptor, 0, len(g.tiles))
	for x := uint32(0); x < g.width; x++ {
		for y := uint32(0); y < g.height; y++ {
			t, ok := g.GetTile(core.V(int(x), int(y)))
			if !ok {
				continue
			}
			out = append(out, Descriptor{
				Color: t.Color(),
				X:     x * TileSize,
				Y:     y * TileSize,
				W:     TileSize,
				H:     TileSize,
			})
		}
	}
	return out
}

// Equal returns true if two grids have the same dimensions and tiles.
func (g *Grid) Equal(other *Grid) bool {
	if g.width != other.width || g.height != other.height || len(g.tiles) != len(other.tiles) {
		return false
	}
	for i, t := range g.tiles {
		if t != other.tiles[i] {
			return false
		}
	}
	return true
}
