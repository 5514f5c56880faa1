package sim

import "github.com/vovakirdan/tilesim/internal/core"

// ValuesPerDescriptor is the width of one group in flattened render output.
const ValuesPerDescriptor = 5

// Descriptor is one rectangle for an external renderer: a packed colour
// and a pixel-space rectangle.
type Descriptor struct {
	Color core.RGB
	X     uint32
	Y     uint32
	W     uint32
	H     uint32
}

// Values returns the descriptor as its five render values.
func (d Descriptor) Values() [ValuesPerDescriptor]uint32 {
	return [ValuesPerDescriptor]uint32{uint32(d.Color), d.X, d.Y, d.W, d.H}
}

// Flatten concatenates descriptors into groups of five values.
func Flatten(ds []Descriptor) []uint32 {
	out := make([]uint32, 0, len(ds)*ValuesPerDescriptor)
	for _, d := range ds {
		v := d.Values()
		out = append(out, v[:]...)
	}
	return out
}

// Unflatten splits render output back into descriptors. A trailing
// partial group is dropped.
func Unflatten(values []uint32) []Descriptor {
	out := make([]Descriptor, 0, len(values)/ValuesPerDescriptor)
	for i := 0; i+ValuesPerDescriptor <= len(values); i += ValuesPerDescriptor {
		out = append(out, Descriptor{
			Color: core.RGB(values[i]),
			X:     values[i+1],
			Y:     values[i+2],
			W:     values[i+3],
			H:     values[i+4],
		})
	}
	return out
}
