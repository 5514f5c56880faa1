// Package core provides fundamental types shared by the simulation and the
// platform layer. It has no external dependencies so that simulation code
// stays pure and testable.
package core

import "fmt"

// Vector2 is an integer 2D vector used for grid positions and movement.
// X increases to the right, Y increases downward.
type Vector2 struct {
	X int
	Y int
}

// V is a convenience constructor for Vector2.
func V(x, y int) Vector2 {
	return Vector2{X: x, Y: y}
}

// Add returns the sum of two vectors.
func (v Vector2) Add(o Vector2) Vector2 {
	return Vector2{X: v.X + o.X, Y: v.Y + o.Y}
}

// AddAssign adds o to v in place.
func (v *Vector2) AddAssign(o Vector2) {
	v.X += o.X
	v.Y += o.Y
}

// Equal returns true if both components match.
func (v Vector2) Equal(o Vector2) bool {
	return v.X == o.X && v.Y == o.Y
}

// Clone returns a copy of the vector.
func (v Vector2) Clone() Vector2 {
	return v
}

// IsZero reports whether both components are zero.
func (v Vector2) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// Chebyshev returns max(|dx|, |dy|) between two vectors.
func (v Vector2) Chebyshev(o Vector2) int {
	return Max(Abs(v.X-o.X), Abs(v.Y-o.Y))
}

// WithinOneOf returns true if o is in the 3x3 neighbourhood of v,
// diagonals and v itself included.
func (v Vector2) WithinOneOf(o Vector2) bool {
	return v.Chebyshev(o) <= 1
}

// String returns a string representation of the vector.
func (v Vector2) String() string {
	return fmt.Sprintf("(%d,%d)", v.X, v.Y)
}

// Abs returns the absolute value of an integer.
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
