// Package math provides the vector, matrix and quaternion types used by the
// viewport camera and mesh code.
package math

import "math"

// Epsilon is the tolerance used by the approximate comparisons in this package.
const Epsilon = 1.1920929e-07

// Vec2 is a 2D vector.
type Vec2 struct {
	X, Y float32
}

// Add returns v + other.
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{v.X + other.X, v.Y + other.Y}
}

// Sub returns v - other.
func (v Vec2) Sub(other Vec2) Vec2 {
	return Vec2{v.X - other.X, v.Y - other.Y}
}

// Neg returns -v.
func (v Vec2) Neg() Vec2 {
	return Vec2{-v.X, -v.Y}
}

// Scale returns v * scalar.
func (v Vec2) Scale(s float32) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// Dot returns the dot product.
func (v Vec2) Dot(other Vec2) float32 {
	return v.X*other.X + v.Y*other.Y
}

// Length returns the magnitude.
func (v Vec2) Length() float32 {
	return float32(math.Sqrt(float64(v.X*v.X + v.Y*v.Y)))
}

// Normalize returns a unit vector.
func (v Vec2) Normalize() Vec2 {
	l := v.Length()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Y / l}
}

// PerpendicularCW returns v rotated 90 degrees clockwise. The length is preserved.
func (v Vec2) PerpendicularCW() Vec2 {
	return Vec2{v.Y, -v.X}
}

// ApproxEqual reports whether both components differ by less than Epsilon.
func (v Vec2) ApproxEqual(other Vec2) bool {
	return abs32(v.X-other.X) < Epsilon && abs32(v.Y-other.Y) < Epsilon
}

// Array returns the vector as a plain array, the layout GPU buffers expect.
func (v Vec2) Array() [2]float32 {
	return [2]float32{v.X, v.Y}
}

func abs32(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
