// Package vmath provides float 2-D vector helpers used for marker motion
package vmath

import "math"

// Vec2 is a point or displacement in pixel space
type Vec2 struct {
	X, Y float64
}

// V returns Vec2{x, y}
func V(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns a + b
func (a Vec2) Add(b Vec2) Vec2 {
	return Vec2{X: a.X + b.X, Y: a.Y + b.Y}
}

// Sub returns a - b
func (a Vec2) Sub(b Vec2) Vec2 {
	return Vec2{X: a.X - b.X, Y: a.Y - b.Y}
}

// Scale multiplies both components by s
func (a Vec2) Scale(s float64) Vec2 {
	return Vec2{X: a.X * s, Y: a.Y * s}
}

// Magnitude returns Euclidean length
func (a Vec2) Magnitude() float64 {
	return math.Hypot(a.X, a.Y)
}

// Distance returns Euclidean distance between a and b
func Distance(a, b Vec2) float64 {
	return b.Sub(a).Magnitude()
}

// Lerp returns a + (b - a) * t
// t is not clamped; callers pass the per-frame follow factor
func Lerp(a, b float64, t float64) float64 {
	return a + (b-a)*t
}

// LerpVec moves a toward b by fraction t of the remaining displacement
func LerpVec(a, b Vec2, t float64) Vec2 {
	return Vec2{X: Lerp(a.X, b.X, t), Y: Lerp(a.Y, b.Y, t)}
}

// Clamp01 limits v to [0, 1]
func Clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
