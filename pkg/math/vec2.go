package math

import "github.com/chewxy/math32"

// Vec2 is a 2-component vector, used for texture-space coordinates.
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

// Mul returns the component-wise product.
func (v Vec2) Mul(other Vec2) Vec2 {
	return Vec2{v.X * other.X, v.Y * other.Y}
}

// Length returns the Euclidean length.
func (v Vec2) Length() float32 {
	return math32.Hypot(v.X, v.Y)
}

// ScaleAbout scales v by s around pivot: ((v - pivot) * s) + pivot.
func (v Vec2) ScaleAbout(pivot, s Vec2) Vec2 {
	return v.Sub(pivot).Mul(s).Add(pivot)
}
