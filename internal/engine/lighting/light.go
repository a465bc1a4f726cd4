// Package lighting describes the point light used by the lit and textured
// surface programs.
package lighting

// DefaultShininess is used when a configured exponent is not positive.
const DefaultShininess = 32

// PointLight is a single point light plus the Phong material terms it is
// shaded with. Position is in view space.
type PointLight struct {
	Position  [3]float32
	Color     [3]float32 // RGB, 0-1
	Ambient   float32    // 0-1
	Shininess float32    // specular exponent
}

// New creates a light, clamping color and ambient to 0-1 and replacing a
// non-positive shininess with DefaultShininess.
func New(position, color [3]float32, ambient, shininess float32) PointLight {
	l := PointLight{
		Position:  position,
		Color:     color,
		Ambient:   clamp01(ambient),
		Shininess: shininess,
	}
	for i := range l.Color {
		l.Color[i] = clamp01(l.Color[i])
	}
	if !(l.Shininess > 0) {
		l.Shininess = DefaultShininess
	}
	return l
}

func clamp01(v float32) float32 {
	if !(v > 0) {
		return 0
	}
	return min(v, 1)
}
