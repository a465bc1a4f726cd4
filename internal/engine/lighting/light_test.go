package lighting

import (
	"math"
	"testing"
)

func TestNew(t *testing.T) {
	nan := float32(math.NaN())

	tests := []struct {
		name      string
		color     [3]float32
		ambient   float32
		shininess float32
		want      PointLight
	}{
		{"in range", [3]float32{0.7, 0, 0}, 0.1, 32,
			PointLight{Color: [3]float32{0.7, 0, 0}, Ambient: 0.1, Shininess: 32}},
		{"clamped", [3]float32{2, -1, 0.5}, 3, 8,
			PointLight{Color: [3]float32{1, 0, 0.5}, Ambient: 1, Shininess: 8}},
		{"bad shininess", [3]float32{1, 1, 1}, nan, 0,
			PointLight{Color: [3]float32{1, 1, 1}, Ambient: 0, Shininess: DefaultShininess}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := New([3]float32{}, tt.color, tt.ambient, tt.shininess)
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}

	pos := [3]float32{5, 5, 5}
	if l := New(pos, [3]float32{}, 0, 1); l.Position != pos {
		t.Errorf("position changed: %v", l.Position)
	}
}
