package renderer

import (
	"image/color"
	"math"
	"testing"

	"github.com/df07/go-sphere-tracer/pkg/core"
)

func TestToRGBA(t *testing.T) {
	tests := []struct {
		name     string
		input    core.Vec3
		expected color.RGBA
	}{
		{"black", core.NewVec3(0, 0, 0), color.RGBA{0, 0, 0, 255}},
		{"white clamps below 256", core.NewVec3(1, 1, 1), color.RGBA{255, 255, 255, 255}},
		{"gamma 2", core.NewVec3(0.25, 0.25, 0.25), color.RGBA{128, 128, 128, 255}},
		{"overbright", core.NewVec3(4, 9, 100), color.RGBA{255, 255, 255, 255}},
		{"negative", core.NewVec3(-1, 0.25, 0), color.RGBA{0, 128, 0, 255}},
		{"nan", core.NewVec3(math.NaN(), 0.25, math.Inf(1)), color.RGBA{0, 128, 255, 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToRGBA(tt.input); got != tt.expected {
				t.Errorf("ToRGBA(%v) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestToRGBA_MatchesGammaThenClamp(t *testing.T) {
	for _, v := range []float64{0.001, 0.1, 0.5, 0.9, 0.998, 1.5} {
		c := core.NewVec3(v, v, v)
		expected := uint8(256 * math.Min(math.Sqrt(v), 0.999))
		if got := ToRGBA(c); got.R != expected || got.G != expected || got.B != expected {
			t.Errorf("ToRGBA(%g) = %v, want channel %d", v, got, expected)
		}
	}
}
