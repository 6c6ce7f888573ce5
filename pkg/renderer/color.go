package renderer

import (
	"image/color"
	"math"

	"github.com/df07/go-sphere-tracer/pkg/core"
)

// ToRGBA converts a linear averaged color to 8-bit sRGB-ish output: gamma 2 (square root),
// clamp to [0, 0.999], then scale by 256. NaN and non-positive channels become 0.
func ToRGBA(c core.Vec3) color.RGBA {
	c = core.NewVec3(positiveOrZero(c.X), positiveOrZero(c.Y), positiveOrZero(c.Z))
	c = c.GammaCorrect(2.0).Clamp(0, 0.999)
	return color.RGBA{
		R: uint8(256 * c.X),
		G: uint8(256 * c.Y),
		B: uint8(256 * c.Z),
		A: 255,
	}
}

func positiveOrZero(v float64) float64 {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	return v
}
