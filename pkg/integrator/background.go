package integrator

import (
	"github.com/df07/go-sphere-tracer/pkg/core"
)

// GradientBackground is the sky seen by rays that escape the scene.
// It blends Bottom into Top by the vertical component of the ray direction.
type GradientBackground struct {
	Top    core.Vec3 // Color straight up
	Bottom core.Vec3 // Color straight down
}

// DefaultBackground returns the white to sky-blue gradient
func DefaultBackground() GradientBackground {
	return GradientBackground{
		Top:    core.NewVec3(0.5, 0.7, 1.0),
		Bottom: core.NewVec3(1.0, 1.0, 1.0),
	}
}

// Emit returns the background color in the direction of the ray
func (g GradientBackground) Emit(ray core.Ray) core.Vec3 {
	unitDirection := ray.Direction.Normalize()

	// Map Y from [-1,1] to [0,1]
	t := 0.5 * (unitDirection.Y + 1.0)

	// Linear interpolation: (1-t)*bottom + t*top
	return g.Bottom.Multiply(1.0 - t).Add(g.Top.Multiply(t))
}
