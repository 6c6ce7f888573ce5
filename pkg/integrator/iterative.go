package integrator

import (
	"math"

	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/geometry"
)

// IterativeIntegrator computes the same estimate as PathTracingIntegrator with an
// explicit loop, carrying the attenuation product instead of growing the stack.
type IterativeIntegrator struct {
	background GradientBackground
}

// NewIterativeIntegrator creates a new loop-based path tracing integrator
func NewIterativeIntegrator(background GradientBackground) *IterativeIntegrator {
	return &IterativeIntegrator{background: background}
}

// RayColor follows the path bounce by bounce until it escapes, is absorbed or runs out of depth
func (it *IterativeIntegrator) RayColor(ray core.Ray, world geometry.Shape, sampler core.Sampler, depth int) core.Vec3 {
	throughput := core.NewVec3(1, 1, 1)

	for ; depth > 0; depth-- {
		hit, isHit := world.Hit(ray, ShadowAcneEpsilon, math.Inf(1))
		if !isHit {
			return throughput.MultiplyVec(it.background.Emit(ray))
		}

		scatter, didScatter := hit.Material.Scatter(ray, *hit, sampler)
		if !didScatter {
			return core.Vec3{X: 0, Y: 0, Z: 0}
		}

		throughput = throughput.MultiplyVec(scatter.Attenuation)
		ray = scatter.Scattered
	}

	return core.Vec3{X: 0, Y: 0, Z: 0}
}
