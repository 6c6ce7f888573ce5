package integrator

import (
	"fmt"

	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/geometry"
)

// ShadowAcneEpsilon is the minimum hit distance for every bounce. It keeps a
// scattered ray from re-hitting the surface it just left due to rounding.
const ShadowAcneEpsilon = 0.001

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor computes the radiance arriving along ray, allowing at most depth bounces
	RayColor(ray core.Ray, world geometry.Shape, sampler core.Sampler, depth int) core.Vec3
}

// Integrator names accepted by New
const (
	TypeRecursive = "recursive"
	TypeIterative = "iterative"
)

// New creates an integrator by name
func New(integratorType string, background GradientBackground) (Integrator, error) {
	switch integratorType {
	case TypeRecursive, "":
		return NewPathTracingIntegrator(background), nil
	case TypeIterative:
		return NewIterativeIntegrator(background), nil
	default:
		return nil, fmt.Errorf("unknown integrator type: %s", integratorType)
	}
}
