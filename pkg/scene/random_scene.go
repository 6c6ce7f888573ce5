package scene

import (
	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/geometry"
	"github.com/df07/go-sphere-tracer/pkg/material"
)

// Random scene layout
const (
	randomGridHalfExtent = 11  // Small spheres are placed for a, b in [-11, 11)
	smallSphereRadius    = 0.2 // Radius of every small sphere
	clearanceRadius      = 0.9 // Small spheres closer than this to the metal sphere's footprint are skipped
)

// NewRandomScene creates the classic cover scene: a large ground sphere, a grid of
// randomly placed small spheres and three large feature spheres.
// The same seed always produces the same scene.
func NewRandomScene(seed int64, cameraOverrides ...geometry.CameraConfig) *Scene {
	defaultCameraConfig := geometry.CameraConfig{
		Center:        core.NewVec3(13, 2, 3),
		LookAt:        core.NewVec3(0, 0, 0),
		Up:            core.NewVec3(0, 1, 0),
		Width:         1200,
		AspectRatio:   3.0 / 2.0,
		VFov:          20.0,
		Aperture:      0.1,
		FocusDistance: 10.0,
	}

	cameraConfig := defaultCameraConfig
	if len(cameraOverrides) > 0 {
		cameraConfig = geometry.MergeCameraConfig(defaultCameraConfig, cameraOverrides[0])
	}

	s := newScene(cameraConfig, SamplingConfig{
		SamplesPerPixel: 500,
		MaxDepth:        50,
	})

	sampler := core.NewSeededSampler(seed)

	ground := material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))
	s.Add(geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, ground))

	keepOut := core.NewVec3(4, smallSphereRadius, 0)
	for a := -randomGridHalfExtent; a < randomGridHalfExtent; a++ {
		for b := -randomGridHalfExtent; b < randomGridHalfExtent; b++ {
			chooseMat := sampler.Get1D()
			center := core.NewVec3(
				float64(a)+0.9*sampler.Get1D(),
				smallSphereRadius,
				float64(b)+0.9*sampler.Get1D(),
			)

			if center.Subtract(keepOut).Length() <= clearanceRadius {
				continue
			}

			var mat material.Material
			switch {
			case chooseMat < 0.8:
				// Diffuse
				albedo := core.RandomVec(sampler).MultiplyVec(core.RandomVec(sampler))
				mat = material.NewLambertian(albedo)
			case chooseMat < 0.95:
				// Metal
				albedo := core.RandomVecIn(sampler, 0.5, 1.0)
				fuzz := core.RandomFloatIn(sampler, 0.0, 0.5)
				mat = material.NewMetal(albedo, fuzz)
			default:
				// Glass
				mat = material.NewDielectric(1.5)
			}
			s.Add(geometry.NewSphere(center, smallSphereRadius, mat))
		}
	}

	s.Add(
		geometry.NewSphere(core.NewVec3(0, 1, 0), 1.0, material.NewDielectric(1.5)),
		geometry.NewSphere(core.NewVec3(-4, 1, 0), 1.0, material.NewLambertian(core.NewVec3(0.4, 0.2, 0.1))),
		geometry.NewSphere(core.NewVec3(4, 1, 0), 1.0, material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0.0)),
	)

	return s
}
