package renderer

import (
	"image"

	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/integrator"
	"github.com/df07/go-sphere-tracer/pkg/scene"
)

// Raytracer renders a whole image on the calling goroutine
type Raytracer struct {
	width        int
	height       int
	config       scene.SamplingConfig
	sampler      core.Sampler
	tileRenderer *TileRenderer
}

// NewRaytracer creates a new single-threaded raytracer using the scene's sampling configuration
func NewRaytracer(s *scene.Scene, integ integrator.Integrator, seed int64) *Raytracer {
	width, height := s.SamplingConfig.Width, s.SamplingConfig.Height
	return &Raytracer{
		width:        width,
		height:       height,
		config:       s.SamplingConfig,
		sampler:      core.NewSeededSampler(seed),
		tileRenderer: NewTileRenderer(s.Camera, s.World, integ, width, height),
	}
}

// SetSamplingConfig updates the sampling configuration
func (rt *Raytracer) SetSamplingConfig(config scene.SamplingConfig) {
	rt.config = config
}

// MergeSamplingConfig updates only the non-zero fields of the sampling configuration
func (rt *Raytracer) MergeSamplingConfig(updates scene.SamplingConfig) {
	if updates.SamplesPerPixel != 0 {
		rt.config.SamplesPerPixel = updates.SamplesPerPixel
	}
	if updates.MaxDepth != 0 {
		rt.config.MaxDepth = updates.MaxDepth
	}
}

// RenderPixel returns the linear color of pixel (x, y) using the current sampling configuration
func (rt *Raytracer) RenderPixel(x, y int) core.Vec3 {
	return rt.tileRenderer.RenderPixel(x, y, rt.config.SamplesPerPixel, rt.config.MaxDepth, rt.sampler)
}

// RenderPass renders every pixel with the configured samples and returns the image
func (rt *Raytracer) RenderPass() (*image.RGBA, RenderStats) {
	img := image.NewRGBA(image.Rect(0, 0, rt.width, rt.height))

	for y := 0; y < rt.height; y++ {
		for x := 0; x < rt.width; x++ {
			img.SetRGBA(x, y, ToRGBA(rt.RenderPixel(x, y)))
		}
	}

	stats := RenderStats{
		TotalPixels:    rt.width * rt.height,
		TotalSamples:   rt.width * rt.height * rt.config.SamplesPerPixel,
		AverageSamples: float64(rt.config.SamplesPerPixel),
		MaxSamples:     rt.config.SamplesPerPixel,
		MinSamples:     rt.config.SamplesPerPixel,
		MaxSamplesUsed: rt.config.SamplesPerPixel,
	}

	return img, stats
}
