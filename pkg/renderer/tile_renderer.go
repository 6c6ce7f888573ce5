package renderer

import (
	"image"

	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/geometry"
	"github.com/df07/go-sphere-tracer/pkg/integrator"
)

// TileRenderer turns pixel coordinates into camera rays and averages their radiance
type TileRenderer struct {
	camera        *geometry.Camera
	world         geometry.Shape
	integrator    integrator.Integrator
	width, height int
}

// NewTileRenderer creates a new tile renderer for an image of the given size
func NewTileRenderer(camera *geometry.Camera, world geometry.Shape, integ integrator.Integrator, width, height int) *TileRenderer {
	return &TileRenderer{
		camera:     camera,
		world:      world,
		integrator: integ,
		width:      width,
		height:     height,
	}
}

// RenderPixel returns the linear average color of samplesPerPixel jittered rays through
// pixel (x, y). Row 0 is the top of the image. No gamma correction is applied.
func (tr *TileRenderer) RenderPixel(x, y, samplesPerPixel, maxDepth int, sampler core.Sampler) core.Vec3 {
	if samplesPerPixel <= 0 {
		return core.Vec3{X: 0, Y: 0, Z: 0}
	}

	colorAccum := core.Vec3{X: 0, Y: 0, Z: 0}
	for sample := 0; sample < samplesPerPixel; sample++ {
		colorAccum = colorAccum.Add(tr.samplePixel(x, y, maxDepth, sampler))
	}

	return colorAccum.Divide(float64(samplesPerPixel))
}

// samplePixel traces a single jittered camera ray through pixel (x, y)
func (tr *TileRenderer) samplePixel(x, y, maxDepth int, sampler core.Sampler) core.Vec3 {
	ray := tr.PixelRay(x, y, sampler)
	return tr.integrator.RayColor(ray, tr.world, sampler, maxDepth)
}

// PixelRay returns a camera ray through pixel (x, y), jittered within the pixel by the sampler
func (tr *TileRenderer) PixelRay(x, y int, sampler core.Sampler) core.Ray {
	jitter := sampler.Get2D()

	// Image rows run top to bottom while viewport t runs bottom to top
	s := (float64(x) + jitter.X) / viewportDivisor(tr.width)
	t := (float64(tr.height-1-y) + jitter.Y) / viewportDivisor(tr.height)

	return tr.camera.GetRay(s, t, sampler)
}

// viewportDivisor maps the last pixel index onto 1.0, avoiding division by zero for single-pixel dimensions
func viewportDivisor(size int) float64 {
	if size <= 1 {
		return 1
	}
	return float64(size - 1)
}

// RenderTileBounds brings every pixel within bounds up to targetSamples, accumulating into pixelStats
func (tr *TileRenderer) RenderTileBounds(bounds image.Rectangle, pixelStats [][]PixelStats, sampler core.Sampler, targetSamples, maxDepth int) RenderStats {
	// Initialize statistics tracking for this specific bounds
	stats := tr.initRenderStatsForBounds(bounds, targetSamples)

	for j := bounds.Min.Y; j < bounds.Max.Y; j++ {
		for i := bounds.Min.X; i < bounds.Max.X; i++ {
			ps := &pixelStats[j][i]
			samplesUsed := 0
			for ps.SampleCount < targetSamples {
				ps.AddSample(tr.samplePixel(i, j, maxDepth, sampler))
				samplesUsed++
			}
			tr.updateStats(&stats, samplesUsed)
		}
	}

	// Finalize statistics
	tr.finalizeStats(&stats)
	return stats
}

// initRenderStatsForBounds initializes the render statistics tracking for specific bounds
func (tr *TileRenderer) initRenderStatsForBounds(bounds image.Rectangle, maxSamples int) RenderStats {
	pixelCount := bounds.Dx() * bounds.Dy()
	return RenderStats{
		TotalPixels:    pixelCount,
		TotalSamples:   0,
		AverageSamples: 0,
		MaxSamples:     maxSamples,
		MinSamples:     maxSamples, // Start with max, will be reduced
		MaxSamplesUsed: 0,
	}
}

// updateStats updates the render statistics with data from a single pixel
func (tr *TileRenderer) updateStats(stats *RenderStats, samplesUsed int) {
	stats.TotalSamples += samplesUsed
	stats.MinSamples = min(stats.MinSamples, samplesUsed)
	stats.MaxSamplesUsed = max(stats.MaxSamplesUsed, samplesUsed)
}

// finalizeStats calculates final statistics after all pixels are rendered
func (tr *TileRenderer) finalizeStats(stats *RenderStats) {
	if stats.TotalPixels == 0 {
		return
	}
	stats.AverageSamples = float64(stats.TotalSamples) / float64(stats.TotalPixels)
}
