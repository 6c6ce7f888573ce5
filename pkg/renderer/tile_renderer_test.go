package renderer

import (
	"image"
	"math"
	"sync"
	"testing"

	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/geometry"
	"github.com/df07/go-sphere-tracer/pkg/integrator"
	"github.com/df07/go-sphere-tracer/pkg/scene"
)

// MockIntegrator returns a fixed color and remembers the last ray it was given
type MockIntegrator struct {
	returnColor core.Vec3
	mu          sync.Mutex
	callCount   int
	lastRay     core.Ray
	lastDepth   int
}

func (m *MockIntegrator) RayColor(ray core.Ray, world geometry.Shape, sampler core.Sampler, depth int) core.Vec3 {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callCount++
	m.lastRay = ray
	m.lastDepth = depth
	return m.returnColor
}

// fixedSampler returns the same jitter for every pixel sample and 0.5 for everything else
type fixedSampler struct {
	jitter core.Vec2
}

func (f fixedSampler) Get1D() float64   { return 0.5 }
func (f fixedSampler) Get2D() core.Vec2 { return f.jitter }
func (f fixedSampler) Get3D() core.Vec3 { return core.NewVec3(0.5, 0.5, 0.5) }

// createPinholeCamera looks down -Z from the origin with a 2x2 viewport at distance 1
func createPinholeCamera() *geometry.Camera {
	return geometry.NewCamera(geometry.CameraConfig{
		Center:      core.NewVec3(0, 0, 0),
		LookAt:      core.NewVec3(0, 0, -1),
		Up:          core.NewVec3(0, 1, 0),
		Width:       3,
		AspectRatio: 1.0,
		VFov:        90.0,
	})
}

func TestRenderPixel_AveragesSamples(t *testing.T) {
	mock := &MockIntegrator{returnColor: core.NewVec3(0.2, 0.4, 0.6)}
	tr := NewTileRenderer(createPinholeCamera(), geometry.NewShapeList(), mock, 3, 3)

	color := tr.RenderPixel(1, 1, 10, 7, core.NewSeededSampler(1))

	if color.Subtract(mock.returnColor).Length() > 1e-12 {
		t.Errorf("Expected average %v, got %v", mock.returnColor, color)
	}
	if mock.callCount != 10 {
		t.Errorf("Expected 10 integrator calls, got %d", mock.callCount)
	}
	if mock.lastDepth != 7 {
		t.Errorf("Expected max depth 7 passed through, got %d", mock.lastDepth)
	}
}

func TestRenderPixel_ZeroSamples(t *testing.T) {
	mock := &MockIntegrator{returnColor: core.NewVec3(1, 1, 1)}
	tr := NewTileRenderer(createPinholeCamera(), geometry.NewShapeList(), mock, 3, 3)

	if color := tr.RenderPixel(0, 0, 0, 5, core.NewSeededSampler(1)); color != (core.Vec3{}) {
		t.Errorf("Expected black for zero samples, got %v", color)
	}
	if mock.callCount != 0 {
		t.Errorf("Expected no integrator calls, got %d", mock.callCount)
	}
}

func TestRenderPixel_PixelMapping(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		x, y          int
		jitter        core.Vec2
		expected      core.Vec3
	}{
		{"top left", 3, 3, 0, 0, core.NewVec2(0, 0), core.NewVec3(-1, 1, -1)},
		{"bottom right", 3, 3, 2, 2, core.NewVec2(0, 0), core.NewVec3(1, -1, -1)},
		{"center", 3, 3, 1, 1, core.NewVec2(0, 0), core.NewVec3(0, 0, -1)},
		{"jitter moves right and up", 3, 3, 1, 1, core.NewVec2(0.5, 0.5), core.NewVec3(0.5, 0.5, -1)},
		{"single pixel", 1, 1, 0, 0, core.NewVec2(0.5, 0.5), core.NewVec3(0, 0, -1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &MockIntegrator{}
			tr := NewTileRenderer(createPinholeCamera(), geometry.NewShapeList(), mock, tt.width, tt.height)

			tr.RenderPixel(tt.x, tt.y, 1, 1, fixedSampler{jitter: tt.jitter})

			if mock.lastRay.Origin.Length() > 1e-12 {
				t.Errorf("Pinhole ray should start at the camera, got %v", mock.lastRay.Origin)
			}
			if mock.lastRay.Direction.Subtract(tt.expected).Length() > 1e-9 {
				t.Errorf("Expected direction %v, got %v", tt.expected, mock.lastRay.Direction)
			}
		})
	}
}

func TestPixelRay_MatchesTracedRay(t *testing.T) {
	mock := &MockIntegrator{}
	tr := NewTileRenderer(createPinholeCamera(), geometry.NewShapeList(), mock, 5, 3)
	sampler := fixedSampler{jitter: core.NewVec2(0.25, 0.75)}

	ray := tr.PixelRay(3, 1, sampler)
	tr.RenderPixel(3, 1, 1, 1, sampler)

	if ray.Direction.Subtract(mock.lastRay.Direction).Length() > 1e-12 {
		t.Errorf("PixelRay %v does not match traced ray %v", ray.Direction, mock.lastRay.Direction)
	}
}

func TestRenderPixel_SingleSphereScene(t *testing.T) {
	s := scene.NewSingleSphereScene(geometry.CameraConfig{Width: 21})
	integ := integrator.NewPathTracingIntegrator(s.Background)
	tr := NewTileRenderer(s.Camera, s.World, integ, s.SamplingConfig.Width, s.SamplingConfig.Height)

	// The center pixel sees the sphere; one bounce leaves no budget to reach the sky
	if color := tr.RenderPixel(10, 10, 8, 1, core.NewSeededSampler(3)); color != (core.Vec3{}) {
		t.Errorf("Expected black at depth 1, got %v", color)
	}

	color := tr.RenderPixel(10, 10, 8, 2, core.NewSeededSampler(3))
	if color == (core.Vec3{}) {
		t.Error("Expected non-black color at depth 2")
	}
	for i := 0; i < 3; i++ {
		c := color.Index(i)
		if math.IsNaN(c) || c > 1 || c < 0 {
			t.Errorf("Channel %d out of range: %g", i, c)
		}
	}

	// A corner pixel misses the sphere and sees only sky
	corner := tr.RenderPixel(0, 0, 4, 1, core.NewSeededSampler(3))
	if corner == (core.Vec3{}) {
		t.Error("Expected sky color in the corner at depth 1")
	}
}

func TestRenderTileBounds(t *testing.T) {
	mock := &MockIntegrator{returnColor: core.NewVec3(0.5, 0.5, 0.5)}
	tr := NewTileRenderer(createPinholeCamera(), geometry.NewShapeList(), mock, 4, 4)

	pixelStats := make([][]PixelStats, 4)
	for y := range pixelStats {
		pixelStats[y] = make([]PixelStats, 4)
	}
	// One pixel already has samples from an earlier pass
	pixelStats[1][1].AddSample(core.NewVec3(0.5, 0.5, 0.5))
	pixelStats[1][1].AddSample(core.NewVec3(0.5, 0.5, 0.5))

	bounds := image.Rect(0, 0, 2, 2)
	stats := tr.RenderTileBounds(bounds, pixelStats, core.NewSeededSampler(1), 3, 5)

	if stats.TotalPixels != 4 {
		t.Errorf("Expected 4 pixels, got %d", stats.TotalPixels)
	}
	if stats.TotalSamples != 3*3+1 {
		t.Errorf("Expected 10 new samples, got %d", stats.TotalSamples)
	}
	if stats.MinSamples != 1 || stats.MaxSamplesUsed != 3 {
		t.Errorf("Expected min 1 / max 3 samples used, got %d / %d", stats.MinSamples, stats.MaxSamplesUsed)
	}

	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			inside := image.Pt(x, y).In(bounds)
			count := pixelStats[y][x].SampleCount
			if inside && count != 3 {
				t.Errorf("Pixel (%d,%d) inside bounds has %d samples, want 3", x, y, count)
			}
			if !inside && count != 0 {
				t.Errorf("Pixel (%d,%d) outside bounds was touched", x, y)
			}
		}
	}
}
