package renderer

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/df07/go-sphere-tracer/pkg/core"
)

func TestCalculateAverageLuminance(t *testing.T) {
	// Red 0.2126 + Green 0.7152 + Blue 0.0722 + Black 0.0 = 1.0, over 4 pixels
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{255, 0, 0, 255})
	img.Set(1, 0, color.RGBA{0, 255, 0, 255})
	img.Set(0, 1, color.RGBA{0, 0, 255, 255})
	img.Set(1, 1, color.RGBA{0, 0, 0, 255})

	avgLum := CalculateAverageLuminance(img)
	expected := 0.25
	tolerance := 0.0001

	if avgLum < expected-tolerance || avgLum > expected+tolerance {
		t.Errorf("Expected average luminosity %f, got %f", expected, avgLum)
	}
}

func TestCalculateAverageLuminance_White(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.Set(0, 0, color.RGBA{255, 255, 255, 255})

	avgLum := CalculateAverageLuminance(img)
	if math.Abs(avgLum-1.0) > 0.0001 {
		t.Errorf("Expected average luminosity 1.0, got %f", avgLum)
	}
}

func TestCalculateAverageLuminance_Empty(t *testing.T) {
	if lum := CalculateAverageLuminance(image.NewRGBA(image.Rect(0, 0, 0, 0))); lum != 0 {
		t.Errorf("Expected 0 for an empty image, got %f", lum)
	}
}

func TestPixelStats(t *testing.T) {
	var ps PixelStats

	if ps.GetColor() != (core.Vec3{}) || ps.Variance() != 0 {
		t.Error("Empty pixel should be black with zero variance")
	}

	ps.AddSample(core.NewVec3(1, 1, 1))
	ps.AddSample(core.NewVec3(0, 0, 0))

	if ps.SampleCount != 2 {
		t.Errorf("Expected 2 samples, got %d", ps.SampleCount)
	}
	if ps.GetColor() != core.NewVec3(0.5, 0.5, 0.5) {
		t.Errorf("Expected average (0.5,0.5,0.5), got %v", ps.GetColor())
	}
	// Luminance samples 1 and 0 have variance 0.25
	if math.Abs(ps.Variance()-0.25) > 1e-9 {
		t.Errorf("Expected variance 0.25, got %f", ps.Variance())
	}
}
