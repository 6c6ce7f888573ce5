package scene

import (
	"github.com/df07/go-sphere-tracer/pkg/geometry"
	"github.com/df07/go-sphere-tracer/pkg/integrator"
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Camera         *geometry.Camera
	World          *geometry.ShapeList           // Objects in the scene, scanned in insertion order
	Background     integrator.GradientBackground // Sky seen by escaping rays
	SamplingConfig SamplingConfig
	CameraConfig   geometry.CameraConfig
}

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	Width           int // Image width
	Height          int // Image height
	SamplesPerPixel int // Number of rays per pixel
	MaxDepth        int // Maximum ray bounce depth
}

// newScene builds an empty scene around a camera, deriving the image size from the camera config
func newScene(cameraConfig geometry.CameraConfig, samplingConfig SamplingConfig) *Scene {
	samplingConfig.Width = cameraConfig.Width
	samplingConfig.Height = ImageHeight(cameraConfig.Width, cameraConfig.AspectRatio)

	return &Scene{
		Camera:         geometry.NewCamera(cameraConfig),
		World:          geometry.NewShapeList(),
		Background:     integrator.DefaultBackground(),
		SamplingConfig: samplingConfig,
		CameraConfig:   cameraConfig,
	}
}

// ImageHeight derives the image height from width and aspect ratio, never less than 1
func ImageHeight(width int, aspectRatio float64) int {
	if aspectRatio <= 0 {
		return width
	}
	height := int(float64(width) / aspectRatio)
	if height < 1 {
		height = 1
	}
	return height
}

// Add appends shapes to the scene
func (s *Scene) Add(shapes ...geometry.Shape) {
	s.World.Add(shapes...)
}

// GetPrimitiveCount returns the total number of primitive objects in the scene
func (s *Scene) GetPrimitiveCount() int {
	return s.World.Len()
}
