package main

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCreateScene(t *testing.T) {
	tests := []struct {
		name        string
		sceneType   string
		expectError bool
	}{
		// Built-in scenes
		{"default scene", "default", false},
		{"random scene", "random", false},
		{"single sphere scene", "single-sphere", false},

		// Scene files by name and path
		{"yaml by name", "three-spheres", false},
		{"yaml by id", "yaml:sunset-mirrors", false},
		{"yaml by path", "scenes/three-spheres.yaml", false},

		// Invalid scenes
		{"unknown scene", "nonexistent", true},
		{"invalid yaml path", "scenes/nonexistent.yaml", true},
		{"empty scene name", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scene, err := createScene(tt.sceneType, 1, 32)

			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error for scene type '%s', but got none", tt.sceneType)
				}
				if scene != nil {
					t.Errorf("Expected nil scene for invalid scene type '%s'", tt.sceneType)
				}
				return
			}

			if err != nil {
				t.Fatalf("Unexpected error for scene type '%s': %v", tt.sceneType, err)
			}
			if scene.SamplingConfig.Width != 32 {
				t.Errorf("Expected width override 32, got %d", scene.SamplingConfig.Width)
			}
			if scene.SamplingConfig.Height <= 0 {
				t.Errorf("Scene sampling height should be positive, got %d", scene.SamplingConfig.Height)
			}
			if scene.GetPrimitiveCount() == 0 {
				t.Error("Scene has no spheres")
			}
		})
	}
}

func TestCreateOutputDir(t *testing.T) {
	tests := []struct {
		name      string
		sceneType string
		expected  string
	}{
		{"built-in scene", "default", filepath.Join("output", "default")},
		{"yaml by name", "three-spheres", filepath.Join("output", "three-spheres")},
		{"yaml by id", "yaml:sunset-mirrors", filepath.Join("output", "sunset-mirrors")},
		{"yaml path", "scenes/three-spheres.yaml", filepath.Join("output", "three-spheres")},
		{"nested yaml path", "scenes/subdir/my-scene.yml", filepath.Join("output", "my-scene")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := createOutputDir("output", tt.sceneType); got != tt.expected {
				t.Errorf("createOutputDir(%q) = %q, want %q", tt.sceneType, got, tt.expected)
			}
		})
	}
}

func TestSaveImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.SetRGBA(0, 0, color.RGBA{10, 20, 30, 255})
	img.SetRGBA(1, 0, color.RGBA{40, 50, 60, 255})
	dir := t.TempDir()

	pngPath := filepath.Join(dir, "out.png")
	if err := saveImage(img, pngPath, formatPNG); err != nil {
		t.Fatalf("saveImage(png) error: %v", err)
	}
	data, err := os.ReadFile(pngPath)
	if err != nil {
		t.Fatalf("Failed to read PNG: %v", err)
	}
	decoded, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Invalid PNG: %v", err)
	}
	if r, g, b, _ := decoded.At(1, 0).RGBA(); r>>8 != 40 || g>>8 != 50 || b>>8 != 60 {
		t.Errorf("PNG pixel mismatch: %d %d %d", r>>8, g>>8, b>>8)
	}

	ppmPath := filepath.Join(dir, "out.ppm")
	if err := saveImage(img, ppmPath, formatPPM); err != nil {
		t.Fatalf("saveImage(ppm) error: %v", err)
	}
	data, err = os.ReadFile(ppmPath)
	if err != nil {
		t.Fatalf("Failed to read PPM: %v", err)
	}
	if !strings.HasPrefix(string(data), "P3\n2 1\n255\n10 20 30\n") {
		t.Errorf("Unexpected PPM content %q", string(data))
	}

	if err := saveImage(img, filepath.Join(dir, "missing", "out.png"), formatPNG); err == nil {
		t.Error("Expected error writing into a missing directory")
	}
}

func TestRun(t *testing.T) {
	root := t.TempDir()
	config := Config{
		SceneType:      "single-sphere",
		Width:          8,
		MaxSamples:     2,
		MaxDepth:       3,
		MaxPasses:      2,
		NumWorkers:     2,
		TileSize:       4,
		Seed:           1,
		Format:         formatPPM,
		IntegratorType: "iterative",
		OutputRoot:     root,
	}

	filename, err := run(config)
	if err != nil {
		t.Fatalf("run() error: %v", err)
	}
	if filepath.Dir(filename) != filepath.Join(root, "single-sphere") {
		t.Errorf("Unexpected output location %s", filename)
	}
	if _, err := os.Stat(filename); err != nil {
		t.Errorf("Output file missing: %v", err)
	}
}

func TestRun_InvalidOptions(t *testing.T) {
	base := Config{SceneType: "single-sphere", Width: 4, MaxPasses: 1, TileSize: 4, Format: formatPNG, OutputRoot: t.TempDir()}

	badFormat := base
	badFormat.Format = "jpeg"
	if _, err := run(badFormat); err == nil {
		t.Error("Expected error for unknown format")
	}

	badIntegrator := base
	badIntegrator.IntegratorType = "bdpt"
	if _, err := run(badIntegrator); err == nil {
		t.Error("Expected error for unknown integrator")
	}

	badScene := base
	badScene.SceneType = "nonexistent"
	if _, err := run(badScene); err == nil {
		t.Error("Expected error for unknown scene")
	}
}
