package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/df07/go-sphere-tracer/pkg/geometry"
	"github.com/df07/go-sphere-tracer/pkg/integrator"
	"github.com/df07/go-sphere-tracer/pkg/renderer"
	"github.com/df07/go-sphere-tracer/pkg/scene"
)

// Output formats
const (
	formatPNG = "png"
	formatPPM = "ppm"
)

// Config holds the parsed command line options
type Config struct {
	SceneType      string
	Width          int
	MaxSamples     int
	MaxDepth       int
	MaxPasses      int
	NumWorkers     int
	TileSize       int
	Seed           int64
	Format         string
	IntegratorType string
	OutputRoot     string
}

func main() {
	sceneType := flag.String("scene", scene.SceneDefault, "Scene: 'default', 'random', 'single-sphere', a YAML scene name or a path to a .yaml file")
	width := flag.Int("width", 0, "Image width in pixels (0 = scene default)")
	maxSamples := flag.Int("samples", 0, "Samples per pixel (0 = scene default)")
	maxDepth := flag.Int("depth", 0, "Maximum bounces per path (0 = scene default)")
	maxPasses := flag.Int("passes", 1, "Number of progressive passes")
	numWorkers := flag.Int("workers", 0, "Number of parallel workers (0 = auto-detect CPU count)")
	tileSize := flag.Int("tile", 64, "Tile size in pixels")
	seed := flag.Int64("seed", 42, "Random seed for the scene layout and the sample sequence")
	format := flag.String("format", formatPNG, "Output format: 'png' or 'ppm'")
	integratorType := flag.String("integrator", integrator.TypeRecursive, "Integrator: 'recursive' or 'iterative'")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	if *help {
		showHelp()
		return
	}

	config := Config{
		SceneType:      *sceneType,
		Width:          *width,
		MaxSamples:     *maxSamples,
		MaxDepth:       *maxDepth,
		MaxPasses:      *maxPasses,
		NumWorkers:     *numWorkers,
		TileSize:       *tileSize,
		Seed:           *seed,
		Format:         *format,
		IntegratorType: *integratorType,
		OutputRoot:     "output",
	}

	filename, err := run(config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Render saved as %s\n", filename)
}

func showHelp() {
	fmt.Println("Sphere Path Tracer")
	fmt.Println("Usage: sphere-tracer [options]")
	fmt.Println()
	fmt.Println("Options:")
	flag.PrintDefaults()
	fmt.Println()
	fmt.Println("Built-in scenes:")
	for _, info := range scene.BuiltInScenes() {
		fmt.Printf("  %-14s %s\n", info.ID, info.Description)
	}
	if files, err := scene.ListFileScenes(); err == nil && len(files) > 0 {
		fmt.Println()
		fmt.Println("Scene files:")
		for _, info := range files {
			fmt.Printf("  %-14s %s\n", strings.TrimPrefix(info.ID, scene.TypeFile+":"), info.Description)
		}
	}
	fmt.Println()
	fmt.Println("Output will be saved to output/<scene>/render_<timestamp>.<format>")
}

// run renders the configured scene and returns the path of the written image
func run(config Config) (string, error) {
	if config.Format != formatPNG && config.Format != formatPPM {
		return "", fmt.Errorf("unknown output format: %s", config.Format)
	}

	fmt.Println("Starting Sphere Path Tracer...")

	selectedScene, err := createScene(config.SceneType, config.Seed, config.Width)
	if err != nil {
		return "", err
	}
	if config.MaxDepth > 0 {
		selectedScene.SamplingConfig.MaxDepth = config.MaxDepth
	}

	integ, err := integrator.New(config.IntegratorType, selectedScene.Background)
	if err != nil {
		return "", err
	}

	progressiveConfig := renderer.ProgressiveConfig{
		TileSize:           config.TileSize,
		InitialSamples:     1,
		MaxSamplesPerPixel: selectedScene.SamplingConfig.SamplesPerPixel,
		MaxPasses:          config.MaxPasses,
		NumWorkers:         config.NumWorkers,
		Seed:               config.Seed,
	}
	if config.MaxSamples > 0 {
		progressiveConfig.MaxSamplesPerPixel = config.MaxSamples
	}

	fmt.Printf("Rendering %dx%d, %d spheres, %d samples/pixel, depth %d\n",
		selectedScene.SamplingConfig.Width, selectedScene.SamplingConfig.Height,
		selectedScene.GetPrimitiveCount(), progressiveConfig.MaxSamplesPerPixel,
		selectedScene.SamplingConfig.MaxDepth)

	startTime := time.Now()
	img, stats, err := render(selectedScene, integ, progressiveConfig)
	if err != nil {
		return "", err
	}

	fmt.Printf("Render completed in %v\n", time.Since(startTime))
	fmt.Printf("Samples per pixel: %.1f (range %d - %d), average luminance %.3f\n",
		stats.AverageSamples, stats.MinSamples, stats.MaxSamplesUsed,
		renderer.CalculateAverageLuminance(img))

	outputDir := createOutputDir(config.OutputRoot, config.SceneType)
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", fmt.Errorf("error creating output directory: %w", err)
	}

	timestamp := time.Now().Format("20060102_150405")
	filename := filepath.Join(outputDir, fmt.Sprintf("render_%s.%s", timestamp, config.Format))
	if err := saveImage(img, filename, config.Format); err != nil {
		return "", err
	}

	return filename, nil
}

// render runs every progressive pass and returns the last one
func render(s *scene.Scene, integ integrator.Integrator, config renderer.ProgressiveConfig) (*image.RGBA, renderer.RenderStats, error) {
	raytracer := renderer.NewProgressiveRaytracer(s, integ, config, renderer.NewDefaultLogger())
	passChan, _, errChan := raytracer.RenderProgressive(context.Background(), renderer.RenderOptions{})

	var last renderer.PassResult
	for pass := range passChan {
		last = pass
	}
	if err := <-errChan; err != nil {
		return nil, renderer.RenderStats{}, fmt.Errorf("render failed: %w", err)
	}
	if last.Image == nil {
		return nil, renderer.RenderStats{}, fmt.Errorf("render produced no passes")
	}

	return last.Image, last.Stats, nil
}

// createScene resolves a scene by name or file path, applying the width override if set
func createScene(sceneType string, seed int64, width int) (*scene.Scene, error) {
	if sceneType == "" {
		return nil, fmt.Errorf("scene name must not be empty")
	}

	var overrides geometry.CameraConfig
	if width > 0 {
		overrides.Width = width
	}

	s, err := scene.Load(sceneType, seed, overrides)
	if err != nil {
		return nil, err
	}
	fmt.Printf("Using %s scene...\n", sceneType)
	return s, nil
}

// createOutputDir returns the per-scene output directory under root.
// Scene file paths and "yaml:" IDs are reduced to the bare file name.
func createOutputDir(root, sceneType string) string {
	name := strings.TrimPrefix(sceneType, scene.TypeFile+":")
	name = filepath.Base(name)
	name = strings.TrimSuffix(name, filepath.Ext(name))
	return filepath.Join(root, name)
}

// saveImage writes img to filename in the given format
func saveImage(img image.Image, filename, format string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("error creating file: %w", err)
	}
	defer file.Close()

	switch format {
	case formatPPM:
		err = renderer.EncodePPM(file, img)
	default:
		err = png.Encode(file, img)
	}
	if err != nil {
		return fmt.Errorf("error saving %s: %w", strings.ToUpper(format), err)
	}
	return nil
}
