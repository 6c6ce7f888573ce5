package scene

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/geometry"
	"github.com/df07/go-sphere-tracer/pkg/integrator"
	"github.com/df07/go-sphere-tracer/pkg/material"
)

// Material types accepted in scene files
const (
	MaterialLambertian = "lambertian"
	MaterialMetal      = "metal"
	MaterialDielectric = "dielectric"
)

// vec3 is a three element YAML sequence such as [0.5, 0.7, 1.0]
type vec3 []float64

// UnmarshalYAML rejects sequences that are not exactly three numbers long
func (v *vec3) UnmarshalYAML(node *yaml.Node) error {
	var values []float64
	if err := node.Decode(&values); err != nil {
		return err
	}
	if len(values) != 3 {
		return fmt.Errorf("line %d: expected 3 components, got %d", node.Line, len(values))
	}
	*v = values
	return nil
}

func (v vec3) toVec3() core.Vec3 {
	if len(v) != 3 {
		return core.Vec3{}
	}
	return core.NewVec3(v[0], v[1], v[2])
}

// orDefault returns fallback when the key was absent from the file
func (v vec3) orDefault(fallback core.Vec3) core.Vec3 {
	if v == nil {
		return fallback
	}
	return v.toVec3()
}

// File is the on-disk layout of a YAML scene
type File struct {
	Camera     cameraFile              `yaml:"camera"`
	Render     renderFile              `yaml:"render"`
	Background *backgroundFile         `yaml:"background"`
	Materials  map[string]materialFile `yaml:"materials"`
	Spheres    []sphereFile            `yaml:"spheres"`
}

type cameraFile struct {
	Center        vec3    `yaml:"center"`
	LookAt        vec3    `yaml:"look_at"`
	Up            vec3    `yaml:"up"`
	Width         int     `yaml:"width"`
	AspectRatio   float64 `yaml:"aspect_ratio"`
	VFov          float64 `yaml:"vfov"`
	Aperture      float64 `yaml:"aperture"`
	FocusDistance float64 `yaml:"focus_distance"`
}

type renderFile struct {
	SamplesPerPixel int `yaml:"samples"`
	MaxDepth        int `yaml:"max_depth"`
}

type backgroundFile struct {
	Top    vec3 `yaml:"top"`
	Bottom vec3 `yaml:"bottom"`
}

type materialFile struct {
	Type            string  `yaml:"type"`
	Albedo          vec3    `yaml:"albedo"`
	Fuzz            float64 `yaml:"fuzz"`
	RefractiveIndex float64 `yaml:"ior"`
}

type sphereFile struct {
	Center   vec3    `yaml:"center"`
	Radius   float64 `yaml:"radius"`
	Material string  `yaml:"material"`
}

// Scene defaults used for anything a file leaves out
var fileDefaults = struct {
	camera   geometry.CameraConfig
	sampling SamplingConfig
}{
	camera: geometry.CameraConfig{
		Center:      core.NewVec3(0, 0, 1),
		LookAt:      core.NewVec3(0, 0, 0),
		Up:          core.NewVec3(0, 1, 0),
		Width:       400,
		AspectRatio: 16.0 / 9.0,
		VFov:        90.0,
	},
	sampling: SamplingConfig{
		SamplesPerPixel: 100,
		MaxDepth:        50,
	},
}

// LoadFile reads and builds a YAML scene file
func LoadFile(path string, cameraOverrides ...geometry.CameraConfig) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene file: %w", err)
	}

	s, err := Parse(data, cameraOverrides...)
	if err != nil {
		return nil, fmt.Errorf("failed to load scene %s: %w", path, err)
	}
	return s, nil
}

// Parse builds a scene from YAML. Camera overrides are applied on top of the file's camera.
func Parse(data []byte, cameraOverrides ...geometry.CameraConfig) (*Scene, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("invalid scene YAML: %w", err)
	}
	return f.Build(cameraOverrides...)
}

// Build validates the file and turns it into a renderable scene
func (f *File) Build(cameraOverrides ...geometry.CameraConfig) (*Scene, error) {
	cameraConfig := geometry.MergeCameraConfig(fileDefaults.camera, geometry.CameraConfig{
		Center:        f.Camera.Center.toVec3(),
		LookAt:        f.Camera.LookAt.toVec3(),
		Up:            f.Camera.Up.toVec3(),
		Width:         f.Camera.Width,
		AspectRatio:   f.Camera.AspectRatio,
		VFov:          f.Camera.VFov,
		Aperture:      f.Camera.Aperture,
		FocusDistance: f.Camera.FocusDistance,
	})
	if len(cameraOverrides) > 0 {
		cameraConfig = geometry.MergeCameraConfig(cameraConfig, cameraOverrides[0])
	}

	if err := validateCamera(cameraConfig); err != nil {
		return nil, err
	}

	samplingConfig := fileDefaults.sampling
	if f.Render.SamplesPerPixel < 0 || f.Render.MaxDepth < 0 {
		return nil, fmt.Errorf("samples and max_depth must not be negative")
	}
	if f.Render.SamplesPerPixel > 0 {
		samplingConfig.SamplesPerPixel = f.Render.SamplesPerPixel
	}
	if f.Render.MaxDepth > 0 {
		samplingConfig.MaxDepth = f.Render.MaxDepth
	}

	materials, err := f.buildMaterials()
	if err != nil {
		return nil, err
	}

	s := newScene(cameraConfig, samplingConfig)
	if f.Background != nil {
		sky := integrator.DefaultBackground()
		s.Background = integrator.GradientBackground{
			Top:    f.Background.Top.orDefault(sky.Top),
			Bottom: f.Background.Bottom.orDefault(sky.Bottom),
		}
	}

	for i, sf := range f.Spheres {
		mat, ok := materials[sf.Material]
		if !ok {
			return nil, fmt.Errorf("sphere %d: unknown material %q", i, sf.Material)
		}
		if sf.Radius == 0 {
			return nil, fmt.Errorf("sphere %d: radius must be non-zero", i)
		}
		s.Add(geometry.NewSphere(sf.Center.toVec3(), sf.Radius, mat))
	}

	return s, nil
}

// validateCamera rejects configurations that would produce an empty image or a degenerate basis
func validateCamera(config geometry.CameraConfig) error {
	if config.Width <= 0 || config.AspectRatio <= 0 {
		return fmt.Errorf("image size must be positive: width %d, aspect ratio %g",
			config.Width, config.AspectRatio)
	}
	if config.Center == config.LookAt {
		return fmt.Errorf("camera center and look_at must differ")
	}
	w := config.Center.Subtract(config.LookAt).Normalize()
	if config.Up.Normalize().Cross(w).NearZero() {
		return fmt.Errorf("camera up must not be parallel to the view direction")
	}
	return nil
}

// buildMaterials creates every named material, in name order so errors are reproducible
func (f *File) buildMaterials() (map[string]material.Material, error) {
	names := make([]string, 0, len(f.Materials))
	for name := range f.Materials {
		names = append(names, name)
	}
	sort.Strings(names)

	materials := make(map[string]material.Material, len(names))
	for _, name := range names {
		mf := f.Materials[name]
		switch mf.Type {
		case MaterialLambertian:
			if mf.Albedo == nil {
				return nil, fmt.Errorf("material %q: albedo is required", name)
			}
			materials[name] = material.NewLambertian(mf.Albedo.toVec3())
		case MaterialMetal:
			if mf.Albedo == nil {
				return nil, fmt.Errorf("material %q: albedo is required", name)
			}
			materials[name] = material.NewMetal(mf.Albedo.toVec3(), mf.Fuzz)
		case MaterialDielectric:
			if mf.RefractiveIndex <= 0 {
				return nil, fmt.Errorf("material %q: ior must be positive", name)
			}
			materials[name] = material.NewDielectric(mf.RefractiveIndex)
		default:
			return nil, fmt.Errorf("material %q: unknown type %q", name, mf.Type)
		}
	}
	return materials, nil
}
