package scene

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/df07/go-sphere-tracer/pkg/geometry"
)

// Scene types reported by discovery
const (
	TypeBuiltin = "builtin"
	TypeFile    = "yaml"
)

// Built-in scene identifiers
const (
	SceneDefault      = "default"
	SceneRandom       = "random"
	SceneSingleSphere = "single-sphere"
)

const builtInGroup = "Built-in Scenes"

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier
	Name        string `json:"name"`        // Scene name
	DisplayName string `json:"displayName"` // UI display name
	Description string `json:"description"` // Optional description
	Group       string `json:"group"`       // Grouping category
	Type        string `json:"type"`        // "builtin" or "yaml"
	FilePath    string `json:"filePath"`    // Path to the YAML file (yaml type only)
	Variant     string `json:"variant"`     // Variant name (optional)
}

// SceneGroup represents a group of related scenes
type SceneGroup struct {
	Name   string      `json:"name"`
	Scenes []SceneInfo `json:"scenes"`
}

// ScenesResponse represents the complete response for /api/scenes
type ScenesResponse struct {
	Groups []SceneGroup `json:"groups"`
}

// SceneDirs are the directories searched for YAML scene files, relative to the working directory
var SceneDirs = []string{"scenes", "../scenes", "../../scenes"}

var builtInScenes = []SceneInfo{
	{
		ID:          SceneDefault,
		Name:        "Default Scene",
		DisplayName: "Default Scene",
		Description: "Diffuse, hollow glass and metal spheres on a ground sphere",
		Group:       builtInGroup,
		Type:        TypeBuiltin,
	},
	{
		ID:          SceneRandom,
		Name:        "Random Spheres",
		DisplayName: "Random Spheres",
		Description: "Grid of randomly placed small spheres around three large ones",
		Group:       builtInGroup,
		Type:        TypeBuiltin,
	},
	{
		ID:          SceneSingleSphere,
		Name:        "Single Sphere",
		DisplayName: "Single Sphere",
		Description: "One white diffuse sphere under the sky",
		Group:       builtInGroup,
		Type:        TypeBuiltin,
	},
}

// BuiltInScenes returns the scenes that are constructed in code
func BuiltInScenes() []SceneInfo {
	scenes := make([]SceneInfo, len(builtInScenes))
	copy(scenes, builtInScenes)
	return scenes
}

// findScenesDir returns the first existing directory from SceneDirs, or "" if none exists
func findScenesDir() string {
	for _, path := range SceneDirs {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			return path
		}
	}
	return ""
}

// ListFileScenes scans the scenes directory and returns discovered YAML scenes
func ListFileScenes() ([]SceneInfo, error) {
	scenesDir := findScenesDir()
	if scenesDir == "" {
		// No scenes directory found, return empty list
		return []SceneInfo{}, nil
	}
	return ListFileScenesIn(scenesDir)
}

// ListFileScenesIn returns the YAML scenes found directly inside dir, sorted by display name
func ListFileScenesIn(dir string) ([]SceneInfo, error) {
	var files []string
	for _, ext := range []string{"*.yaml", "*.yml"} {
		matches, err := filepath.Glob(filepath.Join(dir, ext))
		if err != nil {
			return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
		}
		files = append(files, matches...)
	}

	scenes := []SceneInfo{}
	for _, filePath := range files {
		sceneInfo, err := ParseSceneMetadata(filePath)
		if err != nil {
			// Log warning but continue processing other files
			fmt.Printf("Warning: failed to parse metadata for %s: %v\n", filePath, err)
			continue
		}
		scenes = append(scenes, sceneInfo)
	}

	// Sort scenes by display name
	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].DisplayName < scenes[j].DisplayName
	})

	return scenes, nil
}

// ParseSceneMetadata extracts metadata from the header comments of a scene file
func ParseSceneMetadata(filePath string) (SceneInfo, error) {
	// Extract filename without extension for fallback values
	filename := filepath.Base(filePath)
	nameWithoutExt := strings.TrimSuffix(filename, filepath.Ext(filename))

	sceneInfo := SceneInfo{
		ID:          fmt.Sprintf("%s:%s", TypeFile, nameWithoutExt),
		Name:        titleCase(nameWithoutExt),
		DisplayName: titleCase(nameWithoutExt),
		Group:       "Scene Files",
		Type:        TypeFile,
		FilePath:    filePath,
	}

	file, err := os.Open(filePath)
	if err != nil {
		// If we can't read the file, return with fallback values
		return sceneInfo, nil
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Stop parsing at first non-comment line
		if !strings.HasPrefix(line, "#") {
			break
		}

		if !strings.HasPrefix(line, "# ") {
			continue
		}
		content := strings.TrimPrefix(line, "# ")

		switch {
		case strings.HasPrefix(content, "Scene:"):
			sceneInfo.Name = strings.TrimSpace(strings.TrimPrefix(content, "Scene:"))
		case strings.HasPrefix(content, "Variant:"):
			sceneInfo.Variant = strings.TrimSpace(strings.TrimPrefix(content, "Variant:"))
		case strings.HasPrefix(content, "Description:"):
			sceneInfo.Description = strings.TrimSpace(strings.TrimPrefix(content, "Description:"))
		case strings.HasPrefix(content, "Group:"):
			sceneInfo.Group = strings.TrimSpace(strings.TrimPrefix(content, "Group:"))
		}
	}

	if sceneInfo.Name == "" {
		sceneInfo.Name = titleCase(nameWithoutExt)
	}
	if sceneInfo.Variant != "" {
		sceneInfo.DisplayName = fmt.Sprintf("%s - %s", sceneInfo.Name, sceneInfo.Variant)
	} else {
		sceneInfo.DisplayName = sceneInfo.Name
	}

	return sceneInfo, scanner.Err()
}

// ListAllScenes returns both built-in and file scenes, grouped by category
func ListAllScenes() (ScenesResponse, error) {
	var response ScenesResponse

	fileScenes, err := ListFileScenes()
	if err != nil {
		return response, fmt.Errorf("failed to list scene files: %w", err)
	}

	allScenes := append(BuiltInScenes(), fileScenes...)

	// Group scenes by their Group field
	groupMap := make(map[string][]SceneInfo)
	for _, scene := range allScenes {
		groupMap[scene.Group] = append(groupMap[scene.Group], scene)
	}

	// Built-in first, then alphabetical
	var groupNames []string
	for groupName := range groupMap {
		if groupName != builtInGroup {
			groupNames = append(groupNames, groupName)
		}
	}
	sort.Strings(groupNames)

	if group, exists := groupMap[builtInGroup]; exists {
		response.Groups = append(response.Groups, SceneGroup{Name: builtInGroup, Scenes: group})
	}
	for _, groupName := range groupNames {
		response.Groups = append(response.Groups, SceneGroup{Name: groupName, Scenes: groupMap[groupName]})
	}

	return response, nil
}

// Load resolves a scene by built-in ID, "yaml:<name>" ID, bare file name under the
// scenes directory, or path to a YAML file. The seed only affects the random scene.
func Load(id string, seed int64, cameraOverrides ...geometry.CameraConfig) (*Scene, error) {
	switch id {
	case SceneDefault, "":
		return NewDefaultScene(cameraOverrides...), nil
	case SceneRandom:
		return NewRandomScene(seed, cameraOverrides...), nil
	case SceneSingleSphere:
		return NewSingleSphereScene(cameraOverrides...), nil
	}

	path, err := resolveScenePath(id)
	if err != nil {
		return nil, err
	}
	return LoadFile(path, cameraOverrides...)
}

// resolveScenePath turns a scene identifier into the path of an existing YAML file
func resolveScenePath(id string) (string, error) {
	name := strings.TrimPrefix(id, TypeFile+":")

	candidates := []string{name}
	if filepath.Ext(name) == "" {
		candidates = append(candidates, name+".yaml", name+".yml")
	}
	if dir := findScenesDir(); dir != "" && !filepath.IsAbs(name) {
		for _, c := range append([]string(nil), candidates...) {
			candidates = append(candidates, filepath.Join(dir, c))
		}
	}

	for _, candidate := range candidates {
		ext := filepath.Ext(candidate)
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("unknown scene: %s", id)
}

// titleCase converts a filename-style string to title case
// e.g., "three-spheres" -> "Three Spheres"
func titleCase(s string) string {
	// Replace hyphens and underscores with spaces
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	// Title case each word
	words := strings.Fields(s)
	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
		}
	}

	return strings.Join(words, " ")
}
