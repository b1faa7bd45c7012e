package scene

import (
	"fmt"
	"sort"
	"strings"
)

// Builder creates a scene from options. Builders must be deterministic for a given seed.
type Builder func(opts Options) (*Scene, error)

// SceneInfo describes a built-in scene
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier
	DisplayName string `json:"displayName"` // UI display name
	Description string `json:"description"` // Optional description
	Group       string `json:"group"`       // Grouping category
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

type registration struct {
	info    SceneInfo
	builder Builder
}

const (
	groupSpheres = "Spheres and Textures"
	groupCornell = "Cornell Box"
)

// registry lists the built-in scenes in presentation order
var registry = []registration{
	{SceneInfo{ID: "random", Description: "Random field of diffuse, metal and glass spheres", Group: groupSpheres}, NewRandomScene},
	{SceneInfo{ID: "random-motion", Description: "Random spheres with motion blur on a checker ground", Group: groupSpheres}, NewRandomMotionScene},
	{SceneInfo{ID: "two-spheres", Description: "Two checker textured spheres", Group: groupSpheres}, NewTwoSpheresScene},
	{SceneInfo{ID: "two-perlin-spheres", Description: "Marble spheres from Perlin turbulence", Group: groupSpheres}, NewTwoPerlinSpheresScene},
	{SceneInfo{ID: "earth", Description: "Image textured globe", Group: groupSpheres}, NewEarthScene},
	{SceneInfo{ID: "simple-light", Description: "Marble spheres lit by a rectangle light", Group: groupSpheres}, NewSimpleLightScene},
	{SceneInfo{ID: "cornell", Description: "Empty Cornell box", Group: groupCornell}, NewCornellScene},
	{SceneInfo{ID: "cornell-blocks", Description: "Cornell box with two rotated blocks", Group: groupCornell}, NewCornellBlocksScene},
	{SceneInfo{ID: "cornell-smoke", Description: "Cornell box with blocks of smoke", Group: groupCornell}, NewCornellSmokeScene},
	{SceneInfo{ID: "final", Description: "Every feature in one scene", Group: groupCornell}, NewFinalScene},
}

// DefaultSceneID is rendered when no scene is requested
const DefaultSceneID = "cornell"

// Names returns the ids of all built-in scenes in registry order
func Names() []string {
	names := make([]string, len(registry))
	for i, r := range registry {
		names[i] = r.info.ID
	}
	return names
}

// Lookup returns the builder registered under id
func Lookup(id string) (Builder, bool) {
	for _, r := range registry {
		if r.info.ID == id {
			return r.builder, true
		}
	}
	return nil, false
}

// New builds the named scene, applies the option overrides and prepares it for rendering
func New(id string, opts Options) (*Scene, error) {
	builder, ok := Lookup(id)
	if !ok {
		return nil, fmt.Errorf("unknown scene %q (valid: %s)", id, strings.Join(Names(), ", "))
	}

	s, err := builder(opts)
	if err != nil {
		return nil, err
	}
	s.SamplingConfig = opts.apply(s.SamplingConfig)
	if err := s.Preprocess(!opts.DisableBVH); err != nil {
		return nil, err
	}
	return s, nil
}

// ListAllScenes returns the built-in scenes grouped by category, groups sorted by name
func ListAllScenes() ScenesResponse {
	var response ScenesResponse

	groupMap := make(map[string][]SceneInfo)
	for _, r := range registry {
		info := r.info
		info.DisplayName = titleCase(info.ID)
		groupMap[info.Group] = append(groupMap[info.Group], info)
	}

	var groupNames []string
	for groupName := range groupMap {
		groupNames = append(groupNames, groupName)
	}
	sort.Strings(groupNames)

	for _, groupName := range groupNames {
		response.Groups = append(response.Groups, SceneGroup{
			Name:   groupName,
			Scenes: groupMap[groupName],
		})
	}

	return response
}

// titleCase converts a filename-style string to title case
// e.g., "cornell-smoke" -> "Cornell Smoke"
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
