// Package config loads render settings from a JSON file and merges them with
// command line flags.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/df07/go-nextweek-raytracer/pkg/core"
	"github.com/df07/go-nextweek-raytracer/pkg/output"
	"github.com/df07/go-nextweek-raytracer/pkg/renderer"
	"github.com/df07/go-nextweek-raytracer/pkg/scene"
)

// Config holds all render settings.
type Config struct {
	Scene string `json:"scene"`

	// Image and sampling. Zero keeps the scene's recommendation.
	Width    int   `json:"width"`
	Height   int   `json:"height"`
	Samples  int   `json:"samples"`
	MaxDepth int   `json:"max_depth"`
	Seed     int64 `json:"seed"`

	// Execution
	Workers  int   `json:"workers"`
	TileSize int   `json:"tile_size"`
	UseBVH   *bool `json:"use_bvh"`

	// Paths
	Output         string `json:"output"`
	TextureDir     string `json:"texture_dir"`
	MaxTextureSize int    `json:"max_texture_size"`

	// Radiance of rays that leave the scene, black when unset
	Background *[3]float64 `json:"background"`
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	Scene      string
	Width      int
	Height     int
	Samples    int
	MaxDepth   int
	Seed       int64
	Workers    int
	TileSize   int
	Output     string
	TextureDir string
	NoBVH      bool
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Resolve fills in any empty fields with defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.Scene != "" {
		c.Scene = flags.Scene
	}
	if flags.Width > 0 {
		c.Width = flags.Width
	}
	if flags.Height > 0 {
		c.Height = flags.Height
	}
	if flags.Samples > 0 {
		c.Samples = flags.Samples
	}
	if flags.MaxDepth > 0 {
		c.MaxDepth = flags.MaxDepth
	}
	if flags.Seed != 0 {
		c.Seed = flags.Seed
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.TileSize > 0 {
		c.TileSize = flags.TileSize
	}
	if flags.Output != "" {
		c.Output = flags.Output
	}
	if flags.TextureDir != "" {
		c.TextureDir = flags.TextureDir
	}
	if flags.NoBVH {
		off := false
		c.UseBVH = &off
	}

	// Defaults
	if c.Scene == "" {
		c.Scene = scene.DefaultSceneID
	}
	if c.MaxDepth <= 0 {
		c.MaxDepth = core.DefaultMaxDepth
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.TileSize <= 0 {
		c.TileSize = renderer.DefaultTileSize
	}
	if c.TextureDir == "" {
		c.TextureDir = scene.DefaultTextureDir
	}
	if c.Output == "" {
		c.Output = filepath.Join("output", c.Scene+".png")
	}
	if c.UseBVH == nil {
		on := true
		c.UseBVH = &on
	}
}

// Validate rejects settings that cannot be rendered
func (c *Config) Validate() error {
	if c.Width < 0 || c.Height < 0 {
		return fmt.Errorf("config: negative image size %dx%d", c.Width, c.Height)
	}
	if c.Samples < 0 {
		return fmt.Errorf("config: negative sample count %d", c.Samples)
	}
	if c.MaxDepth < 0 || c.MaxDepth > core.DefaultMaxDepth {
		return fmt.Errorf("config: max_depth must be between 0 and %d, got %d", core.DefaultMaxDepth, c.MaxDepth)
	}
	if c.MaxTextureSize < 0 {
		return fmt.Errorf("config: negative max_texture_size %d", c.MaxTextureSize)
	}
	if _, ok := scene.Lookup(c.Scene); !ok {
		return fmt.Errorf("config: unknown scene %q", c.Scene)
	}
	if c.Output != "" {
		if _, err := output.FormatFromPath(c.Output); err != nil {
			return fmt.Errorf("config: %w", err)
		}
	}
	return nil
}

// SceneOptions converts the settings into options for scene.New
func (c *Config) SceneOptions() scene.Options {
	opts := scene.Options{
		Width:           c.Width,
		Height:          c.Height,
		SamplesPerPixel: c.Samples,
		MaxDepth:        c.MaxDepth,
		Seed:            c.Seed,
		TextureDir:      c.TextureDir,
		MaxTextureSize:  c.MaxTextureSize,
		DisableBVH:      c.UseBVH != nil && !*c.UseBVH,
	}
	if c.Background != nil {
		bg := core.NewVec3(c.Background[0], c.Background[1], c.Background[2])
		opts.Background = &bg
	}
	return opts
}

// RenderOptions converts the settings into options for the renderer
func (c *Config) RenderOptions() renderer.Options {
	return renderer.Options{
		TileSize:   c.TileSize,
		NumWorkers: c.Workers,
	}
}
