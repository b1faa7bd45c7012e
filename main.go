package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/df07/go-nextweek-raytracer/pkg/config"
	"github.com/df07/go-nextweek-raytracer/pkg/core"
	"github.com/df07/go-nextweek-raytracer/pkg/output"
	"github.com/df07/go-nextweek-raytracer/pkg/renderer"
	"github.com/df07/go-nextweek-raytracer/pkg/scene"
)

// cliOptions holds everything parsed from the command line
type cliOptions struct {
	flags      config.Flags
	configPath string
	list       bool
	help       bool
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// parseFlags parses command line arguments into CLI options
func parseFlags(args []string, out io.Writer) (cliOptions, error) {
	var opts cliOptions
	fs := flag.NewFlagSet("raytracer", flag.ContinueOnError)
	fs.SetOutput(out)

	fs.StringVar(&opts.configPath, "config", "", "Path to a JSON config file")
	fs.StringVar(&opts.flags.Scene, "scene", "", "Scene to render ("+strings.Join(scene.Names(), ", ")+")")
	fs.IntVar(&opts.flags.Width, "width", 0, "Image width (0 = scene default)")
	fs.IntVar(&opts.flags.Height, "height", 0, "Image height (0 = scene default)")
	fs.IntVar(&opts.flags.Samples, "samples", 0, "Samples per pixel (0 = scene default)")
	fs.IntVar(&opts.flags.MaxDepth, "max-depth", 0, "Maximum ray bounce depth, at most 50 (0 = 50)")
	fs.Int64Var(&opts.flags.Seed, "seed", 0, "Random seed for scene layout and sampling")
	fs.IntVar(&opts.flags.Workers, "workers", 0, "Number of parallel workers (0 = auto-detect CPU count)")
	fs.IntVar(&opts.flags.TileSize, "tile-size", 0, "Tile edge in pixels (0 = 32)")
	fs.StringVar(&opts.flags.Output, "output", "", "Output file (.ppm, .png, .jpg or .webp)")
	fs.StringVar(&opts.flags.TextureDir, "textures", "", "Directory holding image textures")
	fs.BoolVar(&opts.flags.NoBVH, "no-bvh", false, "Intersect the flat object list instead of a BVH")
	fs.BoolVar(&opts.list, "list", false, "List available scenes")
	fs.BoolVar(&opts.help, "help", false, "Show help information")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if opts.help {
		fmt.Fprintln(out, "Next Week Raytracer")
		fmt.Fprintln(out, "Usage: raytracer [options]")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Options:")
		fs.PrintDefaults()
	}
	return opts, nil
}

// loadConfig reads the optional config file and merges the flags into it
func loadConfig(opts cliOptions) (config.Config, error) {
	var cfg config.Config
	if opts.configPath != "" {
		loaded, err := config.Load(opts.configPath)
		if err != nil {
			return config.Config{}, err
		}
		cfg = loaded
	}
	cfg.Resolve(opts.flags)
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// createScene builds the configured scene ready for rendering
func createScene(cfg config.Config) (*scene.Scene, error) {
	return scene.New(cfg.Scene, cfg.SceneOptions())
}

func listScenes(out io.Writer) {
	for _, group := range scene.ListAllScenes().Groups {
		fmt.Fprintf(out, "%s:\n", group.Name)
		for _, info := range group.Scenes {
			fmt.Fprintf(out, "  %-20s %s\n", info.ID, info.Description)
		}
	}
}

func run(args []string, out io.Writer) error {
	opts, err := parseFlags(args, out)
	if err != nil {
		return err
	}
	if opts.help {
		return nil
	}
	if opts.list {
		listScenes(out)
		return nil
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	logger := newLogger(out)
	logger.Printf("Using %s scene...\n", cfg.Scene)

	s, err := createScene(cfg)
	if err != nil {
		return err
	}
	for _, warning := range s.Warnings {
		logger.Printf("Warning: %s\n", warning)
	}
	logger.Printf("Scene has %d primitives\n", s.GetPrimitiveCount())
	if s.BVH != nil {
		stats := s.BVH.Stats()
		logger.Printf("BVH: %d nodes, %d shapes, depth %d\n", stats.Nodes, stats.Shapes, stats.MaxDepth)
	}

	raytracer := renderer.NewRaytracer(s, cfg.RenderOptions(), logger)
	frame, stats := raytracer.RenderFrame()
	logger.Printf("Rendered %d pixels, %d samples\n", stats.TotalPixels, stats.TotalSamples)

	if err := output.Save(cfg.Output, frame); err != nil {
		return err
	}
	logger.Printf("Render saved as %s\n", cfg.Output)
	return nil
}

// writerLogger implements core.Logger on top of an io.Writer
type writerLogger struct {
	w io.Writer
}

func (l writerLogger) Printf(format string, args ...interface{}) {
	fmt.Fprintf(l.w, format, args...)
}

func newLogger(out io.Writer) core.Logger {
	if out == os.Stdout {
		return renderer.NewDefaultLogger()
	}
	return writerLogger{w: out}
}
