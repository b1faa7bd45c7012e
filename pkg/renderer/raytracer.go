package renderer

import (
	"time"

	"github.com/df07/go-nextweek-raytracer/pkg/core"
	"github.com/df07/go-nextweek-raytracer/pkg/geometry"
	"github.com/df07/go-nextweek-raytracer/pkg/integrator"
)

// Scene interface to avoid circular imports
type Scene interface {
	GetCamera() *Camera
	GetWorld() geometry.Shape
	GetSamplingConfig() core.SamplingConfig
}

// Options controls how a frame is split across goroutines
type Options struct {
	TileSize   int // Tile edge in pixels (0 = DefaultTileSize)
	NumWorkers int // Number of parallel workers (0 = use CPU count)
}

// Raytracer renders frames of a scene
type Raytracer struct {
	camera     *Camera
	world      geometry.Shape
	config     core.SamplingConfig
	integrator integrator.Integrator
	width      int
	height     int
	options    Options
	logger     core.Logger
}

// NewRaytracer creates a new raytracer using the scene's sampling config
func NewRaytracer(scene Scene, options Options, logger core.Logger) *Raytracer {
	if logger == nil {
		logger = core.NopLogger{}
	}
	config := scene.GetSamplingConfig()

	return &Raytracer{
		camera:     scene.GetCamera(),
		world:      scene.GetWorld(),
		config:     config,
		integrator: integrator.NewPathTracingIntegrator(config),
		width:      config.Width,
		height:     config.Height,
		options:    options,
		logger:     logger,
	}
}

// SetIntegrator replaces the light transport algorithm
func (rt *Raytracer) SetIntegrator(integratorInst integrator.Integrator) {
	rt.integrator = integratorInst
}

func (rt *Raytracer) samplesPerPixel() int {
	return max(1, rt.config.SamplesPerPixel)
}

// PixelColor returns the average linear radiance of samples jittered camera
// rays through pixel (i, j), where j = 0 is the bottom row
func (rt *Raytracer) PixelColor(i, j, samples int, sampler core.Sampler) core.Vec3 {
	var ps PixelStats
	for sample := 0; sample < samples; sample++ {
		jitter := sampler.Get2D()
		s := (float64(i) + jitter.X) / float64(rt.width)
		t := (float64(j) + jitter.Y) / float64(rt.height)

		ray := rt.camera.GetRay(s, t, sampler)
		ps.AddSample(rt.integrator.RayColor(ray, rt.world, sampler, 0))
	}
	return ps.GetColor()
}

// RenderFrame renders the whole image across the worker pool. The result
// depends on the seed and tile size but not on the number of workers.
func (rt *Raytracer) RenderFrame() (*Frame, RenderStats) {
	start := time.Now()
	frame := NewFrame(rt.width, rt.height)
	tiles := NewTileGrid(rt.width, rt.height, rt.options.TileSize, rt.config.Seed)

	pool := NewWorkerPool(rt, len(tiles), rt.options.NumWorkers)
	rt.logger.Printf("Rendering %dx%d, %d spp, %d tiles on %d workers\n",
		rt.width, rt.height, rt.samplesPerPixel(), len(tiles), pool.GetNumWorkers())

	pool.Start()
	for taskID, tile := range tiles {
		pool.SubmitTask(TileTask{Tile: tile, TaskID: taskID, Frame: frame})
	}

	stats := RenderStats{
		SamplesPerPixel: rt.samplesPerPixel(),
		Tiles:           len(tiles),
		Workers:         pool.GetNumWorkers(),
	}
	for range tiles {
		result, ok := pool.GetResult()
		if !ok {
			break
		}
		stats.merge(result.Stats)
	}
	pool.Stop()

	stats.Elapsed = time.Since(start)
	rt.logger.Printf("Elapsed time: %v\n", stats.Elapsed)
	return frame, stats
}
