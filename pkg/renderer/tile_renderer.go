package renderer

import (
	"image"
	"math/rand"

	"github.com/df07/go-nextweek-raytracer/pkg/core"
)

// DefaultTileSize is the edge length of a square render tile in pixels
const DefaultTileSize = 32

// Tile represents a rectangular region of the output frame
type Tile struct {
	ID     int             // Unique tile identifier
	Bounds image.Rectangle // Pixel bounds in output rows (y=0 is the top)
	Random *rand.Rand      // Tile-specific random generator for deterministic results
}

// NewTile creates a new tile whose random stream depends only on seed and id
func NewTile(id int, bounds image.Rectangle, seed int64) *Tile {
	return &Tile{
		ID:     id,
		Bounds: bounds,
		Random: rand.New(rand.NewSource(tileSeed(seed, id))),
	}
}

// tileSeed mixes the frame seed with the tile id. +42 avoids seed 0.
func tileSeed(seed int64, id int) int64 {
	return seed*1_000_003 + int64(id) + 42
}

// NewTileGrid creates a grid of tiles covering the entire image
func NewTileGrid(width, height, tileSize int, seed int64) []*Tile {
	if tileSize <= 0 {
		tileSize = DefaultTileSize
	}

	var tiles []*Tile
	tileID := 0

	// Calculate number of tiles in each dimension
	tilesX := (width + tileSize - 1) / tileSize // Ceiling division
	tilesY := (height + tileSize - 1) / tileSize

	for tileY := 0; tileY < tilesY; tileY++ {
		for tileX := 0; tileX < tilesX; tileX++ {
			x0 := tileX * tileSize
			y0 := tileY * tileSize
			x1 := min(x0+tileSize, width) // Don't exceed image bounds
			y1 := min(y0+tileSize, height)

			tiles = append(tiles, NewTile(tileID, image.Rect(x0, y0, x1, y1), seed))
			tileID++
		}
	}

	return tiles
}

// RenderTile samples every pixel of the tile and stores the gamma-corrected
// average in frame. Tiles never overlap, so concurrent calls on distinct
// tiles write disjoint pixels.
func (rt *Raytracer) RenderTile(tile *Tile, frame *Frame) RenderStats {
	sampler := core.NewRandomSampler(tile.Random)
	samples := rt.samplesPerPixel()
	stats := RenderStats{SamplesPerPixel: samples}

	for y := tile.Bounds.Min.Y; y < tile.Bounds.Max.Y; y++ {
		j := rt.height - 1 - y
		for i := tile.Bounds.Min.X; i < tile.Bounds.Max.X; i++ {
			color := rt.PixelColor(i, j, samples, sampler)
			frame.Set(i, y, color.Sqrt())
			stats.TotalPixels++
			stats.TotalSamples += samples
		}
	}

	return stats
}
