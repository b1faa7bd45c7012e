package renderer

import (
	"github.com/df07/go-nextweek-raytracer/pkg/core"
)

// Frame holds a rendered, gamma-corrected image in output order: the first
// row is the top of the picture (j = Height-1) and rows run left to right.
type Frame struct {
	Width  int
	Height int
	Pixels []core.Vec3
}

// NewFrame allocates a black frame
func NewFrame(width, height int) *Frame {
	return &Frame{
		Width:  width,
		Height: height,
		Pixels: make([]core.Vec3, width*height),
	}
}

// At returns the pixel at column x of output row y (row 0 is the top)
func (f *Frame) At(x, y int) core.Vec3 {
	return f.Pixels[y*f.Width+x]
}

// Set stores the pixel at column x of output row y
func (f *Frame) Set(x, y int, color core.Vec3) {
	f.Pixels[y*f.Width+x] = color
}
