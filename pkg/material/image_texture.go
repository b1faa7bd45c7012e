package material

import (
	"github.com/df07/go-nextweek-raytracer/pkg/core"
)

// missingTextureColor is returned by an ImageTexture without pixel data
var missingTextureColor = core.NewVec3(0, 1, 1)

// ImageTexture provides color from a raw 8-bit RGB image
type ImageTexture struct {
	Width  int
	Height int
	Data   []byte // Row-major RGB: Data[3*(y*Width+x) + channel]
}

// NewImageTexture creates a new image texture over a row-major RGB buffer
func NewImageTexture(width, height int, data []byte) *ImageTexture {
	return &ImageTexture{
		Width:  width,
		Height: height,
		Data:   data,
	}
}

// Evaluate samples the texture at given UV coordinates using nearest-neighbor filtering
func (t *ImageTexture) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	if t.Width <= 0 || t.Height <= 0 || len(t.Data) < 3*t.Width*t.Height {
		return missingTextureColor
	}

	// V=0 is bottom, V=1 is top (flip V for image coordinates where origin is top-left)
	x := int(uv.X * float64(t.Width))
	y := int((1.0 - uv.Y) * float64(t.Height))

	// Clamp to image bounds
	if x >= t.Width {
		x = t.Width - 1
	}
	if y >= t.Height {
		y = t.Height - 1
	}
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}

	idx := 3 * (y*t.Width + x)
	return core.NewVec3(
		float64(t.Data[idx])/255.0,
		float64(t.Data[idx+1])/255.0,
		float64(t.Data[idx+2])/255.0,
	)
}
