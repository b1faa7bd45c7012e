package material

import (
	"github.com/df07/go-nextweek-raytracer/pkg/core"
)

// NewCheckerboardTexture creates a procedural checkerboard image texture.
// Used as a stand-in when an image file is not available.
func NewCheckerboardTexture(width, height, checkSize int, color1, color2 core.Vec3) *ImageTexture {
	data := make([]byte, 3*width*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			color := color1
			if (x/checkSize+y/checkSize)%2 != 0 {
				color = color2
			}
			putRGB(data, 3*(y*width+x), color)
		}
	}

	return NewImageTexture(width, height, data)
}

func putRGB(data []byte, idx int, color core.Vec3) {
	c := color.Clamp(0, 1)
	data[idx] = byte(c.X * 255.0)
	data[idx+1] = byte(c.Y * 255.0)
	data[idx+2] = byte(c.Z * 255.0)
}
