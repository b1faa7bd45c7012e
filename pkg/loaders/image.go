package loaders

import (
	"bytes"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/webp"
)

// decoders maps lower-case file extensions to their decoder
var decoders = map[string]func(io.Reader) (image.Image, error){
	".png":  png.Decode,
	".jpg":  jpeg.Decode,
	".jpeg": jpeg.Decode,
	".gif":  gif.Decode,
	".bmp":  bmp.Decode,
	".webp": webp.Decode,
	".tga":  tga.Decode,
}

// ImageData contains a decoded image as packed 8-bit RGB
type ImageData struct {
	Width  int
	Height int
	Pixels []byte // Row-major RGB, top row first
}

// LoadImage loads a PNG, JPEG, GIF, BMP, WebP or TGA image
func LoadImage(filename string) (*ImageData, error) {
	return LoadTexture(filename, 0)
}

// LoadTexture loads an image and shrinks it so neither side exceeds
// maxSize. maxSize <= 0 keeps the original resolution.
func LoadTexture(filename string, maxSize int) (*ImageData, error) {
	img, err := DecodeFile(filename)
	if err != nil {
		return nil, err
	}
	if maxSize > 0 {
		img = Downscale(img, maxSize)
	}
	return FromImage(img), nil
}

// DecodeFile reads and decodes an image file. The decoder is chosen by
// extension since TGA has no magic number; unknown extensions are sniffed.
func DecodeFile(filename string) (image.Image, error) {
	raw, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("loaders: read %s: %w", filename, err)
	}

	var img image.Image
	if decode, ok := decoders[strings.ToLower(filepath.Ext(filename))]; ok {
		img, err = decode(bytes.NewReader(raw))
	} else {
		img, _, err = image.Decode(bytes.NewReader(raw))
	}
	if err != nil {
		return nil, fmt.Errorf("loaders: decode %s: %w", filename, err)
	}
	return img, nil
}

// Downscale resizes img with CatmullRom filtering so that its longer side is
// at most maxSize, keeping the aspect ratio. Smaller images are returned as is.
func Downscale(img image.Image, maxSize int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if maxSize <= 0 || (w <= maxSize && h <= maxSize) {
		return img
	}

	if w >= h {
		h = max(1, h*maxSize/w)
		w = maxSize
	} else {
		w = max(1, w*maxSize/h)
		h = maxSize
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// FromImage converts any image to packed RGB, dropping alpha
func FromImage(img image.Image) *ImageData {
	b := img.Bounds()
	width, height := b.Dx(), b.Dy()
	pixels := make([]byte, 3*width*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			// RGBA returns uint32 in [0, 65535]
			r, g, bl, _ := img.At(x+b.Min.X, y+b.Min.Y).RGBA()
			i := 3 * (y*width + x)
			pixels[i] = byte(r >> 8)
			pixels[i+1] = byte(g >> 8)
			pixels[i+2] = byte(bl >> 8)
		}
	}

	return &ImageData{
		Width:  width,
		Height: height,
		Pixels: pixels,
	}
}
