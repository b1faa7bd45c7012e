// Package output encodes rendered frames as PPM, PNG, JPEG or WebP images.
package output

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"golang.org/x/image/draw"

	"github.com/df07/go-nextweek-raytracer/pkg/renderer"
)

// Format names an output encoding
type Format string

const (
	FormatPPM  Format = "ppm"
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpeg"
	FormatWebP Format = "webp"
)

// JPEGQuality is used for every JPEG written by this package
const JPEGQuality = 95

// ToByte maps a gamma-corrected channel to 0..255: clamp to [0,1], scale by 255.99, truncate
func ToByte(c float64) uint8 {
	// NaN fails both comparisons and ends up as 0
	if !(c > 0) {
		return 0
	}
	if c > 1 {
		c = 1
	}
	return uint8(255.99 * c)
}

// WritePPM writes the frame as a plain-text P3 image
func WritePPM(w io.Writer, frame *renderer.Frame) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "P3\n%d %d\n255\n", frame.Width, frame.Height); err != nil {
		return fmt.Errorf("output: write ppm header: %w", err)
	}
	for _, p := range frame.Pixels {
		if _, err := fmt.Fprintf(bw, "%d %d %d\n", ToByte(p.X), ToByte(p.Y), ToByte(p.Z)); err != nil {
			return fmt.Errorf("output: write ppm pixel: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("output: write ppm: %w", err)
	}
	return nil
}

// ToImage converts the frame to an opaque RGBA image; row 0 is the top
func ToImage(frame *renderer.Frame) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, frame.Width, frame.Height))
	for y := 0; y < frame.Height; y++ {
		for x := 0; x < frame.Width; x++ {
			p := frame.At(x, y)
			img.SetRGBA(x, y, color.RGBA{R: ToByte(p.X), G: ToByte(p.Y), B: ToByte(p.Z), A: 255})
		}
	}
	return img
}

// Resize scales img to width x height with CatmullRom filtering
func Resize(img image.Image, width, height int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst
}

// FormatFromPath picks the format from a file extension
func FormatFromPath(path string) (Format, error) {
	return ParseFormat(strings.TrimPrefix(filepath.Ext(path), "."))
}

// ParseFormat accepts a format name or extension, case-insensitively
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "ppm":
		return FormatPPM, nil
	case "png":
		return FormatPNG, nil
	case "jpg", "jpeg":
		return FormatJPEG, nil
	case "webp":
		return FormatWebP, nil
	default:
		return "", fmt.Errorf("output: unsupported format %q (use ppm, png, jpeg or webp)", name)
	}
}

// ContentType returns the MIME type of the format
func (f Format) ContentType() string {
	switch f {
	case FormatPNG:
		return "image/png"
	case FormatJPEG:
		return "image/jpeg"
	case FormatWebP:
		return "image/webp"
	default:
		return "image/x-portable-pixmap"
	}
}

// Encode writes the frame in the given format
func Encode(w io.Writer, frame *renderer.Frame, format Format) error {
	if format == FormatPPM {
		return WritePPM(w, frame)
	}
	return EncodeImage(w, ToImage(frame), format)
}

// EncodeImage writes an already converted image in one of the raster formats
func EncodeImage(w io.Writer, img image.Image, format Format) error {
	var err error
	switch format {
	case FormatPNG:
		err = png.Encode(w, img)
	case FormatJPEG:
		err = jpeg.Encode(w, img, &jpeg.Options{Quality: JPEGQuality})
	case FormatWebP:
		err = nativewebp.Encode(w, img, nil)
	default:
		return fmt.Errorf("output: cannot encode image as %q", format)
	}
	if err != nil {
		return fmt.Errorf("output: encode %s: %w", format, err)
	}
	return nil
}

// Save writes the frame to path, choosing the encoder from the extension
// and creating parent directories as needed
func Save(path string, frame *renderer.Frame) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("output: create %s: %w", dir, err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("output: create %s: %w", path, err)
	}
	if err := Encode(f, frame, format); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("output: close %s: %w", path, err)
	}
	return nil
}
