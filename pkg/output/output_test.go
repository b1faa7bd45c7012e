package output

import (
	"bytes"
	"image"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/webp"

	"github.com/df07/go-nextweek-raytracer/pkg/core"
	"github.com/df07/go-nextweek-raytracer/pkg/renderer"
)

func newTestFrame() *renderer.Frame {
	frame := renderer.NewFrame(2, 2)
	frame.Set(0, 0, core.NewVec3(1, 0, 0))
	frame.Set(1, 0, core.NewVec3(0, 1, 0))
	frame.Set(0, 1, core.NewVec3(0, 0, 1))
	frame.Set(1, 1, core.NewVec3(2, -1, 0.5))
	return frame
}

func TestToByte(t *testing.T) {
	tests := []struct {
		in       float64
		expected uint8
	}{
		{-1, 0},
		{0, 0},
		{0.25, 63},
		{0.5, 127},
		{0.999, 255},
		{1, 255},
		{2, 255},
		{math.NaN(), 0},
		{math.Inf(1), 255},
	}

	for _, tt := range tests {
		if got := ToByte(tt.in); got != tt.expected {
			t.Errorf("ToByte(%v) = %d, want %d", tt.in, got, tt.expected)
		}
	}
}

func TestWritePPM(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePPM(&buf, newTestFrame()); err != nil {
		t.Fatalf("WritePPM failed: %v", err)
	}

	expected := "P3\n2 2\n255\n255 0 0\n0 255 0\n0 0 255\n255 0 127\n"
	if buf.String() != expected {
		t.Errorf("Unexpected PPM:\n%q\nwant\n%q", buf.String(), expected)
	}
}

func TestToImage(t *testing.T) {
	img := ToImage(newTestFrame())
	if img.Bounds() != image.Rect(0, 0, 2, 2) {
		t.Fatalf("Unexpected bounds %v", img.Bounds())
	}
	c := img.RGBAAt(1, 1)
	if c.R != 255 || c.G != 0 || c.B != 127 || c.A != 255 {
		t.Errorf("Unexpected pixel %v", c)
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		name     string
		expected Format
		wantErr  bool
	}{
		{"ppm", FormatPPM, false},
		{"PNG", FormatPNG, false},
		{"jpg", FormatJPEG, false},
		{"jpeg", FormatJPEG, false},
		{"webp", FormatWebP, false},
		{"tiff", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFormat(tt.name)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormat(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
			}
			if got != tt.expected {
				t.Errorf("ParseFormat(%q) = %q, want %q", tt.name, got, tt.expected)
			}
		})
	}
}

func TestSave(t *testing.T) {
	dir := t.TempDir()
	frame := newTestFrame()

	t.Run("ppm", func(t *testing.T) {
		path := filepath.Join(dir, "nested", "out.ppm")
		if err := Save(path, frame); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("ReadFile failed: %v", err)
		}
		if !bytes.HasPrefix(data, []byte("P3\n2 2\n255\n")) {
			t.Errorf("Missing PPM header: %q", data)
		}
	})

	decoders := map[string]func(*os.File) (image.Image, error){
		"out.png":  func(f *os.File) (image.Image, error) { return png.Decode(f) },
		"out.webp": func(f *os.File) (image.Image, error) { return webp.Decode(f) },
	}
	for name, decode := range decoders {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			if err := Save(path, frame); err != nil {
				t.Fatalf("Save failed: %v", err)
			}
			f, err := os.Open(path)
			if err != nil {
				t.Fatalf("Open failed: %v", err)
			}
			defer f.Close()

			img, err := decode(f)
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}
			r, g, b, _ := img.At(0, 0).RGBA()
			if r>>8 != 255 || g>>8 != 0 || b>>8 != 0 {
				t.Errorf("Expected red top-left pixel, got (%d,%d,%d)", r>>8, g>>8, b>>8)
			}
		})
	}

	if err := Save(filepath.Join(dir, "out.tiff"), frame); err == nil {
		t.Error("Expected error for unsupported extension")
	}
}

func TestResize(t *testing.T) {
	img := Resize(ToImage(newTestFrame()), 5, 3)
	if img.Bounds() != image.Rect(0, 0, 5, 3) {
		t.Errorf("Expected 5x3, got %v", img.Bounds())
	}
}
