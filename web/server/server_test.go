package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"image/png"
	"math"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"golang.org/x/image/webp"

	"github.com/df07/go-nextweek-raytracer/pkg/scene"
)

func newTestServer() *Server {
	s := NewServer(0)
	s.NumWorkers = 2
	s.TextureDir = "testdata-missing" // earth falls back to its procedural texture
	return s
}

func get(t *testing.T, s *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHandleHealth(t *testing.T) {
	rec := get(t, newTestServer(), "/api/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("Expected status ok, got %q", body["status"])
	}
}

func TestHandleScenes(t *testing.T) {
	rec := get(t, newTestServer(), "/api/scenes")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var response scene.ScenesResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}

	count := 0
	for _, group := range response.Groups {
		count += len(group.Scenes)
	}
	if count != len(scene.Names()) {
		t.Errorf("Expected %d scenes, got %d", len(scene.Names()), count)
	}
}

func TestHandleSceneConfig(t *testing.T) {
	s := newTestServer()

	rec := get(t, s, "/api/scene-config?scene=cornell")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var body struct {
		Scene    string `json:"scene"`
		Defaults struct {
			Width           int `json:"width"`
			Height          int `json:"height"`
			SamplesPerPixel int `json:"samplesPerPixel"`
		} `json:"defaults"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if body.Scene != "cornell" || body.Defaults.Width != 300 || body.Defaults.Height != 300 {
		t.Errorf("Unexpected cornell defaults: %+v", body)
	}

	rec = get(t, s, "/api/scene-config?scene=nope")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for unknown scene, got %d", rec.Code)
	}
}

func TestHandleRender(t *testing.T) {
	s := newTestServer()

	t.Run("png", func(t *testing.T) {
		rec := get(t, s, "/api/render?scene=cornell&width=24&height=16&samples=2&maxDepth=3")
		if rec.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if ct := rec.Header().Get("Content-Type"); ct != "image/png" {
			t.Errorf("Expected image/png, got %q", ct)
		}
		img, err := png.Decode(rec.Body)
		if err != nil {
			t.Fatalf("Response is not a PNG: %v", err)
		}
		if b := img.Bounds(); b.Dx() != 24 || b.Dy() != 16 {
			t.Errorf("Expected 24x16, got %dx%d", b.Dx(), b.Dy())
		}
		if got := rec.Header().Get("X-Render-Samples"); got != "768" {
			t.Errorf("Expected 768 samples, got %q", got)
		}
	})

	t.Run("webp", func(t *testing.T) {
		rec := get(t, s, "/api/render?scene=two-spheres&width=16&height=16&samples=1&format=webp")
		if rec.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if ct := rec.Header().Get("Content-Type"); ct != "image/webp" {
			t.Errorf("Expected image/webp, got %q", ct)
		}
		cfg, err := webp.DecodeConfig(rec.Body)
		if err != nil {
			t.Fatalf("Response is not a WebP: %v", err)
		}
		if cfg.Width != 16 || cfg.Height != 16 {
			t.Errorf("Expected 16x16, got %dx%d", cfg.Width, cfg.Height)
		}
	})

	t.Run("preview keeps aspect ratio", func(t *testing.T) {
		rec := get(t, s, "/api/render?scene=cornell&width=64&height=32&samples=1&maxDepth=2&preview=16")
		if rec.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		img, err := png.Decode(rec.Body)
		if err != nil {
			t.Fatalf("Response is not a PNG: %v", err)
		}
		if b := img.Bounds(); b.Dx() != 16 || b.Dy() != 8 {
			t.Errorf("Expected 16x8 preview, got %dx%d", b.Dx(), b.Dy())
		}
	})

	t.Run("ppm", func(t *testing.T) {
		rec := get(t, s, "/api/render?scene=cornell&width=16&height=16&samples=1&maxDepth=2&format=ppm")
		if rec.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if !strings.HasPrefix(rec.Body.String(), "P3\n16 16\n255\n") {
			t.Errorf("Unexpected PPM header: %q", rec.Body.String()[:min(20, rec.Body.Len())])
		}
	})
}

func TestHandleRender_BadRequests(t *testing.T) {
	s := newTestServer()

	tests := []struct {
		name  string
		query string
	}{
		{"unknown scene", "scene=nope"},
		{"width too small", "width=4"},
		{"width too large", "width=5000"},
		{"samples not a number", "samples=abc"},
		{"zero samples", "samples=0"},
		{"depth too large", "maxDepth=1000"},
		{"depth above the bounce cap", "maxDepth=51"},
		{"bad seed", "seed=x"},
		{"unknown format", "format=gif"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, s, "/api/render?"+tt.query)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("Expected 400, got %d", rec.Code)
			}
			if !strings.Contains(rec.Body.String(), "error") {
				t.Errorf("Expected JSON error body, got %q", rec.Body.String())
			}
		})
	}
}

// parseSSE splits an event stream into (type, data) pairs
func parseSSE(body string) [][2]string {
	var events [][2]string
	for _, block := range strings.Split(body, "\n\n") {
		var eventType, data string
		for _, line := range strings.Split(block, "\n") {
			if rest, ok := strings.CutPrefix(line, "event: "); ok {
				eventType = rest
			} else if rest, ok := strings.CutPrefix(line, "data: "); ok {
				data = rest
			}
		}
		if eventType != "" {
			events = append(events, [2]string{eventType, data})
		}
	}
	return events
}

func TestHandleRenderStream(t *testing.T) {
	rec := get(t, newTestServer(), "/api/render-stream?scene=cornell&width=16&height=16&samples=1&maxDepth=2")

	if ct := rec.Header().Get("Content-Type"); ct != "text/event-stream" {
		t.Errorf("Expected text/event-stream, got %q", ct)
	}

	events := parseSSE(rec.Body.String())
	if len(events) < 2 {
		t.Fatalf("Expected at least result and complete events, got %v", events)
	}
	if last := events[len(events)-1][0]; last != "complete" {
		t.Errorf("Expected last event complete, got %q", last)
	}

	var result RenderResult
	found := false
	for _, e := range events {
		if e[0] == "result" {
			found = true
			if err := json.Unmarshal([]byte(e[1]), &result); err != nil {
				t.Fatalf("Invalid result JSON: %v", err)
			}
		}
	}
	if !found {
		t.Fatal("No result event")
	}
	if result.Width != 16 || result.Height != 16 || result.TotalPixels != 256 {
		t.Errorf("Unexpected result stats: %+v", result)
	}
	if result.PrimitiveCount != 6 {
		t.Errorf("Expected 6 primitives in the empty Cornell box, got %d", result.PrimitiveCount)
	}

	data, err := base64.StdEncoding.DecodeString(result.ImageData)
	if err != nil {
		t.Fatalf("Invalid base64 image: %v", err)
	}
	if _, err := png.Decode(bytes.NewReader(data)); err != nil {
		t.Errorf("Result image is not a PNG: %v", err)
	}
}

func TestHandleRenderStream_InvalidRequest(t *testing.T) {
	rec := get(t, newTestServer(), "/api/render-stream?scene=nope")

	events := parseSSE(rec.Body.String())
	if len(events) != 1 || events[0][0] != "error" {
		t.Fatalf("Expected a single error event, got %v", events)
	}
}

func TestHandleInspect(t *testing.T) {
	s := newTestServer()

	// The center pixel of the empty box sees the back wall
	rec := get(t, s, "/api/inspect?scene=cornell&x=150&y=150")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var response InspectResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if !response.Hit {
		t.Fatal("Expected a hit")
	}
	if response.MaterialType != "lambertian" {
		t.Errorf("Expected lambertian, got %q", response.MaterialType)
	}
	if response.GeometryType != "flip_normals" {
		t.Errorf("Expected flip_normals, got %q", response.GeometryType)
	}
	if math.Abs(response.Point[2]-555) > 1e-6 {
		t.Errorf("Expected hit on z=555, got %v", response.Point)
	}
	if response.Normal != [3]float64{0, 0, -1} {
		t.Errorf("Expected normal (0,0,-1), got %v", response.Normal)
	}
	if !response.FrontFace {
		t.Error("Expected the back wall to face the camera")
	}

	geometryProps, _ := response.Properties["geometry"].(map[string]interface{})
	inner, _ := geometryProps["inner"].(map[string]interface{})
	if inner["type"] != "rect" {
		t.Errorf("Expected inner rect, got %v", inner["type"])
	}
}

func TestHandleInspect_Errors(t *testing.T) {
	s := newTestServer()

	tests := []struct {
		name   string
		params url.Values
	}{
		{"missing x", url.Values{"y": {"1"}}},
		{"bad y", url.Values{"x": {"1"}, "y": {"z"}}},
		{"out of bounds", url.Values{"x": {"300"}, "y": {"0"}}},
		{"negative", url.Values{"x": {"-1"}, "y": {"0"}}},
		{"unknown scene", url.Values{"scene": {"nope"}, "x": {"0"}, "y": {"0"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, s, "/api/inspect?"+tt.params.Encode())
			if rec.Code != http.StatusBadRequest {
				t.Errorf("Expected 400, got %d", rec.Code)
			}
		})
	}
}

func TestParseIntParam(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		want    int
		wantErr bool
	}{
		{"missing uses default", "", 7, false},
		{"in range", "n=20", 20, false},
		{"lower bound", "n=1", 1, false},
		{"upper bound", "n=100", 100, false},
		{"below range", "n=0", 0, true},
		{"above range", "n=101", 0, true},
		{"not a number", "n=ten", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, _ := url.ParseQuery(tt.query)
			got, err := parseIntParam(values, "n", 7, 1, 100)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseIntParam() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("parseIntParam() = %d, want %d", got, tt.want)
			}
		})
	}
}
