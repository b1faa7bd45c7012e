package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/df07/go-nextweek-raytracer/pkg/core"
	"github.com/df07/go-nextweek-raytracer/pkg/output"
	"github.com/df07/go-nextweek-raytracer/pkg/renderer"
	"github.com/df07/go-nextweek-raytracer/pkg/scene"
)

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene    string        // Scene id (e.g., "cornell")
	Width    int           // Image width (0 = scene default)
	Height   int           // Image height (0 = scene default)
	Samples  int           // Samples per pixel
	MaxDepth int           // Maximum bounce depth
	Seed     int64         // Scene and sampling seed
	Format   output.Format // Encoding of the returned image
	Preview  int           // Longest edge of a downscaled preview (0 = full size)
}

// RenderResult is the final SSE event of a streamed render
type RenderResult struct {
	ImageData      string `json:"imageData"` // Base64 encoded image
	Format         string `json:"format"`
	Width          int    `json:"width"`
	Height         int    `json:"height"`
	TotalPixels    int    `json:"totalPixels"`
	TotalSamples   int    `json:"totalSamples"`
	Workers        int    `json:"workers"`
	PrimitiveCount int    `json:"primitiveCount"`
	ElapsedMs      int64  `json:"elapsedMs"`
}

// SSEEvent represents a unified SSE event for thread-safe writing
type SSEEvent struct {
	Type string `json:"type"` // "console", "result", "error", "complete"
	Data string `json:"data"` // JSON-encoded data
}

// parseRenderRequest parses request parameters
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	query := r.URL.Query()
	req := &RenderRequest{Scene: query.Get("scene")}
	if req.Scene == "" {
		req.Scene = scene.DefaultSceneID
	}
	if _, ok := scene.Lookup(req.Scene); !ok {
		return nil, fmt.Errorf("unknown scene: %s", req.Scene)
	}

	// Parse and validate all parameters using helper functions
	var err error
	if req.Width, err = parseIntParam(query, "width", 0, MinImageSize, MaxImageSize); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(query, "height", 0, MinImageSize, MaxImageSize); err != nil {
		return nil, err
	}
	if req.Samples, err = parseIntParam(query, "samples", DefaultSamples, 1, MaxSamples); err != nil {
		return nil, err
	}
	if req.MaxDepth, err = parseIntParam(query, "maxDepth", core.DefaultMaxDepth, 1, MaxBounceDepth); err != nil {
		return nil, err
	}
	if req.Seed, err = parseInt64Param(query, "seed", 0); err != nil {
		return nil, err
	}
	if req.Preview, err = parseIntParam(query, "preview", 0, MinImageSize, MaxImageSize); err != nil {
		return nil, err
	}

	format := query.Get("format")
	if format == "" {
		format = string(output.FormatPNG)
	}
	if req.Format, err = output.ParseFormat(format); err != nil {
		return nil, err
	}

	// Performance warning
	if req.Width*req.Height > 800*600 && req.Samples > 100 {
		log.Printf("Render warning: Large image with high samples may render slowly")
	}

	return req, nil
}

// renderScene builds the requested scene and renders one frame of it
func (s *Server) renderScene(req *RenderRequest, logger core.Logger) (*scene.Scene, *renderer.Frame, renderer.RenderStats, error) {
	sceneObj, err := scene.New(req.Scene, scene.Options{
		Width:           req.Width,
		Height:          req.Height,
		SamplesPerPixel: req.Samples,
		MaxDepth:        req.MaxDepth,
		Seed:            req.Seed,
		TextureDir:      s.TextureDir,
	})
	if err != nil {
		return nil, nil, renderer.RenderStats{}, err
	}
	for _, warning := range sceneObj.Warnings {
		logger.Printf("Warning: %s\n", warning)
	}

	raytracer := renderer.NewRaytracer(sceneObj, renderer.Options{NumWorkers: s.NumWorkers}, logger)
	frame, stats := raytracer.RenderFrame()
	return sceneObj, frame, stats, nil
}

// encodeFrame encodes the frame, downscaling first when a preview is requested
func encodeFrame(frame *renderer.Frame, req *RenderRequest) ([]byte, error) {
	var buf bytes.Buffer
	if req.Format == output.FormatPPM || req.Preview == 0 || max(frame.Width, frame.Height) <= req.Preview {
		if err := output.Encode(&buf, frame, req.Format); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}

	w, h := req.Preview, req.Preview
	if frame.Width >= frame.Height {
		h = max(1, frame.Height*req.Preview/frame.Width)
	} else {
		w = max(1, frame.Width*req.Preview/frame.Height)
	}
	thumb := output.Resize(output.ToImage(frame), w, h)
	if err := output.EncodeImage(&buf, thumb, req.Format); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// handleRender renders a frame and returns it as an encoded image
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	_, frame, stats, err := s.renderScene(req, core.NopLogger{})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	data, err := encodeFrame(frame, req)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", req.Format.ContentType())
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("X-Render-Samples", strconv.Itoa(stats.TotalSamples))
	w.Header().Set("X-Render-Elapsed-Ms", strconv.FormatInt(stats.Elapsed.Milliseconds(), 10))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		log.Printf("Error writing image: %v", err)
	}
}

// handleRenderStream renders a frame while streaming console output via SSE,
// then sends the encoded image as a "result" event
func (s *Server) handleRenderStream(w http.ResponseWriter, r *http.Request) {
	s.setSSEHeaders(w)
	ctx := r.Context()

	// Single writer goroutine keeps SSE output ordered
	sseEventChan := make(chan SSEEvent, 100)
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		s.writeSSEEvents(w, ctx, sseEventChan)
	}()
	defer func() {
		close(sseEventChan)
		<-writerDone
	}()

	req, err := s.parseRenderRequest(r)
	if err != nil {
		s.handleError(ctx, sseEventChan, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	consoleChan, webLogger := s.setupConsoleLogging()
	streamDone := make(chan struct{})
	go func() {
		defer close(streamDone)
		s.streamConsoleMessages(ctx, consoleChan, sseEventChan)
	}()

	startTime := time.Now()
	sceneObj, frame, stats, err := s.renderScene(req, webLogger)
	close(consoleChan)
	<-streamDone
	if err != nil {
		s.handleError(ctx, sseEventChan, err.Error())
		return
	}

	data, err := encodeFrame(frame, req)
	if err != nil {
		s.handleError(ctx, sseEventChan, fmt.Sprintf("Failed to encode image: %v", err))
		return
	}

	result := RenderResult{
		ImageData:      base64.StdEncoding.EncodeToString(data),
		Format:         string(req.Format),
		Width:          frame.Width,
		Height:         frame.Height,
		TotalPixels:    stats.TotalPixels,
		TotalSamples:   stats.TotalSamples,
		Workers:        stats.Workers,
		PrimitiveCount: sceneObj.GetPrimitiveCount(),
		ElapsedMs:      time.Since(startTime).Milliseconds(),
	}
	payload, err := json.Marshal(result)
	if err != nil {
		s.handleError(ctx, sseEventChan, fmt.Sprintf("Failed to encode result: %v", err))
		return
	}

	s.sendEvent(ctx, sseEventChan, SSEEvent{Type: "result", Data: string(payload)})
	s.sendEvent(ctx, sseEventChan, SSEEvent{Type: "complete", Data: "Rendering completed"})
}

// setSSEHeaders sets the required headers for Server-Sent Events
func (s *Server) setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
}

// setupConsoleLogging creates console channel and web logger for a render
func (s *Server) setupConsoleLogging() (chan ConsoleMessage, core.Logger) {
	consoleChan := make(chan ConsoleMessage, 50)
	renderID := fmt.Sprintf("render-%d", time.Now().UnixNano())
	webLogger := NewWebLogger(renderID, consoleChan)
	return consoleChan, webLogger
}

// writeSSEEvents handles writing all SSE events in a single goroutine (thread-safe)
func (s *Server) writeSSEEvents(w http.ResponseWriter, ctx context.Context, sseEventChan chan SSEEvent) {
	for {
		select {
		case event, ok := <-sseEventChan:
			if !ok {
				// Channel closed
				return
			}

			// Write SSE event
			if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, event.Data); err != nil {
				// Client disconnected during write
				return
			}
			if flusher, ok := w.(http.Flusher); ok {
				flusher.Flush()
			}

		case <-ctx.Done():
			// Client disconnected
			return
		}
	}
}

// streamConsoleMessages forwards console messages until consoleChan is closed
func (s *Server) streamConsoleMessages(ctx context.Context, consoleChan chan ConsoleMessage, sseEventChan chan SSEEvent) {
	for consoleMsg := range consoleChan {
		data, err := json.Marshal(consoleMsg)
		if err != nil {
			log.Printf("Error marshaling console message: %v", err)
			continue
		}

		// Send to unified SSE channel
		select {
		case sseEventChan <- SSEEvent{Type: "console", Data: string(data)}:
		case <-ctx.Done():
		default:
			// Channel full, skip message to avoid blocking
		}
	}
}

// sendEvent queues an event unless the client has gone away
func (s *Server) sendEvent(ctx context.Context, sseEventChan chan SSEEvent, event SSEEvent) {
	select {
	case sseEventChan <- event:
	case <-ctx.Done():
	}
}

// handleError sends an error event to the SSE channel
func (s *Server) handleError(ctx context.Context, sseEventChan chan SSEEvent, message string) {
	s.sendEvent(ctx, sseEventChan, SSEEvent{Type: "error", Data: message})
}
