package core

// DefaultMaxDepth is the bounce limit. A config may lower it but never raise it.
const DefaultMaxDepth = 50

// SamplingConfig contains rendering parameters shared by the renderer and
// the integrator
type SamplingConfig struct {
	Width           int   // Image width
	Height          int   // Image height
	SamplesPerPixel int   // Number of rays per pixel
	MaxDepth        int   // Maximum ray bounce depth
	Background      Vec3  // Radiance returned for rays that escape the scene
	Seed            int64 // Base seed for per-tile random streams
}

// EffectiveMaxDepth returns MaxDepth capped at DefaultMaxDepth, or
// DefaultMaxDepth when unset
func (c SamplingConfig) EffectiveMaxDepth() int {
	if c.MaxDepth <= 0 {
		return DefaultMaxDepth
	}
	return min(c.MaxDepth, DefaultMaxDepth)
}
