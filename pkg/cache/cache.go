// Package cache provides caching for rendered chart artifacts.
//
// Rendering a timeline is deterministic: the same timeline content and the
// same render options always produce the same bytes. The cache exploits that
// by keying artifacts on a content hash of the timeline plus the render
// options, so repeated renders of an unchanged timeline are served from disk
// (or redis) instead of re-plotting.
//
// Backends:
//   - FileCache: entries on disk under the XDG cache directory (CLI default)
//   - RedisCache: shared cache for long-running preview servers
//   - NullCache: caching disabled
package cache

import (
	"context"
	"time"
)

// Cache TTLs per artifact kind. Chart artifacts are pure functions of their
// key, so the TTLs exist only to bound disk usage.
const (
	TTLChart   = 30 * 24 * time.Hour
	TTLDensity = 30 * 24 * time.Hour
)

// Cache is the storage interface shared by all backends.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key was
	// present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with an optional TTL. A zero TTL never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// ChartKeyOpts are the render options that participate in chart cache keys.
// Any option that changes the produced bytes must appear here.
type ChartKeyOpts struct {
	Format     string  `json:"format"`
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
	Scientific bool    `json:"scientific"`
	Background string  `json:"background"`
	EventColor string  `json:"event_color"`
	BarColor   string  `json:"bar_color"`
	MarkerSize float64 `json:"marker_size"`
	BarHeight  float64 `json:"bar_height"`
}

// DensityKeyOpts are the options that participate in density strip cache keys.
type DensityKeyOpts struct {
	BinYears   float64 `json:"bin_years"`
	Scientific bool    `json:"scientific"`
	Width      int     `json:"width"`
	Height     int     `json:"height"`
}

// Keyer generates cache keys for the different artifact kinds.
type Keyer interface {
	// ChartKey generates a key for a rendered chart artifact.
	ChartKey(timelineHash string, opts ChartKeyOpts) string

	// DensityKey generates a key for a rendered density strip.
	DensityKey(timelineHash string, opts DensityKeyOpts) string
}

// DefaultKeyer is the standard key generator.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard key generator.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// ChartKey generates a key for a rendered chart artifact.
func (k *DefaultKeyer) ChartKey(timelineHash string, opts ChartKeyOpts) string {
	return hashKey("chart", timelineHash, opts)
}

// DensityKey generates a key for a rendered density strip.
func (k *DefaultKeyer) DensityKey(timelineHash string, opts DensityKeyOpts) string {
	return hashKey("density", timelineHash, opts)
}
