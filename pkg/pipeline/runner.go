package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/chronoplot/pkg/cache"
	"github.com/matzehuels/chronoplot/pkg/errors"
	chronoio "github.com/matzehuels/chronoplot/pkg/io"
	"github.com/matzehuels/chronoplot/pkg/observability"
	"github.com/matzehuels/chronoplot/pkg/render"
	"github.com/matzehuels/chronoplot/pkg/source/mongo"
	"github.com/matzehuels/chronoplot/pkg/timeline"
)

// Runner encapsulates pipeline execution with caching.
// Both the CLI and the preview server use this to avoid duplicating caching
// logic.
//
// The Runner is stateless except for the cache and logger - it doesn't store
// pipeline results. Multiple goroutines can safely use the same Runner with
// different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete load → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid options")
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Load
	loadStart := time.Now()
	tl, err := r.Load(ctx, opts)
	if err != nil {
		return nil, err
	}
	result.Timeline = tl
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.EventCount = len(tl.Events)
	result.Stats.TrackCount = len(tl.Tracks)

	// Content hash for cache keys and preview server responses
	data, err := chronoio.MarshalTimeline(tl)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "hash timeline")
	}
	result.TimelineHash = cache.Hash(data)

	r.Logger.Info("loaded timeline",
		"events", result.Stats.EventCount,
		"tracks", result.Stats.TrackCount,
		"duration", result.Stats.LoadTime)

	// Stage 2: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, tl, result.TimelineHash, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.CacheInfo.RenderHit = renderHit

	if opts.Density {
		strip, densityHit, err := r.densityWithCacheInfo(ctx, tl, result.TimelineHash, opts)
		if err != nil {
			return nil, err
		}
		result.Artifacts[DensityArtifact] = strip
		result.CacheInfo.DensityHit = densityHit
	}
	result.Stats.RenderTime = time.Since(renderStart)

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", result.CacheInfo.RenderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Load reads the timeline from the configured source.
func (r *Runner) Load(ctx context.Context, opts Options) (*timeline.Timeline, error) {
	if err := opts.ValidateForLoad(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)

	source := opts.Input
	if source == "" {
		source = "mongo:" + opts.TimelineName
	}
	observability.Pipeline().OnLoadStart(ctx, source)

	start := time.Now()
	var (
		tl  *timeline.Timeline
		err error
	)
	if opts.Input != "" {
		tl, err = chronoio.Import(opts.Input)
	} else {
		tl, err = r.loadMongo(ctx, opts)
	}
	observability.Pipeline().OnLoadComplete(ctx, source, eventCount(tl), time.Since(start), err)
	if err != nil {
		return nil, err
	}

	if err := tl.Validate(); err != nil {
		r.Logger.Warn("timeline validation", "issue", err)
	}
	return tl, nil
}

func (r *Runner) loadMongo(ctx context.Context, opts Options) (*timeline.Timeline, error) {
	store, err := mongo.Connect(ctx, opts.MongoURI, opts.MongoDatabase, opts.MongoCollection)
	if err != nil {
		return nil, err
	}
	defer func() { _ = store.Close(ctx) }()

	return store.Load(ctx, opts.TimelineName)
}

// RenderWithCacheInfo renders artifacts with caching and returns cache hit
// info. The timeline hash keys the cache entries.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, tl *timeline.Timeline, hash string, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	// Try to get all formats from cache (unless refresh requested)
	artifacts := make(map[string][]byte)
	if !opts.Refresh {
		allCached := true
		for _, format := range opts.Formats {
			key := r.Keyer.ChartKey(hash, opts.ChartKeyOpts(format))
			if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
				observability.Cache().OnCacheHit(ctx, "chart")
				artifacts[format] = data
			} else {
				observability.Cache().OnCacheMiss(ctx, "chart")
				allCached = false
				break
			}
		}
		if allCached && len(artifacts) == len(opts.Formats) {
			observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), nil)
			return artifacts, true, nil
		}
	}

	// Render all formats
	ropts, err := opts.RendererOptions()
	if err != nil {
		observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
		return nil, false, err
	}
	rendered, err := render.New(tl, ropts...).Render(opts.Formats)
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	// Cache each format
	for format, data := range rendered {
		key := r.Keyer.ChartKey(hash, opts.ChartKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, cache.TTLChart); err == nil {
			observability.Cache().OnCacheSet(ctx, "chart", len(data))
		}
	}

	return rendered, false, nil
}

// Render is a convenience wrapper that renders without consulting cache hit
// info. The timeline is hashed internally.
func (r *Runner) Render(ctx context.Context, tl *timeline.Timeline, opts Options) (map[string][]byte, error) {
	data, err := chronoio.MarshalTimeline(tl)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "hash timeline")
	}
	artifacts, _, err := r.RenderWithCacheInfo(ctx, tl, cache.Hash(data), opts)
	return artifacts, err
}

// densityWithCacheInfo renders the density strip with caching.
func (r *Runner) densityWithCacheInfo(ctx context.Context, tl *timeline.Timeline, hash string, opts Options) ([]byte, bool, error) {
	key := r.Keyer.DensityKey(hash, opts.DensityKeyOpts())

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, "density")
			return data, true, nil
		}
		observability.Cache().OnCacheMiss(ctx, "density")
	}

	strip, err := render.DensityStrip(tl, render.DensityOptions{
		BinYears:   opts.DensityBin,
		Scientific: opts.Scientific,
	})
	if err != nil {
		return nil, false, err
	}

	if err := r.Cache.Set(ctx, key, strip, cache.TTLDensity); err == nil {
		observability.Cache().OnCacheSet(ctx, "density", len(strip))
	}
	return strip, false, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

func eventCount(tl *timeline.Timeline) int {
	if tl == nil {
		return 0
	}
	return len(tl.Events)
}
