// Package pipeline provides the core chart pipeline for Chronoplot.
//
// This package implements the complete load → render pipeline that can be
// used by the CLI and the preview server. By centralizing this logic, we
// ensure consistent behavior across all entry points and avoid code
// duplication.
//
// # Architecture
//
// The pipeline consists of two stages:
//
//  1. Load: Read a timeline from a file (JSON, YAML, iCalendar) or MongoDB
//  2. Render: Generate output in various formats (SVG, PNG, PDF, JSON)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Input:   "history.json",
//	    Formats: []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	// Load only
//	tl, err := runner.Load(ctx, opts)
//
//	// Render an already loaded timeline
//	artifacts, err := runner.Render(ctx, tl, opts)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/chronoplot/pkg/cache"
	"github.com/matzehuels/chronoplot/pkg/errors"
	"github.com/matzehuels/chronoplot/pkg/render"
	"github.com/matzehuels/chronoplot/pkg/timeline"
)

// Default values shared by the CLI and the preview server.
const (
	// DefaultWidth is the default chart width in points.
	DefaultWidth = render.DefaultWidth

	// DefaultHeight is the default chart height in points.
	DefaultHeight = render.DefaultHeight

	// DefaultMarkerSize is the default event marker radius in points.
	DefaultMarkerSize = render.DefaultMarkerRadius

	// DefaultBarHeight is the default period bar height in category units.
	DefaultBarHeight = render.DefaultBarHeight
)

// DefaultFormat is the format rendered when none is requested.
const DefaultFormat = render.FormatSVG

// Options contains all configuration for the chart pipeline.
// This struct supports JSON serialization for preview server requests.
type Options struct {
	// Load options. Input names a timeline file; the Mongo fields select a
	// stored timeline instead. Exactly one source must be configured.
	Input           string `json:"input,omitempty"`
	MongoURI        string `json:"mongo_uri,omitempty"`
	MongoDatabase   string `json:"mongo_database,omitempty"`
	MongoCollection string `json:"mongo_collection,omitempty"`
	TimelineName    string `json:"timeline_name,omitempty"`

	// Render options
	Formats    []string `json:"formats,omitempty"`
	Width      float64  `json:"width,omitempty"`
	Height     float64  `json:"height,omitempty"`
	Scientific bool     `json:"scientific,omitempty"`
	Background string   `json:"background,omitempty"`  // hex color
	EventColor string   `json:"event_color,omitempty"` // hex color
	BarColor   string   `json:"bar_color,omitempty"`   // hex color
	MarkerSize float64  `json:"marker_size,omitempty"`
	BarHeight  float64  `json:"bar_height,omitempty"`
	Tooltips   []string `json:"tooltips,omitempty"`

	// Density options
	Density    bool    `json:"density,omitempty"`
	DensityBin float64 `json:"density_bin,omitempty"`

	// Refresh bypasses the cache and re-renders.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Timeline is the loaded timeline.
	Timeline *timeline.Timeline

	// TimelineHash is the content hash of the timeline.
	TimelineHash string

	// Artifacts contains rendered outputs keyed by format. When density
	// rendering is requested the strip appears under the "density" key.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which artifacts came from the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	EventCount int
	TrackCount int
	LoadTime   time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for the render stage.
type CacheInfo struct {
	RenderHit  bool // Whether all chart artifacts came from cache
	DensityHit bool // Whether the density strip came from cache
}

// DensityArtifact is the Artifacts key holding the density strip PNG.
const DensityArtifact = "density"

// ValidateAndSetDefaults checks required fields and applies defaults for the
// full pipeline. This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLoad(); err != nil {
		return err
	}
	o.SetRenderDefaults()
	if err := render.ValidateFormats(o.Formats); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLoad checks required fields for loading.
func (o *Options) ValidateForLoad() error {
	if o.Input == "" && o.MongoURI == "" {
		return errors.New(errors.ErrCodeInvalidInput, "input file or mongo URI is required")
	}
	if o.Input != "" && o.MongoURI != "" {
		return errors.New(errors.ErrCodeInvalidInput, "input file and mongo URI are mutually exclusive")
	}
	if o.MongoURI != "" {
		if o.TimelineName == "" {
			return errors.New(errors.ErrCodeInvalidInput, "timeline name is required when loading from mongo")
		}
		if err := errors.ValidateTimelineName(o.TimelineName); err != nil {
			return err
		}
		if o.MongoDatabase == "" {
			o.MongoDatabase = DefaultMongoDatabase
		}
		if o.MongoCollection == "" {
			o.MongoCollection = DefaultMongoCollection
		}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// Default MongoDB locations for stored timelines.
const (
	DefaultMongoDatabase   = "chronoplot"
	DefaultMongoCollection = "timelines"
)

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{DefaultFormat}
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.MarkerSize == 0 {
		o.MarkerSize = DefaultMarkerSize
	}
	if o.BarHeight == 0 {
		o.BarHeight = DefaultBarHeight
	}
	if o.DensityBin == 0 {
		o.DensityBin = render.DefaultDensityBin
	}
	if len(o.Tooltips) == 0 {
		o.Tooltips = render.DefaultTooltips
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	return render.ValidateFormats(o.Formats)
}

// RendererOptions translates the flat option fields into renderer options.
// Color fields are hex strings; invalid colors fail here rather than deep in
// the renderer.
func (o *Options) RendererOptions() ([]render.Option, error) {
	opts := []render.Option{
		render.WithSize(o.Width, o.Height),
		render.WithScientific(o.Scientific),
		render.WithMarkerRadius(o.MarkerSize),
		render.WithBarHeight(o.BarHeight),
		render.WithTooltips(o.Tooltips...),
	}

	if o.Background != "" {
		c, err := render.ParseHexColor(o.Background)
		if err != nil {
			return nil, err
		}
		opts = append(opts, render.WithBackground(c))
	}
	if o.EventColor != "" {
		c, err := render.ParseHexColor(o.EventColor)
		if err != nil {
			return nil, err
		}
		opts = append(opts, render.WithEventColor(c))
	}
	if o.BarColor != "" {
		c, err := render.ParseHexColor(o.BarColor)
		if err != nil {
			return nil, err
		}
		opts = append(opts, render.WithBarColor(c))
	}
	return opts, nil
}

// ChartKeyOpts returns cache key options for a chart artifact.
func (o *Options) ChartKeyOpts(format string) cache.ChartKeyOpts {
	return cache.ChartKeyOpts{
		Format:     format,
		Width:      o.Width,
		Height:     o.Height,
		Scientific: o.Scientific,
		Background: o.Background,
		EventColor: o.EventColor,
		BarColor:   o.BarColor,
		MarkerSize: o.MarkerSize,
		BarHeight:  o.BarHeight,
	}
}

// DensityKeyOpts returns cache key options for the density strip.
func (o *Options) DensityKeyOpts() cache.DensityKeyOpts {
	return cache.DensityKeyOpts{
		BinYears:   o.DensityBin,
		Scientific: o.Scientific,
	}
}
