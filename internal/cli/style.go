package cli

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/chronoplot/pkg/errors"
	"github.com/matzehuels/chronoplot/pkg/pipeline"
	"github.com/matzehuels/chronoplot/pkg/render"
)

// Cache backends selectable in the style file.
const (
	CacheBackendFile  = "file"
	CacheBackendRedis = "redis"
	CacheBackendNone  = "none"
)

// styleFileName is the style file looked up in the working directory and the
// XDG config directory.
const styleFileName = "chronoplot.toml"

// Style is the persistent configuration read from chronoplot.toml. Command
// flags override style file values; the style file overrides built-in
// defaults.
type Style struct {
	Scientific bool       `toml:"scientific"`
	Chart      ChartStyle `toml:"chart"`
	Cache      CacheStyle `toml:"cache"`
	Mongo      MongoStyle `toml:"mongo"`
}

// ChartStyle configures chart appearance.
type ChartStyle struct {
	Width      float64  `toml:"width"`
	Height     float64  `toml:"height"`
	Background string   `toml:"background"`
	EventColor string   `toml:"event_color"`
	BarColor   string   `toml:"bar_color"`
	MarkerSize float64  `toml:"marker_size"`
	BarHeight  float64  `toml:"bar_height"`
	Tooltips   []string `toml:"tooltips"`
}

// CacheStyle configures the render cache backend.
type CacheStyle struct {
	Backend   string `toml:"backend"`    // file (default), redis, none
	RedisAddr string `toml:"redis_addr"` // host:port for the redis backend
}

// MongoStyle configures the timeline store connection.
type MongoStyle struct {
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// DefaultStyle returns the built-in style.
func DefaultStyle() *Style {
	return &Style{
		Cache: CacheStyle{Backend: CacheBackendFile},
	}
}

// LoadStyle reads the style file. An explicit path must exist; otherwise the
// working directory and the XDG config directory are searched, and a missing
// file yields the default style.
func LoadStyle(path string) (*Style, error) {
	explicit := path != ""
	if !explicit {
		path = findStyleFile()
		if path == "" {
			return DefaultStyle(), nil
		}
	}

	style := DefaultStyle()
	if _, err := toml.DecodeFile(path, style); err != nil {
		if os.IsNotExist(err) && explicit {
			return nil, errors.New(errors.ErrCodeFileNotFound, "style file not found: %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse style file %s", path)
	}
	if err := style.validate(); err != nil {
		return nil, err
	}
	return style, nil
}

// findStyleFile returns the first style file found, or "".
func findStyleFile() string {
	if _, err := os.Stat(styleFileName); err == nil {
		return styleFileName
	}
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".config")
	}
	path := filepath.Join(dir, appName, styleFileName)
	if _, err := os.Stat(path); err == nil {
		return path
	}
	return ""
}

func (s *Style) validate() error {
	switch s.Cache.Backend {
	case "", CacheBackendFile, CacheBackendRedis, CacheBackendNone:
	default:
		return errors.New(errors.ErrCodeInvalidInput,
			"invalid cache backend: %q (must be one of: file, redis, none)", s.Cache.Backend)
	}
	if s.Cache.Backend == "" {
		s.Cache.Backend = CacheBackendFile
	}
	for _, c := range []string{s.Chart.Background, s.Chart.EventColor, s.Chart.BarColor} {
		if c == "" {
			continue
		}
		if _, err := render.ParseHexColor(c); err != nil {
			return err
		}
	}
	return nil
}

// Apply copies style values onto pipeline options, leaving fields already set
// by flags untouched.
func (s *Style) Apply(opts *pipeline.Options) {
	if !opts.Scientific {
		opts.Scientific = s.Scientific
	}
	if opts.Width == 0 {
		opts.Width = s.Chart.Width
	}
	if opts.Height == 0 {
		opts.Height = s.Chart.Height
	}
	if opts.Background == "" {
		opts.Background = s.Chart.Background
	}
	if opts.EventColor == "" {
		opts.EventColor = s.Chart.EventColor
	}
	if opts.BarColor == "" {
		opts.BarColor = s.Chart.BarColor
	}
	if opts.MarkerSize == 0 {
		opts.MarkerSize = s.Chart.MarkerSize
	}
	if opts.BarHeight == 0 {
		opts.BarHeight = s.Chart.BarHeight
	}
	if len(opts.Tooltips) == 0 {
		opts.Tooltips = s.Chart.Tooltips
	}
	// The stored-timeline connection only applies when a timeline name was
	// requested; otherwise a configured mongo URI would conflict with file
	// input.
	if opts.TimelineName != "" && opts.MongoURI == "" {
		opts.MongoURI = s.Mongo.URI
	}
	if opts.MongoDatabase == "" {
		opts.MongoDatabase = s.Mongo.Database
	}
	if opts.MongoCollection == "" {
		opts.MongoCollection = s.Mongo.Collection
	}
}
