// Package cli implements the chronoplot command-line interface.
//
// This package provides commands for rendering timeline charts from JSON,
// YAML, and iCalendar files (or timelines stored in MongoDB), previewing them
// in the browser, and managing the render cache. The CLI is built using cobra
// and supports verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - render: Generate SVG, PNG, PDF, or JSON chart artifacts
//   - show: Serve a live preview of a chart in the browser
//   - inspect: Browse a timeline's events and tracks in the terminal
//   - store: Manage timelines kept in MongoDB
//   - cache: Manage the render cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/chronoplot/pkg/buildinfo"
	"github.com/matzehuels/chronoplot/pkg/cache"
	"github.com/matzehuels/chronoplot/pkg/pipeline"
	"github.com/matzehuels/chronoplot/pkg/render"
)

// appName is the application name used for directories and display.
const appName = "chronoplot"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:          appName,
		Short:        "Chronoplot renders historical timelines as charts",
		Long:         `Chronoplot is a CLI tool for rendering historical timelines as charts: events become labeled markers, period tracks become horizontal bars, and the date axis carries BC/AD (or BCE/CE) era labels.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				c.SetLogLevel(log.DebugLevel)
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.showCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.storeCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// newRunner creates a pipeline runner for CLI use. The style file's cache
// backend selects between the file cache, redis, and no caching.
func (c *CLI) newRunner(cmd *cobra.Command, style *Style, noCache bool) (*pipeline.Runner, error) {
	store, err := c.newCache(cmd, style, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(store, nil, c.Logger), nil
}

func (c *CLI) newCache(cmd *cobra.Command, style *Style, noCache bool) (cache.Cache, error) {
	if noCache || style.Cache.Backend == CacheBackendNone {
		return cache.NewNullCache(), nil
	}
	if style.Cache.Backend == CacheBackendRedis {
		return cache.NewRedisCache(cmd.Context(), style.Cache.RedisAddr)
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// cacheDir returns the cache directory using XDG standard (~/.cache/chronoplot/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{render.FormatSVG}
	}
	return strings.Split(s, ",")
}
