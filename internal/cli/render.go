package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/chronoplot/pkg/pipeline"
	"github.com/matzehuels/chronoplot/pkg/render"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output     string   // output file path (single format) or base path (multiple)
	formats    []string // output formats: "svg", "png", "pdf", "json"
	name       string   // stored timeline name (mongo source)
	styleFile  string   // explicit style file path
	width      float64  // chart width in points
	height     float64  // chart height in points
	scientific bool     // BCE/CE axis labels instead of BC/AD
	background string   // background color (hex)
	eventColor string   // event marker color (hex)
	barColor   string   // period bar color (hex)
	markerSize float64  // event marker radius in points
	barHeight  float64  // period bar height in category units
	density    bool     // also render the event density strip
	densityBin float64  // density bin width in years
	refresh    bool     // bypass the cache and re-render
	noCache    bool     // disable caching entirely
}

// renderCommand creates the render command for generating chart artifacts.
//
// Default settings:
//   - format: svg
//   - width: 1600pt, height: 400pt
//   - era labels: BC/AD (use --scientific for BCE/CE)
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	opts := renderOpts{}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a timeline to chart artifacts",
		Long: `Render a timeline file (JSON, YAML, or iCalendar) or a stored timeline
(--name) to one or more chart artifacts.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := render.ValidateFormats(opts.formats); err != nil {
				return err
			}
			input := ""
			if len(args) > 0 {
				input = args[0]
			}
			return c.runRender(cmd, input, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, json (comma-separated)")
	cmd.Flags().StringVarP(&opts.name, "name", "n", "", "render a stored timeline by name instead of a file")
	cmd.Flags().StringVar(&opts.styleFile, "style", "", "style file path (default: ./chronoplot.toml)")
	cmd.Flags().Float64Var(&opts.width, "width", 0, "chart width in points")
	cmd.Flags().Float64Var(&opts.height, "height", 0, "chart height in points")
	cmd.Flags().BoolVar(&opts.scientific, "scientific", false, "use BCE/CE era labels instead of BC/AD")
	cmd.Flags().StringVar(&opts.background, "background", "", "background color (hex, e.g. #ffffff)")
	cmd.Flags().StringVar(&opts.eventColor, "event-color", "", "event marker color (hex)")
	cmd.Flags().StringVar(&opts.barColor, "bar-color", "", "period bar color (hex)")
	cmd.Flags().Float64Var(&opts.markerSize, "marker-size", 0, "event marker radius in points")
	cmd.Flags().Float64Var(&opts.barHeight, "bar-height", 0, "period bar height in category units")
	cmd.Flags().BoolVar(&opts.density, "density", false, "also render the event density strip (PNG)")
	cmd.Flags().Float64Var(&opts.densityBin, "density-bin", 0, "density bin width in years")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass the cache and re-render")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	return cmd
}

// pipelineOptions assembles pipeline options from flags and the style file.
func (c *CLI) pipelineOptions(input string, opts *renderOpts, style *Style) pipeline.Options {
	popts := pipeline.Options{
		Input:        input,
		TimelineName: opts.name,
		Formats:      opts.formats,
		Width:        opts.width,
		Height:       opts.height,
		Scientific:   opts.scientific,
		Background:   opts.background,
		EventColor:   opts.eventColor,
		BarColor:     opts.barColor,
		MarkerSize:   opts.markerSize,
		BarHeight:    opts.barHeight,
		Density:      opts.density,
		DensityBin:   opts.densityBin,
		Refresh:      opts.refresh,
		Logger:       c.Logger,
	}

	style.Apply(&popts)
	return popts
}

// runRender executes the pipeline and writes the artifacts to disk.
func (c *CLI) runRender(cmd *cobra.Command, input string, opts *renderOpts) error {
	logger := loggerFromContext(cmd.Context())

	style, err := LoadStyle(opts.styleFile)
	if err != nil {
		return err
	}
	popts := c.pipelineOptions(input, opts, style)

	runner, err := c.newRunner(cmd, style, opts.noCache)
	if err != nil {
		return err
	}
	defer func() { _ = runner.Close() }()

	// Store loads can block on the network; the spinner shows liveness.
	var sp *Spinner
	if opts.name != "" {
		sp = newSpinnerWithContext(cmd.Context(), "Loading "+opts.name+" from store...")
		sp.Start()
	}

	prog := newProgress(logger)
	result, err := runner.Execute(cmd.Context(), popts)
	if sp != nil {
		sp.Stop()
	}
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Rendered %d artifact(s)", len(result.Artifacts)))

	base := basePath(opts.output, input, opts.name)
	written, err := writeArtifacts(base, opts.output, result.Artifacts, popts.Formats)
	if err != nil {
		return err
	}

	printSuccess("Rendered %s", result.Timeline.Title)
	printStats(result.Stats.EventCount, result.Stats.TrackCount, result.CacheInfo.RenderHit)
	for _, path := range written {
		printFile(path)
	}
	if !opts.density {
		printNextStep("Preview in the browser", appName+" show "+sourceArg(input, opts.name))
	}
	return nil
}

// basePath derives the base output path from the output flag, the input file,
// and the stored timeline name. If output has a format extension it is
// stripped so sibling formats land next to each other.
func basePath(output, input, name string) string {
	if output != "" {
		ext := filepath.Ext(output)
		if render.ValidFormats[strings.TrimPrefix(ext, ".")] {
			return strings.TrimSuffix(output, ext)
		}
		return output
	}
	if input != "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	return name
}

// writeArtifacts writes each artifact to base.<format>. When a single format
// was requested and output names a file, the artifact goes there verbatim.
func writeArtifacts(base, output string, artifacts map[string][]byte, formats []string) ([]string, error) {
	single := len(formats) == 1 && output != "" && filepath.Ext(output) != ""
	var written []string

	for _, format := range formats {
		data, ok := artifacts[format]
		if !ok {
			continue
		}
		path := base + "." + format
		if single {
			path = output
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			return nil, err
		}
		written = append(written, path)
	}

	if data, ok := artifacts[pipeline.DensityArtifact]; ok {
		path := base + "_density.png"
		if err := os.WriteFile(path, data, 0644); err != nil {
			return nil, err
		}
		written = append(written, path)
	}
	return written, nil
}

// sourceArg reconstructs the source argument for suggested next commands.
func sourceArg(input, name string) string {
	if input != "" {
		return input
	}
	return "--name " + name
}
