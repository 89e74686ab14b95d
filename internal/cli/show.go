package cli

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os/exec"
	"runtime"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/matzehuels/chronoplot/pkg/pipeline"
	"github.com/matzehuels/chronoplot/pkg/render"
)

// defaultShowAddr is the preview server's listen address.
const defaultShowAddr = "localhost:8417"

// showOpts holds the command-line flags for the show command.
type showOpts struct {
	addr       string  // listen address
	name       string  // stored timeline name (mongo source)
	styleFile  string  // explicit style file path
	scientific bool    // BCE/CE axis labels instead of BC/AD
	density    bool    // include the event density strip
	densityBin float64 // density bin width in years
	refresh    bool    // bypass the cache and re-render
	noCache    bool    // disable caching
	noOpen     bool    // don't open the browser
}

// showCommand creates the show command for previewing a chart in the browser.
func (c *CLI) showCommand() *cobra.Command {
	opts := showOpts{}

	cmd := &cobra.Command{
		Use:   "show [file]",
		Short: "Preview a timeline chart in the browser",
		Long: `Serve a browser preview of the rendered chart. The page inlines the SVG,
shows hover tooltips for each event, and optionally the event density strip.
The server runs until interrupted.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := ""
			if len(args) > 0 {
				input = args[0]
			}
			return c.runShow(cmd, input, &opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", defaultShowAddr, "listen address")
	cmd.Flags().StringVarP(&opts.name, "name", "n", "", "preview a stored timeline by name instead of a file")
	cmd.Flags().StringVar(&opts.styleFile, "style", "", "style file path (default: ./chronoplot.toml)")
	cmd.Flags().BoolVar(&opts.scientific, "scientific", false, "use BCE/CE era labels instead of BC/AD")
	cmd.Flags().BoolVar(&opts.density, "density", false, "include the event density strip")
	cmd.Flags().Float64Var(&opts.densityBin, "density-bin", 0, "density bin width in years")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass the cache and re-render")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.noOpen, "no-open", false, "don't open the browser")

	return cmd
}

// runShow renders the chart once and serves it until the context is canceled.
func (c *CLI) runShow(cmd *cobra.Command, input string, opts *showOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	style, err := LoadStyle(opts.styleFile)
	if err != nil {
		return err
	}

	popts := pipeline.Options{
		Input:        input,
		TimelineName: opts.name,
		Formats:      []string{render.FormatSVG, render.FormatJSON},
		Scientific:   opts.scientific,
		Density:      opts.density,
		DensityBin:   opts.densityBin,
		Refresh:      opts.refresh,
		Logger:       c.Logger,
	}
	style.Apply(&popts)

	runner, err := c.newRunner(cmd, style, opts.noCache)
	if err != nil {
		return err
	}
	defer func() { _ = runner.Close() }()

	result, err := runner.Execute(ctx, popts)
	if err != nil {
		return err
	}

	page, err := previewPage(result, popts)
	if err != nil {
		return err
	}

	// The render id tags this serve session in logs and ETags, so reloads
	// after a re-render are distinguishable in browser dev tools.
	renderID := uuid.NewString()
	srv := &http.Server{
		Addr:    opts.addr,
		Handler: previewRouter(page, result, renderID),
	}

	previewURL := "http://" + opts.addr + "/"
	printSuccess("Previewing %s", result.Timeline.Title)
	printStats(result.Stats.EventCount, result.Stats.TrackCount, result.CacheInfo.RenderHit)
	printInfo("Serving on %s", StyleLink.Render(previewURL))
	logger.Debug("preview session", "render_id", renderID)

	if !opts.noOpen {
		if err := openBrowser(previewURL); err != nil {
			printWarning("Could not open the browser; open %s manually", previewURL)
		}
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// previewPage builds the preview HTML for a rendered result. Execute defaults
// only its own copy of the options, so the tooltip columns are defaulted
// again here before they reach the renderer.
func previewPage(result *pipeline.Result, popts pipeline.Options) ([]byte, error) {
	popts.SetRenderDefaults()
	ropts, err := popts.RendererOptions()
	if err != nil {
		return nil, err
	}
	data := render.New(result.Timeline, ropts...).Data()
	return render.BuildPage(data, result.Artifacts[render.FormatSVG], result.Artifacts[pipeline.DensityArtifact], popts.Scientific)
}

// previewRouter serves the preview page and its raw artifacts.
func previewRouter(page []byte, result *pipeline.Result, renderID string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.NoCache)

	serve := func(contentType string, body []byte) http.HandlerFunc {
		return func(w http.ResponseWriter, req *http.Request) {
			if len(body) == 0 {
				http.NotFound(w, req)
				return
			}
			w.Header().Set("Content-Type", contentType)
			w.Header().Set("ETag", `"`+renderID+`"`)
			_, _ = w.Write(body)
		}
	}

	r.Get("/", serve("text/html; charset=utf-8", page))
	r.Get("/chart.svg", serve("image/svg+xml", result.Artifacts[render.FormatSVG]))
	r.Get("/data.json", serve("application/json", result.Artifacts[render.FormatJSON]))
	r.Get("/density.png", serve("image/png", result.Artifacts[pipeline.DensityArtifact]))

	return r
}

// openBrowser opens rawURL in the platform browser.
func openBrowser(rawURL string) error {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if parsed.Scheme != "https" && parsed.Scheme != "http" {
		return fmt.Errorf("URL scheme must be http or https, got %q", parsed.Scheme)
	}

	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", rawURL)
	case "linux":
		cmd = exec.Command("xdg-open", rawURL)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", rawURL)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}
	return cmd.Start()
}
