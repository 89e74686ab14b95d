package render

import (
	"bytes"
	"math"
	"strconv"

	chart "github.com/wcharczuk/go-chart/v2"

	"github.com/matzehuels/chronoplot/pkg/errors"
	"github.com/matzehuels/chronoplot/pkg/timeline"
)

// Density strip defaults.
const (
	DefaultDensityBin    = 100 // bin width in years
	DefaultDensityWidth  = 1024
	DefaultDensityHeight = 220
)

// DensityOptions configure the event density strip.
type DensityOptions struct {
	// BinYears is the histogram bin width in years. Defaults to 100.
	BinYears float64

	// Scientific selects BCE/CE bin labels instead of BC/AD.
	Scientific bool

	// Width and Height are the image dimensions in pixels.
	Width  int
	Height int
}

// DensityStrip renders a bar chart of events per time bin as PNG bytes.
// It complements the main chart on crowded timelines: the strip shows where
// events cluster even when their markers overlap.
func DensityStrip(tl *timeline.Timeline, opts DensityOptions) ([]byte, error) {
	if len(tl.Events) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidTimeline, "timeline %q has no events to bin", tl.Title)
	}
	if opts.BinYears <= 0 {
		opts.BinYears = DefaultDensityBin
	}
	if opts.Width <= 0 {
		opts.Width = DefaultDensityWidth
	}
	if opts.Height <= 0 {
		opts.Height = DefaultDensityHeight
	}

	bins, start := binEvents(tl, opts.BinYears)

	maxCount := 0
	bars := make([]chart.Value, len(bins))
	for i, count := range bins {
		maxCount = max(maxCount, count)
		bars[i] = chart.Value{
			Value: float64(count),
			Label: FormatYear(start+float64(i)*opts.BinYears, opts.Scientific),
		}
	}

	bc := chart.BarChart{
		Title:    tl.Title + " (events per " + strconv.FormatFloat(opts.BinYears, 'f', -1, 64) + " years)",
		Width:    opts.Width,
		Height:   opts.Height,
		BarWidth: max(10, (opts.Width-100)/len(bars)-4),
		Bars:     bars,
		// An explicit range anchored at zero; the derived range collapses
		// when every bin holds the same count.
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: float64(maxCount)},
		},
	}

	var buf bytes.Buffer
	if err := bc.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// binEvents counts events per bin. Bins start at the first bin boundary at
// or below the earliest event, so bin edges land on round numbers.
func binEvents(tl *timeline.Timeline, binYears float64) ([]int, float64) {
	minDate, maxDate := tl.Events[0].Date, tl.Events[0].Date
	for _, e := range tl.Events[1:] {
		minDate = math.Min(minDate, e.Date)
		maxDate = math.Max(maxDate, e.Date)
	}

	start := math.Floor(minDate/binYears) * binYears
	n := int(math.Floor((maxDate-start)/binYears)) + 1

	bins := make([]int, n)
	for _, e := range tl.Events {
		i := int(math.Floor((e.Date - start) / binYears))
		if i < 0 {
			i = 0
		}
		if i >= n {
			i = n - 1
		}
		bins[i]++
	}
	return bins, start
}
