package render

import (
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/matzehuels/chronoplot/pkg/timeline"
)

// Default styling, matching the classic timeline look: blue event markers on
// red period bars over a white background.
var (
	DefaultEventColor = color.RGBA{B: 255, A: 255}
	DefaultBarColor   = color.RGBA{R: 255, A: 255}
	DefaultLabelColor = color.RGBA{R: 0x55, G: 0x55, B: 0x55, A: 255}
	DefaultBackground = color.Color(color.White)
)

// Default geometry.
const (
	DefaultWidth        = 1600 // chart width in points
	DefaultHeight       = 400  // chart height in points
	DefaultMarkerRadius = 10   // event marker radius in points
	DefaultBarHeight    = 0.3  // period bar height in category units

	eventLabelSize    = 13 // event label font size in points
	periodLabelSize   = 11 // period label font size in points
	periodLabelOffset = -8 // period labels sit below the bar
)

// DefaultTooltips are the event columns echoed into tooltip data.
var DefaultTooltips = []string{"title", "description"}

// Renderer lays a timeline onto a chart. Configuration is fixed at
// construction and only read afterwards.
type Renderer struct {
	tl *timeline.Timeline

	background   color.Color
	eventColor   color.Color
	barColor     color.Color
	labelColor   color.Color
	markerRadius vg.Length
	barHeight    float64
	scientific   bool
	width        vg.Length
	height       vg.Length
	tooltips     []string
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithBackground sets the chart background fill.
func WithBackground(c color.Color) Option {
	return func(r *Renderer) { r.background = c }
}

// WithEventColor sets the event marker color.
func WithEventColor(c color.Color) Option {
	return func(r *Renderer) { r.eventColor = c }
}

// WithBarColor sets the period bar color.
func WithBarColor(c color.Color) Option {
	return func(r *Renderer) { r.barColor = c }
}

// WithMarkerRadius sets the event marker radius in points.
func WithMarkerRadius(pts float64) Option {
	return func(r *Renderer) { r.markerRadius = vg.Points(pts) }
}

// WithBarHeight sets the period bar height in category units.
func WithBarHeight(h float64) Option {
	return func(r *Renderer) { r.barHeight = h }
}

// WithScientific selects BCE/CE axis labels instead of BC/AD.
func WithScientific(scientific bool) Option {
	return func(r *Renderer) { r.scientific = scientific }
}

// WithSize sets the chart dimensions in points.
func WithSize(width, height float64) Option {
	return func(r *Renderer) {
		r.width = vg.Points(width)
		r.height = vg.Points(height)
	}
}

// WithTooltips selects the event columns echoed into tooltip data.
func WithTooltips(columns ...string) Option {
	return func(r *Renderer) { r.tooltips = columns }
}

// New creates a renderer for tl with the default style.
func New(tl *timeline.Timeline, opts ...Option) *Renderer {
	r := &Renderer{
		tl:           tl,
		background:   DefaultBackground,
		eventColor:   DefaultEventColor,
		barColor:     DefaultBarColor,
		labelColor:   DefaultLabelColor,
		markerRadius: vg.Points(DefaultMarkerRadius),
		barHeight:    DefaultBarHeight,
		width:        vg.Points(DefaultWidth),
		height:       vg.Points(DefaultHeight),
		tooltips:     DefaultTooltips,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// YRange derives the y-axis category rows: one synthetic id per period track
// in index order, then each distinct event label in first-occurrence order.
// Event labels already claimed by a synthetic id are not repeated.
func YRange(cols timeline.EventColumns, groups []timeline.PeriodGroup) []string {
	rows := make([]string, 0, len(groups)+len(cols.Labels))
	seen := make(map[string]bool, len(groups)+len(cols.Labels))

	for i := range groups {
		id := timeline.TrackID(i)
		rows = append(rows, id)
		seen[id] = true
	}
	for _, label := range cols.Labels {
		if !seen[label] {
			rows = append(rows, label)
			seen[label] = true
		}
	}
	return rows
}

// Chart builds the finished chart: nominal category axis, era-formatted date
// axis, event markers and labels, period bars and labels.
func (r *Renderer) Chart() (*plot.Plot, error) {
	cols := r.tl.EventColumns()
	groups := r.tl.PeriodGroups()
	rows := YRange(cols, groups)

	rowIndex := make(map[string]int, len(rows))
	for i, row := range rows {
		rowIndex[row] = i
	}

	p := r.setupPlot(rows)

	if err := r.plotEvents(p, cols, rowIndex); err != nil {
		return nil, err
	}
	if err := r.plotPeriods(p, groups); err != nil {
		return nil, err
	}
	return p, nil
}

// setupPlot constructs the empty chart: title, axis labels, background fill,
// nominal y-axis, and the era tick formatter.
func (r *Renderer) setupPlot(rows []string) *plot.Plot {
	p := plot.New()
	p.Title.Text = r.tl.Title
	p.X.Label.Text = "year"
	p.Y.Label.Text = "category"
	p.BackgroundColor = r.background
	p.X.Tick.Marker = EraTicker{Scientific: r.scientific}
	// NominalY indexes its first name and cannot take an empty row set.
	if len(rows) > 0 {
		p.NominalY(rows...)
	}
	return p
}

// plotEvents draws the event markers and their labels.
func (r *Renderer) plotEvents(p *plot.Plot, cols timeline.EventColumns, rowIndex map[string]int) error {
	if cols.Len() == 0 {
		return nil
	}

	pts := make(plotter.XYs, cols.Len())
	for i := range pts {
		pts[i].X = cols.Dates[i]
		pts[i].Y = float64(rowIndex[cols.Labels[i]])
	}

	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return err
	}
	scatter.GlyphStyle = draw.GlyphStyle{
		Color:  r.eventColor,
		Radius: r.markerRadius,
		Shape:  draw.CircleGlyph{},
	}
	p.Add(scatter)

	return r.addLabels(p, pts, cols.Titles, eventLabelSize, 0)
}

// plotPeriods draws one bar per period at its track's row, with the track
// titles anchored at the period midpoints.
func (r *Renderer) plotPeriods(p *plot.Plot, groups []timeline.PeriodGroup) error {
	for i, g := range groups {
		row := float64(i)
		for j := range g.Starts {
			bar, err := plotter.NewPolygon(plotter.XYs{
				{X: g.Starts[j], Y: row - r.barHeight/2},
				{X: g.Ends[j], Y: row - r.barHeight/2},
				{X: g.Ends[j], Y: row + r.barHeight/2},
				{X: g.Starts[j], Y: row + r.barHeight/2},
			})
			if err != nil {
				return err
			}
			bar.Color = r.barColor
			bar.LineStyle.Width = 0
			p.Add(bar)
		}

		if len(g.Mids) == 0 {
			continue
		}
		mids := make(plotter.XYs, len(g.Mids))
		for j := range mids {
			mids[j].X = g.Mids[j]
			mids[j].Y = row
		}
		if err := r.addLabels(p, mids, g.Titles, periodLabelSize, periodLabelOffset); err != nil {
			return err
		}
	}
	return nil
}

// addLabels attaches centered text labels at the given points, offset
// vertically by yOffset points.
func (r *Renderer) addLabels(p *plot.Plot, pts plotter.XYs, texts []string, size, yOffset float64) error {
	labels, err := plotter.NewLabels(plotter.XYLabels{XYs: pts, Labels: texts})
	if err != nil {
		return err
	}
	for i := range labels.TextStyle {
		labels.TextStyle[i].Color = r.labelColor
		labels.TextStyle[i].Font.Size = vg.Points(size)
		labels.TextStyle[i].XAlign = text.XCenter
	}
	labels.Offset = vg.Point{Y: vg.Points(yOffset)}
	p.Add(labels)
	return nil
}
