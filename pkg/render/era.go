package render

import (
	"math"
	"strconv"

	"gonum.org/v1/plot"
)

// FormatYear renders a numeric year as an era-qualified label. Negative
// years map to "BC" (or "BCE" under the scientific convention); zero and
// positive years map to "AD" (or "CE").
func FormatYear(year float64, scientific bool) string {
	abs := strconv.FormatFloat(math.Abs(year), 'f', -1, 64)
	if year < 0 {
		if scientific {
			return abs + " BCE"
		}
		return abs + " BC"
	}
	if scientific {
		return abs + " CE"
	}
	return abs + " AD"
}

// EraTicker wraps another ticker and rewrites its major tick labels as
// era-qualified years. Minor ticks (empty labels) pass through untouched.
type EraTicker struct {
	// Scientific selects BCE/CE labels instead of BC/AD.
	Scientific bool

	// Base computes tick positions. Defaults to plot.DefaultTicks.
	Base plot.Ticker
}

// Ticks implements plot.Ticker.
func (t EraTicker) Ticks(min, max float64) []plot.Tick {
	base := t.Base
	if base == nil {
		base = plot.DefaultTicks{}
	}

	ticks := base.Ticks(min, max)
	for i, tick := range ticks {
		if tick.IsMinor() {
			continue
		}
		ticks[i].Label = FormatYear(tick.Value, t.Scientific)
	}
	return ticks
}

var _ plot.Ticker = EraTicker{}
