// Package render turns a timeline into a two-dimensional chart.
//
// The chart places dates on the x-axis and category rows on the y-axis.
// Events are scatter markers with text labels; period tracks are horizontal
// bars spanning start to end, labeled at their midpoint. The x-axis ticks are
// rewritten as eras: "490 BC" / "1066 AD", or "490 BCE" / "1066 CE" when the
// scientific convention is selected.
//
// The y-axis rows are derived, not configured: one synthetic row id per
// period track ("p0", "p1", ...) in track order, followed by each distinct
// event label in first-occurrence order. An event label that equals a
// synthetic id shares that track's row; [timeline.Timeline.Validate] reports
// this before it becomes a visual surprise.
//
// Rendering is deterministic and single-threaded. Errors surfaced by the
// plotting backend propagate unchanged.
package render
