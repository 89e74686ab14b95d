// Package timeline defines the historical timeline model consumed by the
// renderer: dated events and tracks of date-ranged periods.
//
// Years are plain float64 values where negative means BC/BCE. Historical
// timelines routinely reach back past the range a time.Time can express, and
// the renderer only ever needs the numeric axis position, so no calendar
// arithmetic is performed.
//
// The renderer does not consume the model directly; it consumes the parallel
// column form produced by [Timeline.EventColumns] and [Timeline.PeriodGroups].
// Keys referenced by the renderer are guaranteed to exist in that form, which
// is the precondition the rendering layer relies on.
package timeline
