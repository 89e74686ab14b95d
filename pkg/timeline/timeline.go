package timeline

import "fmt"

// Event is a single dated point on the timeline.
type Event struct {
	// Date is the year of the event. Negative years are BC/BCE.
	Date float64 `json:"date" yaml:"date" bson:"date"`

	// Label is the category row the event is drawn on.
	Label string `json:"label" yaml:"label" bson:"label"`

	// Title is the short text drawn next to the event marker.
	Title string `json:"title" yaml:"title" bson:"title"`

	// Description is the long-form text shown in tooltips.
	Description string `json:"description,omitempty" yaml:"description,omitempty" bson:"description,omitempty"`
}

// Period is a dated interval belonging to a track.
type Period struct {
	Start float64 `json:"start" yaml:"start" bson:"start"`
	End   float64 `json:"end" yaml:"end" bson:"end"`
	Title string  `json:"title" yaml:"title" bson:"title"`
}

// Mid returns the midpoint of the period, where its label is anchored.
func (p Period) Mid() float64 {
	return (p.Start + p.End) / 2
}

// Track is a sequence of periods sharing one category row. Track i occupies
// the synthetic row id "p<i>".
type Track struct {
	Periods []Period `json:"periods" yaml:"periods" bson:"periods"`
}

// Timeline is a titled collection of events and period tracks.
type Timeline struct {
	Title  string  `json:"title" yaml:"title" bson:"title"`
	Events []Event `json:"events,omitempty" yaml:"events,omitempty" bson:"events,omitempty"`
	Tracks []Track `json:"tracks,omitempty" yaml:"tracks,omitempty" bson:"tracks,omitempty"`
}

// New creates an empty timeline with the given title.
func New(title string) *Timeline {
	return &Timeline{Title: title}
}

// AddEvent appends an event.
func (t *Timeline) AddEvent(date float64, label, title, description string) {
	t.Events = append(t.Events, Event{Date: date, Label: label, Title: title, Description: description})
}

// AddTrack appends a track of periods and returns its synthetic row id.
func (t *Timeline) AddTrack(periods ...Period) string {
	t.Tracks = append(t.Tracks, Track{Periods: periods})
	return TrackID(len(t.Tracks) - 1)
}

// TrackID returns the synthetic category row id for track index i.
func TrackID(i int) string {
	return fmt.Sprintf("p%d", i)
}

// EventColumns is the parallel-column form of the event set. All slices have
// equal length; index i describes event i.
type EventColumns struct {
	Dates        []float64 `json:"dates"`
	Labels       []string  `json:"labels"`
	Titles       []string  `json:"titles"`
	Descriptions []string  `json:"descriptions"`
}

// Len returns the number of events in the columns.
func (c EventColumns) Len() int { return len(c.Dates) }

// PeriodGroup is the parallel-column form of one track. Mids holds the
// derived midpoint of each period.
type PeriodGroup struct {
	Starts []float64 `json:"starts"`
	Ends   []float64 `json:"ends"`
	Mids   []float64 `json:"mids"`
	Titles []string  `json:"titles"`
}

// EventColumns converts the event set into parallel columns. The slices are
// freshly allocated on every call; mutating them does not affect the timeline.
func (t *Timeline) EventColumns() EventColumns {
	c := EventColumns{
		Dates:        make([]float64, len(t.Events)),
		Labels:       make([]string, len(t.Events)),
		Titles:       make([]string, len(t.Events)),
		Descriptions: make([]string, len(t.Events)),
	}
	for i, e := range t.Events {
		c.Dates[i] = e.Date
		c.Labels[i] = e.Label
		c.Titles[i] = e.Title
		c.Descriptions[i] = e.Description
	}
	return c
}

// PeriodGroups converts the tracks into parallel columns, one group per
// track, in track order.
func (t *Timeline) PeriodGroups() []PeriodGroup {
	groups := make([]PeriodGroup, len(t.Tracks))
	for i, tr := range t.Tracks {
		g := PeriodGroup{
			Starts: make([]float64, len(tr.Periods)),
			Ends:   make([]float64, len(tr.Periods)),
			Mids:   make([]float64, len(tr.Periods)),
			Titles: make([]string, len(tr.Periods)),
		}
		for j, p := range tr.Periods {
			g.Starts[j] = p.Start
			g.Ends[j] = p.End
			g.Mids[j] = p.Mid()
			g.Titles[j] = p.Title
		}
		groups[i] = g
	}
	return groups
}

// Validate reports event labels that collide with a synthetic track row id.
// Such an event would be drawn on the track's row instead of its own.
// Rendering does not require a valid timeline; this exists so callers can
// surface the collision instead of discovering it visually.
func (t *Timeline) Validate() error {
	reserved := make(map[string]bool, len(t.Tracks))
	for i := range t.Tracks {
		reserved[TrackID(i)] = true
	}
	for _, e := range t.Events {
		if reserved[e.Label] {
			return fmt.Errorf("event %q: label %q collides with a period row id", e.Title, e.Label)
		}
	}
	return nil
}
