package render

import (
	"reflect"
	"testing"

	"github.com/matzehuels/chronoplot/pkg/timeline"
)

func testTimeline() *timeline.Timeline {
	tl := timeline.New("ancient history")
	tl.AddTrack(
		timeline.Period{Start: -509, End: -27, Title: "Roman Republic"},
		timeline.Period{Start: -27, End: 476, Title: "Roman Empire"},
	)
	tl.AddTrack(timeline.Period{Start: -800, End: -146, Title: "Ancient Greece"})
	tl.AddEvent(-490, "battles", "Marathon", "")
	tl.AddEvent(-331, "battles", "Gaugamela", "")
	tl.AddEvent(-399, "people", "Death of Socrates", "")
	return tl
}

func TestYRange(t *testing.T) {
	tl := testTimeline()
	got := YRange(tl.EventColumns(), tl.PeriodGroups())

	// Synthetic track ids first, in track order, then distinct event labels
	// in first-occurrence order.
	want := []string{"p0", "p1", "battles", "people"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("YRange = %v, want %v", got, want)
	}
}

func TestYRangeNoTracks(t *testing.T) {
	tl := timeline.New("events only")
	tl.AddEvent(1066, "battles", "Hastings", "")
	tl.AddEvent(1415, "battles", "Agincourt", "")
	tl.AddEvent(1517, "religion", "95 Theses", "")

	got := YRange(tl.EventColumns(), tl.PeriodGroups())
	want := []string{"battles", "religion"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("YRange = %v, want %v", got, want)
	}
}

func TestYRangeNoEvents(t *testing.T) {
	tl := timeline.New("tracks only")
	tl.AddTrack(timeline.Period{Start: 0, End: 100, Title: "first"})
	tl.AddTrack(timeline.Period{Start: 100, End: 200, Title: "second"})

	got := YRange(tl.EventColumns(), tl.PeriodGroups())
	want := []string{"p0", "p1"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("YRange = %v, want %v", got, want)
	}
}

func TestYRangeLabelCollidesWithTrackID(t *testing.T) {
	tl := timeline.New("collision")
	tl.AddTrack(timeline.Period{Start: 0, End: 100, Title: "track"})
	tl.AddEvent(50, "p0", "shares the track row", "")
	tl.AddEvent(60, "other", "own row", "")

	// A label equal to a synthetic id folds onto the track's row rather
	// than creating a duplicate entry.
	got := YRange(tl.EventColumns(), tl.PeriodGroups())
	want := []string{"p0", "other"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("YRange = %v, want %v", got, want)
	}
}

func TestChartBuilds(t *testing.T) {
	r := New(testTimeline())
	p, err := r.Chart()
	if err != nil {
		t.Fatalf("Chart() error: %v", err)
	}
	if p.Title.Text != "ancient history" {
		t.Errorf("title = %q, want %q", p.Title.Text, "ancient history")
	}
	if p.X.Label.Text != "year" {
		t.Errorf("x label = %q, want %q", p.X.Label.Text, "year")
	}
}

func TestChartEmptyTimeline(t *testing.T) {
	r := New(timeline.New("empty"))
	if _, err := r.Chart(); err != nil {
		t.Fatalf("Chart() on empty timeline: %v", err)
	}
}

func TestOptions(t *testing.T) {
	r := New(testTimeline(),
		WithScientific(true),
		WithBarHeight(0.5),
		WithSize(800, 300),
		WithTooltips("title"),
	)
	if !r.scientific {
		t.Error("scientific not applied")
	}
	if r.barHeight != 0.5 {
		t.Errorf("barHeight = %v, want 0.5", r.barHeight)
	}
	if !reflect.DeepEqual(r.tooltips, []string{"title"}) {
		t.Errorf("tooltips = %v, want [title]", r.tooltips)
	}
}
