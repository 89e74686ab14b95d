package timeline

import (
	"testing"
)

func TestEventColumns(t *testing.T) {
	tl := New("Antiquity")
	tl.AddEvent(-490, "battles", "Marathon", "Persian invasion repelled")
	tl.AddEvent(-331, "battles", "Gaugamela", "")
	tl.AddEvent(-44, "politics", "Ides of March", "Caesar assassinated")

	cols := tl.EventColumns()
	if cols.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", cols.Len())
	}
	if cols.Dates[0] != -490 || cols.Labels[0] != "battles" || cols.Titles[0] != "Marathon" {
		t.Errorf("column 0 = (%v, %q, %q), want (-490, battles, Marathon)",
			cols.Dates[0], cols.Labels[0], cols.Titles[0])
	}
	if cols.Descriptions[1] != "" {
		t.Errorf("Descriptions[1] = %q, want empty", cols.Descriptions[1])
	}

	// Columns are copies, not views.
	cols.Labels[0] = "mutated"
	if tl.Events[0].Label != "battles" {
		t.Error("mutating columns should not affect the timeline")
	}
}

func TestPeriodGroups(t *testing.T) {
	tl := New("Antiquity")
	id := tl.AddTrack(
		Period{Start: -509, End: -27, Title: "Roman Republic"},
		Period{Start: -27, End: 476, Title: "Roman Empire"},
	)
	if id != "p0" {
		t.Errorf("AddTrack returned %q, want p0", id)
	}

	groups := tl.PeriodGroups()
	if len(groups) != 1 {
		t.Fatalf("len(groups) = %d, want 1", len(groups))
	}
	g := groups[0]
	if len(g.Starts) != 2 || len(g.Mids) != 2 {
		t.Fatalf("group has %d starts, %d mids, want 2 each", len(g.Starts), len(g.Mids))
	}
	if g.Mids[0] != -268 {
		t.Errorf("Mids[0] = %v, want -268", g.Mids[0])
	}
	if g.Mids[1] != 224.5 {
		t.Errorf("Mids[1] = %v, want 224.5", g.Mids[1])
	}
}

func TestTrackID(t *testing.T) {
	if got := TrackID(0); got != "p0" {
		t.Errorf("TrackID(0) = %q, want p0", got)
	}
	if got := TrackID(12); got != "p12" {
		t.Errorf("TrackID(12) = %q, want p12", got)
	}
}

func TestValidate(t *testing.T) {
	tl := New("collisions")
	tl.AddTrack(Period{Start: 0, End: 100, Title: "first century"})
	tl.AddEvent(50, "misc", "fine", "")
	if err := tl.Validate(); err != nil {
		t.Fatalf("Validate() = %v, want nil", err)
	}

	tl.AddEvent(70, "p0", "colliding", "")
	if err := tl.Validate(); err == nil {
		t.Fatal("Validate() = nil, want collision error")
	}
}
