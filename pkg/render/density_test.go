package render

import (
	"bytes"
	"testing"

	"github.com/matzehuels/chronoplot/pkg/errors"
	"github.com/matzehuels/chronoplot/pkg/timeline"
)

func TestBinEvents(t *testing.T) {
	tl := timeline.New("bins")
	for _, date := range []float64{-490, -480, -331, 14} {
		tl.AddEvent(date, "e", "e", "")
	}

	bins, start := binEvents(tl, 100)

	// The first bin boundary lands on the round number at or below the
	// earliest event.
	if start != -500 {
		t.Errorf("start = %v, want -500", start)
	}
	// -490 and -480 share bin 0, -331 falls in bin 1, 14 in bin 5.
	want := []int{2, 1, 0, 0, 0, 1}
	if len(bins) != len(want) {
		t.Fatalf("got %d bins, want %d", len(bins), len(want))
	}
	for i := range want {
		if bins[i] != want[i] {
			t.Errorf("bin %d = %d, want %d", i, bins[i], want[i])
		}
	}
}

func TestBinEventsSingleEvent(t *testing.T) {
	tl := timeline.New("one")
	tl.AddEvent(1066, "e", "e", "")

	bins, start := binEvents(tl, 100)
	if start != 1000 {
		t.Errorf("start = %v, want 1000", start)
	}
	if len(bins) != 1 || bins[0] != 1 {
		t.Errorf("bins = %v, want [1]", bins)
	}
}

func TestDensityStrip(t *testing.T) {
	data, err := DensityStrip(testTimeline(), DensityOptions{})
	if err != nil {
		t.Fatalf("DensityStrip: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("\x89PNG")) {
		t.Error("output is not a PNG")
	}
}

func TestDensityStripUniformCounts(t *testing.T) {
	// One event per bin: every bar has the same height, so the y-range
	// cannot be derived from the data alone.
	tl := timeline.New("uniform")
	tl.AddEvent(-490, "e", "a", "")
	tl.AddEvent(-390, "e", "b", "")

	data, err := DensityStrip(tl, DensityOptions{})
	if err != nil {
		t.Fatalf("DensityStrip: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("\x89PNG")) {
		t.Error("output is not a PNG")
	}
}

func TestDensityStripNoEvents(t *testing.T) {
	_, err := DensityStrip(timeline.New("empty"), DensityOptions{})
	if err == nil {
		t.Fatal("expected error for timeline with no events")
	}
	if errors.GetCode(err) != errors.ErrCodeInvalidTimeline {
		t.Errorf("code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidTimeline)
	}
}
