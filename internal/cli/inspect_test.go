package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/chronoplot/pkg/timeline"
)

func inspectTimeline() *timeline.Timeline {
	tl := timeline.New("test timeline")
	tl.AddTrack(timeline.Period{Start: -509, End: -27, Title: "Roman Republic"})
	tl.AddEvent(-490, "battles", "Marathon", "")
	tl.AddEvent(-44, "people", "Ides of March", "")
	return tl
}

func TestNewInspectModelOrdering(t *testing.T) {
	m := newInspectModel(inspectTimeline(), false)

	if len(m.rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(m.rows))
	}
	// Entries are sorted by date: the track period starts earliest.
	if m.rows[0].kind != "period" || m.rows[0].row != "p0" {
		t.Errorf("row 0 = %+v, want the period on p0", m.rows[0])
	}
	if m.rows[1].title != "Marathon" {
		t.Errorf("row 1 = %+v, want Marathon", m.rows[1])
	}
	if m.rows[1].span != "490 BC" {
		t.Errorf("span = %q, want 490 BC", m.rows[1].span)
	}
}

func TestInspectModelNavigation(t *testing.T) {
	m := newInspectModel(inspectTimeline(), false)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(inspectModel)
	if m.cursor != 1 {
		t.Errorf("cursor = %d after down, want 1", m.cursor)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = next.(inspectModel)
	if m.cursor != 0 {
		t.Errorf("cursor = %d after up, want 0", m.cursor)
	}

	// Up at the top stays put.
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = next.(inspectModel)
	if m.cursor != 0 {
		t.Errorf("cursor = %d, want 0", m.cursor)
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Error("q should quit")
	}
}

func TestInspectModelView(t *testing.T) {
	m := newInspectModel(inspectTimeline(), true)
	view := m.View()

	if !strings.Contains(view, "test timeline") {
		t.Error("view missing title")
	}
	if !strings.Contains(view, "490 BCE") {
		t.Error("view missing scientific era date")
	}
	if !strings.Contains(view, "3 entries") {
		t.Error("view missing entry count")
	}
}
