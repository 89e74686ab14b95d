package io

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/emersion/go-ical"

	"github.com/matzehuels/chronoplot/pkg/timeline"
)

// icalDefaultLabel is the category row used for imported calendar events
// when the calendar carries no name.
const icalDefaultLabel = "events"

// ReadICal decodes iCalendar data from r and maps VEVENTs onto timeline
// events: SUMMARY becomes the event title, DESCRIPTION the description, and
// DTSTART the event date (as a fractional year). All events share one
// category row named after the calendar (X-WR-CALNAME or NAME), falling back
// to "events".
//
// Components without a DTSTART are skipped; calendars describe meetings and
// reminders too, and only dated occurrences belong on a timeline.
func ReadICal(r io.Reader) (*timeline.Timeline, error) {
	dec := ical.NewDecoder(r)

	tl := timeline.New("")
	label := icalDefaultLabel

	for {
		cal, err := dec.Decode()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decode: %w", err)
		}

		if name := calendarName(cal); name != "" {
			label = name
			if tl.Title == "" {
				tl.Title = name
			}
		}

		for _, ev := range cal.Events() {
			start, err := ev.DateTimeStart(time.UTC)
			if err != nil || start.IsZero() {
				continue
			}

			summary, _ := ev.Props.Text(ical.PropSummary)
			description, _ := ev.Props.Text(ical.PropDescription)
			tl.AddEvent(yearOf(start), label, summary, description)
		}
	}

	if tl.Title == "" {
		tl.Title = label
	}
	return tl, nil
}

// calendarName returns the calendar's display name: the widely used
// X-WR-CALNAME extension first, then the RFC 7986 NAME property.
func calendarName(cal *ical.Calendar) string {
	if name, err := cal.Props.Text("X-WR-CALNAME"); err == nil && name != "" {
		return name
	}
	if name, err := cal.Props.Text("NAME"); err == nil && name != "" {
		return name
	}
	return ""
}

// ImportICal reads an iCalendar file at path and returns the mapped timeline.
func ImportICal(path string) (*timeline.Timeline, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadICal(f)
}

// yearOf converts a calendar date to a fractional year, so that events in
// the same year keep their relative order on the date axis.
func yearOf(t time.Time) float64 {
	return float64(t.Year()) + float64(t.YearDay()-1)/365.25
}
