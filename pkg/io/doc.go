// Package io provides timeline import and export.
//
// Timelines are stored as documents with a title, an event list, and a list
// of period tracks:
//
//	{
//	  "title": "Antiquity",
//	  "events": [{"date": -490, "label": "battles", "title": "Marathon"}],
//	  "tracks": [{"periods": [{"start": -509, "end": -27, "title": "Roman Republic"}]}]
//	}
//
// Supported formats:
//   - JSON ([ImportJSON], [ExportJSON])
//   - YAML ([ImportYAML]) with the same field names
//   - iCalendar ([ImportICal]) mapping VEVENTs onto timeline events
//
// [Import] dispatches on the file extension.
package io
