package render

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/chronoplot/pkg/errors"
	"github.com/matzehuels/chronoplot/pkg/timeline"
)

// Output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// ValidateFormats checks that all requested formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if !ValidFormats[f] {
			return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, pdf, json)", f)
		}
	}
	return nil
}

// ChartData is the JSON artifact: everything the chart was drawn from, in
// the column form the renderer consumed. The preview page reads it to build
// hover tooltips; the tooltip columns echo the named event columns verbatim.
type ChartData struct {
	Title    string                 `json:"title"`
	YRange   []string               `json:"y_range"`
	Events   timeline.EventColumns  `json:"events"`
	Groups   []timeline.PeriodGroup `json:"groups"`
	Tooltips []string               `json:"tooltips"`
}

// Column returns the named event column. Date values are era-formatted.
// Unknown names return nil: only columns that exist can be echoed.
func (d ChartData) Column(name string, scientific bool) []string {
	switch name {
	case "title":
		return d.Events.Titles
	case "description":
		return d.Events.Descriptions
	case "label":
		return d.Events.Labels
	case "date":
		out := make([]string, len(d.Events.Dates))
		for i, v := range d.Events.Dates {
			out[i] = FormatYear(v, scientific)
		}
		return out
	default:
		return nil
	}
}

// Data returns the chart data artifact for the renderer's timeline.
func (r *Renderer) Data() ChartData {
	cols := r.tl.EventColumns()
	groups := r.tl.PeriodGroups()
	return ChartData{
		Title:    r.tl.Title,
		YRange:   YRange(cols, groups),
		Events:   cols,
		Groups:   groups,
		Tooltips: r.tooltips,
	}
}

// Render produces the requested artifacts, keyed by format. The chart is
// built once and written through the backend's canvas for each image
// format; "json" emits the chart data instead.
func (r *Renderer) Render(formats []string) (map[string][]byte, error) {
	if err := ValidateFormats(formats); err != nil {
		return nil, err
	}

	artifacts := make(map[string][]byte, len(formats))

	for _, format := range formats {
		if format != FormatJSON {
			continue
		}
		data, err := json.MarshalIndent(r.Data(), "", "  ")
		if err != nil {
			return nil, err
		}
		artifacts[FormatJSON] = data
	}

	imageFormats := make([]string, 0, len(formats))
	for _, format := range formats {
		if format != FormatJSON {
			imageFormats = append(imageFormats, format)
		}
	}
	if len(imageFormats) == 0 {
		return artifacts, nil
	}

	p, err := r.Chart()
	if err != nil {
		return nil, err
	}
	for _, format := range imageFormats {
		wt, err := p.WriterTo(r.width, r.height, format)
		if err != nil {
			return nil, err
		}
		var buf bytes.Buffer
		if _, err := wt.WriteTo(&buf); err != nil {
			return nil, err
		}
		artifacts[format] = buf.Bytes()
	}

	return artifacts, nil
}

// Save renders the chart and writes it to path, selecting the format from
// the file extension.
func (r *Renderer) Save(path string) error {
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if err := ValidateFormats([]string{format}); err != nil {
		return err
	}

	artifacts, err := r.Render([]string{format})
	if err != nil {
		return err
	}
	return os.WriteFile(path, artifacts[format], 0644)
}
