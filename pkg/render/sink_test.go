package render

import (
	"encoding/json"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/matzehuels/chronoplot/pkg/errors"
)

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "png", "pdf", "json"}); err != nil {
		t.Fatalf("valid formats rejected: %v", err)
	}

	err := ValidateFormats([]string{"svg", "gif"})
	if err == nil {
		t.Fatal("expected error for invalid format")
	}
	if errors.GetCode(err) != errors.ErrCodeInvalidFormat {
		t.Errorf("code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidFormat)
	}
}

func TestChartDataColumn(t *testing.T) {
	data := New(testTimeline()).Data()

	titles := data.Column("title", false)
	if titles[0] != "Marathon" {
		t.Errorf("title[0] = %q, want %q", titles[0], "Marathon")
	}

	dates := data.Column("date", false)
	if dates[0] != "490 BC" {
		t.Errorf("date[0] = %q, want %q", dates[0], "490 BC")
	}
	dates = data.Column("date", true)
	if dates[0] != "490 BCE" {
		t.Errorf("scientific date[0] = %q, want %q", dates[0], "490 BCE")
	}

	if got := data.Column("bogus", false); got != nil {
		t.Errorf("unknown column = %v, want nil", got)
	}
}

func TestRenderJSON(t *testing.T) {
	artifacts, err := New(testTimeline()).Render([]string{"json"})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	var data ChartData
	if err := json.Unmarshal(artifacts["json"], &data); err != nil {
		t.Fatalf("unmarshal artifact: %v", err)
	}
	if data.Title != "ancient history" {
		t.Errorf("title = %q, want %q", data.Title, "ancient history")
	}
	if !reflect.DeepEqual(data.YRange, []string{"p0", "p1", "battles", "people"}) {
		t.Errorf("y_range = %v", data.YRange)
	}
	if !reflect.DeepEqual(data.Tooltips, DefaultTooltips) {
		t.Errorf("tooltips = %v, want %v", data.Tooltips, DefaultTooltips)
	}
}

func TestRenderSVG(t *testing.T) {
	artifacts, err := New(testTimeline()).Render([]string{"svg"})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(string(artifacts["svg"]), "<svg") {
		t.Error("svg artifact does not look like SVG")
	}
}

func TestRenderDeterministic(t *testing.T) {
	first, err := New(testTimeline()).Render([]string{"svg"})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	second, err := New(testTimeline()).Render([]string{"svg"})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if string(first["svg"]) != string(second["svg"]) {
		t.Error("identical timelines rendered different SVG")
	}
}

func TestSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chart.svg")
	if err := New(testTimeline()).Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	if err := New(testTimeline()).Save(filepath.Join(t.TempDir(), "chart.gif")); err == nil {
		t.Fatal("expected error for unsupported extension")
	}
}
