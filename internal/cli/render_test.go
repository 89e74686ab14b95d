package cli

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty defaults to svg", "", []string{"svg"}},
		{"single", "png", []string{"png"}},
		{"multiple", "svg,json,pdf", []string{"svg", "json", "pdf"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseFormats(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parseFormats(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		name   string
		output string
		input  string
		tlName string
		want   string
	}{
		{"from input", "", "history.json", "", "history"},
		{"from input with dir", "", "data/history.yaml", "", "data/history"},
		{"output without extension", "charts/out", "history.json", "", "charts/out"},
		{"output with format extension", "chart.svg", "history.json", "", "chart"},
		{"output with other extension", "chart.backup", "history.json", "", "chart.backup"},
		{"from timeline name", "", "", "ancient", "ancient"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := basePath(tt.output, tt.input, tt.tlName)
			if got != tt.want {
				t.Errorf("basePath(%q, %q, %q) = %q, want %q", tt.output, tt.input, tt.tlName, got, tt.want)
			}
		})
	}
}

func TestWriteArtifacts(t *testing.T) {
	dir := t.TempDir()
	artifacts := map[string][]byte{
		"svg":  []byte("<svg/>"),
		"json": []byte("{}"),
	}

	written, err := writeArtifacts(filepath.Join(dir, "chart"), "", artifacts, []string{"svg", "json"})
	if err != nil {
		t.Fatalf("writeArtifacts: %v", err)
	}
	if len(written) != 2 {
		t.Fatalf("wrote %d files, want 2", len(written))
	}
	for _, path := range written {
		if _, err := os.Stat(path); err != nil {
			t.Errorf("missing artifact file %s: %v", path, err)
		}
	}
}

func TestWriteArtifactsSingleOutput(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "custom-name.svg")

	written, err := writeArtifacts(filepath.Join(dir, "chart"), out, map[string][]byte{"svg": []byte("<svg/>")}, []string{"svg"})
	if err != nil {
		t.Fatalf("writeArtifacts: %v", err)
	}
	if len(written) != 1 || written[0] != out {
		t.Errorf("written = %v, want [%s]", written, out)
	}
}

func TestWriteArtifactsDensity(t *testing.T) {
	dir := t.TempDir()
	artifacts := map[string][]byte{
		"svg":     []byte("<svg/>"),
		"density": []byte("\x89PNG"),
	}

	written, err := writeArtifacts(filepath.Join(dir, "chart"), "", artifacts, []string{"svg"})
	if err != nil {
		t.Fatalf("writeArtifacts: %v", err)
	}
	want := filepath.Join(dir, "chart_density.png")
	found := false
	for _, path := range written {
		if path == want {
			found = true
		}
	}
	if !found {
		t.Errorf("density artifact not written: %v", written)
	}
}

func TestSourceArg(t *testing.T) {
	if got := sourceArg("history.json", ""); got != "history.json" {
		t.Errorf("sourceArg = %q, want history.json", got)
	}
	if got := sourceArg("", "ancient"); got != "--name ancient" {
		t.Errorf("sourceArg = %q, want --name ancient", got)
	}
}
