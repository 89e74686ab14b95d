package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/chronoplot/pkg/cache"
	"github.com/matzehuels/chronoplot/pkg/errors"
)

const timelineJSON = `{
  "title": "ancient history",
  "events": [
    {"date": -490, "label": "battles", "title": "Marathon"},
    {"date": -331, "label": "battles", "title": "Gaugamela"}
  ],
  "tracks": [
    {"periods": [{"start": -509, "end": -27, "title": "Roman Republic"}]}
  ]
}`

func writeTimeline(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "history.json")
	if err := os.WriteFile(path, []byte(timelineJSON), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestOptionsValidation(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{"no source", Options{}, true},
		{"both sources", Options{Input: "a.json", MongoURI: "mongodb://localhost"}, true},
		{"mongo without name", Options{MongoURI: "mongodb://localhost"}, true},
		{"file input", Options{Input: "a.json"}, false},
		{"mongo input", Options{MongoURI: "mongodb://localhost", TimelineName: "history"}, false},
		{"bad format", Options{Input: "a.json", Formats: []string{"gif"}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateAndSetDefaults() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestOptionsDefaults(t *testing.T) {
	opts := Options{Input: "a.json"}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != DefaultFormat {
		t.Errorf("formats = %v, want [%s]", opts.Formats, DefaultFormat)
	}
	if opts.Width != DefaultWidth || opts.Height != DefaultHeight {
		t.Errorf("size = %vx%v, want %vx%v", opts.Width, opts.Height, DefaultWidth, DefaultHeight)
	}
	if opts.MarkerSize != DefaultMarkerSize {
		t.Errorf("marker size = %v, want %v", opts.MarkerSize, DefaultMarkerSize)
	}
}

func TestOptionsMongoDefaults(t *testing.T) {
	opts := Options{MongoURI: "mongodb://localhost", TimelineName: "history"}
	if err := opts.ValidateForLoad(); err != nil {
		t.Fatal(err)
	}
	if opts.MongoDatabase != DefaultMongoDatabase {
		t.Errorf("database = %q, want %q", opts.MongoDatabase, DefaultMongoDatabase)
	}
	if opts.MongoCollection != DefaultMongoCollection {
		t.Errorf("collection = %q, want %q", opts.MongoCollection, DefaultMongoCollection)
	}
}

func TestRendererOptionsInvalidColor(t *testing.T) {
	opts := Options{Input: "a.json", EventColor: "not-a-color"}
	opts.SetRenderDefaults()

	_, err := opts.RendererOptions()
	if err == nil {
		t.Fatal("expected error for invalid color")
	}
	if errors.GetCode(err) != errors.ErrCodeInvalidColor {
		t.Errorf("code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidColor)
	}
}

func TestExecute(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	result, err := runner.Execute(context.Background(), Options{
		Input:   writeTimeline(t),
		Formats: []string{"svg", "json"},
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if result.Stats.EventCount != 2 {
		t.Errorf("event count = %d, want 2", result.Stats.EventCount)
	}
	if result.Stats.TrackCount != 1 {
		t.Errorf("track count = %d, want 1", result.Stats.TrackCount)
	}
	if result.TimelineHash == "" {
		t.Error("timeline hash not set")
	}
	if len(result.Artifacts["svg"]) == 0 {
		t.Error("svg artifact missing")
	}
	if len(result.Artifacts["json"]) == 0 {
		t.Error("json artifact missing")
	}
	if result.CacheInfo.RenderHit {
		t.Error("first run should not hit the cache")
	}
}

func TestExecuteCaching(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	runner := NewRunner(fc, nil, nil)
	opts := Options{Input: writeTimeline(t), Formats: []string{"svg"}}

	first, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("first Execute: %v", err)
	}
	if first.CacheInfo.RenderHit {
		t.Error("first run should miss")
	}

	second, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("second Execute: %v", err)
	}
	if !second.CacheInfo.RenderHit {
		t.Error("second run should hit the cache")
	}
	if string(first.Artifacts["svg"]) != string(second.Artifacts["svg"]) {
		t.Error("cached artifact differs from rendered artifact")
	}

	// Refresh bypasses the cache.
	opts.Refresh = true
	third, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("refresh Execute: %v", err)
	}
	if third.CacheInfo.RenderHit {
		t.Error("refresh run should not hit the cache")
	}
}

func TestExecuteDensity(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	result, err := runner.Execute(context.Background(), Options{
		Input:   writeTimeline(t),
		Density: true,
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(result.Artifacts[DensityArtifact]) == 0 {
		t.Error("density artifact missing")
	}
}

func TestExecuteMissingFile(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	_, err := runner.Execute(context.Background(), Options{
		Input: filepath.Join(t.TempDir(), "missing.json"),
	})
	if err == nil {
		t.Fatal("expected error for missing input file")
	}
}
