package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/chronoplot/pkg/timeline"
)

// ReadJSON decodes a JSON timeline document from r.
//
// The input must be an object with a "title" string and optional "events"
// and "tracks" arrays. Each event needs "date", "label", and "title" fields;
// each track is an object with a "periods" array of {start, end, title}.
//
// ReadJSON does not validate event labels against synthetic period-row ids;
// use [timeline.Timeline.Validate] to surface collisions. It does not close r.
func ReadJSON(r io.Reader) (*timeline.Timeline, error) {
	var tl timeline.Timeline
	dec := json.NewDecoder(r)
	if err := dec.Decode(&tl); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return &tl, nil
}

// ImportJSON reads a JSON file at path and returns the decoded timeline.
//
// ImportJSON opens the file, decodes it using [ReadJSON], and closes the
// file. Errors wrap the underlying cause with the file path for context.
func ImportJSON(path string) (*timeline.Timeline, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}

// ReadYAML decodes a YAML timeline document from r. Field names match the
// JSON form. ReadYAML does not close r.
func ReadYAML(r io.Reader) (*timeline.Timeline, error) {
	var tl timeline.Timeline
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&tl); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return &tl, nil
}

// ImportYAML reads a YAML file at path and returns the decoded timeline.
func ImportYAML(path string) (*timeline.Timeline, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadYAML(f)
}

// Import reads a timeline from path, selecting the decoder by extension:
// .json, .yaml/.yml, or .ics/.ical.
func Import(path string) (*timeline.Timeline, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		return ImportJSON(path)
	case ".yaml", ".yml":
		return ImportYAML(path)
	case ".ics", ".ical":
		return ImportICal(path)
	default:
		return nil, fmt.Errorf("unsupported timeline format: %q (want .json, .yaml, or .ics)", ext)
	}
}
