package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/chronoplot/pkg/timeline"
)

// WriteJSON encodes tl as an indented JSON document to w.
func WriteJSON(w io.Writer, tl *timeline.Timeline) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(tl); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes tl to a JSON file at path, creating or truncating it.
func ExportJSON(path string, tl *timeline.Timeline) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteJSON(f, tl); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

// MarshalTimeline returns the canonical JSON bytes for tl. The pipeline
// hashes this form to build cache keys, so it must be deterministic.
func MarshalTimeline(tl *timeline.Timeline) ([]byte, error) {
	return json.Marshal(tl)
}
