package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/matzehuels/figmajson/pkg/host/memhost"
	"github.com/matzehuels/figmajson/pkg/scene"
)

// WriteDocument encodes doc as indented JSON and writes it to w.
func WriteDocument(doc *scene.Document, w io.Writer) error {
	return writeJSON(doc, w)
}

// EncodeDocument returns the compact JSON encoding of doc.
func EncodeDocument(doc *scene.Document) ([]byte, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	return data, nil
}

// ExportDocument writes doc to a JSON file at path.
func ExportDocument(doc *scene.Document, path string) error {
	return exportJSON(doc, path)
}

// WriteScene encodes a headless document as a scene.
func WriteScene(d *memhost.Document, w io.Writer) error {
	return writeJSON(d.Snapshot(), w)
}

// SaveScene writes a headless document to a scene file at path.
func SaveScene(d *memhost.Document, path string) error {
	return exportJSON(d.Snapshot(), path)
}

func writeJSON(v any, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// exportJSON writes through a temporary file so a failed encode never
// truncates an existing file.
func exportJSON(v any, path string) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer os.Remove(tmp.Name())

	if err := writeJSON(v, tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename %s: %w", path, err)
	}
	return nil
}
