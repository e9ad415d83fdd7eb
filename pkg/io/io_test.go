package io

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/figmajson/pkg/errors"
	"github.com/matzehuels/figmajson/pkg/host/memhost"
	"github.com/matzehuels/figmajson/pkg/scene"
)

const sample = `{
  "objects": [
    {
      "type": "FRAME", "name": "Card", "width": 100, "height": 50,
      "cornerRadius": "__Symbol(figma.mixed)__",
      "children": [
        {"type": "RECTANGLE", "name": "Photo", "fills": [{"type": "IMAGE", "imageHash": "abc"}]}
      ]
    }
  ],
  "images": {"abc": "cG5n"}
}`

func TestReadDocument(t *testing.T) {
	doc, err := ReadDocument(strings.NewReader(sample))
	if err != nil {
		t.Fatalf("ReadDocument: %v", err)
	}
	if len(doc.Objects) != 1 || doc.NodeCount() != 2 {
		t.Fatalf("objects = %d, nodes = %d, want 1, 2", len(doc.Objects), doc.NodeCount())
	}
	if got := string(doc.Images["abc"]); got != "png" {
		t.Errorf("image abc = %q, want png", got)
	}
	if doc.Components == nil || doc.ComponentSets == nil || doc.Styles == nil {
		t.Error("missing side tables should decode as empty maps")
	}
	if v, _ := doc.Objects[0].Get("cornerRadius"); !scene.IsMixed(v) {
		t.Errorf("cornerRadius = %v, want mixed", v)
	}
}

func TestReadDocumentErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"malformed", `{"objects": [`},
		{"missing type", `{"objects": [{"name": "x"}]}`},
		{"nested missing type", `{"objects": [{"type": "FRAME", "children": [{"name": "x"}]}]}`},
		{"null object", `{"objects": [null]}`},
		{"null child", `{"objects": [{"type": "FRAME", "children": [null]}]}`},
		{"deep null child", `{"objects": [{"type": "FRAME", "children": [{"type": "GROUP", "children": [{"type": "TEXT"}, null]}]}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadDocument(strings.NewReader(tt.input))
			if !errors.Is(err, errors.ErrCodeInvalidFormat) {
				t.Errorf("error = %v, want INVALID_FORMAT", err)
			}
		})
	}
}

func TestReadDocumentKeepsUnknownTypes(t *testing.T) {
	input := `{"objects": [{"type": "TABLE"}, {"type": "FRAME", "children": [{"type": "NOPE"}]}]}`
	doc, err := ReadDocument(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadDocument: %v", err)
	}
	if doc.NodeCount() != 3 {
		t.Errorf("nodes = %d, want 3", doc.NodeCount())
	}
	if doc.Objects[0].Type != "TABLE" {
		t.Errorf("type = %q, want TABLE", doc.Objects[0].Type)
	}
}

func TestDocumentRoundTrip(t *testing.T) {
	doc, err := DecodeDocument([]byte(sample))
	if err != nil {
		t.Fatalf("DecodeDocument: %v", err)
	}
	var buf bytes.Buffer
	if err := WriteDocument(doc, &buf); err != nil {
		t.Fatalf("WriteDocument: %v", err)
	}
	again, err := ReadDocument(&buf)
	if err != nil {
		t.Fatalf("ReadDocument: %v", err)
	}

	first, _ := EncodeDocument(doc)
	second, _ := EncodeDocument(again)
	if !bytes.Equal(first, second) {
		t.Errorf("round trip changed the document:\n%s\n%s", first, second)
	}
	if !bytes.Contains(first, []byte(`"__Symbol(figma.mixed)__"`)) {
		t.Error("mixed sentinel should survive a round trip")
	}
}

func TestExportImportDocument(t *testing.T) {
	doc, err := DecodeDocument([]byte(sample))
	if err != nil {
		t.Fatalf("DecodeDocument: %v", err)
	}
	path := filepath.Join(t.TempDir(), "doc.json")
	if err := ExportDocument(doc, path); err != nil {
		t.Fatalf("ExportDocument: %v", err)
	}
	got, err := ImportDocument(path)
	if err != nil {
		t.Fatalf("ImportDocument: %v", err)
	}
	if got.Objects[0].Name() != "Card" {
		t.Errorf("name = %q, want Card", got.Objects[0].Name())
	}

	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 {
		t.Errorf("export left %d files behind, want 1", len(entries))
	}
	if _, err := ImportDocument(filepath.Join(t.TempDir(), "missing.json")); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("ImportDocument of a missing file = %v, want FILE_NOT_FOUND", err)
	}
}

func TestSceneRoundTrip(t *testing.T) {
	d := memhost.New()
	rect, err := d.Create(scene.TypeRectangle)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := d.SetField(rect, "name", "Box"); err != nil {
		t.Fatalf("SetField: %v", err)
	}

	path := filepath.Join(t.TempDir(), "scene.json")
	if err := SaveScene(d, path); err != nil {
		t.Fatalf("SaveScene: %v", err)
	}
	loaded, err := LoadScene(path)
	if err != nil {
		t.Fatalf("LoadScene: %v", err)
	}
	kids := loaded.CurrentPage().Children()
	if len(kids) != 1 || kids[0].ID() != rect.ID() {
		t.Fatalf("loaded page children = %v, want %s", kids, rect.ID())
	}
	if name, _ := kids[0].Field("name"); name != "Box" {
		t.Errorf("name = %v, want Box", name)
	}
}

func TestLoadSceneMissingFile(t *testing.T) {
	d, err := LoadScene(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("LoadScene: %v", err)
	}
	if len(d.Fonts()) != len(memhost.DefaultFonts) {
		t.Errorf("fonts = %d, want defaults", len(d.Fonts()))
	}
}
