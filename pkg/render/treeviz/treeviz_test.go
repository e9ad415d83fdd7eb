package treeviz

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/figmajson/pkg/scene"
)

func sampleDoc() *scene.Document {
	doc := scene.NewDocument()
	frame := scene.NewNode(scene.TypeFrame)
	frame.Set("name", "Card")
	frame.Set("id", "1:1")

	title := scene.NewNode(scene.TypeText)
	title.Set("name", "Title")
	hidden := scene.NewNode(scene.TypeRectangle)
	hidden.Set("name", "Ghost")
	hidden.Set("visible", false)
	inst := scene.NewNode(scene.TypeInstance)
	inst.Set("name", "Primary")
	inst.Set("componentId", "9:1")

	frame.Children = []*scene.Node{title, hidden, inst}
	doc.Objects = append(doc.Objects, frame)
	doc.Components["9:1"] = scene.ComponentInfo{Key: "k", Name: "Button"}
	return doc
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(sampleDoc(), Options{ShowIDs: true})

	tests := []struct {
		name string
		want string
	}{
		{"header", "digraph Document {"},
		{"frame label", `label="FRAME\nCard\n#1:1"`},
		{"text shape", `label="TEXT\nTitle", shape=note`},
		{"invisible", `shape=ellipse, style="filled,dashed"`},
		{"component name", `label="INSTANCE\nPrimary\n<Button>", shape=component`},
		{"edge", "n0 -> n1;"},
		{"last edge", "n0 -> n3;"},
	}
	for _, tt := range tests {
		if !strings.Contains(dot, tt.want) {
			t.Errorf("%s: DOT missing %q\n%s", tt.name, tt.want, dot)
		}
	}
}

func TestToDOTMaxDepth(t *testing.T) {
	dot := ToDOT(sampleDoc(), Options{MaxDepth: 1})
	if strings.Contains(dot, "Title") {
		t.Error("children beyond MaxDepth should be collapsed")
	}
	if !strings.Contains(dot, `label="+3"`) {
		t.Errorf("collapsed marker missing:\n%s", dot)
	}
}

func TestToDOTEmpty(t *testing.T) {
	dot := ToDOT(nil, Options{})
	if !strings.HasPrefix(dot, "digraph Document {") || !strings.HasSuffix(dot, "}\n") {
		t.Errorf("ToDOT(nil) = %q", dot)
	}
}

func TestRenderSVG(t *testing.T) {
	svg, err := RenderSVG(context.Background(), ToDOT(sampleDoc(), Options{}))
	if err != nil {
		t.Fatalf("RenderSVG: %v", err)
	}
	if !bytes.Contains(svg, []byte("<svg")) {
		t.Error("output should be an SVG document")
	}
}
