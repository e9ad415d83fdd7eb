// Package treeviz draws the outline of a document as a Graphviz graph.
//
// Each node becomes a graph vertex labeled with its type and name, with
// edges from parents to children. Shapes follow the node kind: containers
// are boxes, text is a note, instances are components, and leaf shapes are
// ellipses. Invisible nodes are drawn dashed and grey.
package treeviz

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/figmajson/pkg/scene"
)

// Options configures the outline.
type Options struct {
	// MaxDepth limits how deep the outline goes. Zero means unlimited.
	MaxDepth int
	// ShowIDs adds node ids to the labels.
	ShowIDs bool
}

// ToDOT returns a DOT digraph of the document's object trees.
func ToDOT(doc *scene.Document, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph Document {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [fontname=\"SF Mono, Menlo, monospace\", fontsize=12, style=filled, fillcolor=white];\n")
	buf.WriteString("  edge [arrowhead=none, color=\"#888888\"];\n\n")

	w := &writer{buf: &buf, doc: doc, opts: opts}
	if doc != nil {
		for _, obj := range doc.Objects {
			w.node(obj, 1)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

type writer struct {
	buf  *bytes.Buffer
	doc  *scene.Document
	opts Options
	next int
}

func (w *writer) node(n *scene.Node, depth int) string {
	id := fmt.Sprintf("n%d", w.next)
	w.next++

	attrs := fmt.Sprintf("label=%q, shape=%s", w.label(n), shape(n.Type))
	if !n.Visible() {
		attrs += ", style=\"filled,dashed\", fontcolor=\"#999999\", color=\"#999999\""
	} else if n.Type.HasChildren() {
		attrs += ", style=\"filled,rounded\""
	}
	fmt.Fprintf(w.buf, "  %s [%s];\n", id, attrs)

	if w.opts.MaxDepth > 0 && depth >= w.opts.MaxDepth {
		if len(n.Children) > 0 {
			more := id + "_more"
			fmt.Fprintf(w.buf, "  %s [label=\"+%d\", shape=plaintext, style=\"\"];\n", more, countNodes(n)-1)
			fmt.Fprintf(w.buf, "  %s -> %s [style=dotted];\n", id, more)
		}
		return id
	}
	for _, c := range n.Children {
		child := w.node(c, depth+1)
		fmt.Fprintf(w.buf, "  %s -> %s;\n", id, child)
	}
	return id
}

func (w *writer) label(n *scene.Node) string {
	label := string(n.Type)
	if name := n.Name(); name != "" {
		label += "\n" + name
	}
	if n.Type == scene.TypeInstance && w.doc != nil {
		if info, ok := w.doc.Components[n.ComponentID()]; ok && info.Name != "" {
			label += "\n<" + info.Name + ">"
		}
	}
	if w.opts.ShowIDs && n.ID() != "" {
		label += "\n#" + n.ID()
	}
	return label
}

func shape(t scene.NodeType) string {
	switch t {
	case scene.TypeText:
		return "note"
	case scene.TypeInstance, scene.TypeComponent, scene.TypeComponentSet:
		return "component"
	case scene.TypeRectangle, scene.TypeEllipse, scene.TypeLine,
		scene.TypePolygon, scene.TypeStar, scene.TypeVector:
		return "ellipse"
	}
	return "box"
}

func countNodes(n *scene.Node) int {
	count := 0
	n.Walk(func(*scene.Node) bool {
		count++
		return true
	})
	return count
}

// RenderSVG renders a DOT graph as SVG.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	return render(ctx, dot, graphviz.SVG)
}

// RenderPNG renders a DOT graph as PNG.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return render(ctx, dot, graphviz.PNG)
}

func render(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render %s: %w", format, err)
	}
	return buf.Bytes(), nil
}
