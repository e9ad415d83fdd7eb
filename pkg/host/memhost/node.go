package memhost

import (
	"github.com/matzehuels/figmajson/pkg/host"
	"github.com/matzehuels/figmajson/pkg/scene"
)

// Node is a node of a [Document]. Every node implements host.Component so
// component lookups can hand out nodes directly; Meta and ComponentSet are
// only meaningful on COMPONENT nodes.
type Node struct {
	doc        *Document
	id         string
	typ        scene.NodeType
	fields     map[string]any
	children   []*Node
	parent     *Node
	pluginData map[string]string
	main       *Node
}

var _ host.Component = (*Node)(nil)

func (n *Node) ID() string { return n.id }

func (n *Node) Type() scene.NodeType { return n.typ }

// Field returns a copy of the field value.
func (n *Node) Field(name string) (any, bool) {
	n.doc.mu.RLock()
	defer n.doc.mu.RUnlock()

	switch name {
	case "id":
		return n.id, true
	case "parent":
		if n.parent == nil {
			return nil, true
		}
		return n.parent, true
	case "removed":
		return false, true
	case "pluginData":
		out := make(map[string]any, len(n.pluginData))
		for k, v := range n.pluginData {
			out[k] = v
		}
		return out, true
	case "mainComponent":
		if n.typ != scene.TypeInstance {
			return nil, false
		}
		if n.main == nil {
			return nil, true
		}
		return n.main, true
	case "absoluteBoundingBox":
		x, y := n.absolutePositionLocked()
		w, _ := scene.ToFloat(n.fields["width"])
		h, _ := scene.ToFloat(n.fields["height"])
		return map[string]any{"x": x, "y": y, "width": w, "height": h}, true
	}
	v, ok := n.fields[name]
	if !ok {
		return nil, false
	}
	return scene.CloneValue(v), true
}

func (n *Node) absolutePositionLocked() (float64, float64) {
	var x, y float64
	for c := n; c != nil && c.typ != scene.TypePage; c = c.parent {
		cx, _ := scene.ToFloat(c.fields["x"])
		cy, _ := scene.ToFloat(c.fields["y"])
		x += cx
		y += cy
	}
	return x, y
}

func (n *Node) Children() []host.Node {
	n.doc.mu.RLock()
	defer n.doc.mu.RUnlock()
	out := make([]host.Node, len(n.children))
	for i, c := range n.children {
		out[i] = c
	}
	return out
}

func (n *Node) Parent() host.Node {
	n.doc.mu.RLock()
	defer n.doc.mu.RUnlock()
	if n.parent == nil {
		return nil
	}
	return n.parent
}

// Meta returns the node's publish metadata.
func (n *Node) Meta() host.PublishMeta {
	n.doc.mu.RLock()
	defer n.doc.mu.RUnlock()
	return n.metaLocked()
}

func (n *Node) metaLocked() host.PublishMeta {
	m := host.PublishMeta{}
	m.Key, _ = n.fields["key"].(string)
	m.Name, _ = n.fields["name"].(string)
	m.Description, _ = n.fields["description"].(string)
	m.Remote, _ = n.fields["remote"].(bool)
	m.DocumentationLinks = []scene.DocumentationLink{}
	if links, ok := n.fields["documentationLinks"].([]any); ok {
		for _, l := range links {
			if lm, ok := l.(map[string]any); ok {
				if uri, ok := lm["uri"].(string); ok {
					m.DocumentationLinks = append(m.DocumentationLinks, scene.DocumentationLink{URI: uri})
				}
			}
		}
	}
	return m
}

// ComponentSet returns the enclosing component set of a variant.
func (n *Node) ComponentSet() host.ComponentSet {
	n.doc.mu.RLock()
	defer n.doc.mu.RUnlock()
	if n.typ != scene.TypeComponent || n.parent == nil || n.parent.typ != scene.TypeComponentSet {
		return nil
	}
	return n.parent
}

// MainComponent returns the component an instance was created from.
func (n *Node) MainComponent() (host.Component, bool) {
	n.doc.mu.RLock()
	defer n.doc.mu.RUnlock()
	if n.main == nil {
		return nil, false
	}
	return n.main, true
}

// PluginData returns one plugin data entry.
func (n *Node) PluginData(key string) string {
	n.doc.mu.RLock()
	defer n.doc.mu.RUnlock()
	return n.pluginData[key]
}

// inDocumentLocked reports whether the node hangs below one of the pages.
func (n *Node) inDocumentLocked() bool {
	for c := n; c != nil; c = c.parent {
		if c.typ == scene.TypePage {
			return true
		}
	}
	return false
}

func (n *Node) isAncestorLocked(of *Node) bool {
	for c := of; c != nil; c = c.parent {
		if c == n {
			return true
		}
	}
	return false
}

func (n *Node) indexLocked(child *Node) int {
	for i, c := range n.children {
		if c == child {
			return i
		}
	}
	return -1
}

func (n *Node) detachLocked() {
	if n.parent == nil {
		return
	}
	if i := n.parent.indexLocked(n); i >= 0 {
		n.parent.children = append(n.parent.children[:i], n.parent.children[i+1:]...)
	}
	n.parent = nil
}
