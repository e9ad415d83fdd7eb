package scene

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Node is a serialized scene node.
//
// Fields holds every kept field except "type" and "children", which are
// lifted into Type and Children. Field values are JSON-compatible: strings,
// float64, bool, nil, []any, map[string]any, or any value encoding/json can
// marshal (such as [FontName]).
type Node struct {
	Type     NodeType
	Fields   map[string]any
	Children []*Node
}

// NewNode returns an empty node of the given kind.
func NewNode(t NodeType) *Node {
	return &Node{Type: t, Fields: make(map[string]any)}
}

// MarshalJSON flattens the node into a single JSON object.
func (n *Node) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(n.Fields)+2)
	for k, v := range n.Fields {
		out[k] = v
	}
	out["type"] = n.Type
	if n.Children != nil || n.Type.HasChildren() {
		children := n.Children
		if children == nil {
			children = []*Node{}
		}
		out["children"] = children
	}
	return json.Marshal(out)
}

// UnmarshalJSON reads a flat JSON object into the node.
func (n *Node) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	n.Fields = make(map[string]any, len(raw))
	n.Children = nil
	for k, v := range raw {
		switch k {
		case "type":
			if err := json.Unmarshal(v, &n.Type); err != nil {
				return fmt.Errorf("field type: %w", err)
			}
		case "children":
			if err := json.Unmarshal(v, &n.Children); err != nil {
				return fmt.Errorf("field children: %w", err)
			}
		default:
			var val any
			if err := json.Unmarshal(v, &val); err != nil {
				return fmt.Errorf("field %s: %w", k, err)
			}
			n.Fields[k] = val
		}
	}
	return nil
}

// Get returns a field value and whether it is present.
func (n *Node) Get(name string) (any, bool) {
	v, ok := n.Fields[name]
	return v, ok
}

// Set stores a field value, allocating Fields if needed.
func (n *Node) Set(name string, v any) {
	if n.Fields == nil {
		n.Fields = make(map[string]any)
	}
	n.Fields[name] = v
}

// StringField returns a string field, or "" when absent or not a string.
func (n *Node) StringField(name string) string {
	s, _ := n.Fields[name].(string)
	return s
}

// Float returns a numeric field.
func (n *Node) Float(name string) (float64, bool) {
	return ToFloat(n.Fields[name])
}

// Bool returns a boolean field.
func (n *Node) Bool(name string) (bool, bool) {
	b, ok := n.Fields[name].(bool)
	return b, ok
}

// ID returns the node's host id, or "" if the dump did not record one.
func (n *Node) ID() string { return n.StringField("id") }

// Name returns the node's layer name.
func (n *Node) Name() string { return n.StringField("name") }

// Width returns the recorded width, or 0.
func (n *Node) Width() float64 {
	w, _ := n.Float("width")
	return w
}

// Height returns the recorded height, or 0.
func (n *Node) Height() float64 {
	h, _ := n.Float("height")
	return h
}

// ComponentID returns the id of the main component of an instance.
func (n *Node) ComponentID() string { return n.StringField("componentId") }

// ComponentPropertyValues flattens the componentProperties field
// ({name: {type, value}}) into {name: value}.
func (n *Node) ComponentPropertyValues() map[string]any {
	props, ok := n.Fields["componentProperties"].(map[string]any)
	if !ok || len(props) == 0 {
		return nil
	}
	out := make(map[string]any, len(props))
	for name, p := range props {
		if prop, ok := p.(map[string]any); ok {
			if v, ok := prop["value"]; ok {
				out[name] = v
			}
		}
	}
	return out
}

// Override lists the fields a user changed on one instance descendant.
type Override struct {
	ID               string   `json:"id"`
	OverriddenFields []string `json:"overriddenFields"`
}

// Overrides parses the overrides field of an instance.
func (n *Node) Overrides() []Override {
	list, ok := n.Fields["overrides"].([]any)
	if !ok {
		if typed, ok := n.Fields["overrides"].([]Override); ok {
			return typed
		}
		return nil
	}
	out := make([]Override, 0, len(list))
	for _, item := range list {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		ov := Override{}
		ov.ID, _ = m["id"].(string)
		fields, _ := m["overriddenFields"].([]any)
		for _, f := range fields {
			if s, ok := f.(string); ok {
				ov.OverriddenFields = append(ov.OverriddenFields, s)
			}
		}
		if ov.ID != "" {
			out = append(out, ov)
		}
	}
	return out
}

// PluginData returns the plugin data entries of the node.
func (n *Node) PluginData() map[string]string {
	switch m := n.Fields["pluginData"].(type) {
	case map[string]string:
		return m
	case map[string]any:
		out := make(map[string]string, len(m))
		for k, v := range m {
			if s, ok := v.(string); ok {
				out[k] = s
			}
		}
		return out
	}
	return nil
}

// SortedFieldNames returns the node's field names in lexical order.
func (n *Node) SortedFieldNames() []string {
	names := make([]string, 0, len(n.Fields))
	for k := range n.Fields {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Walk visits n and its descendants depth first. Returning false from fn
// skips the node's children.
func (n *Node) Walk(fn func(*Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// Find returns the descendant (or n itself) with the given id.
func (n *Node) Find(id string) *Node {
	var found *Node
	n.Walk(func(c *Node) bool {
		if found != nil {
			return false
		}
		if c.ID() == id {
			found = c
			return false
		}
		return true
	})
	return found
}

// Clone returns a deep copy of the node and its subtree.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	out := &Node{Type: n.Type, Fields: make(map[string]any, len(n.Fields))}
	for k, v := range n.Fields {
		out.Fields[k] = CloneValue(v)
	}
	if n.Children != nil {
		out.Children = make([]*Node, len(n.Children))
		for i, c := range n.Children {
			out.Children[i] = c.Clone()
		}
	}
	return out
}

// CloneValue deep copies the JSON-shaped parts of a field value. Other
// values are returned as is.
func CloneValue(v any) any {
	switch x := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, e := range x {
			out[k] = CloneValue(e)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = CloneValue(e)
		}
		return out
	case map[string]string:
		out := make(map[string]string, len(x))
		for k, e := range x {
			out[k] = e
		}
		return out
	case []string:
		return append([]string(nil), x...)
	case []float64:
		return append([]float64(nil), x...)
	}
	return v
}

// ToFloat converts the numeric representations found in field values.
func ToFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case json.Number:
		f, err := x.Float64()
		return f, err == nil
	}
	return 0, false
}

// Visible reports the visible field, defaulting to true.
func (n *Node) Visible() bool {
	if v, ok := n.Bool("visible"); ok {
		return v
	}
	return true
}

// Opacity reports the opacity field, defaulting to 1.
func (n *Node) Opacity() float64 {
	if o, ok := n.Float("opacity"); ok {
		return o
	}
	return 1
}

// Removed is always false for serialized nodes: a removed node cannot be
// reached by a dump.
func (n *Node) Removed() bool { return false }

// LayoutMode returns the auto-layout direction, or "" when unset.
func (n *Node) LayoutMode() string { return n.StringField("layoutMode") }

// FontName returns the node's font. It reports false for mixed or missing
// values.
func (n *Node) FontName() (FontName, bool) {
	return FontNameOf(n.Fields["fontName"])
}
