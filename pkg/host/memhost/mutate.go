package memhost

import (
	"strings"

	"github.com/matzehuels/figmajson/pkg/errors"
	"github.com/matzehuels/figmajson/pkg/host"
	"github.com/matzehuels/figmajson/pkg/scene"
)

// minSize is the smallest width or height a node can be resized to.
const minSize = 0.01

var creatable = map[scene.NodeType]bool{
	scene.TypeRectangle:        true,
	scene.TypeLine:             true,
	scene.TypeEllipse:          true,
	scene.TypePolygon:          true,
	scene.TypeStar:             true,
	scene.TypeVector:           true,
	scene.TypeText:             true,
	scene.TypeFrame:            true,
	scene.TypeComponent:        true,
	scene.TypeBooleanOperation: true,
	scene.TypeSection:          true,
	scene.TypeSlice:            true,
}

// Text properties that can only change while the node's font is loaded.
var fontBound = map[string]bool{
	"characters":       true,
	"fontSize":         true,
	"textCase":         true,
	"textDecoration":   true,
	"letterSpacing":    true,
	"lineHeight":       true,
	"hyperlink":        true,
	"paragraphIndent":  true,
	"paragraphSpacing": true,
	"textAutoResize":   true,
}

// Frame properties that only exist under auto layout.
var autoLayoutOnly = map[string]bool{
	"itemReverseZIndex":       true,
	"strokesIncludedInLayout": true,
}

var layoutModes = map[string]bool{"NONE": true, "HORIZONTAL": true, "VERTICAL": true}

// Create creates a node on the current page.
func (d *Document) Create(t scene.NodeType) (host.Node, error) {
	if !creatable[t] {
		return nil, errors.New(errors.ErrCodeUnsupportedNode, "cannot create node of type %s", t)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	n := d.newNodeLocked(t)
	d.appendLocked(d.current, n)
	return n, nil
}

// CreateInstance instantiates a component on the current page. Descendant
// ids follow the "I<instance>;<source>" convention.
func (d *Document) CreateInstance(c host.Component) (host.Node, error) {
	comp, ok := c.(*Node)
	if !ok || comp == nil || comp.doc != d {
		return nil, errors.New(errors.ErrCodeInvalidInput, "component does not belong to this document")
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if comp.typ != scene.TypeComponent {
		return nil, errors.New(errors.ErrCodeHostRejected, "node %s is a %s, not a COMPONENT", comp.id, comp.typ)
	}

	inst := &Node{doc: d, id: d.nextIDLocked(), typ: scene.TypeInstance, fields: make(map[string]any), main: comp}
	d.nodes[inst.id] = inst
	schema := scene.Schema(scene.TypeInstance)
	for k, v := range comp.fields {
		if schema.Has(k) {
			inst.fields[k] = scene.CloneValue(v)
		}
	}
	inst.fields["componentProperties"] = propertiesFromDefinitions(comp.fields["componentPropertyDefinitions"])
	inst.fields["scaleFactor"] = 1.0
	inst.fields["isExposedInstance"] = false
	inst.fields["overrides"] = []any{}
	for _, child := range comp.children {
		d.cloneIntoLocked(inst, inst, child)
	}
	d.appendLocked(d.current, inst)
	return inst, nil
}

func (d *Document) cloneIntoLocked(inst, parent, src *Node) {
	c := &Node{
		doc:    d,
		id:     "I" + inst.id + ";" + strings.TrimPrefix(src.id, "I"),
		typ:    src.typ,
		fields: make(map[string]any, len(src.fields)),
		main:   src.main,
	}
	for k, v := range src.fields {
		c.fields[k] = scene.CloneValue(v)
	}
	d.nodes[c.id] = c
	d.appendLocked(parent, c)
	for _, gc := range src.children {
		d.cloneIntoLocked(inst, c, gc)
	}
}

func propertiesFromDefinitions(v any) map[string]any {
	out := map[string]any{}
	defs, ok := v.(map[string]any)
	if !ok {
		return out
	}
	for name, d := range defs {
		def, ok := d.(map[string]any)
		if !ok {
			continue
		}
		out[name] = map[string]any{"type": def["type"], "value": scene.CloneValue(def["defaultValue"])}
	}
	return out
}

// SetField assigns a field after validating it the way the host does.
func (d *Document) SetField(hn host.Node, name string, value any) error {
	n, err := d.own(hn)
	if err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	switch {
	case scene.IsMixed(value):
		return reject("cannot assign a mixed value to %s", name)
	case scene.ReadOnly(name):
		return reject("%s is read-only", name)
	case !scene.Schema(n.typ).Has(name):
		return reject("%s node has no field %s", n.typ, name)
	}

	if err := checkValue(name, value); err != nil {
		return err
	}

	if autoLayoutOnly[name] {
		if mode, _ := n.fields["layoutMode"].(string); mode == "" || mode == "NONE" {
			return reject("%s requires auto layout", name)
		}
	}

	if n.typ == scene.TypeText {
		if name == "fontName" {
			f, _ := scene.FontNameOf(value)
			if !d.fontLoadedLocked(f) {
				return reject("font %q is not loaded", f.String())
			}
			n.fields[name] = f
			return nil
		}
		if fontBound[name] {
			f, ok := scene.FontNameOf(n.fields["fontName"])
			if !ok || !d.fontLoadedLocked(f) {
				return reject("cannot set %s: font %q is not loaded", name, f.String())
			}
		}
	}

	n.fields[name] = normalize(name, value)
	return nil
}

func checkValue(name string, value any) error {
	switch name {
	case "name", "characters", "description":
		if _, ok := value.(string); !ok {
			return reject("%s must be a string, got %T", name, value)
		}
	case "x", "y", "rotation", "fontSize", "strokeWeight", "cornerRadius", "itemSpacing":
		if _, ok := scene.ToFloat(value); !ok {
			return reject("%s must be a number, got %T", name, value)
		}
	case "opacity":
		o, ok := scene.ToFloat(value)
		if !ok || o < 0 || o > 1 {
			return reject("opacity must be a number in [0, 1], got %v", value)
		}
	case "visible", "locked", "clipsContent", "isMask":
		if _, ok := value.(bool); !ok {
			return reject("%s must be a boolean, got %T", name, value)
		}
	case "layoutMode":
		s, _ := value.(string)
		if !layoutModes[s] {
			return reject("invalid layoutMode %v", value)
		}
	case "fontName":
		if _, ok := scene.FontNameOf(value); !ok {
			return reject("invalid fontName %v", value)
		}
	}
	return nil
}

// Resize sets width and height. Constraints are not modelled, so
// withoutConstraints has no effect.
func (d *Document) Resize(hn host.Node, width, height float64, withoutConstraints bool) error {
	n, err := d.own(hn)
	if err != nil {
		return err
	}
	if width < minSize || height < minSize {
		return reject("cannot resize %s to %vx%v", n.id, width, height)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := n.fields["width"]; !ok && !scene.Schema(n.typ).Has("width") {
		return reject("%s node cannot be resized", n.typ)
	}
	n.fields["width"] = width
	n.fields["height"] = height
	return nil
}

// AppendChild moves child to the end of parent's children.
func (d *Document) AppendChild(hp, hc host.Node) error {
	p, err := d.own(hp)
	if err != nil {
		return err
	}
	c, err := d.own(hc)
	if err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if !p.typ.HasChildren() {
		return reject("%s node cannot have children", p.typ)
	}
	if c.isAncestorLocked(p) {
		return reject("cannot append %s to its own descendant", c.id)
	}
	d.appendLocked(p, c)
	return nil
}

func (d *Document) appendLocked(parent, child *Node) {
	child.detachLocked()
	child.parent = parent
	parent.children = append(parent.children, child)
}

// Group wraps nodes in a new group placed under parent at the position of
// the first grouped node. The group's bounds enclose the nodes.
func (d *Document) Group(nodes []host.Node, hp host.Node) (host.Node, error) {
	if len(nodes) == 0 {
		return nil, reject("cannot group zero nodes")
	}
	p, err := d.own(hp)
	if err != nil {
		return nil, err
	}
	members := make([]*Node, len(nodes))
	for i, hn := range nodes {
		if members[i], err = d.own(hn); err != nil {
			return nil, err
		}
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if !p.typ.HasChildren() {
		return nil, reject("%s node cannot have children", p.typ)
	}

	for _, m := range members {
		if m.isAncestorLocked(p) {
			return nil, reject("cannot group %s into its own descendant", m.id)
		}
	}

	g := d.newNodeLocked(scene.TypeGroup)
	at := -1
	if members[0].parent == p {
		at = p.indexLocked(members[0])
		for _, m := range members[1:] {
			if m.parent == p && p.indexLocked(m) < at {
				at--
			}
		}
	}

	minX, minY, maxX, maxY := bounds(members)
	for _, m := range members {
		d.appendLocked(g, m)
	}
	g.parent = p
	if at < 0 || at > len(p.children) {
		p.children = append(p.children, g)
	} else {
		p.children = append(p.children[:at], append([]*Node{g}, p.children[at:]...)...)
	}
	g.fields["x"] = minX
	g.fields["y"] = minY
	g.fields["width"] = maxX - minX
	g.fields["height"] = maxY - minY
	return g, nil
}

func bounds(nodes []*Node) (minX, minY, maxX, maxY float64) {
	for i, n := range nodes {
		x, _ := scene.ToFloat(n.fields["x"])
		y, _ := scene.ToFloat(n.fields["y"])
		w, _ := scene.ToFloat(n.fields["width"])
		h, _ := scene.ToFloat(n.fields["height"])
		if i == 0 || x < minX {
			minX = x
		}
		if i == 0 || y < minY {
			minY = y
		}
		if i == 0 || x+w > maxX {
			maxX = x + w
		}
		if i == 0 || y+h > maxY {
			maxY = y + h
		}
	}
	return minX, minY, maxX, maxY
}

// SetPluginData stores a plugin data entry. An empty value deletes it.
func (d *Document) SetPluginData(hn host.Node, key, value string) error {
	n, err := d.own(hn)
	if err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if value == "" {
		delete(n.pluginData, key)
		return nil
	}
	if n.pluginData == nil {
		n.pluginData = make(map[string]string)
	}
	n.pluginData[key] = value
	return nil
}

// SetInstanceProperties sets component property values on an instance.
// Every property must be defined by the main component.
func (d *Document) SetInstanceProperties(hn host.Node, props map[string]any) error {
	n, err := d.own(hn)
	if err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if n.typ != scene.TypeInstance {
		return reject("%s node has no component properties", n.typ)
	}
	current, _ := n.fields["componentProperties"].(map[string]any)
	next := make(map[string]any, len(current))
	for k, v := range current {
		next[k] = scene.CloneValue(v)
	}
	for name, value := range props {
		entry, ok := next[name].(map[string]any)
		if !ok {
			return reject("component property %q is not defined", name)
		}
		entry["value"] = scene.CloneValue(value)
	}
	n.fields["componentProperties"] = next
	return nil
}

func reject(format string, args ...any) error {
	return errors.New(errors.ErrCodeHostRejected, format, args...)
}
