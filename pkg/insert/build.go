package insert

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/figmajson/pkg/host"
	"github.com/matzehuels/figmajson/pkg/observability"
	"github.com/matzehuels/figmajson/pkg/scene"
)

// minSize is the smallest width or height insert resizes to.
const minSize = 0.01

var (
	frameExcluded = []string{
		"layoutMode",
		"itemReverseZIndex",
		"strokesIncludedInLayout",
		"strokeCap",
		"strokeJoin",
	}
	instanceExcluded = []string{
		"layoutMode",
		"itemReverseZIndex",
		"strokesIncludedInLayout",
		"componentId",
		"componentProperties",
		"overflowDirection",
		"isExposedInstance",
	}
	textExcluded = []string{"fontName"}
)

// builder recreates scene nodes on a host. It is not safe for concurrent
// use.
type builder struct {
	ctx          context.Context
	host         host.Host
	logger       *log.Logger
	replacements map[string]string
	components   map[string]host.Component
	result       *Result
}

// insert creates n under target and returns the created node, or nil when
// the node was skipped.
func (b *builder) insert(n *scene.Node, target host.Node) host.Node {
	if n == nil {
		b.logger.Warn("skipping null node", "parent", target.ID())
		return nil
	}
	var created host.Node
	switch n.Type {
	case scene.TypeInstance:
		created = b.instance(n, target)
	case scene.TypeFrame, scene.TypeComponent:
		created = b.frame(n, target)
	case scene.TypeGroup:
		created = b.group(n, target)
	case scene.TypeBooleanOperation:
		created = b.booleanOperation(n)
	case scene.TypeRectangle, scene.TypeEllipse, scene.TypeLine,
		scene.TypePolygon, scene.TypeStar, scene.TypeVector:
		created = b.shape(n)
	case scene.TypeText:
		created = b.text(n)
	default:
		b.skip(n, "unsupported node type", nil)
		return nil
	}
	if created == nil {
		return nil
	}
	b.attach(target, created)
	return created
}

func (b *builder) instance(n *scene.Node, target host.Node) host.Node {
	component, ok := b.components[n.ComponentID()]
	if !ok {
		b.skip(n, "component "+n.ComponentID()+" not available", nil)
		return nil
	}
	created, err := b.host.CreateInstance(component)
	if err != nil {
		b.skip(n, "couldn't create instance", err)
		return nil
	}
	if props := n.ComponentPropertyValues(); len(props) > 0 {
		if err := b.host.SetInstanceProperties(created, props); err != nil {
			b.reject(n, "componentProperties", err)
		}
	}
	b.applyOverrides(n, created)
	b.attach(target, created)
	b.applyLayoutMode(n, created)
	b.resize(n, created, false)
	b.assign(n, created, instanceExcluded)
	b.applyPluginData(n, created)
	return created
}

func (b *builder) frame(n *scene.Node, target host.Node) host.Node {
	created, ok := b.create(n)
	if !ok {
		return nil
	}
	b.attach(target, created)
	b.applyLayoutMode(n, created)
	b.resize(n, created, false)
	b.assign(n, created, frameExcluded)
	b.applyPluginData(n, created)
	b.insertChildren(n, created)
	return created
}

func (b *builder) group(n *scene.Node, target host.Node) host.Node {
	var members []host.Node
	for _, child := range n.Children {
		if c := b.insert(child, target); c != nil {
			members = append(members, c)
		}
	}
	if len(members) == 0 {
		b.skip(n, "group has no children", nil)
		return nil
	}
	created, err := b.host.Group(members, target)
	if err != nil {
		b.skip(n, "couldn't group children", err)
		return nil
	}
	b.assign(n, created, nil)
	b.applyPluginData(n, created)
	return created
}

func (b *builder) booleanOperation(n *scene.Node) host.Node {
	created, ok := b.create(n)
	if !ok {
		return nil
	}
	b.assign(n, created, nil)
	b.applyPluginData(n, created)
	b.resize(n, created, false)
	if len(n.Children) > 0 {
		b.logger.Debug("boolean operands are not recreated", "id", n.ID(), "children", len(n.Children))
	}
	return created
}

func (b *builder) shape(n *scene.Node) host.Node {
	created, ok := b.create(n)
	if !ok {
		return nil
	}
	b.assign(n, created, nil)
	b.applyPluginData(n, created)
	b.resize(n, created, true)
	return created
}

func (b *builder) text(n *scene.Node) host.Node {
	created, ok := b.create(n)
	if !ok {
		return nil
	}
	b.applyFont(n, created)
	b.assign(n, created, textExcluded)
	b.applyPluginData(n, created)
	b.resize(n, created, false)
	return created
}

func (b *builder) create(n *scene.Node) (host.Node, bool) {
	created, err := b.host.Create(n.Type)
	if err != nil {
		b.skip(n, "couldn't create node", err)
		return nil, false
	}
	return created, true
}

func (b *builder) insertChildren(n *scene.Node, parent host.Node) {
	for _, child := range n.Children {
		b.insert(child, parent)
	}
}

// attach appends child to parent unless it is already there.
func (b *builder) attach(parent, child host.Node) {
	if p := child.Parent(); p != nil && p.ID() == parent.ID() {
		return
	}
	if err := b.host.AppendChild(parent, child); err != nil {
		b.logger.Error("couldn't append child", "parent", parent.ID(), "child", child.ID(), "err", err)
	}
}

// applyLayoutMode sets the layout mode before the fields that depend on it.
func (b *builder) applyLayoutMode(n *scene.Node, created host.Node) {
	mode, ok := n.Get("layoutMode")
	if !ok || mode == nil || scene.IsMixed(mode) {
		return
	}
	if !b.setField(n, created, "layoutMode", mode) || mode == "NONE" {
		return
	}
	for _, field := range []string{"itemReverseZIndex", "strokesIncludedInLayout"} {
		if v, ok := n.Get(field); ok && v != nil {
			b.setField(n, created, field, v)
		}
	}
}

func (b *builder) resize(n *scene.Node, created host.Node, withoutConstraints bool) {
	w, h := n.Width(), n.Height()
	if w <= minSize || h <= minSize {
		b.logger.Debug("skipping resize", "id", n.ID(), "width", w, "height", h)
		return
	}
	if err := b.host.Resize(created, w, h, withoutConstraints); err != nil {
		b.reject(n, "size", err)
	}
}

func (b *builder) applyPluginData(n *scene.Node, created host.Node) {
	data := n.PluginData()
	for _, key := range sortedKeys(data) {
		if err := b.host.SetPluginData(created, key, data[key]); err != nil {
			b.reject(n, "pluginData", err)
		}
	}
}

func (b *builder) skip(n *scene.Node, reason string, err error) {
	b.logger.Error("skipping node", "type", n.Type, "id", n.ID(), "reason", reason, "err", err)
	b.result.Skipped = append(b.result.Skipped, Skip{
		NodeID: n.ID(),
		Type:   n.Type,
		Reason: reason,
		Err:    err,
	})
	observability.Insert().OnNodeSkipped(b.ctx, string(n.Type), reason)
}

func (b *builder) reject(n *scene.Node, field string, err error) {
	b.logger.Debug("field rejected", "type", n.Type, "id", n.ID(), "field", field, "err", err)
	b.result.Rejected = append(b.result.Rejected, Skip{
		NodeID: n.ID(),
		Type:   n.Type,
		Field:  field,
		Reason: "host rejected field",
		Err:    err,
	})
}
