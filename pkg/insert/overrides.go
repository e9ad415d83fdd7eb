package insert

import (
	"sort"
	"strings"

	"github.com/matzehuels/figmajson/pkg/host"
	"github.com/matzehuels/figmajson/pkg/policy"
	"github.com/matzehuels/figmajson/pkg/scene"
)

// applyOverrides replays the per-descendant overrides of a scene instance
// onto a freshly created instance.
//
// Instance descendants carry ids of the form "I<instance>;<path>", where
// path is stable across instances of the same component. Descendants are
// matched on that path and, failing that, on their child index path.
func (b *builder) applyOverrides(n *scene.Node, created host.Node) {
	overrides := n.Overrides()
	if len(overrides) == 0 {
		return
	}
	byPath := make(map[string]host.Node)
	walkHost(created, func(hn host.Node) {
		if p, ok := descendantPath(hn.ID()); ok {
			byPath[p] = hn
		}
	})

	for _, ov := range overrides {
		src, index := findWithPath(n, ov.ID)
		if src == nil {
			b.logger.Debug("override source not found", "instance", n.ID(), "id", ov.ID)
			continue
		}
		var dst host.Node
		if p, ok := descendantPath(ov.ID); ok {
			dst = byPath[p]
		}
		if dst == nil {
			dst = followIndex(created, index)
		}
		if dst == nil {
			b.logger.Debug("override target not found", "instance", n.ID(), "id", ov.ID)
			continue
		}
		b.applyOverride(src, dst, ov.OverriddenFields)
	}
}

// applyOverride copies the overridden fields of src onto dst. Fonts go
// first so text edits find them loaded; size goes through resize.
func (b *builder) applyOverride(src *scene.Node, dst host.Node, fields []string) {
	fields = append([]string(nil), fields...)
	sort.SliceStable(fields, func(i, j int) bool {
		return fields[i] == "fontName" && fields[j] != "fontName"
	})
	resized := false
	for _, field := range fields {
		switch field {
		case "fontName":
			b.applyFont(src, dst)
			continue
		case "width", "height":
			if !resized {
				b.resize(src, dst, false)
				resized = true
			}
			continue
		}
		if !policy.KeepOnWrite(field) {
			continue
		}
		v, ok := src.Get(field)
		if !ok || v == nil {
			continue
		}
		b.setField(src, dst, field, v)
	}
}

// descendantPath returns the part of an instance descendant id after the
// first ";".
func descendantPath(id string) (string, bool) {
	if !strings.HasPrefix(id, "I") {
		return "", false
	}
	_, path, ok := strings.Cut(id, ";")
	return path, ok && path != ""
}

// findWithPath finds the descendant of root with the given id and returns
// the child indices leading to it.
func findWithPath(root *scene.Node, id string) (*scene.Node, []int) {
	for i, child := range root.Children {
		if child == nil {
			continue
		}
		if child.ID() == id {
			return child, []int{i}
		}
		if found, path := findWithPath(child, id); found != nil {
			return found, append([]int{i}, path...)
		}
	}
	return nil, nil
}

func followIndex(n host.Node, path []int) host.Node {
	for _, i := range path {
		children := n.Children()
		if i >= len(children) {
			return nil
		}
		n = children[i]
	}
	return n
}

func walkHost(n host.Node, fn func(host.Node)) {
	for _, child := range n.Children() {
		fn(child)
		walkHost(child, fn)
	}
}
