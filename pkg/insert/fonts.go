package insert

import (
	"github.com/charmbracelet/log"

	"github.com/matzehuels/figmajson/pkg/scene"
)

// FontsToLoad returns the fonts of the text nodes in objects, without
// duplicates, in the order they are first seen. Only component, instance,
// frame and group subtrees are searched below the roots. Mixed fonts are
// logged and skipped, as are null nodes.
func FontsToLoad(objects []*scene.Node, logger *log.Logger) []scene.FontName {
	if logger == nil {
		logger = DefaultOptions().logger()
	}
	var (
		out  []scene.FontName
		seen = make(map[scene.FontName]bool)
	)
	var visit func(n *scene.Node)
	visit = func(n *scene.Node) {
		if n == nil {
			logger.Warn("skipping null node")
			return
		}
		switch n.Type {
		case scene.TypeText:
			v := n.Fields["fontName"]
			if scene.IsMixed(v) {
				logger.Warn("text node has mixed fonts", "id", n.ID())
				return
			}
			if font, ok := scene.FontNameOf(v); ok && !seen[font] {
				seen[font] = true
				out = append(out, font)
			}
		case scene.TypeComponent, scene.TypeInstance, scene.TypeFrame, scene.TypeGroup:
			for _, child := range n.Children {
				visit(child)
			}
		}
	}
	for _, obj := range objects {
		visit(obj)
	}
	return out
}
