package insert

import (
	"github.com/matzehuels/figmajson/pkg/host"
	"github.com/matzehuels/figmajson/pkg/policy"
	"github.com/matzehuels/figmajson/pkg/scene"
)

// assign copies every writable field of n onto created, in lexical order.
// Fields in excluded are left to the node's recipe.
func (b *builder) assign(n *scene.Node, created host.Node, excluded []string) {
	for _, field := range n.SortedFieldNames() {
		if !policy.KeepOnWrite(field) || contains(excluded, field) {
			continue
		}
		v := n.Fields[field]
		if v == nil {
			continue
		}
		b.setField(n, created, field, v)
	}
}

// setField writes one field and records a rejection. Values holding the
// mixed sentinel anywhere are never written.
func (b *builder) setField(n *scene.Node, created host.Node, field string, v any) bool {
	if containsMixed(v) {
		b.logger.Debug("skipping mixed value", "id", n.ID(), "field", field)
		return false
	}
	if err := b.host.SetField(created, field, v); err != nil {
		b.reject(n, field, err)
		return false
	}
	return true
}

// set writes a field on a created node that has no scene counterpart.
func (b *builder) set(created host.Node, field string, v any) {
	if err := b.host.SetField(created, field, v); err != nil {
		b.logger.Debug("field rejected", "id", created.ID(), "field", field, "err", err)
		b.result.Rejected = append(b.result.Rejected, Skip{
			NodeID: created.ID(),
			Type:   created.Type(),
			Field:  field,
			Reason: "host rejected field",
			Err:    err,
		})
	}
}

// applyFont sets the font of a text node, swapping in the replacement
// chosen while loading fonts. Mixed fonts are left alone.
func (b *builder) applyFont(n *scene.Node, created host.Node) {
	v, ok := n.Get("fontName")
	if !ok || v == nil {
		return
	}
	if scene.IsMixed(v) {
		b.logger.Warn("mixed font left unchanged", "id", n.ID())
		return
	}
	font, ok := scene.FontNameOf(v)
	if !ok {
		b.reject(n, "fontName", nil)
		return
	}
	key, err := scene.EncodeFont(font)
	if err != nil {
		b.reject(n, "fontName", err)
		return
	}
	if replacement, ok := b.replacements[key]; ok {
		decoded, err := scene.DecodeFont(replacement)
		if err != nil {
			b.reject(n, "fontName", err)
			return
		}
		b.logger.Debug("replacing font", "id", n.ID(), "from", font, "to", decoded)
		font = decoded
	}
	b.setField(n, created, "fontName", font)
}

func containsMixed(v any) bool {
	if scene.IsMixed(v) {
		return true
	}
	switch t := v.(type) {
	case []any:
		for _, item := range t {
			if containsMixed(item) {
				return true
			}
		}
	case map[string]any:
		for _, item := range t {
			if containsMixed(item) {
				return true
			}
		}
	}
	return false
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
