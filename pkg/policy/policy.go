// Package policy decides which fields cross the serialization boundary.
//
// Two blacklists apply. The read policy ([KeepOnRead]) runs during a dump
// and drops fields that only make sense in a live document, plus the
// expensive geometry and style-id fields unless the dump asks for them.
// The write policy ([KeepOnWrite]) runs during an insert and protects
// fields the host computes itself or that insert applies through a
// dedicated operation.
//
// Both functions are pure and never fail. Unknown fields pass both
// policies: if the host rejects them, insert absorbs the failure per field.
package policy

import "github.com/matzehuels/figmajson/pkg/scene"

// Geometry selects whether path geometry is serialized.
type Geometry string

const (
	// GeometryNone drops fillGeometry, strokeGeometry and relativeTransform.
	GeometryNone Geometry = "none"
	// GeometryPaths keeps them.
	GeometryPaths Geometry = "paths"
)

// ReadOptions are the dump options the read policy depends on.
type ReadOptions struct {
	Geometry Geometry
	Styles   bool
}

// KeepOnRead reports whether a field of a node of kind t is serialized.
// The node kind is part of the signature so kind-specific rules can be
// expressed; none of the current rules needs it.
func KeepOnRead(field string, t scene.NodeType, opts ReadOptions) bool {
	switch {
	case scene.LiveOnly(field):
		return false
	case scene.IsGeometryField(field):
		return opts.Geometry == GeometryPaths
	case scene.IsStyleIDField(field):
		return opts.Styles
	}
	return true
}

// WriteBlacklist lists the fields insert never assigns through set-field.
var WriteBlacklist = []string{
	"id",
	"type",
	"children",
	"width",
	"height",
	"parent",
	"componentPropertyReferences",
	"variantProperties",
	"overlayPositionType",
	"overlayBackground",
	"overlayBackgroundInteraction",
	"fontWeight",
	"overrides",
	"componentProperties",
	"inferredAutoLayout",
	"componentId",
	"isAsset",
	"pluginData",
	"mainComponent",
}

var writeBlacklist = func() map[string]bool {
	m := make(map[string]bool, len(WriteBlacklist))
	for _, f := range WriteBlacklist {
		m[f] = true
	}
	return m
}()

// KeepOnWrite reports whether insert may assign field directly.
func KeepOnWrite(field string) bool {
	return !writeBlacklist[field]
}
