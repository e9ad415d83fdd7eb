// Package host declares the capabilities dump and insert need from a design
// tool.
//
// The live node API, font loading, component and style registries and the
// image store belong to the host application. This package only names the
// operations; [memhost] provides an in-memory implementation for tests,
// the CLI and the bridge.
//
// Capabilities are split so each caller asks for exactly what it uses:
//
//	Dump   needs DumpHost  (StyleRegistry + ImageStore)
//	Insert needs Host      (every capability)
//
// Methods taking a context may block on the host; the rest are expected to
// return promptly. Every method must be safe for concurrent use, since
// fonts, components, styles and images are resolved in parallel.
//
// [memhost]: github.com/matzehuels/figmajson/pkg/host/memhost
package host

import (
	"context"

	"github.com/matzehuels/figmajson/pkg/scene"
)

// Node is a live scene node.
type Node interface {
	ID() string
	Type() scene.NodeType
	// Field returns the current value of a readable field. Values are
	// JSON-compatible, a nested Node, or scene.Mixed.
	Field(name string) (any, bool)
	Children() []Node
	// Parent returns nil for nodes that are not attached.
	Parent() Node
}

// PublishMeta is the publish metadata shared by components and sets.
type PublishMeta struct {
	Key                string
	Name               string
	Description        string
	Remote             bool
	DocumentationLinks []scene.DocumentationLink
}

// Component is a live component node.
type Component interface {
	Node
	Meta() PublishMeta
	// ComponentSet returns nil when the component is not a variant.
	ComponentSet() ComponentSet
}

// ComponentSet is a live component set (variant container).
type ComponentSet interface {
	ID() string
	Meta() PublishMeta
}

// Style is a shared style.
type Style interface {
	ID() string
	Info() scene.StyleInfo
}

// Mutator creates and edits nodes.
type Mutator interface {
	CurrentPage() Node
	Create(t scene.NodeType) (Node, error)
	CreateInstance(c Component) (Node, error)
	SetField(n Node, name string, value any) error
	Resize(n Node, width, height float64, withoutConstraints bool) error
	AppendChild(parent, child Node) error
	// Group wraps nodes in a new group inserted under parent.
	Group(nodes []Node, parent Node) (Node, error)
	SetPluginData(n Node, key, value string) error
	SetInstanceProperties(n Node, props map[string]any) error
}

// FontLoader makes fonts available for text edits.
type FontLoader interface {
	LoadFont(ctx context.Context, f scene.FontName) error
}

// ComponentRegistry resolves components.
type ComponentRegistry interface {
	ImportComponentByKey(ctx context.Context, key string) (Component, error)
	// ComponentByID returns false unless id names a local COMPONENT.
	ComponentByID(id string) (Component, bool)
}

// StyleRegistry resolves styles.
type StyleRegistry interface {
	ImportStyleByKey(ctx context.Context, key string) (Style, error)
	StyleByID(id string) (Style, bool)
}

// ImageStore reads and creates image content.
type ImageStore interface {
	// ImageBytes fails when no image with the hash exists.
	ImageBytes(ctx context.Context, hash string) ([]byte, error)
	// CreateImage stores bytes and returns the host's hash for them.
	CreateImage(ctx context.Context, data []byte) (string, error)
}

// DumpHost is what a dump needs.
type DumpHost interface {
	StyleRegistry
	ImageStore
}

// Host is what an insert needs.
type Host interface {
	Mutator
	FontLoader
	ComponentRegistry
	StyleRegistry
	ImageStore
}
