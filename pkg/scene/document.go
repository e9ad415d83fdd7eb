package scene

import (
	"strconv"

	"github.com/matzehuels/figmajson/pkg/errors"
)

// Document is the artifact produced by a dump and consumed by an insert.
type Document struct {
	Objects       []*Node         `json:"objects"`
	Components    ComponentMap    `json:"components"`
	ComponentSets ComponentSetMap `json:"componentSets"`
	Styles        StyleMap        `json:"styles"`
	Images        ImageMap        `json:"images"`
}

// ComponentMap maps component ids to their publish metadata.
type ComponentMap map[string]ComponentInfo

// ComponentSetMap maps component set ids to their publish metadata.
type ComponentSetMap map[string]ComponentSetInfo

// StyleMap maps style ids to their publish metadata.
type StyleMap map[string]StyleInfo

// ImageMap maps image hashes to image bytes. encoding/json writes the bytes
// as base64.
type ImageMap map[string][]byte

// DocumentationLink points at external documentation of a component.
type DocumentationLink struct {
	URI string `json:"uri"`
}

// ComponentInfo is the publish metadata of a component.
type ComponentInfo struct {
	Key                string              `json:"key"`
	Name               string              `json:"name"`
	Description        string              `json:"description"`
	Remote             bool                `json:"remote"`
	ComponentSetID     string              `json:"componentSetId,omitempty"`
	DocumentationLinks []DocumentationLink `json:"documentationLinks"`
}

// ComponentSetInfo is the publish metadata of a component set.
type ComponentSetInfo struct {
	Key                string              `json:"key"`
	Name               string              `json:"name"`
	Description        string              `json:"description"`
	Remote             bool                `json:"remote"`
	DocumentationLinks []DocumentationLink `json:"documentationLinks"`
}

// StyleType is the kind of a shared style.
type StyleType string

// Style kinds.
const (
	StylePaint  StyleType = "PAINT"
	StyleText   StyleType = "TEXT"
	StyleEffect StyleType = "EFFECT"
	StyleGrid   StyleType = "GRID"
)

// StyleInfo is the publish metadata of a style.
type StyleInfo struct {
	Key         string    `json:"key"`
	Name        string    `json:"name"`
	StyleType   StyleType `json:"styleType"`
	Remote      bool      `json:"remote"`
	Description string    `json:"description"`
}

// NewDocument returns an empty document whose collections are all
// allocated, so it encodes as [] and {} rather than null.
func NewDocument() *Document {
	return &Document{
		Objects:       []*Node{},
		Components:    ComponentMap{},
		ComponentSets: ComponentSetMap{},
		Styles:        StyleMap{},
		Images:        ImageMap{},
	}
}

// Normalize allocates any nil collection. Decoded documents may omit the
// side tables.
func (d *Document) Normalize() {
	if d.Objects == nil {
		d.Objects = []*Node{}
	}
	if d.Components == nil {
		d.Components = ComponentMap{}
	}
	if d.ComponentSets == nil {
		d.ComponentSets = ComponentSetMap{}
	}
	if d.Styles == nil {
		d.Styles = StyleMap{}
	}
	if d.Images == nil {
		d.Images = ImageMap{}
	}
}

// NodeCount returns the number of nodes in all object trees.
func (d *Document) NodeCount() int {
	count := 0
	for _, obj := range d.Objects {
		obj.Walk(func(*Node) bool {
			count++
			return true
		})
	}
	return count
}

// CloneObjects deep copies the root nodes.
func (d *Document) CloneObjects() []*Node {
	out := make([]*Node, len(d.Objects))
	for i, obj := range d.Objects {
		out[i] = obj.Clone()
	}
	return out
}

// Validate checks the structure of the object trees. Null nodes and nodes
// without a type are INVALID_FORMAT at any depth. Unknown types are not
// errors here; insert skips them.
func (d *Document) Validate() error {
	for i, obj := range d.Objects {
		if err := validateNode(obj, strconv.Itoa(i)); err != nil {
			return err
		}
	}
	return nil
}

func validateNode(n *Node, path string) error {
	if n == nil {
		return errors.New(errors.ErrCodeInvalidFormat, "node %s is null", path)
	}
	if n.Type == "" {
		return errors.New(errors.ErrCodeInvalidFormat, "node %s has no type (id %q)", path, n.ID())
	}
	for i, c := range n.Children {
		if err := validateNode(c, path+"/"+strconv.Itoa(i)); err != nil {
			return err
		}
	}
	return nil
}
