package scene

// NodeType tags the kind of a scene node.
type NodeType string

// Node kinds known to the data model.
const (
	TypeDocument         NodeType = "DOCUMENT"
	TypePage             NodeType = "PAGE"
	TypeFrame            NodeType = "FRAME"
	TypeGroup            NodeType = "GROUP"
	TypeSlice            NodeType = "SLICE"
	TypeRectangle        NodeType = "RECTANGLE"
	TypeLine             NodeType = "LINE"
	TypeEllipse          NodeType = "ELLIPSE"
	TypePolygon          NodeType = "POLYGON"
	TypeStar             NodeType = "STAR"
	TypeVector           NodeType = "VECTOR"
	TypeText             NodeType = "TEXT"
	TypeComponentSet     NodeType = "COMPONENT_SET"
	TypeComponent        NodeType = "COMPONENT"
	TypeInstance         NodeType = "INSTANCE"
	TypeBooleanOperation NodeType = "BOOLEAN_OPERATION"
	TypeSticky           NodeType = "STICKY"
	TypeStamp            NodeType = "STAMP"
	TypeHighlight        NodeType = "HIGHLIGHT"
	TypeWashiTape        NodeType = "WASHI_TAPE"
	TypeShapeWithText    NodeType = "SHAPE_WITH_TEXT"
	TypeCodeBlock        NodeType = "CODE_BLOCK"
	TypeConnector        NodeType = "CONNECTOR"
	TypeWidget           NodeType = "WIDGET"
	TypeEmbed            NodeType = "EMBED"
	TypeLinkUnfurl       NodeType = "LINK_UNFURL"
	TypeMedia            NodeType = "MEDIA"
	TypeSection          NodeType = "SECTION"
)

// AllTypes lists every node kind in declaration order.
var AllTypes = []NodeType{
	TypeDocument, TypePage, TypeFrame, TypeGroup, TypeSlice, TypeRectangle,
	TypeLine, TypeEllipse, TypePolygon, TypeStar, TypeVector, TypeText,
	TypeComponentSet, TypeComponent, TypeInstance, TypeBooleanOperation,
	TypeSticky, TypeStamp, TypeHighlight, TypeWashiTape, TypeShapeWithText,
	TypeCodeBlock, TypeConnector, TypeWidget, TypeEmbed, TypeLinkUnfurl,
	TypeMedia, TypeSection,
}

// HasChildren reports whether nodes of this kind own an ordered child list.
func (t NodeType) HasChildren() bool {
	switch t {
	case TypeDocument, TypePage, TypeFrame, TypeGroup, TypeComponentSet,
		TypeComponent, TypeInstance, TypeBooleanOperation, TypeSection:
		return true
	}
	return false
}

// Known reports whether t is one of the declared node kinds.
func (t NodeType) Known() bool {
	_, ok := schemas[t]
	return ok
}

func (t NodeType) String() string { return string(t) }
