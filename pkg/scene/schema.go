package scene

// FieldSet is the ordered, duplicate-free set of readable fields of one
// node kind. "type" and "children" are structural and never listed.
type FieldSet struct {
	names []string
	index map[string]struct{}
}

func newFieldSet(parts ...[]string) FieldSet {
	s := FieldSet{index: make(map[string]struct{})}
	for _, part := range parts {
		for _, name := range part {
			if _, dup := s.index[name]; dup {
				continue
			}
			s.index[name] = struct{}{}
			s.names = append(s.names, name)
		}
	}
	return s
}

// Names returns the field names in declaration order. The slice is shared
// and must not be modified.
func (s FieldSet) Names() []string { return s.names }

// Has reports whether name belongs to the set.
func (s FieldSet) Has(name string) bool {
	_, ok := s.index[name]
	return ok
}

// Len returns the number of fields.
func (s FieldSet) Len() int { return len(s.names) }

// Mixins of the host object model.
var (
	baseFields  = []string{"id", "name", "pluginData"}
	sceneFields = []string{"visible", "locked", "componentPropertyReferences"}
	liveFields  = []string{
		"parent", "removed", "absoluteTransform", "absoluteBoundingBox",
		"absoluteRenderBounds", "stuckNodes", "attachedConnectors",
	}
	layoutFields = []string{
		"relativeTransform", "x", "y", "rotation", "width", "height",
		"constrainProportions", "layoutAlign", "layoutGrow", "layoutPositioning",
	}
	blendFields     = []string{"opacity", "blendMode", "isMask", "effects", "effectStyleId"}
	containerFields = []string{"expanded", "backgrounds", "backgroundStyleId"}
	strokeFields    = []string{
		"strokes", "strokeStyleId", "strokeWeight", "strokeJoin", "strokeAlign",
		"dashPattern", "strokeGeometry",
	}
	individualStrokeFields = []string{
		"strokeTopWeight", "strokeBottomWeight", "strokeLeftWeight", "strokeRightWeight",
	}
	fillFields     = []string{"fills", "fillStyleId"}
	geometryFields = concat(strokeFields, fillFields, []string{"strokeCap", "strokeMiterLimit", "fillGeometry"})
	cornerFields   = []string{"cornerRadius", "cornerSmoothing"}
	rectCorners    = []string{"topLeftRadius", "topRightRadius", "bottomLeftRadius", "bottomRightRadius"}
	exportFields   = []string{"exportSettings"}
	constraintsF   = []string{"constraints"}
	reactionFields = []string{"reactions"}
	prototypingF   = []string{
		"overflowDirection", "numberOfFixedChildren", "overlayPositionType",
		"overlayBackground", "overlayBackgroundInteraction",
	}
	vectorFields      = []string{"vectorPaths", "vectorNetwork", "handleMirroring"}
	publishableFields = []string{"description", "documentationLinks", "remote", "key"}
	variantFields     = []string{"variantProperties"}
	definitionFields  = []string{"componentPropertyDefinitions"}
	textFields        = concat(fillFields, []string{
		"characters", "fontSize", "fontName", "fontWeight", "textCase",
		"textDecoration", "letterSpacing", "lineHeight", "hyperlink",
		"paragraphIndent", "paragraphSpacing", "textAlignHorizontal",
		"textAlignVertical", "textAutoResize", "autoRename", "textStyleId",
	})
	autoLayoutFields = []string{
		"layoutMode", "primaryAxisSizingMode", "counterAxisSizingMode",
		"primaryAxisAlignItems", "counterAxisAlignItems", "paddingLeft",
		"paddingRight", "paddingTop", "paddingBottom", "itemSpacing",
		"itemReverseZIndex", "strokesIncludedInLayout", "layoutGrids",
		"gridStyleId", "clipsContent", "guides", "inferredAutoLayout",
	}
)

var (
	sceneBase    = concat(baseFields, sceneFields, liveFields)
	baseFrame    = concat(sceneBase, containerFields, geometryFields, cornerFields, rectCorners, blendFields, constraintsF, layoutFields, exportFields, individualStrokeFields, autoLayoutFields)
	defaultFrame = concat(baseFrame, prototypingF, reactionFields)
	defaultShape = concat(sceneBase, reactionFields, blendFields, geometryFields, layoutFields, exportFields)
	opaqueNode   = concat(sceneBase, exportFields, []string{"relativeTransform", "x", "y", "width", "height"})
)

var schemas = map[NodeType]FieldSet{
	TypeDocument:         newFieldSet(baseFields),
	TypePage:             newFieldSet(baseFields, []string{"backgrounds", "guides", "flowStartingPoints"}, exportFields),
	TypeFrame:            newFieldSet(defaultFrame),
	TypeGroup:            newFieldSet(sceneBase, reactionFields, containerFields, blendFields, layoutFields, exportFields),
	TypeSlice:            newFieldSet(sceneBase, layoutFields, exportFields),
	TypeRectangle:        newFieldSet(defaultShape, constraintsF, cornerFields, rectCorners, individualStrokeFields),
	TypeLine:             newFieldSet(defaultShape, constraintsF),
	TypeEllipse:          newFieldSet(defaultShape, constraintsF, cornerFields, []string{"arcData"}),
	TypePolygon:          newFieldSet(defaultShape, constraintsF, cornerFields, []string{"pointCount"}),
	TypeStar:             newFieldSet(defaultShape, constraintsF, cornerFields, []string{"pointCount", "innerRadius"}),
	TypeVector:           newFieldSet(defaultShape, constraintsF, cornerFields, vectorFields),
	TypeText:             newFieldSet(defaultShape, constraintsF, textFields),
	TypeComponentSet:     newFieldSet(baseFrame, publishableFields, definitionFields),
	TypeComponent:        newFieldSet(defaultFrame, publishableFields, variantFields, definitionFields),
	TypeInstance:         newFieldSet(defaultFrame, variantFields, []string{"mainComponent", "componentProperties", "scaleFactor", "isExposedInstance", "overrides"}),
	TypeBooleanOperation: newFieldSet(defaultShape, cornerFields, []string{"booleanOperation", "expanded"}),
	TypeSticky:           newFieldSet(opaqueNode),
	TypeStamp:            newFieldSet(opaqueNode),
	TypeHighlight:        newFieldSet(opaqueNode),
	TypeWashiTape:        newFieldSet(opaqueNode),
	TypeShapeWithText:    newFieldSet(opaqueNode),
	TypeCodeBlock:        newFieldSet(opaqueNode),
	TypeConnector:        newFieldSet(opaqueNode),
	TypeWidget:           newFieldSet(opaqueNode),
	TypeEmbed:            newFieldSet(opaqueNode),
	TypeLinkUnfurl:       newFieldSet(opaqueNode),
	TypeMedia:            newFieldSet(opaqueNode),
	TypeSection:          newFieldSet(sceneBase, fillFields, []string{"x", "y", "width", "height", "sectionContentsHidden"}),
}

// Schema returns the readable field set of a node kind. Unknown kinds get
// an empty set.
func Schema(t NodeType) FieldSet {
	if s, ok := schemas[t]; ok {
		return s
	}
	return newFieldSet()
}

// LiveOnly reports whether a field describes the node's place in a live
// document (parent link, absolute coordinates) and has no meaning once
// serialized.
func LiveOnly(name string) bool {
	return liveOnly[name]
}

var liveOnly = setOf(liveFields...)

// ReadOnly reports whether the host refuses to assign a field directly.
// Read-only fields are either computed or changed through a dedicated
// operation (resize, component properties, plugin data).
func ReadOnly(name string) bool {
	return readOnly[name]
}

var readOnly = setOf(append([]string{
	"id", "type", "children", "width", "height", "pluginData",
	"fontWeight", "variantProperties", "componentProperties", "overrides",
	"mainComponent", "remote", "key", "componentPropertyDefinitions",
	"inferredAutoLayout", "vectorNetwork", "overlayPositionType",
	"overlayBackground", "overlayBackgroundInteraction", "fillGeometry",
	"strokeGeometry", "isExposedInstance", "componentPropertyReferences",
}, liveFields...)...)

// GeometryFields are the path and transform fields whose cost is only paid
// when a dump asks for paths.
var GeometryFields = []string{"fillGeometry", "strokeGeometry", "relativeTransform"}

// IsGeometryField reports whether name is one of [GeometryFields].
func IsGeometryField(name string) bool { return geometrySet[name] }

var geometrySet = setOf(GeometryFields...)

func concat(parts ...[]string) []string {
	var out []string
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

func setOf(names ...string) map[string]bool {
	m := make(map[string]bool, len(names))
	for _, n := range names {
		m[n] = true
	}
	return m
}
