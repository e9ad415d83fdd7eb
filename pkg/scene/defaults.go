package scene

// Default layers for environments without a live host (tests, headless
// documents, API clients). The values mirror what the host reports for a
// freshly created node of each kind.

const defaultGrey = 0.8509804010391235

// DefaultTypes lists the kinds that have a default layer, in table order.
var DefaultTypes = []NodeType{
	TypeRectangle, TypeLine, TypeEllipse, TypePolygon, TypeStar, TypeVector,
	TypeText, TypeFrame, TypePage, TypeGroup, TypeComponent, TypeInstance,
	TypeBooleanOperation,
}

// DefaultNode returns a fresh default layer of the given kind. The returned
// node is owned by the caller.
func DefaultNode(t NodeType) (*Node, bool) {
	build, ok := defaultBuilders[t]
	if !ok {
		return nil, false
	}
	n := &Node{Type: t, Fields: build()}
	if t.HasChildren() {
		n.Children = []*Node{}
	}
	return n, true
}

var defaultBuilders = map[NodeType]func() map[string]any{
	TypeRectangle: func() map[string]any {
		f := shapeDefaults("Rectangle", solid(defaultGrey, 1), nil, "INSIDE", 100, 100)
		f["fillGeometry"] = pathGeometry("M0 0L100 0L100 100L0 100L0 0Z")
		merge(f, cornerDefaults(), rectCornerDefaults(), individualStrokeDefaults())
		return f
	},
	TypeLine: func() map[string]any {
		f := shapeDefaults("Line", nil, solid(0, 1), "CENTER", 100, 0)
		f["strokeGeometry"] = pathGeometry("M0 0L100 0L100 -1L0 -1L0 0Z")
		return f
	},
	TypeEllipse: func() map[string]any {
		f := shapeDefaults("Ellipse", solid(defaultGrey, 1), nil, "INSIDE", 100, 100)
		f["fillGeometry"] = pathGeometry("M100 50C100 77.6142 77.6142 100 50 100C22.3858 100 0 77.6142 0 50C0 22.3858 22.3858 0 50 0C77.6142 0 100 22.3858 100 50Z")
		f["arcData"] = map[string]any{"startingAngle": 0.0, "endingAngle": 6.2831854820251465, "innerRadius": 0.0}
		merge(f, cornerDefaults())
		return f
	},
	TypePolygon: func() map[string]any {
		f := shapeDefaults("Polygon", solid(defaultGrey, 1), nil, "INSIDE", 100, 100)
		f["fillGeometry"] = pathGeometry("M50 0L93.3013 75L6.69873 75L50 0Z")
		f["pointCount"] = 3.0
		merge(f, cornerDefaults())
		return f
	},
	TypeStar: func() map[string]any {
		f := shapeDefaults("Star", solid(defaultGrey, 1), nil, "INSIDE", 100, 100)
		f["fillGeometry"] = pathGeometry("M50 0L61.2257 34.5491L97.5528 34.5491L68.1636 55.9017L79.3893 90.4509L50 69.0983L20.6107 90.4509L31.8364 55.9017L2.44717 34.5491L38.7743 34.5491L50 0Z")
		f["pointCount"] = 5.0
		f["innerRadius"] = 0.3819660246372223
		merge(f, cornerDefaults())
		return f
	},
	TypeVector: func() map[string]any {
		f := shapeDefaults("Vector", nil, solid(0, 1), "CENTER", 100, 100)
		f["vectorPaths"] = []any{}
		f["handleMirroring"] = "NONE"
		merge(f, cornerDefaults())
		return f
	},
	TypeText: func() map[string]any {
		f := shapeDefaults("Text", solid(0, 1), nil, "OUTSIDE", 0, 15)
		merge(f, map[string]any{
			"characters":          "",
			"fontSize":            12.0,
			"paragraphIndent":     0.0,
			"paragraphSpacing":    0.0,
			"textCase":            "ORIGINAL",
			"textDecoration":      "NONE",
			"letterSpacing":       map[string]any{"unit": "PERCENT", "value": 0.0},
			"lineHeight":          map[string]any{"unit": "AUTO"},
			"fontName":            map[string]any{"family": "Inter", "style": "Regular"},
			"fontWeight":          400.0,
			"hyperlink":           nil,
			"autoRename":          true,
			"textAlignHorizontal": "LEFT",
			"textAlignVertical":   "TOP",
			"textAutoResize":      "WIDTH_AND_HEIGHT",
			"textStyleId":         "",
		})
		return f
	},
	TypeFrame:     func() map[string]any { return frameDefaults("Frame") },
	TypeComponent: componentDefaults,
	TypeInstance: func() map[string]any {
		f := frameDefaults("Instance")
		merge(f, map[string]any{
			"componentProperties": map[string]any{},
			"scaleFactor":         1.0,
			"isExposedInstance":   false,
			"overrides":           []any{},
		})
		return f
	},
	TypeGroup: func() map[string]any {
		f := sceneDefaults("Group")
		merge(f, blendDefaults(), layoutDefaults(0, 0), map[string]any{
			"expanded":          true,
			"backgrounds":       []any{},
			"backgroundStyleId": "",
			"exportSettings":    []any{},
			"reactions":         []any{},
		})
		return f
	},
	TypeBooleanOperation: func() map[string]any {
		f := shapeDefaults("Union", solid(defaultGrey, 1), nil, "INSIDE", 0, 0)
		f["booleanOperation"] = "UNION"
		f["expanded"] = false
		delete(f, "constraints")
		merge(f, cornerDefaults())
		return f
	},
	TypePage: func() map[string]any {
		return map[string]any{
			"id":                 "_",
			"name":               "Page",
			"guides":             []any{},
			"backgrounds":        solid(0.9624999761581421, 1),
			"exportSettings":     []any{},
			"flowStartingPoints": []any{},
		}
	},
}

func componentDefaults() map[string]any {
	f := frameDefaults("Component")
	merge(f, map[string]any{
		"description":                  "",
		"documentationLinks":           []any{},
		"remote":                       false,
		"key":                          "",
		"componentPropertyDefinitions": map[string]any{},
	})
	return f
}

func sceneDefaults(name string) map[string]any {
	return map[string]any{
		"id":                          "_",
		"name":                        name,
		"visible":                     true,
		"locked":                      false,
		"componentPropertyReferences": nil,
	}
}

func blendDefaults() map[string]any {
	return map[string]any{
		"opacity":       1.0,
		"blendMode":     "PASS_THROUGH",
		"isMask":        false,
		"effects":       []any{},
		"effectStyleId": "",
	}
}

func layoutDefaults(width, height float64) map[string]any {
	return map[string]any{
		"relativeTransform":    identityTransform(),
		"x":                    0.0,
		"y":                    0.0,
		"width":                width,
		"height":               height,
		"rotation":             0.0,
		"layoutAlign":          "INHERIT",
		"constrainProportions": false,
		"layoutGrow":           0.0,
		"layoutPositioning":    "AUTO",
	}
}

func geometryDefaults(fills, strokes []any, strokeAlign string) map[string]any {
	if fills == nil {
		fills = []any{}
	}
	if strokes == nil {
		strokes = []any{}
	}
	return map[string]any{
		"fills":            fills,
		"fillStyleId":      "",
		"strokes":          strokes,
		"strokeStyleId":    "",
		"strokeWeight":     1.0,
		"strokeAlign":      strokeAlign,
		"strokeJoin":       "MITER",
		"dashPattern":      []any{},
		"strokeCap":        "NONE",
		"strokeMiterLimit": 4.0,
		"fillGeometry":     []any{},
		"strokeGeometry":   []any{},
	}
}

func shapeDefaults(name string, fills, strokes []any, strokeAlign string, width, height float64) map[string]any {
	f := sceneDefaults(name)
	merge(f, blendDefaults(), geometryDefaults(fills, strokes, strokeAlign), layoutDefaults(width, height), map[string]any{
		"exportSettings": []any{},
		"constraints":    map[string]any{"horizontal": "MIN", "vertical": "MIN"},
		"reactions":      []any{},
	})
	return f
}

func frameDefaults(name string) map[string]any {
	f := shapeDefaults(name, solid(1, 1), nil, "INSIDE", 100, 100)
	f["fillGeometry"] = pathGeometry("M0 0L100 0L100 100L0 100L0 0Z")
	merge(f, cornerDefaults(), rectCornerDefaults(), individualStrokeDefaults(), map[string]any{
		"paddingLeft":                  0.0,
		"paddingRight":                 0.0,
		"paddingTop":                   0.0,
		"paddingBottom":                0.0,
		"primaryAxisAlignItems":        "MIN",
		"counterAxisAlignItems":        "MIN",
		"primaryAxisSizingMode":        "AUTO",
		"counterAxisSizingMode":        "FIXED",
		"layoutGrids":                  []any{},
		"gridStyleId":                  "",
		"backgrounds":                  solid(1, 1),
		"backgroundStyleId":            "",
		"clipsContent":                 true,
		"guides":                       []any{},
		"expanded":                     true,
		"layoutMode":                   "NONE",
		"itemSpacing":                  0.0,
		"overflowDirection":            "NONE",
		"numberOfFixedChildren":        0.0,
		"overlayPositionType":          "CENTER",
		"overlayBackground":            map[string]any{"type": "NONE"},
		"overlayBackgroundInteraction": "NONE",
		"itemReverseZIndex":            false,
		"strokesIncludedInLayout":      false,
	})
	return f
}

func cornerDefaults() map[string]any {
	return map[string]any{"cornerRadius": 0.0, "cornerSmoothing": 0.0}
}

func rectCornerDefaults() map[string]any {
	return map[string]any{
		"topLeftRadius":     0.0,
		"topRightRadius":    0.0,
		"bottomLeftRadius":  0.0,
		"bottomRightRadius": 0.0,
	}
}

func individualStrokeDefaults() map[string]any {
	return map[string]any{
		"strokeTopWeight":    1.0,
		"strokeBottomWeight": 1.0,
		"strokeLeftWeight":   1.0,
		"strokeRightWeight":  1.0,
	}
}

// solid returns a one-element paint list with a grey solid paint.
func solid(grey, opacity float64) []any {
	return []any{map[string]any{
		"type":      "SOLID",
		"visible":   true,
		"opacity":   opacity,
		"blendMode": "NORMAL",
		"color":     map[string]any{"r": grey, "g": grey, "b": grey},
	}}
}

func pathGeometry(data string) []any {
	return []any{map[string]any{"windingRule": "NONZERO", "data": data}}
}

func identityTransform() []any {
	return []any{[]any{1.0, 0.0, 0.0}, []any{0.0, 1.0, 0.0}}
}

func merge(dst map[string]any, srcs ...map[string]any) {
	for _, src := range srcs {
		for k, v := range src {
			dst[k] = v
		}
	}
}
