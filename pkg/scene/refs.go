package scene

// StyleIDFields name the fields holding a style id.
var StyleIDFields = []string{
	"fillStyleId", "strokeStyleId", "effectStyleId",
	"gridStyleId", "backgroundStyleId", "textStyleId",
}

// PaintFields name the fields holding a paint list.
var PaintFields = []string{"fills", "strokes", "backgrounds"}

var (
	styleIDSet = setOf(StyleIDFields...)
	paintSet   = setOf(PaintFields...)
)

// IsStyleIDField reports whether name is one of [StyleIDFields].
func IsStyleIDField(name string) bool { return styleIDSet[name] }

// IsPaintField reports whether name is one of [PaintFields].
func IsPaintField(name string) bool { return paintSet[name] }

const (
	paintImage = "IMAGE"
	paintVideo = "VIDEO"
)

// ImageHashes returns the image hashes referenced by a paint list, in order.
// Mixed values and non-image paints contribute nothing.
func ImageHashes(paints any) []string {
	var hashes []string
	eachPaint(paints, func(p map[string]any) {
		if p["type"] != paintImage {
			return
		}
		if h, ok := p["imageHash"].(string); ok && h != "" && !IsMixed(h) {
			hashes = append(hashes, h)
		}
	})
	return hashes
}

// RewriteImageHashes replaces the imageHash of IMAGE paints in the paint
// fields of n and its descendants according to table. VIDEO paints are left
// alone; their bytes are never embedded. Hashes missing from table are left
// unchanged. The rewrite happens in place.
func RewriteImageHashes(n *Node, table map[string]string) {
	n.Walk(func(c *Node) bool {
		for _, field := range PaintFields {
			eachPaint(c.Fields[field], func(p map[string]any) {
				if p["type"] != paintImage {
					return
				}
				if h, ok := p["imageHash"].(string); ok {
					if repl, ok := table[h]; ok {
						p["imageHash"] = repl
					}
				}
			})
		}
		return true
	})
}

// HasVideo reports whether a paint list references a video.
func HasVideo(paints any) bool {
	found := false
	eachPaint(paints, func(p map[string]any) {
		if p["type"] == paintVideo {
			found = true
		}
	})
	return found
}

func eachPaint(paints any, fn func(map[string]any)) {
	switch list := paints.(type) {
	case []any:
		for _, item := range list {
			if p, ok := item.(map[string]any); ok {
				fn(p)
			}
		}
	case []map[string]any:
		for _, p := range list {
			fn(p)
		}
	}
}
