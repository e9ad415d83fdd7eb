// Package io reads and writes the JSON files figmajson works with.
//
// # Documents
//
// A document is the output of a dump and the input of an insert:
//
//	{
//	  "objects": [
//	    {"type": "RECTANGLE", "name": "Box", "x": 0, "y": 0, "width": 40, "height": 40}
//	  ],
//	  "components": {},
//	  "componentSets": {},
//	  "styles": {},
//	  "images": {"<hash>": "<base64 bytes>"}
//	}
//
// Node fields are flat, children are nested under "children", and fields
// whose value differs across a selection hold the string
// "__Symbol(figma.mixed)__".
//
// Use [ImportDocument] to read a document from a file path, or
// [ReadDocument] to read from any io.Reader. Both reject unknown node types
// and fill missing side tables with empty maps, so a decoded document is
// always safe to insert. [WriteDocument] and [ExportDocument] write indented
// JSON that re-imports identically.
//
// # Scenes
//
// A scene is a whole headless design file (pages, fonts, images, styles and
// a component library) backing [memhost.Document]. The CLI and the bridge
// dump from and insert into scenes. See [LoadScene] and [SaveScene].
//
// [memhost.Document]: github.com/matzehuels/figmajson/pkg/host/memhost.Document
package io
