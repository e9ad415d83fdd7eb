// Package scene defines the portable data model shared by dump and insert.
//
// # Overview
//
// A design document is a forest of scene nodes (frames, shapes, text,
// components, instances...). This package describes the serialized form of
// those nodes and the side tables that travel with them:
//
//   - [Node]: one serialized scene node. Its JSON form is a single flat object
//     holding "type", every kept field, and "children" for container kinds.
//     The parent link is never serialized, so the JSON form is always a tree.
//   - [Document]: the root artifact produced by a dump and consumed by an
//     insert. It carries the root nodes plus the components, component sets,
//     styles and image bytes the nodes reference.
//
// # Field Sets
//
// Instead of asking a live object which fields it happens to have, every node
// kind declares its complete readable field set up front (see [Schema]).
// The field sets are composed from the same mixins the host object model
// uses (layout, blend, geometry, corner, frame, text...), so the union of
// "own" and "inherited" fields is known at compile time.
//
// # Mixed Values
//
// Some fields hold heterogeneous values across a text range or selection.
// The host represents that with a marker value ([Mixed]); because the marker
// is not JSON, both sides of the round trip use the namespaced sentinel
// string [MixedValue] in its place.
//
// # Wire Format
//
//	{
//	  "objects": [{"type": "RECTANGLE", "id": "1:2", "name": "Rectangle", "width": 100, ...}],
//	  "components": {"10:1": {"key": "abc", "name": "Button", ...}},
//	  "componentSets": {},
//	  "styles": {},
//	  "images": {"<hash>": "<base64 bytes>"}
//	}
//
// Image bytes are base64 encoded by encoding/json; the hash keys are stored
// verbatim.
package scene
