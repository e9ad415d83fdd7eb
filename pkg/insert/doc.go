// Package insert recreates a [scene.Document] through a host's node API.
//
// Insert runs in three phases:
//
//  1. Resolve. Fonts used by text nodes, the document's components and its
//     styles are loaded concurrently. Fonts that cannot be loaded get a
//     replacement (see package resolve).
//  2. Images. Every image of the document is created on the host, which
//     assigns its own hash; the node trees are copied and their paints
//     rewritten to the new hashes. The caller's document is never modified.
//  3. Build. Nodes are recreated depth first. Each node kind has its own
//     recipe (containers set layout mode before anything else, text sets its
//     font first, instances are created from their resolved component and
//     then receive property values and per-descendant overrides). All other
//     fields are assigned one by one; fields the host rejects are logged and
//     recorded without stopping the insert.
//
// Root nodes are finally shifted by Options.Offset and renamed with
// Options.NameSuffix.
//
// Insert is best effort: only an unencodable font name aborts it. Nodes
// that cannot be created are reported in Result.Skipped, rejected fields in
// Result.Rejected.
package insert
