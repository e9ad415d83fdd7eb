// Package memhost is an in-memory design document implementing every
// capability in package host.
//
// A [Document] holds pages of nodes, the fonts that can be loaded, image
// bytes keyed by content hash, local styles and a component/style library
// standing in for published team libraries. It enforces the rules a real
// host enforces, so code exercised against it fails the same way it would
// in production:
//
//   - unknown and read-only fields are rejected by SetField
//   - text properties need the node's font to be loaded first
//   - itemReverseZIndex and strokesIncludedInLayout need auto layout
//   - resizing below 0.01 on either axis is rejected
//   - grouping needs at least one node
//
// Documents round-trip through [Snapshot], the JSON form used by the CLI to
// keep a headless document on disk.
package memhost
