// Package dump serializes live scene nodes into a [scene.Document].
//
// # Walk
//
// [Dump] visits every requested node in pre-order. For each node it
// enumerates the node kind's field set (see [scene.Schema]), drops the
// fields rejected by [policy.KeepOnRead], and converts the remaining values
// into JSON-compatible data:
//
//   - lists and objects are converted element by element
//   - nested nodes are replaced by their id
//   - the host's mixed marker becomes [scene.MixedValue]
//   - function values are dropped
//
// Invisible nodes (visible false, opacity at or below 0.001, or removed)
// are skipped together with their subtrees unless
// Options.SkipInvisibleNodes is false.
//
// # Side Tables
//
// While walking, the serializer records what the nodes reference:
//
//   - image hashes found in fills, strokes and backgrounds
//   - styles named by style-id fields (when Options.Styles is set)
//   - the main component (and its set) of every instance, which is written
//     to the node as "componentId"
//
// After the walk, when Options.Images is set, every recorded image is
// fetched concurrently. A single missing image fails the whole dump.
package dump
