// Package resolve loads the fonts, components and styles a document
// references before insert recreates its nodes.
//
// Each loader fans out one goroutine per item and waits for all of them.
// Failures never abort a batch: every item ends up as an [Outcome] in the
// batch's [Report], and the caller decides what to do with the failures.
//
// # Fonts
//
// [LoadFonts] tries every requested font. A font that fails to load is
// replaced by the first fallback with the same style, or by the first
// fallback when no style matches. If the replacement fails too, the font is
// mapped to the first fallback anyway so text is never left without a font.
//
// # Components and Styles
//
// [LoadComponents] imports each component by its publish key and falls back
// to a local lookup by id. [LoadStyles] imports styles by key so that
// style-id fields assigned later refer to existing styles.
package resolve
