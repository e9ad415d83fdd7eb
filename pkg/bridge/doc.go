// Package bridge answers UI messages against a headless scene.
//
// A [Dispatcher] implements the message protocol of package message:
//
//   - ready: reply with an update (a dump of the current selection) and the
//     most recent insert text.
//   - insert: recreate the document, select the created nodes, copy the
//     document to the clipboard, then reply didInsert, the new insert text
//     and an update of the new selection.
//   - logDefaults: log the default layer of every node kind.
//
// [NewRouter] exposes a dispatcher over HTTP with chi, and [Serve] runs it
// until its context is canceled.
package bridge
