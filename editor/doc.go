// Package editor hosts the transaction machinery extensions build on.
//
// A Session owns one immutable text.Document at a time. All changes go
// through Dispatch as a Transaction: a batch of edits plus typed effects.
// Dispatch applies the edits, advances the document, hands the resulting
// Update to every registered Handler (extensions reduce their state here,
// remapping stored positions through Update.Changes before applying
// effects), then notifies update listeners. Dispatch is synchronous and
// single-threaded; dispatching from inside a handler or listener fails
// with ErrReentrantDispatch.
//
// Decorations are pulled, not pushed: each DecorationSource regenerates
// its overlay.Set from extension state when the session is queried, so
// sources never go stale after an edit.
package editor
