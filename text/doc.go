// Package text provides the immutable document model the rest of the
// module is built on.
//
// A Document is a value: applying edits never mutates it, but instead
// produces a new Document together with a ChangeSet describing what
// changed. Positions are 0-based byte offsets and lines are 1-indexed.
// Offsets captured against one Document are only meaningful for that
// revision; a ChangeSet translates them forward via MapPos and MapRange
// so state layered on the document (selections, highlights, review
// records) can follow the text it refers to across edits.
package text
