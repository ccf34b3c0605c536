// Package overlay defines the decoration vocabulary a host rendering
// layer consumes: marks that style a range, line classes, point widgets,
// and block replacements that substitute rendered content for a span.
//
// Decorations carry positions in a specific document revision. They are
// grouped into an ordered, non-overlapping Set; a Set can be translated
// through a text.ChangeSet so it stays aligned with the document, though
// extensions normally regenerate their sets from source state after every
// transaction instead of caching them.
//
// The package renders nothing itself. Each decoration is a directive
// (range, class name, optional content) for the host to draw.
package overlay
