package review

import (
	"github.com/dshills/redline/text"
)

// Record tracks one active review: the span of original text, the text
// captured from it at creation, and the span of the inserted improved
// text. Offsets are kept current by the registry, which remaps them
// through every document change.
//
// For a live record originalFrom <= originalTo <= insertedFrom <=
// insertedTo, and [insertedFrom, insertedTo) holds exactly the improved
// text inserted for it, until edits that touch the spans themselves
// invalidate this by construction.
type Record struct {
	ID            string
	OriginalFrom  int
	OriginalTo    int
	OriginalText  string
	InsertedFrom  int
	InsertedTo    int
	OriginalClass string
	ImprovedClass string
}

// OriginalRange returns the current range of the original span.
func (r Record) OriginalRange() text.Range {
	return text.NewRange(r.OriginalFrom, r.OriginalTo)
}

// InsertedRange returns the current range of the inserted improved span.
func (r Record) InsertedRange() text.Range {
	return text.NewRange(r.InsertedFrom, r.InsertedTo)
}

// TargetKind says how a request addresses the document.
type TargetKind uint8

const (
	// TargetNone marks a request with no addressable span; such a
	// request is skipped.
	TargetNone TargetKind = iota
	// TargetLines addresses whole lines by 1-indexed line numbers.
	TargetLines
	// TargetOffsets addresses an explicit byte range.
	TargetOffsets
)

// Target selects the document span a review applies to. The zero value
// selects nothing.
type Target struct {
	Kind     TargetKind
	FromLine int
	ToLine   int
	From     int
	To       int
}

// Line targets a single 1-indexed line.
func Line(n int) Target {
	return Target{Kind: TargetLines, FromLine: n, ToLine: n}
}

// Lines targets the whole lines from..to, 1-indexed and inclusive.
func Lines(from, to int) Target {
	return Target{Kind: TargetLines, FromLine: from, ToLine: to}
}

// Offsets targets the byte range [from, to).
func Offsets(from, to int) Target {
	return Target{Kind: TargetOffsets, From: from, To: to}
}

// resolve captures the target's span against the document. Line numbers
// and offsets are clamped rather than rejected; only a TargetNone
// request fails to resolve.
func (t Target) resolve(d *text.Document) (text.Span, bool) {
	switch t.Kind {
	case TargetLines:
		return text.SpanForLines(d, t.FromLine, t.ToLine), true
	case TargetOffsets:
		return text.SpanForRange(d, t.From, t.To), true
	default:
		return text.Span{}, false
	}
}

// Request asks for one review: mark the targeted span as original and
// insert Improved directly after it. ID is optional; the controller
// generates one when absent. The class names are optional; a span with
// no class gets no decoration.
type Request struct {
	Target        Target
	Improved      string
	ID            string
	OriginalClass string
	ImprovedClass string
}
