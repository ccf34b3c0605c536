package text

import "fmt"

// Range represents a byte range in a document.
// From is inclusive, To is exclusive: [From, To).
type Range struct {
	From int // Inclusive start offset
	To   int // Exclusive end offset
}

// NewRange creates a new Range from start and end offsets.
func NewRange(from, to int) Range {
	return Range{From: from, To: to}
}

// String returns a human-readable representation of the range.
func (r Range) String() string {
	return fmt.Sprintf("[%d:%d)", r.From, r.To)
}

// Len returns the length of the range in bytes.
func (r Range) Len() int {
	return r.To - r.From
}

// IsEmpty returns true if the range has zero length.
func (r Range) IsEmpty() bool {
	return r.From == r.To
}

// IsValid returns true if the range is ordered (From <= To).
func (r Range) IsValid() bool {
	return r.From <= r.To
}

// Contains returns true if the given offset is within the range.
func (r Range) Contains(offset int) bool {
	return offset >= r.From && offset < r.To
}

// Overlaps returns true if this range overlaps with another range.
// Empty ranges never overlap anything.
func (r Range) Overlaps(other Range) bool {
	if r.IsEmpty() || other.IsEmpty() {
		return false
	}
	return r.From < other.To && other.From < r.To
}

// Clamp restricts the range to [0, limit], preserving ordering.
func (r Range) Clamp(limit int) Range {
	from, to := r.From, r.To
	if from < 0 {
		from = 0
	}
	if from > limit {
		from = limit
	}
	if to < from {
		to = from
	}
	if to > limit {
		to = limit
	}
	return Range{From: from, To: to}
}

// Span is a byte range plus the 1-indexed line range it covered in the
// document revision it was captured against. Once that document changes,
// the offsets must be remapped through the change before reuse.
type Span struct {
	From     int // Inclusive start offset
	To       int // Exclusive end offset
	FromLine int // 1-indexed line containing From
	ToLine   int // 1-indexed line containing To
}

// Range returns the span's byte range.
func (s Span) Range() Range {
	return Range{From: s.From, To: s.To}
}

// IsEmpty returns true if the span covers no text.
func (s Span) IsEmpty() bool {
	return s.From == s.To
}

// String returns a human-readable representation of the span.
func (s Span) String() string {
	return fmt.Sprintf("[%d:%d) lines %d..%d", s.From, s.To, s.FromLine, s.ToLine)
}

// SpanForLines captures the span covering whole lines fromLine..toLine of
// the document. Line numbers are clamped to [1, LineCount] and reordered
// if reversed. The resulting To excludes the trailing newline of toLine.
func SpanForLines(d *Document, fromLine, toLine int) Span {
	if fromLine > toLine {
		fromLine, toLine = toLine, fromLine
	}
	fromLine = clampLine(d, fromLine)
	toLine = clampLine(d, toLine)

	first := d.mustLine(fromLine)
	last := d.mustLine(toLine)
	return Span{
		From:     first.From,
		To:       last.To,
		FromLine: fromLine,
		ToLine:   toLine,
	}
}

// SpanForRange captures the span for an explicit byte range, deriving the
// line numbers from the document. Offsets are clamped to the document and
// reordered if reversed.
func SpanForRange(d *Document, from, to int) Span {
	if from > to {
		from, to = to, from
	}
	r := Range{From: from, To: to}.Clamp(d.Len())
	return Span{
		From:     r.From,
		To:       r.To,
		FromLine: d.LineAt(r.From).Number,
		ToLine:   d.LineAt(r.To).Number,
	}
}

// clampLine restricts a 1-indexed line number to the document.
func clampLine(d *Document, line int) int {
	if line < 1 {
		return 1
	}
	if n := d.LineCount(); line > n {
		return n
	}
	return line
}
