package text

import (
	"errors"
	"sort"
	"strings"
)

// Errors returned by document operations.
var (
	ErrOffsetOutOfRange = errors.New("offset out of range")
	ErrLineOutOfRange   = errors.New("line out of range")
	ErrRangeInvalid     = errors.New("invalid range")
	ErrEditsOverlap     = errors.New("edits overlap")
)

// Document is an immutable text value with an eager line index.
// Methods never mutate the receiver; Apply returns a new Document.
// An empty document has exactly one empty line.
type Document struct {
	content    string
	lineStarts []int // offset of the first byte of each line; lineStarts[0] == 0
}

// NewDocument creates a document from its full content.
func NewDocument(content string) *Document {
	starts := make([]int, 1, strings.Count(content, "\n")+1)
	starts[0] = 0
	for i := 0; i < len(content); i++ {
		if content[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &Document{content: content, lineStarts: starts}
}

// String returns the full document content.
func (d *Document) String() string {
	return d.content
}

// Len returns the total byte length of the document.
func (d *Document) Len() int {
	return len(d.content)
}

// LineCount returns the number of lines. Never less than 1.
func (d *Document) LineCount() int {
	return len(d.lineStarts)
}

// Line describes one line of a document. From is the offset of the first
// byte; To is the offset just past the last byte, excluding the newline.
type Line struct {
	Number int // 1-indexed line number
	From   int // Inclusive start offset
	To     int // Exclusive end offset, before the newline
}

// Len returns the line length in bytes, excluding the newline.
func (l Line) Len() int {
	return l.To - l.From
}

// Line returns the nth line, 1-indexed.
func (d *Document) Line(n int) (Line, error) {
	if n < 1 || n > len(d.lineStarts) {
		return Line{}, ErrLineOutOfRange
	}
	return d.mustLine(n), nil
}

// mustLine returns the nth line; n must already be in range.
func (d *Document) mustLine(n int) Line {
	from := d.lineStarts[n-1]
	to := len(d.content)
	if n < len(d.lineStarts) {
		to = d.lineStarts[n] - 1
	}
	return Line{Number: n, From: from, To: to}
}

// LineAt returns the line containing the given offset. A line's end
// position belongs to that line, so for a line [from, to] any offset with
// from <= offset <= to resolves to it. The offset is clamped to the
// document.
func (d *Document) LineAt(offset int) Line {
	if offset < 0 {
		offset = 0
	}
	if offset > len(d.content) {
		offset = len(d.content)
	}
	// Find the last line starting at or before offset.
	n := sort.Search(len(d.lineStarts), func(i int) bool {
		return d.lineStarts[i] > offset
	})
	return d.mustLine(n)
}

// LineText returns the text of the nth line without its newline.
func (d *Document) LineText(n int) (string, error) {
	l, err := d.Line(n)
	if err != nil {
		return "", err
	}
	return d.content[l.From:l.To], nil
}

// Slice returns the text between two offsets, clamped to the document
// and reordered if reversed.
func (d *Document) Slice(from, to int) string {
	if from > to {
		from, to = to, from
	}
	r := Range{From: from, To: to}.Clamp(len(d.content))
	return d.content[r.From:r.To]
}

// IsEmpty returns true if the document has no content.
func (d *Document) IsEmpty() bool {
	return len(d.content) == 0
}

// Apply applies a batch of edits atomically and returns the resulting
// document together with the ChangeSet describing the transition. Edits
// are normalized to ascending order; ranges must be valid, within the
// document, and non-overlapping (touching ranges are fine). On error the
// receiver is returned unchanged with a nil ChangeSet.
func (d *Document) Apply(edits []Edit) (*Document, *ChangeSet, error) {
	if len(edits) == 0 {
		return d, &ChangeSet{oldLen: len(d.content), newLen: len(d.content)}, nil
	}

	sorted, err := normalizeEdits(edits, len(d.content))
	if err != nil {
		return d, nil, err
	}

	var b strings.Builder
	grow := len(d.content)
	for _, e := range sorted {
		grow += len(e.Insert)
	}
	b.Grow(grow)

	last := 0
	for _, e := range sorted {
		b.WriteString(d.content[last:e.Range.From])
		b.WriteString(e.Insert)
		last = e.Range.To
	}
	b.WriteString(d.content[last:])

	next := NewDocument(b.String())
	cs := &ChangeSet{edits: sorted, oldLen: len(d.content), newLen: next.Len()}
	return next, cs, nil
}

// normalizeEdits sorts a copy of edits into ascending order and validates
// bounds and non-overlap against a document of the given length. Multiple
// insertions at the same offset are allowed and keep their given order.
func normalizeEdits(edits []Edit, limit int) ([]Edit, error) {
	sorted := make([]Edit, len(edits))
	copy(sorted, edits)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Range.From < sorted[j].Range.From
	})

	for i, e := range sorted {
		if !e.Range.IsValid() || e.Range.From < 0 || e.Range.To > limit {
			return nil, ErrRangeInvalid
		}
		if i > 0 && sorted[i-1].Range.To > e.Range.From {
			return nil, ErrEditsOverlap
		}
	}
	return sorted, nil
}
