package overlay

import (
	"strings"

	"github.com/dshills/redline/text"
)

// Kind identifies a decoration variety.
type Kind uint8

const (
	// KindMark styles a non-empty range of text with a class.
	KindMark Kind = iota
	// KindLine attaches a class to the whole line containing its anchor.
	KindLine
	// KindWidget inserts rendered content at a point without consuming text.
	KindWidget
	// KindReplace substitutes rendered content for a range of text.
	KindReplace
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindMark:
		return "mark"
	case KindLine:
		return "line"
	case KindWidget:
		return "widget"
	case KindReplace:
		return "replace"
	default:
		return "unknown"
	}
}

// Priority orders decorations that start at the same position. Higher
// priorities sort first and win overlap conflicts.
type Priority int

const (
	PriorityLow    Priority = 50
	PriorityNormal Priority = 100
	PriorityHigh   Priority = 150
)

// Side places widget content relative to its anchor position.
type Side uint8

const (
	// SideBefore renders the widget before the character at its position.
	SideBefore Side = iota
	// SideAfter renders the widget after the preceding character.
	SideAfter
)

// Decoration is a single rendering directive. Implementations are
// immutable; Map returns a translated copy rather than mutating.
type Decoration interface {
	// Kind reports the decoration variety.
	Kind() Kind
	// Range is the document range the decoration covers. Point
	// decorations (widgets, line classes) return an empty range at
	// their anchor.
	Range() text.Range
	// Class is the style class the host should apply.
	Class() string
	// Priority breaks ties between decorations at the same position.
	Priority() Priority
	// Map translates the decoration through a change set. It reports
	// false when the decorated text no longer exists.
	Map(cs *text.ChangeSet) (Decoration, bool)
}

// Mark styles a range of existing text with a class.
type Mark struct {
	rng      text.Range
	class    string
	priority Priority
}

// NewMark returns a mark over [from, to) with the given class.
func NewMark(from, to int, class string) *Mark {
	return &Mark{rng: text.NewRange(from, to), class: class, priority: PriorityNormal}
}

// WithPriority returns a copy of the mark with the given priority.
func (m *Mark) WithPriority(p Priority) *Mark {
	c := *m
	c.priority = p
	return &c
}

func (m *Mark) Kind() Kind         { return KindMark }
func (m *Mark) Range() text.Range  { return m.rng }
func (m *Mark) Class() string      { return m.class }
func (m *Mark) Priority() Priority { return m.priority }

// Map translates the mark. A mark whose range collapses is dropped.
func (m *Mark) Map(cs *text.ChangeSet) (Decoration, bool) {
	r := cs.MapRange(m.rng)
	if r.IsEmpty() {
		return nil, false
	}
	c := *m
	c.rng = r
	return &c, true
}

// LineMark attaches a class to the whole line containing its anchor
// position. The anchor is conventionally the first offset of the line.
type LineMark struct {
	pos      int
	class    string
	priority Priority
}

// NewLineMark returns a line decoration anchored at pos.
func NewLineMark(pos int, class string) *LineMark {
	return &LineMark{pos: pos, class: class, priority: PriorityNormal}
}

// WithPriority returns a copy of the line mark with the given priority.
func (l *LineMark) WithPriority(p Priority) *LineMark {
	c := *l
	c.priority = p
	return &c
}

// Pos is the anchor offset.
func (l *LineMark) Pos() int { return l.pos }

func (l *LineMark) Kind() Kind         { return KindLine }
func (l *LineMark) Range() text.Range  { return text.NewRange(l.pos, l.pos) }
func (l *LineMark) Class() string      { return l.class }
func (l *LineMark) Priority() Priority { return l.priority }

// Map translates the anchor. Line marks survive edits; if their line is
// deleted the anchor lands on the line that replaced it.
func (l *LineMark) Map(cs *text.ChangeSet) (Decoration, bool) {
	c := *l
	c.pos = cs.MapPos(l.pos, text.BiasBefore)
	return &c, true
}

// Widget inserts host-rendered content at a point in the text.
type Widget struct {
	pos      int
	content  string
	class    string
	side     Side
	priority Priority
}

// NewWidget returns a widget anchored at pos rendering content.
func NewWidget(pos int, content, class string, side Side) *Widget {
	return &Widget{pos: pos, content: content, class: class, side: side, priority: PriorityNormal}
}

// WithPriority returns a copy of the widget with the given priority.
func (w *Widget) WithPriority(p Priority) *Widget {
	c := *w
	c.priority = p
	return &c
}

// Pos is the anchor offset.
func (w *Widget) Pos() int { return w.pos }

// Content is the text the host renders at the anchor.
func (w *Widget) Content() string { return w.content }

// Side reports which side of the anchor the content belongs on.
func (w *Widget) Side() Side { return w.side }

// WidthHint is the display width of the widest content line.
func (w *Widget) WidthHint() int { return text.MaxLineWidth(w.content) }

func (w *Widget) Kind() Kind         { return KindWidget }
func (w *Widget) Range() text.Range  { return text.NewRange(w.pos, w.pos) }
func (w *Widget) Class() string      { return w.class }
func (w *Widget) Priority() Priority { return w.priority }

// Map translates the anchor. A SideBefore widget stays put when text is
// inserted at its position; a SideAfter widget follows the insertion.
func (w *Widget) Map(cs *text.ChangeSet) (Decoration, bool) {
	bias := text.BiasBefore
	if w.side == SideAfter {
		bias = text.BiasAfter
	}
	c := *w
	c.pos = cs.MapPos(w.pos, bias)
	return &c, true
}

// Replace substitutes rendered content for a range of text. When block is
// set the content occupies its own lines and the host excludes them from
// ordinary line numbering.
type Replace struct {
	rng      text.Range
	content  string
	class    string
	block    bool
	priority Priority
}

// NewReplace returns a replacement over [from, to) rendering content in
// place of the underlying text.
func NewReplace(from, to int, content, class string, block bool) *Replace {
	return &Replace{
		rng:      text.NewRange(from, to),
		content:  content,
		class:    class,
		block:    block,
		priority: PriorityNormal,
	}
}

// WithPriority returns a copy of the replacement with the given priority.
func (r *Replace) WithPriority(p Priority) *Replace {
	c := *r
	c.priority = p
	return &c
}

// Content is the text rendered in place of the covered range.
func (r *Replace) Content() string { return r.content }

// Lines splits the content into rendered lines.
func (r *Replace) Lines() []string { return strings.Split(r.content, "\n") }

// Block reports whether the content is laid out as its own block.
func (r *Replace) Block() bool { return r.block }

// WidthHint is the display width of the widest content line.
func (r *Replace) WidthHint() int { return text.MaxLineWidth(r.content) }

func (r *Replace) Kind() Kind         { return KindReplace }
func (r *Replace) Range() text.Range  { return r.rng }
func (r *Replace) Class() string      { return r.class }
func (r *Replace) Priority() Priority { return r.priority }

// Map translates the replacement. It is dropped once the covered text
// has been deleted.
func (r *Replace) Map(cs *text.ChangeSet) (Decoration, bool) {
	mapped := cs.MapRange(r.rng)
	if mapped.IsEmpty() {
		return nil, false
	}
	c := *r
	c.rng = mapped
	return &c, true
}
