// Package annotate provides the thin decoration extensions that sit
// beside reviews: plain class injection over lines or ranges, and text
// notes pinned after a line. Both track their positions through edits
// with the same effect and reducer discipline the review controller
// uses, and both degrade to no-ops while not installed on a session.
package annotate

import (
	"errors"

	"github.com/google/uuid"

	"github.com/dshills/redline/editor"
	"github.com/dshills/redline/overlay"
	"github.com/dshills/redline/text"
)

// ErrAlreadyInstalled is returned when an extension is installed twice.
var ErrAlreadyInstalled = errors.New("annotate extension already installed")

var (
	markEffect       = editor.NewEffectType("annotate.mark")   // payload: markEntry
	unmarkEffect     = editor.NewEffectType("annotate.unmark") // payload: string id
	clearMarksEffect = editor.NewEffectType("annotate.clear-marks")
)

// markKind distinguishes whole-line injection from range injection.
type markKind uint8

const (
	markLines markKind = iota
	markRange
)

// markEntry is one tracked class injection.
type markEntry struct {
	id    string
	kind  markKind
	rng   text.Range
	class string
}

// Marker injects style classes over whole lines or offset ranges and
// keeps them attached to the same text while the document changes.
// Line marks project as one KindLine decoration per covered line; range
// marks project as a single KindMark.
type Marker struct {
	session *editor.Session
	log     *editor.Logger

	marks map[string]*markEntry
	order []string
}

// NewMarker creates a marker extension. It does nothing until installed
// on a session via Session.Use.
func NewMarker() *Marker {
	return &Marker{
		log:   editor.NullLogger,
		marks: make(map[string]*markEntry),
	}
}

// Install binds the marker to a session. Implements editor.Extension.
func (m *Marker) Install(s *editor.Session) error {
	if m.session != nil {
		return ErrAlreadyInstalled
	}
	m.session = s
	m.log = s.Logger().WithComponent("annotate.marker")
	s.AddHandler(editor.HandlerFunc(m.reduce))
	s.AddSource(m)
	return nil
}

func (m *Marker) reduce(u *editor.Update) {
	if !u.Changes.Empty() {
		for _, e := range m.marks {
			e.rng = u.Changes.MapRange(e.rng)
		}
	}
	for _, ef := range u.Effects {
		switch {
		case ef.Is(markEffect):
			e, ok := ef.Value().(markEntry)
			if !ok {
				continue
			}
			if _, exists := m.marks[e.id]; exists {
				continue
			}
			m.marks[e.id] = &e
			m.order = append(m.order, e.id)
		case ef.Is(unmarkEffect):
			if id, ok := ef.Value().(string); ok {
				m.drop(id)
			}
		case ef.Is(clearMarksEffect):
			m.marks = make(map[string]*markEntry)
			m.order = m.order[:0]
		}
	}
}

func (m *Marker) drop(id string) {
	if _, ok := m.marks[id]; !ok {
		return
	}
	delete(m.marks, id)
	for i, other := range m.order {
		if other == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
}

// MarkLines injects class over whole lines fromLine..toLine (1-indexed,
// clamped to the document) and returns the mark's id. Returns "" when
// the marker is not installed.
func (m *Marker) MarkLines(fromLine, toLine int, class string) string {
	if m.session == nil {
		return ""
	}
	span := text.SpanForLines(m.session.Document(), fromLine, toLine)
	return m.add(markEntry{
		id:    uuid.New().String(),
		kind:  markLines,
		rng:   span.Range(),
		class: class,
	})
}

// MarkRange injects class over the byte range [from, to), clamped to
// the document, and returns the mark's id. Returns "" when the marker
// is not installed or the range is empty after clamping.
func (m *Marker) MarkRange(from, to int, class string) string {
	if m.session == nil {
		return ""
	}
	span := text.SpanForRange(m.session.Document(), from, to)
	if span.IsEmpty() {
		return ""
	}
	return m.add(markEntry{
		id:    uuid.New().String(),
		kind:  markRange,
		rng:   span.Range(),
		class: class,
	})
}

func (m *Marker) add(e markEntry) string {
	tx := editor.Transaction{Effects: []editor.Effect{markEffect.Of(e)}}
	if err := m.session.Dispatch(tx); err != nil {
		m.log.Warn("mark failed: %v", err)
		return ""
	}
	return e.id
}

// Unmark removes one mark by id. Unknown ids are ignored.
func (m *Marker) Unmark(id string) {
	if m.session == nil {
		return
	}
	if _, ok := m.marks[id]; !ok {
		return
	}
	tx := editor.Transaction{Effects: []editor.Effect{unmarkEffect.Of(id)}}
	if err := m.session.Dispatch(tx); err != nil {
		m.log.Warn("unmark %q failed: %v", id, err)
	}
}

// Clear removes every mark.
func (m *Marker) Clear() {
	if m.session == nil || len(m.marks) == 0 {
		return
	}
	tx := editor.Transaction{Effects: []editor.Effect{clearMarksEffect.Of(nil)}}
	if err := m.session.Dispatch(tx); err != nil {
		m.log.Warn("clear marks failed: %v", err)
	}
}

// Decorations projects the current marks. Implements
// editor.DecorationSource.
func (m *Marker) Decorations() overlay.Set {
	if m.session == nil || len(m.order) == 0 {
		return overlay.Set{}
	}
	doc := m.session.Document()
	var decs []overlay.Decoration
	for _, id := range m.order {
		e := m.marks[id]
		switch e.kind {
		case markRange:
			// A range mark whose text was deleted has nothing left to style.
			if e.rng.IsEmpty() {
				continue
			}
			decs = append(decs, overlay.NewMark(e.rng.From, e.rng.To, e.class))
		case markLines:
			first := doc.LineAt(e.rng.From).Number
			last := doc.LineAt(e.rng.To).Number
			for n := first; n <= last; n++ {
				line, err := doc.Line(n)
				if err != nil {
					break
				}
				decs = append(decs, overlay.NewLineMark(line.From, e.class))
			}
		}
	}
	return overlay.BuildSet(decs...)
}
