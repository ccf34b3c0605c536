package annotate

import (
	"github.com/google/uuid"

	"github.com/dshills/redline/editor"
	"github.com/dshills/redline/overlay"
	"github.com/dshills/redline/text"
)

var (
	pinEffect        = editor.NewEffectType("annotate.pin")   // payload: noteEntry
	unpinEffect      = editor.NewEffectType("annotate.unpin") // payload: string id
	clearNotesEffect = editor.NewEffectType("annotate.clear-notes")
)

// noteEntry is one pinned note. The anchor sits at the end of the line
// the note was pinned to and follows text inserted there.
type noteEntry struct {
	id      string
	pos     int
	content string
	class   string
}

// Notes pins short text annotations after a line. Each note projects as
// a KindWidget decoration anchored at the line's end; the host renders
// the content beside or below the line.
type Notes struct {
	session *editor.Session
	log     *editor.Logger

	notes map[string]*noteEntry
	order []string
}

// NewNotes creates a notes extension. It does nothing until installed
// on a session via Session.Use.
func NewNotes() *Notes {
	return &Notes{
		log:   editor.NullLogger,
		notes: make(map[string]*noteEntry),
	}
}

// Install binds the notes extension to a session. Implements
// editor.Extension.
func (n *Notes) Install(s *editor.Session) error {
	if n.session != nil {
		return ErrAlreadyInstalled
	}
	n.session = s
	n.log = s.Logger().WithComponent("annotate.notes")
	s.AddHandler(editor.HandlerFunc(n.reduce))
	s.AddSource(n)
	return nil
}

func (n *Notes) reduce(u *editor.Update) {
	if !u.Changes.Empty() {
		for _, e := range n.notes {
			e.pos = u.Changes.MapPos(e.pos, text.BiasAfter)
		}
	}
	for _, ef := range u.Effects {
		switch {
		case ef.Is(pinEffect):
			e, ok := ef.Value().(noteEntry)
			if !ok {
				continue
			}
			if _, exists := n.notes[e.id]; exists {
				continue
			}
			n.notes[e.id] = &e
			n.order = append(n.order, e.id)
		case ef.Is(unpinEffect):
			if id, ok := ef.Value().(string); ok {
				n.drop(id)
			}
		case ef.Is(clearNotesEffect):
			n.notes = make(map[string]*noteEntry)
			n.order = n.order[:0]
		}
	}
}

func (n *Notes) drop(id string) {
	if _, ok := n.notes[id]; !ok {
		return
	}
	delete(n.notes, id)
	for i, other := range n.order {
		if other == id {
			n.order = append(n.order[:i], n.order[i+1:]...)
			break
		}
	}
}

// Pin attaches content after the given line (1-indexed, clamped to the
// document) and returns the note's id. Returns "" when the extension is
// not installed.
func (n *Notes) Pin(line int, content, class string) string {
	if n.session == nil {
		return ""
	}
	span := text.SpanForLines(n.session.Document(), line, line)
	e := noteEntry{
		id:      uuid.New().String(),
		pos:     span.To,
		content: content,
		class:   class,
	}
	tx := editor.Transaction{Effects: []editor.Effect{pinEffect.Of(e)}}
	if err := n.session.Dispatch(tx); err != nil {
		n.log.Warn("pin note failed: %v", err)
		return ""
	}
	return e.id
}

// Unpin removes one note by id. Unknown ids are ignored.
func (n *Notes) Unpin(id string) {
	if n.session == nil {
		return
	}
	if _, ok := n.notes[id]; !ok {
		return
	}
	tx := editor.Transaction{Effects: []editor.Effect{unpinEffect.Of(id)}}
	if err := n.session.Dispatch(tx); err != nil {
		n.log.Warn("unpin %q failed: %v", id, err)
	}
}

// Clear removes every note.
func (n *Notes) Clear() {
	if n.session == nil || len(n.notes) == 0 {
		return
	}
	tx := editor.Transaction{Effects: []editor.Effect{clearNotesEffect.Of(nil)}}
	if err := n.session.Dispatch(tx); err != nil {
		n.log.Warn("clear notes failed: %v", err)
	}
}

// Decorations projects the current notes. Implements
// editor.DecorationSource.
func (n *Notes) Decorations() overlay.Set {
	if len(n.order) == 0 {
		return overlay.Set{}
	}
	decs := make([]overlay.Decoration, 0, len(n.order))
	for _, id := range n.order {
		e := n.notes[id]
		decs = append(decs, overlay.NewWidget(e.pos, e.content, e.class, overlay.SideAfter))
	}
	return overlay.BuildSet(decs...)
}
