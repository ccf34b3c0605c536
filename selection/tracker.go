// Package selection tracks an anchor/head selection through document
// edits and exposes its span, its text, and a clipboard copy of it.
// The anchor sticks to the text before it while the head follows
// insertions at its position, so a selection being extended by typing
// at its end grows the way users expect.
package selection

import (
	"errors"

	"github.com/atotto/clipboard"

	"github.com/dshills/redline/editor"
	"github.com/dshills/redline/text"
)

// ErrAlreadyInstalled is returned when a tracker is installed twice.
var ErrAlreadyInstalled = errors.New("selection tracker already installed")

// Tracker is a selection readout extension. It holds at most one
// anchor/head pair, remaps it through every transaction, and reads the
// covered text out of the current document on demand.
type Tracker struct {
	session *editor.Session
	log     *editor.Logger

	anchor int
	head   int
	active bool

	// register holds the last copied text so hosts without a system
	// clipboard utility still get working copy/paste inside the process.
	register string
}

// NewTracker creates a selection tracker. It does nothing until
// installed on a session via Session.Use.
func NewTracker() *Tracker {
	return &Tracker{log: editor.NullLogger}
}

// Install binds the tracker to a session. Implements editor.Extension.
func (t *Tracker) Install(s *editor.Session) error {
	if t.session != nil {
		return ErrAlreadyInstalled
	}
	t.session = s
	t.log = s.Logger().WithComponent("selection")
	s.AddHandler(editor.HandlerFunc(t.reduce))
	return nil
}

// reduce keeps the selection valid across edits. The anchor maps with
// BiasBefore and the head with BiasAfter.
func (t *Tracker) reduce(u *editor.Update) {
	if !t.active || u.Changes.Empty() {
		return
	}
	t.anchor = u.Changes.MapPos(t.anchor, text.BiasBefore)
	t.head = u.Changes.MapPos(t.head, text.BiasAfter)
}

// SetSelection activates a selection between anchor and head, clamped
// to the document. Anchor and head may be given in either order; an
// equal pair is a cursor with no extent.
func (t *Tracker) SetSelection(anchor, head int) {
	if t.session == nil {
		return
	}
	limit := t.session.Document().Len()
	t.anchor = clampOffset(anchor, limit)
	t.head = clampOffset(head, limit)
	t.active = true
}

// Clear deactivates the selection.
func (t *Tracker) Clear() {
	t.anchor = 0
	t.head = 0
	t.active = false
}

// Anchor returns the selection's fixed end. Valid while Selection
// reports true.
func (t *Tracker) Anchor() int { return t.anchor }

// Head returns the selection's moving end. Valid while Selection
// reports true.
func (t *Tracker) Head() int { return t.head }

// Selection returns the current selection as a span over the current
// document. The second result is false when no selection is active or
// the tracker is not installed.
func (t *Tracker) Selection() (text.Span, bool) {
	if t.session == nil || !t.active {
		return text.Span{}, false
	}
	return text.SpanForRange(t.session.Document(), t.anchor, t.head), true
}

// Text returns the selected text, or "" without an active selection.
func (t *Tracker) Text() string {
	span, ok := t.Selection()
	if !ok {
		return ""
	}
	return t.session.Document().Slice(span.From, span.To)
}

// Copy places the selected text on the system clipboard and in the
// in-process register, returning the text. When no clipboard utility
// is available the register alone serves paste inside the process.
func (t *Tracker) Copy() string {
	s := t.Text()
	if s == "" {
		return ""
	}
	t.register = s
	if err := clipboard.WriteAll(s); err != nil {
		t.log.Debug("system clipboard unavailable, register only: %v", err)
	}
	return s
}

// Register returns the last copied text.
func (t *Tracker) Register() string { return t.register }

func clampOffset(v, limit int) int {
	if v < 0 {
		return 0
	}
	if v > limit {
		return limit
	}
	return v
}
