package annotate

import (
	"testing"

	"github.com/dshills/redline/editor"
	"github.com/dshills/redline/overlay"
	"github.com/dshills/redline/text"
)

func newTestNotes(t *testing.T, content string) (*editor.Session, *Notes) {
	t.Helper()
	sess := editor.NewSession(content)
	n := NewNotes()
	if err := sess.Use(n); err != nil {
		t.Fatalf("Use() failed: %v", err)
	}
	return sess, n
}

func TestPinProjectsWidgetAtLineEnd(t *testing.T) {
	sess, n := newTestNotes(t, "a\nb\nc")

	id := n.Pin(2, "todo: tighten this loop", "note")
	if id == "" {
		t.Fatal("Pin returned empty id")
	}

	set := sess.Decorations()
	if set.Len() != 1 {
		t.Fatalf("got %d decorations, want 1", set.Len())
	}
	w, ok := set.At(0).(*overlay.Widget)
	if !ok {
		t.Fatalf("decoration is %T, want *overlay.Widget", set.At(0))
	}
	if w.Pos() != 3 {
		t.Errorf("widget at %d, want 3 (end of line 2)", w.Pos())
	}
	if w.Content() != "todo: tighten this loop" || w.Class() != "note" {
		t.Errorf("widget = content %q class %q", w.Content(), w.Class())
	}
	if w.Side() != overlay.SideAfter {
		t.Errorf("widget side = %v, want SideAfter", w.Side())
	}
}

func TestPinClampsLine(t *testing.T) {
	sess, n := newTestNotes(t, "a\nb")

	n.Pin(99, "tail", "note")

	w := sess.Decorations().At(0).(*overlay.Widget)
	if w.Pos() != 3 {
		t.Errorf("widget at %d, want 3 (end of last line)", w.Pos())
	}
}

func TestNoteFollowsLineEnd(t *testing.T) {
	sess, n := newTestNotes(t, "a\nb\nc")
	n.Pin(2, "note", "note")

	// Append to the noted line; the anchor stays at its end.
	err := sess.Dispatch(editor.Transaction{
		Edits: []text.Edit{text.Insertion(3, "!!")},
	})
	if err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}

	w := sess.Decorations().At(0).(*overlay.Widget)
	if w.Pos() != 5 {
		t.Errorf("widget at %d, want 5 (end of %q)", w.Pos(), "b!!")
	}
}

func TestNoteShiftsWithEarlierEdits(t *testing.T) {
	sess, n := newTestNotes(t, "a\nb\nc")
	n.Pin(3, "note", "note")

	err := sess.Dispatch(editor.Transaction{
		Edits: []text.Edit{text.Insertion(0, "header\n")},
	})
	if err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}

	w := sess.Decorations().At(0).(*overlay.Widget)
	if got := sess.Document().LineAt(w.Pos()).Number; got != 4 {
		t.Errorf("note on line %d, want 4", got)
	}
}

func TestUnpin(t *testing.T) {
	sess, n := newTestNotes(t, "a\nb")
	id := n.Pin(1, "first", "note")
	n.Pin(2, "second", "note")

	n.Unpin(id)
	n.Unpin("unknown") // ignored

	set := sess.Decorations()
	if set.Len() != 1 {
		t.Fatalf("got %d decorations, want 1", set.Len())
	}
	w := set.At(0).(*overlay.Widget)
	if w.Content() != "second" {
		t.Errorf("remaining note content = %q, want %q", w.Content(), "second")
	}
}

func TestNotesClear(t *testing.T) {
	sess, n := newTestNotes(t, "a\nb")
	n.Pin(1, "one", "note")
	n.Pin(2, "two", "note")

	n.Clear()
	if got := sess.Decorations().Len(); got != 0 {
		t.Errorf("got %d decorations after clear, want 0", got)
	}
	n.Clear() // second clear is fine
}

func TestNotesUnattachedNoOps(t *testing.T) {
	n := NewNotes()
	if id := n.Pin(1, "x", "note"); id != "" {
		t.Errorf("unattached Pin returned %q, want empty", id)
	}
	n.Unpin("x")
	n.Clear()
	if got := n.Decorations().Len(); got != 0 {
		t.Errorf("unattached notes produced %d decorations, want 0", got)
	}
}
