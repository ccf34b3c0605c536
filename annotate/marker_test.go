package annotate

import (
	"testing"

	"github.com/dshills/redline/editor"
	"github.com/dshills/redline/overlay"
	"github.com/dshills/redline/text"
)

func newTestMarker(t *testing.T, content string) (*editor.Session, *Marker) {
	t.Helper()
	sess := editor.NewSession(content)
	m := NewMarker()
	if err := sess.Use(m); err != nil {
		t.Fatalf("Use() failed: %v", err)
	}
	return sess, m
}

func TestMarkLinesProjectsLineMarks(t *testing.T) {
	sess, m := newTestMarker(t, "a\nb\nc")

	id := m.MarkLines(1, 2, "hl")
	if id == "" {
		t.Fatal("MarkLines returned empty id")
	}

	set := sess.Decorations()
	if set.Len() != 2 {
		t.Fatalf("got %d decorations, want 2", set.Len())
	}
	for i, wantPos := range []int{0, 2} {
		lm, ok := set.At(i).(*overlay.LineMark)
		if !ok {
			t.Fatalf("decoration %d is %T, want *overlay.LineMark", i, set.At(i))
		}
		if lm.Pos() != wantPos {
			t.Errorf("line mark %d at %d, want %d", i, lm.Pos(), wantPos)
		}
		if lm.Class() != "hl" {
			t.Errorf("line mark %d class = %q, want %q", i, lm.Class(), "hl")
		}
	}
}

func TestMarkLinesClampsOutOfRange(t *testing.T) {
	sess, m := newTestMarker(t, "a\nb")

	m.MarkLines(5, 9, "hl")

	set := sess.Decorations()
	if set.Len() != 1 {
		t.Fatalf("got %d decorations, want 1", set.Len())
	}
	lm := set.At(0).(*overlay.LineMark)
	if lm.Pos() != 2 {
		t.Errorf("line mark at %d, want 2 (last line)", lm.Pos())
	}
}

func TestMarkLinesFollowEdits(t *testing.T) {
	sess, m := newTestMarker(t, "a\nb\nc")
	m.MarkLines(2, 2, "hl")

	err := sess.Dispatch(editor.Transaction{
		Edits: []text.Edit{text.Insertion(0, "X\n")},
	})
	if err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}

	set := sess.Decorations()
	if set.Len() != 1 {
		t.Fatalf("got %d decorations, want 1", set.Len())
	}
	lm := set.At(0).(*overlay.LineMark)
	// "b" moved from line 2 to line 3; the mark stays on it.
	if got := sess.Document().LineAt(lm.Pos()).Number; got != 3 {
		t.Errorf("line mark on line %d, want 3", got)
	}
}

func TestMarkRangeProjectsMark(t *testing.T) {
	sess, m := newTestMarker(t, "hello world")

	id := m.MarkRange(6, 11, "word")
	if id == "" {
		t.Fatal("MarkRange returned empty id")
	}

	set := sess.Decorations()
	if set.Len() != 1 {
		t.Fatalf("got %d decorations, want 1", set.Len())
	}
	mark, ok := set.At(0).(*overlay.Mark)
	if !ok {
		t.Fatalf("decoration is %T, want *overlay.Mark", set.At(0))
	}
	if mark.Range().From != 6 || mark.Range().To != 11 {
		t.Errorf("mark range = %v, want [6:11)", mark.Range())
	}
}

func TestMarkRangeEmptyAfterClampRejected(t *testing.T) {
	_, m := newTestMarker(t, "abc")
	if id := m.MarkRange(10, 20, "x"); id != "" {
		t.Errorf("MarkRange beyond document returned id %q, want empty", id)
	}
}

func TestMarkRangeDroppedWhenTextDeleted(t *testing.T) {
	sess, m := newTestMarker(t, "hello world")
	m.MarkRange(2, 5, "x")

	err := sess.Dispatch(editor.Transaction{
		Edits: []text.Edit{text.Deletion(1, 7)},
	})
	if err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}

	if got := sess.Decorations().Len(); got != 0 {
		t.Errorf("got %d decorations after covering delete, want 0", got)
	}
}

func TestUnmark(t *testing.T) {
	sess, m := newTestMarker(t, "a\nb")
	id := m.MarkLines(1, 1, "hl")
	keep := m.MarkLines(2, 2, "hl")

	m.Unmark(id)
	m.Unmark("unknown") // ignored

	set := sess.Decorations()
	if set.Len() != 1 {
		t.Fatalf("got %d decorations, want 1", set.Len())
	}
	if keep == "" {
		t.Fatal("second mark id empty")
	}
}

func TestMarkerClear(t *testing.T) {
	sess, m := newTestMarker(t, "a\nb")
	m.MarkLines(1, 1, "hl")
	m.MarkRange(0, 1, "x")

	m.Clear()
	if got := sess.Decorations().Len(); got != 0 {
		t.Errorf("got %d decorations after clear, want 0", got)
	}
	m.Clear() // second clear is fine
}

func TestMarkerUnattachedNoOps(t *testing.T) {
	m := NewMarker()
	if id := m.MarkLines(1, 1, "x"); id != "" {
		t.Errorf("unattached MarkLines returned %q, want empty", id)
	}
	if id := m.MarkRange(0, 1, "x"); id != "" {
		t.Errorf("unattached MarkRange returned %q, want empty", id)
	}
	m.Unmark("x")
	m.Clear()
	if got := m.Decorations().Len(); got != 0 {
		t.Errorf("unattached marker produced %d decorations, want 0", got)
	}
}

func TestMarkerInstallTwiceFails(t *testing.T) {
	sess := editor.NewSession("a")
	m := NewMarker()
	if err := sess.Use(m); err != nil {
		t.Fatalf("first install failed: %v", err)
	}
	if err := sess.Use(m); err != ErrAlreadyInstalled {
		t.Errorf("second install error = %v, want ErrAlreadyInstalled", err)
	}
}
