package selection

import (
	"testing"

	"github.com/dshills/redline/editor"
	"github.com/dshills/redline/text"
)

func newTestTracker(t *testing.T, content string) (*editor.Session, *Tracker) {
	t.Helper()
	sess := editor.NewSession(content)
	tr := NewTracker()
	if err := sess.Use(tr); err != nil {
		t.Fatalf("Use() failed: %v", err)
	}
	return sess, tr
}

func TestSetSelectionReadout(t *testing.T) {
	_, tr := newTestTracker(t, "hello world")

	tr.SetSelection(2, 7)

	span, ok := tr.Selection()
	if !ok {
		t.Fatal("Selection() inactive after SetSelection")
	}
	if span.From != 2 || span.To != 7 {
		t.Errorf("span = [%d:%d), want [2:7)", span.From, span.To)
	}
	if got := tr.Text(); got != "llo w" {
		t.Errorf("Text() = %q, want %q", got, "llo w")
	}
	if tr.Anchor() != 2 || tr.Head() != 7 {
		t.Errorf("anchor/head = %d/%d, want 2/7", tr.Anchor(), tr.Head())
	}
}

func TestReversedSelectionNormalizes(t *testing.T) {
	_, tr := newTestTracker(t, "hello world")

	tr.SetSelection(7, 2)

	span, _ := tr.Selection()
	if span.From != 2 || span.To != 7 {
		t.Errorf("span = [%d:%d), want [2:7)", span.From, span.To)
	}
	// Direction survives normalization.
	if tr.Anchor() != 7 || tr.Head() != 2 {
		t.Errorf("anchor/head = %d/%d, want 7/2", tr.Anchor(), tr.Head())
	}
}

func TestSetSelectionClamps(t *testing.T) {
	_, tr := newTestTracker(t, "abc")

	tr.SetSelection(-5, 99)

	span, _ := tr.Selection()
	if span.From != 0 || span.To != 3 {
		t.Errorf("span = [%d:%d), want [0:3)", span.From, span.To)
	}
}

func TestSelectionInactiveByDefault(t *testing.T) {
	_, tr := newTestTracker(t, "abc")
	if _, ok := tr.Selection(); ok {
		t.Error("Selection() active before SetSelection")
	}
	if got := tr.Text(); got != "" {
		t.Errorf("Text() = %q, want empty", got)
	}

	tr.SetSelection(0, 2)
	tr.Clear()
	if _, ok := tr.Selection(); ok {
		t.Error("Selection() still active after Clear")
	}
}

func TestSelectionShiftsThroughEdit(t *testing.T) {
	sess, tr := newTestTracker(t, "hello world")
	tr.SetSelection(6, 11)

	err := sess.Dispatch(editor.Transaction{
		Edits: []text.Edit{text.Insertion(0, "say: ")},
	})
	if err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}

	if got := tr.Text(); got != "world" {
		t.Errorf("Text() = %q, want %q", got, "world")
	}
	span, _ := tr.Selection()
	if span.From != 11 || span.To != 16 {
		t.Errorf("span = [%d:%d), want [11:16)", span.From, span.To)
	}
}

func TestHeadFollowsInsertionAtHead(t *testing.T) {
	sess, tr := newTestTracker(t, "hello world")
	tr.SetSelection(0, 5)

	err := sess.Dispatch(editor.Transaction{
		Edits: []text.Edit{text.Insertion(5, "!")},
	})
	if err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}

	if got := tr.Text(); got != "hello!" {
		t.Errorf("Text() = %q, want %q", got, "hello!")
	}
}

func TestAnchorStaysAtInsertion(t *testing.T) {
	sess, tr := newTestTracker(t, "hello world")
	tr.SetSelection(6, 11)

	err := sess.Dispatch(editor.Transaction{
		Edits: []text.Edit{text.Insertion(6, "big ")},
	})
	if err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}

	if got := tr.Text(); got != "big world" {
		t.Errorf("Text() = %q, want %q", got, "big world")
	}
}

func TestSelectionCollapsesWhenDeleted(t *testing.T) {
	sess, tr := newTestTracker(t, "hello world")
	tr.SetSelection(6, 11)

	err := sess.Dispatch(editor.Transaction{
		Edits: []text.Edit{text.Deletion(4, 11)},
	})
	if err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}

	span, ok := tr.Selection()
	if !ok {
		t.Fatal("Selection() inactive after covering delete")
	}
	if !span.IsEmpty() {
		t.Errorf("span = [%d:%d), want empty", span.From, span.To)
	}
	if got := tr.Text(); got != "" {
		t.Errorf("Text() = %q, want empty", got)
	}
}

func TestCopySetsRegister(t *testing.T) {
	_, tr := newTestTracker(t, "hello world")
	tr.SetSelection(0, 5)

	if got := tr.Copy(); got != "hello" {
		t.Errorf("Copy() = %q, want %q", got, "hello")
	}
	if got := tr.Register(); got != "hello" {
		t.Errorf("Register() = %q, want %q", got, "hello")
	}

	// Copying nothing leaves the register alone.
	tr.Clear()
	if got := tr.Copy(); got != "" {
		t.Errorf("Copy() without selection = %q, want empty", got)
	}
	if got := tr.Register(); got != "hello" {
		t.Errorf("Register() = %q, want %q preserved", got, "hello")
	}
}

func TestTrackerUnattachedNoOps(t *testing.T) {
	tr := NewTracker()
	tr.SetSelection(0, 5)
	if _, ok := tr.Selection(); ok {
		t.Error("unattached tracker reported an active selection")
	}
	if got := tr.Text(); got != "" {
		t.Errorf("Text() = %q, want empty", got)
	}
	if got := tr.Copy(); got != "" {
		t.Errorf("Copy() = %q, want empty", got)
	}
	tr.Clear()
}

func TestTrackerInstallTwiceFails(t *testing.T) {
	sess := editor.NewSession("a")
	tr := NewTracker()
	if err := sess.Use(tr); err != nil {
		t.Fatalf("first install failed: %v", err)
	}
	if err := sess.Use(tr); err != ErrAlreadyInstalled {
		t.Errorf("second install error = %v, want ErrAlreadyInstalled", err)
	}
}
