package editor

import (
	"errors"
	"testing"
)

func TestManagerAddGet(t *testing.T) {
	m := NewManager()
	a := NewSession("a")

	if err := m.Add("a.txt", a); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := m.Add("a.txt", NewSession("other")); !errors.Is(err, ErrSessionExists) {
		t.Errorf("duplicate Add error = %v, want ErrSessionExists", err)
	}

	got, ok := m.Get("a.txt")
	if !ok || got != a {
		t.Error("Get did not return the registered session")
	}
	if _, ok := m.Get("missing"); ok {
		t.Error("Get returned a session for an unknown name")
	}
}

func TestManagerActive(t *testing.T) {
	m := NewManager()
	a, b := NewSession("a"), NewSession("b")
	_ = m.Add("a.txt", a)
	_ = m.Add("b.txt", b)

	// First added becomes active.
	got, ok := m.Active()
	if !ok || got != a {
		t.Error("first session should be active")
	}

	if err := m.SetActive("b.txt"); err != nil {
		t.Fatalf("SetActive failed: %v", err)
	}
	if got, _ := m.Active(); got != b {
		t.Error("SetActive did not switch the active session")
	}

	if err := m.SetActive("missing"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("SetActive(missing) error = %v, want ErrSessionNotFound", err)
	}
}

func TestManagerRemove(t *testing.T) {
	m := NewManager()
	_ = m.Add("a.txt", NewSession("a"))
	_ = m.Add("b.txt", NewSession("b"))

	if !m.Remove("a.txt") {
		t.Error("Remove returned false for a registered session")
	}
	if m.Remove("a.txt") {
		t.Error("Remove returned true for an already-removed session")
	}

	// Removing the active session clears the active pointer.
	if _, ok := m.Active(); ok {
		t.Error("removed session still active")
	}

	names := m.Names()
	if len(names) != 1 || names[0] != "b.txt" {
		t.Errorf("Names() = %v, want [b.txt]", names)
	}
	if m.Len() != 1 {
		t.Errorf("Len() = %d, want 1", m.Len())
	}
}
