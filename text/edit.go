package text

import "fmt"

// Edit replaces the text in Range with Insert. An empty range is a pure
// insertion; an empty Insert is a pure deletion.
type Edit struct {
	Range  Range  // The range to replace, in pre-edit coordinates
	Insert string // The replacement text
}

// Insertion creates an Edit that inserts text at an offset.
func Insertion(at int, s string) Edit {
	return Edit{Range: Range{From: at, To: at}, Insert: s}
}

// Deletion creates an Edit that removes the range [from, to).
func Deletion(from, to int) Edit {
	return Edit{Range: Range{From: from, To: to}}
}

// Replacement creates an Edit that substitutes s for [from, to).
func Replacement(from, to int, s string) Edit {
	return Edit{Range: Range{From: from, To: to}, Insert: s}
}

// String returns a human-readable representation of the edit.
func (e Edit) String() string {
	if e.Range.IsEmpty() {
		return fmt.Sprintf("Insert(%d, %q)", e.Range.From, e.Insert)
	}
	if e.Insert == "" {
		return fmt.Sprintf("Delete%s", e.Range.String())
	}
	return fmt.Sprintf("Replace%s with %q", e.Range.String(), e.Insert)
}

// IsInsert returns true if this is a pure insertion (empty range).
func (e Edit) IsInsert() bool {
	return e.Range.IsEmpty() && e.Insert != ""
}

// IsDelete returns true if this is a pure deletion (empty replacement).
func (e Edit) IsDelete() bool {
	return !e.Range.IsEmpty() && e.Insert == ""
}

// IsNoOp returns true if this edit does nothing.
func (e Edit) IsNoOp() bool {
	return e.Range.IsEmpty() && e.Insert == ""
}

// Delta returns the change in document length caused by this edit.
func (e Edit) Delta() int {
	return len(e.Insert) - e.Range.Len()
}
