package text

// Bias controls how MapPos resolves positions that touch an edit.
type Bias int

const (
	// BiasBefore anchors the position to the text preceding it: an
	// insertion exactly at the position leaves it in place, and a
	// position inside a replaced range collapses to the range start.
	BiasBefore Bias = iota

	// BiasAfter moves the position past text inserted at it, and
	// collapses positions inside a replaced range to the end of the
	// inserted text.
	BiasAfter
)

// ChangeSet records the edits applied in one atomic step, held in
// ascending pre-edit order, and translates positions captured before the
// step into positions afterwards.
type ChangeSet struct {
	edits  []Edit // ascending, non-overlapping, pre-edit coordinates
	oldLen int
	newLen int
}

// NewChangeSet builds a ChangeSet from edits against a document of length
// oldLen. Edits are normalized exactly as Document.Apply normalizes them.
func NewChangeSet(edits []Edit, oldLen int) (*ChangeSet, error) {
	sorted, err := normalizeEdits(edits, oldLen)
	if err != nil {
		return nil, err
	}
	newLen := oldLen
	for _, e := range sorted {
		newLen += e.Delta()
	}
	return &ChangeSet{edits: sorted, oldLen: oldLen, newLen: newLen}, nil
}

// Empty returns true if the change set contains no edits.
func (cs *ChangeSet) Empty() bool {
	return len(cs.edits) == 0
}

// Edits returns the normalized edits in ascending pre-edit order.
// The returned slice must not be modified.
func (cs *ChangeSet) Edits() []Edit {
	return cs.edits
}

// OldLen returns the document length before the change set.
func (cs *ChangeSet) OldLen() int {
	return cs.oldLen
}

// NewLen returns the document length after the change set.
func (cs *ChangeSet) NewLen() int {
	return cs.newLen
}

// Delta returns the total change in document length.
func (cs *ChangeSet) Delta() int {
	return cs.newLen - cs.oldLen
}

// MapPos translates a position captured before the change set into the
// equivalent position afterwards.
//
// Rules: an edit entirely before the position shifts it by the edit's
// delta; an edit at or after the position leaves it alone; an edit
// spanning the position collapses it per the bias; an insertion exactly
// at the position resolves per the bias.
func (cs *ChangeSet) MapPos(pos int, bias Bias) int {
	mapped := pos
	for _, e := range cs.edits {
		from, to := e.Range.From, e.Range.To
		switch {
		case to < pos || (to == pos && to > from):
			// Edit entirely before the position.
			mapped += e.Delta()
		case from == to && from == pos:
			// Insertion exactly at the position.
			if bias == BiasBefore {
				return mapped
			}
			mapped += len(e.Insert)
			// Another insertion at the same offset may follow.
		case from >= pos:
			// Edit at or after the position.
			return mapped
		default:
			// Edit spans the position: from < pos < to.
			collapsed := from + (mapped - pos)
			if bias == BiasAfter {
				collapsed += len(e.Insert)
			}
			return collapsed
		}
	}
	return mapped
}

// MapRange translates a range through the change set. From is mapped with
// BiasAfter and To with BiasBefore, so text inserted exactly at either
// boundary is excluded from the result. A range whose interior was
// deleted collapses to empty.
func (cs *ChangeSet) MapRange(r Range) Range {
	from := cs.MapPos(r.From, BiasAfter)
	to := cs.MapPos(r.To, BiasBefore)
	if to < from {
		to = from
	}
	return Range{From: from, To: to}
}

// MapSpan translates a span's offsets through the change set and
// recomputes its line numbers against the post-edit document.
func (cs *ChangeSet) MapSpan(s Span, after *Document) Span {
	r := cs.MapRange(s.Range())
	return Span{
		From:     r.From,
		To:       r.To,
		FromLine: after.LineAt(r.From).Number,
		ToLine:   after.LineAt(r.To).Number,
	}
}
