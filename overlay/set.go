package overlay

import (
	"sort"

	"github.com/dshills/redline/text"
)

// Set is an ordered collection of non-overlapping decorations. Sets are
// immutable once built.
type Set struct {
	decs []Decoration
}

// BuildSet normalizes decorations into a Set. Decorations are ordered by
// start position, breaking ties by descending priority. When two
// decorations with non-empty ranges overlap, the one sorting first is
// kept and the later one dropped. Point decorations never conflict.
func BuildSet(decs ...Decoration) Set {
	kept := make([]Decoration, 0, len(decs))
	for _, d := range decs {
		if d != nil {
			kept = append(kept, d)
		}
	}
	sort.SliceStable(kept, func(i, j int) bool {
		ri, rj := kept[i].Range(), kept[j].Range()
		if ri.From != rj.From {
			return ri.From < rj.From
		}
		return kept[i].Priority() > kept[j].Priority()
	})

	out := kept[:0]
	end := -1
	for _, d := range kept {
		r := d.Range()
		if !r.IsEmpty() {
			if r.From < end {
				continue
			}
			if r.To > end {
				end = r.To
			}
		}
		out = append(out, d)
	}
	return Set{decs: out}
}

// Merge combines several sets into one, reapplying ordering and overlap
// rules across the union.
func Merge(sets ...Set) Set {
	var all []Decoration
	for _, s := range sets {
		all = append(all, s.decs...)
	}
	return BuildSet(all...)
}

// Len reports the number of decorations in the set.
func (s Set) Len() int { return len(s.decs) }

// IsEmpty reports whether the set holds no decorations.
func (s Set) IsEmpty() bool { return len(s.decs) == 0 }

// At returns the decoration at index i in set order.
func (s Set) At(i int) Decoration { return s.decs[i] }

// All returns the decorations in set order. The slice is a copy.
func (s Set) All() []Decoration {
	out := make([]Decoration, len(s.decs))
	copy(out, s.decs)
	return out
}

// InRange returns the decorations relevant to the window [from, to):
// ranged decorations that overlap it and point decorations anchored
// inside it (inclusive of both ends, so end-of-line widgets appear when
// querying their line).
func (s Set) InRange(from, to int) []Decoration {
	window := text.NewRange(from, to)
	var out []Decoration
	for _, d := range s.decs {
		r := d.Range()
		if r.IsEmpty() {
			if r.From >= from && r.From <= to {
				out = append(out, d)
			}
			continue
		}
		if r.Overlaps(window) {
			out = append(out, d)
		}
	}
	return out
}

// Map translates every decoration through cs, dropping those whose text
// no longer exists, and rebuilds the set in the new coordinates.
func (s Set) Map(cs *text.ChangeSet) Set {
	if cs.Empty() {
		return s
	}
	mapped := make([]Decoration, 0, len(s.decs))
	for _, d := range s.decs {
		if md, ok := d.Map(cs); ok {
			mapped = append(mapped, md)
		}
	}
	return BuildSet(mapped...)
}
