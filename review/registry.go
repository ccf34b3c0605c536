package review

import (
	"github.com/dshills/redline/text"
)

// Registry owns the live review records for one session. It is pure
// state: no rendering, no document access. Records keep insertion order
// so projection and lookup stay deterministic.
type Registry struct {
	records map[string]*Record
	order   []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{records: make(map[string]*Record)}
}

// Add inserts a record. An id that is already present is refused: the
// first record wins and Add reports false.
func (g *Registry) Add(rec Record) bool {
	if _, ok := g.records[rec.ID]; ok {
		return false
	}
	g.records[rec.ID] = &rec
	g.order = append(g.order, rec.ID)
	return true
}

// Remove deletes the record with the given id, reporting whether one
// existed.
func (g *Registry) Remove(id string) bool {
	if _, ok := g.records[id]; !ok {
		return false
	}
	delete(g.records, id)
	for i, oid := range g.order {
		if oid == id {
			g.order = append(g.order[:i], g.order[i+1:]...)
			break
		}
	}
	return true
}

// Clear deletes all records.
func (g *Registry) Clear() {
	g.records = make(map[string]*Record)
	g.order = g.order[:0]
}

// Lookup returns a copy of the record with the given id.
func (g *Registry) Lookup(id string) (Record, bool) {
	rec, ok := g.records[id]
	if !ok {
		return Record{}, false
	}
	return *rec, true
}

// Len returns the number of live records.
func (g *Registry) Len() int {
	return len(g.records)
}

// Records returns copies of all live records in insertion order.
func (g *Registry) Records() []Record {
	out := make([]Record, 0, len(g.order))
	for _, id := range g.order {
		out = append(out, *g.records[id])
	}
	return out
}

// RemapAll translates every record's spans through a document change.
// It must run for every change, including ones unrelated to reviews,
// before any effect from the same transaction is applied; records
// created by that transaction already carry post-change offsets and are
// added afterwards.
func (g *Registry) RemapAll(cs *text.ChangeSet) {
	if cs.Empty() {
		return
	}
	for _, rec := range g.records {
		or := cs.MapRange(rec.OriginalRange())
		ir := cs.MapRange(rec.InsertedRange())
		rec.OriginalFrom, rec.OriginalTo = or.From, or.To
		rec.InsertedFrom, rec.InsertedTo = ir.From, ir.To
	}
}
