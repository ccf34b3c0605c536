package review

import (
	"errors"
	"sort"

	"github.com/google/uuid"

	"github.com/dshills/redline/editor"
	"github.com/dshills/redline/overlay"
	"github.com/dshills/redline/text"
)

// ErrAlreadyInstalled is returned when a controller is installed twice.
var ErrAlreadyInstalled = errors.New("review controller already installed")

// Effects consumed by the controller's reducer.
var (
	addEffect    = editor.NewEffectType("review.add")    // payload: Record
	removeEffect = editor.NewEffectType("review.remove") // payload: string id
	clearEffect  = editor.NewEffectType("review.clear")  // payload: nil
)

// Controller is the review extension: it owns the registry, projects
// its decorations, and exposes the review operations. Every mutating
// operation is delivered to the session as one transaction carrying
// both the document edit and the matching registry effect, so callers
// never observe the two out of step.
//
// All operations silently no-op when the controller is not installed
// on a session, and when given an unknown id. They never return errors;
// a request that cannot be honored degrades to inaction.
type Controller struct {
	session  *editor.Session
	registry *Registry
	policy   Policy
	log      *editor.Logger

	defaultOriginalClass string
	defaultImprovedClass string
}

// Option configures a Controller.
type Option func(*Controller)

// WithPolicy sets a policy consulted for every request and notified of
// every resolution.
func WithPolicy(p Policy) Option {
	return func(c *Controller) { c.policy = p }
}

// WithDefaultClasses fills in classes for requests that leave them
// empty. Without this option a request with no class renders no
// decoration for that span.
func WithDefaultClasses(original, improved string) Option {
	return func(c *Controller) {
		c.defaultOriginalClass = original
		c.defaultImprovedClass = improved
	}
}

// New creates a review controller. It does nothing until installed on a
// session via Session.Use.
func New(opts ...Option) *Controller {
	c := &Controller{
		registry: NewRegistry(),
		log:      editor.NullLogger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Install binds the controller to a session, registering its state
// reducer and decoration source.
func (c *Controller) Install(s *editor.Session) error {
	if c.session != nil {
		return ErrAlreadyInstalled
	}
	c.session = s
	c.log = s.Logger().WithComponent("review")
	s.AddHandler(editor.HandlerFunc(c.reduce))
	s.AddSource(c)
	return nil
}

// reduce is the single state transition: remap every live record
// through the document change, then apply this transaction's effects.
// Records created by the transaction arrive as effects already carrying
// post-change offsets, so they are deliberately excluded from the remap
// pass that their own edit triggered.
func (c *Controller) reduce(u *editor.Update) {
	c.registry.RemapAll(u.Changes)
	for _, ef := range u.Effects {
		switch {
		case ef.Is(addEffect):
			rec, ok := ef.Value().(Record)
			if !ok {
				continue
			}
			if !c.registry.Add(rec) {
				c.log.Warn("duplicate review id %q dropped", rec.ID)
			}
		case ef.Is(removeEffect):
			if id, ok := ef.Value().(string); ok {
				c.registry.Remove(id)
			}
		case ef.Is(clearEffect):
			c.registry.Clear()
		}
	}
}

// Decorations projects the current registry. Implements
// editor.DecorationSource.
func (c *Controller) Decorations() overlay.Set {
	return Project(c.registry)
}

// AddReview marks the requested span as original and inserts the
// improved text on the following line.
func (c *Controller) AddReview(req Request) {
	c.AddReviews([]Request{req})
}

// pendingReview is one resolved request awaiting its batch offsets.
type pendingReview struct {
	rec       Record
	span      text.Span
	insertPos int
	insertion string
}

// AddReviews applies a batch of requests as one transaction. Requests
// are resolved against the current document, may arrive in any order,
// and are skipped individually when malformed, denied by policy, or
// reusing a live id; the rest of the batch is unaffected.
func (c *Controller) AddReviews(reqs []Request) {
	if c.session == nil || len(reqs) == 0 {
		return
	}
	doc := c.session.Document()

	items := make([]pendingReview, 0, len(reqs))
	claimed := make(map[string]bool, len(reqs))
	for _, req := range reqs {
		if c.policy != nil {
			rewritten, ok := c.policy.ReviewRequested(req)
			if !ok {
				c.log.Debug("review request denied by policy")
				continue
			}
			req = rewritten
		}
		span, ok := req.Target.resolve(doc)
		if !ok {
			c.log.Debug("review request skipped: nothing targeted")
			continue
		}
		id := req.ID
		if id == "" {
			id = uuid.New().String()
		}
		if claimed[id] {
			c.log.Debug("review request skipped: id %q repeated in batch", id)
			continue
		}
		if _, exists := c.registry.Lookup(id); exists {
			c.log.Debug("review request skipped: id %q already active", id)
			continue
		}
		claimed[id] = true

		items = append(items, pendingReview{
			rec: Record{
				ID:            id,
				OriginalText:  doc.Slice(span.From, span.To),
				OriginalClass: classOrDefault(req.OriginalClass, c.defaultOriginalClass),
				ImprovedClass: classOrDefault(req.ImprovedClass, c.defaultImprovedClass),
			},
			span:      span,
			insertPos: doc.LineAt(span.To).To,
			insertion: "\n" + req.Improved,
		})
	}
	if len(items) == 0 {
		return
	}

	// Insertions must be offset in document order regardless of how the
	// requests were given.
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].insertPos < items[j].insertPos
	})

	edits := make([]text.Edit, 0, len(items))
	for _, it := range items {
		edits = append(edits, text.Insertion(it.insertPos, it.insertion))
	}
	batch, err := text.NewChangeSet(edits, doc.Len())
	if err != nil {
		c.log.Warn("review batch rejected: %v", err)
		return
	}

	effects := make([]editor.Effect, 0, len(items))
	accum := 0
	for _, it := range items {
		rec := it.rec
		// A record's own insertion lands at or after its span end and
		// never moves it; earlier insertions in the batch shift it like
		// any other preceding edit.
		rec.OriginalFrom = batch.MapPos(it.span.From, text.BiasBefore)
		rec.OriginalTo = batch.MapPos(it.span.To, text.BiasBefore)
		rec.InsertedFrom = it.insertPos + accum + 1
		rec.InsertedTo = it.insertPos + accum + len(it.insertion)
		accum += len(it.insertion)
		effects = append(effects, addEffect.Of(rec))
	}

	if err := c.session.Dispatch(editor.Transaction{Edits: edits, Effects: effects}); err != nil {
		c.log.Warn("add reviews failed: %v", err)
	}
}

// RemoveReview drops a review's record and decorations. The document,
// including the inserted improved text, is left untouched.
func (c *Controller) RemoveReview(id string) {
	if c.session == nil {
		return
	}
	if _, ok := c.registry.Lookup(id); !ok {
		return
	}
	tx := editor.Transaction{Effects: []editor.Effect{removeEffect.Of(id)}}
	if err := c.session.Dispatch(tx); err != nil {
		c.log.Warn("remove review %q failed: %v", id, err)
	}
}

// ClearReviews drops every record and all review decorations, leaving
// the document untouched.
func (c *Controller) ClearReviews() {
	if c.session == nil || c.registry.Len() == 0 {
		return
	}
	tx := editor.Transaction{Effects: []editor.Effect{clearEffect.Of(nil)}}
	if err := c.session.Dispatch(tx); err != nil {
		c.log.Warn("clear reviews failed: %v", err)
	}
}

// AcceptReview resolves a review by deleting the original span together
// with the separator newline, leaving the improved text as ordinary
// document content.
func (c *Controller) AcceptReview(id string) {
	if c.session == nil {
		return
	}
	rec, ok := c.registry.Lookup(id)
	if !ok {
		return
	}
	from := rec.OriginalFrom
	to := rec.OriginalTo + 1 // reclaim the separator newline
	if l := c.session.Document().Len(); to > l {
		to = l
	}
	tx := editor.Transaction{
		Edits:   []text.Edit{text.Deletion(from, to)},
		Effects: []editor.Effect{removeEffect.Of(id)},
	}
	if err := c.session.Dispatch(tx); err != nil {
		c.log.Warn("accept review %q failed: %v", id, err)
		return
	}
	c.log.Debug("review %q accepted", id)
	if c.policy != nil {
		c.policy.ReviewResolved(rec, ResolutionAccepted)
	}
}

// RejectReview resolves a review by deleting the inserted span together
// with the separator newline, restoring the document to its pre-review
// text and normal display.
func (c *Controller) RejectReview(id string) {
	if c.session == nil {
		return
	}
	rec, ok := c.registry.Lookup(id)
	if !ok {
		return
	}
	from := rec.InsertedFrom - 1 // reclaim the separator newline
	if from < 0 {
		from = 0
	}
	to := rec.InsertedTo
	if l := c.session.Document().Len(); to > l {
		to = l
	}
	tx := editor.Transaction{
		Edits:   []text.Edit{text.Deletion(from, to)},
		Effects: []editor.Effect{removeEffect.Of(id)},
	}
	if err := c.session.Dispatch(tx); err != nil {
		c.log.Warn("reject review %q failed: %v", id, err)
		return
	}
	c.log.Debug("review %q rejected", id)
	if c.policy != nil {
		c.policy.ReviewResolved(rec, ResolutionRejected)
	}
}

// Metadata returns the current, remapped record for a review id.
func (c *Controller) Metadata(id string) (Record, bool) {
	return c.registry.Lookup(id)
}

// Reviews returns the current records in creation order.
func (c *Controller) Reviews() []Record {
	return c.registry.Records()
}

func classOrDefault(class, def string) string {
	if class != "" {
		return class
	}
	return def
}
