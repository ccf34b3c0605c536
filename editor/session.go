package editor

import (
	"time"

	"github.com/dshills/redline/overlay"
	"github.com/dshills/redline/text"
)

// Transaction is the atomic unit of change: a batch of document edits
// plus the effects extensions should reduce once the edits are applied.
// Either part may be empty; an effect-only transaction changes state
// without touching the document.
type Transaction struct {
	Edits   []text.Edit
	Effects []Effect
}

// Update describes one applied transaction. Handlers and listeners
// receive the same Update value; positions captured against Old must be
// remapped through Changes before use against New.
type Update struct {
	Old     *text.Document
	New     *text.Document
	Changes *text.ChangeSet
	Effects []Effect
}

// DocChanged reports whether the transaction edited the document text.
func (u *Update) DocChanged() bool {
	return !u.Changes.Empty()
}

// Handler reduces extension state from an applied transaction. Handlers
// run synchronously in registration order, after the document has
// advanced and before listeners are notified. A handler that tracks
// positions remaps them through u.Changes first, then applies u.Effects.
type Handler interface {
	Apply(u *Update)
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(u *Update)

// Apply calls f.
func (f HandlerFunc) Apply(u *Update) { f(u) }

// Listener observes applied transactions. Listeners run after every
// handler, exactly once per dispatched transaction.
type Listener func(u *Update)

// DecorationSource contributes decorations derived from extension state.
// Sources are queried lazily; they must regenerate their set from current
// state rather than returning one cached across edits.
type DecorationSource interface {
	Decorations() overlay.Set
}

// Extension is a unit of behavior installed on a session. Install
// registers whatever handlers and decoration sources the extension needs
// and binds the extension to the session.
type Extension interface {
	Install(s *Session) error
}

// Session is an editing session over one document. All changes go
// through Dispatch; extension state and decorations stay consistent
// with the document because every transition is delivered synchronously
// to every registered handler.
//
// A Session is single-threaded: all calls must come from one
// goroutine. Dispatching from inside a handler or listener fails with
// ErrReentrantDispatch instead of corrupting the in-flight update.
type Session struct {
	doc       *text.Document
	handlers  []Handler
	listeners []Listener
	sources   []DecorationSource

	log     *Logger
	metrics *Metrics

	dispatching bool
	closed      bool
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithLogger sets the session logger. The default discards everything.
func WithLogger(l *Logger) SessionOption {
	return func(s *Session) {
		if l != nil {
			s.log = l
		}
	}
}

// NewSession creates a session holding the given initial content.
func NewSession(content string, opts ...SessionOption) *Session {
	s := &Session{
		doc:     text.NewDocument(content),
		log:     NullLogger,
		metrics: &Metrics{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Document returns the current document.
func (s *Session) Document() *text.Document {
	return s.doc
}

// Logger returns the session logger.
func (s *Session) Logger() *Logger {
	return s.log
}

// Metrics returns the session's dispatch counters.
func (s *Session) Metrics() *Metrics {
	return s.metrics
}

// Closed reports whether Close has been called.
func (s *Session) Closed() bool {
	return s.closed
}

// Close marks the session closed. Further dispatches fail with
// ErrSessionClosed; reads keep working on the final document.
func (s *Session) Close() error {
	if s.closed {
		return ErrSessionClosed
	}
	s.closed = true
	return nil
}

// AddHandler registers a state handler. Handlers run in registration
// order on every dispatch.
func (s *Session) AddHandler(h Handler) {
	if h != nil {
		s.handlers = append(s.handlers, h)
	}
}

// AddSource registers a decoration source.
func (s *Session) AddSource(src DecorationSource) {
	if src != nil {
		s.sources = append(s.sources, src)
	}
}

// OnUpdate registers a listener notified once per applied transaction.
func (s *Session) OnUpdate(l Listener) {
	if l != nil {
		s.listeners = append(s.listeners, l)
	}
}

// Use installs extensions on the session, in order. Installation stops
// at the first error.
func (s *Session) Use(exts ...Extension) error {
	for _, ext := range exts {
		if ext == nil {
			continue
		}
		if err := ext.Install(s); err != nil {
			return err
		}
	}
	return nil
}

// Dispatch applies one transaction: edits first, then handlers, then
// listeners, exactly once each. On an edit error nothing changes and the
// error is returned. Handler and listener panics are contained so that a
// faulty extension cannot take down the session; they are counted in
// Metrics and logged.
func (s *Session) Dispatch(tx Transaction) error {
	if s.closed {
		return ErrSessionClosed
	}
	if s.dispatching {
		return ErrReentrantDispatch
	}
	s.dispatching = true
	defer func() { s.dispatching = false }()

	start := time.Now()

	old := s.doc
	next, changes, err := old.Apply(tx.Edits)
	if err != nil {
		s.log.Warn("dispatch rejected: %v", err)
		return err
	}
	s.doc = next

	u := &Update{Old: old, New: next, Changes: changes, Effects: tx.Effects}

	for _, h := range s.handlers {
		s.applyHandler(h, u)
	}
	for _, l := range s.listeners {
		s.notify(l, u)
	}

	s.metrics.record(u, time.Since(start))
	return nil
}

// applyHandler runs one handler with panic containment.
func (s *Session) applyHandler(h Handler, u *Update) {
	defer func() {
		if r := recover(); r != nil {
			s.metrics.handlerPanics.Add(1)
			s.log.Error("handler panic: %v", r)
		}
	}()
	h.Apply(u)
}

// notify runs one listener with panic containment.
func (s *Session) notify(l Listener, u *Update) {
	defer func() {
		if r := recover(); r != nil {
			s.metrics.listenerPanics.Add(1)
			s.log.Error("listener panic: %v", r)
		}
	}()
	l(u)
}

// Decorations merges the current sets of every registered source into
// one ordered, non-overlapping set in current-document coordinates.
func (s *Session) Decorations() overlay.Set {
	if len(s.sources) == 0 {
		return overlay.Set{}
	}
	sets := make([]overlay.Set, 0, len(s.sources))
	for _, src := range s.sources {
		sets = append(sets, src.Decorations())
	}
	return overlay.Merge(sets...)
}
