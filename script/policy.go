// Package script loads review policies written in Lua. A policy is a
// small host-supplied script with up to two global hook functions:
// on_review_request, which may veto or rewrite a review request before
// the controller applies it, and on_review_resolved, which observes how
// a review ended. Scripts run in a restricted state with only the base,
// table, string, and math libraries; file loading and process access
// are not available.
//
// Hook failures never reach the caller. A hook that errors or panics is
// logged and treated as if it had allowed the request unchanged, so a
// broken policy script degrades the workflow to unfiltered rather than
// breaking it.
package script

import (
	"errors"
	"fmt"
	"sync"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/redline/editor"
	"github.com/dshills/redline/review"
)

// ErrPolicyClosed is returned when closing an already closed policy.
var ErrPolicyClosed = errors.New("script policy closed")

// Hook names looked up as globals in the Lua state.
const (
	hookReviewRequest  = "on_review_request"
	hookReviewResolved = "on_review_resolved"
)

// Policy runs Lua policy hooks. It implements review.Policy and is
// handed to the controller via review.WithPolicy.
//
// The underlying Lua state is not goroutine-safe; the mutex serializes
// hook calls, which the controller makes synchronously anyway.
type Policy struct {
	mu     sync.Mutex
	state  *lua.LState
	log    *editor.Logger
	closed bool
}

// Option configures a Policy.
type Option func(*Policy)

// WithLogger routes hook failures to the given logger. The default
// discards them.
func WithLogger(log *editor.Logger) Option {
	return func(p *Policy) {
		if log != nil {
			p.log = log
		}
	}
}

// LoadFile loads policy hooks from a Lua source file.
func LoadFile(path string, opts ...Option) (*Policy, error) {
	p := newPolicy(opts...)
	if err := p.state.DoFile(path); err != nil {
		p.state.Close()
		return nil, fmt.Errorf("load policy %s: %w", path, err)
	}
	return p, nil
}

// LoadString loads policy hooks from Lua source text.
func LoadString(src string, opts ...Option) (*Policy, error) {
	p := newPolicy(opts...)
	if err := p.state.DoString(src); err != nil {
		p.state.Close()
		return nil, fmt.Errorf("load policy: %w", err)
	}
	return p, nil
}

func newPolicy(opts ...Option) *Policy {
	p := &Policy{log: editor.NullLogger}
	for _, opt := range opts {
		opt(p)
	}
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	openSafeLibraries(L)
	p.state = L
	return p
}

// openSafeLibraries opens only the libraries policy hooks need. io, os,
// debug, and package stay closed, and the base functions that load code
// from files or strings are removed.
func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
	L.SetTop(0)

	for _, name := range []string{"dofile", "loadfile", "load", "loadstring"} {
		L.SetGlobal(name, lua.LNil)
	}
}

// Close releases the Lua state. Hooks invoked after Close allow
// everything unchanged.
func (p *Policy) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrPolicyClosed
	}
	p.state.Close()
	p.closed = true
	return nil
}

// ReviewRequested calls on_review_request when the script defines it.
// The hook receives the request as a table and may return false to drop
// the request, a table to override its improved text, classes, or id,
// or nil/true to allow it unchanged. Any other return value, a missing
// hook, and a failing hook all allow the request unchanged.
func (p *Policy) ReviewRequested(req review.Request) (review.Request, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return req, true
	}
	fn := p.state.GetGlobal(hookReviewRequest)
	if fn.Type() != lua.LTFunction {
		return req, true
	}

	ret, err := p.call(fn, requestTable(p.state, req))
	if err != nil {
		p.log.Warn("review request hook failed: %v", err)
		return req, true
	}
	switch v := ret.(type) {
	case lua.LBool:
		return req, bool(v)
	case *lua.LTable:
		return overrideRequest(req, v), true
	default:
		return req, true
	}
}

// ReviewResolved calls on_review_resolved when the script defines it.
// The hook receives the resolved record as a table and the resolution
// name ("accept" or "reject"). Return values are ignored.
func (p *Policy) ReviewResolved(rec review.Record, res review.Resolution) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return
	}
	fn := p.state.GetGlobal(hookReviewResolved)
	if fn.Type() != lua.LTFunction {
		return
	}
	if _, err := p.call(fn, recordTable(p.state, rec), lua.LString(res.String())); err != nil {
		p.log.Warn("review resolved hook failed: %v", err)
	}
}

// call invokes fn with args and returns its first result. Lua errors
// come back through PCall; panics out of the runtime are contained.
func (p *Policy) call(fn lua.LValue, args ...lua.LValue) (ret lua.LValue, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()

	p.state.Push(fn)
	for _, arg := range args {
		p.state.Push(arg)
	}
	if err := p.state.PCall(len(args), 1, nil); err != nil {
		return lua.LNil, err
	}
	ret = p.state.Get(-1)
	p.state.Pop(1)
	return ret, nil
}

// requestTable builds the Lua view of a request. Target fields depend
// on the kind: "lines" carries from_line/to_line, "offsets" carries
// from/to, and an empty target carries neither.
func requestTable(L *lua.LState, req review.Request) *lua.LTable {
	t := L.NewTable()
	t.RawSetString("id", lua.LString(req.ID))
	t.RawSetString("improved", lua.LString(req.Improved))
	t.RawSetString("original_class", lua.LString(req.OriginalClass))
	t.RawSetString("improved_class", lua.LString(req.ImprovedClass))
	switch req.Target.Kind {
	case review.TargetLines:
		t.RawSetString("kind", lua.LString("lines"))
		t.RawSetString("from_line", lua.LNumber(req.Target.FromLine))
		t.RawSetString("to_line", lua.LNumber(req.Target.ToLine))
	case review.TargetOffsets:
		t.RawSetString("kind", lua.LString("offsets"))
		t.RawSetString("from", lua.LNumber(req.Target.From))
		t.RawSetString("to", lua.LNumber(req.Target.To))
	}
	return t
}

// recordTable builds the Lua view of a resolved record.
func recordTable(L *lua.LState, rec review.Record) *lua.LTable {
	t := L.NewTable()
	t.RawSetString("id", lua.LString(rec.ID))
	t.RawSetString("original_from", lua.LNumber(rec.OriginalFrom))
	t.RawSetString("original_to", lua.LNumber(rec.OriginalTo))
	t.RawSetString("original_text", lua.LString(rec.OriginalText))
	t.RawSetString("inserted_from", lua.LNumber(rec.InsertedFrom))
	t.RawSetString("inserted_to", lua.LNumber(rec.InsertedTo))
	t.RawSetString("original_class", lua.LString(rec.OriginalClass))
	t.RawSetString("improved_class", lua.LString(rec.ImprovedClass))
	return t
}

// overrideRequest copies string overrides from the hook's return table.
// Non-string values are ignored; the target cannot be overridden.
func overrideRequest(req review.Request, t *lua.LTable) review.Request {
	if v, ok := t.RawGetString("improved").(lua.LString); ok {
		req.Improved = string(v)
	}
	if v, ok := t.RawGetString("original_class").(lua.LString); ok {
		req.OriginalClass = string(v)
	}
	if v, ok := t.RawGetString("improved_class").(lua.LString); ok {
		req.ImprovedClass = string(v)
	}
	if v, ok := t.RawGetString("id").(lua.LString); ok {
		req.ID = string(v)
	}
	return req
}
