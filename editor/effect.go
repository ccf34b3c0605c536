package editor

import "fmt"

// EffectType identifies one kind of effect. Each extension creates its
// own types once at package level; two types are equal only if they are
// the same value, so effect names never collide across packages.
type EffectType struct {
	name string
}

// NewEffectType creates a new effect type. The name appears in logs and
// String output only; identity is the returned pointer.
func NewEffectType(name string) *EffectType {
	return &EffectType{name: name}
}

// Name returns the type's descriptive name.
func (t *EffectType) Name() string {
	return t.name
}

// Of wraps a payload in an effect of this type.
func (t *EffectType) Of(value any) Effect {
	return Effect{typ: t, value: value}
}

// Effect is a tagged payload carried by a transaction. Effects do not
// change the document; state handlers match them by type and reduce
// their own state accordingly.
type Effect struct {
	typ   *EffectType
	value any
}

// Is reports whether the effect was created by the given type.
func (e Effect) Is(t *EffectType) bool {
	return e.typ == t
}

// Value returns the payload the effect was created with.
func (e Effect) Value() any {
	return e.value
}

// String returns a human-readable representation of the effect.
func (e Effect) String() string {
	if e.typ == nil {
		return "Effect(zero)"
	}
	return fmt.Sprintf("Effect(%s, %v)", e.typ.name, e.value)
}
