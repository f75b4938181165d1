// Package gdtype implements expression type inference, union/duck
// typing, and the per-method flow-sensitive narrowing engine
// (component C5).
package gdtype

import "github.com/emirpasic/gods/sets/linkedhashset"

// UnionType is an insertion-ordered, deduplicated set of type names
// (spec §3). The linked hash set gives exactly that contract: Add
// dedups, Values preserves insertion order, which keeps diagnostic
// messages ("expected int or String, got bool") deterministic instead
// of flapping between runs.
type UnionType struct {
	set *linkedhashset.Set
}

// NewUnionType returns a UnionType seeded with the given type names, in
// order, deduplicated.
func NewUnionType(names ...string) *UnionType {
	u := &UnionType{set: linkedhashset.New()}
	for _, n := range names {
		u.set.Add(n)
	}
	return u
}

// Add inserts name if not already present.
func (u *UnionType) Add(name string) {
	u.set.Add(name)
}

// Names returns the member type names in insertion order.
func (u *UnionType) Names() []string {
	vals := u.set.Values()
	out := make([]string, len(vals))
	for i, v := range vals {
		out[i] = v.(string)
	}
	return out
}

// Len returns the number of distinct member types.
func (u *UnionType) Len() int {
	return u.set.Size()
}

// Contains reports whether name is a member of the union.
func (u *UnionType) Contains(name string) bool {
	return u.set.Contains(name)
}

// EffectiveType returns the single narrowed type if the union has
// exactly one member, else "Variant" — the caller's flow engine is
// responsible for supplying the widest-common-supertype case by
// collapsing compatible members into one name before constructing the
// UnionType (spec §3 "the widest common super-type, else Variant").
func (u *UnionType) EffectiveType() string {
	if u.set.Size() == 1 {
		return u.Names()[0]
	}
	return "Variant"
}

// Join merges two UnionTypes from a branch re-merge point (spec §4.4):
// same variable narrowed to {A} and {B} on two branches joins to
// UnionType{A,B}.
func Join(a, b *UnionType) *UnionType {
	out := NewUnionType(a.Names()...)
	for _, n := range b.Names() {
		out.Add(n)
	}
	return out
}

// Clone returns an independent copy of u.
func (u *UnionType) Clone() *UnionType {
	return NewUnionType(u.Names()...)
}
