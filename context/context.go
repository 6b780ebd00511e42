// Package context adapts several concrete (key, value) string lookup
// shapes behind one read-only interface, so the evaluator never needs to
// know which one a caller passed in. All comparisons are byte-wise; no
// Unicode normalization is performed anywhere in this package.
package context

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/branchtext/tmplresolver/internal/smallkv"
)

// Context is a uniform, read-only accessor over a per-evaluation
// parameter set.
type Context interface {
	// Lookup returns the value bound to key, and whether it was found.
	Lookup(key string) (string, bool)
}

// empty always misses. It is the zero-cost context used for
// Resolver.GetNoContext and for slice/map contexts that turn out to be
// empty, avoiding any wrapper allocation.
type empty struct{}

func (empty) Lookup(string) (string, bool) { return "", false }

// Empty returns the always-missing Context.
func Empty() Context { return empty{} }

// sortedSlice looks up values with a binary search over a
// smallkv.Buffer, sorted once at construction time.
type sortedSlice struct {
	buf *smallkv.Buffer
}

// KV is one (key, value) pair, re-exported from smallkv for callers that
// build a SortedSlice context directly.
type KV = smallkv.KV

// NewSortedSlice builds a Context over pairs, which does not need to be
// pre-sorted: pairs is copied and sorted internally via the
// internal/smallkv small-buffer helper, so permuting the caller's slice
// before this call never changes lookup results (spec §8, "context order
// irrelevance").
func NewSortedSlice(pairs []KV) Context {
	if len(pairs) == 0 {
		return Empty()
	}
	return sortedSlice{buf: smallkv.CopySorted(pairs)}
}

func (s sortedSlice) Lookup(key string) (string, bool) {
	return s.buf.Lookup(key)
}

// orderedMapCtx looks up values in a wk8/go-ordered-map, which stands in
// for the original core's BTreeMap-backed context variant. It is an
// insertion-ordered map, not a tree: lookups go through its internal
// hash index.
type orderedMapCtx struct {
	m *orderedmap.OrderedMap[string, string]
}

// NewOrderedMap builds a Context backed by an ordered map.
func NewOrderedMap(m *orderedmap.OrderedMap[string, string]) Context {
	if m == nil || m.Len() == 0 {
		return Empty()
	}
	return orderedMapCtx{m: m}
}

func (o orderedMapCtx) Lookup(key string) (string, bool) {
	return o.m.Get(key)
}

// mapCtx looks up values directly in a borrowed map[string]string.
type mapCtx struct {
	m map[string]string
}

// NewMap builds a Context over a borrowed map[string]string: the caller
// retains ownership and may reuse it after the call, mirroring the
// original crate's `ContextMap` (&HashMap<&str, &str>).
func NewMap(m map[string]string) Context {
	if len(m) == 0 {
		return Empty()
	}
	return mapCtx{m: m}
}

func (c mapCtx) Lookup(key string) (string, bool) {
	v, ok := c.m[key]
	return v, ok
}

// ownedMapCtx is identical in behavior to mapCtx; it exists as a
// distinct named type so API signatures can distinguish "a map you
// handed me to keep" from "a map you're still using", matching the
// original crate's ContextMap vs ContextMapBuf split (which in Rust is a
// real borrow-vs-own distinction; Go has no borrow checker, so here it
// is purely a documented calling convention).
type ownedMapCtx struct {
	m OwnedMap
}

// OwnedMap is a map[string]string the Context implementation takes
// ownership of conceptually: callers should not mutate it after passing
// it to NewOwnedMap.
type OwnedMap map[string]string

// NewOwnedMap builds a Context over an owned map.
func NewOwnedMap(m OwnedMap) Context {
	if len(m) == 0 {
		return Empty()
	}
	return ownedMapCtx{m: m}
}

func (c ownedMapCtx) Lookup(key string) (string, bool) {
	v, ok := c.m[key]
	return v, ok
}
