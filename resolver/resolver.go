// Package resolver compiles (key, source) template pairs into an
// immutable map and evaluates them against a per-call context.
package resolver

import (
	"sort"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/branchtext/tmplresolver/ast"
	"github.com/branchtext/tmplresolver/parser"
)

// defaultMaxDepth bounds recursion through Variable references as a
// defense against pathological (not strictly cyclic) deep graphs, on
// top of the visited-set cycle check (see tmplerr.CycleDetected).
const defaultMaxDepth = 64

// Resolver is an immutable, concurrency-safe mapping from key to
// compiled Template. It is built once and never mutated; any number of
// goroutines may call Get concurrently.
type Resolver struct {
	entries  map[string]*ast.Template
	maxDepth int
}

// Option configures a Resolver at construction time.
type Option func(*config)

type config struct {
	maxDepth int
}

// WithMaxDepth overrides the recursion depth limit (default 64) used by
// Get to guard against unbounded Variable-reference chains.
func WithMaxDepth(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxDepth = n
		}
	}
}

func newConfig(opts []Option) config {
	c := config{maxDepth: defaultMaxDepth}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// Pair is one (key, source) input entry.
type Pair struct {
	Key    string
	Source string
}

// FromPairs compiles resolver entries from an iterable of (key, source)
// pairs, in Go represented as a slice: there is no separate "iterator"
// abstraction in the standard library worth introducing here, so
// FromPairs and FromSortedSlice below accept the same concrete type and
// differ only in the name a caller reaches for (spec §6, §4.2).
//
// Duplicate keys are resolved by last-write-wins, matching the behavior
// of building a Go map by iterating pairs in order; the core performs no
// extra duplicate detection of its own.
func FromPairs(pairs []Pair, opts ...Option) (*Resolver, error) {
	cfg := newConfig(opts)
	entries := make(map[string]*ast.Template, len(pairs))
	for _, p := range pairs {
		tmpl, err := parser.Parse(p.Key, p.Source)
		if err != nil {
			return nil, err
		}
		entries[p.Key] = tmpl
	}
	return &Resolver{entries: entries, maxDepth: cfg.maxDepth}, nil
}

// FromSortedSlice has equivalent semantics to FromPairs; it exists
// because the original crate distinguishes an iterator-based
// constructor from one over a borrowed slice. Go slices already satisfy
// both roles, so this is a direct alias kept for API parity with spec §6.
func FromSortedSlice(pairs []Pair, opts ...Option) (*Resolver, error) {
	return FromPairs(pairs, opts...)
}

// FromMap compiles resolver entries directly from an already-owned
// map[string]string, matching the original crate's `from_raw` (no
// iterator indirection). Map iteration order does not affect the
// resulting Resolver: every key ends up compiled exactly once.
func FromMap(m map[string]string, opts ...Option) (*Resolver, error) {
	pairs := make([]Pair, 0, len(m))
	for k, v := range m {
		pairs = append(pairs, Pair{Key: k, Source: v})
	}
	return FromPairs(pairs, opts...)
}

// IntoSortedMap returns a deterministic, key-sorted view of the
// resolver's entries, suitable for serialization (spec §6).
func (r *Resolver) IntoSortedMap() *orderedmap.OrderedMap[string, *ast.Template] {
	keys := r.sortedKeys()
	om := orderedmap.New[string, *ast.Template]()
	for _, k := range keys {
		om.Set(k, r.entries[k])
	}
	return om
}

// IntoPairs returns the same view as IntoSortedMap flattened into a
// key-sorted slice, convenient for serializers that want a plain slice
// rather than an ordered-map type.
func (r *Resolver) IntoPairs() []KeyedTemplate {
	keys := r.sortedKeys()
	out := make([]KeyedTemplate, 0, len(keys))
	for _, k := range keys {
		out = append(out, KeyedTemplate{Key: k, Template: r.entries[k]})
	}
	return out
}

// KeyedTemplate pairs a resolver key with its compiled Template.
type KeyedTemplate struct {
	Key      string
	Template *ast.Template
}

func (r *Resolver) sortedKeys() []string {
	keys := make([]string, 0, len(r.entries))
	for k := range r.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len reports the number of compiled entries.
func (r *Resolver) Len() int {
	return len(r.entries)
}

// FromDecodedEntries builds a Resolver directly from already-compiled
// (key, Template) pairs, bypassing the parser entirely. It exists for
// tmplcodec's DecodeResolver, which reconstructs Template values
// straight from a CBOR document rather than re-parsing source text.
func FromDecodedEntries(entries []KeyedTemplate, opts ...Option) *Resolver {
	cfg := newConfig(opts)
	m := make(map[string]*ast.Template, len(entries))
	for _, e := range entries {
		m[e.Key] = e.Template
	}
	return &Resolver{entries: m, maxDepth: cfg.maxDepth}
}
