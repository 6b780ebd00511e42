// Package smallkv provides a small fixed-capacity buffer for sorting
// caller-provided (key, value) string pairs before wrapping them in a
// context.SortedSlice. It exists because building a hash map for a
// handful of template parameters costs more than the lookups it would
// save (see design notes in SPEC_FULL.md §3.5): most calls pass well
// under inlineCap entries, so the common path copies into the Buffer's
// fixed array with no slice growth. The Buffer itself is allocated once
// by CopySorted and, since the caller keeps the returned pointer, lives
// on the heap.
package smallkv

import "sort"

// inlineCap is the number of entries kept in the fixed array before
// spilling into the overflow slice. Chosen to match the "designed for
// ≤5 entries" guidance in the spec with headroom.
const inlineCap = 8

// KV is one (key, value) pair.
type KV struct {
	Key   string
	Value string
}

// Buffer holds a copy of a caller's pairs, sorted by key. The zero value
// is an empty, usable Buffer.
type Buffer struct {
	inline   [inlineCap]KV
	n        int
	overflow []KV
}

// CopySorted copies pairs into a new Buffer and sorts the copy by key.
// The input is never mutated.
func CopySorted(pairs []KV) *Buffer {
	b := &Buffer{}
	for _, kv := range pairs {
		b.append(kv)
	}
	b.sort()
	return b
}

func (b *Buffer) append(kv KV) {
	if b.n < inlineCap {
		b.inline[b.n] = kv
		b.n++
		return
	}
	b.overflow = append(b.overflow, kv)
}

func (b *Buffer) sort() {
	sort.Slice(b.inline[:b.n], func(i, j int) bool { return b.inline[i].Key < b.inline[j].Key })
	if len(b.overflow) == 0 {
		return
	}
	// Merge the (now sorted) inline entries with the overflow entries by
	// copying the whole logical sequence into one temporary slice, sorting
	// it, and writing it back into the inline array and overflow slice.
	all := make([]KV, 0, b.n+len(b.overflow))
	all = append(all, b.inline[:b.n]...)
	all = append(all, b.overflow...)
	sort.Slice(all, func(i, j int) bool { return all[i].Key < all[j].Key })
	for i := 0; i < b.n; i++ {
		b.inline[i] = all[i]
	}
	b.overflow = append(b.overflow[:0], all[b.n:]...)
}

// Len returns the number of entries in the buffer.
func (b *Buffer) Len() int {
	return b.n + len(b.overflow)
}

// At returns the i-th entry in sorted order.
func (b *Buffer) At(i int) KV {
	if i < b.n {
		return b.inline[i]
	}
	return b.overflow[i-b.n]
}

// Lookup binary-searches the buffer for key.
func (b *Buffer) Lookup(key string) (string, bool) {
	n := b.Len()
	idx := sort.Search(n, func(i int) bool { return b.At(i).Key >= key })
	if idx < n && b.At(idx).Key == key {
		return b.At(idx).Value, true
	}
	return "", false
}
