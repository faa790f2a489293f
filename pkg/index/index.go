// Package index provides a fixed-size hash index from int64 keys to values.
//
// The index uses separate chaining over a power-of-two bucket array. The bucket
// count is chosen by the caller at construction and never changes, so callers
// size it for the expected key cardinality. The index only holds references:
// removing a key hands the value back to the caller, who stays responsible for
// releasing it.
package index

import (
	"errors"
	"fmt"
)

// ErrDuplicateKey is returned by Insert when the key is already live.
var ErrDuplicateKey = errors.New("key already present in index")

// fibonacci hashing multiplier, 2^64 / golden ratio
const fibMultiplier uint64 = 0x9E3779B97F4A7C15

// Index maps int64 keys to values of type V.
type Index[V any] struct {
	buckets []*entry[V]
	shift   uint
	size    int

	// unlinked entries kept for reuse by Insert
	free *entry[V]
}

type entry[V any] struct {
	key   int64
	value V
	next  *entry[V]
}

// New creates an Index with at least the given number of buckets, rounded up
// to the next power of two.
func New[V any](buckets int) *Index[V] {
	n, bits := 1, uint(0)
	for n < buckets {
		n <<= 1
		bits++
	}

	return &Index[V]{
		buckets: make([]*entry[V], n),
		shift:   64 - bits,
	}
}

func (ix *Index[V]) slot(key int64) uint64 {
	return uint64(key) * fibMultiplier >> ix.shift
}

// Insert adds value under key. It never overwrites a live key.
func (ix *Index[V]) Insert(key int64, value V) error {
	s := ix.slot(key)
	for e := ix.buckets[s]; e != nil; e = e.next {
		if e.key == key {
			return fmt.Errorf("%w: %d", ErrDuplicateKey, key)
		}
	}

	e := ix.free
	if e != nil {
		ix.free = e.next
	} else {
		e = &entry[V]{}
	}
	e.key = key
	e.value = value
	e.next = ix.buckets[s]
	ix.buckets[s] = e
	ix.size++

	return nil
}

// Get returns the value stored under key.
func (ix *Index[V]) Get(key int64) (V, bool) {
	for e := ix.buckets[ix.slot(key)]; e != nil; e = e.next {
		if e.key == key {
			return e.value, true
		}
	}

	var zero V
	return zero, false
}

// Contains reports whether key is live.
func (ix *Index[V]) Contains(key int64) bool {
	_, ok := ix.Get(key)
	return ok
}

// Remove unlinks key and returns its value.
func (ix *Index[V]) Remove(key int64) (V, bool) {
	var zero V

	link := &ix.buckets[ix.slot(key)]
	for e := *link; e != nil; e = *link {
		if e.key != key {
			link = &e.next
			continue
		}

		*link = e.next
		value := e.value

		e.value = zero
		e.next = ix.free
		ix.free = e
		ix.size--

		return value, true
	}

	return zero, false
}

// Len returns the number of live keys.
func (ix *Index[V]) Len() int {
	return ix.size
}

// Buckets returns the fixed bucket count.
func (ix *Index[V]) Buckets() int {
	return len(ix.buckets)
}

// Range calls fn for every live entry until fn returns false. Iteration order
// is unspecified. fn must not modify the index.
func (ix *Index[V]) Range(fn func(key int64, value V) bool) {
	for _, head := range ix.buckets {
		for e := head; e != nil; e = e.next {
			if !fn(e.key, e.value) {
				return
			}
		}
	}
}

// Reset drops every entry. The bucket array is kept.
func (ix *Index[V]) Reset() {
	clear(ix.buckets)
	ix.size = 0
	ix.free = nil
}
