// Package orderedmap implements a map that remembers insertion order
// and rejects duplicate keys. Attribute lists are stored in it.
package orderedmap

import (
	"errors"
	"iter"
)

var ErrDuplicateEntry = errors.New("duplicate entry")

type Map[K comparable, V any] struct {
	entries []K
	keys    map[K]V
}

func New[K comparable, V any]() *Map[K, V] {
	return &Map[K, V]{
		keys: make(map[K]V),
	}
}

// Set adds a new entry. Setting a key that is already present returns
// ErrDuplicateEntry and leaves the map untouched.
func (m *Map[K, V]) Set(key K, value V) error {
	if _, exists := m.keys[key]; exists {
		return ErrDuplicateEntry
	}
	m.entries = append(m.entries, key)
	m.keys[key] = value
	return nil
}

func (m *Map[K, V]) Get(key K) (V, bool) {
	v, ok := m.keys[key]
	return v, ok
}

func (m *Map[K, V]) Len() int {
	return len(m.entries)
}

// Clear removes every entry, keeping the allocated storage.
func (m *Map[K, V]) Clear() {
	clear(m.keys)
	m.entries = m.entries[:0]
}

// Range iterates over the entries in insertion order.
func (m *Map[K, V]) Range() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for _, k := range m.entries {
			if !yield(k, m.keys[k]) {
				break
			}
		}
	}
}

// Values appends the values in insertion order to dst.
func (m *Map[K, V]) Values(dst []V) []V {
	for _, k := range m.entries {
		dst = append(dst, m.keys[k])
	}
	return dst
}
