package orderedmap

import (
	"errors"
	"iter"
)

var ErrDuplicateEntry = errors.New("duplicate entry")

// Map remembers insertion order. Keys can only be set once.
type Map[K comparable, V any] struct {
	entries []K
	keys    map[K]V
}

func New[K comparable, V any](size int) *Map[K, V] {
	return &Map[K, V]{
		entries: make([]K, 0, size),
		keys:    make(map[K]V, size),
	}
}

func (m *Map[K, V]) Set(key K, value V) error {
	_, exists := m.keys[key]
	if exists {
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

func (m *Map[K, V]) Range() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for _, k := range m.entries {
			v := m.keys[k]
			if !yield(k, v) {
				break
			}
		}
	}
}
