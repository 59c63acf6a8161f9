// Package omap is a map that remembers the order its keys were first set in.
package omap

import (
	"bytes"
	"encoding/json"
	"fmt"
)

type Map[K comparable, V any] struct {
	keys   []K
	values []V
	index  map[K]int
}

func New[K comparable, V any]() *Map[K, V] {
	return &Map[K, V]{
		keys:   make([]K, 0),
		values: make([]V, 0),
		index:  make(map[K]int),
	}
}

// Set stores v under k. Overwriting keeps the original position of k.
func (m *Map[K, V]) Set(k K, v V) {
	if i, ok := m.index[k]; ok {
		m.values[i] = v
		return
	}
	m.index[k] = len(m.keys)
	m.keys = append(m.keys, k)
	m.values = append(m.values, v)
}

func (m *Map[K, V]) Get(k K) (V, bool) {
	i, ok := m.index[k]
	if ok {
		return m.values[i], true
	}
	var zero V
	return zero, false
}

// At returns the i-th entry in insertion order.
func (m *Map[K, V]) At(i int) (K, V) {
	return m.keys[i], m.values[i]
}

func (m *Map[K, V]) Len() int {
	return len(m.keys)
}

func (m *Map[K, V]) Keys() []K {
	return append([]K(nil), m.keys...)
}

func (m *Map[K, V]) Values() []V {
	return append([]V(nil), m.values...)
}

func (m *Map[K, V]) Each(cb func(k K, v V)) {
	for i, k := range m.keys {
		cb(k, m.values[i])
	}
}

// MarshalJSON writes the entries as a JSON object in insertion order. Keys are formatted with %v.
func (m *Map[K, V]) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(fmt.Sprint(k))
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(m.values[i])
		if err != nil {
			return nil, fmt.Errorf("value of %v: %w", k, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
