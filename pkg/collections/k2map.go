// Package collections holds small generic data structures shared by the
// rest of geobatch. K2Map is the two-key map that backs the driver
// registry: a value addressed by a pair of keys rather than one.
package collections

// K2Map is a map from a pair of keys (K1, K2) to a value V. It is backed by
// a map of maps; insertion under a given k1 does not disturb other entries
// sharing that k1. Iteration order is unspecified, matching Go's own map
// iteration guarantees.
type K2Map[K1 comparable, K2 comparable, V any] struct {
	inner map[K1]map[K2]V
}

// NewK2Map constructs an empty two-key map.
func NewK2Map[K1 comparable, K2 comparable, V any]() *K2Map[K1, K2, V] {
	return &K2Map[K1, K2, V]{inner: make(map[K1]map[K2]V)}
}

// Insert stores v under (k1, k2), overwriting any existing value.
func (m *K2Map[K1, K2, V]) Insert(k1 K1, k2 K2, v V) {
	inner, ok := m.inner[k1]
	if !ok {
		inner = make(map[K2]V)
		m.inner[k1] = inner
	}
	inner[k2] = v
}

// Get returns the value stored under (k1, k2) and whether it was present.
func (m *K2Map[K1, K2, V]) Get(k1 K1, k2 K2) (V, bool) {
	var zero V
	inner, ok := m.inner[k1]
	if !ok {
		return zero, false
	}
	v, ok := inner[k2]
	return v, ok
}

// Contains reports whether (k1, k2) has a stored value.
func (m *K2Map[K1, K2, V]) Contains(k1 K1, k2 K2) bool {
	_, ok := m.Get(k1, k2)
	return ok
}

// Len returns the total number of stored entries across all k1 buckets.
func (m *K2Map[K1, K2, V]) Len() int {
	n := 0
	for _, inner := range m.inner {
		n += len(inner)
	}
	return n
}

// K2Entry is one (k1, k2, v) triple yielded by Entries.
type K2Entry[K1 comparable, K2 comparable, V any] struct {
	K1 K1
	K2 K2
	V  V
}

// K2Key is one (k1, k2) pair yielded by Keys.
type K2Key[K1 comparable, K2 comparable] struct {
	K1 K1
	K2 K2
}

// Keys returns every (k1, k2) pair with a stored value.
func (m *K2Map[K1, K2, V]) Keys() []K2Key[K1, K2] {
	keys := make([]K2Key[K1, K2], 0, m.Len())
	for k1, inner := range m.inner {
		for k2 := range inner {
			keys = append(keys, K2Key[K1, K2]{K1: k1, K2: k2})
		}
	}
	return keys
}

// Values returns every stored value.
func (m *K2Map[K1, K2, V]) Values() []V {
	values := make([]V, 0, m.Len())
	for _, inner := range m.inner {
		for _, v := range inner {
			values = append(values, v)
		}
	}
	return values
}

// Entries returns every stored (k1, k2, v) triple.
func (m *K2Map[K1, K2, V]) Entries() []K2Entry[K1, K2, V] {
	entries := make([]K2Entry[K1, K2, V], 0, m.Len())
	for k1, inner := range m.inner {
		for k2, v := range inner {
			entries = append(entries, K2Entry[K1, K2, V]{K1: k1, K2: k2, V: v})
		}
	}
	return entries
}

// K1Entries returns every K2 map associated with a given k1, the
// registry's namespace-scoped listing.
func (m *K2Map[K1, K2, V]) K1Entries(k1 K1) map[K2]V {
	inner, ok := m.inner[k1]
	if !ok {
		return nil
	}
	out := make(map[K2]V, len(inner))
	for k2, v := range inner {
		out[k2] = v
	}
	return out
}
