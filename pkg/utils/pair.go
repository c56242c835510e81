// Pair is the element type every sorted stream in this module is built from.

package utils

type Pair[K any, V any] struct {
	Key   K
	Value V
}

// KV is a shorthand constructor, mostly useful in tests and table literals.
func KV[K any, V any](key K, value V) Pair[K, V] {
	return Pair[K, V]{Key: key, Value: value}
}
