package utils

// CompareFn defines a three-way comparison for keys of type T.
// It must return a negative value if x < y, 0 if x == y, and a positive value if x > y.
type CompareFn[T any] func(x, y T) int

// Reverse flips the direction of a comparator. A stream whose keys descend under a comparator
// ascends under its reverse, and the other way around.
func Reverse[T any](compare CompareFn[T]) CompareFn[T] {
	return func(x, y T) int { return compare(y, x) }
}
