// Package sorted implements streaming combinators over sequences that are known, by construction,
// to be ordered by a key. Sequences are lazy iter.Seq pipelines: nothing is buffered, every
// combinator is a single forward pass, and the sortedness claim of caller-supplied data is checked
// incrementally while the sequence is traversed, not in an upfront scan.
package sorted

import "errors"

// Order is the direction a sequence's keys are declared to follow.
// It is attached to a sequence at construction time and propagated unchanged through every
// order-preserving transform. Two sequences with different orders cannot be merged.
type Order int

const (
	Ascending Order = iota
	Descending
)

func (o Order) String() string {
	switch o {
	case Ascending:
		return "ascending"
	case Descending:
		return "descending"
	default:
		return "unknown"
	}
}

var (
	// ErrNotSorted is reported lazily, mid traversal, the first time a key violates the declared
	// order relative to its predecessor. Elements yielded before the violation remain valid.
	ErrNotSorted = errors.New("sequence is not sorted by its declared order")
	// ErrOrderMismatch is reported eagerly when a binary operation is given two sequences with
	// different declared orders, before any element is pulled from either side.
	ErrOrderMismatch = errors.New("sequences declare different sort orders")
)

// violates reports whether a comparison result between a key and its successor breaks the order.
// Equal adjacent keys are always permitted; the ordering is non-strict.
func (o Order) violates(prevToNext int) bool {
	if o == Descending {
		return prevToNext < 0
	}
	return prevToNext > 0
}

// precedes reports whether a comparison result means the left key comes strictly before the
// right key under the order. Used by the merge engine to classify two-pointer steps.
func (o Order) precedes(leftToRight int) bool {
	if o == Descending {
		return leftToRight > 0
	}
	return leftToRight < 0
}
