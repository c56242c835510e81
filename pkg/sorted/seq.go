package sorted

import (
	"errors"
	"iter"

	"github.com/nobletooth/sortedseq/pkg/utils"
)

// KeyValueSeq is a lazy stream of key-value pairs whose keys follow a declared Order.
// A KeyValueSeq built through AssertKeyValues re-checks the caller's sortedness claim on every
// traversal; one produced by a combinator in this package is trusted and skips the check, since
// the producing algorithm preserves order by construction. Values are immutable handles: every
// transform returns a new KeyValueSeq and the receiver stays usable.
//
// Traversal is single-pass and destructive per obtained iterator; whether the underlying producer
// can be traversed a second time depends on whether re-invoking it regenerates the data (an
// in-memory slices.Values source does, a network reader does not). That distinction is the
// caller's to manage.
type KeyValueSeq[K any, V any] struct {
	all     iter.Seq2[utils.Pair[K, V], error]
	compare utils.CompareFn[K]
	order   Order
}

// AssertKeyValues declares that `pairs` is sorted by key under `order` and wraps it for lazy
// validation: the claim is checked pair by pair during traversal, and the first violating key
// surfaces as ErrNotSorted at that point in the stream.
func AssertKeyValues[K any, V any](pairs iter.Seq[utils.Pair[K, V]], compare utils.CompareFn[K],
	order Order) (KeyValueSeq[K, V], error) {
	if pairs == nil {
		return KeyValueSeq[K, V]{}, errors.New("expected a non-nil pair sequence")
	}
	if compare == nil {
		return KeyValueSeq[K, V]{}, errors.New("expected a non-nil comparison function")
	}
	return KeyValueSeq[K, V]{all: assertOrdered(pairs, compare, order), compare: compare, order: order}, nil
}

// trustedKeyValues builds a sequence that skips validation. Restricted to combinators that can
// locally prove they preserve order; never offered to external callers.
func trustedKeyValues[K any, V any](pairs iter.Seq[utils.Pair[K, V]], compare utils.CompareFn[K],
	order Order) KeyValueSeq[K, V] {
	return KeyValueSeq[K, V]{all: trusted(pairs), compare: compare, order: order}
}

// derive keeps the receiver's order metadata while swapping in a transformed traversal.
func (s KeyValueSeq[K, V]) derive(all iter.Seq2[utils.Pair[K, V], error]) KeyValueSeq[K, V] {
	return KeyValueSeq[K, V]{all: all, compare: s.compare, order: s.order}
}

// Order returns the declared sort order of the sequence keys.
func (s KeyValueSeq[K, V]) Order() Order {
	return s.order
}

// All traverses the sequence. Pairs arrive with a nil error until either the source is exhausted
// or, for validated sequences, a key breaks the declared order, in which case the final step
// carries ErrNotSorted and iteration stops.
func (s KeyValueSeq[K, V]) All() iter.Seq2[utils.Pair[K, V], error] {
	return s.all
}

// Collect drains the sequence into a slice. Pairs produced before a sortedness violation are
// discarded when the violation is hit; only the error is returned.
func (s KeyValueSeq[K, V]) Collect() ([]utils.Pair[K, V], error) {
	var pairs []utils.Pair[K, V]
	for pair, err := range s.all {
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, pair)
	}
	return pairs, nil
}

// Filter drops pairs that fail the predicate. Filtering never reorders surviving keys, so the
// result needs no revalidation.
func (s KeyValueSeq[K, V]) Filter(keep func(key K, value V) bool) KeyValueSeq[K, V] {
	return s.derive(func(yield func(utils.Pair[K, V], error) bool) {
		for pair, err := range s.all {
			if err != nil {
				yield(utils.Pair[K, V]{}, err)
				return
			}
			if keep(pair.Key, pair.Value) && !yield(pair, nil) {
				return
			}
		}
	})
}

// FilterByKey drops pairs whose key fails the predicate.
func (s KeyValueSeq[K, V]) FilterByKey(keep func(key K) bool) KeyValueSeq[K, V] {
	return s.Filter(func(key K, _ V) bool { return keep(key) })
}

// FilterByValue drops pairs whose value fails the predicate.
func (s KeyValueSeq[K, V]) FilterByValue(keep func(value V) bool) KeyValueSeq[K, V] {
	return s.Filter(func(_ K, value V) bool { return keep(value) })
}

// DistinctByKey keeps only the first pair of every run of equal adjacent keys. Since the stream
// is sorted, equal keys are always adjacent, so this is a full per-key distinct in O(1) memory.
func (s KeyValueSeq[K, V]) DistinctByKey() KeyValueSeq[K, V] {
	return s.derive(func(yield func(utils.Pair[K, V], error) bool) {
		var prevKey K
		seenAny := false
		for pair, err := range s.all {
			if err != nil {
				yield(utils.Pair[K, V]{}, err)
				return
			}
			if seenAny && s.compare(prevKey, pair.Key) == 0 {
				continue
			}
			prevKey, seenAny = pair.Key, true
			if !yield(pair, nil) {
				return
			}
		}
	})
}

// MapValues applies a key-preserving transform to every value. Keys are untouched, so the result
// keeps the source order without revalidation. A top-level function rather than a method because
// the output value type is independent of the input's.
func MapValues[K any, V any, O any](s KeyValueSeq[K, V], transform func(value V) O) KeyValueSeq[K, O] {
	return KeyValueSeq[K, O]{
		compare: s.compare,
		order:   s.order,
		all: func(yield func(utils.Pair[K, O], error) bool) {
			for pair, err := range s.all {
				if err != nil {
					yield(utils.Pair[K, O]{}, err)
					return
				}
				if !yield(utils.Pair[K, O]{Key: pair.Key, Value: transform(pair.Value)}, nil) {
					return
				}
			}
		},
	}
}

// flattenValues expands every (key, values) pair into one pair per value, preserving slice order.
// Shared by the join engine's cartesian expansion and by InterleaveByKey.
func flattenValues[K any, V any](s KeyValueSeq[K, []V]) KeyValueSeq[K, V] {
	return KeyValueSeq[K, V]{
		compare: s.compare,
		order:   s.order,
		all: func(yield func(utils.Pair[K, V], error) bool) {
			for pair, err := range s.all {
				if err != nil {
					yield(utils.Pair[K, V]{}, err)
					return
				}
				for _, value := range pair.Value {
					if !yield(utils.Pair[K, V]{Key: pair.Key, Value: value}, nil) {
						return
					}
				}
			}
		},
	}
}
