// Key-implicit sequences: the key is derived from each element by a selector instead of being
// stored alongside it. Everything delegates to the key-value form with (derivedKey, element)
// pairs, and the element-facing surface unwraps results back to bare elements.

package sorted

import (
	"cmp"
	"errors"
	"iter"

	"github.com/nobletooth/sortedseq/pkg/utils"
)

// ElemSeq is a lazy stream of elements sorted by a key derived from each element.
type ElemSeq[K any, E any] struct {
	kv KeyValueSeq[K, E]
}

// AssertElems declares that `elems` is sorted under `order` by the key `selector` derives.
// The selector must be pure and deterministic; it is re-applied on every traversal.
func AssertElems[K any, E any](elems iter.Seq[E], selector func(elem E) K, compare utils.CompareFn[K],
	order Order) (ElemSeq[K, E], error) {
	if elems == nil {
		return ElemSeq[K, E]{}, errors.New("expected a non-nil element sequence")
	}
	if selector == nil {
		return ElemSeq[K, E]{}, errors.New("expected a non-nil key selector")
	}
	if compare == nil {
		return ElemSeq[K, E]{}, errors.New("expected a non-nil comparison function")
	}
	keyed := func(yield func(utils.Pair[K, E]) bool) {
		for elem := range elems {
			if !yield(utils.Pair[K, E]{Key: selector(elem), Value: elem}) {
				return
			}
		}
	}
	kv, err := AssertKeyValues(keyed, compare, order)
	if err != nil {
		return ElemSeq[K, E]{}, err
	}
	return ElemSeq[K, E]{kv: kv}, nil
}

// AssertNatural declares that `elems` follows its type's natural order.
func AssertNatural[E cmp.Ordered](elems iter.Seq[E], order Order) (ElemSeq[E, E], error) {
	return AssertElems(elems, func(elem E) E { return elem }, cmp.Compare, order)
}

// ByKey exposes the derived keys explicitly as a key-value sequence. No work is done; the
// element sequence already is one internally.
func (s ElemSeq[K, E]) ByKey() KeyValueSeq[K, E] {
	return s.kv
}

// Order returns the declared sort order of the derived keys.
func (s ElemSeq[K, E]) Order() Order {
	return s.kv.order
}

// Values traverses the elements, with the same lazy error contract as KeyValueSeq.All.
func (s ElemSeq[K, E]) Values() iter.Seq2[E, error] {
	return func(yield func(E, error) bool) {
		for pair, err := range s.kv.all {
			if !yield(pair.Value, err) || err != nil {
				return
			}
		}
	}
}

// Collect drains the elements into a slice, or returns the first traversal error.
func (s ElemSeq[K, E]) Collect() ([]E, error) {
	var elems []E
	for elem, err := range s.Values() {
		if err != nil {
			return nil, err
		}
		elems = append(elems, elem)
	}
	return elems, nil
}

// Filter drops elements that fail the predicate.
func (s ElemSeq[K, E]) Filter(keep func(elem E) bool) ElemSeq[K, E] {
	return ElemSeq[K, E]{kv: s.kv.FilterByValue(keep)}
}

// FilterByKey drops elements whose derived key fails the predicate.
func (s ElemSeq[K, E]) FilterByKey(keep func(key K) bool) ElemSeq[K, E] {
	return ElemSeq[K, E]{kv: s.kv.FilterByKey(keep)}
}

// DistinctByKey keeps the first element of every run of equal adjacent derived keys.
func (s ElemSeq[K, E]) DistinctByKey() ElemSeq[K, E] {
	return ElemSeq[K, E]{kv: s.kv.DistinctByKey()}
}

// GroupByKey coalesces runs of equal derived keys into (key, elements) pairs.
func (s ElemSeq[K, E]) GroupByKey() KeyValueSeq[K, []E] {
	return s.kv.GroupByKey()
}

// InterleaveElems merges all elements of both sequences into one sorted stream, left element
// before right on shared keys.
func InterleaveElems[K any, E any](left ElemSeq[K, E], right ElemSeq[K, E]) (ElemSeq[K, E], error) {
	kv, err := InterleaveByKey(left.kv, right.kv)
	if err != nil {
		return ElemSeq[K, E]{}, err
	}
	return ElemSeq[K, E]{kv: kv}, nil
}
