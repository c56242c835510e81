// Join semantics: where zip pairs at most one value per side per step, a join expands the
// cartesian product of all same-key values. Both sides are first grouped into per-key runs, the
// zip engine is run over the grouped streams, and every step's group pair is expanded with the
// left value varying slower. A one-sided step still emits one output per element of the present
// group, paired with an absent other side.

package sorted

import (
	"errors"

	"github.com/nobletooth/sortedseq/pkg/utils"
)

// JoinByKey merges two sequences sorted the same way with cartesian semantics, gated by
// `joinType`. The merge function is invoked once per expanded combination, never with both sides
// absent. Like MergeByKey, the order check is eager and sortedness errors are lazy.
func JoinByKey[K any, L any, R any, Out any](left KeyValueSeq[K, L], right KeyValueSeq[K, R],
	joinType JoinType, merge MergeFn[K, L, R, Out]) (KeyValueSeq[K, Out], error) {
	if merge == nil {
		return KeyValueSeq[K, Out]{}, errors.New("expected a non-nil merge function")
	}
	expand := func(key K, leftGroup []L, leftOK bool, rightGroup []R, rightOK bool) []Out {
		switch {
		case leftOK && rightOK:
			outs := make([]Out, 0, len(leftGroup)*len(rightGroup))
			for _, l := range leftGroup {
				for _, r := range rightGroup {
					outs = append(outs, merge(key, l, true, r, true))
				}
			}
			return outs
		case leftOK:
			outs := make([]Out, 0, len(leftGroup))
			var absent R
			for _, l := range leftGroup {
				outs = append(outs, merge(key, l, true, absent, false))
			}
			return outs
		default:
			outs := make([]Out, 0, len(rightGroup))
			var absent L
			for _, r := range rightGroup {
				outs = append(outs, merge(key, absent, false, r, true))
			}
			return outs
		}
	}
	grouped, err := MergeByKey(left.GroupByKey(), right.GroupByKey(), joinType, expand)
	if err != nil {
		return KeyValueSeq[K, Out]{}, err
	}
	return flattenValues(grouped), nil
}

// FullOuterJoin expands every key present on either side into default pairings.
func FullOuterJoin[K any, L any, R any](left KeyValueSeq[K, L],
	right KeyValueSeq[K, R]) (KeyValueSeq[K, Joined[L, R]], error) {
	return JoinByKey(left, right, FullOuter, JoinValues[K, L, R])
}

// FullOuterJoinFunc is FullOuterJoin with a caller-supplied merge function.
func FullOuterJoinFunc[K any, L any, R any, Out any](left KeyValueSeq[K, L], right KeyValueSeq[K, R],
	merge MergeFn[K, L, R, Out]) (KeyValueSeq[K, Out], error) {
	return JoinByKey(left, right, FullOuter, merge)
}

// LeftOuterJoin keeps every left value, paired against each matching right value or an absent
// right side.
func LeftOuterJoin[K any, L any, R any](left KeyValueSeq[K, L],
	right KeyValueSeq[K, R]) (KeyValueSeq[K, Joined[L, R]], error) {
	return JoinByKey(left, right, LeftOuter, JoinValues[K, L, R])
}

// LeftOuterJoinFunc is LeftOuterJoin with a caller-supplied merge function; leftOK is always true.
func LeftOuterJoinFunc[K any, L any, R any, Out any](left KeyValueSeq[K, L], right KeyValueSeq[K, R],
	merge MergeFn[K, L, R, Out]) (KeyValueSeq[K, Out], error) {
	return JoinByKey(left, right, LeftOuter, merge)
}

// RightOuterJoin mirrors LeftOuterJoin.
func RightOuterJoin[K any, L any, R any](left KeyValueSeq[K, L],
	right KeyValueSeq[K, R]) (KeyValueSeq[K, Joined[L, R]], error) {
	return JoinByKey(left, right, RightOuter, JoinValues[K, L, R])
}

// RightOuterJoinFunc mirrors LeftOuterJoinFunc.
func RightOuterJoinFunc[K any, L any, R any, Out any](left KeyValueSeq[K, L], right KeyValueSeq[K, R],
	merge MergeFn[K, L, R, Out]) (KeyValueSeq[K, Out], error) {
	return JoinByKey(left, right, RightOuter, merge)
}

// InnerJoin expands only matched keys; both OK flags are always true.
func InnerJoin[K any, L any, R any](left KeyValueSeq[K, L],
	right KeyValueSeq[K, R]) (KeyValueSeq[K, Joined[L, R]], error) {
	return JoinByKey(left, right, Inner, JoinValues[K, L, R])
}

// InnerJoinFunc takes a both-sides-present merge function, mirroring InnerZipFunc.
func InnerJoinFunc[K any, L any, R any, Out any](left KeyValueSeq[K, L], right KeyValueSeq[K, R],
	merge func(key K, left L, right R) Out) (KeyValueSeq[K, Out], error) {
	if merge == nil {
		return KeyValueSeq[K, Out]{}, errors.New("expected a non-nil merge function")
	}
	return JoinByKey(left, right, Inner, func(key K, l L, leftOK bool, r R, rightOK bool) Out {
		if !leftOK || !rightOK { // Inner steps always expand with both groups present.
			utils.RaiseInvariant("sorted", "inner_expansion_absent_side",
				"Inner join expansion reached an absent side.", "leftOK", leftOK, "rightOK", rightOK)
			var zero Out
			return zero
		}
		return merge(key, l, r)
	})
}
