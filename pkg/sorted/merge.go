// The two-pointer merge engine. Both inputs are already sorted the same way, so one pending pair
// per side is enough state to classify every step as left-only, right-only or matched, and each
// step advances only the side(s) that participated. This yields zip semantics: at most one left
// and one right value combine per step. Join semantics (cartesian expansion of duplicate keys)
// are layered on top in join.go by running the same loop over grouped streams.

package sorted

import (
	"errors"
	"fmt"
	"iter"

	"github.com/nobletooth/sortedseq/pkg/utils"
)

// JoinType selects which unmatched steps of a merge are emitted. Matched steps always are.
type JoinType int

const (
	FullOuter JoinType = iota
	LeftOuter
	RightOuter
	Inner
)

func (jt JoinType) String() string {
	switch jt {
	case FullOuter:
		return "full_outer"
	case LeftOuter:
		return "left_outer"
	case RightOuter:
		return "right_outer"
	case Inner:
		return "inner"
	default:
		return "unknown"
	}
}

// emitsLeftOnly reports whether a step with no matching right key produces output.
func (jt JoinType) emitsLeftOnly() bool {
	return jt == FullOuter || jt == LeftOuter
}

// emitsRightOnly reports whether a step with no matching left key produces output.
func (jt JoinType) emitsRightOnly() bool {
	return jt == FullOuter || jt == RightOuter
}

// MergeFn combines the values both sides hold for a key into one output value. The ok flags say
// which sides participated; at least one is always true, and absence is reported through the
// flag rather than a sentinel value.
type MergeFn[K any, L any, R any, Out any] func(key K, left L, leftOK bool, right R, rightOK bool) Out

// Joined is the default pairing emitted when no merge function is supplied.
type Joined[L any, R any] struct {
	Left    L
	LeftOK  bool
	Right   R
	RightOK bool
}

// JoinValues is the MergeFn used by the no-function merge variants.
func JoinValues[K any, L any, R any](_ K, left L, leftOK bool, right R, rightOK bool) Joined[L, R] {
	return Joined[L, R]{Left: left, LeftOK: leftOK, Right: right, RightOK: rightOK}
}

// checkMergeable is the eager half of merge error handling: it runs at call time, before any
// element is pulled from either operand.
func checkMergeable[K any, L any, R any](left KeyValueSeq[K, L], right KeyValueSeq[K, R], joinType JoinType) error {
	if left.all == nil || right.all == nil {
		return errors.New("expected two constructed sequences")
	}
	if joinType < FullOuter || joinType > Inner {
		return fmt.Errorf("unsupported join type %d", joinType)
	}
	if left.order != right.order {
		return fmt.Errorf("%w: left is %s, right is %s", ErrOrderMismatch, left.order, right.order)
	}
	return nil
}

// cursor holds one side's pending pair, following the two-state (pending / exhausted) shape each
// side of the merge steps through.
type cursor[K any, V any] struct {
	pending utils.Pair[K, V]
	ok      bool
	err     error
}

func advance[K any, V any](c *cursor[K, V], next func() (utils.Pair[K, V], error, bool)) {
	pair, err, ok := next()
	c.pending, c.ok = pair, ok
	if ok && err != nil {
		c.ok, c.err = false, err
	}
}

// MergeByKey synchronizes two sequences sorted the same way and merges their values key by key
// with zip semantics: every step pairs at most one value per side, so duplicate keys on one side
// match positionally against duplicates on the other and any excess is emitted as one-sided
// steps. Emission of one-sided steps is gated by `joinType`. The order mismatch check is eager;
// sortedness errors from either operand surface lazily through the result's traversal.
func MergeByKey[K any, L any, R any, Out any](left KeyValueSeq[K, L], right KeyValueSeq[K, R],
	joinType JoinType, merge MergeFn[K, L, R, Out]) (KeyValueSeq[K, Out], error) {
	if err := checkMergeable(left, right, joinType); err != nil {
		return KeyValueSeq[K, Out]{}, err
	}
	if merge == nil {
		return KeyValueSeq[K, Out]{}, errors.New("expected a non-nil merge function")
	}

	all := func(yield func(utils.Pair[K, Out], error) bool) {
		nextLeft, stopLeft := iter.Pull2(left.all)
		defer stopLeft()
		nextRight, stopRight := iter.Pull2(right.all)
		defer stopRight()

		var l cursor[K, L]
		var r cursor[K, R]
		advance(&l, nextLeft)
		advance(&r, nextRight)

		emit := func(key K, out Out) bool { return yield(utils.Pair[K, Out]{Key: key, Value: out}, nil) }
		fail := func(err error) { yield(utils.Pair[K, Out]{}, err) }

		for (l.ok || r.ok) && l.err == nil && r.err == nil {
			var leftOnly, rightOnly bool
			switch {
			case !l.ok:
				rightOnly = true
			case !r.ok:
				leftOnly = true
			default:
				if cmp := left.compare(l.pending.Key, r.pending.Key); cmp != 0 {
					leftOnly = left.order.precedes(cmp)
					rightOnly = !leftOnly
				}
			}

			switch {
			case leftOnly:
				if joinType.emitsLeftOnly() {
					var absent R
					if !emit(l.pending.Key, merge(l.pending.Key, l.pending.Value, true, absent, false)) {
						return
					}
				}
				advance(&l, nextLeft)
			case rightOnly:
				if joinType.emitsRightOnly() {
					var absent L
					if !emit(r.pending.Key, merge(r.pending.Key, absent, false, r.pending.Value, true)) {
						return
					}
				}
				advance(&r, nextRight)
			default: // Matched steps are emitted for every join type.
				if !emit(l.pending.Key, merge(l.pending.Key, l.pending.Value, true, r.pending.Value, true)) {
					return
				}
				advance(&l, nextLeft)
				advance(&r, nextRight)
			}
		}

		if l.err != nil {
			fail(l.err)
		} else if r.err != nil {
			fail(r.err)
		}
	}
	return KeyValueSeq[K, Out]{all: all, compare: left.compare, order: left.order}, nil
}

// ZipByKey is MergeByKey with the default pairing output.
func ZipByKey[K any, L any, R any](left KeyValueSeq[K, L], right KeyValueSeq[K, R],
	joinType JoinType) (KeyValueSeq[K, Joined[L, R]], error) {
	return MergeByKey(left, right, joinType, JoinValues[K, L, R])
}

// FullOuterZip emits one pairing per key occurrence across the union of both sides.
func FullOuterZip[K any, L any, R any](left KeyValueSeq[K, L],
	right KeyValueSeq[K, R]) (KeyValueSeq[K, Joined[L, R]], error) {
	return ZipByKey(left, right, FullOuter)
}

// FullOuterZipFunc is FullOuterZip with a caller-supplied merge function.
func FullOuterZipFunc[K any, L any, R any, Out any](left KeyValueSeq[K, L], right KeyValueSeq[K, R],
	merge MergeFn[K, L, R, Out]) (KeyValueSeq[K, Out], error) {
	return MergeByKey(left, right, FullOuter, merge)
}

// LeftOuterZip keeps every left occurrence and only the right values that match; the pairing's
// LeftOK flag is always true.
func LeftOuterZip[K any, L any, R any](left KeyValueSeq[K, L],
	right KeyValueSeq[K, R]) (KeyValueSeq[K, Joined[L, R]], error) {
	return ZipByKey(left, right, LeftOuter)
}

// LeftOuterZipFunc is LeftOuterZip with a caller-supplied merge function; the function is only
// ever called with leftOK == true.
func LeftOuterZipFunc[K any, L any, R any, Out any](left KeyValueSeq[K, L], right KeyValueSeq[K, R],
	merge MergeFn[K, L, R, Out]) (KeyValueSeq[K, Out], error) {
	return MergeByKey(left, right, LeftOuter, merge)
}

// RightOuterZip mirrors LeftOuterZip.
func RightOuterZip[K any, L any, R any](left KeyValueSeq[K, L],
	right KeyValueSeq[K, R]) (KeyValueSeq[K, Joined[L, R]], error) {
	return ZipByKey(left, right, RightOuter)
}

// RightOuterZipFunc mirrors LeftOuterZipFunc.
func RightOuterZipFunc[K any, L any, R any, Out any](left KeyValueSeq[K, L], right KeyValueSeq[K, R],
	merge MergeFn[K, L, R, Out]) (KeyValueSeq[K, Out], error) {
	return MergeByKey(left, right, RightOuter, merge)
}

// InnerZip emits pairings only for matched keys; both OK flags are always true.
func InnerZip[K any, L any, R any](left KeyValueSeq[K, L],
	right KeyValueSeq[K, R]) (KeyValueSeq[K, Joined[L, R]], error) {
	return ZipByKey(left, right, Inner)
}

// InnerZipFunc takes a merge function over both values directly since inner steps always have
// both sides present. The engine cannot reach this function with an absent side; if it ever did,
// that is a bug in the stepping loop, not bad caller data.
func InnerZipFunc[K any, L any, R any, Out any](left KeyValueSeq[K, L], right KeyValueSeq[K, R],
	merge func(key K, left L, right R) Out) (KeyValueSeq[K, Out], error) {
	if merge == nil {
		return KeyValueSeq[K, Out]{}, errors.New("expected a non-nil merge function")
	}
	return MergeByKey(left, right, Inner, func(key K, l L, leftOK bool, r R, rightOK bool) Out {
		if !leftOK || !rightOK {
			utils.RaiseInvariant("sorted", "inner_step_absent_side",
				"Inner merge step reached an absent side.", "leftOK", leftOK, "rightOK", rightOK)
			var zero Out
			return zero
		}
		return merge(key, l, r)
	})
}
