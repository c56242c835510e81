package sorted

// InterleaveByKey merges all elements of both sequences into one sorted stream. It is a full
// outer zip whose merge concatenates whichever values are present, left before right, flattened
// back into individual pairs. When both sides hold a value for the same key, the left value is
// emitted immediately before the right one; within each side the original relative order is kept.
func InterleaveByKey[K any, V any](left KeyValueSeq[K, V], right KeyValueSeq[K, V]) (KeyValueSeq[K, V], error) {
	concat := func(_ K, l V, leftOK bool, r V, rightOK bool) []V {
		values := make([]V, 0, 2)
		if leftOK {
			values = append(values, l)
		}
		if rightOK {
			values = append(values, r)
		}
		return values
	}
	zipped, err := MergeByKey(left, right, FullOuter, concat)
	if err != nil {
		return KeyValueSeq[K, V]{}, err
	}
	return flattenValues(zipped), nil
}
