package sorted

import "github.com/nobletooth/sortedseq/pkg/utils"

// GroupByKey coalesces every maximal run of equal adjacent keys into a single (key, values) pair,
// values in their original relative order. One group is emitted per run; the trailing open run is
// flushed when the source is exhausted, and an empty source yields no groups. Groups are always
// non-empty. The join engine builds its per-key cartesian expansion on top of this.
func (s KeyValueSeq[K, V]) GroupByKey() KeyValueSeq[K, []V] {
	return KeyValueSeq[K, []V]{
		compare: s.compare,
		order:   s.order,
		all: func(yield func(utils.Pair[K, []V], error) bool) {
			var run utils.Pair[K, []V]
			open := false
			for pair, err := range s.all {
				if err != nil {
					yield(utils.Pair[K, []V]{}, err)
					return
				}
				if open && s.compare(run.Key, pair.Key) == 0 {
					run.Value = append(run.Value, pair.Value)
					continue
				}
				if open && !yield(run, nil) {
					return
				}
				run = utils.Pair[K, []V]{Key: pair.Key, Value: []V{pair.Value}}
				open = true
			}
			if open { // Flush the trailing run.
				yield(run, nil)
			}
		},
	}
}
