// Sortedness is a caller promise, not something this package can afford to pre-scan for: inputs
// may be huge or infinite. The validating wrapper below checks the promise one adjacent key pair
// at a time while the stream is consumed, so a violation surfaces exactly at the offending
// element and everything before it has already been yielded unchanged.

package sorted

import (
	"fmt"
	"iter"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/nobletooth/sortedseq/pkg/utils"
)

var violationsMetric = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "sorted_violations_total",
	Help: "The number of out-of-order keys observed while validating sorted streams",
}, []string{
	"order", // The declared order the violating stream claimed to follow.
})

// assertOrdered wraps `src` with an incremental order check against `compare` and `order`.
// The result replays the source pairs unchanged until the first key that breaks the order,
// at which point it yields ErrNotSorted once and stops. Internally built sequences skip this
// wrapper entirely; see trustedKeyValues.
func assertOrdered[K any, V any](src iter.Seq[utils.Pair[K, V]], compare utils.CompareFn[K],
	order Order) iter.Seq2[utils.Pair[K, V], error] {
	return func(yield func(utils.Pair[K, V], error) bool) {
		var prevKey K
		seenAny := false
		for pair := range src {
			if seenAny && order.violates(compare(prevKey, pair.Key)) {
				violationsMetric.WithLabelValues(order.String()).Inc()
				yield(utils.Pair[K, V]{}, fmt.Errorf("%w: key %v after %v (%s)",
					ErrNotSorted, pair.Key, prevKey, order))
				return
			}
			prevKey, seenAny = pair.Key, true
			if !yield(pair, nil) {
				return
			}
		}
	}
}

// trusted adapts a raw pair sequence to the erroring traversal shape without any checking.
// Only combinators that locally preserve order may use it.
func trusted[K any, V any](src iter.Seq[utils.Pair[K, V]]) iter.Seq2[utils.Pair[K, V], error] {
	return func(yield func(utils.Pair[K, V], error) bool) {
		for pair := range src {
			if !yield(pair, nil) {
				return
			}
		}
	}
}
