// Consumers routinely want only a key subspace of a sorted stream; this module implements glob
// matching over string-keyed sequences.

package scan

import (
	"v.io/v23/glob"

	"github.com/nobletooth/sortedseq/pkg/sorted"
)

// MatchGlob filters the `pairs` stream down to keys matching the given `pattern`.
// Filtering never reorders keys, so the result keeps the stream's declared order.
func MatchGlob[V any](pattern string, pairs sorted.KeyValueSeq[string, V]) sorted.KeyValueSeq[string, V] {
	// Parse the glob pattern.
	parsedPattern, err := glob.Parse(pattern)
	if err != nil { // If pattern is invalid, return an empty sequence.
		return pairs.FilterByKey(func(string) bool { return false })
	}
	return pairs.FilterByKey(func(key string) bool { return parsedPattern.Head().Match(key) })
}
