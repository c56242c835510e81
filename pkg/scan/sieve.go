// A merge join over two mostly-disjoint streams spends nearly all of its steps emitting or
// discarding unmatched keys. When one side is small enough to pre-scan, a Bloom filter over its
// keys lets the other side drop definitely-unmatched pairs before they ever reach the engine.
// The filter is approximate: it may pass a key that has no match (the join stays correct since
// the engine re-checks every key), but it never drops one that does.

package scan

import (
	"errors"

	"github.com/bits-and-blooms/bloom/v3"

	"github.com/nobletooth/sortedseq/pkg/sorted"
)

// KeySieve is an approximate set of the keys one side of a merge holds.
type KeySieve struct {
	filter *bloom.BloomFilter
}

// BuildKeySieve drains `side` and records its distinct keys. `expectedKeys` and `fpRate` size the
// underlying filter. Building materializes keys (not values) into the filter, so reserve this for
// sides small enough to pre-scan; the side must be rebuilt or re-traversable to take part in the
// merge afterwards.
func BuildKeySieve[V any](side sorted.KeyValueSeq[string, V], expectedKeys uint, fpRate float64) (*KeySieve, error) {
	if expectedKeys == 0 {
		return nil, errors.New("expected a positive key count estimate")
	}
	if fpRate <= 0 || fpRate >= 1 {
		return nil, errors.New("expected a false positive rate in (0, 1)")
	}
	filter := bloom.NewWithEstimates(expectedKeys, fpRate)
	for pair, err := range side.DistinctByKey().All() {
		if err != nil {
			return nil, err
		}
		filter.AddString(pair.Key)
	}
	return &KeySieve{filter: filter}, nil
}

// MightContain reports whether the sieve may hold `key`. False is definite; true is probabilistic.
func (ks *KeySieve) MightContain(key string) bool {
	return ks.filter.TestString(key)
}

// SiftByKey drops pairs whose key is definitely absent from the sieve's side.
func SiftByKey[V any](sieve *KeySieve, pairs sorted.KeyValueSeq[string, V]) sorted.KeyValueSeq[string, V] {
	return pairs.FilterByKey(sieve.MightContain)
}
