package scan

import (
	"github.com/cespare/xxhash/v2"

	"github.com/nobletooth/sortedseq/pkg/sorted"
)

// Separator bytes between fields and pairs; without them (a,bc) and (ab,c) would hash alike.
const (
	fieldSeparator = 0x00
	pairSeparator  = 0x01
)

// Digest drains a string stream and returns an xxhash64 digest over its keys and values, in
// stream order. Two streams digest equal iff they hold the same pairs in the same order, modulo
// hash collisions; useful for cheap verification that two merge pipelines produced the same
// output.
func Digest(pairs sorted.KeyValueSeq[string, string]) (uint64, error) {
	digest := xxhash.New()
	for pair, err := range pairs.All() {
		if err != nil {
			return 0, err
		}
		_, _ = digest.WriteString(pair.Key)
		_, _ = digest.Write([]byte{fieldSeparator})
		_, _ = digest.WriteString(pair.Value)
		_, _ = digest.Write([]byte{pairSeparator})
	}
	return digest.Sum64(), nil
}
