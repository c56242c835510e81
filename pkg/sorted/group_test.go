package sorted

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nobletooth/sortedseq/pkg/utils"
)

func TestGroupByKey(t *testing.T) {
	seq := ascKV(t, utils.KV(1, "a"), utils.KV(1, "b"), utils.KV(2, "c"))
	got, err := seq.GroupByKey().Collect()
	require.NoError(t, err)
	expected := []utils.Pair[int, []string]{utils.KV(1, []string{"a", "b"}), utils.KV(2, []string{"c"})}
	assert.Equal(t, expected, got)
}

func TestGroupByKeySingleRun(t *testing.T) {
	seq := ascKV(t, utils.KV(7, "a"), utils.KV(7, "b"), utils.KV(7, "c"))
	got, err := seq.GroupByKey().Collect()
	require.NoError(t, err)
	assert.Equal(t, []utils.Pair[int, []string]{utils.KV(7, []string{"a", "b", "c"})}, got)
}

func TestGroupByKeyEmpty(t *testing.T) {
	got, err := ascKV(t).GroupByKey().Collect()
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestGroupByKeyPropagatesValidationError(t *testing.T) {
	seq := ascKV(t, utils.KV(2, "a"), utils.KV(2, "b"), utils.KV(1, "c"))
	_, err := seq.GroupByKey().Collect()
	assert.ErrorIs(t, err, ErrNotSorted)
}
