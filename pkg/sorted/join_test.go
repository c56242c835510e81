package sorted

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nobletooth/sortedseq/pkg/utils"
)

func TestJoinDirectionalVariants(t *testing.T) {
	newLeft := func() KeyValueSeq[int, string] {
		return ascKV(t, utils.KV(1, "a"), utils.KV(2, "b1"), utils.KV(2, "b2"))
	}
	newRight := func() KeyValueSeq[int, string] {
		return ascKV(t, utils.KV(2, "x"), utils.KV(3, "z"))
	}
	key2 := []utils.Pair[int, Joined[string, string]]{
		utils.KV(2, matched("b1", "x")), utils.KV(2, matched("b2", "x")),
	}

	inner, err := InnerJoin(newLeft(), newRight())
	require.NoError(t, err)
	got, err := inner.Collect()
	require.NoError(t, err)
	assert.Equal(t, key2, got)

	left, err := LeftOuterJoin(newLeft(), newRight())
	require.NoError(t, err)
	got, err = left.Collect()
	require.NoError(t, err)
	assert.Equal(t, append([]utils.Pair[int, Joined[string, string]]{utils.KV(1, leftOnly("a"))}, key2...), got)

	right, err := RightOuterJoin(newLeft(), newRight())
	require.NoError(t, err)
	got, err = right.Collect()
	require.NoError(t, err)
	assert.Equal(t, append(append([]utils.Pair[int, Joined[string, string]]{}, key2...),
		utils.KV(3, rightOnly("z"))), got)

	full, err := FullOuterJoin(newLeft(), newRight())
	require.NoError(t, err)
	got, err = full.Collect()
	require.NoError(t, err)
	expected := append([]utils.Pair[int, Joined[string, string]]{utils.KV(1, leftOnly("a"))}, key2...)
	expected = append(expected, utils.KV(3, rightOnly("z")))
	assert.Equal(t, expected, got)
}

func TestJoinFuncVariants(t *testing.T) {
	left := ascKV(t, utils.KV(1, "a"), utils.KV(2, "b"))
	right := ascKV(t, utils.KV(2, "x"), utils.KV(3, "z"))

	joined, err := InnerJoinFunc(left, right, func(key int, l, r string) string { return l + r })
	require.NoError(t, err)
	got, err := joined.Collect()
	require.NoError(t, err)
	assert.Equal(t, []utils.Pair[int, string]{utils.KV(2, "bx")}, got)

	merged, err := LeftOuterJoinFunc(left, right,
		func(key int, l string, leftOK bool, r string, rightOK bool) string {
			if !rightOK {
				return l + "?"
			}
			return l + r
		})
	require.NoError(t, err)
	got, err = merged.Collect()
	require.NoError(t, err)
	assert.Equal(t, []utils.Pair[int, string]{utils.KV(1, "a?"), utils.KV(2, "bx")}, got)
}

func TestJoinDescending(t *testing.T) {
	left := descKV(t, utils.KV(3, "c"), utils.KV(2, "b1"), utils.KV(2, "b2"))
	right := descKV(t, utils.KV(2, "x1"), utils.KV(2, "x2"))
	joined, err := FullOuterJoin(left, right)
	require.NoError(t, err)
	got, err := joined.Collect()
	require.NoError(t, err)
	expected := []utils.Pair[int, Joined[string, string]]{
		utils.KV(3, leftOnly("c")),
		utils.KV(2, matched("b1", "x1")),
		utils.KV(2, matched("b1", "x2")),
		utils.KV(2, matched("b2", "x1")),
		utils.KV(2, matched("b2", "x2")),
	}
	assert.Equal(t, expected, got)
}

func TestJoinPropagatesValidationError(t *testing.T) {
	left := ascKV(t, utils.KV(2, "a"), utils.KV(1, "b"))
	right := ascKV(t, utils.KV(1, "x"))
	joined, err := FullOuterJoin(left, right)
	require.NoError(t, err)
	_, err = joined.Collect()
	assert.ErrorIs(t, err, ErrNotSorted)
}
