package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nobletooth/sortedseq/pkg/sorted"
	"github.com/nobletooth/sortedseq/pkg/utils"
)

func writeTSV(t *testing.T, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.tsv")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644))
	return path
}

func TestParseOrder(t *testing.T) {
	order, err := parseOrder("asc")
	require.NoError(t, err)
	assert.Equal(t, sorted.Ascending, order)
	order, err = parseOrder("desc")
	require.NoError(t, err)
	assert.Equal(t, sorted.Descending, order)
	_, err = parseOrder("sideways")
	assert.Error(t, err)
}

func TestParseJoinType(t *testing.T) {
	for name, expected := range map[string]sorted.JoinType{
		"full": sorted.FullOuter, "left": sorted.LeftOuter, "right": sorted.RightOuter, "inner": sorted.Inner,
	} {
		joinType, err := parseJoinType(name)
		require.NoError(t, err)
		assert.Equal(t, expected, joinType)
	}
	_, err := parseJoinType("outer")
	assert.Error(t, err)
}

func TestTSVRecords(t *testing.T) {
	path := writeTSV(t, "a\t1", "b\t2", "c")
	var got []utils.Pair[string, string]
	for pair := range tsvRecords(path) {
		got = append(got, pair)
	}
	expected := []utils.Pair[string, string]{
		utils.KV("a", "1"), utils.KV("b", "2"), utils.KV("c", ""),
	}
	assert.Equal(t, expected, got)
}

func TestBuildPipelineZip(t *testing.T) {
	leftPath := writeTSV(t, "a\t1", "b\t2")
	rightPath := writeTSV(t, "b\tx", "c\ty")
	left, err := sorted.AssertKeyValues(tsvRecords(leftPath), strings.Compare, sorted.Ascending)
	require.NoError(t, err)
	right, err := sorted.AssertKeyValues(tsvRecords(rightPath), strings.Compare, sorted.Ascending)
	require.NoError(t, err)

	merged, err := buildPipeline(left, right, "zip", sorted.FullOuter)
	require.NoError(t, err)
	got, err := merged.Collect()
	require.NoError(t, err)
	expected := []utils.Pair[string, string]{
		utils.KV("a", "1,"), utils.KV("b", "2,x"), utils.KV("c", ",y"),
	}
	assert.Equal(t, expected, got)
}

func TestBuildPipelineInterleaveIsRetraversable(t *testing.T) {
	leftPath := writeTSV(t, "a\t1", "b\t2")
	rightPath := writeTSV(t, "b\t3")
	left, err := sorted.AssertKeyValues(tsvRecords(leftPath), strings.Compare, sorted.Ascending)
	require.NoError(t, err)
	right, err := sorted.AssertKeyValues(tsvRecords(rightPath), strings.Compare, sorted.Ascending)
	require.NoError(t, err)

	merged, err := buildPipeline(left, right, "interleave", sorted.FullOuter)
	require.NoError(t, err)
	expected := []utils.Pair[string, string]{
		utils.KV("a", "1"), utils.KV("b", "2"), utils.KV("b", "3"),
	}
	for range 2 { // File-backed producers regenerate, so the digest pass can rerun the pipeline.
		got, err := merged.Collect()
		require.NoError(t, err)
		assert.Equal(t, expected, got)
	}
}

func TestBuildPipelineUnsortedInputFails(t *testing.T) {
	leftPath := writeTSV(t, "b\t1", "a\t2")
	rightPath := writeTSV(t, "a\tx")
	left, err := sorted.AssertKeyValues(tsvRecords(leftPath), strings.Compare, sorted.Ascending)
	require.NoError(t, err)
	right, err := sorted.AssertKeyValues(tsvRecords(rightPath), strings.Compare, sorted.Ascending)
	require.NoError(t, err)

	merged, err := buildPipeline(left, right, "join", sorted.FullOuter)
	require.NoError(t, err)
	_, err = merged.Collect()
	assert.ErrorIs(t, err, sorted.ErrNotSorted)
}

func TestBuildPipelineUnsupportedOp(t *testing.T) {
	_, err := buildPipeline(sorted.KeyValueSeq[string, string]{}, sorted.KeyValueSeq[string, string]{},
		"shuffle", sorted.FullOuter)
	assert.Error(t, err)
}
