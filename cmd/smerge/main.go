// Merges two key-sorted text streams in a single forward pass, without loading either into
// memory. Inputs are line-oriented files of key<TAB>value records, already sorted by key; the
// tool zips, joins or interleaves them and writes the merged records to stdout. Out-of-order
// input keys abort the run at the offending line.

package main

import (
	"bufio"
	"flag"
	"fmt"
	"iter"
	"log/slog"
	"os"
	"strings"

	"github.com/nobletooth/sortedseq/pkg/scan"
	"github.com/nobletooth/sortedseq/pkg/sorted"
	"github.com/nobletooth/sortedseq/pkg/utils"
)

var (
	printVersion = flag.Bool("print_version", false, "Print the version and exit.")
	leftPath     = flag.String("left", "", "Path of the left sorted key<TAB>value file.")
	rightPath    = flag.String("right", "", "Path of the right sorted key<TAB>value file.")
	opFlag       = flag.String("op", "interleave", "Merge operation: zip/join/interleave.")
	joinTypeFlag = flag.String("join_type", "full", "Join type for zip/join ops: full/left/right/inner.")
	orderFlag    = flag.String("order", "asc", "Declared key order of both inputs: asc/desc.")
	keyGlob      = flag.String("key_glob", "", "Optional glob pattern; keys not matching it are dropped.")
	sieveKeys    = flag.Uint("sieve_keys", 0, "When positive, pre-scan the right file into a Bloom filter "+
		"of roughly this many keys and drop left records with definitely-unmatched keys before merging.")
	sieveFPRate = flag.Float64("sieve_fp_rate", 0.01, "False positive rate of the -sieve_keys Bloom filter.")
	digestFlag  = flag.Bool("digest", false, "Additionally print the xxhash64 digest of the merged stream to stderr.")
)

// tsvRecords lazily reads `path` as key<TAB>value lines. Re-traversing reopens the file, so the
// same sequence can feed both the merge pass and the digest pass.
func tsvRecords(path string) iter.Seq[utils.Pair[string, string]] {
	return func(yield func(utils.Pair[string, string]) bool) {
		file, err := os.Open(path)
		if err != nil {
			slog.Error("Failed to open input file.", "path", path, "error", err)
			return
		}
		defer func() { _ = file.Close() }()
		scanner := bufio.NewScanner(file)
		scanner.Buffer(make([]byte, 0, 64<<10), 1<<20)
		for scanner.Scan() {
			key, value, _ := strings.Cut(scanner.Text(), "\t")
			if !yield(utils.Pair[string, string]{Key: key, Value: value}) {
				return
			}
		}
		if err := scanner.Err(); err != nil {
			slog.Error("Failed while reading input file.", "path", path, "error", err)
		}
	}
}

func parseOrder(name string) (sorted.Order, error) {
	switch name {
	case "asc":
		return sorted.Ascending, nil
	case "desc":
		return sorted.Descending, nil
	default:
		return sorted.Ascending, fmt.Errorf("unsupported order %q", name)
	}
}

func parseJoinType(name string) (sorted.JoinType, error) {
	switch name {
	case "full":
		return sorted.FullOuter, nil
	case "left":
		return sorted.LeftOuter, nil
	case "right":
		return sorted.RightOuter, nil
	case "inner":
		return sorted.Inner, nil
	default:
		return sorted.FullOuter, fmt.Errorf("unsupported join type %q", name)
	}
}

// formatSides renders a merge step as a single comma-separated output value.
func formatSides(_ string, left string, leftOK bool, right string, rightOK bool) string {
	switch {
	case leftOK && rightOK:
		return left + "," + right
	case leftOK:
		return left + ","
	default:
		return "," + right
	}
}

// buildPipeline assembles the merged stream out of the two inputs per the given settings.
func buildPipeline(left, right sorted.KeyValueSeq[string, string], op string,
	joinType sorted.JoinType) (sorted.KeyValueSeq[string, string], error) {
	switch op {
	case "zip":
		return sorted.MergeByKey(left, right, joinType, formatSides)
	case "join":
		return sorted.JoinByKey(left, right, joinType, formatSides)
	case "interleave":
		return sorted.InterleaveByKey(left, right)
	default:
		return sorted.KeyValueSeq[string, string]{}, fmt.Errorf("unsupported op %q", op)
	}
}

func run() error {
	order, err := parseOrder(*orderFlag)
	if err != nil {
		return err
	}
	joinType, err := parseJoinType(*joinTypeFlag)
	if err != nil {
		return err
	}
	for _, path := range []string{*leftPath, *rightPath} {
		if path == "" {
			return fmt.Errorf("both -left and -right input files are required")
		}
		if _, err := os.Stat(path); err != nil {
			return fmt.Errorf("failed to stat input file: %w", err)
		}
	}

	left, err := sorted.AssertKeyValues(tsvRecords(*leftPath), strings.Compare, order)
	if err != nil {
		return err
	}
	right, err := sorted.AssertKeyValues(tsvRecords(*rightPath), strings.Compare, order)
	if err != nil {
		return err
	}

	if *sieveKeys > 0 { // Pre-scan the right side and drop definitely-unmatched left records.
		sieve, err := scan.BuildKeySieve(right, *sieveKeys, *sieveFPRate)
		if err != nil {
			return fmt.Errorf("failed to build key sieve: %w", err)
		}
		left = scan.SiftByKey(sieve, left)
	}

	merged, err := buildPipeline(left, right, *opFlag, joinType)
	if err != nil {
		return err
	}
	if *keyGlob != "" {
		merged = scan.MatchGlob(*keyGlob, merged)
	}

	out := bufio.NewWriter(os.Stdout)
	records := 0
	for pair, err := range merged.All() {
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(out, "%s\t%s\n", pair.Key, pair.Value); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		records++
	}
	if err := out.Flush(); err != nil {
		return fmt.Errorf("failed to flush output: %w", err)
	}
	slog.Debug("Merged input streams.", "records", records, "op", *opFlag)

	if *digestFlag { // The inputs are files, so the pipeline can be traversed a second time.
		digest, err := scan.Digest(merged)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "xxhash64:%016x\n", digest)
	}
	return nil
}

func main() {
	flag.Parse()
	utils.InitLogging()

	if *printVersion {
		slog.Info("Smerge build info.", "version", utils.Version, "commit", utils.Commit, "build", utils.BuildTime)
		return
	}

	if err := run(); err != nil {
		slog.Error("Smerge failed.", "err", err)
		os.Exit(1)
	}
}
