package main

import (
	"cmp"
	"slices"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"

	"github.com/vnykmshr/seqflow/pkg/streaming/source"
	"github.com/vnykmshr/seqflow/pkg/streaming/stream"
)

func newJSONLCmd(a *app) *cobra.Command {
	var (
		group    bool
		distinct bool
	)

	cmd := &cobra.Command{
		Use:   "jsonl <file> <path>",
		Short: "Extract a field from every line of a JSON lines file",
		Long: `Extract the value at a gjson path from every line of a JSON lines file.
Lines without the field are skipped. --group prints how often each value occurs.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			values := stream.Map(
				source.JSONLines(args[0], args[1]).Filter(gjson.Result.Exists),
				gjson.Result.String,
			)
			if workers, ok := a.parallelWorkers(); ok {
				values = values.Parallel(workers)
			}

			if group {
				counts, err := stream.Collect(cmd.Context(), values,
					stream.GroupingByWith(func(v string) string { return v }, stream.Counting[string]()))
				if err != nil {
					return err
				}
				return printTable(a.out, countRows(counts))
			}

			if distinct {
				values = values.Distinct()
			}
			out, err := values.ToSlice(cmd.Context())
			if err != nil {
				return err
			}
			return printLines(a.out, out)
		},
	}
	cmd.Flags().BoolVar(&group, "group", false, "count occurrences of each value")
	cmd.Flags().BoolVar(&distinct, "distinct", false, "print each value once")
	return cmd
}

// countRows orders counts by descending count, then by value.
func countRows(counts map[string]int64) [][2]string {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b string) int {
		if c := cmp.Compare(counts[b], counts[a]); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})

	rows := make([][2]string, len(keys))
	for i, k := range keys {
		rows[i] = [2]string{strconv.Quote(k), humanize.Comma(counts[k])}
	}
	return rows
}
