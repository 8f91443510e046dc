package main

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vnykmshr/seqflow/pkg/streaming/source"
	"github.com/vnykmshr/seqflow/pkg/streaming/stream"
)

type linesOptions struct {
	contains string
	distinct bool
	sorted   bool
	skip     int64
	limit    int64
	count    bool
}

func newLinesCmd(a *app) *cobra.Command {
	var opts linesOptions

	cmd := &cobra.Command{
		Use:   "lines <file>",
		Short: "Filter, sort and page the lines of a text file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := source.Lines(args[0])
			if workers, ok := a.parallelWorkers(); ok {
				s = s.Parallel(workers)
			}
			s = applyLineOptions(s, opts)

			if opts.count {
				n, err := s.Count(cmd.Context())
				if err != nil {
					return err
				}
				_, err = fmt.Fprintf(a.out, "%s lines\n", humanize.Comma(n))
				return err
			}

			lines, err := s.ToSlice(cmd.Context())
			if err != nil {
				return err
			}
			a.log.Debug().Str("file", args[0]).Int("lines", len(lines)).Msg("lines printed")
			return printLines(a.out, lines)
		},
	}

	cmd.Flags().StringVarP(&opts.contains, "contains", "c", "", "keep lines containing this text")
	cmd.Flags().BoolVar(&opts.distinct, "distinct", false, "drop repeated lines")
	cmd.Flags().BoolVar(&opts.sorted, "sort", false, "sort lines")
	cmd.Flags().Int64Var(&opts.skip, "skip", 0, "skip the first N lines of the result")
	cmd.Flags().Int64VarP(&opts.limit, "limit", "n", -1, "print at most N lines")
	cmd.Flags().BoolVar(&opts.count, "count", false, "print the number of lines instead of the lines")
	return cmd
}

func applyLineOptions(s stream.Stream[string], opts linesOptions) stream.Stream[string] {
	if opts.contains != "" {
		s = s.Filter(func(line string) bool { return strings.Contains(line, opts.contains) })
	}
	if opts.distinct {
		s = s.Distinct()
	}
	if opts.sorted {
		s = s.Sorted(strings.Compare)
	}
	if opts.skip != 0 {
		s = s.Skip(opts.skip)
	}
	if opts.limit >= 0 {
		s = s.Limit(opts.limit)
	}
	return s
}
