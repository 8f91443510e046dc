package main

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vnykmshr/seqflow/pkg/streaming/source"
	"github.com/vnykmshr/seqflow/pkg/streaming/stream"
)

func newScheduleCmd(a *app) *cobra.Command {
	var (
		from     string
		count    int64
		weekdays bool
	)

	cmd := &cobra.Command{
		Use:   "schedule <cron>",
		Short: "Print the next activation times of a cron expression",
		Long: `Print the next activation times of a cron expression. Five-field
expressions, an optional leading seconds field and descriptors such as @hourly
are accepted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			start := time.Now()
			if from != "" {
				t, err := time.Parse(time.RFC3339, from)
				if err != nil {
					return fmt.Errorf("--from: %w", err)
				}
				start = t
			}

			runs, err := source.Schedule(args[0], start)
			if err != nil {
				return err
			}
			if weekdays {
				runs = runs.Filter(func(t time.Time) bool {
					return t.Weekday() != time.Saturday && t.Weekday() != time.Sunday
				})
			}

			rows, err := stream.Map(runs.Limit(count), func(t time.Time) [2]string {
				return [2]string{t.Format(time.RFC3339), humanize.RelTime(t, start, "earlier", "later")}
			}).ToSlice(cmd.Context())
			if err != nil {
				return err
			}
			return printTable(a.out, rows)
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "start time in RFC 3339 (default now)")
	cmd.Flags().Int64VarP(&count, "count", "n", 5, "number of activation times")
	cmd.Flags().BoolVar(&weekdays, "weekdays", false, "skip Saturdays and Sundays")
	return cmd
}
