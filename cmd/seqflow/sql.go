package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/vnykmshr/seqflow/pkg/streaming/source"
	"github.com/vnykmshr/seqflow/pkg/streaming/stream"
)

func newSQLCmd(a *app) *cobra.Command {
	var (
		where   string
		columns []string
		limit   int64
	)

	cmd := &cobra.Command{
		Use:   "sql <sqlite-file> <table>",
		Short: "Stream the rows of a SQLite table",
		Long: `Stream the rows of a SQLite table, one row per line as column=value pairs.
Rows are scanned one at a time while the query cursor is open.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := gorm.Open(sqlite.Open(args[0]), &gorm.Config{Logger: gormlogger.Discard})
			if err != nil {
				return err
			}
			if sqlDB, err := db.DB(); err == nil {
				defer func() { _ = sqlDB.Close() }()
			}

			query := db.Table(args[1])
			if len(columns) > 0 {
				query = query.Select(columns)
			}
			if where != "" {
				query = query.Where(where)
			}

			rows := source.Rows[map[string]any](query)
			if limit >= 0 {
				rows = rows.Limit(limit)
			}
			if workers, ok := a.parallelWorkers(); ok {
				rows = rows.Parallel(workers)
			}

			lines, err := stream.Map(rows, formatRow).ToSlice(cmd.Context())
			if err != nil {
				return err
			}
			a.log.Debug().Str("table", args[1]).Int("rows", len(lines)).Msg("rows printed")
			return printLines(a.out, lines)
		},
	}
	cmd.Flags().StringVarP(&where, "where", "w", "", "SQL condition rows must satisfy")
	cmd.Flags().StringSliceVar(&columns, "columns", nil, "columns to select (default all)")
	cmd.Flags().Int64VarP(&limit, "limit", "n", -1, "print at most N rows")
	return cmd
}

// formatRow renders a row with its columns in name order.
func formatRow(row map[string]any) string {
	keys := make([]string, 0, len(row))
	for k := range row {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%s=%v", k, row[k])
	}
	return b.String()
}
