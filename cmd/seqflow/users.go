package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vnykmshr/seqflow/internal/userdemo"
)

func newUsersCmd(a *app) *cobra.Command {
	var list bool

	cmd := &cobra.Command{
		Use:   "users [scenario...]",
		Short: "Run the user directory pipelines",
		Long: `Run the canonical pipelines over the demo user directory. Without arguments
every scenario runs; --list prints their names and summaries.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			all := userdemo.Scenarios()
			if list {
				rows := make([][2]string, len(all))
				for i, s := range all {
					rows[i] = [2]string{s.Name, s.Summary}
				}
				return printTable(a.out, rows)
			}

			selected := all
			if len(args) > 0 {
				selected = nil
				for _, name := range args {
					s, ok := userdemo.Lookup(name)
					if !ok {
						return fmt.Errorf("unknown scenario %q (see users --list)", name)
					}
					selected = append(selected, s)
				}
			}

			rows := make([][2]string, 0, len(selected))
			for _, s := range selected {
				out, err := s.Run(cmd.Context())
				if err != nil {
					return fmt.Errorf("%s: %w", s.Name, err)
				}
				rows = append(rows, [2]string{s.Name, out})
			}
			return printTable(a.out, rows)
		},
	}
	cmd.Flags().BoolVar(&list, "list", false, "list scenarios instead of running them")
	return cmd
}
