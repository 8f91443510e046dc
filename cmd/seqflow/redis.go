package main

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/vnykmshr/seqflow/pkg/streaming/source"
)

func newRedisCmd(a *app) *cobra.Command {
	var (
		addr     string
		contains string
		limit    int64
		count    bool
	)

	cmd := &cobra.Command{
		Use:   "redis <key>",
		Short: "Stream the elements of a Redis list",
		Long: `Stream the elements of a Redis list, head first, fetched a page at a time.
The server and page size come from the redis section of the configuration.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rc := a.cfg.Redis
			if addr != "" {
				rc.Addr = addr
			}
			client := redis.NewClient(&redis.Options{Addr: rc.Addr, DB: rc.DB})
			defer func() { _ = client.Close() }()

			lc := source.RedisConfig{
				Client:   client,
				Key:      args[0],
				PageSize: rc.PageSize,
				Timeout:  rc.Timeout,
			}
			lim, err := a.cfg.PageLimiter()
			if err != nil {
				return err
			}
			if lim != nil {
				lc.Limiter = lim
			}
			items, err := source.RedisListWithConfig(lc)
			if err != nil {
				return err
			}
			if contains != "" {
				items = items.Filter(func(v string) bool { return strings.Contains(v, contains) })
			}
			if limit >= 0 {
				items = items.Limit(limit)
			}

			if count {
				n, err := items.Count(cmd.Context())
				if err != nil {
					return err
				}
				_, err = fmt.Fprintf(a.out, "%s elements\n", humanize.Comma(n))
				return err
			}

			values, err := items.ToSlice(cmd.Context())
			if err != nil {
				return err
			}
			a.log.Debug().Str("key", args[0]).Int("elements", len(values)).Msg("list printed")
			return printLines(a.out, values)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Redis address (overrides redis.addr)")
	cmd.Flags().StringVarP(&contains, "contains", "c", "", "keep elements containing this text")
	cmd.Flags().Int64VarP(&limit, "limit", "n", -1, "print at most N elements")
	cmd.Flags().BoolVar(&count, "count", false, "print the number of elements instead of the elements")
	return cmd
}
