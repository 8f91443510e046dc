package main

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/spf13/cobra"

	"github.com/vnykmshr/seqflow/pkg/streaming/source"
)

func newKafkaCmd(a *app) *cobra.Command {
	var (
		brokers []string
		group   string
		limit   int64
		wait    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "kafka <topic>",
		Short: "Print messages from a Kafka topic",
		Long: `Print messages from a Kafka topic as offset and value. Topics are infinite,
so the command stops after --limit messages or when --wait elapses.
With a consumer group the offsets of printed messages are committed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kc := a.cfg.Kafka
			if len(brokers) > 0 {
				kc.Brokers = brokers
			}
			if group != "" {
				kc.GroupID = group
			}

			reader := source.NewKafkaReader(kc.Brokers, args[0], kc.GroupID)
			defer func() { _ = reader.Close() }()

			messages, err := source.KafkaTopic(reader, kc.GroupID != "")
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if wait > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, wait)
				defer cancel()
			}

			var rows [][2]string
			err = messages.Limit(limit).ForEachOrdered(ctx, func(m kafka.Message) {
				rows = append(rows, [2]string{strconv.FormatInt(m.Offset, 10), string(m.Value)})
			})
			if wait > 0 && errors.Is(err, context.DeadlineExceeded) {
				a.log.Debug().Int("messages", len(rows)).Msg("wait elapsed")
				err = nil
			}
			if err != nil {
				return err
			}
			return printTable(a.out, rows)
		},
	}
	cmd.Flags().StringSliceVar(&brokers, "brokers", nil, "broker addresses (overrides kafka.brokers)")
	cmd.Flags().StringVar(&group, "group", "", "consumer group (overrides kafka.group_id)")
	cmd.Flags().Int64VarP(&limit, "limit", "n", 10, "stop after N messages")
	cmd.Flags().DurationVar(&wait, "wait", 10*time.Second, "stop waiting for messages after this long (0 waits forever)")
	return cmd
}
