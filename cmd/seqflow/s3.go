package main

import (
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vnykmshr/seqflow/pkg/streaming/source"
	"github.com/vnykmshr/seqflow/pkg/streaming/stream"
)

func newS3Cmd(a *app) *cobra.Command {
	var (
		endpoint string
		suffix   string
		largest  int64
		since    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "s3 <bucket> [prefix]",
		Short: "List objects in an S3 bucket",
		Long: `List objects in an S3 bucket page by page, with human readable sizes.
With --largest the listing is sorted by size and cut to the N biggest objects.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc := a.cfg.S3Client()
			if endpoint != "" {
				sc.Endpoint = endpoint
				sc.ForcePathStyle = true
			}
			client, err := source.NewS3Client(cmd.Context(), sc)
			if err != nil {
				return err
			}

			var prefix string
			if len(args) == 2 {
				prefix = args[1]
			}
			oc := source.S3Config{Client: client, Bucket: args[0], Prefix: prefix}
			lim, err := a.cfg.PageLimiter()
			if err != nil {
				return err
			}
			if lim != nil {
				oc.Limiter = lim
			}
			objects, err := source.S3ObjectsWithConfig(oc)
			if err != nil {
				return err
			}
			if suffix != "" {
				objects = objects.Filter(func(o types.Object) bool {
					return strings.HasSuffix(aws.ToString(o.Key), suffix)
				})
			}
			if since > 0 {
				cutoff := time.Now().Add(-since)
				objects = objects.Filter(func(o types.Object) bool {
					return aws.ToTime(o.LastModified).After(cutoff)
				})
			}
			if largest > 0 {
				objects = objects.
					Sorted(stream.Reversed(stream.Comparing(func(o types.Object) int64 { return aws.ToInt64(o.Size) }))).
					Limit(largest)
			}

			rows, err := stream.Map(objects, objectRow).ToSlice(cmd.Context())
			if err != nil {
				return err
			}
			return printTable(a.out, rows)
		},
	}
	cmd.Flags().StringVar(&endpoint, "endpoint", "", "S3 compatible endpoint (overrides s3.endpoint, enables path style)")
	cmd.Flags().StringVar(&suffix, "suffix", "", "keep keys ending with this text")
	cmd.Flags().Int64Var(&largest, "largest", 0, "print only the N largest objects")
	cmd.Flags().DurationVar(&since, "since", 0, "keep objects modified within this duration")
	return cmd
}

func objectRow(o types.Object) [2]string {
	return [2]string{aws.ToString(o.Key), humanize.IBytes(uint64(max(aws.ToInt64(o.Size), 0)))}
}
