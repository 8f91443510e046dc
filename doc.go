/*
Package seqflow provides lazy sequence pipelines for Go.

A pipeline is a chain of deferred stages bound to a finite or infinite source.
Nothing runs until a terminal operation pulls elements through it.

Streaming (pkg/streaming):
  - stream: Pipelines, stages, terminal operations and collectors
  - source: Files, JSON lines, cron schedules, Redis lists, SQL rows, Kafka topics and S3 listings

Scheduling (pkg/scheduling):
  - workerpool: Fork/join pool behind parallel evaluation

Rate Limiting (pkg/ratelimit):
  - bucket: Token bucket pacing the page fetches of remote sources

Support:
  - config: YAML, dotenv and environment configuration
  - metrics: Prometheus metrics for terminal evaluations
  - common/logger: zerolog setup

Example usage:

	import "github.com/vnykmshr/seqflow/pkg/streaming/stream"

	names, err := stream.Map(
		stream.FromSlice(users).Filter(func(u User) bool { return u.Role == Guest }),
		func(u User) string { return u.Name },
	).ToSlice(ctx)
*/
package seqflow
