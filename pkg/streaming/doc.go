/*
Package streaming groups the lazy pipeline and the sources that feed it.

  - stream: Pipelines of deferred stages evaluated by terminal operations
  - source: Sources backed by files, schedules, Redis, SQL databases, Kafka and S3

Basic usage:

	errors, err := source.Lines("app.log").
		Filter(func(l string) bool { return strings.Contains(l, "ERROR") }).
		Limit(10).
		ToSlice(ctx)

Every source is opened when a terminal runs and closed when it returns, so a
pipeline that is never evaluated holds no file handles or cursors.
*/
package streaming
