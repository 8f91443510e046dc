/*
Package source provides streams backed by external data: text files and readers,
JSON-lines documents, cron schedules, Redis lists, database rows, Kafka topics and
S3 object listings.

Every constructor returns a stream.Stream whose underlying resource is opened when the
terminal operation runs and closed when it returns. Clients passed in (Redis, gorm,
Kafka readers, S3) stay owned by the caller. Failures to open or read the
resource are returned by the terminal as *errors.IOError, which matches both
errors.ErrIO and the underlying cause:

	n, err := source.Lines("/var/log/app.log").
		Filter(func(line string) bool { return strings.Contains(line, "ERROR") }).
		Count(ctx)
	if errors.Is(err, fs.ErrNotExist) {
		// ...
	}

Paged sources (Redis, S3) and cursors (Rows) read only as far as the pipeline pulls,
so Limit and the short-circuiting terminals save round trips. A Waiter such as
*bucket.Limiter set on RedisConfig or S3Config is waited on before every page fetch.

Schedules and Kafka topics are infinite and must be limited before sorting or collecting:

	runs, err := source.Schedule("0 9 * * MON-FRI", time.Now())
	next5, err := runs.Limit(5).ToSlice(ctx)
*/
package source
