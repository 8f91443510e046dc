/*
Package ratelimit paces the remote calls made by paged sources.

Sources such as Redis lists and S3 listings fetch one page per call while a
terminal pulls. A fast terminal over a large list can issue those calls back to
back; a limiter from the bucket package spreads them out:

	lim, err := bucket.New(5, 1) // five pages per second, no burst
	if err != nil {
		return err
	}
	items, err := source.RedisListWithConfig(source.RedisConfig{
		Client:   client,
		Key:      "jobs",
		PageSize: 100,
		Limiter:  lim,
	})

Waiting honors the terminal's context, so a canceled evaluation stops waiting
for its next page at once.
*/
package ratelimit
