package source

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	sferrors "github.com/vnykmshr/seqflow/pkg/common/errors"
	"github.com/vnykmshr/seqflow/pkg/common/validation"
	"github.com/vnykmshr/seqflow/pkg/streaming/stream"
)

// RedisConfig configures a Redis list source.
type RedisConfig struct {
	// Client is the Redis connection. It is not closed by the source.
	Client redis.UniversalClient

	// Key is the list to read.
	Key string

	// PageSize is the number of elements fetched per LRANGE call.
	PageSize int64

	// Timeout bounds each LRANGE call. Zero means no timeout beyond the terminal's
	// context.
	Timeout time.Duration

	// Limiter, when set, is waited on before every LRANGE call.
	Limiter Waiter
}

// RedisList returns a stream of the elements of a Redis list, head first, fetched a
// page at a time with LRANGE while the terminal pulls.
func RedisList(client redis.UniversalClient, key string, pageSize int64) (stream.Stream[string], error) {
	return RedisListWithConfig(RedisConfig{Client: client, Key: key, PageSize: pageSize})
}

// RedisListWithConfig is RedisList with an explicit configuration.
func RedisListWithConfig(cfg RedisConfig) (stream.Stream[string], error) {
	if err := validation.ValidateNotNil(module, "client", cfg.Client); err != nil {
		return nil, err
	}
	if err := validation.ValidateNotEmpty(module, "key", cfg.Key); err != nil {
		return nil, err
	}
	if err := validation.ValidatePositive(module, "page_size", cfg.PageSize); err != nil {
		return nil, err
	}
	return stream.Deferred(func(context.Context) (stream.Source[string], error) {
		return &redisListSource{cfg: cfg}, nil
	}), nil
}

type redisListSource struct {
	cfg    RedisConfig
	page   []string
	offset int64
	done   bool
}

func (s *redisListSource) fetch(ctx context.Context) error {
	if s.cfg.Limiter != nil {
		if err := s.cfg.Limiter.Wait(ctx); err != nil {
			return err
		}
	}
	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	page, err := s.cfg.Client.LRange(ctx, s.cfg.Key, s.offset, s.offset+s.cfg.PageSize-1).Result()
	if err != nil {
		return sferrors.NewIOError(module, "LRange", s.cfg.Key, err)
	}
	s.offset += int64(len(page))
	s.page = page
	if int64(len(page)) < s.cfg.PageSize {
		s.done = true
	}
	return nil
}

func (s *redisListSource) Next(ctx context.Context) (string, bool, error) {
	if len(s.page) == 0 {
		if s.done {
			return "", false, nil
		}
		if err := s.fetch(ctx); err != nil {
			return "", false, err
		}
		if len(s.page) == 0 {
			return "", false, nil
		}
	}
	v := s.page[0]
	s.page = s.page[1:]
	return v, true, nil
}

func (s *redisListSource) Close() error { return nil }
