// Package integration contains integration tests that verify cross-package functionality.
// These tests ensure that different components work together correctly in realistic scenarios.
package integration

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus"
	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"

	"github.com/vnykmshr/seqflow/internal/testutil"
	"github.com/vnykmshr/seqflow/pkg/metrics"
	"github.com/vnykmshr/seqflow/pkg/ratelimit/bucket"
	"github.com/vnykmshr/seqflow/pkg/streaming/source"
	"github.com/vnykmshr/seqflow/pkg/streaming/stream"
)

func seedRedis(t *testing.T, key string, n int) *redis.Client {
	t.Helper()
	mini, err := miniredis.Run()
	testutil.AssertNoError(t, err)
	t.Cleanup(mini.Close)

	for i := 0; i < n; i++ {
		_, err := mini.RPush(key, fmt.Sprintf("order-%03d:%s", i, []string{"paid", "open", "void"}[i%3]))
		testutil.AssertNoError(t, err)
	}

	client := redis.NewClient(&redis.Options{Addr: mini.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return client
}

// TestRedisPagingWithRateLimiting verifies that a token bucket spreads the page
// fetches of a Redis list source.
func TestRedisPagingWithRateLimiting(t *testing.T) {
	client := seedRedis(t, "orders", 50)

	// 20 pages per second after a burst of 2: six fetches, four of them paced
	limiter, err := bucket.New(20, 2)
	testutil.AssertNoError(t, err)

	orders, err := source.RedisListWithConfig(source.RedisConfig{
		Client:   client,
		Key:      "orders",
		PageSize: 10,
		Limiter:  limiter,
	})
	testutil.AssertNoError(t, err)

	start := time.Now()
	paid, err := orders.
		Filter(func(o string) bool { return strings.HasSuffix(o, ":paid") }).
		Count(context.Background())
	elapsed := time.Since(start)

	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, paid, int64(17))
	if elapsed < 100*time.Millisecond {
		t.Errorf("paging took %v, expected the limiter to slow it to at least 100ms", elapsed)
	}
}

// TestRedisPagingStopsEarly verifies that a short-circuiting terminal stops
// fetching pages, so the limiter is not waited on for pages nobody reads.
func TestRedisPagingStopsEarly(t *testing.T) {
	client := seedRedis(t, "orders", 500)

	limiter, err := bucket.New(bucket.Every(time.Hour), 1)
	testutil.AssertNoError(t, err)

	orders, err := source.RedisListWithConfig(source.RedisConfig{
		Client:   client,
		Key:      "orders",
		PageSize: 100,
		Limiter:  limiter,
	})
	testutil.AssertNoError(t, err)

	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()

	first, err := orders.
		Filter(func(o string) bool { return strings.HasSuffix(o, ":void") }).
		Skip(10).
		FindFirst(ctx)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, first.MustGet(), "order-032:void")
}

// TestPagedSourceMetrics verifies that elements pulled from a paged source are
// counted by the evaluation metrics.
func TestPagedSourceMetrics(t *testing.T) {
	client := seedRedis(t, "orders", 30)

	reg := prometheus.NewRegistry()
	testutil.AssertNoError(t, stream.EnableMetrics(metrics.Config{Enabled: true, Registry: reg, Namespace: "integration"}))
	t.Cleanup(stream.DisableMetrics)

	orders, err := source.RedisList(client, "orders", 7)
	testutil.AssertNoError(t, err)

	byStatus, err := stream.Collect(context.Background(), orders,
		stream.GroupingByWith(func(o string) string {
			_, status, _ := strings.Cut(o, ":")
			return status
		}, stream.Counting[string]()))
	testutil.AssertNoError(t, err)
	testutil.AssertDeepEqual(t, byStatus, map[string]int64{"paid": 10, "open": 10, "void": 10})

	families, err := reg.Gather()
	testutil.AssertNoError(t, err)
	found := false
	for _, f := range families {
		if f.GetName() == "integration_stream_elements_pulled_total" {
			found = true
		}
	}
	if !found {
		t.Fatal("elements pulled counter was not registered")
	}
	evaluations, err := promtestutil.GatherAndCount(reg, "integration_stream_evaluations_total")
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, evaluations, 1)
}
