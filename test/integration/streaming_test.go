package integration

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/vnykmshr/seqflow/internal/testutil"
	"github.com/vnykmshr/seqflow/internal/userdemo"
	sferrors "github.com/vnykmshr/seqflow/pkg/common/errors"
	"github.com/vnykmshr/seqflow/pkg/config"
	"github.com/vnykmshr/seqflow/pkg/streaming/source"
	"github.com/vnykmshr/seqflow/pkg/streaming/stream"
)

const events = `{"level":"info","user":{"id":7},"ms":12}
{"level":"error","user":{"id":3},"ms":250}
{"level":"warn","user":{"id":7},"ms":40}
{"level":"error","user":{"id":9},"ms":310}
{"level":"info","user":{"id":3},"ms":8}
{"level":"error","user":{"id":7},"ms":95}
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	testutil.AssertNoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// applyConfig loads configuration from the environment and installs it,
// restoring the stream defaults when the test ends.
func applyConfig(t *testing.T) *config.Config {
	t.Helper()
	t.Setenv("SEQFLOW_LOG_LEVEL", "disabled")
	cfg, err := config.Load()
	testutil.AssertNoError(t, err)
	testutil.AssertNoError(t, cfg.Apply())
	t.Cleanup(func() {
		_ = stream.Configure(stream.DefaultOptions())
		stream.SetLogger(zerolog.Nop())
		stream.DisableMetrics()
	})
	return cfg
}

// TestConfiguredParallelJSONLines verifies that configuration loaded from the
// environment drives parallel evaluation of a file source.
func TestConfiguredParallelJSONLines(t *testing.T) {
	t.Setenv("SEQFLOW_STREAM_WORKERS", "3")
	t.Setenv("SEQFLOW_STREAM_CHUNK_SIZE", "2")
	cfg := applyConfig(t)
	testutil.AssertEqual(t, cfg.StreamOptions().Workers, 3)

	path := writeFile(t, "events.jsonl", events)
	ctx := context.Background()

	slow, err := stream.Map(
		source.JSONLines(path, "ms").Parallel(0).Filter(func(r gjson.Result) bool { return r.Int() > 50 }),
		func(r gjson.Result) int64 { return r.Int() },
	).ToSlice(ctx)
	testutil.AssertNoError(t, err)
	testutil.AssertDeepEqual(t, slow, []int64{250, 310, 95})

	errorUsers, err := stream.Map(
		source.Lines(path).Filter(func(l string) bool { return gjson.Get(l, "level").String() == "error" }),
		func(l string) int64 { return gjson.Get(l, "user.id").Int() },
	).Sorted(nil).ToSlice(ctx)
	testutil.AssertNoError(t, err)
	testutil.AssertDeepEqual(t, errorUsers, []int64{3, 7, 9})
}

type userRow struct {
	ID   int64 `gorm:"primaryKey"`
	Name string
	Role string
}

func (userRow) TableName() string { return "users" }

// TestDatabaseRowsMatchInMemoryPipeline verifies that the same user pipeline
// gives the same answer over database rows and over a slice.
func TestDatabaseRowsMatchInMemoryPipeline(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "users.db")), &gorm.Config{Logger: gormlogger.Discard})
	testutil.AssertNoError(t, err)
	sqlDB, err := db.DB()
	testutil.AssertNoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	testutil.AssertNoError(t, db.AutoMigrate(&userRow{}))

	users := userdemo.Directory()
	for _, u := range users {
		testutil.AssertNoError(t, db.Create(&userRow{ID: u.ID, Name: u.Name, Role: u.Role.String()}).Error)
	}

	ctx := context.Background()
	var parseErr error
	loaded, err := stream.Map(source.Rows[userRow](db.Model(&userRow{}).Order("name")), func(r userRow) userdemo.User {
		role, err := userdemo.ParseRole(r.Role)
		if err != nil {
			parseErr = errors.Join(parseErr, err)
		}
		return userdemo.User{ID: r.ID, Name: r.Name, Role: role}
	}).ToSlice(ctx)
	testutil.AssertNoError(t, err)
	testutil.AssertNoError(t, parseErr)
	testutil.AssertEqual(t, len(loaded), len(users))

	fromDB, err := userdemo.GuestNamesByID(ctx, loaded)
	testutil.AssertNoError(t, err)
	fromSlice, err := userdemo.GuestNamesByID(ctx, users)
	testutil.AssertNoError(t, err)
	testutil.AssertDeepEqual(t, fromDB, fromSlice)

	total, err := stream.Collect(ctx, source.Rows[userRow](db.Model(&userRow{})),
		stream.Summing(func(r userRow) int64 { return r.ID }))
	testutil.AssertNoError(t, err)
	want, err := userdemo.SumIDs(ctx, users, 0)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, total, want)
}

// TestScheduleFeedsFileSource verifies that an infinite schedule composes with
// a finite file source through FlatMap and a limit.
func TestScheduleFeedsFileSource(t *testing.T) {
	path := writeFile(t, "jobs.txt", "backup\nreport\n")
	from := time.Date(2024, 3, 4, 8, 0, 0, 0, time.UTC)

	ticks, err := source.Schedule("CRON_TZ=UTC 0 */6 * * *", from)
	testutil.AssertNoError(t, err)

	runs, err := stream.FlatMap(ticks, func(at time.Time) stream.Stream[string] {
		return stream.Map(source.Lines(path), func(job string) string {
			return at.Format("15:04") + " " + job
		})
	}).Limit(5).ToSlice(context.Background())
	testutil.AssertNoError(t, err)
	testutil.AssertDeepEqual(t, runs, []string{
		"12:00 backup", "12:00 report",
		"18:00 backup", "18:00 report",
		"00:00 backup",
	})
}

// TestStreamContextCancellation verifies that an infinite pipeline stops when its
// context ends.
func TestStreamContextCancellation(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	counter := 0
	_, err := stream.Generate(func() int {
		counter++
		return counter
	}).Filter(func(x int) bool { return x < 0 }).Count(ctx)
	testutil.AssertErrorIs(t, err, context.DeadlineExceeded)
	if counter == 0 {
		t.Error("generator was never pulled")
	}
}

// TestSourceErrorsCarryKinds verifies that failures from different sources are
// reported with the shared error kinds.
func TestSourceErrorsCarryKinds(t *testing.T) {
	ctx := context.Background()

	_, err := source.Lines(filepath.Join(t.TempDir(), "missing.txt")).Count(ctx)
	testutil.AssertErrorIs(t, err, sferrors.ErrIO)
	testutil.AssertEqual(t, sferrors.Code(err), "IO_ERROR")

	_, err = source.JSONLinesFromReader(strings.NewReader("{\"a\":1}\nnot json\n"), "a").Count(ctx)
	testutil.AssertErrorIs(t, err, sferrors.ErrInvalidArgument)

	ticks, err := source.Schedule("@hourly", time.Now())
	testutil.AssertNoError(t, err)
	_, err = ticks.Sorted(nil).FindFirst(ctx)
	testutil.AssertErrorIs(t, err, sferrors.ErrUnboundedSort)
	testutil.AssertEqual(t, sferrors.Code(err), "UNBOUNDED_SORT")
}
