package source

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sferrors "github.com/vnykmshr/seqflow/pkg/common/errors"
)

func TestSchedule(t *testing.T) {
	from := time.Date(2024, 3, 4, 10, 7, 0, 0, time.Local)

	runs, err := Schedule("*/15 * * * *", from)
	require.NoError(t, err)

	got, err := runs.Limit(3).ToSlice(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []time.Time{
		time.Date(2024, 3, 4, 10, 15, 0, 0, time.Local),
		time.Date(2024, 3, 4, 10, 30, 0, 0, time.Local),
		time.Date(2024, 3, 4, 10, 45, 0, 0, time.Local),
	}, got)
}

func TestScheduleWithSeconds(t *testing.T) {
	from := time.Date(2024, 3, 4, 10, 0, 0, 0, time.Local)

	runs, err := Schedule("*/20 * * * * *", from)
	require.NoError(t, err)

	n, err := runs.Filter(func(t time.Time) bool { return t.Second() == 0 }).
		Limit(2).
		Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestScheduleIsUnbounded(t *testing.T) {
	runs, err := Schedule("@hourly", time.Now())
	require.NoError(t, err)
	assert.ErrorIs(t, runs.Sorted(nil).Err(), sferrors.ErrUnboundedSort)
}

func TestScheduleBetween(t *testing.T) {
	from := time.Date(2024, 3, 4, 0, 0, 0, 0, time.Local)
	until := from.Add(7 * 24 * time.Hour)

	runs, err := ScheduleBetween("0 9 * * MON-FRI", from, until)
	require.NoError(t, err)

	n, err := runs.Sorted(nil).Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(5), n)
}

func TestScheduleInvalid(t *testing.T) {
	tests := []struct {
		name string
		spec string
	}{
		{"empty", ""},
		{"garbage", "not a cron"},
		{"out of range", "61 * * * *"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Schedule(tt.spec, time.Now())
			assert.ErrorIs(t, err, sferrors.ErrInvalidArgument)
		})
	}
}
