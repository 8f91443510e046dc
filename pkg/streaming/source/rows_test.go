package source

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	sferrors "github.com/vnykmshr/seqflow/pkg/common/errors"
	"github.com/vnykmshr/seqflow/pkg/streaming/stream"
)

type account struct {
	ID      uint
	Owner   string
	Balance int
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{Logger: gormlogger.Discard})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// Every connection to :memory: is a separate database.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&account{}))
	for i := 1; i <= 20; i++ {
		require.NoError(t, db.Create(&account{Owner: fmt.Sprintf("owner-%02d", i), Balance: i * 10}).Error)
	}
	return db
}

func TestRows(t *testing.T) {
	db := newTestDB(t)

	rich := Rows[account](db.Model(&account{}).Where("balance > ?", 150).Order("id"))
	owners, err := stream.Map(rich, func(a account) string { return a.Owner }).ToSlice(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"owner-16", "owner-17", "owner-18", "owner-19", "owner-20"}, owners)
}

func TestRowsAggregate(t *testing.T) {
	db := newTestDB(t)

	total, err := stream.Collect(context.Background(),
		Rows[account](db.Model(&account{})),
		stream.Summing(func(a account) int { return a.Balance }))
	require.NoError(t, err)
	assert.Equal(t, 2100, total)
}

func TestRowsIntoMaps(t *testing.T) {
	db := newTestDB(t)

	first, err := Rows[map[string]any](db.Table("accounts").Select("owner").Order("id desc")).
		FindFirst(context.Background())
	require.NoError(t, err)
	row := first.MustGet()
	assert.Equal(t, "owner-20", fmt.Sprint(row["owner"]))
}

func TestRowsStopsEarly(t *testing.T) {
	db := newTestDB(t)

	got, err := Rows[account](db.Model(&account{}).Order("id")).Skip(2).Limit(3).ToSlice(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, uint(3), got[0].ID)

	// The cursor was closed, so the single connection is free again.
	var n int64
	require.NoError(t, db.Model(&account{}).Count(&n).Error)
	assert.Equal(t, int64(20), n)
}

func TestRowsQueryError(t *testing.T) {
	db := newTestDB(t)

	_, err := Rows[account](db.Table("missing_table")).Count(context.Background())
	assert.ErrorIs(t, err, sferrors.ErrIO)

	_, err = Rows[account](nil).Count(context.Background())
	assert.ErrorIs(t, err, sferrors.ErrInvalidArgument)
}
