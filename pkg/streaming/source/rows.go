package source

import (
	"context"
	"database/sql"

	"gorm.io/gorm"

	sferrors "github.com/vnykmshr/seqflow/pkg/common/errors"
	"github.com/vnykmshr/seqflow/pkg/streaming/stream"
)

// Rows returns a stream of the rows selected by query, each scanned into a T. The
// query runs when a terminal operation starts and rows are read through its cursor
// one at a time, so Limit and the short-circuiting terminals stop reading early.
//
//	active := source.Rows[Account](db.Model(&Account{}).Where("active = ?", true).Order("id"))
//
// T may be a model struct or map[string]any.
func Rows[T any](query *gorm.DB) stream.Stream[T] {
	return stream.Deferred(func(ctx context.Context) (stream.Source[T], error) {
		if err := validateQuery(query); err != nil {
			return nil, err
		}
		db := query.WithContext(ctx)
		rows, err := db.Rows()
		if err != nil {
			return nil, sferrors.NewIOError(module, "Query", tableOf(query), err)
		}
		return &rowSource[T]{db: db, rows: rows, table: tableOf(query)}, nil
	})
}

func validateQuery(query *gorm.DB) error {
	if query == nil {
		return sferrors.NewValidationError(module, "query", nil, "must not be nil")
	}
	return nil
}

func tableOf(query *gorm.DB) string {
	if query.Statement != nil && query.Statement.Table != "" {
		return query.Statement.Table
	}
	return "query"
}

type rowSource[T any] struct {
	db    *gorm.DB
	rows  *sql.Rows
	table string
}

func (s *rowSource[T]) Next(context.Context) (T, bool, error) {
	var v T
	if !s.rows.Next() {
		if err := s.rows.Err(); err != nil {
			return v, false, sferrors.NewIOError(module, "Next", s.table, err)
		}
		return v, false, nil
	}
	if err := s.db.ScanRows(s.rows, &v); err != nil {
		return v, false, sferrors.NewIOError(module, "Scan", s.table, err)
	}
	return v, true, nil
}

func (s *rowSource[T]) Close() error {
	if err := s.rows.Close(); err != nil {
		return sferrors.NewIOError(module, "Close", s.table, err)
	}
	return nil
}
