package source

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/tidwall/gjson"

	sferrors "github.com/vnykmshr/seqflow/pkg/common/errors"
	"github.com/vnykmshr/seqflow/pkg/streaming/stream"
)

// JSONLines returns a stream of the value at the gjson path in each line of the file
// at path. Blank lines are skipped. A line that is not valid JSON fails the terminal
// with errors.ErrInvalidArgument. Lines without the path yield a Result whose Exists
// reports false.
func JSONLines(path, field string) stream.Stream[gjson.Result] {
	return stream.Deferred(func(context.Context) (stream.Source[gjson.Result], error) {
		lines, err := openLines(path)
		if err != nil {
			return nil, err
		}
		return &jsonSource{lines: lines, field: field}, nil
	})
}

// JSONLinesFromReader is JSONLines reading from r.
func JSONLinesFromReader(r io.Reader, field string) stream.Stream[gjson.Result] {
	return stream.New[gjson.Result](&jsonSource{
		lines: newLineSource(io.NopCloser(r), ""),
		field: field,
	})
}

type jsonSource struct {
	lines *lineSource
	field string
}

func (s *jsonSource) Next(ctx context.Context) (gjson.Result, bool, error) {
	for {
		line, ok, err := s.lines.Next(ctx)
		if err != nil || !ok {
			return gjson.Result{}, false, err
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		if !gjson.Valid(line) {
			return gjson.Result{}, false, sferrors.NewValidationError(module, "line", s.lines.line, "is not valid JSON").
				WithHint(fmt.Sprintf("check %s", s.location()))
		}
		return gjson.Get(line, s.field), true, nil
	}
}

func (s *jsonSource) location() string {
	if s.lines.path == "" {
		return "the input"
	}
	return s.lines.path
}

func (s *jsonSource) Close() error { return s.lines.Close() }
