package source

import (
	"bufio"
	"context"
	"io"
	"os"

	sferrors "github.com/vnykmshr/seqflow/pkg/common/errors"
	"github.com/vnykmshr/seqflow/pkg/streaming/stream"
)

const module = "source"

// MaxLineSize is the longest line a line source accepts. Longer lines fail the
// terminal with bufio.ErrTooLong.
const MaxLineSize = 1 << 20

// Waiter paces the remote calls of paged sources. *bucket.Limiter implements it.
type Waiter interface {
	Wait(ctx context.Context) error
}

// Lines returns a stream of the lines of the file at path, without line terminators.
// The file is opened by the terminal operation.
func Lines(path string) stream.Stream[string] {
	return stream.Deferred(func(context.Context) (stream.Source[string], error) {
		return openLines(path)
	})
}

// FromReader returns a stream of the lines read from r. The reader is consumed by the
// first terminal operation and is not closed.
func FromReader(r io.Reader) stream.Stream[string] {
	return stream.New[string](newLineSource(io.NopCloser(r), ""))
}

func openLines(path string) (*lineSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, sferrors.NewIOError(module, "Open", path, err)
	}
	return newLineSource(f, path), nil
}

type lineSource struct {
	scanner *bufio.Scanner
	closer  io.Closer
	path    string
	line    int
}

func newLineSource(rc io.ReadCloser, path string) *lineSource {
	scanner := bufio.NewScanner(rc)
	scanner.Buffer(make([]byte, 0, 64*1024), MaxLineSize)
	return &lineSource{scanner: scanner, closer: rc, path: path}
}

func (s *lineSource) Next(context.Context) (string, bool, error) {
	if s.scanner.Scan() {
		s.line++
		return s.scanner.Text(), true, nil
	}
	if err := s.scanner.Err(); err != nil {
		return "", false, sferrors.NewIOError(module, "Scan", s.path, err)
	}
	return "", false, nil
}

func (s *lineSource) Close() error {
	if err := s.closer.Close(); err != nil {
		return sferrors.NewIOError(module, "Close", s.path, err)
	}
	return nil
}
