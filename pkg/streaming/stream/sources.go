package stream

import (
	"context"
	"iter"

	"github.com/mohae/deepcopy"
	"golang.org/x/exp/constraints"
)

// Source produces the elements of a sequence one pull at a time. Next returns
// ok == false once the sequence is exhausted.
type Source[T any] interface {
	Next(ctx context.Context) (T, bool, error)
	Close() error
}

// Unbounded is implemented by sources that never run out of elements. Streams over
// such sources reject Sorted until a Limit makes them finite.
type Unbounded interface {
	Unbounded() bool
}

// New creates a stream over src. The source is single-use: it is pulled by the first
// terminal operation and closed when that operation returns, or by Close.
func New[T any](src Source[T]) Stream[T] {
	infinite := false
	if u, ok := src.(Unbounded); ok {
		infinite = u.Unbounded()
	}
	return fromOpener(func(context.Context) (Source[T], error) { return src, nil }, infinite, src.Close)
}

// Deferred creates a stream whose source is opened by open when a terminal operation
// runs. Opening errors are returned by that terminal.
func Deferred[T any](open func(ctx context.Context) (Source[T], error)) Stream[T] {
	return fromOpener(open, false, nil)
}

// DeferredInfinite is Deferred for a source that never runs out of elements.
func DeferredInfinite[T any](open func(ctx context.Context) (Source[T], error)) Stream[T] {
	return fromOpener(open, true, nil)
}

func fromOpener[T any](open func(ctx context.Context) (Source[T], error), infinite bool, closer func() error) Stream[T] {
	return wrap[T](&pipeline{
		open: func(ctx context.Context) (Source[any], error) {
			src, err := open(ctx)
			if err != nil {
				return nil, err
			}
			return boxedSource[T]{src: src}, nil
		},
		infinite:  infinite,
		unbounded: infinite,
		line:      newLineage(closer),
	})
}

// FromSlice creates a stream over slice. The slice is read when the terminal operation
// runs, not copied; use Snapshot to isolate the stream from later writes.
func FromSlice[T any](slice []T) Stream[T] {
	return fromOpener(func(context.Context) (Source[T], error) {
		return &sliceSource[T]{slice: slice}, nil
	}, false, nil)
}

// Of creates a stream over the given values.
func Of[T any](values ...T) Stream[T] {
	return FromSlice(values)
}

// Snapshot creates a stream over a deep copy of slice taken now. The copy follows
// mohae/deepcopy rules: unexported struct fields are not copied.
func Snapshot[T any](slice []T) Stream[T] {
	cp, _ := deepcopy.Copy(slice).([]T)
	return FromSlice(cp)
}

// FromChannel creates a stream reading from ch until it is closed.
func FromChannel[T any](ch <-chan T) Stream[T] {
	return fromOpener(func(context.Context) (Source[T], error) {
		return &channelSource[T]{ch: ch}, nil
	}, false, nil)
}

// FromSeq creates a stream over a range-over-func sequence.
func FromSeq[T any](seq iter.Seq[T]) Stream[T] {
	return fromOpener(func(context.Context) (Source[T], error) {
		next, stop := iter.Pull(seq)
		return &pullSource[T]{next: next, stop: stop}, nil
	}, false, nil)
}

// Range creates a stream of the integers in [start, end).
func Range[N constraints.Integer](start, end N) Stream[N] {
	return fromOpener(func(context.Context) (Source[N], error) {
		return &rangeSource[N]{current: start, end: end}, nil
	}, false, nil)
}

// Generate creates an infinite stream of values returned by generator.
func Generate[T any](generator func() T) Stream[T] {
	return fromOpener(func(context.Context) (Source[T], error) {
		return &iterateSource[T]{step: func(T) T { return generator() }, fromSeed: false}, nil
	}, true, nil)
}

// Iterate creates the infinite stream seed, next(seed), next(next(seed)), ...
func Iterate[T any](seed T, next func(T) T) Stream[T] {
	return fromOpener(func(context.Context) (Source[T], error) {
		return &iterateSource[T]{current: seed, step: next, fromSeed: true}, nil
	}, true, nil)
}

// IterateWhile is Iterate stopping before the first element for which hasNext is false.
func IterateWhile[T any](seed T, hasNext func(T) bool, next func(T) T) Stream[T] {
	return fromOpener(func(context.Context) (Source[T], error) {
		return &iterateSource[T]{current: seed, step: next, fromSeed: true, while: hasNext}, nil
	}, false, nil)
}

// Empty creates a stream with no elements.
func Empty[T any]() Stream[T] {
	return FromSlice[T](nil)
}

// Concat creates a stream of the elements of each input in turn. The inputs are
// consumed when the concatenation is evaluated.
func Concat[T any](streams ...Stream[T]) Stream[T] {
	p := &pipeline{line: newLineage(nil)}
	pipes := make([]*pipeline, 0, len(streams))
	for _, s := range streams {
		in := s.pipe()
		pipes = append(pipes, in)
		p.infinite = p.infinite || in.infinite
		p.unbounded = p.unbounded || in.unbounded
		if p.err == nil {
			p.err = in.err
		}
	}
	p.open = func(context.Context) (Source[any], error) {
		for _, in := range pipes {
			if err := in.line.claim(); err != nil {
				return nil, err
			}
		}
		return &concatSource{pipes: pipes}, nil
	}
	return wrap[T](p)
}

type boxedSource[T any] struct {
	src Source[T]
}

func (b boxedSource[T]) Next(ctx context.Context) (any, bool, error) {
	v, ok, err := b.src.Next(ctx)
	if err != nil || !ok {
		return nil, false, err
	}
	return v, true, nil
}

func (b boxedSource[T]) Close() error { return b.src.Close() }

type sliceSource[T any] struct {
	slice []T
	index int
}

func (s *sliceSource[T]) Next(context.Context) (T, bool, error) {
	var zero T
	if s.index >= len(s.slice) {
		return zero, false, nil
	}
	v := s.slice[s.index]
	s.index++
	return v, true, nil
}

func (s *sliceSource[T]) Close() error { return nil }

type channelSource[T any] struct {
	ch <-chan T
}

func (s *channelSource[T]) Next(ctx context.Context) (T, bool, error) {
	var zero T

	select {
	case value, ok := <-s.ch:
		if !ok {
			return zero, false, nil
		}
		return value, true, nil
	case <-ctx.Done():
		return zero, false, ctx.Err()
	}
}

func (s *channelSource[T]) Close() error { return nil }

type pullSource[T any] struct {
	next func() (T, bool)
	stop func()
}

func (s *pullSource[T]) Next(context.Context) (T, bool, error) {
	v, ok := s.next()
	return v, ok, nil
}

func (s *pullSource[T]) Close() error {
	s.stop()
	return nil
}

type rangeSource[N constraints.Integer] struct {
	current, end N
}

func (s *rangeSource[N]) Next(context.Context) (N, bool, error) {
	if s.current >= s.end {
		return 0, false, nil
	}
	v := s.current
	s.current++
	return v, true, nil
}

func (s *rangeSource[N]) Close() error { return nil }

// iterateSource yields current, step(current), ... When fromSeed is false the first
// element is step applied to the zero value, which is how Generate ignores the seed.
type iterateSource[T any] struct {
	current  T
	step     func(T) T
	fromSeed bool
	started  bool
	while    func(T) bool
	done     bool
}

func (s *iterateSource[T]) Next(context.Context) (T, bool, error) {
	var zero T
	if s.done {
		return zero, false, nil
	}
	if s.started || !s.fromSeed {
		s.current = s.step(s.current)
	}
	s.started = true
	if s.while != nil && !s.while(s.current) {
		s.done = true
		return zero, false, nil
	}
	return s.current, true, nil
}

func (s *iterateSource[T]) Close() error { return nil }

func (s *iterateSource[T]) Unbounded() bool { return s.while == nil }

type concatSource struct {
	pipes   []*pipeline
	current Source[any]
}

func (s *concatSource) Next(ctx context.Context) (any, bool, error) {
	for {
		if s.current == nil {
			if len(s.pipes) == 0 {
				return nil, false, nil
			}
			src, err := s.pipes[0].iterator(ctx)
			if err != nil {
				return nil, false, err
			}
			s.pipes = s.pipes[1:]
			s.current = src
		}
		v, ok, err := s.current.Next(ctx)
		if err != nil {
			return nil, false, err
		}
		if ok {
			return v, true, nil
		}
		err = s.current.Close()
		s.current = nil
		if err != nil {
			return nil, false, err
		}
	}
}

func (s *concatSource) Close() error {
	if s.current == nil {
		return nil
	}
	err := s.current.Close()
	s.current = nil
	return err
}

type emptySource struct{}

func (emptySource) Next(context.Context) (any, bool, error) { return nil, false, nil }

func (emptySource) Close() error { return nil }
