package stream

import (
	"context"
	"iter"
	"sync"
	"sync/atomic"

	"github.com/samber/mo"

	sferrors "github.com/vnykmshr/seqflow/pkg/common/errors"
	"github.com/vnykmshr/seqflow/pkg/common/validation"
)

// ErrStreamConsumed is returned by a terminal operation on a pipeline whose lineage has
// already been evaluated or closed.
var ErrStreamConsumed = sferrors.ErrStreamConsumed

// Stream represents a lazy sequence of elements supporting sequential and parallel
// operations. Intermediate operations only record a stage; computation on the source
// happens when a terminal operation is called, and source elements are pulled only as
// far as the terminal needs them.
//
// Every stream derived from the same root shares one lineage. Only the first terminal
// operation on any member of the lineage runs; later ones return ErrStreamConsumed.
type Stream[T any] interface {
	// Intermediate operations (lazy, return new Stream)

	// Filter returns a stream consisting of elements that match the given predicate.
	Filter(predicate func(T) bool) Stream[T]

	// Map returns a stream consisting of the results of applying mapper to elements.
	// Use the package-level Map to change the element type.
	Map(mapper func(T) T) Stream[T]

	// FlatMap replaces each element with the contents of the stream produced by mapper.
	// A nil stream is treated as empty.
	FlatMap(mapper func(T) Stream[T]) Stream[T]

	// Distinct drops elements equal (==) to one already emitted. The first occurrence
	// wins. Elements whose dynamic type is not comparable fail with ErrTypeError.
	Distinct() Stream[T]

	// Sorted returns a stream sorted stably by compare, or by natural order when compare
	// is nil. It buffers its whole upstream and fails with ErrUnboundedSort on an
	// infinite one.
	Sorted(compare func(a, b T) int) Stream[T]

	// Skip discards the first n elements. n must not be negative.
	Skip(n int64) Stream[T]

	// Limit truncates the stream to at most n elements. n must not be negative.
	Limit(n int64) Stream[T]

	// Peek performs action on each element as it passes through.
	Peek(action func(T)) Stream[T]

	// Unordered releases the encounter-order guarantee for the stages that follow.
	Unordered() Stream[T]

	// Parallel evaluates leading stateless stages on a worker pool of the given size.
	// A non-positive size uses the configured default.
	Parallel(workers int) Stream[T]

	// Sequential clears the parallel flag.
	Sequential() Stream[T]

	// Terminal operations (eager, consume the stream)

	// ForEach performs action for each element.
	ForEach(ctx context.Context, action func(T)) error

	// ForEachOrdered performs action for each element in encounter order, even when
	// the stream is unordered.
	ForEachOrdered(ctx context.Context, action func(T)) error

	// Reduce folds the elements into identity using accumulator.
	Reduce(ctx context.Context, identity T, accumulator func(T, T) T) (T, error)

	// ReduceOptional folds the elements using the first one as the seed.
	ReduceOptional(ctx context.Context, accumulator func(T, T) T) (mo.Option[T], error)

	// ToSlice returns a slice containing all elements.
	ToSlice(ctx context.Context) ([]T, error)

	// Count returns the number of elements.
	Count(ctx context.Context) (int64, error)

	// AnyMatch reports whether any element matches predicate.
	AnyMatch(ctx context.Context, predicate func(T) bool) (bool, error)

	// AllMatch reports whether all elements match predicate.
	AllMatch(ctx context.Context, predicate func(T) bool) (bool, error)

	// NoneMatch reports whether no element matches predicate.
	NoneMatch(ctx context.Context, predicate func(T) bool) (bool, error)

	// FindFirst returns the first element, if any.
	FindFirst(ctx context.Context) (mo.Option[T], error)

	// FindAny returns some element, if any.
	FindAny(ctx context.Context) (mo.Option[T], error)

	// Min returns the smallest element by compare, or by natural order when nil.
	Min(ctx context.Context, compare func(a, b T) int) (mo.Option[T], error)

	// Max returns the largest element by compare, or by natural order when nil.
	Max(ctx context.Context, compare func(a, b T) int) (mo.Option[T], error)

	// Seq returns the elements as a range-over-func sequence. Breaking out of the loop
	// stops evaluation and closes the source. An evaluation error is yielded once as
	// the last pair.
	Seq(ctx context.Context) iter.Seq2[T, error]

	// State

	// Err returns the deferred construction error of the pipeline, if any. Every
	// terminal operation returns the same error.
	Err() error

	// IsParallel reports whether the stream is marked parallel.
	IsParallel() bool

	// IsOrdered reports whether encounter order is guaranteed.
	IsOrdered() bool

	// IsClosed reports whether the lineage has been consumed or closed.
	IsClosed() bool

	// Close marks the lineage consumed and releases a source that was never evaluated.
	// Closing after a terminal operation is a no-op.
	Close() error

	pipe() *pipeline
}

// lineage is the consumed flag shared by every stream derived from one root.
type lineage struct {
	consumed atomic.Bool
	once     sync.Once
	closer   func() error
}

func newLineage(closer func() error) *lineage {
	return &lineage{closer: closer}
}

// claim marks the lineage consumed, failing if it already was.
func (l *lineage) claim() error {
	if !l.consumed.CompareAndSwap(false, true) {
		return ErrStreamConsumed
	}
	return nil
}

func (l *lineage) close() error {
	if !l.consumed.CompareAndSwap(false, true) {
		return nil
	}
	var err error
	l.once.Do(func() {
		if l.closer != nil {
			err = l.closer()
		}
	})
	return err
}

// pipeline is the untyped representation behind every Stream. Elements travel boxed
// so stages that change the element type stay in one stage list.
type pipeline struct {
	open      func(ctx context.Context) (Source[any], error)
	stages    []stage
	parallel  int
	unordered bool
	err       error
	line      *lineage

	// infinite is cleared by Limit and gates Sorted. unbounded stays set for the
	// source itself, which parallel evaluation must never drain.
	infinite  bool
	unbounded bool
}

// with returns a copy of p with st appended. The receiver's stage list is never
// shared with the copy.
func (p *pipeline) with(st stage) *pipeline {
	next := *p
	next.stages = make([]stage, len(p.stages), len(p.stages)+1)
	copy(next.stages, p.stages)
	next.stages = append(next.stages, st)
	if next.err == nil {
		next.err = st.err
	}
	return &next
}

func (p *pipeline) flags(mutate func(*pipeline)) *pipeline {
	next := *p
	mutate(&next)
	return &next
}

type stream[T any] struct {
	p *pipeline
}

func wrap[T any](p *pipeline) Stream[T] {
	return &stream[T]{p: p}
}

func (s *stream[T]) pipe() *pipeline { return s.p }

func (s *stream[T]) Filter(predicate func(T) bool) Stream[T] {
	return wrap[T](s.p.with(stage{
		kind:      stageFilter,
		predicate: func(v any) bool { return predicate(unbox[T](v)) },
	}))
}

func (s *stream[T]) Map(mapper func(T) T) Stream[T] {
	return Map[T, T](s, mapper)
}

func (s *stream[T]) FlatMap(mapper func(T) Stream[T]) Stream[T] {
	return FlatMap[T, T](s, mapper)
}

func (s *stream[T]) Distinct() Stream[T] {
	st := stage{kind: stageDistinct, key: dynamicKey}
	if !isComparableType[T]() {
		st.err = typeError("distinct", typeName[T](), "is not comparable")
	}
	return wrap[T](s.p.with(st))
}

func (s *stream[T]) Sorted(compare func(a, b T) int) Stream[T] {
	if compare == nil {
		natural, err := naturalOrder[T]()
		if err != nil {
			return wrap[T](s.p.with(stage{kind: stageSorted, err: err}))
		}
		compare = natural
	}
	return sortedStage[T](s.p, compare)
}

func (s *stream[T]) Skip(n int64) Stream[T] {
	st := stage{kind: stageSkip, n: n}
	if err := validation.ValidateNonNegative("stream", "skip", n); err != nil {
		st.err = err
	}
	return wrap[T](s.p.with(st))
}

func (s *stream[T]) Limit(n int64) Stream[T] {
	st := stage{kind: stageLimit, n: n}
	if err := validation.ValidateNonNegative("stream", "limit", n); err != nil {
		st.err = err
	}
	next := s.p.with(st)
	next.infinite = false
	return wrap[T](next)
}

func (s *stream[T]) Peek(action func(T)) Stream[T] {
	return wrap[T](s.p.with(stage{
		kind:   stagePeek,
		action: func(v any) { action(unbox[T](v)) },
	}))
}

func (s *stream[T]) Unordered() Stream[T] {
	return wrap[T](s.p.flags(func(p *pipeline) { p.unordered = true }))
}

func (s *stream[T]) Parallel(workers int) Stream[T] {
	if workers <= 0 {
		workers = currentOptions().Workers
	}
	return wrap[T](s.p.flags(func(p *pipeline) { p.parallel = workers }))
}

func (s *stream[T]) Sequential() Stream[T] {
	return wrap[T](s.p.flags(func(p *pipeline) { p.parallel = 0 }))
}

func (s *stream[T]) Err() error { return s.p.err }

func (s *stream[T]) IsParallel() bool { return s.p.parallel > 0 }

func (s *stream[T]) IsOrdered() bool { return !s.p.unordered }

func (s *stream[T]) IsClosed() bool { return s.p.line.consumed.Load() }

func (s *stream[T]) Close() error { return s.p.line.close() }

// unbox returns v as a T. A nil v is the zero T, which is how a nil element of an
// interface element type travels through the boxed stages.
func unbox[T any](v any) T {
	t, _ := v.(T)
	return t
}

func sortedStage[T any](p *pipeline, compare func(a, b T) int) Stream[T] {
	st := stage{
		kind:    stageSorted,
		compare: func(a, b any) int { return compare(unbox[T](a), unbox[T](b)) },
	}
	if p.infinite {
		st.err = unboundedError("sorted")
	}
	return wrap[T](p.with(st))
}
