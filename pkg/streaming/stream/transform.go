package stream

import (
	"cmp"
	"context"
)

// Map returns a stream of the results of applying mapper to the elements of s.
func Map[T, R any](s Stream[T], mapper func(T) R) Stream[R] {
	return wrap[R](s.pipe().with(stage{
		kind:   stageMap,
		mapper: func(v any) any { return mapper(unbox[T](v)) },
	}))
}

// FlatMap replaces each element of s with the elements of the stream mapper returns
// for it. Each inner stream is consumed as it is reached; a nil stream is empty.
func FlatMap[T, R any](s Stream[T], mapper func(T) Stream[R]) Stream[R] {
	return wrap[R](s.pipe().with(stage{
		kind: stageFlatMap,
		expand: func(ctx context.Context, v any) (Source[any], error) {
			inner := mapper(unbox[T](v))
			if inner == nil {
				return emptySource{}, nil
			}
			ip := inner.pipe()
			if err := ip.line.claim(); err != nil {
				return nil, err
			}
			return ip.iterator(ctx)
		},
	}))
}

// FlatMapSlice replaces each element of s with the elements of the slice mapper
// returns for it.
func FlatMapSlice[T, R any](s Stream[T], mapper func(T) []R) Stream[R] {
	return wrap[R](s.pipe().with(stage{
		kind: stageFlatMap,
		expand: func(_ context.Context, v any) (Source[any], error) {
			return boxedSource[R]{src: &sliceSource[R]{slice: mapper(unbox[T](v))}}, nil
		},
	}))
}

// SortedBy sorts s stably by an ordered key.
func SortedBy[T any, K cmp.Ordered](s Stream[T], key func(T) K) Stream[T] {
	return sortedStage[T](s.pipe(), Comparing(key))
}

// DistinctBy drops elements whose key equals the key of an element already emitted.
func DistinctBy[T any, K comparable](s Stream[T], key func(T) K) Stream[T] {
	return wrap[T](s.pipe().with(stage{
		kind: stageDistinct,
		key:  func(v any) (any, error) { return key(unbox[T](v)), nil },
	}))
}
