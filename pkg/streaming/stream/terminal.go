package stream

import (
	"context"
	"iter"

	"github.com/samber/mo"
)

func (s *stream[T]) ForEach(ctx context.Context, action func(T)) error {
	return s.p.run(ctx, "forEach", func(ctx context.Context, src Source[any]) error {
		return drain(ctx, src, func(v any) bool {
			action(unbox[T](v))
			return true
		})
	})
}

func (s *stream[T]) ForEachOrdered(ctx context.Context, action func(T)) error {
	ordered := s.p.flags(func(p *pipeline) { p.unordered = false })
	return ordered.run(ctx, "forEachOrdered", func(ctx context.Context, src Source[any]) error {
		return drain(ctx, src, func(v any) bool {
			action(unbox[T](v))
			return true
		})
	})
}

func (s *stream[T]) Reduce(ctx context.Context, identity T, accumulator func(T, T) T) (T, error) {
	result := identity
	err := s.p.runFolded(ctx, "reduce", foldOptional(accumulator),
		func(parts []any) error {
			for _, part := range parts {
				if v, ok := part.(mo.Option[T]).Get(); ok {
					result = accumulator(result, v)
				}
			}
			return nil
		},
		func(ctx context.Context, src Source[any]) error {
			return drain(ctx, src, func(v any) bool {
				result = accumulator(result, unbox[T](v))
				return true
			})
		})
	if err != nil {
		var zero T
		return zero, err
	}
	return result, nil
}

func (s *stream[T]) ReduceOptional(ctx context.Context, accumulator func(T, T) T) (mo.Option[T], error) {
	fold := foldOptional(accumulator)

	result := mo.None[T]()
	err := s.p.runFolded(ctx, "reduceOptional", fold,
		func(parts []any) error {
			for _, part := range parts {
				v, ok := part.(mo.Option[T]).Get()
				if !ok {
					continue
				}
				if acc, ok := result.Get(); ok {
					result = mo.Some(accumulator(acc, v))
				} else {
					result = mo.Some(v)
				}
			}
			return nil
		},
		func(ctx context.Context, src Source[any]) error {
			r, err := fold(ctx, src)
			if err == nil {
				result = r.(mo.Option[T])
			}
			return err
		})
	if err != nil {
		return mo.None[T](), err
	}
	return result, nil
}

// foldOptional folds one part of the stream seeded by its first element. A part with
// no elements folds to None, so a Reduce identity is applied once, not per chunk.
func foldOptional[T any](accumulator func(T, T) T) func(ctx context.Context, src Source[any]) (any, error) {
	return func(ctx context.Context, src Source[any]) (any, error) {
		result := mo.None[T]()
		err := drain(ctx, src, func(v any) bool {
			e := unbox[T](v)
			if acc, ok := result.Get(); ok {
				result = mo.Some(accumulator(acc, e))
			} else {
				result = mo.Some(e)
			}
			return true
		})
		return result, err
	}
}

func (s *stream[T]) ToSlice(ctx context.Context) ([]T, error) {
	result := []T{}
	err := s.p.run(ctx, "toSlice", func(ctx context.Context, src Source[any]) error {
		return drain(ctx, src, func(v any) bool {
			result = append(result, unbox[T](v))
			return true
		})
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *stream[T]) Count(ctx context.Context) (int64, error) {
	fold := func(ctx context.Context, src Source[any]) (any, error) {
		var n int64
		err := drain(ctx, src, func(any) bool {
			n++
			return true
		})
		return n, err
	}

	var count int64
	err := s.p.runFolded(ctx, "count", fold,
		func(parts []any) error {
			for _, part := range parts {
				count += part.(int64)
			}
			return nil
		},
		func(ctx context.Context, src Source[any]) error {
			r, err := fold(ctx, src)
			if err == nil {
				count = r.(int64)
			}
			return err
		})
	if err != nil {
		return 0, err
	}
	return count, nil
}

// match pulls until an element's predicate result equals stopOn.
func (s *stream[T]) match(ctx context.Context, terminal string, predicate func(T) bool, stopOn bool) (bool, error) {
	found := false
	err := s.p.run(ctx, terminal, func(ctx context.Context, src Source[any]) error {
		return drain(ctx, src, func(v any) bool {
			if predicate(unbox[T](v)) == stopOn {
				found = true
				return false
			}
			return true
		})
	})
	return found, err
}

func (s *stream[T]) AnyMatch(ctx context.Context, predicate func(T) bool) (bool, error) {
	return s.match(ctx, "anyMatch", predicate, true)
}

func (s *stream[T]) AllMatch(ctx context.Context, predicate func(T) bool) (bool, error) {
	failed, err := s.match(ctx, "allMatch", predicate, false)
	if err != nil {
		return false, err
	}
	return !failed, nil
}

func (s *stream[T]) NoneMatch(ctx context.Context, predicate func(T) bool) (bool, error) {
	found, err := s.match(ctx, "noneMatch", predicate, true)
	if err != nil {
		return false, err
	}
	return !found, nil
}

func (s *stream[T]) first(ctx context.Context, terminal string) (mo.Option[T], error) {
	result := mo.None[T]()
	err := s.p.run(ctx, terminal, func(ctx context.Context, src Source[any]) error {
		return drain(ctx, src, func(v any) bool {
			result = mo.Some(unbox[T](v))
			return false
		})
	})
	if err != nil {
		return mo.None[T](), err
	}
	return result, nil
}

func (s *stream[T]) FindFirst(ctx context.Context) (mo.Option[T], error) {
	return s.first(ctx, "findFirst")
}

func (s *stream[T]) FindAny(ctx context.Context) (mo.Option[T], error) {
	return s.first(ctx, "findAny")
}

// extreme keeps the element e for which keep(compare(e, current)) holds.
func (s *stream[T]) extreme(ctx context.Context, terminal string, compare func(a, b T) int, keep func(int) bool) (mo.Option[T], error) {
	if compare == nil {
		natural, err := naturalOrder[T]()
		if err != nil {
			return mo.None[T](), err
		}
		compare = natural
	}

	result := mo.None[T]()
	err := s.p.run(ctx, terminal, func(ctx context.Context, src Source[any]) (err error) {
		defer recoverOrder(&err)
		return drain(ctx, src, func(v any) bool {
			e := unbox[T](v)
			if current, ok := result.Get(); !ok || keep(compare(e, current)) {
				result = mo.Some(e)
			}
			return true
		})
	})
	if err != nil {
		return mo.None[T](), err
	}
	return result, nil
}

func (s *stream[T]) Min(ctx context.Context, compare func(a, b T) int) (mo.Option[T], error) {
	return s.extreme(ctx, "min", compare, func(c int) bool { return c < 0 })
}

func (s *stream[T]) Max(ctx context.Context, compare func(a, b T) int) (mo.Option[T], error) {
	return s.extreme(ctx, "max", compare, func(c int) bool { return c > 0 })
}

func (s *stream[T]) Seq(ctx context.Context) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		stopped := false
		err := s.p.run(ctx, "seq", func(ctx context.Context, src Source[any]) error {
			return drain(ctx, src, func(v any) bool {
				if !yield(unbox[T](v), nil) {
					stopped = true
					return false
				}
				return true
			})
		})
		if err != nil && !stopped {
			var zero T
			yield(zero, err)
		}
	}
}

// Fold accumulates the elements of s into init with fn.
func Fold[T, R any](ctx context.Context, s Stream[T], init R, fn func(R, T) R) (R, error) {
	result := init
	err := s.pipe().run(ctx, "fold", func(ctx context.Context, src Source[any]) error {
		return drain(ctx, src, func(v any) bool {
			result = fn(result, unbox[T](v))
			return true
		})
	})
	if err != nil {
		var zero R
		return zero, err
	}
	return result, nil
}

// GroupBy groups the elements of s by key. Elements keep their encounter order within
// each group.
func GroupBy[T any, K comparable](ctx context.Context, s Stream[T], key func(T) K) (map[K][]T, error) {
	return Collect(ctx, s, GroupingBy(key))
}
