package stream

import (
	"context"
	"strings"

	"github.com/emirpasic/gods/maps/linkedhashmap"
	"github.com/emirpasic/gods/maps/treemap"
	"github.com/emirpasic/gods/utils"

	"github.com/vnykmshr/seqflow/pkg/common/validation"
)

// Collector describes a mutable reduction: Supplier creates an empty container,
// Accumulator folds one element into it, Combiner merges two containers built from
// adjacent parts of the stream and Finisher converts the container into the result.
//
// Accumulator and Combiner return the container so value types such as slices and
// numbers can be used directly. A nil Combiner keeps Collect sequential even on a
// parallel stream.
type Collector[T, A, R any] struct {
	Supplier    func() A
	Accumulator func(A, T) A
	Combiner    func(A, A) A
	Finisher    func(A) R
}

// Group is one key and its elements, in encounter order.
type Group[K, T any] struct {
	Key    K
	Values []T
}

// Collect performs the mutable reduction c on the elements of s. A parallel stream
// whose stages are all stateless accumulates each chunk separately and merges the
// containers with c.Combiner.
func Collect[T, A, R any](ctx context.Context, s Stream[T], c Collector[T, A, R]) (R, error) {
	fold := func(ctx context.Context, src Source[any]) (any, error) {
		acc := c.Supplier()
		err := drain(ctx, src, func(v any) bool {
			acc = c.Accumulator(acc, unbox[T](v))
			return true
		})
		return acc, err
	}

	var acc A
	body := func(ctx context.Context, src Source[any]) error {
		r, err := fold(ctx, src)
		if err == nil {
			acc = unbox[A](r)
		}
		return err
	}

	p := s.pipe()
	var err error
	if c.Combiner == nil {
		err = p.run(ctx, "collect", body)
	} else {
		err = p.runFolded(ctx, "collect", fold, func(parts []any) error {
			acc = c.Supplier()
			for _, part := range parts {
				acc = c.Combiner(acc, unbox[A](part))
			}
			return nil
		}, body)
	}
	if err != nil {
		var zero R
		return zero, err
	}
	return finish(c, acc), nil
}

func finish[T, A, R any](c Collector[T, A, R], acc A) R {
	if c.Finisher != nil {
		return c.Finisher(acc)
	}
	r, _ := any(acc).(R)
	return r
}

func identity[A any](a A) A { return a }

// ToSliceCollector collects the elements into a slice in encounter order.
func ToSliceCollector[T any]() Collector[T, []T, []T] {
	return Collector[T, []T, []T]{
		Supplier:    func() []T { return []T{} },
		Accumulator: func(acc []T, v T) []T { return append(acc, v) },
		Combiner:    func(a, b []T) []T { return append(a, b...) },
		Finisher:    identity[[]T],
	}
}

// ToSet collects the distinct elements into a set.
func ToSet[T comparable]() Collector[T, map[T]struct{}, map[T]struct{}] {
	return Collector[T, map[T]struct{}, map[T]struct{}]{
		Supplier: func() map[T]struct{} { return make(map[T]struct{}) },
		Accumulator: func(acc map[T]struct{}, v T) map[T]struct{} {
			acc[v] = struct{}{}
			return acc
		},
		Combiner: func(a, b map[T]struct{}) map[T]struct{} {
			for v := range b {
				a[v] = struct{}{}
			}
			return a
		},
		Finisher: identity[map[T]struct{}],
	}
}

// ToMap collects the elements into a map. When two elements share a key, merge
// combines their values; a nil merge keeps the later value.
func ToMap[T any, K comparable, V any](key func(T) K, value func(T) V, merge func(V, V) V) Collector[T, map[K]V, map[K]V] {
	if merge == nil {
		merge = func(_, later V) V { return later }
	}
	put := func(acc map[K]V, k K, v V) {
		if old, ok := acc[k]; ok {
			v = merge(old, v)
		}
		acc[k] = v
	}
	return Collector[T, map[K]V, map[K]V]{
		Supplier: func() map[K]V { return make(map[K]V) },
		Accumulator: func(acc map[K]V, v T) map[K]V {
			put(acc, key(v), value(v))
			return acc
		},
		Combiner: func(a, b map[K]V) map[K]V {
			for k, v := range b {
				put(a, k, v)
			}
			return a
		},
		Finisher: identity[map[K]V],
	}
}

// Joining concatenates the elements separated by sep and surrounded by prefix and
// suffix.
func Joining(sep, prefix, suffix string) Collector[string, []string, string] {
	return Collector[string, []string, string]{
		Supplier:    func() []string { return nil },
		Accumulator: func(acc []string, v string) []string { return append(acc, v) },
		Combiner:    func(a, b []string) []string { return append(a, b...) },
		Finisher: func(acc []string) string {
			return prefix + strings.Join(acc, sep) + suffix
		},
	}
}

// Counting counts the elements.
func Counting[T any]() Collector[T, int64, int64] {
	return Collector[T, int64, int64]{
		Supplier:    func() int64 { return 0 },
		Accumulator: func(acc int64, _ T) int64 { return acc + 1 },
		Combiner:    func(a, b int64) int64 { return a + b },
		Finisher:    identity[int64],
	}
}

// Summing sums a numeric projection of the elements.
func Summing[T any, N validation.Number](fn func(T) N) Collector[T, N, N] {
	return Collector[T, N, N]{
		Supplier:    func() N { return 0 },
		Accumulator: func(acc N, v T) N { return acc + fn(v) },
		Combiner:    func(a, b N) N { return a + b },
		Finisher:    identity[N],
	}
}

type average struct {
	sum   float64
	count int64
}

// Averaging returns the arithmetic mean of a numeric projection, or 0 for an empty
// stream.
func Averaging[T any, N validation.Number](fn func(T) N) Collector[T, average, float64] {
	return Collector[T, average, float64]{
		Supplier: func() average { return average{} },
		Accumulator: func(acc average, v T) average {
			acc.sum += float64(fn(v))
			acc.count++
			return acc
		},
		Combiner: func(a, b average) average {
			return average{sum: a.sum + b.sum, count: a.count + b.count}
		},
		Finisher: func(acc average) float64 {
			if acc.count == 0 {
				return 0
			}
			return acc.sum / float64(acc.count)
		},
	}
}

// GroupingBy groups the elements by key.
func GroupingBy[T any, K comparable](key func(T) K) Collector[T, map[K][]T, map[K][]T] {
	return Collector[T, map[K][]T, map[K][]T]{
		Supplier: func() map[K][]T { return make(map[K][]T) },
		Accumulator: func(acc map[K][]T, v T) map[K][]T {
			k := key(v)
			acc[k] = append(acc[k], v)
			return acc
		},
		Combiner: func(a, b map[K][]T) map[K][]T {
			for k, vs := range b {
				a[k] = append(a[k], vs...)
			}
			return a
		},
		Finisher: identity[map[K][]T],
	}
}

// GroupingByWith groups the elements by key and reduces each group with downstream.
func GroupingByWith[T any, K comparable, A, R any](key func(T) K, downstream Collector[T, A, R]) Collector[T, map[K]A, map[K]R] {
	c := Collector[T, map[K]A, map[K]R]{
		Supplier: func() map[K]A { return make(map[K]A) },
		Accumulator: func(acc map[K]A, v T) map[K]A {
			k := key(v)
			a, ok := acc[k]
			if !ok {
				a = downstream.Supplier()
			}
			acc[k] = downstream.Accumulator(a, v)
			return acc
		},
		Finisher: func(acc map[K]A) map[K]R {
			out := make(map[K]R, len(acc))
			for k, a := range acc {
				out[k] = finish(downstream, a)
			}
			return out
		},
	}
	if downstream.Combiner != nil {
		c.Combiner = func(a, b map[K]A) map[K]A {
			for k, vb := range b {
				if va, ok := a[k]; ok {
					a[k] = downstream.Combiner(va, vb)
				} else {
					a[k] = vb
				}
			}
			return a
		}
	}
	return c
}

// GroupingByOrdered groups the elements by key and returns the groups in the order
// their keys were first encountered.
func GroupingByOrdered[T any, K comparable](key func(T) K) Collector[T, *linkedhashmap.Map, []Group[K, T]] {
	return Collector[T, *linkedhashmap.Map, []Group[K, T]]{
		Supplier: func() *linkedhashmap.Map { return linkedhashmap.New() },
		Accumulator: func(acc *linkedhashmap.Map, v T) *linkedhashmap.Map {
			appendGroup(acc.Get, acc.Put, key(v), v)
			return acc
		},
		Combiner: func(a, b *linkedhashmap.Map) *linkedhashmap.Map {
			for _, k := range b.Keys() {
				vs, _ := b.Get(k)
				mergeGroup[T](a.Get, a.Put, k, vs)
			}
			return a
		},
		Finisher: func(acc *linkedhashmap.Map) []Group[K, T] {
			return groups[K, T](acc.Keys(), acc.Get)
		},
	}
}

// GroupingBySorted groups the elements by key and returns the groups ordered by
// compare applied to their keys.
func GroupingBySorted[T, K any](key func(T) K, compare func(a, b K) int) Collector[T, *treemap.Map, []Group[K, T]] {
	var comparator utils.Comparator = func(a, b interface{}) int {
		return compare(unbox[K](a), unbox[K](b))
	}
	return Collector[T, *treemap.Map, []Group[K, T]]{
		Supplier: func() *treemap.Map { return treemap.NewWith(comparator) },
		Accumulator: func(acc *treemap.Map, v T) *treemap.Map {
			appendGroup(acc.Get, acc.Put, key(v), v)
			return acc
		},
		Combiner: func(a, b *treemap.Map) *treemap.Map {
			for _, k := range b.Keys() {
				vs, _ := b.Get(k)
				mergeGroup[T](a.Get, a.Put, k, vs)
			}
			return a
		},
		Finisher: func(acc *treemap.Map) []Group[K, T] {
			return groups[K, T](acc.Keys(), acc.Get)
		},
	}
}

func appendGroup[K, T any](get func(interface{}) (interface{}, bool), put func(interface{}, interface{}), k K, v T) {
	var vs []T
	if cur, ok := get(k); ok {
		vs = cur.([]T)
	}
	put(k, append(vs, v))
}

func mergeGroup[T any](get func(interface{}) (interface{}, bool), put func(interface{}, interface{}), k, more interface{}) {
	var vs []T
	if cur, ok := get(k); ok {
		vs = cur.([]T)
	}
	put(k, append(vs, more.([]T)...))
}

func groups[K, T any](keys []interface{}, get func(interface{}) (interface{}, bool)) []Group[K, T] {
	out := make([]Group[K, T], 0, len(keys))
	for _, k := range keys {
		vs, _ := get(k)
		out = append(out, Group[K, T]{Key: unbox[K](k), Values: vs.([]T)})
	}
	return out
}

// PartitioningBy splits the elements by predicate. Both keys are always present.
func PartitioningBy[T any](predicate func(T) bool) Collector[T, map[bool][]T, map[bool][]T] {
	return Collector[T, map[bool][]T, map[bool][]T]{
		Supplier: func() map[bool][]T { return map[bool][]T{true: {}, false: {}} },
		Accumulator: func(acc map[bool][]T, v T) map[bool][]T {
			k := predicate(v)
			acc[k] = append(acc[k], v)
			return acc
		},
		Combiner: func(a, b map[bool][]T) map[bool][]T {
			a[true] = append(a[true], b[true]...)
			a[false] = append(a[false], b[false]...)
			return a
		},
		Finisher: identity[map[bool][]T],
	}
}

// Mapping adapts downstream to accept T by applying mapper to each element first.
func Mapping[T, U, A, R any](mapper func(T) U, downstream Collector[U, A, R]) Collector[T, A, R] {
	return Collector[T, A, R]{
		Supplier:    downstream.Supplier,
		Accumulator: func(acc A, v T) A { return downstream.Accumulator(acc, mapper(v)) },
		Combiner:    downstream.Combiner,
		Finisher:    func(acc A) R { return finish(downstream, acc) },
	}
}
