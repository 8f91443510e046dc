/*
Package stream provides lazy sequence pipelines over finite and infinite sources.

A Stream is a source plus an ordered list of deferred stages. Intermediate operations
such as Filter, Map or Sorted only record a stage and return a new Stream; nothing is
pulled from the source until a terminal operation such as ToSlice, Reduce or FindFirst
runs. The terminal builds a fresh chain of pull iterators, one per stage, and pulls one
element at a time, so short-circuiting terminals and Limit work on infinite sources.

Basic Usage:

	ctx := context.Background()

	squares, err := stream.FromSlice([]int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}).
		Filter(func(x int) bool { return x%2 == 0 }).
		Map(func(x int) int { return x * x }).
		Sorted(nil).
		Limit(2).
		ToSlice(ctx)
	// squares == [4 16]

Sources:

	stream.FromSlice(slice)            // reads slice at evaluation time
	stream.Snapshot(slice)             // deep copy taken now
	stream.Of(1, 2, 3)
	stream.FromChannel(ch)
	stream.FromSeq(maps.Keys(m))
	stream.Range(0, 100)
	stream.Generate(rand.Int)          // infinite
	stream.Iterate(1, double)          // infinite
	stream.IterateWhile(1, below100, double)
	stream.Concat(a, b)
	stream.New(src)                    // any Source[T]
	stream.Deferred(open)              // source opened by the terminal

Changing Element Types:

Methods cannot introduce type parameters, so type-changing stages are package-level
functions:

	names := stream.Map(users, func(u User) string { return u.Name })
	fields := stream.FlatMapSlice(users, func(u User) []string { return u.Fields() })
	byID := stream.SortedBy(users, func(u User) int { return u.ID })
	unique := stream.DistinctBy(users, func(u User) int { return u.ID })

Ordering:

Sorted(nil) uses natural order: integer, float and string kinds, time.Time, and types
implementing Comparable[T]. Other element types fail with ErrTypeError. Comparators
compose with Comparing, ThenComparing and Reversed. Sorting is stable.

Sorted is a barrier: it buffers its whole upstream. On a provably infinite upstream
(Generate, Iterate, unbounded sources without a preceding Limit) the pipeline fails with
ErrUnboundedSort.

Results:

Terminals that may find nothing return mo.Option:

	first, err := s.FindFirst(ctx)
	name := first.OrElse("nobody")

Collect performs a mutable reduction with a Collector. Built-in collectors include
ToSliceCollector, ToSet, ToMap, Joining, Counting, Summing, Averaging, GroupingBy,
GroupingByWith, GroupingByOrdered, GroupingBySorted, PartitioningBy and Mapping.

Single Use:

Every stream derived from one root shares a lineage. The first terminal operation on
any of them consumes the lineage; later terminals return ErrStreamConsumed. Close
consumes the lineage without evaluating it.

Errors:

Limit and Skip reject negative counts. The error is deferred: Err reports it and
every terminal of the derived stream returns it. Errors from sources, such as I/O
failures, are returned unmodified by the terminal. Context cancellation is checked on
every pull.

Parallel Evaluation:

Parallel(n) evaluates the leading run of stateless stages (Filter, Map, FlatMap, Peek)
on a fork/join worker pool. The source is materialized and split into chunks; chunk
outputs are merged in chunk order, or in completion order after Unordered. Count,
Reduce and Collect fold each chunk separately when every stage is stateless. Infinite
sources are evaluated sequentially. Configure sets the default worker count and chunk
size.

Observability:

SetLogger installs a zerolog logger for evaluation events, EnableMetrics records
Prometheus metrics, and every terminal runs inside an OpenTelemetry span named
"stream.terminal" taken from the global tracer provider.
*/
package stream
