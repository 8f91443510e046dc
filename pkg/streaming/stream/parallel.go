package stream

import (
	"context"
	"sync"

	"github.com/vnykmshr/seqflow/pkg/scheduling/workerpool"
)

// split returns the leading run of stateless stages and the stages after it.
func (p *pipeline) split() (prefix, rest []stage) {
	i := 0
	for i < len(p.stages) && p.stages[i].stateless() {
		i++
	}
	return p.stages[:i], p.stages[i:]
}

// materialize drains the root source into memory.
func (p *pipeline) materialize(ctx context.Context, ev *evaluation) (items []any, err error) {
	src, err := p.open(ctx)
	if err != nil {
		return nil, err
	}
	guarded := &guardSource{src: src, pulled: &ev.pulled}
	defer func() {
		if cerr := guarded.Close(); err == nil {
			err = cerr
		}
	}()
	err = drain(ctx, guarded, func(v any) bool {
		items = append(items, v)
		return true
	})
	return items, err
}

func (p *pipeline) chunks(items []any) [][]any {
	size := currentOptions().ChunkSize
	if size <= 0 {
		size = (len(items) + p.parallel - 1) / p.parallel
	}
	if size <= 0 {
		size = 1
	}
	out := make([][]any, 0, (len(items)+size-1)/size)
	for start := 0; start < len(items); start += size {
		end := min(start+size, len(items))
		out = append(out, items[start:end])
	}
	return out
}

// fork runs the stateless prefix on every chunk of the materialized source on a
// fork/join pool and hands each chunk's output to work. It returns work's results in
// chunk order and the chunk indices in completion order.
func (p *pipeline) fork(ctx context.Context, ev *evaluation, prefix []stage,
	work func(ctx context.Context, src Source[any]) (any, error)) (results []any, completed []int, err error) {
	items, err := p.materialize(ctx, ev)
	if err != nil {
		return nil, nil, err
	}
	chunks := p.chunks(items)
	ev.chunks = len(chunks)

	results = make([]any, len(chunks))
	completed = make([]int, 0, len(chunks))
	var mu sync.Mutex

	tasks := make([]workerpool.Task, len(chunks))
	for i, chunk := range chunks {
		tasks[i] = workerpool.TaskFunc(func(ctx context.Context) (err error) {
			src := chain(&guardSource{src: &sliceSource[any]{slice: chunk}}, prefix)
			defer func() {
				if cerr := src.Close(); err == nil {
					err = cerr
				}
			}()
			r, err := work(ctx, src)
			if err != nil {
				return err
			}
			mu.Lock()
			results[i] = r
			completed = append(completed, i)
			mu.Unlock()
			return nil
		})
	}

	_, err = workerpool.ForkJoin(ctx, workerpool.Config{
		WorkerCount: p.parallel,
		Name:        "stream",
		Metrics:     metricsRegistry(),
	}, tasks)
	if err != nil {
		return nil, nil, err
	}
	return results, completed, nil
}

// parallelSource evaluates the stateless prefix in parallel and returns the merged
// output chained with the remaining stages. Chunks are merged in chunk order unless
// the stream is unordered, in which case they are merged as they completed.
func (p *pipeline) parallelSource(ctx context.Context, ev *evaluation) (Source[any], error) {
	prefix, rest := p.split()
	results, completed, err := p.fork(ctx, ev, prefix, func(ctx context.Context, src Source[any]) (any, error) {
		var out []any
		err := drain(ctx, src, func(v any) bool {
			out = append(out, v)
			return true
		})
		return out, err
	})
	if err != nil {
		return nil, err
	}

	var merged []any
	for _, i := range p.mergeOrder(results, completed) {
		merged = append(merged, results[i].([]any)...)
	}
	return chain(&guardSource{src: &sliceSource[any]{slice: merged}}, rest), nil
}

func (p *pipeline) mergeOrder(results []any, completed []int) []int {
	if p.unordered {
		return completed
	}
	order := make([]int, len(results))
	for i := range order {
		order[i] = i
	}
	return order
}

// forkable reports whether a terminal may fold each chunk separately and combine the
// partial results.
func (p *pipeline) forkable() bool {
	if p.parallel <= 0 || p.unbounded || p.err != nil {
		return false
	}
	_, rest := p.split()
	return len(rest) == 0
}

// runFolded evaluates a fully stateless parallel pipeline by folding every chunk with
// fold and merging the partial results with combine, in merge order. Other pipelines
// are evaluated by body.
func (p *pipeline) runFolded(ctx context.Context, terminal string,
	fold func(ctx context.Context, src Source[any]) (any, error),
	combine func(parts []any) error,
	body func(ctx context.Context, src Source[any]) error) error {
	if !p.forkable() {
		return p.run(ctx, terminal, body)
	}

	ctx, ev := p.observe(ctx, terminal)
	err := p.line.claim()
	if err == nil {
		var results []any
		var completed []int
		results, completed, err = p.fork(ctx, ev, p.stages, fold)
		if err == nil {
			parts := make([]any, 0, len(results))
			for _, i := range p.mergeOrder(results, completed) {
				parts = append(parts, results[i])
			}
			err = combine(parts)
		}
	}
	ev.end(err)
	return err
}
