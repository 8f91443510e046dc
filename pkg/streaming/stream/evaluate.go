package stream

import (
	"context"
	"sync/atomic"

	sfctx "github.com/vnykmshr/seqflow/pkg/common/context"
)

// guardSource checks for cancellation before every pull and counts delivered elements.
type guardSource struct {
	src    Source[any]
	pulled *atomic.Int64
}

func (g *guardSource) Next(ctx context.Context) (any, bool, error) {
	if err := sfctx.Check(ctx); err != nil {
		return nil, false, err
	}
	v, ok, err := g.src.Next(ctx)
	if ok && g.pulled != nil {
		g.pulled.Add(1)
	}
	return v, ok, err
}

func (g *guardSource) Close() error { return g.src.Close() }

// iterator opens the source and chains every stage sequentially. It does not claim
// the lineage.
func (p *pipeline) iterator(ctx context.Context) (Source[any], error) {
	return p.sequential(ctx, nil)
}

func (p *pipeline) sequential(ctx context.Context, pulled *atomic.Int64) (Source[any], error) {
	if p.err != nil {
		return nil, p.err
	}
	src, err := p.open(ctx)
	if err != nil {
		return nil, err
	}
	return chain(&guardSource{src: src, pulled: pulled}, p.stages), nil
}

// run evaluates p for one terminal operation. body pulls from the element source,
// which is closed when body returns.
func (p *pipeline) run(ctx context.Context, terminal string, body func(ctx context.Context, src Source[any]) error) error {
	ctx, ev := p.observe(ctx, terminal)
	err := p.execute(ctx, ev, body)
	ev.end(err)
	return err
}

func (p *pipeline) execute(ctx context.Context, ev *evaluation, body func(ctx context.Context, src Source[any]) error) (err error) {
	if p.err != nil {
		return p.err
	}
	if err := p.line.claim(); err != nil {
		return err
	}

	var src Source[any]
	if p.parallel > 0 && !p.unbounded {
		src, err = p.parallelSource(ctx, ev)
	} else {
		if p.parallel > 0 {
			ev.log.Debug().Msg("unbounded source, parallel evaluation falls back to sequential")
		}
		src, err = p.sequential(ctx, &ev.pulled)
	}
	if err != nil {
		return err
	}
	defer func() {
		if cerr := src.Close(); err == nil {
			err = cerr
		}
	}()
	return body(ctx, src)
}

// drain pulls from src until it is exhausted or yield returns false.
func drain(ctx context.Context, src Source[any], yield func(v any) bool) error {
	for {
		v, ok, err := src.Next(ctx)
		if err != nil {
			return err
		}
		if !ok || !yield(v) {
			return nil
		}
	}
}
