package stream

import (
	"context"

	"github.com/google/btree"
)

type stageKind int

const (
	stageFilter stageKind = iota
	stageMap
	stageFlatMap
	stageSorted
	stageDistinct
	stageLimit
	stageSkip
	stagePeek
)

var stageNames = [...]string{
	stageFilter:   "filter",
	stageMap:      "map",
	stageFlatMap:  "flatMap",
	stageSorted:   "sorted",
	stageDistinct: "distinct",
	stageLimit:    "limit",
	stageSkip:     "skip",
	stagePeek:     "peek",
}

func (k stageKind) String() string {
	if int(k) < len(stageNames) {
		return stageNames[k]
	}
	return "unknown"
}

// stage is one deferred step. Only the fields of its kind are set.
type stage struct {
	kind      stageKind
	predicate func(any) bool
	mapper    func(any) any
	expand    func(ctx context.Context, v any) (Source[any], error)
	compare   func(a, b any) int
	key       func(any) (any, error)
	action    func(any)
	n         int64

	// err is a construction failure reported by every terminal.
	err error
}

// stateless reports whether the stage handles each element independently of the
// others, which lets it run per chunk in parallel mode.
func (st stage) stateless() bool {
	switch st.kind {
	case stageFilter, stageMap, stageFlatMap, stagePeek:
		return true
	default:
		return false
	}
}

// chain wraps src with one iterator per stage.
func chain(src Source[any], stages []stage) Source[any] {
	for _, st := range stages {
		switch st.kind {
		case stageFilter:
			src = &filterIter{upstream: src, predicate: st.predicate}
		case stageMap:
			src = &mapIter{upstream: src, mapper: st.mapper}
		case stageFlatMap:
			src = &flatMapIter{upstream: src, expand: st.expand}
		case stageSorted:
			src = &sortedIter{upstream: src, compare: st.compare}
		case stageDistinct:
			src = &distinctIter{upstream: src, key: st.key, seen: make(map[any]struct{})}
		case stageLimit:
			src = &limitIter{upstream: src, remaining: st.n}
		case stageSkip:
			src = &skipIter{upstream: src, n: st.n}
		case stagePeek:
			src = &peekIter{upstream: src, action: st.action}
		}
	}
	return src
}

type filterIter struct {
	upstream  Source[any]
	predicate func(any) bool
}

func (it *filterIter) Next(ctx context.Context) (any, bool, error) {
	for {
		v, ok, err := it.upstream.Next(ctx)
		if err != nil || !ok {
			return nil, false, err
		}
		if it.predicate(v) {
			return v, true, nil
		}
	}
}

func (it *filterIter) Close() error { return it.upstream.Close() }

type mapIter struct {
	upstream Source[any]
	mapper   func(any) any
}

func (it *mapIter) Next(ctx context.Context) (any, bool, error) {
	v, ok, err := it.upstream.Next(ctx)
	if err != nil || !ok {
		return nil, false, err
	}
	return it.mapper(v), true, nil
}

func (it *mapIter) Close() error { return it.upstream.Close() }

type peekIter struct {
	upstream Source[any]
	action   func(any)
}

func (it *peekIter) Next(ctx context.Context) (any, bool, error) {
	v, ok, err := it.upstream.Next(ctx)
	if err != nil || !ok {
		return nil, false, err
	}
	it.action(v)
	return v, true, nil
}

func (it *peekIter) Close() error { return it.upstream.Close() }

type flatMapIter struct {
	upstream Source[any]
	expand   func(ctx context.Context, v any) (Source[any], error)
	current  Source[any]
}

func (it *flatMapIter) Next(ctx context.Context) (any, bool, error) {
	for {
		if it.current != nil {
			v, ok, err := it.current.Next(ctx)
			if err != nil {
				return nil, false, err
			}
			if ok {
				return v, true, nil
			}
			err = it.current.Close()
			it.current = nil
			if err != nil {
				return nil, false, err
			}
		}

		v, ok, err := it.upstream.Next(ctx)
		if err != nil || !ok {
			return nil, false, err
		}
		inner, err := it.expand(ctx, v)
		if err != nil {
			return nil, false, err
		}
		it.current = inner
	}
}

func (it *flatMapIter) Close() error {
	var err error
	if it.current != nil {
		err = it.current.Close()
		it.current = nil
	}
	if uerr := it.upstream.Close(); err == nil {
		err = uerr
	}
	return err
}

// sortedItem orders equal elements by encounter sequence so the sort is stable.
type sortedItem struct {
	value any
	seq   int64
}

type sortedIter struct {
	upstream Source[any]
	compare  func(a, b any) int
	tree     *btree.BTreeG[sortedItem]
}

func (it *sortedIter) fill(ctx context.Context) (err error) {
	defer recoverOrder(&err)
	it.tree = btree.NewG(32, func(a, b sortedItem) bool {
		if c := it.compare(a.value, b.value); c != 0 {
			return c < 0
		}
		return a.seq < b.seq
	})
	var seq int64
	for {
		v, ok, nerr := it.upstream.Next(ctx)
		if nerr != nil {
			return nerr
		}
		if !ok {
			return nil
		}
		it.tree.ReplaceOrInsert(sortedItem{value: v, seq: seq})
		seq++
	}
}

func (it *sortedIter) Next(ctx context.Context) (any, bool, error) {
	if it.tree == nil {
		if err := it.fill(ctx); err != nil {
			return nil, false, err
		}
	}
	item, ok := it.tree.DeleteMin()
	if !ok {
		return nil, false, nil
	}
	return item.value, true, nil
}

func (it *sortedIter) Close() error { return it.upstream.Close() }

type distinctIter struct {
	upstream Source[any]
	key      func(any) (any, error)
	seen     map[any]struct{}
}

func (it *distinctIter) Next(ctx context.Context) (any, bool, error) {
	for {
		v, ok, err := it.upstream.Next(ctx)
		if err != nil || !ok {
			return nil, false, err
		}
		k, err := it.key(v)
		if err != nil {
			return nil, false, err
		}
		if _, dup := it.seen[k]; dup {
			continue
		}
		it.seen[k] = struct{}{}
		return v, true, nil
	}
}

func (it *distinctIter) Close() error { return it.upstream.Close() }

type limitIter struct {
	upstream  Source[any]
	remaining int64
}

func (it *limitIter) Next(ctx context.Context) (any, bool, error) {
	if it.remaining <= 0 {
		return nil, false, nil
	}
	v, ok, err := it.upstream.Next(ctx)
	if err != nil || !ok {
		return nil, false, err
	}
	it.remaining--
	return v, true, nil
}

func (it *limitIter) Close() error { return it.upstream.Close() }

type skipIter struct {
	upstream Source[any]
	n        int64
}

func (it *skipIter) Next(ctx context.Context) (any, bool, error) {
	for it.n > 0 {
		_, ok, err := it.upstream.Next(ctx)
		if err != nil || !ok {
			return nil, false, err
		}
		it.n--
	}
	return it.upstream.Next(ctx)
}

func (it *skipIter) Close() error { return it.upstream.Close() }
