package workerpool

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync/atomic"
	"time"

	sfctx "github.com/vnykmshr/seqflow/pkg/common/context"
)

// worker is a single goroutine draining the task queue.
type worker struct {
	id   int
	pool *workerPool
}

// Submit adds a task to the pool for execution with context.Background().
func (p *workerPool) Submit(task Task) error {
	return p.SubmitWithContext(context.Background(), task)
}

// SubmitWithContext adds a task to the pool for execution with the given context.
func (p *workerPool) SubmitWithContext(ctx context.Context, task Task) error {
	if task == nil {
		return fmt.Errorf("task cannot be nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	// The read lock is held across the send so Shutdown cannot close the queue under us.
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.isShutdown {
		return fmt.Errorf("cannot submit task: %w", ErrPoolShutdown)
	}
	if err := sfctx.Check(ctx); err != nil {
		return fmt.Errorf("cannot submit task: context canceled: %w", err)
	}

	index := int(atomic.AddInt64(&p.totalSubmitted, 1) - 1)

	select {
	case p.taskQueue <- taskWithContext{index: index, task: task, ctx: ctx}:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("cannot submit task: context canceled: %w", ctx.Err())
	}
}

// Results returns a channel of task results.
func (p *workerPool) Results() <-chan Result {
	return p.resultQueue
}

// Shutdown initiates a graceful shutdown of the pool.
func (p *workerPool) Shutdown() <-chan struct{} {
	p.shutdownOnce.Do(func() {
		p.mu.Lock()
		p.isShutdown = true
		close(p.taskQueue)
		p.mu.Unlock()

		go func() {
			p.workerWg.Wait()
			close(p.resultQueue)
			close(p.done)
		}()
	})

	return p.done
}

// Size returns the number of workers in the pool.
func (p *workerPool) Size() int {
	return p.config.WorkerCount
}

// QueueSize returns the current number of queued tasks waiting for execution.
func (p *workerPool) QueueSize() int {
	return len(p.taskQueue)
}

// ActiveWorkers returns the number of workers currently executing tasks.
func (p *workerPool) ActiveWorkers() int {
	return int(atomic.LoadInt64(&p.activeWorkers))
}

// TotalSubmitted returns the total number of tasks submitted to the pool.
func (p *workerPool) TotalSubmitted() int64 {
	return atomic.LoadInt64(&p.totalSubmitted)
}

// TotalCompleted returns the total number of tasks completed by the pool.
func (p *workerPool) TotalCompleted() int64 {
	return atomic.LoadInt64(&p.totalCompleted)
}

// setActive never takes p.mu: a blocked Submit holds the read lock while workers drain.
func (p *workerPool) setActive(delta int64) {
	active := atomic.AddInt64(&p.activeWorkers, delta)
	if delta < 0 {
		atomic.AddInt64(&p.totalCompleted, 1)
	}
	p.observeActive(active)
}

// run is the main loop for a worker. It exits once the queue is closed and drained.
func (w *worker) run() {
	defer w.pool.workerWg.Done()

	for twc := range w.pool.taskQueue {
		w.pool.resultQueue <- w.executeTask(twc)
	}
}

// executeTask executes a single task, converting panics into errors.
func (w *worker) executeTask(twc taskWithContext) (result Result) {
	start := time.Now()
	w.pool.setActive(1)

	defer func() {
		if r := recover(); r != nil {
			result.Error = fmt.Errorf("%w: %v\nStack trace:\n%s", ErrTaskPanicked, r, debug.Stack())
		}
		result.Index = twc.index
		result.WorkerID = w.id
		result.Duration = time.Since(start)
		w.pool.setActive(-1)
		w.pool.observeResult(result)
	}()

	ctx, cancel := sfctx.WithOptionalTimeout(twc.ctx, w.pool.config.TaskTimeout)
	defer cancel()

	result.Error = twc.task.Execute(ctx)
	return result
}
