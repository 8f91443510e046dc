/*
Package workerpool provides the fixed-size worker pool behind parallel stream
evaluation.

A Pool owns a bounded task queue and a fixed number of workers. Shutdown stops
intake, lets queued tasks finish and closes the Results channel:

	pool, err := workerpool.New(4, 16)
	if err != nil {
		return err
	}

	_ = pool.Submit(workerpool.TaskFunc(func(ctx context.Context) error {
		return nil
	}))
	done := pool.Shutdown()

	for r := range pool.Results() {
		if r.Error != nil {
			log.Printf("task %d failed: %v", r.Index, r.Error)
		}
	}
	<-done

ForkJoin wraps that lifecycle for a batch of tasks: it creates a pool sized to the
batch, submits every task, waits, and returns results in submission order. A
failing task cancels the context of the rest. Parallel streams use it once per
terminal operation, so no pool outlives the call that created it.

Panics inside a task are recovered and reported as errors matching
ErrTaskPanicked.
*/
package workerpool
