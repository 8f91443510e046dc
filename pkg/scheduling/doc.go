/*
Package scheduling provides the task execution primitives behind parallel
pipeline evaluation.

  - workerpool: Fixed worker pool and the ForkJoin helper

Worker Pool:

The worker pool provides controlled concurrent execution:

	pool, err := workerpool.New(4, 100) // 4 workers, queue size 100
	if err != nil {
		return err
	}
	defer func() { <-pool.Shutdown() }()

	task := workerpool.TaskFunc(func(ctx context.Context) error {
		// Do work
		return nil
	})

	pool.Submit(task)
	result := <-pool.Results()

Fork/Join:

ForkJoin runs a batch of tasks on a short-lived pool and returns their results
in submission order. Parallel streams use it to evaluate one chunk per task:

	results, err := workerpool.ForkJoin(ctx, workerpool.Config{WorkerCount: 4}, tasks)

Cron schedules are not run here; they are infinite sources in
pkg/streaming/source.
*/
package scheduling
