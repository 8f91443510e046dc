package workerpool

import (
	"context"
	"errors"
	"sort"
)

// ForkJoin runs tasks on a pool that lives only for this call and waits for all of
// them. Results are returned in submission order. The first task error cancels the
// context seen by tasks that have not finished; the returned error joins every task
// error in submission order.
func ForkJoin(ctx context.Context, config Config, tasks []Task) ([]Result, error) {
	if len(tasks) == 0 {
		return nil, nil
	}
	if config.WorkerCount > len(tasks) {
		config.WorkerCount = len(tasks)
	}
	config.QueueSize = len(tasks)

	pool, err := NewWithConfig(config)
	if err != nil {
		return nil, err
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	submitted := 0
	var submitErr error
	for _, task := range tasks {
		task := task
		wrapped := TaskFunc(func(ctx context.Context) error {
			taskCtx, stop := context.WithCancel(ctx)
			defer stop()
			unregister := context.AfterFunc(runCtx, stop)
			defer unregister()

			if err := task.Execute(taskCtx); err != nil {
				cancel()
				return err
			}
			return nil
		})
		if submitErr = pool.SubmitWithContext(ctx, wrapped); submitErr != nil {
			break
		}
		submitted++
	}
	done := pool.Shutdown()

	results := make([]Result, 0, submitted)
	for r := range pool.Results() {
		results = append(results, r)
	}
	<-done

	sort.Slice(results, func(i, j int) bool { return results[i].Index < results[j].Index })

	var errs []error
	if submitErr != nil {
		errs = append(errs, submitErr)
	}
	for _, r := range results {
		if r.Error != nil {
			errs = append(errs, r.Error)
		}
	}
	return results, errors.Join(errs...)
}
