package benchmark

import (
	"context"
	"fmt"
	"testing"

	"github.com/vnykmshr/seqflow/pkg/scheduling/workerpool"
)

// BenchmarkWorkerPoolSubmit measures task submission to a long-lived pool.
func BenchmarkWorkerPoolSubmit(b *testing.B) {
	for _, workers := range []int{1, 4, 8} {
		b.Run(workerLabel(workers), func(b *testing.B) {
			pool, err := workerpool.New(workers, 1000)
			if err != nil {
				b.Fatal(err)
			}
			defer func() { <-pool.Shutdown() }()

			go func() {
				for range pool.Results() {
				}
			}()

			task := workerpool.TaskFunc(func(_ context.Context) error { return nil })

			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if err := pool.Submit(task); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// BenchmarkForkJoin measures the per-terminal pool used by parallel streams.
func BenchmarkForkJoin(b *testing.B) {
	for _, tasks := range []int{4, 16, 64} {
		b.Run(fmt.Sprintf("%dtasks", tasks), func(b *testing.B) {
			batch := make([]workerpool.Task, tasks)
			for i := range batch {
				batch[i] = workerpool.TaskFunc(func(_ context.Context) error {
					sum := 0
					for j := 0; j < 1000; j++ {
						sum += j
					}
					_ = sum
					return nil
				})
			}

			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if _, err := workerpool.ForkJoin(context.Background(), workerpool.Config{WorkerCount: 4}, batch); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
