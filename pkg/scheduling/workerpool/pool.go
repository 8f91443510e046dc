package workerpool

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/vnykmshr/seqflow/pkg/common/validation"
	"github.com/vnykmshr/seqflow/pkg/metrics"
)

// ErrPoolShutdown is returned when submitting to a pool that has been shut down.
var ErrPoolShutdown = errors.New("worker pool has been shut down")

// ErrTaskPanicked wraps a panic recovered from a task.
var ErrTaskPanicked = errors.New("task panicked")

// Task represents a unit of work that can be executed by a worker.
type Task interface {
	// Execute runs the task with the given context.
	// It should respect context cancellation and return any error encountered.
	Execute(ctx context.Context) error
}

// TaskFunc is a function type that implements the Task interface.
type TaskFunc func(ctx context.Context) error

// Execute implements the Task interface for TaskFunc.
func (f TaskFunc) Execute(ctx context.Context) error {
	return f(ctx)
}

// Result represents the result of a task execution.
type Result struct {
	// Index is the submission order of the task, starting at 0.
	Index int

	// Error is any error that occurred during task execution
	Error error

	// Duration is how long the task took to execute
	Duration time.Duration

	// WorkerID identifies which worker executed the task
	WorkerID int
}

// Pool executes submitted tasks on a fixed set of workers.
type Pool interface {
	// Submit queues a task, blocking while the queue is full.
	Submit(task Task) error

	// SubmitWithContext queues a task; ctx bounds the wait for a queue slot and is
	// passed to the task's Execute method.
	SubmitWithContext(ctx context.Context, task Task) error

	// Results returns the result channel. It is closed once Shutdown completes.
	// Callers must drain it; workers block on delivery.
	Results() <-chan Result

	// Shutdown stops accepting tasks, lets queued tasks finish and returns a channel
	// closed when every worker has exited.
	Shutdown() <-chan struct{}

	// Size returns the number of workers in the pool.
	Size() int

	// QueueSize returns the current number of queued tasks waiting for execution.
	QueueSize() int

	// ActiveWorkers returns the number of workers currently executing tasks.
	ActiveWorkers() int

	// TotalSubmitted returns the total number of tasks submitted to the pool.
	TotalSubmitted() int64

	// TotalCompleted returns the total number of tasks completed by the pool.
	TotalCompleted() int64
}

// Config holds configuration options for creating a worker pool.
type Config struct {
	// WorkerCount is the number of workers in the pool. Must be greater than 0.
	WorkerCount int

	// QueueSize is the capacity of the task queue. Zero means submissions hand off
	// directly to an idle worker.
	QueueSize int

	// TaskTimeout bounds each task execution. Zero means no timeout.
	TaskTimeout time.Duration

	// Name labels the pool's metrics.
	Name string

	// Metrics receives pool gauges and counters when non-nil.
	Metrics *metrics.Registry
}

type taskWithContext struct {
	index int
	task  Task
	ctx   context.Context
}

// workerPool implements the Pool interface.
type workerPool struct {
	config Config

	taskQueue    chan taskWithContext
	resultQueue  chan Result
	done         chan struct{}
	shutdownOnce sync.Once

	mu             sync.RWMutex
	isShutdown     bool
	activeWorkers  int64
	totalSubmitted int64
	totalCompleted int64

	workerWg sync.WaitGroup
}

// New creates a worker pool with the given number of workers and queue capacity.
func New(workerCount, queueSize int) (Pool, error) {
	return NewWithConfig(Config{
		WorkerCount: workerCount,
		QueueSize:   queueSize,
	})
}

// NewWithConfig creates a worker pool from config.
func NewWithConfig(config Config) (Pool, error) {
	if err := validation.ValidatePositive("workerpool", "WorkerCount", config.WorkerCount); err != nil {
		return nil, err
	}
	if err := validation.ValidateNonNegative("workerpool", "QueueSize", config.QueueSize); err != nil {
		return nil, err
	}
	if config.Name == "" {
		config.Name = "default"
	}

	resultSize := config.QueueSize
	if resultSize < config.WorkerCount {
		resultSize = config.WorkerCount
	}

	pool := &workerPool{
		config:      config,
		taskQueue:   make(chan taskWithContext, config.QueueSize),
		resultQueue: make(chan Result, resultSize),
		done:        make(chan struct{}),
	}

	for i := 0; i < config.WorkerCount; i++ {
		w := worker{id: i, pool: pool}
		pool.workerWg.Add(1)
		go w.run()
	}

	return pool, nil
}
