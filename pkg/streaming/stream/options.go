package stream

import (
	"runtime"
	"sync/atomic"

	"github.com/vnykmshr/seqflow/pkg/common/validation"
)

// Options are the process-wide defaults of parallel evaluation.
type Options struct {
	// Workers is the pool size used by Parallel(0).
	Workers int

	// ChunkSize is the number of source elements per parallel task. Zero splits the
	// source evenly across the workers.
	ChunkSize int
}

// DefaultOptions returns one worker per available CPU and even chunking.
func DefaultOptions() Options {
	return Options{Workers: runtime.GOMAXPROCS(0)}
}

var options atomic.Pointer[Options]

// Configure replaces the parallel evaluation defaults.
func Configure(opts Options) error {
	if err := validation.ValidatePositive("stream", "workers", opts.Workers); err != nil {
		return err
	}
	if err := validation.ValidateNonNegative("stream", "chunk_size", opts.ChunkSize); err != nil {
		return err
	}
	options.Store(&opts)
	return nil
}

func currentOptions() Options {
	if opts := options.Load(); opts != nil {
		return *opts
	}
	return DefaultOptions()
}
