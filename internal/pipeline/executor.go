package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"realtyapi/internal/imaging"
)

const (
	// PoolSize is the number of workers transforming one batch.
	PoolSize = 4
	// MaxBatch is the largest number of uploads accepted per listing.
	MaxBatch = 6

	ExecutorMap    = "map"
	ExecutorSubmit = "submit"
)

var ErrPoolUnavailable = errors.New("worker pool unavailable")

// Task transforms the i-th item of a batch.
type Task func(ctx context.Context, i int) imaging.Result

// Executor runs n tasks on a single pool of workers created for the call and torn down
// before Run returns. Results are indexed by task, not by completion order.
type Executor interface {
	Run(ctx context.Context, n int, task Task) ([]imaging.Result, error)
}

// NewExecutor returns the strategy named by kind with PoolSize workers.
func NewExecutor(kind string) (Executor, error) {
	switch kind {
	case "", ExecutorMap:
		return NewMapExecutor(PoolSize), nil
	case ExecutorSubmit:
		return NewSubmitExecutor(PoolSize), nil
	default:
		return nil, fmt.Errorf("unknown image executor %q", kind)
	}
}

// MapExecutor maps the task over the batch with an errgroup capped at its worker count.
type MapExecutor struct {
	workers int
}

func NewMapExecutor(workers int) *MapExecutor {
	return &MapExecutor{workers: workers}
}

func (e *MapExecutor) Run(ctx context.Context, n int, task Task) ([]imaging.Result, error) {
	if e.workers < 1 {
		return nil, fmt.Errorf("%w: %d workers", ErrPoolUnavailable, e.workers)
	}

	results := make([]imaging.Result, n)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = task(gctx, i)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// SubmitExecutor starts a fixed set of worker goroutines, submits one job per item and
// collects every job's future in submission order.
type SubmitExecutor struct {
	workers int
}

func NewSubmitExecutor(workers int) *SubmitExecutor {
	return &SubmitExecutor{workers: workers}
}

type job struct {
	index  int
	result chan imaging.Result
}

func (e *SubmitExecutor) Run(ctx context.Context, n int, task Task) ([]imaging.Result, error) {
	if e.workers < 1 {
		return nil, fmt.Errorf("%w: %d workers", ErrPoolUnavailable, e.workers)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	jobs := make(chan job)
	var wg sync.WaitGroup
	for w := 0; w < e.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				j.result <- task(ctx, j.index)
			}
		}()
	}
	defer wg.Wait()

	futures := make([]chan imaging.Result, n)
	func() {
		defer close(jobs)
		for i := 0; i < n; i++ {
			f := make(chan imaging.Result, 1)
			select {
			case jobs <- job{index: i, result: f}:
				futures[i] = f
			case <-ctx.Done():
				return
			}
		}
	}()

	results := make([]imaging.Result, n)
	for i, f := range futures {
		if f == nil {
			return nil, ctx.Err()
		}
		select {
		case r := <-f:
			results[i] = r
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
