package pipeline

import (
	"context"
	"math/rand"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"realtyapi/internal/imaging"
)

func executors() map[string]Executor {
	return map[string]Executor{
		ExecutorMap:    NewMapExecutor(PoolSize),
		ExecutorSubmit: NewSubmitExecutor(PoolSize),
	}
}

func TestExecutors_PreserveOrderUnderJitter(t *testing.T) {
	for name, exec := range executors() {
		t.Run(name, func(t *testing.T) {
			const n = MaxBatch
			delays := make([]time.Duration, n)
			rng := rand.New(rand.NewSource(7))
			for i := range delays {
				delays[i] = time.Duration(rng.Intn(30)) * time.Millisecond
			}
			// Reverse the natural finishing order: earlier items sleep longest.
			delays[0] = 60 * time.Millisecond

			var inFlight, peak int32
			results, err := exec.Run(context.Background(), n, func(ctx context.Context, i int) imaging.Result {
				cur := atomic.AddInt32(&inFlight, 1)
				for {
					p := atomic.LoadInt32(&peak)
					if cur <= p || atomic.CompareAndSwapInt32(&peak, p, cur) {
						break
					}
				}
				time.Sleep(delays[i])
				atomic.AddInt32(&inFlight, -1)
				return imaging.Result{Data: []byte{byte(i)}, Width: i}
			})

			require.NoError(t, err)
			require.Len(t, results, n)
			for i, r := range results {
				assert.Equal(t, []byte{byte(i)}, r.Data)
			}
			assert.LessOrEqual(t, atomic.LoadInt32(&peak), int32(PoolSize))
			assert.Equal(t, int32(0), atomic.LoadInt32(&inFlight), "workers must be done when Run returns")
		})
	}
}

func TestExecutors_ZeroItems(t *testing.T) {
	for name, exec := range executors() {
		t.Run(name, func(t *testing.T) {
			results, err := exec.Run(context.Background(), 0, func(ctx context.Context, i int) imaging.Result {
				t.Fatal("task must not run")
				return imaging.Result{}
			})
			assert.NoError(t, err)
			assert.Empty(t, results)
		})
	}
}

func TestExecutors_CancelledContext(t *testing.T) {
	for name, exec := range executors() {
		t.Run(name, func(t *testing.T) {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			results, err := exec.Run(ctx, 3, func(ctx context.Context, i int) imaging.Result {
				return imaging.Result{Data: []byte{1}}
			})
			assert.ErrorIs(t, err, context.Canceled)
			assert.Nil(t, results)
		})
	}
}

func TestExecutors_InvalidPool(t *testing.T) {
	for _, exec := range []Executor{NewMapExecutor(0), NewSubmitExecutor(0)} {
		_, err := exec.Run(context.Background(), 1, func(ctx context.Context, i int) imaging.Result {
			return imaging.Result{}
		})
		assert.ErrorIs(t, err, ErrPoolUnavailable)
	}
}

func TestNewExecutor(t *testing.T) {
	e, err := NewExecutor("")
	require.NoError(t, err)
	assert.IsType(t, &MapExecutor{}, e)

	e, err = NewExecutor(ExecutorSubmit)
	require.NoError(t, err)
	assert.IsType(t, &SubmitExecutor{}, e)

	_, err = NewExecutor("threads")
	assert.Error(t, err)
}
