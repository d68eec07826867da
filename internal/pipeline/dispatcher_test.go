package pipeline

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"realtyapi/internal/imaging"
	"realtyapi/internal/logger"
	fixtures "realtyapi/internal/testutil"
)

func filenames(b *Batch) []string {
	out := make([]string, 0, len(b.Artifacts))
	for _, a := range b.Artifacts {
		out = append(out, a.Filename)
	}
	return out
}

func TestDispatcher_FiltersFailuresKeepingOrder(t *testing.T) {
	for name, exec := range executors() {
		t.Run(name, func(t *testing.T) {
			d := NewDispatcher(exec, time.Second, nil, nil)
			// Fail odd-indexed items; make early items finish last.
			d.transform = func(data []byte) imaging.Result {
				i := int(data[0])
				time.Sleep(time.Duration(MaxBatch-i) * 5 * time.Millisecond)
				if i%2 == 1 {
					return imaging.Failed(errors.New("bad image"))
				}
				return imaging.Result{Data: data}
			}

			uploads := make([]Upload, MaxBatch)
			for i := range uploads {
				uploads[i] = Upload{Filename: "", Data: []byte{byte(i)}}
			}

			batch, err := d.Process(context.Background(), 9, uploads)

			require.NoError(t, err)
			assert.Equal(t, []string{"image_0.jpg", "image_2.jpg", "image_4.jpg"}, filenames(batch))
			for _, a := range batch.Artifacts {
				assert.Equal(t, []byte{byte(a.Index)}, a.Data)
			}
			require.Len(t, batch.Dropped, 3)
			assert.Equal(t, 1, batch.Dropped[0].Index)
			assert.Equal(t, "image_1.jpg", batch.Dropped[0].Filename)
			assert.Equal(t, "bad image", batch.Dropped[0].Reason)
		})
	}
}

func TestDispatcher_MalformedAmongValid(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	d := NewDispatcher(NewMapExecutor(PoolSize), 5*time.Second, nil, zap.New(core))

	uploads := []Upload{
		{Filename: "a.jpg", Data: fixtures.JPEG(t, 120, 80)},
		{Filename: "junk.jpg", Data: fixtures.Garbage(1024)},
		{Filename: "c.png", Data: fixtures.TransparentPNG(t, 40, 40)},
	}

	ctx := logger.WithRequestID(context.Background(), "req-42")
	batch, err := d.Process(ctx, 1, uploads)

	require.NoError(t, err)
	assert.Equal(t, []string{"a.jpg", "c.png"}, filenames(batch))
	assert.Equal(t, 0, batch.Artifacts[0].Index)
	assert.Equal(t, 2, batch.Artifacts[1].Index)
	require.Len(t, batch.Dropped, 1)
	assert.Equal(t, "junk.jpg", batch.Dropped[0].Filename)

	warn := logs.FilterMessage("listing image dropped").All()
	require.Len(t, warn, 1)
	assert.Equal(t, "junk.jpg", warn[0].ContextMap()["filename"])
	assert.Equal(t, "req-42", warn[0].ContextMap()["request_id"])
}

func TestDispatcher_RejectsOversizedBatch(t *testing.T) {
	d := NewDispatcher(NewMapExecutor(PoolSize), 0, nil, nil)
	_, err := d.Process(context.Background(), 1, make([]Upload, MaxBatch+1))
	assert.ErrorIs(t, err, ErrBatchTooLarge)
}

func TestDispatcher_EmptyBatch(t *testing.T) {
	d := NewDispatcher(NewMapExecutor(PoolSize), 0, nil, nil)
	batch, err := d.Process(context.Background(), 1, nil)
	require.NoError(t, err)
	assert.Empty(t, batch.Artifacts)
	assert.Empty(t, batch.Dropped)
}

func TestDispatcher_TaskTimeoutDropsOnlyTheSlowImage(t *testing.T) {
	d := NewDispatcher(NewSubmitExecutor(PoolSize), 50*time.Millisecond, nil, nil)
	d.transform = func(data []byte) imaging.Result {
		if data[0] == 1 {
			time.Sleep(300 * time.Millisecond)
		}
		return imaging.Result{Data: data}
	}

	batch, err := d.Process(context.Background(), 1, []Upload{
		{Filename: "fast.jpg", Data: []byte{0}},
		{Filename: "slow.jpg", Data: []byte{1}},
		{Filename: "fast2.jpg", Data: []byte{2}},
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"fast.jpg", "fast2.jpg"}, filenames(batch))
	require.Len(t, batch.Dropped, 1)
	assert.Contains(t, batch.Dropped[0].Reason, ErrTaskTimeout.Error())
}

func TestDispatcher_TimedOutTransformsStayWithinPool(t *testing.T) {
	for name, exec := range executors() {
		t.Run(name, func(t *testing.T) {
			var inFlight, peak int32
			d := NewDispatcher(exec, 20*time.Millisecond, nil, nil)
			d.transform = func(data []byte) imaging.Result {
				cur := atomic.AddInt32(&inFlight, 1)
				for {
					p := atomic.LoadInt32(&peak)
					if cur <= p || atomic.CompareAndSwapInt32(&peak, p, cur) {
						break
					}
				}
				time.Sleep(100 * time.Millisecond)
				atomic.AddInt32(&inFlight, -1)
				return imaging.Result{Data: data}
			}

			uploads := make([]Upload, MaxBatch)
			for i := range uploads {
				uploads[i] = Upload{Data: []byte{byte(i)}}
			}

			batch, err := d.Process(context.Background(), 1, uploads)

			require.NoError(t, err)
			assert.Empty(t, batch.Artifacts)
			assert.Len(t, batch.Dropped, MaxBatch)
			assert.LessOrEqual(t, atomic.LoadInt32(&peak), int32(PoolSize))
			assert.Equal(t, int32(0), atomic.LoadInt32(&inFlight), "no transform may outlive Process")
		})
	}
}

func TestDispatcher_SystemicFailure(t *testing.T) {
	d := NewDispatcher(NewMapExecutor(0), 0, nil, nil)
	batch, err := d.Process(context.Background(), 1, []Upload{{Data: []byte{1}}})
	assert.ErrorIs(t, err, ErrPoolUnavailable)
	assert.Nil(t, batch)
}

func TestDispatcher_Metrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewMetrics(reg)
	require.NoError(t, err)

	d := NewDispatcher(NewMapExecutor(PoolSize), 0, m, nil)
	d.transform = func(data []byte) imaging.Result {
		if data[0] == 0 {
			return imaging.Failed(errors.New("nope"))
		}
		return imaging.Result{Data: data}
	}

	_, err = d.Process(context.Background(), 1, []Upload{{Data: []byte{0}}, {Data: []byte{1}}, {Data: []byte{2}}})
	require.NoError(t, err)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.processed.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.processed.WithLabelValues("dropped")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.duration))

	_, err = NewMetrics(reg)
	assert.Error(t, err, "registering twice on one registry must fail")
}

func TestArtifactName(t *testing.T) {
	tests := []struct {
		original string
		index    int
		want     string
	}{
		{"front.jpg", 0, "front.jpg"},
		{"", 3, "image_3.jpg"},
		{"   ", 2, "image_2.jpg"},
		{"../../etc/passwd", 1, "passwd"},
		{`C:\photos\porch.png`, 4, "porch.png"},
		{"/", 5, "image_5.jpg"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ArtifactName(tt.original, tt.index), tt.original)
	}
}
