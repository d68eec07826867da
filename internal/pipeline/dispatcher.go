// Package pipeline fans a listing's uploads out to a fixed worker pool and gathers the
// transformed images back in submission order.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"realtyapi/internal/imaging"
	"realtyapi/internal/logger"
)

var (
	ErrBatchTooLarge = errors.New("too many uploads in batch")
	ErrTaskTimeout   = errors.New("image transform timed out")
)

var tracer = otel.Tracer("realtyapi/pipeline")

// Upload is one raw file received with a listing.
type Upload struct {
	Filename string
	Data     []byte
}

// Artifact is a successfully transformed upload. Index is its position in the submitted batch.
type Artifact struct {
	Index    int
	Filename string
	Data     []byte
	Width    int
	Height   int
}

// Dropped describes an upload that could not be transformed.
type Dropped struct {
	Index    int    `json:"index"`
	Filename string `json:"filename"`
	Reason   string `json:"reason"`
}

// Batch is the dispatcher output. Artifacts keep submission order with failures filtered out.
type Batch struct {
	Artifacts []Artifact
	Dropped   []Dropped
}

// Dispatcher transforms upload batches on an Executor.
type Dispatcher struct {
	exec      Executor
	timeout   time.Duration
	metrics   *Metrics
	log       *zap.Logger
	transform func([]byte) imaging.Result
}

// NewDispatcher builds a Dispatcher. A zero timeout disables the per-image deadline.
func NewDispatcher(exec Executor, timeout time.Duration, metrics *Metrics, log *zap.Logger) *Dispatcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Dispatcher{
		exec:      exec,
		timeout:   timeout,
		metrics:   metrics,
		log:       log,
		transform: imaging.Transform,
	}
}

// Process transforms uploads for the listing. Per-image failures end up in Batch.Dropped;
// an error means the batch as a whole could not be processed.
func (d *Dispatcher) Process(ctx context.Context, listingID int64, uploads []Upload) (*Batch, error) {
	if len(uploads) > MaxBatch {
		return nil, fmt.Errorf("%w: %d > %d", ErrBatchTooLarge, len(uploads), MaxBatch)
	}

	ctx, span := tracer.Start(ctx, "pipeline.Process", trace.WithAttributes(
		attribute.Int64("listing.id", listingID),
		attribute.Int("batch.size", len(uploads)),
	))
	defer span.End()

	log := logger.FromContext(ctx, d.log)
	batch := &Batch{}
	if len(uploads) == 0 {
		return batch, nil
	}

	results, err := d.exec.Run(ctx, len(uploads), func(ctx context.Context, i int) imaging.Result {
		start := time.Now()
		res := d.runTask(ctx, uploads[i].Data)
		d.metrics.observe(time.Since(start), res.OK())
		return res
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "dispatch failed")
		return nil, fmt.Errorf("dispatch batch: %w", err)
	}

	for i, res := range results {
		name := ArtifactName(uploads[i].Filename, i)
		if !res.OK() {
			reason := "empty output"
			if res.Err != nil {
				reason = res.Err.Error()
			}
			batch.Dropped = append(batch.Dropped, Dropped{Index: i, Filename: name, Reason: reason})
			log.Warn("listing image dropped",
				zap.Int64("listing_id", listingID),
				zap.Int("index", i),
				zap.String("filename", name),
				zap.String("reason", reason))
			continue
		}
		batch.Artifacts = append(batch.Artifacts, Artifact{
			Index:    i,
			Filename: name,
			Data:     res.Data,
			Width:    res.Width,
			Height:   res.Height,
		})
	}

	span.SetAttributes(
		attribute.Int("batch.processed", len(batch.Artifacts)),
		attribute.Int("batch.dropped", len(batch.Dropped)),
	)
	log.Info("listing image batch processed",
		zap.Int64("listing_id", listingID),
		zap.Int("submitted", len(uploads)),
		zap.Int("processed", len(batch.Artifacts)),
		zap.Int("dropped", len(batch.Dropped)))

	return batch, nil
}

// runTask applies the transform under the per-image deadline. Decoding cannot be
// interrupted, so the transform always finishes on the worker that started it and a
// result that misses the deadline is dropped.
func (d *Dispatcher) runTask(ctx context.Context, data []byte) imaging.Result {
	start := time.Now()
	res := d.transform(data)
	if err := ctx.Err(); err != nil {
		return imaging.Failed(err)
	}
	if d.timeout > 0 {
		if elapsed := time.Since(start); elapsed > d.timeout {
			return imaging.Failed(fmt.Errorf("%w after %s", ErrTaskTimeout, d.timeout))
		}
	}
	return res
}

// ArtifactName keeps the base name of the uploaded file, or synthesizes image_<index>.jpg
// when the upload had none.
func ArtifactName(original string, index int) string {
	name := strings.TrimSpace(strings.ReplaceAll(original, "\\", "/"))
	if name != "" {
		name = path.Base(name)
	}
	if name == "" || name == "." || name == "/" || name == ".." {
		return fmt.Sprintf("image_%d.jpg", index)
	}
	return name
}
