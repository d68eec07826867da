package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"realtyapi/internal/config"
)

// Package storage contains file/object storage abstractions and utilities for object stores (S3-compatible).
// Implementations must avoid using local disk and rely on streaming I/O only.

// ErrNotExist is returned by Stat when no object is stored under the key.
var ErrNotExist = errors.New("object does not exist")

// PutObjectOptions define optional parameters for uploading objects.
// Size should be the exact number of bytes if known; if unknown, set to -1 and the implementation
// will buffer/chunk as supported by the backend.
// ContentType and Metadata are optional.
type PutObjectOptions struct {
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// ObjectInfo contains basic information about an object in storage.
type ObjectInfo struct {
	Key          string
	Size         int64
	ETag         string
	ContentType  string
	LastModified time.Time
	Metadata     map[string]string
}

// Storage is a reusable, S3-compatible object storage client interface.
// Methods use context and streaming readers/writers; no local disk is used.
type Storage interface {
	// Put uploads an object under the given key using the provided reader and options.
	Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error)
	// Get retrieves an object's content as a streaming reader alongside its info.
	Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error)
	// Stat returns object info without content, or ErrNotExist.
	Stat(ctx context.Context, key string) (ObjectInfo, error)
	// Delete removes an object by key.
	Delete(ctx context.Context, key string) error
	// PresignGet returns a time-limited URL that can be used to download the object without credentials.
	PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error)
}

// New builds the backend selected by cfg.Driver.
func New(cfg config.StorageConfig) (Storage, error) {
	switch cfg.Driver {
	case "", "minio":
		return NewMinIO(cfg.MinIO)
	case "s3":
		return NewS3(cfg.S3)
	case "memory":
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unsupported storage driver: %s", cfg.Driver)
	}
}

const maxKeyAttempts = 10

// AvailableKey returns key if nothing is stored there yet, otherwise key with a random
// 7-character suffix inserted before the extension ("a/b.jpg" -> "a/b_x1y2z3w.jpg").
func AvailableKey(ctx context.Context, s Storage, key string) (string, error) {
	ext := path.Ext(key)
	stem := strings.TrimSuffix(key, ext)

	candidate := key
	for i := 0; i < maxKeyAttempts; i++ {
		_, err := s.Stat(ctx, candidate)
		if errors.Is(err, ErrNotExist) {
			return candidate, nil
		}
		if err != nil {
			return "", fmt.Errorf("stat %s: %w", candidate, err)
		}
		candidate = stem + "_" + randomSuffix() + ext
	}
	return "", fmt.Errorf("no available key for %s after %d attempts", key, maxKeyAttempts)
}

func randomSuffix() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:7]
}
