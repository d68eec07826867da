package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
	"time"
)

// memoryStorage keeps objects in process memory. Used for local runs and tests.
type memoryStorage struct {
	mu      sync.RWMutex
	objects map[string]memoryObject
}

type memoryObject struct {
	data []byte
	info ObjectInfo
}

// NewMemory returns an empty in-memory Storage.
func NewMemory() Storage {
	return &memoryStorage{objects: make(map[string]memoryObject)}
}

func (m *memoryStorage) Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return ObjectInfo{}, err
	}
	info := ObjectInfo{
		Key:          key,
		Size:         int64(len(data)),
		ContentType:  opt.ContentType,
		LastModified: time.Now(),
		Metadata:     opt.Metadata,
	}
	m.mu.Lock()
	m.objects[key] = memoryObject{data: data, info: info}
	m.mu.Unlock()
	return info, nil
}

func (m *memoryStorage) Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error) {
	m.mu.RLock()
	obj, ok := m.objects[key]
	m.mu.RUnlock()
	if !ok {
		return nil, ObjectInfo{}, ErrNotExist
	}
	return io.NopCloser(bytes.NewReader(obj.data)), obj.info, nil
}

func (m *memoryStorage) Stat(ctx context.Context, key string) (ObjectInfo, error) {
	m.mu.RLock()
	obj, ok := m.objects[key]
	m.mu.RUnlock()
	if !ok {
		return ObjectInfo{}, ErrNotExist
	}
	return obj.info, nil
}

func (m *memoryStorage) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	delete(m.objects, key)
	m.mu.Unlock()
	return nil
}

func (m *memoryStorage) PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error) {
	return fmt.Sprintf("memory://%s?expires=%d", key, int64(expiry.Seconds())), nil
}
