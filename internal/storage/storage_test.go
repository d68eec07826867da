package storage

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"realtyapi/internal/config"
)

func TestMemoryStorage(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	_, err := s.Stat(ctx, "a/b.jpg")
	assert.ErrorIs(t, err, ErrNotExist)

	info, err := s.Put(ctx, "a/b.jpg", strings.NewReader("jpeg"), PutObjectOptions{Size: 4, ContentType: "image/jpeg"})
	require.NoError(t, err)
	assert.Equal(t, int64(4), info.Size)

	rc, got, err := s.Get(ctx, "a/b.jpg")
	require.NoError(t, err)
	body, _ := io.ReadAll(rc)
	assert.Equal(t, "jpeg", string(body))
	assert.Equal(t, "image/jpeg", got.ContentType)

	u, err := s.PresignGet(ctx, "a/b.jpg", time.Minute)
	require.NoError(t, err)
	assert.Contains(t, u, "a/b.jpg")

	require.NoError(t, s.Delete(ctx, "a/b.jpg"))
	_, _, err = s.Get(ctx, "a/b.jpg")
	assert.ErrorIs(t, err, ErrNotExist)
}

func TestAvailableKey(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	key, err := AvailableKey(ctx, s, "property_images/listing_1/front.jpg")
	require.NoError(t, err)
	assert.Equal(t, "property_images/listing_1/front.jpg", key)

	_, err = s.Put(ctx, key, strings.NewReader("x"), PutObjectOptions{Size: 1})
	require.NoError(t, err)

	next, err := AvailableKey(ctx, s, key)
	require.NoError(t, err)
	assert.NotEqual(t, key, next)
	assert.Regexp(t, `^property_images/listing_1/front_[0-9a-f]{7}\.jpg$`, next)
}

type statOnly struct {
	Storage
	mock.Mock
}

func (s *statOnly) Stat(ctx context.Context, key string) (ObjectInfo, error) {
	args := s.Called(ctx, key)
	return ObjectInfo{}, args.Error(0)
}

func TestAvailableKey_StatError(t *testing.T) {
	s := &statOnly{}
	s.On("Stat", mock.Anything, "k.jpg").Return(errors.New("boom"))

	_, err := AvailableKey(context.Background(), s, "k.jpg")
	assert.ErrorContains(t, err, "stat k.jpg: boom")
}

func TestNew_Driver(t *testing.T) {
	s, err := New(config.StorageConfig{Driver: "memory"})
	require.NoError(t, err)
	assert.NotNil(t, s)

	_, err = New(config.StorageConfig{Driver: "ftp"})
	assert.ErrorContains(t, err, "unsupported storage driver")

	_, err = New(config.StorageConfig{Driver: "minio"})
	assert.ErrorContains(t, err, "minio endpoint is required")

	_, err = New(config.StorageConfig{Driver: "s3"})
	assert.ErrorContains(t, err, "s3 bucket is required")
}
