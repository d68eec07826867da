package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"realtyapi/internal/imaging"
	"realtyapi/internal/model"
	"realtyapi/internal/pipeline"
	"realtyapi/internal/repository"
	"realtyapi/internal/storage"
)

const (
	imagePrefix   = "property_images"
	presignExpiry = 15 * time.Minute
)

// ArtifactKey is the object key of a listing image. Existing clients rely on this layout.
func ArtifactKey(listingID int64, filename string) string {
	return fmt.Sprintf("%s/listing_%d/%s", imagePrefix, listingID, filename)
}

// ImageService stores processed listing images and serves the gallery.
type ImageService interface {
	// Persist stores artifacts in order. The first one becomes the featured image.
	// On failure everything stored by this call is removed again.
	Persist(ctx context.Context, listingID int64, artifacts []pipeline.Artifact) ([]model.PropertyImage, error)

	// List returns a listing's images with short-lived download URLs.
	List(ctx context.Context, listingID int64) ([]model.PropertyImage, error)
}

type imageService struct {
	store storage.Storage
	repo  repository.PropertyImageRepository
	log   *zap.Logger
	now   func() time.Time
}

// NewImageService constructs a new ImageService.
func NewImageService(store storage.Storage, repo repository.PropertyImageRepository, log *zap.Logger) ImageService {
	if log == nil {
		log = zap.NewNop()
	}
	return &imageService{store: store, repo: repo, log: log, now: time.Now}
}

func (s *imageService) Persist(ctx context.Context, listingID int64, artifacts []pipeline.Artifact) ([]model.PropertyImage, error) {
	saved := make([]model.PropertyImage, 0, len(artifacts))
	for pos, a := range artifacts {
		img, err := s.persistOne(ctx, listingID, pos, a)
		if err != nil {
			if rbErr := s.rollback(ctx, saved); rbErr != nil {
				return nil, fmt.Errorf("persist %s: %v; rollback failed: %v", a.Filename, err, rbErr)
			}
			return nil, fmt.Errorf("persist %s: %w", a.Filename, err)
		}
		saved = append(saved, *img)
	}
	return saved, nil
}

func (s *imageService) persistOne(ctx context.Context, listingID int64, pos int, a pipeline.Artifact) (*model.PropertyImage, error) {
	key, err := storage.AvailableKey(ctx, s.store, ArtifactKey(listingID, a.Filename))
	if err != nil {
		return nil, fmt.Errorf("resolve key: %w", err)
	}

	size := int64(len(a.Data))
	if _, err := s.store.Put(ctx, key, bytes.NewReader(a.Data), storage.PutObjectOptions{
		Size:        size,
		ContentType: imaging.ContentType,
		Metadata: map[string]string{
			"listing-id":     strconv.FormatInt(listingID, 10),
			"original-index": strconv.Itoa(a.Index),
		},
	}); err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	rec := &model.PropertyImage{
		ID:          uuid.New().String(),
		ListingID:   listingID,
		Filename:    path.Base(key),
		StoragePath: key,
		Size:        size,
		ContentType: imaging.ContentType,
		Featured:    pos == 0,
		SortOrder:   pos,
		CreatedAt:   s.now().UTC(),
	}
	stored, err := s.repo.Create(ctx, rec)
	if err != nil {
		// Rollback: delete the object from storage
		if delErr := s.store.Delete(context.WithoutCancel(ctx), key); delErr != nil {
			return nil, fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("db save failed: %w", err)
	}
	return stored, nil
}

// rollback removes rows and objects already written for the batch.
func (s *imageService) rollback(ctx context.Context, saved []model.PropertyImage) error {
	ctx = context.WithoutCancel(ctx)
	var errs []error
	for _, img := range saved {
		if err := s.repo.Delete(ctx, img.ID); err != nil {
			errs = append(errs, fmt.Errorf("delete row %s: %w", img.ID, err))
		}
		if err := s.store.Delete(ctx, img.StoragePath); err != nil {
			errs = append(errs, fmt.Errorf("delete object %s: %w", img.StoragePath, err))
		}
	}
	return errors.Join(errs...)
}

func (s *imageService) List(ctx context.Context, listingID int64) ([]model.PropertyImage, error) {
	imgs, err := s.repo.ListByListing(ctx, listingID)
	if err != nil {
		return nil, err
	}
	for i := range imgs {
		url, err := s.store.PresignGet(ctx, imgs[i].StoragePath, presignExpiry)
		if err != nil {
			s.log.Warn("presign listing image",
				zap.Int64("listing_id", listingID),
				zap.String("key", imgs[i].StoragePath),
				zap.Error(err))
			continue
		}
		imgs[i].URL = url
	}
	return imgs, nil
}
