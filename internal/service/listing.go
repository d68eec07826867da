package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"realtyapi/internal/logger"
	"realtyapi/internal/model"
	"realtyapi/internal/pipeline"
	"realtyapi/internal/repository"
)

// ImageDispatcher turns raw uploads into processed artifacts.
type ImageDispatcher interface {
	Process(ctx context.Context, listingID int64, uploads []pipeline.Upload) (*pipeline.Batch, error)
}

// ListingResult is returned when a listing is created together with its photos.
type ListingResult struct {
	Listing *model.Listing        `json:"listing"`
	Images  []model.PropertyImage `json:"images"`
	Dropped []pipeline.Dropped    `json:"dropped,omitempty"`
}

// ListingService defines the use cases for listings.
type ListingService interface {
	// Create stores the listing for its realtor, then processes and stores up to pipeline.MaxBatch uploads.
	// When images fail the listing is kept: the result is returned together with an error
	// wrapping ErrImageIngestion.
	Create(ctx context.Context, l *model.Listing, uploads []pipeline.Upload) (*ListingResult, error)

	// Get returns a single listing by its ID.
	Get(ctx context.Context, id int64) (*model.Listing, error)

	// Images returns the gallery of a listing.
	Images(ctx context.Context, id int64) ([]model.PropertyImage, error)

	// List returns published listings, newest first.
	List(ctx context.Context, f model.ListingFilter) ([]model.Listing, error)
}

type listingService struct {
	repo       repository.ListingRepository
	images     ImageService
	dispatcher ImageDispatcher
	log        *zap.Logger
}

// NewListingService constructs a new ListingService.
func NewListingService(repo repository.ListingRepository, images ImageService, dispatcher ImageDispatcher, log *zap.Logger) ListingService {
	if log == nil {
		log = zap.NewNop()
	}
	return &listingService{repo: repo, images: images, dispatcher: dispatcher, log: log}
}

func (s *listingService) Create(ctx context.Context, l *model.Listing, uploads []pipeline.Upload) (*ListingResult, error) {
	if l == nil {
		return nil, ErrListingNil
	}
	l.Title = strings.TrimSpace(l.Title)
	if l.Title == "" {
		return nil, ErrTitleRequired
	}
	if l.RealtorID <= 0 {
		return nil, ErrRealtorRequired
	}

	stored, err := s.repo.Create(ctx, l)
	if err != nil {
		if errors.Is(err, repository.ErrUnknownRealtor) {
			return nil, ErrRealtorNotFound
		}
		return nil, fmt.Errorf("save listing: %w", err)
	}
	res := &ListingResult{Listing: stored, Images: []model.PropertyImage{}}
	if len(uploads) == 0 {
		return res, nil
	}

	if len(uploads) > pipeline.MaxBatch {
		logger.FromContext(ctx, s.log).Warn("extra listing uploads ignored",
			zap.Int64("listing_id", stored.ID),
			zap.Int("received", len(uploads)),
			zap.Int("kept", pipeline.MaxBatch))
		uploads = uploads[:pipeline.MaxBatch]
	}

	batch, err := s.dispatcher.Process(ctx, stored.ID, uploads)
	if err != nil {
		return res, fmt.Errorf("%w: %w", ErrImageIngestion, err)
	}
	res.Dropped = batch.Dropped

	imgs, err := s.images.Persist(ctx, stored.ID, batch.Artifacts)
	if err != nil {
		return res, fmt.Errorf("%w: %w", ErrImageIngestion, err)
	}
	res.Images = imgs
	return res, nil
}

func (s *listingService) Get(ctx context.Context, id int64) (*model.Listing, error) {
	if id <= 0 {
		return nil, ErrIDRequired
	}
	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return l, nil
}

func (s *listingService) Images(ctx context.Context, id int64) ([]model.PropertyImage, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	return s.images.List(ctx, id)
}

func (s *listingService) List(ctx context.Context, f model.ListingFilter) ([]model.Listing, error) {
	f.Keyword = strings.TrimSpace(f.Keyword)
	f.City = strings.TrimSpace(f.City)
	return s.repo.ListPublished(ctx, f)
}
