package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"realtyapi/internal/model"
	"realtyapi/internal/repository"
)

// RealtorService manages realtors and the listings they own.
type RealtorService interface {
	// Create registers a realtor. Name is required.
	Create(ctx context.Context, r *model.Realtor) (*model.Realtor, error)

	// Get returns a realtor by ID.
	Get(ctx context.Context, id int64) (*model.Realtor, error)

	// Listings returns every listing of the realtor, unpublished ones included, newest first.
	Listings(ctx context.Context, id int64) ([]model.Listing, error)
}

type realtorService struct {
	realtors repository.RealtorRepository
	listings repository.ListingRepository
}

// NewRealtorService constructs a new RealtorService.
func NewRealtorService(realtors repository.RealtorRepository, listings repository.ListingRepository) RealtorService {
	return &realtorService{realtors: realtors, listings: listings}
}

func (s *realtorService) Create(ctx context.Context, r *model.Realtor) (*model.Realtor, error) {
	if r == nil {
		return nil, fmt.Errorf("%w: body is required", ErrInvalidRealtor)
	}
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	r.Phone = strings.TrimSpace(r.Phone)
	if r.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidRealtor)
	}

	stored, err := s.realtors.Create(ctx, r)
	if err != nil {
		return nil, fmt.Errorf("save realtor: %w", err)
	}
	return stored, nil
}

func (s *realtorService) Get(ctx context.Context, id int64) (*model.Realtor, error) {
	if id <= 0 {
		return nil, ErrIDRequired
	}
	r, err := s.realtors.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRealtorNotFound
		}
		return nil, err
	}
	return r, nil
}

func (s *realtorService) Listings(ctx context.Context, id int64) ([]model.Listing, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	return s.listings.ListByRealtor(ctx, id)
}
