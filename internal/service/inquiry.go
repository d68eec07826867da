package service

import (
	"context"
	"fmt"
	"strings"

	"realtyapi/internal/model"
	"realtyapi/internal/repository"
)

// InquiryService records buyer inquiries.
type InquiryService interface {
	// Create stores an inquiry about the listing. The listing title is copied onto the record.
	Create(ctx context.Context, listingID int64, in *model.Inquiry) (*model.Inquiry, error)
}

type inquiryService struct {
	listings ListingService
	repo     repository.InquiryRepository
}

// NewInquiryService constructs a new InquiryService.
func NewInquiryService(listings ListingService, repo repository.InquiryRepository) InquiryService {
	return &inquiryService{listings: listings, repo: repo}
}

func (s *inquiryService) Create(ctx context.Context, listingID int64, in *model.Inquiry) (*model.Inquiry, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: body is required", ErrInvalidInquiry)
	}
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)
	switch {
	case in.Name == "":
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInquiry)
	case in.Email == "":
		return nil, fmt.Errorf("%w: email is required", ErrInvalidInquiry)
	case in.Phone == "":
		return nil, fmt.Errorf("%w: phone is required", ErrInvalidInquiry)
	}

	l, err := s.listings.Get(ctx, listingID)
	if err != nil {
		return nil, err
	}
	in.ListingID = l.ID
	in.ListingTitle = l.Title

	stored, err := s.repo.Create(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("save inquiry: %w", err)
	}
	return stored, nil
}
