package mocks

import (
	"context"

	"realtyapi/internal/model"
	"realtyapi/internal/pipeline"
	"realtyapi/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockListingService struct {
	mock.Mock
}

func (m *MockListingService) Create(ctx context.Context, l *model.Listing, uploads []pipeline.Upload) (*service.ListingResult, error) {
	args := m.Called(ctx, l, uploads)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ListingResult), args.Error(1)
}

func (m *MockListingService) Get(ctx context.Context, id int64) (*model.Listing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Listing), args.Error(1)
}

func (m *MockListingService) Images(ctx context.Context, id int64) ([]model.PropertyImage, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.PropertyImage), args.Error(1)
}

func (m *MockListingService) List(ctx context.Context, f model.ListingFilter) ([]model.Listing, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Listing), args.Error(1)
}

type MockInquiryService struct {
	mock.Mock
}

func (m *MockInquiryService) Create(ctx context.Context, listingID int64, in *model.Inquiry) (*model.Inquiry, error) {
	args := m.Called(ctx, listingID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Inquiry), args.Error(1)
}

type MockReportService struct {
	mock.Mock
}

func (m *MockReportService) Generate(ctx context.Context) ([]byte, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

type MockRealtorService struct {
	mock.Mock
}

func (m *MockRealtorService) Create(ctx context.Context, r *model.Realtor) (*model.Realtor, error) {
	args := m.Called(ctx, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Realtor), args.Error(1)
}

func (m *MockRealtorService) Get(ctx context.Context, id int64) (*model.Realtor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Realtor), args.Error(1)
}

func (m *MockRealtorService) Listings(ctx context.Context, id int64) ([]model.Listing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Listing), args.Error(1)
}
