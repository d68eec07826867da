package mocks

import (
	"context"

	"realtyapi/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockListingRepository struct {
	mock.Mock
}

func (m *MockListingRepository) Create(ctx context.Context, l *model.Listing) (*model.Listing, error) {
	args := m.Called(ctx, l)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Listing), args.Error(1)
}

func (m *MockListingRepository) FindByID(ctx context.Context, id int64) (*model.Listing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Listing), args.Error(1)
}

func (m *MockListingRepository) ListPublished(ctx context.Context, f model.ListingFilter) ([]model.Listing, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Listing), args.Error(1)
}

func (m *MockListingRepository) ListByRealtor(ctx context.Context, realtorID int64) ([]model.Listing, error) {
	args := m.Called(ctx, realtorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Listing), args.Error(1)
}

type MockRealtorRepository struct {
	mock.Mock
}

func (m *MockRealtorRepository) Create(ctx context.Context, r *model.Realtor) (*model.Realtor, error) {
	args := m.Called(ctx, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Realtor), args.Error(1)
}

func (m *MockRealtorRepository) FindByID(ctx context.Context, id int64) (*model.Realtor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Realtor), args.Error(1)
}

type MockPropertyImageRepository struct {
	mock.Mock
}

func (m *MockPropertyImageRepository) Create(ctx context.Context, img *model.PropertyImage) (*model.PropertyImage, error) {
	args := m.Called(ctx, img)
	if f, ok := args.Get(0).(func(context.Context, *model.PropertyImage) *model.PropertyImage); ok {
		return f(ctx, img), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PropertyImage), args.Error(1)
}

func (m *MockPropertyImageRepository) ListByListing(ctx context.Context, listingID int64) ([]model.PropertyImage, error) {
	args := m.Called(ctx, listingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.PropertyImage), args.Error(1)
}

func (m *MockPropertyImageRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockInquiryRepository struct {
	mock.Mock
}

func (m *MockInquiryRepository) Create(ctx context.Context, q *model.Inquiry) (*model.Inquiry, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Inquiry), args.Error(1)
}

func (m *MockInquiryRepository) ListRecent(ctx context.Context, limit int) ([]model.Inquiry, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Inquiry), args.Error(1)
}
