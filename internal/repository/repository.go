package repository

import (
	"context"
	"errors"

	"realtyapi/internal/model"
)

// ErrUnknownRealtor is returned when a listing references a realtor that does not exist.
var ErrUnknownRealtor = errors.New("realtor does not exist")

// RealtorRepository persists realtors.
type RealtorRepository interface {
	// Create inserts a realtor and returns it with its ID.
	Create(ctx context.Context, r *model.Realtor) (*model.Realtor, error)

	// FindByID returns a realtor by its ID or sql.ErrNoRows.
	FindByID(ctx context.Context, id int64) (*model.Realtor, error)
}

// ListingRepository persists listings. Persistence only, no business logic.
type ListingRepository interface {
	// Create inserts a listing and returns it with the database-assigned ID and list date.
	// It returns ErrUnknownRealtor when RealtorID matches no realtor.
	Create(ctx context.Context, l *model.Listing) (*model.Listing, error)

	// FindByID returns a listing by its ID or sql.ErrNoRows.
	FindByID(ctx context.Context, id int64) (*model.Listing, error)

	// ListPublished returns published listings newest first, narrowed by the filter.
	ListPublished(ctx context.Context, f model.ListingFilter) ([]model.Listing, error)

	// ListByRealtor returns every listing of a realtor, published or not, newest first.
	ListByRealtor(ctx context.Context, realtorID int64) ([]model.Listing, error)
}

// PropertyImageRepository persists processed listing images.
type PropertyImageRepository interface {
	// Create inserts a new image record.
	Create(ctx context.Context, img *model.PropertyImage) (*model.PropertyImage, error)

	// ListByListing returns a listing's images ordered by sort order.
	ListByListing(ctx context.Context, listingID int64) ([]model.PropertyImage, error)

	// Delete removes an image record by ID. Missing rows are not an error.
	Delete(ctx context.Context, id string) error
}

// InquiryRepository persists buyer inquiries.
type InquiryRepository interface {
	// Create inserts an inquiry and returns it with its ID and contact date.
	Create(ctx context.Context, q *model.Inquiry) (*model.Inquiry, error)

	// ListRecent returns at most limit inquiries, newest first, with the listing title resolved.
	ListRecent(ctx context.Context, limit int) ([]model.Inquiry, error)
}
