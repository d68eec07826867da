package service

import "errors"

var (
	ErrIDRequired     = errors.New("id is required")
	ErrNotFound       = errors.New("listing not found")
	ErrTitleRequired  = errors.New("title is required")
	ErrListingNil     = errors.New("listing is nil")
	ErrInvalidInquiry = errors.New("invalid inquiry")
	ErrImageIngestion = errors.New("listing images could not be stored")

	ErrRealtorRequired = errors.New("realtor is required")
	ErrRealtorNotFound = errors.New("realtor not found")
	ErrInvalidRealtor  = errors.New("invalid realtor")
)
