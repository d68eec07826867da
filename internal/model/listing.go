package model

import "time"

// Listing is a property-for-sale record owned by a realtor. Images and inquiries
// reference it by ID.
type Listing struct {
	ID          int64     `json:"id"`
	RealtorID   int64     `json:"realtor_id"`
	Title       string    `json:"title"`
	Address     string    `json:"address"`
	City        string    `json:"city"`
	State       string    `json:"state"`
	Zipcode     string    `json:"zipcode"`
	Description string    `json:"description"`
	Price       int       `json:"price"`
	Bedrooms    int       `json:"bedrooms"`
	Bathrooms   float64   `json:"bathrooms"`
	Garage      int       `json:"garage"`
	Sqft        int       `json:"sqft"`
	LotSize     float64   `json:"lot_size"`
	IsPublished bool      `json:"is_published"`
	ListDate    time.Time `json:"list_date"`
}

// ListingFilter narrows the published listings gallery. Zero values disable a filter.
type ListingFilter struct {
	Keyword     string
	City        string
	MinBedrooms int
	MaxPrice    int
}
