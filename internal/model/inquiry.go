package model

import "time"

// Inquiry is a buyer's contact request about a listing.
// ListingTitle is denormalized so reports survive listing renames.
type Inquiry struct {
	ID           int64      `json:"id"`
	ListingID    int64      `json:"listing_id"`
	ListingTitle string     `json:"listing_title"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	Phone        string     `json:"phone"`
	Message      string     `json:"message"`
	UserID       *int64     `json:"user_id,omitempty"`
	ContactDate  *time.Time `json:"contact_date"`
}
