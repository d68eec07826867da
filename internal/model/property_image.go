package model

import "time"

// PropertyImage is a processed listing photo persisted in object storage.
// It is created once per successfully processed upload and never mutated afterwards.
type PropertyImage struct {
	ID          string    `json:"id"`
	ListingID   int64     `json:"listing_id"`
	Filename    string    `json:"filename"`
	StoragePath string    `json:"storage_path"`
	Size        int64     `json:"size"`
	ContentType string    `json:"content_type"`
	Featured    bool      `json:"featured"`
	SortOrder   int       `json:"sort_order"`
	CreatedAt   time.Time `json:"created_at"`
	URL         string    `json:"url,omitempty"`
}
