package models

import "time"

// Photo represents a listing photo row. Photos have no owner of their own;
// ownership is the owning listing's.
type Photo struct {
	ID         int64     `json:"photo_id"`
	ListingID  int64     `json:"listing_id"`
	URL        string    `json:"photo_url"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// PhotoView is the photo projection embedded in the listing read model.
type PhotoView struct {
	PhotoID    int64     `json:"photo_id"`
	PhotoURL   string    `json:"photo_url"`
	UploadedAt time.Time `json:"uploaded_at"`
}

type AddListingPhotoRequest struct {
	Credentials
	ListingID int64  `json:"listing_id" validate:"required"`
	PhotoURL  string `json:"photo_url" validate:"required"`
}

type DeleteListingPhotoRequest struct {
	Credentials
	PhotoID int64 `json:"photo_id" validate:"required"`
}
