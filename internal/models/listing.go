package models

import "time"

// Listing lifecycle states. The only transition is active -> inactive.
const (
	ListingStatusActive   = "active"
	ListingStatusInactive = "inactive"
)

// Listing represents a listing row. The owning user and creation timestamp
// are immutable after creation.
type Listing struct {
	ID          int64     `json:"listing_id"`
	UserID      int64     `json:"user_id"`
	Title       string    `json:"title"`
	Price       float64   `json:"price"`
	Description *string   `json:"description"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// ListingUpdatableColumns is the fixed whitelist of listing columns the owner
// may change.
var ListingUpdatableColumns = []string{"title", "price", "description"}

type CreateListingRequest struct {
	Credentials
	Title       string   `json:"title" validate:"required"`
	Price       *float64 `json:"price" validate:"required,gte=0"`
	Description *string  `json:"description"`
}

// ListingPatch holds the optional listing fields of a partial update.
type ListingPatch struct {
	Title       *string  `json:"title"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
	Description *string  `json:"description"`
}

// Fields returns the supplied entries keyed by column name.
func (p ListingPatch) Fields() map[string]any {
	fields := make(map[string]any)
	if p.Title != nil {
		fields["title"] = *p.Title
	}
	if p.Price != nil {
		fields["price"] = *p.Price
	}
	if p.Description != nil {
		fields["description"] = *p.Description
	}
	return fields
}

type UpdateListingRequest struct {
	Credentials
	ListingPatch
	ListingID int64 `json:"listing_id" validate:"required"`
}

type DeleteListingRequest struct {
	Credentials
	ListingID int64 `json:"listing_id" validate:"required"`
}

// ListingWindow bounds the public read by creation time, inclusive. The
// bounds are validated here and passed to the store as-is.
type ListingWindow struct {
	StartTime string `query:"startTime" validate:"required,datetime=2006-01-02 15:04:05"`
	EndTime   string `query:"endTime" validate:"required,datetime=2006-01-02 15:04:05"`
}

// ListingOwner is the owner's public projection embedded in the read model.
type ListingOwner struct {
	UserID            int64   `json:"user_id"`
	Username          string  `json:"username"`
	Email             string  `json:"email"`
	ProfilePictureURL *string `json:"profile_picture_url"`
}

// ListingView is the public read model: one active listing with its owner and
// all of its photos. Photos is always present, possibly empty.
type ListingView struct {
	ListingID   int64        `json:"listing_id"`
	Title       string       `json:"title"`
	Price       float64      `json:"price"`
	Description *string      `json:"description"`
	Status      string       `json:"status"`
	CreatedAt   time.Time    `json:"created_at"`
	User        ListingOwner `json:"user"`
	Photos      []PhotoView  `json:"photos"`
}
