package services

import (
	"context"
	"encoding/json"
	"errors"

	"thriftlink-backend/internal/db"
	"thriftlink-backend/internal/errs"
	"thriftlink-backend/internal/models"

	"github.com/jackc/pgx/v5"
)

// ListingService handles the listing lifecycle, listing photos and the public
// read model. Ownership checks and the following write are separate
// statements; the check-then-write race is accepted.
type ListingService struct {
	db db.Pool
}

func NewListingService(pool db.Pool) *ListingService {
	return &ListingService{db: pool}
}

// Create inserts a new active listing owned by userID and returns its id.
func (s *ListingService) Create(ctx context.Context, userID int64, req models.CreateListingRequest) (int64, error) {
	var id int64
	err := s.db.QueryRow(ctx,
		`INSERT INTO listings (user_id, title, price, description) VALUES ($1, $2, $3, $4) RETURNING listing_id`,
		userID, req.Title, *req.Price, req.Description,
	).Scan(&id)
	return id, err
}

// ownerOf resolves a listing's owning account and current status.
func (s *ListingService) ownerOf(ctx context.Context, listingID int64) (int64, string, error) {
	var ownerID int64
	var status string
	err := s.db.QueryRow(ctx, `SELECT user_id, status FROM listings WHERE listing_id = $1`, listingID).Scan(&ownerID, &status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, "", errs.ErrNotFound
		}
		return 0, "", err
	}
	return ownerID, status, nil
}

// Update applies the supplied fields to a listing owned by userID.
// An empty patch is rejected before the listing is even looked up.
func (s *ListingService) Update(ctx context.Context, userID, listingID int64, patch models.ListingPatch) error {
	sql, args, err := db.BuildUpdate("listings", "listing_id", listingID, patch.Fields(), models.ListingUpdatableColumns)
	if err != nil {
		return err
	}

	ownerID, _, err := s.ownerOf(ctx, listingID)
	if err != nil {
		return err
	}
	if ownerID != userID {
		return errs.ErrForbidden
	}

	_, err = s.db.Exec(ctx, sql, args...)
	return err
}

// Deactivate soft-deletes a listing owned by userID. Deactivating a listing
// that is already inactive succeeds without writing; the bool reports that
// case so the endpoint can answer with the distinct message.
func (s *ListingService) Deactivate(ctx context.Context, userID, listingID int64) (alreadyInactive bool, err error) {
	ownerID, status, err := s.ownerOf(ctx, listingID)
	if err != nil {
		return false, err
	}
	if ownerID != userID {
		return false, errs.ErrForbidden
	}
	if status == models.ListingStatusInactive {
		return true, nil
	}

	_, err = s.db.Exec(ctx, `UPDATE listings SET status = 'inactive' WHERE listing_id = $1`, listingID)
	return false, err
}

// AddPhoto attaches a photo URL to a listing owned by userID and returns the
// new photo id.
func (s *ListingService) AddPhoto(ctx context.Context, userID, listingID int64, photoURL string) (int64, error) {
	ownerID, _, err := s.ownerOf(ctx, listingID)
	if err != nil {
		return 0, err
	}
	if ownerID != userID {
		return 0, errs.ErrForbidden
	}

	var id int64
	err = s.db.QueryRow(ctx,
		`INSERT INTO listing_photos (listing_id, photo_url) VALUES ($1, $2) RETURNING photo_id`,
		listingID, photoURL,
	).Scan(&id)
	return id, err
}

// DeletePhoto removes a photo. The ownership check runs against the owning
// listing's account; photos have no owner column of their own.
func (s *ListingService) DeletePhoto(ctx context.Context, userID, photoID int64) error {
	var ownerID int64
	err := s.db.QueryRow(ctx,
		`SELECT l.user_id FROM listing_photos lp JOIN listings l ON lp.listing_id = l.listing_id WHERE lp.photo_id = $1`,
		photoID,
	).Scan(&ownerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return errs.ErrNotFound
		}
		return err
	}
	if ownerID != userID {
		return errs.ErrForbidden
	}

	_, err = s.db.Exec(ctx, `DELETE FROM listing_photos WHERE photo_id = $1`, photoID)
	return err
}

const listActiveSQL = `
SELECT l.listing_id, l.title, l.price, l.description, l.status, l.created_at,
       u.user_id, u.username, u.email, u.profile_picture_url,
       COALESCE(p.photos, '[]') AS photos
FROM listings l
JOIN users u ON l.user_id = u.user_id
LEFT JOIN (
    SELECT listing_id,
           json_agg(json_build_object(
               'photo_id', photo_id,
               'photo_url', photo_url,
               'uploaded_at', uploaded_at
           ) ORDER BY uploaded_at, photo_id) AS photos
    FROM listing_photos
    GROUP BY listing_id
) p ON l.listing_id = p.listing_id
WHERE l.status = 'active'
  AND l.created_at BETWEEN $1::timestamptz AND $2::timestamptz
ORDER BY l.created_at DESC, l.listing_id DESC`

// ListActive returns the active listings created within [startTime, endTime],
// newest first, each with its owner's public fields and all of its photos.
// The photo aggregation happens in SQL; listings without photos carry an
// empty list, never null.
func (s *ListingService) ListActive(ctx context.Context, startTime, endTime string) ([]models.ListingView, error) {
	rows, err := s.db.Query(ctx, listActiveSQL, startTime, endTime)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	views := make([]models.ListingView, 0)
	for rows.Next() {
		var v models.ListingView
		var photos []byte
		if err := rows.Scan(
			&v.ListingID, &v.Title, &v.Price, &v.Description, &v.Status, &v.CreatedAt,
			&v.User.UserID, &v.User.Username, &v.User.Email, &v.User.ProfilePictureURL,
			&photos,
		); err != nil {
			return nil, err
		}

		v.Photos = make([]models.PhotoView, 0)
		if len(photos) > 0 {
			if err := json.Unmarshal(photos, &v.Photos); err != nil {
				return nil, err
			}
		}

		views = append(views, v)
	}

	return views, rows.Err()
}
