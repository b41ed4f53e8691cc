package services

import (
	"context"
	"errors"

	"thriftlink-backend/internal/db"
	"thriftlink-backend/internal/errs"
	"thriftlink-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"
)

// UserService handles registration, credential verification and profile updates.
type UserService struct {
	db db.Pool
}

func NewUserService(pool db.Pool) *UserService {
	return &UserService{db: pool}
}

// Register creates an account with a bcrypt-hashed password and returns its id.
func (s *UserService) Register(ctx context.Context, req models.CreateUserRequest) (int64, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return 0, err
	}

	var existing int64
	err = s.db.QueryRow(ctx, `SELECT user_id FROM users WHERE email = $1`, req.Email).Scan(&existing)
	if err == nil {
		return 0, errs.ErrEmailTaken
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, err
	}

	var id int64
	err = s.db.QueryRow(ctx,
		`INSERT INTO users (username, password, email, profile_picture_url) VALUES ($1, $2, $3, $4) RETURNING user_id`,
		req.Username, string(hash), req.Email, req.ProfilePictureURL,
	).Scan(&id)
	if err != nil {
		if db.IsUniqueViolation(err) {
			// lost the race against a concurrent registration with the same email
			return 0, errs.ErrEmailTaken
		}
		return 0, err
	}

	return id, nil
}

// Authenticate resolves an account by email and verifies the password against
// the stored bcrypt hash. Unknown email and wrong password both return
// errs.ErrUnauthorized so the caller cannot tell them apart; store faults
// pass through untouched.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (int64, error) {
	var id int64
	var hash string
	err := s.db.QueryRow(ctx, `SELECT user_id, password FROM users WHERE email = $1`, email).Scan(&id, &hash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, errs.ErrUnauthorized
		}
		return 0, err
	}

	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return 0, errs.ErrUnauthorized
	}

	return id, nil
}

// UpdateProfile applies the supplied fields to the user's own account row.
// An empty patch returns errs.ErrNothingToUpdate.
func (s *UserService) UpdateProfile(ctx context.Context, userID int64, patch models.UserPatch) error {
	sql, args, err := db.BuildUpdate("users", "user_id", userID, patch.Fields(), models.UserUpdatableColumns)
	if err != nil {
		return err
	}

	_, err = s.db.Exec(ctx, sql, args...)
	return err
}
