package services

import (
	"context"
	"errors"
	"testing"

	"thriftlink-backend/internal/errs"
	"thriftlink-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	return mock
}

func hashOf(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func strPtr(s string) *string { return &s }

func TestUserService_Register_OK(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	s := NewUserService(mock)
	ctx := context.Background()

	mock.ExpectQuery(`SELECT user_id FROM users WHERE email = \$1`).
		WithArgs("e1@example.com").
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectQuery(`INSERT INTO users \(username, password, email, profile_picture_url\) VALUES \(\$1, \$2, \$3, \$4\) RETURNING user_id`).
		WithArgs("u1", pgxmock.AnyArg(), "e1@example.com", (*string)(nil)).
		WillReturnRows(pgxmock.NewRows([]string{"user_id"}).AddRow(int64(1)))

	id, err := s.Register(ctx, models.CreateUserRequest{Username: "u1", Password: "p1", Email: "e1@example.com"})
	require.NoError(t, err)
	require.Equal(t, int64(1), id)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserService_Register_EmailTaken(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	s := NewUserService(mock)
	ctx := context.Background()

	mock.ExpectQuery(`SELECT user_id FROM users WHERE email = \$1`).
		WithArgs("e1@example.com").
		WillReturnRows(pgxmock.NewRows([]string{"user_id"}).AddRow(int64(3)))

	_, err := s.Register(ctx, models.CreateUserRequest{Username: "u2", Password: "p2", Email: "e1@example.com"})
	require.ErrorIs(t, err, errs.ErrEmailTaken)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserService_Register_EmailTaken_UniqueViolationRace(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	s := NewUserService(mock)
	ctx := context.Background()

	mock.ExpectQuery(`SELECT user_id FROM users WHERE email = \$1`).
		WithArgs("e1@example.com").
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectQuery(`INSERT INTO users \(username, password, email, profile_picture_url\) VALUES \(\$1, \$2, \$3, \$4\) RETURNING user_id`).
		WithArgs("u1", pgxmock.AnyArg(), "e1@example.com", (*string)(nil)).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	_, err := s.Register(ctx, models.CreateUserRequest{Username: "u1", Password: "p1", Email: "e1@example.com"})
	require.ErrorIs(t, err, errs.ErrEmailTaken)
}

func TestUserService_Authenticate(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	s := NewUserService(mock)
	ctx := context.Background()
	hash := hashOf(t, "p1")

	// correct password
	mock.ExpectQuery(`SELECT user_id, password FROM users WHERE email = \$1`).
		WithArgs("e1@example.com").
		WillReturnRows(pgxmock.NewRows([]string{"user_id", "password"}).AddRow(int64(7), hash))
	id, err := s.Authenticate(ctx, "e1@example.com", "p1")
	require.NoError(t, err)
	require.Equal(t, int64(7), id)

	// wrong password
	mock.ExpectQuery(`SELECT user_id, password FROM users WHERE email = \$1`).
		WithArgs("e1@example.com").
		WillReturnRows(pgxmock.NewRows([]string{"user_id", "password"}).AddRow(int64(7), hash))
	_, err = s.Authenticate(ctx, "e1@example.com", "wrong")
	require.ErrorIs(t, err, errs.ErrUnauthorized)

	// unknown email collapses to the same outcome
	mock.ExpectQuery(`SELECT user_id, password FROM users WHERE email = \$1`).
		WithArgs("nobody@example.com").
		WillReturnError(pgx.ErrNoRows)
	_, err = s.Authenticate(ctx, "nobody@example.com", "p1")
	require.ErrorIs(t, err, errs.ErrUnauthorized)
}

func TestUserService_Authenticate_StoreFaultPassesThrough(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	s := NewUserService(mock)

	storeErr := errors.New("connection refused")
	mock.ExpectQuery(`SELECT user_id, password FROM users WHERE email = \$1`).
		WithArgs("e1@example.com").
		WillReturnError(storeErr)

	_, err := s.Authenticate(context.Background(), "e1@example.com", "p1")
	require.ErrorIs(t, err, storeErr)
	require.NotErrorIs(t, err, errs.ErrUnauthorized)
}

func TestUserService_UpdateProfile_OK(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	s := NewUserService(mock)
	ctx := context.Background()

	mock.ExpectExec(`UPDATE users SET username = \$1 WHERE user_id = \$2`).
		WithArgs("newname", int64(7)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := s.UpdateProfile(ctx, 7, models.UserPatch{Username: strPtr("newname")})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserService_UpdateProfile_BothFields(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	s := NewUserService(mock)
	ctx := context.Background()

	mock.ExpectExec(`UPDATE users SET username = \$1, profile_picture_url = \$2 WHERE user_id = \$3`).
		WithArgs("newname", "http://img", int64(7)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := s.UpdateProfile(ctx, 7, models.UserPatch{
		Username:          strPtr("newname"),
		ProfilePictureURL: strPtr("http://img"),
	})
	require.NoError(t, err)
}

func TestUserService_UpdateProfile_Empty(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	s := NewUserService(mock)

	err := s.UpdateProfile(context.Background(), 7, models.UserPatch{})
	require.ErrorIs(t, err, errs.ErrNothingToUpdate)
	// nothing must reach the store
	require.NoError(t, mock.ExpectationsWereMet())
}
