package models

// User represents an account row.
type User struct {
	ID                int64   `json:"user_id"`
	Username          string  `json:"username"`
	PasswordHash      string  `json:"-"`
	Email             string  `json:"email"`
	ProfilePictureURL *string `json:"profile_picture_url"`
}

// UserUpdatableColumns is the fixed whitelist of account columns a user may
// change on their own row.
var UserUpdatableColumns = []string{"username", "profile_picture_url"}

// Credentials authenticate a mutating request. The API carries them in the
// request body on every protected call.
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type CreateUserRequest struct {
	Username          string  `json:"username" validate:"required"`
	Password          string  `json:"password" validate:"required"`
	Email             string  `json:"email" validate:"required,email"`
	ProfilePictureURL *string `json:"profile_picture_url"`
}

// UserPatch holds the optional account fields of a partial update. A nil
// pointer means the field was not supplied.
type UserPatch struct {
	Username          *string `json:"username"`
	ProfilePictureURL *string `json:"profile_picture_url"`
}

// Fields returns the supplied entries keyed by column name.
func (p UserPatch) Fields() map[string]any {
	fields := make(map[string]any)
	if p.Username != nil {
		fields["username"] = *p.Username
	}
	if p.ProfilePictureURL != nil {
		fields["profile_picture_url"] = *p.ProfilePictureURL
	}
	return fields
}

type UpdateUserRequest struct {
	Credentials
	UserPatch
}
