package models

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// User mirrors a row of the Supabase profiles table. The core only reads it
// to denormalize comment authorship; credentials live entirely in the
// identity provider.
type User struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	FullName  string    `json:"fullname"`
	Email     string    `json:"email"`
	Bio       string    `json:"bio"`
	AvatarURL string    `json:"avatar_url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DisplayName picks the name snapshotted onto a comment: full name, then
// username, then email, then "Anonymous".
func (u *User) DisplayName() string {
	switch {
	case u == nil:
		return "Anonymous"
	case u.FullName != "":
		return u.FullName
	case u.Username != "":
		return u.Username
	case u.Email != "":
		return u.Email
	default:
		return "Anonymous"
	}
}

type UserRepo interface {
	CreateUser(ctx context.Context, user *User, password string) (interface{}, error)
	AuthenticateUser(ctx context.Context, email, password string) (interface{}, error)
	RefreshToken(ctx context.Context, refreshToken string) (interface{}, error)
	GetUser(ctx context.Context, id uuid.UUID, accessToken string) (*User, error)
}
