package helpers

import (
	"github.com/google/uuid"
)

// EnhancedClaims is the token claims enriched with profile data loaded from
// the identity provider during authentication.
type EnhancedClaims struct {
	*CustomClaims
	UserID    string `json:"id"`
	Email     string `json:"email,omitempty"`
	Username  string `json:"username,omitempty"`
	Fullname  string `json:"fullname,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// UID parses the subject into a user id; uuid.Nil means anonymous.
func (ec *EnhancedClaims) UID() uuid.UUID {
	id, err := uuid.Parse(ec.UserID)
	if err != nil {
		return uuid.Nil
	}
	return id
}

// DisplayName picks the name snapshotted onto comments at write time.
func (ec *EnhancedClaims) DisplayName() string {
	switch {
	case ec.Fullname != "":
		return ec.Fullname
	case ec.Username != "":
		return ec.Username
	case ec.Email != "":
		return ec.Email
	default:
		return "Anonymous"
	}
}

func (ec *EnhancedClaims) IsOwner(userID string) bool {
	return ec.UserID == userID
}
