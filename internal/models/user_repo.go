package models

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/4lejanddr0/communityevents/internal/apperr"
	"github.com/google/uuid"
	"github.com/supabase-community/gotrue-go/types"
)

func (su *SupabaseRepo) CreateUser(ctx context.Context, user *User, password string) (interface{}, error) {
	signed := types.SignupRequest{
		Email:    user.Email,
		Password: password,
		Data: map[string]interface{}{
			"username": user.Username,
			"fullname": user.FullName,
		},
	}

	res, err := su.supabaseClient.Auth.Signup(signed)
	if err != nil {
		if strings.Contains(err.Error(), "User already registered") ||
			strings.Contains(err.Error(), "unique constraint") {
			return nil, apperr.New(apperr.InvalidArgument, "email already in use")
		}
		return nil, apperr.Wrap(apperr.Internal, "failed to create user", err)
	}
	return res, nil
}

func (su *SupabaseRepo) AuthenticateUser(ctx context.Context, email, password string) (interface{}, error) {
	resp, err := su.supabaseClient.Auth.SignInWithEmailPassword(email, password)
	if err != nil {
		return nil, apperr.Wrap(apperr.Unauthenticated, "invalid email or password", err)
	}
	return resp, nil
}

func (su *SupabaseRepo) RefreshToken(ctx context.Context, refreshToken string) (interface{}, error) {
	resp, err := su.supabaseClient.Auth.RefreshToken(refreshToken)
	if err != nil {
		return nil, apperr.Wrap(apperr.Unauthenticated, "session expired, sign in again", err)
	}
	return resp, nil
}

func (su *SupabaseRepo) GetUser(ctx context.Context, id uuid.UUID, accessToken string) (*User, error) {
	if id == uuid.Nil {
		return nil, apperr.New(apperr.InvalidArgument, "invalid user id")
	}

	client := su.supabaseClient
	if accessToken != "" {
		authClient, err := su.GetAuthenticatedClient(accessToken)
		if err != nil {
			return nil, apperr.Wrap(apperr.Internal, "failed to create authenticated client", err)
		}
		client = authClient
	}

	raw, status, err := client.From(ProfileTable).
		Select("id,email,username,fullname,bio,avatar_url,created_at,updated_at", "", false).
		Eq("id", id.String()).
		Execute()
	if err != nil {
		if status != 0 {
			return nil, apperr.Wrap(apperr.Internal, fmt.Sprintf("postgrest error: status=%d", status), err)
		}
		return nil, apperr.Wrap(apperr.Unavailable, "identity provider unavailable", err)
	}

	// Supabase returns an array even for single results
	var users []User
	if err := json.Unmarshal(raw, &users); err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to unmarshal profile rows", err)
	}

	if len(users) == 0 {
		return nil, apperr.New(apperr.NotFound, "profile not found")
	}

	return &users[0], nil
}
