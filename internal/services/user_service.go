package services

import (
	"context"

	"github.com/4lejanddr0/communityevents/internal/apperr"
	"github.com/4lejanddr0/communityevents/internal/models"
	"github.com/google/uuid"
)

// UserService fronts the identity provider. The core never manages
// credentials itself; signup and token exchange go straight to Supabase.
type UserService struct {
	userRepo models.UserRepo
}

func NewUserService(userRepo models.UserRepo) *UserService {
	return &UserService{
		userRepo: userRepo,
	}
}

func (us *UserService) CreateUser(ctx context.Context, user *models.User, password string) (interface{}, error) {
	if err := models.Validate.Var(user.Email, "required,email"); err != nil {
		return nil, apperr.New(apperr.InvalidArgument, "a valid email is required")
	}
	if err := models.Validate.Var(password, "required,min=8"); err != nil {
		return nil, apperr.New(apperr.InvalidArgument, "password must be at least 8 characters")
	}
	return us.userRepo.CreateUser(ctx, user, password)
}

func (us *UserService) AuthenticateUser(ctx context.Context, email, password string) (interface{}, error) {
	if err := models.Validate.Var(email, "required,email"); err != nil {
		return nil, apperr.New(apperr.InvalidArgument, "a valid email is required")
	}
	if err := models.Validate.Var(password, "required,min=8"); err != nil {
		return nil, apperr.New(apperr.InvalidArgument, "password must be at least 8 characters")
	}
	return us.userRepo.AuthenticateUser(ctx, email, password)
}

func (us *UserService) RefreshToken(ctx context.Context, refreshToken string) (interface{}, error) {
	if refreshToken == "" {
		return nil, apperr.New(apperr.Unauthenticated, "refresh token is required")
	}
	return us.userRepo.RefreshToken(ctx, refreshToken)
}

func (us *UserService) GetUser(ctx context.Context, id uuid.UUID, accessToken string) (*models.User, error) {
	return us.userRepo.GetUser(ctx, id, accessToken)
}
