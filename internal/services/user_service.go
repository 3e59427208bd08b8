package services

import (
	"context"
	"errors"

	"photoshare-backend/internal/db"
	"photoshare-backend/internal/models"
)

type ProfileFinder interface {
	FindProfile(ctx context.Context, id string) (*models.UserProfile, error)
}

type UserService struct {
	users ProfileFinder
}

func NewUserService(users ProfileFinder) *UserService {
	return &UserService{users: users}
}

// GetProfile returns the public profile of user id.
func (s *UserService) GetProfile(ctx context.Context, p *Principal, id string) (*models.UserProfile, error) {
	if !p.Authenticated() {
		return nil, ErrUnauthorized
	}
	u, err := s.users.FindProfile(ctx, id)
	if errors.Is(err, db.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, &AggregationError{Kind: ErrStorageUnavailable, Err: err}
	}
	return u, nil
}
