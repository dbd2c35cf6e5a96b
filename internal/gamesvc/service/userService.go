package service

import (
	"context"
	"fmt"

	"github.com/avvvet/monopoly-services/internal/gamesvc/models"
	"github.com/avvvet/monopoly-services/internal/gamesvc/store"
)

// UserService struct represents the user service layer
type UserService struct {
	userStore *store.UserStore
}

// NewUserService creates a new UserService instance
func NewUserService(userStore *store.UserStore) *UserService {
	return &UserService{
		userStore: userStore,
	}
}

// GetOrCreateUser checks if a user exists and creates them if not
func (s *UserService) GetOrCreateUser(ctx context.Context, userInfo models.User) (*models.User, error) {
	existingUser, err := s.userStore.GetByID(ctx, userInfo.UserId)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if existingUser != nil {
		return existingUser, nil
	}

	userInfo.Status = "ACTIVE"
	userId, err := s.userStore.CreateUser(ctx, userInfo)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	userInfo.UserId = userId
	return &userInfo, nil
}
