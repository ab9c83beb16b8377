package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-session-auth/internal/logger"
	"github.com/MKhiriev/go-session-auth/internal/store"
	"github.com/MKhiriev/go-session-auth/models"
)

type userService struct {
	users store.UserRepository

	logger *logger.Logger
}

func NewUserService(users store.UserRepository, logger *logger.Logger) UserService {
	return &userService{
		users:  users,
		logger: logger,
	}
}

// GetUser returns the user with id or ErrNotFound.
func (s *userService) GetUser(ctx context.Context, id string) (models.User, error) {
	if id == "" {
		return models.User{}, ErrNotFound
	}

	user, err := s.users.FindUser(ctx, models.UserFilter{ID: id})
	if errors.Is(err, store.ErrNoUserWasFound) {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("user_id", id).Msg("user search by id failed")
		return models.User{}, fmt.Errorf("user search by id failed: %w", err)
	}

	return user, nil
}

func (s *userService) ListUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.users.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing users: %w", err)
	}
	return users, nil
}

func (s *userService) UpdateUser(ctx context.Context, id string, req models.UpdateUserRequest) (models.User, error) {
	if id == "" {
		return models.User{}, ErrNotFound
	}

	changes := models.UserChanges{FirstName: req.FirstName, LastName: req.LastName}
	if !changes.IsEmpty() {
		err := s.users.UpdateUser(ctx, id, changes)
		if errors.Is(err, store.ErrNoUserWasFound) {
			return models.User{}, ErrNotFound
		}
		if err != nil {
			logger.FromContext(ctx).Err(err).Str("user_id", id).Msg("user update failed")
			return models.User{}, fmt.Errorf("user update failed: %w", err)
		}
	}

	return s.GetUser(ctx, id)
}

func (s *userService) CountUsers(ctx context.Context) (int64, error) {
	n, err := s.users.CountUsers(ctx)
	if err != nil {
		return 0, fmt.Errorf("error counting users: %w", err)
	}
	return n, nil
}
