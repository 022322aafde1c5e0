package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"weather-info/internal/apperrors"
	"weather-info/internal/kafka"
	"weather-info/internal/models"
	"weather-info/internal/repositories"
	"weather-info/internal/validation"
)

type UserService struct {
	store    repositories.Store
	producer kafka.Publisher
}

// NewUserService: producer may be nil, then no events are published.
func NewUserService(store repositories.Store, producer kafka.Publisher) *UserService {
	return &UserService{store: store, producer: producer}
}

func (s *UserService) CreateUser(ctx context.Context, input models.UserInput) (models.User, error) {
	username, err := validation.ValidateUsername(input.Username)
	if err != nil {
		return models.User{}, err
	}

	user, err := s.store.CreateUser(ctx, username)
	if errors.Is(err, repositories.ErrDuplicate) {
		return models.User{}, apperrors.Validation("user with username %q already exists", username)
	}
	if err != nil {
		return models.User{}, fmt.Errorf("create user: %w", err)
	}

	if s.producer != nil {
		s.producer.PublishObjectAsync([]byte(strconv.FormatInt(user.ID, 10)), models.NewUserCreated(user))
	}
	return user, nil
}

// requireUser validates the id and checks the user exists.
// An invalid id is reported as a missing user.
func requireUser(ctx context.Context, store repositories.UserRepository, userID int64) error {
	if _, err := validation.ValidateUserID(userID); err != nil {
		return apperrors.NotFound("user %d not found: %s", userID, apperrors.PublicMessage(err))
	}
	_, err := store.GetUser(ctx, userID)
	if errors.Is(err, repositories.ErrNotFound) {
		return apperrors.NotFound("user %d not found", userID)
	}
	return err
}
