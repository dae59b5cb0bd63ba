package user

import (
	"context"
	"errors"
	"fmt"

	apperrors "btcwallet/internal/errors"
	"btcwallet/internal/logging"
	"btcwallet/internal/models"
	"btcwallet/internal/repositories"

	"github.com/sirupsen/logrus"
)

// maxKeyAttempts bounds retries when a generated key is already taken.
const maxKeyAttempts = 3

type Service interface {
	// CreateUser registers a user under a freshly generated API key
	CreateUser(ctx context.Context) (*models.User, error)
	GetUser(ctx context.Context, apiKey string) (*models.User, error)
}

// KeyGenerator returns a new API key.
type KeyGenerator func() string

type service struct {
	repo   repositories.UserRepository
	newKey KeyGenerator
	log    logrus.FieldLogger
}

func NewService(repo repositories.UserRepository, newKey KeyGenerator, log logrus.FieldLogger) Service {
	if repo == nil {
		panic("user repository is required")
	}
	if newKey == nil {
		panic("key generator is required")
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &service{
		repo:   repo,
		newKey: newKey,
		log:    log.WithField("service", "user"),
	}
}

func (s *service) CreateUser(ctx context.Context) (*models.User, error) {
	for attempt := 1; attempt <= maxKeyAttempts; attempt++ {
		user, err := s.repo.CreateUser(ctx, s.newKey())
		if err == nil {
			s.log.WithField("api_key", logging.MaskKey(user.APIKey)).Info("user created")
			return user, nil
		}
		if !errors.Is(err, repositories.ErrUserExists) {
			return nil, fmt.Errorf("failed to create user: %w", err)
		}
		s.log.WithField("attempt", attempt).Warn("generated api key already taken")
	}
	return nil, fmt.Errorf("failed to create user: %w", repositories.ErrUserExists)
}

func (s *service) GetUser(ctx context.Context, apiKey string) (*models.User, error) {
	user, err := s.repo.GetUser(ctx, apiKey)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}
