package repositories

import (
	"context"
	"errors"

	"btcwallet/internal/models"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserExists        = errors.New("user already exists")
	ErrDatabaseOperation = errors.New("database operation failed")
)

// UserRepository defines the interface for user-related storage operations
type UserRepository interface {
	// CreateUser stores a new user identified by apiKey
	CreateUser(ctx context.Context, apiKey string) (*models.User, error)

	// GetUser returns ErrUserNotFound when no user holds apiKey
	GetUser(ctx context.Context, apiKey string) (*models.User, error)

	// GetUserForUpdate is GetUser that also locks the user row until the
	// surrounding unit of work ends
	GetUserForUpdate(ctx context.Context, apiKey string) (*models.User, error)
}

// Implementation will be in user_repository_impl.go
