package repositories

import (
	"context"
	"errors"
	"fmt"

	"btcwallet/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new gorm backed UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) CreateUser(ctx context.Context, apiKey string) (*models.User, error) {
	user := &models.User{APIKey: apiKey}
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("%w: create user: %v", ErrDatabaseOperation, err)
	}
	return user, nil
}

func (r *userRepository) GetUser(ctx context.Context, apiKey string) (*models.User, error) {
	return r.get(r.db.WithContext(ctx), apiKey)
}

func (r *userRepository) GetUserForUpdate(ctx context.Context, apiKey string) (*models.User, error) {
	return r.get(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), apiKey)
}

func (r *userRepository) get(db *gorm.DB, apiKey string) (*models.User, error) {
	var user models.User
	if err := db.Where("api_key = ?", apiKey).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}
