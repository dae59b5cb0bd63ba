package memory

import (
	"context"

	"btcwallet/internal/models"
	"btcwallet/internal/repositories"
)

type userRepository struct {
	view
}

func (r *userRepository) CreateUser(_ context.Context, apiKey string) (*models.User, error) {
	var (
		user *models.User
		err  error
	)
	r.write(func() {
		if _, ok := r.s.users[apiKey]; ok {
			err = repositories.ErrUserExists
			return
		}
		user = &models.User{APIKey: apiKey, CreatedAt: r.s.now()}
		r.s.users[apiKey] = user
	})
	if err != nil {
		return nil, err
	}
	c := *user
	return &c, nil
}

func (r *userRepository) GetUser(_ context.Context, apiKey string) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	user, ok := r.s.users[apiKey]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	c := *user
	return &c, nil
}

// GetUserForUpdate needs no extra locking: units of work are already serialized.
func (r *userRepository) GetUserForUpdate(ctx context.Context, apiKey string) (*models.User, error) {
	return r.GetUser(ctx, apiKey)
}
