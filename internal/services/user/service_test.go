package user

import (
	"context"
	"testing"

	apperrors "btcwallet/internal/errors"
	"btcwallet/internal/models"
	"btcwallet/internal/repositories"
	"btcwallet/internal/repositories/memory"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUser(ctx context.Context, apiKey string) (*models.User, error) {
	args := m.Called(ctx, apiKey)
	if u := args.Get(0); u != nil {
		return u.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) GetUser(ctx context.Context, apiKey string) (*models.User, error) {
	args := m.Called(ctx, apiKey)
	if u := args.Get(0); u != nil {
		return u.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) GetUserForUpdate(ctx context.Context, apiKey string) (*models.User, error) {
	return m.GetUser(ctx, apiKey)
}

func keys(values ...string) KeyGenerator {
	i := 0
	return func() string {
		k := values[i%len(values)]
		i++
		return k
	}
}

func TestUserService_CreateAndGet(t *testing.T) {
	log, _ := test.NewNullLogger()
	svc := NewService(memory.NewStore().Users(), keys("user-1", "user-2"), log)
	ctx := context.Background()

	first, err := svc.CreateUser(ctx)
	require.NoError(t, err)
	second, err := svc.CreateUser(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, first.APIKey, second.APIKey)

	got, err := svc.GetUser(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "user-1", got.APIKey)

	_, err = svc.GetUser(ctx, "user-unknown")
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestUserService_CreateUser_RetriesTakenKey(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("CreateUser", mock.Anything, "user-dup").Return(nil, repositories.ErrUserExists).Once()
	repo.On("CreateUser", mock.Anything, "user-new").Return(&models.User{APIKey: "user-new"}, nil).Once()

	log, hook := test.NewNullLogger()
	svc := NewService(repo, keys("user-dup", "user-new"), log)

	user, err := svc.CreateUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "user-new", user.APIKey)
	assert.Len(t, hook.AllEntries(), 2)
	repo.AssertExpectations(t)
}

func TestUserService_CreateUser_GivesUp(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("CreateUser", mock.Anything, "user-dup").Return(nil, repositories.ErrUserExists).Times(maxKeyAttempts)

	log, _ := test.NewNullLogger()
	svc := NewService(repo, keys("user-dup"), log)

	_, err := svc.CreateUser(context.Background())
	assert.ErrorIs(t, err, repositories.ErrUserExists)
	repo.AssertExpectations(t)
}

func TestNewService_RequiresDependencies(t *testing.T) {
	assert.Panics(t, func() { NewService(nil, keys("k"), nil) })
	assert.Panics(t, func() { NewService(new(MockUserRepository), nil, nil) })
}
