package wallet

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	apperrors "btcwallet/internal/errors"
	"btcwallet/internal/models"
	"btcwallet/internal/repositories/memory"
	"btcwallet/internal/services/currency"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockConverter struct {
	mock.Mock
}

func (m *MockConverter) ConvertBTCToFiat(ctx context.Context, satoshis int64, cur currency.FiatCurrency) (float64, error) {
	args := m.Called(ctx, satoshis, cur)
	return args.Get(0).(float64), args.Error(1)
}

type MockMetrics struct {
	mock.Mock
}

func (m *MockMetrics) RecordOperationDuration(operation string, d time.Duration) {
	m.Called(operation, d)
}

func (m *MockMetrics) RecordWalletCreated() { m.Called() }

func (m *MockMetrics) RecordError(operation, code string) { m.Called(operation, code) }

func sequentialAddresses() AddressGenerator {
	var n int64
	return func() string { return fmt.Sprintf("wallet-%d", atomic.AddInt64(&n, 1)) }
}

func fixedConverter() currency.Converter {
	return currency.NewFixedRateConverter(map[currency.FiatCurrency]float64{currency.USD: 60000})
}

func newTestService(t *testing.T, converter currency.Converter) (Service, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	_, err := store.Users().CreateUser(context.Background(), "user-alice")
	require.NoError(t, err)

	log, _ := test.NewNullLogger()
	return NewService(store, converter, sequentialAddresses(), WalletConfig{}, nil, log), store
}

func TestNewService_RequiresDependencies(t *testing.T) {
	store := memory.NewStore()
	assert.Panics(t, func() { NewService(nil, fixedConverter(), sequentialAddresses(), WalletConfig{}, nil, nil) })
	assert.Panics(t, func() { NewService(store, nil, sequentialAddresses(), WalletConfig{}, nil, nil) })
	assert.Panics(t, func() { NewService(store, fixedConverter(), nil, WalletConfig{}, nil, nil) })
}

func TestWalletService_CreateWallet(t *testing.T) {
	svc, store := newTestService(t, fixedConverter())
	ctx := context.Background()

	resp, err := svc.CreateWallet(ctx, "user-alice")
	require.NoError(t, err)
	assert.Equal(t, "wallet-1", resp.WalletAddress)
	assert.Equal(t, 1.0, resp.BalanceBTC)
	assert.InDelta(t, 60000.0, resp.BalanceUSD, 1e-9)

	stored, err := store.Wallets().GetWallet(ctx, "wallet-1")
	require.NoError(t, err)
	assert.Equal(t, "user-alice", stored.OwnerKey)
	assert.Equal(t, models.InitialWalletValueSatoshis, stored.Balance)
}

func TestWalletService_CreateWallet_Errors(t *testing.T) {
	tests := []struct {
		name    string
		apiKey  string
		prepare func(t *testing.T, svc Service)
		wantErr error
	}{
		{
			name:    "unknown user",
			apiKey:  "user-nobody",
			wantErr: apperrors.ErrUserNotFound,
		},
		{
			name:   "limit reached",
			apiKey: "user-alice",
			prepare: func(t *testing.T, svc Service) {
				for i := 0; i < models.MaxWalletsPerPerson; i++ {
					_, err := svc.CreateWallet(context.Background(), "user-alice")
					require.NoError(t, err)
				}
			},
			wantErr: apperrors.ErrWalletLimitReached,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, store := newTestService(t, fixedConverter())
			if tt.prepare != nil {
				tt.prepare(t, svc)
			}
			before, err := store.Wallets().GetAllWallets(context.Background())
			require.NoError(t, err)

			_, err = svc.CreateWallet(context.Background(), tt.apiKey)
			assert.ErrorIs(t, err, tt.wantErr)

			after, err := store.Wallets().GetAllWallets(context.Background())
			require.NoError(t, err)
			assert.Len(t, after, len(before), "a rejected request must not create a wallet")
		})
	}
}

func TestWalletService_CreateWallet_LimitHoldsUnderConcurrency(t *testing.T) {
	svc, store := newTestService(t, fixedConverter())
	ctx := context.Background()

	var (
		wg      sync.WaitGroup
		limited int32
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.CreateWallet(ctx, "user-alice"); errors.Is(err, apperrors.ErrWalletLimitReached) {
				atomic.AddInt32(&limited, 1)
			}
		}()
	}
	wg.Wait()

	wallets, err := store.Wallets().GetUserWallets(ctx, "user-alice")
	require.NoError(t, err)
	assert.Len(t, wallets, models.MaxWalletsPerPerson)
	assert.Equal(t, int32(20-models.MaxWalletsPerPerson), atomic.LoadInt32(&limited))
}

func TestWalletService_CreateWallet_ConversionFailureKeepsWallet(t *testing.T) {
	converter := new(MockConverter)
	converter.On("ConvertBTCToFiat", mock.Anything, models.InitialWalletValueSatoshis, currency.USD).
		Return(0.0, currency.ErrUnsupportedCurrency)

	svc, store := newTestService(t, converter)

	_, err := svc.CreateWallet(context.Background(), "user-alice")
	assert.ErrorIs(t, err, apperrors.ErrUnsupportedCurrency)

	wallets, err := store.Wallets().GetUserWallets(context.Background(), "user-alice")
	require.NoError(t, err)
	assert.Len(t, wallets, 1)
	converter.AssertExpectations(t)
}

func TestWalletService_GetWallet(t *testing.T) {
	svc, store := newTestService(t, fixedConverter())
	ctx := context.Background()

	_, err := store.Users().CreateUser(ctx, "user-bob")
	require.NoError(t, err)
	created, err := svc.CreateWallet(ctx, "user-alice")
	require.NoError(t, err)

	resp, err := svc.GetWallet(ctx, "user-alice", created.WalletAddress)
	require.NoError(t, err)
	assert.Equal(t, created, resp)

	tests := []struct {
		name    string
		apiKey  string
		address string
		wantErr error
	}{
		{"unknown user", "user-nobody", created.WalletAddress, apperrors.ErrUserNotFound},
		{"unknown wallet", "user-alice", "wallet-missing", apperrors.ErrWalletNotFound},
		{"someone else's wallet", "user-bob", created.WalletAddress, apperrors.ErrNotThisUsersWallet},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.GetWallet(ctx, tt.apiKey, tt.address)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestWalletService_RecordsMetrics(t *testing.T) {
	store := memory.NewStore()
	_, err := store.Users().CreateUser(context.Background(), "user-alice")
	require.NoError(t, err)

	metrics := new(MockMetrics)
	metrics.On("RecordOperationDuration", OperationCreateWallet, mock.Anything).Return()
	metrics.On("RecordOperationDuration", OperationGetWallet, mock.Anything).Return()
	metrics.On("RecordWalletCreated").Return().Once()
	metrics.On("RecordError", OperationGetWallet, "WALLET_NOT_FOUND").Return().Once()

	log, _ := test.NewNullLogger()
	svc := NewService(store, fixedConverter(), sequentialAddresses(), WalletConfig{}, metrics, log)

	_, err = svc.CreateWallet(context.Background(), "user-alice")
	require.NoError(t, err)
	_, err = svc.GetWallet(context.Background(), "user-alice", "wallet-missing")
	require.Error(t, err)

	metrics.AssertExpectations(t)
}
