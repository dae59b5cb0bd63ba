package repositories

import (
	"context"
	"sync"
	"testing"

	"btcwallet/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

// recordingCache is an in-memory WalletCache that remembers invalidations
// and follows the same version rule as the redis cache.
type recordingCache struct {
	mu       sync.Mutex
	wallets  map[string]models.Wallet
	versions map[string]int64
	deleted  []string
	sets     int
	refused  int

	// beforeSet runs at the start of SetWallet, outside the lock
	beforeSet func()
}

func newRecordingCache() *recordingCache {
	return &recordingCache{
		wallets:  make(map[string]models.Wallet),
		versions: make(map[string]int64),
	}
}

func (c *recordingCache) GetWallet(_ context.Context, address string) (*models.Wallet, int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	w, ok := c.wallets[address]
	if !ok {
		return nil, c.versions[address], nil
	}
	return &w, c.versions[address], nil
}

func (c *recordingCache) SetWallet(_ context.Context, wallet *models.Wallet, version int64) error {
	if c.beforeSet != nil {
		c.beforeSet()
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.versions[wallet.Address] != version {
		c.refused++
		return nil
	}
	c.wallets[wallet.Address] = *wallet
	c.sets++
	return nil
}

func (c *recordingCache) DeleteWallets(_ context.Context, addresses ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, a := range addresses {
		c.versions[a]++
		delete(c.wallets, a)
		c.deleted = append(c.deleted, a)
	}
	return nil
}
