package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"btcwallet/internal/models"
	"btcwallet/internal/utils/cache"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// CacheService is a redis read-through cache for wallets. Failures are logged
// and reported to the caller, which falls back to the database.
type CacheService struct {
	client *redis.Client
	ttl    time.Duration
	log    logrus.FieldLogger
}

func NewCacheService(client *redis.Client, defaultTTL time.Duration, log logrus.FieldLogger) *CacheService {
	if client == nil {
		panic("redis client is required")
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &CacheService{
		client: client,
		ttl:    defaultTTL,
		log:    log.WithField("component", "wallet_cache"),
	}
}

// setIfVersion stores KEYS[1] only while KEYS[2], the invalidation counter,
// still holds the version the caller read before going to the database.
var setIfVersion = redis.NewScript(`
local current = redis.call('GET', KEYS[2]) or '0'
if current ~= ARGV[1] then
	return 0
end
if tonumber(ARGV[3]) > 0 then
	redis.call('SET', KEYS[1], ARGV[2], 'PX', ARGV[3])
else
	redis.call('SET', KEYS[1], ARGV[2])
end
return 1
`)

// GetWallet returns the cached wallet, or nil on a miss, together with the
// address's invalidation version.
func (s *CacheService) GetWallet(ctx context.Context, address string) (*models.Wallet, int64, error) {
	values, err := s.client.MGet(ctx, cache.WalletKey(address), cache.WalletVersionKey(address)).Result()
	if err != nil {
		s.log.WithError(err).WithField("address", address).Warn("cache read failed")
		return nil, 0, fmt.Errorf("failed to get cache value: %w", err)
	}

	version, err := parseVersion(values[1])
	if err != nil {
		return nil, 0, err
	}

	data, ok := values[0].(string)
	if !ok {
		return nil, version, nil
	}
	var wallet models.Wallet
	if err := json.Unmarshal([]byte(data), &wallet); err != nil {
		return nil, version, fmt.Errorf("failed to unmarshal cache value: %w", err)
	}
	return &wallet, version, nil
}

// SetWallet caches wallet unless the address was invalidated after version
// was read. A refused fill is not an error.
func (s *CacheService) SetWallet(ctx context.Context, wallet *models.Wallet, version int64) error {
	if wallet == nil {
		return errors.New("cannot cache nil wallet")
	}
	data, err := json.Marshal(wallet)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value: %w", err)
	}

	keys := []string{cache.WalletKey(wallet.Address), cache.WalletVersionKey(wallet.Address)}
	stored, err := setIfVersion.Run(ctx, s.client, keys,
		strconv.FormatInt(version, 10), data, s.ttl.Milliseconds()).Int()
	if err != nil {
		s.log.WithError(err).WithField("address", wallet.Address).Warn("cache write failed")
		return err
	}
	if stored == 0 {
		s.log.WithField("address", wallet.Address).Debug("stale cache fill skipped")
	}
	return nil
}

// DeleteWallets bumps each address's version and drops its entry in one
// MULTI block, so no fill that started earlier can land afterwards.
func (s *CacheService) DeleteWallets(ctx context.Context, addresses ...string) error {
	if len(addresses) == 0 {
		return nil
	}
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, address := range addresses {
			pipe.Incr(ctx, cache.WalletVersionKey(address))
			pipe.Del(ctx, cache.WalletKey(address))
		}
		return nil
	})
	if err != nil {
		s.log.WithError(err).WithField("addresses", addresses).Error("cache invalidation failed")
		return err
	}
	return nil
}

func parseVersion(v interface{}) (int64, error) {
	raw, ok := v.(string)
	if !ok {
		return 0, nil
	}
	version, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid cache version %q: %w", raw, err)
	}
	return version, nil
}

// HealthCheck pings redis
func (s *CacheService) HealthCheck(ctx context.Context) error {
	return Ping(ctx, s.client)
}

// GetStats exposes the client pool counters
func (s *CacheService) GetStats() *redis.PoolStats {
	return s.client.PoolStats()
}

// Close closes the Redis client connection
func (s *CacheService) Close() error {
	return s.client.Close()
}
