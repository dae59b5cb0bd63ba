package services

import (
	"context"
	"testing"

	apperrors "btcwallet/internal/errors"
	"btcwallet/internal/metrics"
	"btcwallet/internal/repositories/memory"
	"btcwallet/internal/services/admin"
	"btcwallet/internal/services/currency"
	"btcwallet/internal/services/transaction"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCore_EndToEnd(t *testing.T) {
	ctx := context.Background()
	auth, err := admin.NewKeyAuthorizer("admin-secret", "")
	require.NoError(t, err)
	log, _ := test.NewNullLogger()

	core := NewCore(memory.NewStore(), Dependencies{
		Converter:  currency.NewFixedRateConverter(currency.DefaultFixedRates),
		Authorizer: auth,
		Metrics:    metrics.New(),
		Logger:     log,
	})

	alice, err := core.Users.CreateUser(ctx)
	require.NoError(t, err)
	bob, err := core.Users.CreateUser(ctx)
	require.NoError(t, err)
	assert.Regexp(t, `^user-[0-9a-f]{32}$`, alice.APIKey)

	w1, err := core.Wallets.CreateWallet(ctx, alice.APIKey)
	require.NoError(t, err)
	w2, err := core.Wallets.CreateWallet(ctx, bob.APIKey)
	require.NoError(t, err)
	assert.Regexp(t, `^wallet-[0-9a-f]{32}$`, w1.WalletAddress)

	resp, err := core.Transactions.MakeTransaction(ctx, transaction.MakeTransactionRequest{
		APIKey:      alice.APIKey,
		Source:      w1.WalletAddress,
		Destination: w2.WalletAddress,
		Amount:      1000,
	})
	require.NoError(t, err)
	assert.Equal(t, 0.99999, resp.AmountLeftBTC)

	stats, err := core.Admin.GetStatistics(ctx, "admin-secret")
	require.NoError(t, err)
	assert.Equal(t, 1, stats.NumberOfTransactions)
	assert.Equal(t, int64(15), stats.Profit)

	_, err = core.Admin.GetStatistics(ctx, "guess")
	assert.ErrorIs(t, err, apperrors.ErrIncorrectAdminKey)

	report, err := core.Admin.Audit(ctx)
	require.NoError(t, err)
	assert.True(t, report.Balanced())
}
