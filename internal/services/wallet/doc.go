/*
Package wallet opens wallets and reports their balances.

A user may hold at most MaxWalletsPerPerson wallets. Every new wallet is
credited with one bitcoin and its value is quoted in fiat through a
currency.Converter.

Usage:

	svc := wallet.NewService(store, converter, utils.NewWalletAddress, wallet.WalletConfig{}, metrics, log)

	// Open a wallet for an existing user
	resp, err := svc.CreateWallet(ctx, apiKey)

	// Read one of the user's wallets
	resp, err = svc.GetWallet(ctx, apiKey, address)

Error Handling:

The service returns domain errors from internal/errors:
  - ErrUserNotFound: the API key is unknown
  - ErrWalletLimitReached: the user already holds the maximum number of wallets
  - ErrWalletNotFound / ErrNotThisUsersWallet: lookup failures
  - ErrUnsupportedCurrency: the fiat quote could not be obtained
*/
package wallet
