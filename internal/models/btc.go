package models

const (
	// SatoshiInBTC is the number of satoshis in one bitcoin.
	SatoshiInBTC int64 = 100_000_000

	// InitialWalletValueSatoshis is credited to every freshly created wallet (1 BTC).
	InitialWalletValueSatoshis int64 = 100_000_000

	// MaxWalletsPerPerson bounds how many wallets one API key may open.
	MaxWalletsPerPerson = 3
)
