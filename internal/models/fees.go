package models

// Transfer fee rates, in percent of the transferred amount.
const (
	InnerTransferFeePercent = 0.0 // both wallets share an owner
	OuterTransferFeePercent = 1.5 // wallets of different owners
)
