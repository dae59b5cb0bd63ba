// Package fee computes transfer fees.
package fee

import (
	"btcwallet/internal/models"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Calculator prices a transfer of amount satoshis from source to destination.
type Calculator interface {
	Calculate(source, destination *models.Wallet, amount int64) int64
}

// CalculatorFunc adapts a plain function to Calculator.
type CalculatorFunc func(source, destination *models.Wallet, amount int64) int64

func (f CalculatorFunc) Calculate(source, destination *models.Wallet, amount int64) int64 {
	return f(source, destination, amount)
}

// PercentCalculator charges a percentage of the amount, depending on whether
// both wallets share an owner. Results are rounded half to even.
type PercentCalculator struct {
	inner decimal.Decimal
	outer decimal.Decimal
}

// NewPercentCalculator takes rates in percent, e.g. 1.5 for 1.5%.
func NewPercentCalculator(innerPercent, outerPercent float64) *PercentCalculator {
	return &PercentCalculator{
		inner: decimal.NewFromFloat(innerPercent),
		outer: decimal.NewFromFloat(outerPercent),
	}
}

// NewCalculator uses the ledger's standard rates.
func NewCalculator() *PercentCalculator {
	return NewPercentCalculator(models.InnerTransferFeePercent, models.OuterTransferFeePercent)
}

func (c *PercentCalculator) Calculate(source, destination *models.Wallet, amount int64) int64 {
	rate := c.outer
	if source.OwnerKey == destination.OwnerKey {
		rate = c.inner
	}
	return decimal.NewFromInt(amount).Mul(rate).Div(hundred).RoundBank(0).IntPart()
}

var standard = NewCalculator()

// Calculate applies the standard rates.
func Calculate(source, destination *models.Wallet, amount int64) int64 {
	return standard.Calculate(source, destination, amount)
}
