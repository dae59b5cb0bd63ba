// Package currency prices satoshi amounts in fiat currencies.
package currency

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"btcwallet/internal/config"
	"btcwallet/internal/models"

	"github.com/shopspring/decimal"
)

// ErrUnsupportedCurrency is returned for currencies a converter has no rate for.
var ErrUnsupportedCurrency = errors.New("unsupported currency")

// FiatCurrency is an ISO 4217 code.
type FiatCurrency string

const (
	GEL FiatCurrency = "GEL"
	USD FiatCurrency = "USD"
	EUR FiatCurrency = "EUR"
	RUB FiatCurrency = "RUB"
)

// ParseFiatCurrency accepts any letter case.
func ParseFiatCurrency(s string) (FiatCurrency, error) {
	switch c := FiatCurrency(strings.ToUpper(strings.TrimSpace(s))); c {
	case GEL, USD, EUR, RUB:
		return c, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedCurrency, s)
	}
}

// Converter turns a satoshi amount into its value in a fiat currency.
type Converter interface {
	ConvertBTCToFiat(ctx context.Context, satoshis int64, currency FiatCurrency) (float64, error)
}

// ConverterFunc adapts a function to the Converter interface.
type ConverterFunc func(ctx context.Context, satoshis int64, currency FiatCurrency) (float64, error)

func (f ConverterFunc) ConvertBTCToFiat(ctx context.Context, satoshis int64, currency FiatCurrency) (float64, error) {
	return f(ctx, satoshis, currency)
}

var satoshiInBTC = decimal.NewFromInt(models.SatoshiInBTC)

// SatoshiToBTC converts exactly; use InexactFloat64 for presentation.
func SatoshiToBTC(satoshis int64) decimal.Decimal {
	return decimal.NewFromInt(satoshis).Div(satoshiInBTC)
}

// NewConverter builds the converter selected by cfg.Kind.
func NewConverter(cfg config.ConverterConfig) (Converter, error) {
	switch cfg.Kind {
	case "", "ticker":
		return NewTickerConverter(cfg.TickerURL, cfg.TickerTTL, cfg.Timeout), nil
	case "fixed":
		return NewFixedRateConverter(DefaultFixedRates), nil
	case "random":
		return NewRandomConverter(), nil
	default:
		return nil, fmt.Errorf("unknown converter %q", cfg.Kind)
	}
}
