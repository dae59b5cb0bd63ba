package currency

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// DefaultFixedRates are development prices for one BTC.
var DefaultFixedRates = map[FiatCurrency]float64{
	USD: 60000,
	EUR: 55000,
	RUB: 5500000,
}

// FixedRateConverter uses a constant rate table.
type FixedRateConverter struct {
	rates map[FiatCurrency]decimal.Decimal
}

func NewFixedRateConverter(rates map[FiatCurrency]float64) *FixedRateConverter {
	c := &FixedRateConverter{rates: make(map[FiatCurrency]decimal.Decimal, len(rates))}
	for cur, rate := range rates {
		c.rates[cur] = decimal.NewFromFloat(rate)
	}
	return c
}

func (c *FixedRateConverter) ConvertBTCToFiat(_ context.Context, satoshis int64, currency FiatCurrency) (float64, error) {
	rate, ok := c.rates[currency]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedCurrency, currency)
	}
	return SatoshiToBTC(satoshis).Mul(rate).InexactFloat64(), nil
}

// RandomConverter ignores the amount and answers with a value in [0, 1).
type RandomConverter struct {
	mu   sync.Mutex
	rand *rand.Rand
}

func NewRandomConverter() *RandomConverter {
	return &RandomConverter{rand: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

func (c *RandomConverter) ConvertBTCToFiat(context.Context, int64, FiatCurrency) (float64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rand.Float64(), nil
}
