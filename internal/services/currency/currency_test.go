package currency

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"btcwallet/internal/config"
	"btcwallet/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tickerBody = `{
  "USD": {"15m": 60100.5, "last": 60000, "buy": 60000, "sell": 60000, "symbol": "$"},
  "EUR": {"15m": 55000, "last": 55000.25, "buy": 55000, "sell": 55000, "symbol": "€"},
  "RUB": {"15m": 5500000, "last": 5500000, "buy": 5500000, "sell": 5500000, "symbol": "RUB"}
}`

func newTickerServer(t *testing.T, status int, body string) (*httptest.Server, *int32) {
	t.Helper()
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func TestTickerConverter_Convert(t *testing.T) {
	srv, hits := newTickerServer(t, http.StatusOK, tickerBody)
	c := NewTickerConverter(srv.URL, time.Minute, time.Second)
	ctx := context.Background()

	usd, err := c.ConvertBTCToFiat(ctx, models.SatoshiInBTC, USD)
	require.NoError(t, err)
	assert.InDelta(t, 60000.0, usd, 1e-9)

	eur, err := c.ConvertBTCToFiat(ctx, models.SatoshiInBTC/2, EUR)
	require.NoError(t, err)
	assert.InDelta(t, 27500.125, eur, 1e-9)

	// both conversions share one ticker download
	assert.Equal(t, int32(1), atomic.LoadInt32(hits))
}

func TestTickerConverter_RefetchesAfterTTL(t *testing.T) {
	srv, hits := newTickerServer(t, http.StatusOK, tickerBody)
	c := NewTickerConverter(srv.URL, time.Minute, time.Second)
	now := time.Now()
	c.now = func() time.Time { return now }

	_, err := c.ConvertBTCToFiat(context.Background(), 1, USD)
	require.NoError(t, err)

	now = now.Add(2 * time.Minute)
	_, err = c.ConvertBTCToFiat(context.Background(), 1, USD)
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(hits))
}

func TestTickerConverter_Unsupported(t *testing.T) {
	srv, hits := newTickerServer(t, http.StatusOK, tickerBody)
	c := NewTickerConverter(srv.URL, time.Minute, time.Second)

	_, err := c.ConvertBTCToFiat(context.Background(), 1, GEL)
	assert.ErrorIs(t, err, ErrUnsupportedCurrency)
	assert.Equal(t, int32(0), atomic.LoadInt32(hits))
}

func TestTickerConverter_Failures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"server error", http.StatusInternalServerError, "oops"},
		{"invalid json", http.StatusOK, "not json"},
		{"missing rate", http.StatusOK, `{"EUR": {"last": 1}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := newTickerServer(t, tt.status, tt.body)
			c := NewTickerConverter(srv.URL, time.Minute, time.Second)

			_, err := c.ConvertBTCToFiat(context.Background(), 1, USD)
			assert.Error(t, err)
		})
	}
}

func TestFixedRateConverter(t *testing.T) {
	c := NewFixedRateConverter(map[FiatCurrency]float64{USD: 100})

	v, err := c.ConvertBTCToFiat(context.Background(), 150_000_000, USD)
	require.NoError(t, err)
	assert.InDelta(t, 150.0, v, 1e-9)

	_, err = c.ConvertBTCToFiat(context.Background(), 1, GEL)
	assert.ErrorIs(t, err, ErrUnsupportedCurrency)
}

func TestRandomConverter(t *testing.T) {
	v, err := NewRandomConverter().ConvertBTCToFiat(context.Background(), 1, GEL)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, v, 0.0)
	assert.Less(t, v, 1.0)
}

func TestParseFiatCurrency(t *testing.T) {
	c, err := ParseFiatCurrency(" usd ")
	require.NoError(t, err)
	assert.Equal(t, USD, c)

	_, err = ParseFiatCurrency("JPY")
	assert.ErrorIs(t, err, ErrUnsupportedCurrency)
}

func TestSatoshiToBTC(t *testing.T) {
	assert.Equal(t, "0.99998985", SatoshiToBTC(99_998_985).String())
	assert.Equal(t, 1.0, SatoshiToBTC(models.SatoshiInBTC).InexactFloat64())
}

func TestNewConverter(t *testing.T) {
	for kind, want := range map[string]interface{}{
		"ticker": &TickerConverter{},
		"fixed":  &FixedRateConverter{},
		"random": &RandomConverter{},
	} {
		c, err := NewConverter(config.ConverterConfig{Kind: kind})
		require.NoError(t, err, kind)
		assert.IsType(t, want, c)
	}

	_, err := NewConverter(config.ConverterConfig{Kind: "oracle"})
	assert.Error(t, err)
}
