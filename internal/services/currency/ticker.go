package currency

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tidwall/gjson"
)

const DefaultTickerURL = "https://blockchain.info/ticker"

// tickerCurrencies are the codes read from the ticker; GEL is not among them.
var tickerCurrencies = map[FiatCurrency]bool{
	USD: true,
	EUR: true,
	RUB: true,
}

// TickerConverter prices BTC with the "last" field of the blockchain.info
// ticker. The ticker body is reused for ttl.
type TickerConverter struct {
	url    string
	ttl    time.Duration
	client *http.Client
	now    func() time.Time

	mu        sync.Mutex
	body      []byte
	fetchedAt time.Time
}

func NewTickerConverter(url string, ttl, timeout time.Duration) *TickerConverter {
	if url == "" {
		url = DefaultTickerURL
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &TickerConverter{
		url:    url,
		ttl:    ttl,
		client: &http.Client{Timeout: timeout},
		now:    time.Now,
	}
}

func (c *TickerConverter) ConvertBTCToFiat(ctx context.Context, satoshis int64, currency FiatCurrency) (float64, error) {
	if !tickerCurrencies[currency] {
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedCurrency, currency)
	}

	body, err := c.ticker(ctx)
	if err != nil {
		return 0, err
	}

	last := gjson.GetBytes(body, string(currency)+".last")
	if !last.Exists() || last.Type != gjson.Number {
		return 0, fmt.Errorf("%w: no %s rate in ticker", ErrUnsupportedCurrency, currency)
	}

	rate := SatoshiToBTC(satoshis).Mul(decimalFromResult(last))
	return rate.InexactFloat64(), nil
}

func (c *TickerConverter) ticker(ctx context.Context) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.body != nil && c.ttl > 0 && c.now().Sub(c.fetchedAt) < c.ttl {
		return c.body, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build ticker request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch ticker: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch ticker: unexpected status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read ticker: %w", err)
	}
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("fetch ticker: invalid json")
	}

	c.body = body
	c.fetchedAt = c.now()
	return body, nil
}

// decimalFromResult keeps the exact textual value of a JSON number.
func decimalFromResult(r gjson.Result) decimal.Decimal {
	if d, err := decimal.NewFromString(r.Raw); err == nil {
		return d
	}
	return decimal.NewFromFloat(r.Float())
}
