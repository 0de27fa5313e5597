package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"

	"github.com/pisquared/dashboard_service/internal/domain/entities"
	"github.com/pisquared/dashboard_service/internal/infrastructure/config"
	"github.com/pisquared/dashboard_service/pkg/circuitbreaker"
	apperrors "github.com/pisquared/dashboard_service/pkg/errors"
	"github.com/pisquared/dashboard_service/pkg/logger"
	"github.com/pisquared/dashboard_service/pkg/metrics"
)

const quoteSummaryModules = "price,assetProfile,summaryDetail,defaultKeyStatistics,financialData"

// Client fetches daily price history and descriptive snapshots from the
// Yahoo Finance JSON API. All calls go through one circuit breaker since
// every request hits the same upstream.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	breaker    *gobreaker.CircuitBreaker
	logger     *logger.Logger
}

// NewClient creates a market data client from config
func NewClient(cfg config.MarketDataConfig, log *logger.Logger) *Client {
	breakerCfg := circuitbreaker.DefaultConfig()
	if cfg.BreakerInterval > 0 {
		breakerCfg.Interval = time.Duration(cfg.BreakerInterval) * time.Second
	}
	if cfg.BreakerOpenTime > 0 {
		breakerCfg.Timeout = time.Duration(cfg.BreakerOpenTime) * time.Second
	}
	breakerCfg.OnStateChange = func(name string, from, to gobreaker.State) {
		log.Warnw("Market data breaker state change",
			"breaker", name, "from", from.String(), "to", to.String())
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
		baseURL:   cfg.BaseURL,
		userAgent: cfg.UserAgent,
		breaker:   circuitbreaker.New("yahoo", breakerCfg),
		logger:    log,
	}
}

// BreakerState reports the upstream circuit breaker state, for health checks
func (c *Client) BreakerState() gobreaker.State {
	return c.breaker.State()
}

// History fetches the daily OHLC + adjusted close series for a symbol over
// the given period. An empty result is a DATA_UNAVAILABLE error, not a nil
// series.
func (c *Client) History(ctx context.Context, symbol string, period entities.Period) (*entities.PriceSeries, error) {
	endpoint := fmt.Sprintf("%s/v8/finance/chart/%s?range=%s&interval=1d&events=div%%2Csplit",
		c.baseURL, url.PathEscape(symbol), period)

	var decoded chartResponse
	if err := c.getJSON(ctx, "history", endpoint, &decoded); err != nil {
		return nil, err
	}
	if decoded.Chart.Error != nil {
		return nil, apperrors.DataUnavailable(symbol).
			AddDetail("provider_code", decoded.Chart.Error.Code)
	}
	if len(decoded.Chart.Result) == 0 || len(decoded.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, apperrors.DataUnavailable(symbol)
	}

	result := decoded.Chart.Result[0]
	quote := result.Indicators.Quote[0]

	var adj []*float64
	if len(result.Indicators.AdjClose) > 0 {
		adj = result.Indicators.AdjClose[0].AdjClose
	}

	series := &entities.PriceSeries{Symbol: symbol}
	for i, ts := range result.Timestamp {
		bar, ok := barAt(quote.Open, quote.High, quote.Low, quote.Close, adj, i)
		if !ok {
			// Days with missing quotes (halts, partial sessions) are skipped
			continue
		}
		bar.Date = time.Unix(ts, 0).UTC()
		series.Bars = append(series.Bars, bar)
	}

	if series.Empty() {
		return nil, apperrors.DataUnavailable(symbol)
	}
	return series, nil
}

// Snapshot fetches the descriptive fields for a symbol. Missing modules and
// missing fields stay nil; only a missing long name makes a symbol
// unresolvable, and that call is the validator's concern.
func (c *Client) Snapshot(ctx context.Context, symbol string) (*entities.Snapshot, error) {
	endpoint := fmt.Sprintf("%s/v10/finance/quoteSummary/%s?modules=%s",
		c.baseURL, url.PathEscape(symbol), quoteSummaryModules)

	var decoded quoteSummaryResponse
	if err := c.getJSON(ctx, "snapshot", endpoint, &decoded); err != nil {
		return nil, err
	}
	if decoded.QuoteSummary.Error != nil || len(decoded.QuoteSummary.Result) == 0 {
		return nil, apperrors.DataUnavailable(symbol)
	}

	result := decoded.QuoteSummary.Result[0]
	snap := &entities.Snapshot{Symbol: symbol}

	if result.Price != nil {
		snap.LongName = result.Price.LongName
		snap.MarketCap = result.Price.MarketCap.value()
	}
	if result.AssetProfile != nil {
		snap.Sector = result.AssetProfile.Sector
		snap.Industry = result.AssetProfile.Industry
		snap.BusinessSummary = result.AssetProfile.LongBusinessSummary
	}
	if result.SummaryDetail != nil {
		snap.TrailingPE = result.SummaryDetail.TrailingPE.value()
		snap.DividendYield = result.SummaryDetail.DividendYield.value()
	}
	if result.DefaultKeyStatistics != nil {
		snap.PEGRatio = result.DefaultKeyStatistics.PEGRatio.value()
	}
	if result.FinancialData != nil {
		snap.ReturnOnEquity = result.FinancialData.ReturnOnEquity.value()
		snap.DebtToEquity = result.FinancialData.DebtToEquity.value()
	}

	return snap, nil
}

// getJSON performs one GET through the circuit breaker and decodes the body
func (c *Client) getJSON(ctx context.Context, operation, endpoint string, out interface{}) error {
	start := time.Now()
	res, err := c.breaker.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", c.userAgent)
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode == http.StatusNotFound {
			// Unknown symbols 404. The upstream is healthy, so this must not
			// count against the breaker; it surfaces as a non-error value.
			return statusNotFound, nil
		}
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
		}
		return nil, json.NewDecoder(resp.Body).Decode(out)
	})
	metrics.MarketDataCallDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.MarketDataCallsTotal.WithLabelValues(operation, "error").Inc()
		c.logger.CtxWarn(ctx, "Market data call failed", "operation", operation, "error", err)
		return apperrors.MarketDataError(err)
	}
	if res == statusNotFound {
		metrics.MarketDataCallsTotal.WithLabelValues(operation, "not_found").Inc()
		return apperrors.New(apperrors.ErrCodeDataUnavailable, "symbol not known to provider")
	}

	metrics.MarketDataCallsTotal.WithLabelValues(operation, "ok").Inc()
	return nil
}

type sentinel int

const statusNotFound sentinel = iota

func barAt(open, high, low, close, adj []*float64, i int) (entities.PriceBar, bool) {
	deref := func(vals []*float64) (float64, bool) {
		if i >= len(vals) || vals[i] == nil {
			return 0, false
		}
		return *vals[i], true
	}

	var bar entities.PriceBar
	var ok bool
	if bar.Open, ok = deref(open); !ok {
		return bar, false
	}
	if bar.High, ok = deref(high); !ok {
		return bar, false
	}
	if bar.Low, ok = deref(low); !ok {
		return bar, false
	}
	if bar.Close, ok = deref(close); !ok {
		return bar, false
	}
	// The adjclose block is occasionally absent; fall back to the raw close
	if adj == nil {
		bar.AdjClose = bar.Close
		return bar, true
	}
	if bar.AdjClose, ok = deref(adj); !ok {
		bar.AdjClose = bar.Close
	}
	return bar, true
}
