package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// DraftRow is one editable (ticker, weight) pair of the in-progress
// portfolio. Tickers may be empty or lowercase and weights may be zero while
// the user is still editing; validation enforces the real invariants.
type DraftRow struct {
	Ticker string          `json:"ticker"`
	Weight decimal.Decimal `json:"weight"`
}

// ValidatedHolding is one deduplicated, positively weighted position with its
// resolved company name.
type ValidatedHolding struct {
	Ticker  string          `json:"ticker"`
	Company string          `json:"company"`
	Weight  decimal.Decimal `json:"weight"`
}

// ValidatedPortfolio is rebuilt from scratch by every successful validation
// run. Invariants: tickers unique and uppercase, every weight strictly
// positive, weights sum to 100 within tolerance.
type ValidatedPortfolio struct {
	Holdings    []ValidatedHolding `json:"holdings"`
	Normalized  bool               `json:"normalized"`
	RawSum      decimal.Decimal    `json:"raw_weight_sum"`
	ValidatedAt time.Time          `json:"validated_at"`
}

// Tickers returns the holding symbols in display order
func (p *ValidatedPortfolio) Tickers() []string {
	out := make([]string, len(p.Holdings))
	for i, h := range p.Holdings {
		out[i] = h.Ticker
	}
	return out
}

// WeightStats are the summary tiles shown next to the validated table
type WeightStats struct {
	Total decimal.Decimal `json:"total"`
	Mean  decimal.Decimal `json:"mean"`
	Max   decimal.Decimal `json:"max"`
	Min   decimal.Decimal `json:"min"`
}

// SeriesPoint is one (date, value) observation of a derived series
type SeriesPoint struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// PortfolioMetrics is fully recomputed on each validation; there is no
// incremental update path.
type PortfolioMetrics struct {
	Cumulative     []SeriesPoint `json:"cumulative_series"`
	DailyReturns   []SeriesPoint `json:"daily_returns"`
	ExpectedReturn float64       `json:"expected_return"`
	Volatility     float64       `json:"volatility"`
	// SharpeRatio is nil when volatility is exactly zero
	SharpeRatio *float64 `json:"sharpe_ratio,omitempty"`
	Lookback    Period   `json:"lookback"`
}
