package entities

import (
	"fmt"
	"time"
)

// Period is a named lookback window, expressed as the provider's range code.
type Period string

const (
	Period1Month  Period = "1mo"
	Period3Months Period = "3mo"
	Period6Months Period = "6mo"
	Period1Year   Period = "1y"
	Period2Years  Period = "2y"
	Period5Years  Period = "5y"
	PeriodMax     Period = "max"
)

// ParsePeriod validates a period string; empty input falls back to one year.
func ParsePeriod(s string) (Period, error) {
	if s == "" {
		return Period1Year, nil
	}
	switch p := Period(s); p {
	case Period1Month, Period3Months, Period6Months, Period1Year, Period2Years, Period5Years, PeriodMax:
		return p, nil
	default:
		return "", fmt.Errorf("unknown period %q", s)
	}
}

// PriceBar is one daily OHLC bar with the dividend/split adjusted close
type PriceBar struct {
	Date     time.Time `json:"date"`
	Open     float64   `json:"open"`
	High     float64   `json:"high"`
	Low      float64   `json:"low"`
	Close    float64   `json:"close"`
	AdjClose float64   `json:"adj_close"`
}

// PriceSeries is the date-ordered price history of one symbol
type PriceSeries struct {
	Symbol string     `json:"symbol"`
	Bars   []PriceBar `json:"bars"`
}

func (s *PriceSeries) Empty() bool {
	return s == nil || len(s.Bars) == 0
}

// Snapshot is the descriptive-fields view of one symbol. Every field is
// optional: absence means the provider did not report it, and it is rendered
// as "not available" only at the presentation boundary.
type Snapshot struct {
	Symbol          string   `json:"symbol"`
	LongName        *string  `json:"long_name,omitempty"`
	Sector          *string  `json:"sector,omitempty"`
	Industry        *string  `json:"industry,omitempty"`
	MarketCap       *float64 `json:"market_cap,omitempty"`
	TrailingPE      *float64 `json:"trailing_pe,omitempty"`
	DividendYield   *float64 `json:"dividend_yield,omitempty"`
	ReturnOnEquity  *float64 `json:"return_on_equity,omitempty"`
	PEGRatio        *float64 `json:"peg_ratio,omitempty"`
	DebtToEquity    *float64 `json:"debt_to_equity,omitempty"`
	BusinessSummary *string  `json:"business_summary,omitempty"`
}
