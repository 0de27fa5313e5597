package portfolio

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/pisquared/dashboard_service/internal/domain/entities"
	apperrors "github.com/pisquared/dashboard_service/pkg/errors"
	"github.com/pisquared/dashboard_service/pkg/logger"
)

// HistorySource provides daily adjusted-close history per symbol
type HistorySource interface {
	History(ctx context.Context, symbol string, period entities.Period) (*entities.PriceSeries, error)
}

// Engine computes portfolio performance metrics from a validated portfolio.
// Everything is recomputed from a fresh fetch on every run.
type Engine struct {
	source       HistorySource
	riskFreeRate float64
	tradingDays  float64
	logger       *logger.Logger
}

func NewEngine(source HistorySource, riskFreeRate float64, tradingDays int, log *logger.Logger) *Engine {
	return &Engine{
		source:       source,
		riskFreeRate: riskFreeRate,
		tradingDays:  float64(tradingDays),
		logger:       log,
	}
}

// Compute fetches aligned adjusted-close columns for every holding, derives
// the weighted daily return series and rolls it up into cumulative growth,
// annualized return, annualized volatility and the Sharpe ratio. Any fetch
// failure or empty series aborts the whole computation; there are no partial
// metrics.
func (e *Engine) Compute(ctx context.Context, p *entities.ValidatedPortfolio, period entities.Period) (*entities.PortfolioMetrics, error) {
	columns := make(map[string]map[string]float64, len(p.Holdings))
	var baseDates []string
	dateTimes := make(map[string]time.Time)

	for i, holding := range p.Holdings {
		series, err := e.source.History(ctx, holding.Ticker, period)
		if err != nil {
			return nil, err
		}
		if series.Empty() {
			return nil, apperrors.DataUnavailable(holding.Ticker)
		}

		column := make(map[string]float64, len(series.Bars))
		for _, bar := range series.Bars {
			key := bar.Date.Format("2006-01-02")
			column[key] = bar.AdjClose
			if i == 0 {
				baseDates = append(baseDates, key)
				dateTimes[key] = bar.Date
			}
		}
		columns[holding.Ticker] = column
	}

	// Conservative alignment: keep only days where every ticker has a value.
	// This matches dropping any row with a missing entry after a difference
	// operation over the joined table.
	var dates []string
	for _, key := range baseDates {
		present := true
		for _, column := range columns {
			if _, ok := column[key]; !ok {
				present = false
				break
			}
		}
		if present {
			dates = append(dates, key)
		}
	}
	if len(dates) < 2 {
		return nil, apperrors.New(apperrors.ErrCodeDataUnavailable,
			fmt.Sprintf("insufficient overlapping history: %d aligned days", len(dates)))
	}

	weights := make(map[string]float64, len(p.Holdings))
	for _, holding := range p.Holdings {
		weights[holding.Ticker] = holding.Weight.InexactFloat64() / 100
	}

	returns := make([]entities.SeriesPoint, 0, len(dates)-1)
	for i := 1; i < len(dates); i++ {
		var dayReturn float64
		for ticker, column := range columns {
			prev := column[dates[i-1]]
			if prev == 0 {
				return nil, apperrors.New(apperrors.ErrCodeDataUnavailable,
					fmt.Sprintf("zero price for %s on %s", ticker, dates[i-1]))
			}
			dayReturn += weights[ticker] * (column[dates[i]]/prev - 1)
		}
		returns = append(returns, entities.SeriesPoint{Date: dateTimes[dates[i]], Value: dayReturn})
	}

	// Growth of 1 unit, seeded the day before the first return
	cumulative := make([]entities.SeriesPoint, 0, len(dates))
	cumulative = append(cumulative, entities.SeriesPoint{Date: dateTimes[dates[0]], Value: 1.0})
	growth := 1.0
	for _, r := range returns {
		growth *= 1 + r.Value
		cumulative = append(cumulative, entities.SeriesPoint{Date: r.Date, Value: growth})
	}

	mean := 0.0
	for _, r := range returns {
		mean += r.Value
	}
	mean /= float64(len(returns))

	// Sample standard deviation (N-1)
	variance := 0.0
	for _, r := range returns {
		diff := r.Value - mean
		variance += diff * diff
	}
	if len(returns) > 1 {
		variance /= float64(len(returns) - 1)
	}
	volatility := math.Sqrt(variance) * math.Sqrt(e.tradingDays)

	metrics := &entities.PortfolioMetrics{
		Cumulative:     cumulative,
		DailyReturns:   returns,
		ExpectedReturn: mean * e.tradingDays,
		Volatility:     volatility,
		Lookback:       period,
	}

	// Zero volatility leaves the Sharpe ratio undefined rather than dividing
	if volatility != 0 {
		sharpe := (metrics.ExpectedReturn - e.riskFreeRate) / volatility
		metrics.SharpeRatio = &sharpe
	}

	return metrics, nil
}
