package portfolio

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pisquared/dashboard_service/internal/domain/entities"
	apperrors "github.com/pisquared/dashboard_service/pkg/errors"
	"github.com/pisquared/dashboard_service/pkg/logger"
)

type fakeHistory struct {
	series map[string]*entities.PriceSeries
	err    error
}

func (f *fakeHistory) History(_ context.Context, symbol string, _ entities.Period) (*entities.PriceSeries, error) {
	if f.err != nil {
		return nil, f.err
	}
	s, ok := f.series[symbol]
	if !ok {
		return nil, apperrors.DataUnavailable(symbol)
	}
	return s, nil
}

func day(offset int) time.Time {
	return time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC).AddDate(0, 0, offset)
}

func seriesOf(symbol string, prices map[int]float64, days ...int) *entities.PriceSeries {
	s := &entities.PriceSeries{Symbol: symbol}
	for _, d := range days {
		s.Bars = append(s.Bars, entities.PriceBar{Date: day(d), AdjClose: prices[d]})
	}
	return s
}

func holding(ticker string, weight int64) entities.ValidatedHolding {
	return entities.ValidatedHolding{Ticker: ticker, Weight: decimal.NewFromInt(weight)}
}

func newTestEngine(source HistorySource) *Engine {
	return NewEngine(source, 0.02, 252, logger.NewNop())
}

func TestComputeSingleHolding(t *testing.T) {
	// Daily returns +1%, -2%, +3%
	source := &fakeHistory{series: map[string]*entities.PriceSeries{
		"AAPL": seriesOf("AAPL", map[int]float64{0: 100, 1: 101, 2: 98.98, 3: 101.9494}, 0, 1, 2, 3),
	}}
	engine := newTestEngine(source)

	p := &entities.ValidatedPortfolio{Holdings: []entities.ValidatedHolding{holding("AAPL", 100)}}
	m, err := engine.Compute(context.Background(), p, entities.Period1Year)
	require.NoError(t, err)

	require.Len(t, m.DailyReturns, 3)
	assert.InDelta(t, 0.01, m.DailyReturns[0].Value, 1e-9)
	assert.InDelta(t, -0.02, m.DailyReturns[1].Value, 1e-9)
	assert.InDelta(t, 0.03, m.DailyReturns[2].Value, 1e-9)

	require.Len(t, m.Cumulative, 4)
	assert.Equal(t, day(0), m.Cumulative[0].Date)
	assert.InDelta(t, 1.0, m.Cumulative[0].Value, 1e-12)
	assert.InDelta(t, 1.01, m.Cumulative[1].Value, 1e-9)
	assert.InDelta(t, 0.9898, m.Cumulative[2].Value, 1e-9)
	assert.InDelta(t, 1.0194940, m.Cumulative[3].Value, 1e-6)

	mean := (0.01 - 0.02 + 0.03) / 3
	assert.InDelta(t, mean*252, m.ExpectedReturn, 1e-9)
	assert.Greater(t, m.Volatility, 0.0)

	require.NotNil(t, m.SharpeRatio)
	assert.InDelta(t, (m.ExpectedReturn-0.02)/m.Volatility, *m.SharpeRatio, 1e-9)
	assert.Equal(t, entities.Period1Year, m.Lookback)
}

func TestComputeWeightedReturns(t *testing.T) {
	source := &fakeHistory{series: map[string]*entities.PriceSeries{
		"AAPL": seriesOf("AAPL", map[int]float64{0: 100, 1: 102}, 0, 1), // +2%
		"MSFT": seriesOf("MSFT", map[int]float64{0: 200, 1: 208}, 0, 1), // +4%
	}}
	engine := newTestEngine(source)

	p := &entities.ValidatedPortfolio{Holdings: []entities.ValidatedHolding{
		holding("AAPL", 50),
		holding("MSFT", 50),
	}}
	m, err := engine.Compute(context.Background(), p, entities.Period1Year)
	require.NoError(t, err)

	require.Len(t, m.DailyReturns, 1)
	assert.InDelta(t, 0.03, m.DailyReturns[0].Value, 1e-9)
}

func TestComputeAlignsOnCommonDates(t *testing.T) {
	// MSFT is missing day 1 (exchange holiday); that day must be dropped for
	// both tickers, so AAPL's return spans day 0 to day 2 directly.
	source := &fakeHistory{series: map[string]*entities.PriceSeries{
		"AAPL": seriesOf("AAPL", map[int]float64{0: 100, 1: 110, 2: 121}, 0, 1, 2),
		"MSFT": seriesOf("MSFT", map[int]float64{0: 200, 2: 200}, 0, 2),
	}}
	engine := newTestEngine(source)

	p := &entities.ValidatedPortfolio{Holdings: []entities.ValidatedHolding{
		holding("AAPL", 50),
		holding("MSFT", 50),
	}}
	m, err := engine.Compute(context.Background(), p, entities.Period1Year)
	require.NoError(t, err)

	require.Len(t, m.DailyReturns, 1)
	// 0.5 * 21% + 0.5 * 0%
	assert.InDelta(t, 0.105, m.DailyReturns[0].Value, 1e-9)
	assert.Equal(t, day(2), m.DailyReturns[0].Date)
}

func TestComputeZeroVolatilityLeavesSharpeUnset(t *testing.T) {
	source := &fakeHistory{series: map[string]*entities.PriceSeries{
		"AAPL": seriesOf("AAPL", map[int]float64{0: 100, 1: 100, 2: 100}, 0, 1, 2),
	}}
	engine := newTestEngine(source)

	p := &entities.ValidatedPortfolio{Holdings: []entities.ValidatedHolding{holding("AAPL", 100)}}
	m, err := engine.Compute(context.Background(), p, entities.Period1Year)
	require.NoError(t, err)

	assert.Zero(t, m.Volatility)
	assert.Zero(t, m.ExpectedReturn)
	assert.Nil(t, m.SharpeRatio)
}

func TestComputeInsufficientOverlap(t *testing.T) {
	source := &fakeHistory{series: map[string]*entities.PriceSeries{
		"AAPL": seriesOf("AAPL", map[int]float64{0: 100, 1: 101}, 0, 1),
		"MSFT": seriesOf("MSFT", map[int]float64{1: 200, 2: 201}, 1, 2),
	}}
	engine := newTestEngine(source)

	p := &entities.ValidatedPortfolio{Holdings: []entities.ValidatedHolding{
		holding("AAPL", 50),
		holding("MSFT", 50),
	}}
	_, err := engine.Compute(context.Background(), p, entities.Period1Year)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeDataUnavailable))
}

func TestComputeFetchFailureAborts(t *testing.T) {
	source := &fakeHistory{series: map[string]*entities.PriceSeries{
		"AAPL": seriesOf("AAPL", map[int]float64{0: 100, 1: 101}, 0, 1),
	}}
	engine := newTestEngine(source)

	p := &entities.ValidatedPortfolio{Holdings: []entities.ValidatedHolding{
		holding("AAPL", 50),
		holding("ZZZZ", 50),
	}}
	_, err := engine.Compute(context.Background(), p, entities.Period1Year)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeDataUnavailable))
}
