package charts

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pisquared/dashboard_service/internal/domain/entities"
	apperrors "github.com/pisquared/dashboard_service/pkg/errors"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func testSeries() *entities.PriceSeries {
	base := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)
	return &entities.PriceSeries{
		Symbol: "AAPL",
		Bars: []entities.PriceBar{
			{Date: base, AdjClose: 100},
			{Date: base.AddDate(0, 0, 1), AdjClose: 101},
			{Date: base.AddDate(0, 0, 2), AdjClose: 99.5},
		},
	}
}

func TestPriceLine(t *testing.T) {
	r := NewRenderer()

	buf, err := r.PriceLine(testSeries(), entities.Period1Year)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(buf, pngMagic))
}

func TestPriceLineEmptySeries(t *testing.T) {
	r := NewRenderer()

	_, err := r.PriceLine(&entities.PriceSeries{Symbol: "AAPL"}, entities.Period1Year)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeDataUnavailable))
}

func TestPerformance(t *testing.T) {
	r := NewRenderer()
	base := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)

	m := &entities.PortfolioMetrics{
		Cumulative: []entities.SeriesPoint{
			{Date: base, Value: 1.0},
			{Date: base.AddDate(0, 0, 1), Value: 1.01},
			{Date: base.AddDate(0, 0, 2), Value: 0.9898},
		},
		Lookback: entities.Period1Year,
	}
	buf, err := r.Performance(m)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(buf, pngMagic))
}

func TestPerformanceWithoutMetrics(t *testing.T) {
	r := NewRenderer()

	_, err := r.Performance(nil)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeEmptyPortfolio))
}

func TestAllocation(t *testing.T) {
	r := NewRenderer()

	p := &entities.ValidatedPortfolio{Holdings: []entities.ValidatedHolding{
		{Ticker: "AAPL", Weight: decimal.NewFromInt(60)},
		{Ticker: "MSFT", Weight: decimal.NewFromInt(40)},
	}}
	buf, err := r.Allocation(p)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(buf, pngMagic))
}

func TestAllocationWithoutPortfolio(t *testing.T) {
	r := NewRenderer()

	_, err := r.Allocation(nil)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeEmptyPortfolio))
}
