package lookup

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pisquared/dashboard_service/internal/domain/entities"
	apperrors "github.com/pisquared/dashboard_service/pkg/errors"
	"github.com/pisquared/dashboard_service/pkg/logger"
)

type fakeProvider struct {
	history   map[string]*entities.PriceSeries
	snapshots map[string]*entities.Snapshot
	err       error
}

func (f *fakeProvider) History(_ context.Context, symbol string, _ entities.Period) (*entities.PriceSeries, error) {
	if f.err != nil {
		return nil, f.err
	}
	if s, ok := f.history[symbol]; ok {
		return s, nil
	}
	return nil, apperrors.DataUnavailable(symbol)
}

func (f *fakeProvider) Snapshot(_ context.Context, symbol string) (*entities.Snapshot, error) {
	if s, ok := f.snapshots[symbol]; ok {
		return s, nil
	}
	return nil, apperrors.DataUnavailable(symbol)
}

func aaplSeries() *entities.PriceSeries {
	return &entities.PriceSeries{
		Symbol: "AAPL",
		Bars: []entities.PriceBar{
			{Date: time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC), AdjClose: 100},
			{Date: time.Date(2025, 1, 7, 0, 0, 0, 0, time.UTC), AdjClose: 101},
		},
	}
}

func TestOverview(t *testing.T) {
	name := "Apple Inc."
	provider := &fakeProvider{
		history:   map[string]*entities.PriceSeries{"AAPL": aaplSeries()},
		snapshots: map[string]*entities.Snapshot{"AAPL": {Symbol: "AAPL", LongName: &name}},
	}
	svc := NewService(provider, logger.NewNop())

	overview, err := svc.Overview(context.Background(), "AAPL", entities.Period1Year)
	require.NoError(t, err)
	assert.Equal(t, "Apple Inc.", *overview.Snapshot.LongName)
	assert.Len(t, overview.History.Bars, 2)
	assert.Equal(t, entities.Period1Year, overview.Period)
}

func TestOverviewUnknownSymbol(t *testing.T) {
	svc := NewService(&fakeProvider{}, logger.NewNop())

	_, err := svc.Overview(context.Background(), "ZZZZ", entities.Period1Year)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeDataUnavailable))
}

func TestOverviewDegradesWithoutSnapshot(t *testing.T) {
	provider := &fakeProvider{
		history: map[string]*entities.PriceSeries{"AAPL": aaplSeries()},
	}
	svc := NewService(provider, logger.NewNop())

	overview, err := svc.Overview(context.Background(), "AAPL", entities.Period1Year)
	require.NoError(t, err)
	assert.Equal(t, "AAPL", overview.Snapshot.Symbol)
	assert.Nil(t, overview.Snapshot.LongName)
}

func TestFormatMarketCap(t *testing.T) {
	cases := []struct {
		name  string
		value float64
		want  string
	}{
		{"trillions", 3.21e12, "3.21 T"},
		{"billions", 4.5e9, "4.50 B"},
		{"millions", 7.25e6, "7.25 M"},
		{"small", 123456, "123456.00"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v := tc.value
			assert.Equal(t, tc.want, FormatMarketCap(&v))
		})
	}
}

func TestFormatMarketCapMissing(t *testing.T) {
	assert.Equal(t, "N/A", FormatMarketCap(nil))
}
