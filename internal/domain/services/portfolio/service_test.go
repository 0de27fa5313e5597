package portfolio

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pisquared/dashboard_service/internal/domain/entities"
	apperrors "github.com/pisquared/dashboard_service/pkg/errors"
	"github.com/pisquared/dashboard_service/pkg/logger"
)

func newTestService(resolver NameResolver, source HistorySource) *Service {
	log := logger.NewNop()
	return NewService(
		NewValidator(resolver, 1e-6, log),
		NewEngine(source, 0.02, 252, log),
		entities.Period1Year,
		log,
	)
}

func TestServiceValidate(t *testing.T) {
	resolver := &fakeResolver{names: map[string]string{"AAPL": "Apple Inc."}}
	source := &fakeHistory{series: map[string]*entities.PriceSeries{
		"AAPL": seriesOf("AAPL", map[int]float64{0: 100, 1: 101, 2: 103}, 0, 1, 2),
	}}
	svc := newTestService(resolver, source)

	res, err := svc.Validate(context.Background(), []entities.DraftRow{row("AAPL", 100)}, "")
	require.NoError(t, err)

	require.Len(t, res.Portfolio.Holdings, 1)
	require.NotNil(t, res.Stats)
	require.NotNil(t, res.Metrics)
	assert.Empty(t, res.Notices)
}

func TestServiceValidateLookbackOverride(t *testing.T) {
	resolver := &fakeResolver{names: map[string]string{"AAPL": "Apple Inc."}}
	source := &fakeHistory{series: map[string]*entities.PriceSeries{
		"AAPL": seriesOf("AAPL", map[int]float64{0: 100, 1: 101, 2: 103}, 0, 1, 2),
	}}
	svc := newTestService(resolver, source)

	res, err := svc.Validate(context.Background(), []entities.DraftRow{row("AAPL", 100)}, entities.Period3Months)
	require.NoError(t, err)
	assert.Equal(t, entities.Period3Months, res.Metrics.Lookback)

	res, err = svc.Validate(context.Background(), []entities.DraftRow{row("AAPL", 100)}, "")
	require.NoError(t, err)
	assert.Equal(t, entities.Period1Year, res.Metrics.Lookback)
}

func TestServiceValidateReportsNormalization(t *testing.T) {
	resolver := &fakeResolver{names: map[string]string{"AAPL": "Apple Inc."}}
	source := &fakeHistory{series: map[string]*entities.PriceSeries{
		"AAPL": seriesOf("AAPL", map[int]float64{0: 100, 1: 101, 2: 103}, 0, 1, 2),
	}}
	svc := newTestService(resolver, source)

	res, err := svc.Validate(context.Background(), []entities.DraftRow{row("AAPL", 40)}, "")
	require.NoError(t, err)

	assert.True(t, res.Portfolio.Normalized)
	require.Len(t, res.Notices, 1)
	assert.Equal(t, "info", res.Notices[0].Level)
}

func TestServiceValidationFailurePropagates(t *testing.T) {
	svc := newTestService(&fakeResolver{}, &fakeHistory{})

	_, err := svc.Validate(context.Background(), []entities.DraftRow{
		row("AAPL", 50),
		row("AAPL", 50),
	}, "")
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeDuplicateTickers))
}

func TestServiceMetricFailurePropagates(t *testing.T) {
	resolver := &fakeResolver{names: map[string]string{"AAPL": "Apple Inc."}}
	svc := newTestService(resolver, &fakeHistory{})

	_, err := svc.Validate(context.Background(), []entities.DraftRow{row("AAPL", 100)}, "")
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeDataUnavailable))
}
