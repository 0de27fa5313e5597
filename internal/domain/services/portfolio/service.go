package portfolio

import (
	"context"

	"github.com/pisquared/dashboard_service/internal/domain/entities"
	"github.com/pisquared/dashboard_service/pkg/logger"
	"github.com/pisquared/dashboard_service/pkg/metrics"
)

// Result bundles everything a successful validation run produces.
type Result struct {
	Portfolio *entities.ValidatedPortfolio
	Stats     *entities.WeightStats
	Metrics   *entities.PortfolioMetrics
	Notices   []entities.Notice
}

// Service runs the full validate-then-measure pipeline over a draft.
type Service struct {
	validator *Validator
	engine    *Engine
	lookback  entities.Period
	logger    *logger.Logger
}

func NewService(validator *Validator, engine *Engine, lookback entities.Period, log *logger.Logger) *Service {
	return &Service{
		validator: validator,
		engine:    engine,
		lookback:  lookback,
		logger:    log,
	}
}

// Validate checks the draft, computes weight stats and risk metrics over the
// lookback window, and returns the whole result. An empty lookback uses the
// configured default. Any failure leaves the session's previously validated
// portfolio untouched; the caller decides what to persist.
func (s *Service) Validate(ctx context.Context, rows []entities.DraftRow, lookback entities.Period) (*Result, error) {
	if lookback == "" {
		lookback = s.lookback
	}

	validated, err := s.validator.Validate(ctx, rows)
	if err != nil {
		metrics.ValidationsTotal.WithLabelValues("failure").Inc()
		return nil, err
	}

	computed, err := s.engine.Compute(ctx, validated, lookback)
	if err != nil {
		metrics.ValidationsTotal.WithLabelValues("failure").Inc()
		return nil, err
	}

	metrics.ValidationsTotal.WithLabelValues("success").Inc()

	res := &Result{
		Portfolio: validated,
		Stats:     Stats(validated),
		Metrics:   computed,
	}
	if validated.Normalized {
		res.Notices = append(res.Notices, *entities.InfoNotice(
			"weights did not sum to 100 and were normalized proportionally"))
	}

	s.logger.Infow("portfolio validated",
		"holdings", len(validated.Holdings),
		"normalized", validated.Normalized,
		"lookback", string(lookback),
	)
	return res, nil
}
