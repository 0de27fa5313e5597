package lookup

import (
	"context"
	"fmt"

	"github.com/pisquared/dashboard_service/internal/domain/entities"
	apperrors "github.com/pisquared/dashboard_service/pkg/errors"
	"github.com/pisquared/dashboard_service/pkg/logger"
)

// MarketData is the provider surface the lookup needs.
type MarketData interface {
	History(ctx context.Context, symbol string, period entities.Period) (*entities.PriceSeries, error)
	Snapshot(ctx context.Context, symbol string) (*entities.Snapshot, error)
}

// Overview is the single-asset view: descriptive snapshot plus the price
// history for the requested window.
type Overview struct {
	Snapshot *entities.Snapshot    `json:"snapshot"`
	History  *entities.PriceSeries `json:"history"`
	Period   entities.Period       `json:"period"`
}

// Service fetches and assembles the single-asset overview.
type Service struct {
	provider MarketData
	logger   *logger.Logger
}

func NewService(provider MarketData, log *logger.Logger) *Service {
	return &Service{provider: provider, logger: log}
}

// Overview fetches history and the descriptive snapshot for one symbol.
// A symbol whose history comes back empty is reported as unavailable; a
// missing snapshot after a non-empty history degrades to symbol-only
// descriptive fields rather than failing the whole lookup.
func (s *Service) Overview(ctx context.Context, symbol string, period entities.Period) (*Overview, error) {
	series, err := s.provider.History(ctx, symbol, period)
	if err != nil {
		return nil, err
	}
	if series.Empty() {
		return nil, apperrors.DataUnavailable(symbol)
	}

	snap, err := s.provider.Snapshot(ctx, symbol)
	if err != nil {
		if !apperrors.IsCode(err, apperrors.ErrCodeDataUnavailable) {
			return nil, err
		}
		s.logger.CtxWarn(ctx, "snapshot unavailable, serving history only", "symbol", symbol)
		snap = &entities.Snapshot{Symbol: symbol}
	}

	return &Overview{
		Snapshot: snap,
		History:  series,
		Period:   period,
	}, nil
}

// History fetches the bare price series for one symbol, for chart rendering.
func (s *Service) History(ctx context.Context, symbol string, period entities.Period) (*entities.PriceSeries, error) {
	series, err := s.provider.History(ctx, symbol, period)
	if err != nil {
		return nil, err
	}
	if series.Empty() {
		return nil, apperrors.DataUnavailable(symbol)
	}
	return series, nil
}

// FormatMarketCap renders a raw capitalization into the trillion, billion or
// million bucket; anything below a million is printed as-is.
func FormatMarketCap(cap *float64) string {
	if cap == nil {
		return "N/A"
	}
	v := *cap
	switch {
	case v >= 1e12:
		return fmt.Sprintf("%.2f T", v/1e12)
	case v >= 1e9:
		return fmt.Sprintf("%.2f B", v/1e9)
	case v >= 1e6:
		return fmt.Sprintf("%.2f M", v/1e6)
	default:
		return fmt.Sprintf("%.2f", v)
	}
}
