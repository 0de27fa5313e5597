package di

import (
	"fmt"

	"github.com/pisquared/dashboard_service/internal/adapters/yahoo"
	"github.com/pisquared/dashboard_service/internal/domain/entities"
	"github.com/pisquared/dashboard_service/internal/domain/services/builder"
	"github.com/pisquared/dashboard_service/internal/domain/services/charts"
	"github.com/pisquared/dashboard_service/internal/domain/services/lookup"
	"github.com/pisquared/dashboard_service/internal/domain/services/portfolio"
	"github.com/pisquared/dashboard_service/internal/domain/services/reference"
	"github.com/pisquared/dashboard_service/internal/domain/services/session"
	"github.com/pisquared/dashboard_service/internal/domain/services/wishlist"
	"github.com/pisquared/dashboard_service/internal/infrastructure/config"
	"github.com/pisquared/dashboard_service/pkg/logger"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config
	Logger *logger.Logger

	// External services
	MarketData *yahoo.Client

	// Domain services
	Reference *reference.Service
	Sessions  *session.Store
	Wishlist  *wishlist.Service
	Builder   *builder.Service
	Portfolio *portfolio.Service
	Lookup    *lookup.Service
	Renderer  *charts.Renderer
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *config.Config, log *logger.Logger) (*Container, error) {
	ref, err := reference.Load(cfg.Reference.CSVPath, log)
	if err != nil {
		return nil, fmt.Errorf("loading reference table: %w", err)
	}

	lookback, err := entities.ParsePeriod(cfg.Portfolio.DefaultLookback)
	if err != nil {
		return nil, fmt.Errorf("invalid portfolio.default_lookback: %w", err)
	}

	marketData := yahoo.NewClient(cfg.MarketData, log)

	validator := portfolio.NewValidator(marketData, cfg.Portfolio.WeightTolerance, log)
	engine := portfolio.NewEngine(marketData, cfg.Portfolio.RiskFreeRate, cfg.Portfolio.TradingDays, log)

	return &Container{
		Config:     cfg,
		Logger:     log,
		MarketData: marketData,
		Reference:  ref,
		Sessions:   session.NewStore(cfg.Session, log),
		Wishlist:   wishlist.NewService(log),
		Builder:    builder.NewService(log),
		Portfolio:  portfolio.NewService(validator, engine, lookback, log),
		Lookup:     lookup.NewService(marketData, log),
		Renderer:   charts.NewRenderer(),
	}, nil
}
