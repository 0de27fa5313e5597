package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pisquared/dashboard_service/internal/api/middleware"
	"github.com/pisquared/dashboard_service/internal/domain/entities"
	"github.com/pisquared/dashboard_service/internal/domain/services/charts"
	"github.com/pisquared/dashboard_service/internal/domain/services/lookup"
	"github.com/pisquared/dashboard_service/internal/domain/services/session"
	"github.com/pisquared/dashboard_service/internal/domain/services/wishlist"
	"github.com/pisquared/dashboard_service/pkg/logger"
)

// StockHandler serves the single-asset lookup page
type StockHandler struct {
	lookup   *lookup.Service
	renderer *charts.Renderer
	sessions *session.Store
	wishlist *wishlist.Service
	logger   *logger.Logger
}

func NewStockHandler(lkp *lookup.Service, renderer *charts.Renderer, sessions *session.Store, wl *wishlist.Service, log *logger.Logger) *StockHandler {
	return &StockHandler{lookup: lkp, renderer: renderer, sessions: sessions, wishlist: wl, logger: log}
}

// StockResponse is the single-asset overview payload. InWishlist drives the
// watch toggle on the lookup page.
type StockResponse struct {
	Snapshot       *entities.Snapshot    `json:"snapshot"`
	MarketCapLabel string                `json:"market_cap_label"`
	History        *entities.PriceSeries `json:"history"`
	Period         entities.Period       `json:"period"`
	InWishlist     bool                  `json:"in_wishlist"`
}

// Get returns the snapshot and price history for one symbol
func (h *StockHandler) Get(c *gin.Context) {
	symbol, period, ok := h.symbolAndPeriod(c)
	if !ok {
		return
	}

	overview, err := h.lookup.Overview(c.Request.Context(), symbol, period)
	if err != nil {
		respondError(c, err)
		return
	}

	inWishlist := false
	if sess, err := h.sessions.Get(middleware.SessionID(c)); err == nil {
		inWishlist = h.wishlist.Contains(sess, symbol)
	}

	c.JSON(http.StatusOK, StockResponse{
		Snapshot:       overview.Snapshot,
		MarketCapLabel: lookup.FormatMarketCap(overview.Snapshot.MarketCap),
		History:        overview.History,
		Period:         overview.Period,
		InWishlist:     inWishlist,
	})
}

// Chart renders the symbol's adjusted close history as a PNG line chart
func (h *StockHandler) Chart(c *gin.Context) {
	symbol, period, ok := h.symbolAndPeriod(c)
	if !ok {
		return
	}

	series, err := h.lookup.History(c.Request.Context(), symbol, period)
	if err != nil {
		respondError(c, err)
		return
	}

	image, err := h.renderer.PriceLine(series, period)
	if err != nil {
		respondError(c, err)
		return
	}
	respondPNG(c, image)
}

func (h *StockHandler) symbolAndPeriod(c *gin.Context) (string, entities.Period, bool) {
	symbol := strings.ToUpper(strings.TrimSpace(c.Param("symbol")))
	if symbol == "" {
		respondBadRequest(c, "symbol is required")
		return "", "", false
	}

	period, err := entities.ParsePeriod(c.Query("period"))
	if err != nil {
		respondBadRequest(c, err.Error())
		return "", "", false
	}
	return symbol, period, true
}
