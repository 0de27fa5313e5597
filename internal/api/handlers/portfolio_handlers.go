package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/pisquared/dashboard_service/internal/api/middleware"
	"github.com/pisquared/dashboard_service/internal/domain/entities"
	"github.com/pisquared/dashboard_service/internal/domain/services/builder"
	"github.com/pisquared/dashboard_service/internal/domain/services/charts"
	"github.com/pisquared/dashboard_service/internal/domain/services/portfolio"
	"github.com/pisquared/dashboard_service/internal/domain/services/session"
	"github.com/pisquared/dashboard_service/pkg/logger"
)

// PortfolioHandler serves the portfolio builder page: the editable draft,
// validation, and the derived metric views.
type PortfolioHandler struct {
	sessions  *session.Store
	builder   *builder.Service
	portfolio *portfolio.Service
	renderer  *charts.Renderer
	logger    *logger.Logger
}

func NewPortfolioHandler(sessions *session.Store, bld *builder.Service, pf *portfolio.Service, renderer *charts.Renderer, log *logger.Logger) *PortfolioHandler {
	return &PortfolioHandler{
		sessions:  sessions,
		builder:   bld,
		portfolio: pf,
		renderer:  renderer,
		logger:    log,
	}
}

// DraftResponse is the editable draft state
type DraftResponse struct {
	Rows        []entities.DraftRow `json:"rows"`
	TotalWeight decimal.Decimal     `json:"total_weight"`
	Notice      *entities.Notice    `json:"notice,omitempty"`
}

// UpdateRowRequest sets the ticker and/or weight of one draft row. Omitted
// fields are left untouched. Weights are clamped to [0, 100] at this
// boundary, matching the input widget's bounds.
type UpdateRowRequest struct {
	Ticker *string  `json:"ticker"`
	Weight *float64 `json:"weight"`
}

// FromWishlistRequest names the wishlist ticker to copy into the draft
type FromWishlistRequest struct {
	Ticker string `json:"ticker" binding:"required,ticker"`
}

// ValidateRequest optionally overrides the metric lookback window
type ValidateRequest struct {
	Period string `json:"period"`
}

// ValidatedResponse is the validated portfolio with its derived metrics
type ValidatedResponse struct {
	Portfolio *entities.ValidatedPortfolio `json:"portfolio"`
	Stats     *entities.WeightStats        `json:"stats"`
	Metrics   *entities.PortfolioMetrics   `json:"metrics"`
	Notices   []entities.Notice            `json:"notices,omitempty"`
}

// GetDraft returns the session's current draft rows
func (h *PortfolioHandler) GetDraft(c *gin.Context) {
	sess, err := h.sessions.Get(middleware.SessionID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.draftResponse(sess, nil))
}

// AppendRow adds an empty row to the draft
func (h *PortfolioHandler) AppendRow(c *gin.Context) {
	h.applyDraft(c, func(sess *entities.Session) (*entities.Notice, error) {
		h.builder.AppendRow(sess)
		return nil, nil
	})
}

// RemoveRow deletes the draft row at the given position
func (h *PortfolioHandler) RemoveRow(c *gin.Context) {
	position, err := strconv.Atoi(c.Param("position"))
	if err != nil {
		respondBadRequest(c, "position must be an integer")
		return
	}
	h.applyDraft(c, func(sess *entities.Session) (*entities.Notice, error) {
		h.builder.RemoveRow(sess, position)
		return nil, nil
	})
}

// UpdateRow sets the ticker and/or weight of one draft row
func (h *PortfolioHandler) UpdateRow(c *gin.Context) {
	position, err := strconv.Atoi(c.Param("position"))
	if err != nil {
		respondBadRequest(c, "position must be an integer")
		return
	}

	var req UpdateRowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid row update payload")
		return
	}
	if req.Ticker == nil && req.Weight == nil {
		respondBadRequest(c, "nothing to update")
		return
	}

	h.applyDraft(c, func(sess *entities.Session) (*entities.Notice, error) {
		if req.Ticker != nil {
			if err := h.builder.SetTicker(sess, position, *req.Ticker); err != nil {
				return nil, err
			}
		}
		if req.Weight != nil {
			if err := h.builder.SetWeight(sess, position, clampWeight(*req.Weight)); err != nil {
				return nil, err
			}
		}
		return nil, nil
	})
}

// AddFromWishlist copies a wishlist ticker into the draft as a zero-weight row
func (h *PortfolioHandler) AddFromWishlist(c *gin.Context) {
	var req FromWishlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "ticker is missing or malformed")
		return
	}

	h.applyDraft(c, func(sess *entities.Session) (*entities.Notice, error) {
		return h.builder.AddFromWishlist(sess, req.Ticker)
	})
}

// Validate runs the full validation pipeline over the draft and, on success,
// stores the result in the session. A failed run leaves the previously
// validated portfolio in place.
func (h *PortfolioHandler) Validate(c *gin.Context) {
	var req ValidateRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBadRequest(c, "invalid validate payload")
			return
		}
	}
	var lookback entities.Period
	if req.Period != "" {
		parsed, err := entities.ParsePeriod(req.Period)
		if err != nil {
			respondBadRequest(c, err.Error())
			return
		}
		lookback = parsed
	}

	id := middleware.SessionID(c)
	sess, err := h.sessions.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}

	result, err := h.portfolio.Validate(c.Request.Context(), sess.Draft, lookback)
	if err != nil {
		respondError(c, err)
		return
	}

	err = h.sessions.Apply(id, func(s *entities.Session) error {
		s.Validated = result.Portfolio
		s.Stats = result.Stats
		s.Metrics = result.Metrics
		return nil
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ValidatedResponse{
		Portfolio: result.Portfolio,
		Stats:     result.Stats,
		Metrics:   result.Metrics,
		Notices:   result.Notices,
	})
}

// Get returns the last validated portfolio with its metrics
func (h *PortfolioHandler) Get(c *gin.Context) {
	sess, ok := h.validatedSession(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, ValidatedResponse{
		Portfolio: sess.Validated,
		Stats:     sess.Stats,
		Metrics:   sess.Metrics,
	})
}

// PerformanceChart renders the cumulative return curve as a PNG
func (h *PortfolioHandler) PerformanceChart(c *gin.Context) {
	sess, ok := h.validatedSession(c)
	if !ok {
		return
	}
	image, err := h.renderer.Performance(sess.Metrics)
	if err != nil {
		respondError(c, err)
		return
	}
	respondPNG(c, image)
}

// AllocationChart renders the validated weights as a PNG pie chart
func (h *PortfolioHandler) AllocationChart(c *gin.Context) {
	sess, ok := h.validatedSession(c)
	if !ok {
		return
	}
	image, err := h.renderer.Allocation(sess.Validated)
	if err != nil {
		respondError(c, err)
		return
	}
	respondPNG(c, image)
}

// applyDraft runs one draft command and responds with the resulting draft
func (h *PortfolioHandler) applyDraft(c *gin.Context, command func(*entities.Session) (*entities.Notice, error)) {
	var resp DraftResponse
	err := h.sessions.Apply(middleware.SessionID(c), func(sess *entities.Session) error {
		notice, err := command(sess)
		if err != nil {
			return err
		}
		resp = h.draftResponse(sess, notice)
		return nil
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PortfolioHandler) draftResponse(sess *entities.Session, notice *entities.Notice) DraftResponse {
	return DraftResponse{
		Rows:        append([]entities.DraftRow(nil), sess.Draft...),
		TotalWeight: h.builder.TotalWeight(sess),
		Notice:      notice,
	}
}

func (h *PortfolioHandler) validatedSession(c *gin.Context) (*entities.Session, bool) {
	sess, err := h.sessions.Get(middleware.SessionID(c))
	if err != nil {
		respondError(c, err)
		return nil, false
	}
	if sess.Validated == nil {
		respondError(c, emptyPortfolioError())
		return nil, false
	}
	return sess, true
}

func clampWeight(w float64) decimal.Decimal {
	switch {
	case w < 0:
		return decimal.Zero
	case w > 100:
		return decimal.NewFromInt(100)
	default:
		return decimal.NewFromFloat(w)
	}
}
