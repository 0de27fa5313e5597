package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pisquared/dashboard_service/internal/api/middleware"
	"github.com/pisquared/dashboard_service/internal/domain/entities"
	"github.com/pisquared/dashboard_service/internal/domain/services/session"
	"github.com/pisquared/dashboard_service/internal/domain/services/wishlist"
	"github.com/pisquared/dashboard_service/pkg/logger"
)

// WishlistHandler manages the per-session ticker wishlist
type WishlistHandler struct {
	sessions *session.Store
	wishlist *wishlist.Service
	logger   *logger.Logger
}

func NewWishlistHandler(sessions *session.Store, wl *wishlist.Service, log *logger.Logger) *WishlistHandler {
	return &WishlistHandler{sessions: sessions, wishlist: wl, logger: log}
}

// AddTickerRequest is the wishlist add payload
type AddTickerRequest struct {
	Ticker string `json:"ticker" binding:"required,ticker"`
}

// WishlistResponse is the wishlist state, with an optional notice about the
// last operation
type WishlistResponse struct {
	Tickers []string         `json:"tickers"`
	Notice  *entities.Notice `json:"notice,omitempty"`
}

// List returns the session's wishlist
func (h *WishlistHandler) List(c *gin.Context) {
	sess, err := h.sessions.Get(middleware.SessionID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, WishlistResponse{Tickers: sess.Wishlist})
}

// Add appends a ticker to the wishlist. Adding a ticker that is already
// present is not an error; it just reports a notice.
func (h *WishlistHandler) Add(c *gin.Context) {
	var req AddTickerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "ticker is missing or malformed")
		return
	}

	var notice *entities.Notice
	var tickers []string
	err := h.sessions.Apply(middleware.SessionID(c), func(sess *entities.Session) error {
		n, err := h.wishlist.Add(sess, req.Ticker)
		if err != nil {
			return err
		}
		notice = n
		tickers = append([]string(nil), sess.Wishlist...)
		return nil
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, WishlistResponse{Tickers: tickers, Notice: notice})
}

// Remove drops a ticker from the wishlist; removing an absent ticker is a
// no-op with a notice
func (h *WishlistHandler) Remove(c *gin.Context) {
	ticker := c.Param("ticker")

	var notice *entities.Notice
	var tickers []string
	err := h.sessions.Apply(middleware.SessionID(c), func(sess *entities.Session) error {
		notice = h.wishlist.Remove(sess, ticker)
		tickers = append([]string(nil), sess.Wishlist...)
		return nil
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, WishlistResponse{Tickers: tickers, Notice: notice})
}
