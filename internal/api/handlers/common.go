package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pisquared/dashboard_service/internal/domain/entities"
	apperrors "github.com/pisquared/dashboard_service/pkg/errors"
	"github.com/pisquared/dashboard_service/pkg/logger"
)

// getRequestID extracts request ID from context
func getRequestID(c *gin.Context) string {
	if reqID, exists := c.Get("request_id"); exists {
		if id, ok := reqID.(string); ok {
			return id
		}
	}
	return ""
}

// requestLogger returns the per-request logger installed by the middleware,
// falling back to the given base logger.
func requestLogger(c *gin.Context, base *logger.Logger) *logger.Logger {
	if v, exists := c.Get("logger"); exists {
		if l, ok := v.(*logger.Logger); ok {
			return l
		}
	}
	return base
}

// respondError maps any error onto the wire error shape. AppErrors carry
// their own status and code; anything else is reported as internal.
func respondError(c *gin.Context, err error) {
	appErr, ok := apperrors.AsAppError(err)
	if !ok {
		appErr = apperrors.Internal("unexpected error")
	}
	c.JSON(appErr.StatusCode, entities.ErrorResponse{
		Code:      string(appErr.Code),
		Message:   appErr.Message,
		Details:   appErr.Details,
		RequestID: getRequestID(c),
	})
}

// respondBadRequest sends a bad request error for malformed request input
func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, entities.ErrorResponse{
		Code:      string(apperrors.ErrCodeInvalidInput),
		Message:   message,
		RequestID: getRequestID(c),
	})
}

// emptyPortfolioError reports that no validated portfolio exists yet
func emptyPortfolioError() error {
	return apperrors.New(apperrors.ErrCodeEmptyPortfolio, "no validated portfolio; validate a draft first")
}

// respondPNG writes a rendered chart image
func respondPNG(c *gin.Context, image []byte) {
	c.Data(http.StatusOK, "image/png", image)
}
