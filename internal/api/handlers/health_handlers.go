package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sony/gobreaker"

	"github.com/pisquared/dashboard_service/internal/domain/services/reference"
	"github.com/pisquared/dashboard_service/internal/domain/services/session"
	"github.com/pisquared/dashboard_service/pkg/logger"
	"github.com/pisquared/dashboard_service/pkg/version"
)

// BreakerStater reports market data upstream availability.
type BreakerStater interface {
	BreakerState() gobreaker.State
}

// HealthHandler handles health check endpoints
type HealthHandler struct {
	reference  *reference.Service
	sessions   *session.Store
	marketData BreakerStater
	logger     *logger.Logger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(ref *reference.Service, sessions *session.Store, md BreakerStater, log *logger.Logger) *HealthHandler {
	return &HealthHandler{
		reference:  ref,
		sessions:   sessions,
		marketData: md,
		logger:     log,
	}
}

// HealthCheck represents one dependency's health check result
type HealthCheck struct {
	Service string `json:"service"`
	Status  string `json:"status"`
	Detail  string `json:"detail,omitempty"`
}

// HealthResponse represents the overall health response
type HealthResponse struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Uptime    string                 `json:"uptime"`
	Sessions  int                    `json:"sessions"`
	Checks    map[string]HealthCheck `json:"checks"`
}

var startTime = time.Now()

// Health reports overall service health. The reference table is required;
// an open market data breaker degrades the status but keeps serving, since
// cached session state and the reference endpoints still work.
func (h *HealthHandler) Health(c *gin.Context) {
	checks := make(map[string]HealthCheck)
	overallStatus := "healthy"

	refCheck := h.checkReference()
	checks["reference"] = refCheck
	if refCheck.Status != "healthy" {
		overallStatus = "unhealthy"
	}

	mdCheck := h.checkMarketData()
	checks["market_data"] = mdCheck
	if mdCheck.Status != "healthy" && overallStatus == "healthy" {
		overallStatus = "degraded"
	}

	response := HealthResponse{
		Status:    overallStatus,
		Timestamp: time.Now(),
		Version:   version.Version,
		Uptime:    time.Since(startTime).String(),
		Sessions:  h.sessions.Len(),
		Checks:    checks,
	}

	statusCode := http.StatusOK
	if overallStatus == "unhealthy" {
		statusCode = http.StatusServiceUnavailable
	}

	c.JSON(statusCode, response)
}

// Ready checks if the application is ready to serve traffic
func (h *HealthHandler) Ready(c *gin.Context) {
	refCheck := h.checkReference()

	ready := refCheck.Status == "healthy"
	status := "ready"
	if !ready {
		status = "not_ready"
	}

	response := map[string]interface{}{
		"status":    status,
		"timestamp": time.Now(),
		"checks": map[string]interface{}{
			"reference": refCheck,
		},
	}

	statusCode := http.StatusOK
	if !ready {
		statusCode = http.StatusServiceUnavailable
	}

	c.JSON(statusCode, response)
}

// Live is a simple liveness check for container orchestration
func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, map[string]interface{}{
		"status":    "alive",
		"timestamp": time.Now(),
		"uptime":    time.Since(startTime).String(),
	})
}

func (h *HealthHandler) checkReference() HealthCheck {
	check := HealthCheck{Service: "reference"}
	if h.reference.Size() == 0 {
		check.Status = "unhealthy"
		check.Detail = "reference table is empty"
		return check
	}
	check.Status = "healthy"
	return check
}

func (h *HealthHandler) checkMarketData() HealthCheck {
	check := HealthCheck{Service: "market_data"}
	state := h.marketData.BreakerState()
	check.Detail = "breaker " + state.String()
	if state == gobreaker.StateOpen {
		check.Status = "unhealthy"
	} else {
		check.Status = "healthy"
	}
	return check
}
