package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pisquared/dashboard_service/internal/domain/services/reference"
	"github.com/pisquared/dashboard_service/pkg/logger"
)

// ReferenceHandler serves the static company/ticker/index table
type ReferenceHandler struct {
	reference *reference.Service
	logger    *logger.Logger
}

func NewReferenceHandler(ref *reference.Service, log *logger.Logger) *ReferenceHandler {
	return &ReferenceHandler{reference: ref, logger: log}
}

// Indices lists the known index names in table order
func (h *ReferenceHandler) Indices(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"indices": h.reference.Indices()})
}

// Companies lists companies, optionally filtered by index. An empty or "all"
// filter returns the whole table.
func (h *ReferenceHandler) Companies(c *gin.Context) {
	index := c.Query("index")
	rows := h.reference.Companies(index)
	c.JSON(http.StatusOK, gin.H{
		"index":     index,
		"count":     len(rows),
		"companies": rows,
	})
}
