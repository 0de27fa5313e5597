package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pisquared/dashboard_service/pkg/version"
)

// VersionHandler serves build information
type VersionHandler struct{}

func NewVersionHandler() *VersionHandler {
	return &VersionHandler{}
}

// Version returns the build info embedded at link time
func (h *VersionHandler) Version(c *gin.Context) {
	c.JSON(http.StatusOK, version.Get())
}
