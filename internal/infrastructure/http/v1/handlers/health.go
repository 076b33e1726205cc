package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports process liveness.
type HealthHandler struct{}

// NewHealthHandler creates a health handler.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// Check responds 200 while the process is serving.
// GET /health
func (h *HealthHandler) Check(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
