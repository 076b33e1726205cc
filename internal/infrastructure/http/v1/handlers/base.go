package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/prinzana/sellyticsOffline-sub002/internal/core/apperror"
	appctx "github.com/prinzana/sellyticsOffline-sub002/internal/core/context"
)

// BaseHandler provides common handler utilities.
type BaseHandler struct{}

// BindJSON binds and validates JSON request body.
func (h *BaseHandler) BindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		h.Error(c, apperror.NewValidation("invalid request body").WithDetail("error", err.Error()))
		return false
	}
	return true
}

// Error registers error on Gin context and aborts request.
// Actual JSON response is produced by middleware.ErrorHandler.
func (h *BaseHandler) Error(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// TerminalID extracts the terminal scope from request context.
func (h *BaseHandler) TerminalID(c *gin.Context) string {
	return appctx.GetTerminalID(c.Request.Context())
}
