package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/prinzana/sellyticsOffline-sub002/internal/domain/scan"
	"github.com/prinzana/sellyticsOffline-sub002/internal/infrastructure/http/v1/dto"
)

// ScanHandler exposes manual code entry and scan-target control. Camera and
// wedge channels feed the same sessions in-process; this surface is the third
// entry point.
type ScanHandler struct {
	BaseHandler
	sessions *scan.Manager
}

// NewScanHandler creates a scan handler over the session manager.
func NewScanHandler(sessions *scan.Manager) *ScanHandler {
	return &ScanHandler{sessions: sessions}
}

// Scan processes one manually entered code.
// POST /api/v1/scan
func (h *ScanHandler) Scan(c *gin.Context) {
	var req dto.ScanRequest
	if !h.BindJSON(c, &req) {
		return
	}

	session := h.sessions.Get(h.TerminalID(c))
	outcome := session.Scan(c.Request.Context(), req.Code)

	c.JSON(http.StatusOK, dto.FromOutcome(outcome, session.Lines()))
}

// OpenTarget arms the session for the next resolved code.
// PUT /api/v1/scan/target
func (h *ScanHandler) OpenTarget(c *gin.Context) {
	var req dto.TargetRequest
	if !h.BindJSON(c, &req) {
		return
	}

	session := h.sessions.Get(h.TerminalID(c))
	session.OpenTarget(req.ScanContext(), req.Line, req.Slot)

	c.Status(http.StatusNoContent)
}

// CloseSurface invalidates in-flight resolutions when the scan surface
// closes. The draft is left untouched.
// POST /api/v1/scan/close
func (h *ScanHandler) CloseSurface(c *gin.Context) {
	session := h.sessions.Get(h.TerminalID(c))
	session.DiscardInFlight()

	c.Status(http.StatusNoContent)
}
