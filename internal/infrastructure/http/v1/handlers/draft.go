package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/prinzana/sellyticsOffline-sub002/internal/core/apperror"
	"github.com/prinzana/sellyticsOffline-sub002/internal/domain/scan"
	"github.com/prinzana/sellyticsOffline-sub002/internal/infrastructure/http/v1/dto"
)

// DraftHandler exposes the draft snapshot and explicit operator edits.
type DraftHandler struct {
	BaseHandler
	sessions *scan.Manager
}

// NewDraftHandler creates a draft handler over the session manager.
func NewDraftHandler(sessions *scan.Manager) *DraftHandler {
	return &DraftHandler{sessions: sessions}
}

// Get returns the current line set.
// GET /api/v1/draft
func (h *DraftHandler) Get(c *gin.Context) {
	session := h.sessions.Get(h.TerminalID(c))
	c.JSON(http.StatusOK, dto.FromSnapshot(session.Submit()))
}

// Submit returns the read-only snapshot handed to the commit step. The commit
// itself happens in the store service.
// POST /api/v1/draft/submit
func (h *DraftHandler) Submit(c *gin.Context) {
	session := h.sessions.Get(h.TerminalID(c))
	c.JSON(http.StatusOK, dto.FromSnapshot(session.Submit()))
}

// Reset discards the draft, as when the operator cancels the sale.
// POST /api/v1/draft/reset
func (h *DraftHandler) Reset(c *gin.Context) {
	session := h.sessions.Get(h.TerminalID(c))
	session.Reset()
	c.Status(http.StatusNoContent)
}

// AddLine appends a fresh empty line and arms the target on it.
// POST /api/v1/draft/lines
func (h *DraftHandler) AddLine(c *gin.Context) {
	session := h.sessions.Get(h.TerminalID(c))
	lines, idx := session.AddLine()
	c.JSON(http.StatusCreated, gin.H{"line": idx, "lines": dto.FromLines(lines)})
}

// SetQuantity records an operator-typed quantity, pinning the field.
// PATCH /api/v1/draft/lines/:line/quantity
func (h *DraftHandler) SetQuantity(c *gin.Context) {
	lineIdx, ok := h.lineParam(c)
	if !ok {
		return
	}

	var req dto.QuantityRequest
	if !h.BindJSON(c, &req) {
		return
	}

	session := h.sessions.Get(h.TerminalID(c))
	lines, err := session.SetQuantity(lineIdx, req.Quantity)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"lines": dto.FromLines(lines)})
}

// SetPrice records an operator-typed unit price, pinning the field.
// PATCH /api/v1/draft/lines/:line/price
func (h *DraftHandler) SetPrice(c *gin.Context) {
	lineIdx, ok := h.lineParam(c)
	if !ok {
		return
	}

	var req dto.PriceRequest
	if !h.BindJSON(c, &req) {
		return
	}

	session := h.sessions.Get(h.TerminalID(c))
	lines, err := session.SetUnitPrice(lineIdx, req.UnitPrice)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"lines": dto.FromLines(lines)})
}

func (h *DraftHandler) lineParam(c *gin.Context) (int, bool) {
	idx, err := strconv.Atoi(c.Param("line"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid line index").WithDetail("line", c.Param("line")))
		return 0, false
	}
	return idx, true
}
