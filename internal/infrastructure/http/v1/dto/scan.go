// Package dto defines the wire shapes of the scan surface API.
package dto

import (
	"github.com/prinzana/sellyticsOffline-sub002/internal/core/id"
	"github.com/prinzana/sellyticsOffline-sub002/internal/core/types"
	"github.com/prinzana/sellyticsOffline-sub002/internal/domain/sales/draft"
	"github.com/prinzana/sellyticsOffline-sub002/internal/domain/scan"
)

// ScanRequest is a manually entered or channel-relayed code.
type ScanRequest struct {
	Code string `json:"code" binding:"required"`
}

// TargetRequest arms the scan target.
type TargetRequest struct {
	Context string `json:"context" binding:"required,oneof=add edit"`
	Line    int    `json:"line"`
	Slot    int    `json:"slot"`
}

// ScanContext converts the wire value to the domain enum.
func (r TargetRequest) ScanContext() scan.Context {
	if r.Context == "edit" {
		return scan.ContextEdit
	}
	return scan.ContextAdd
}

// QuantityRequest is an operator-typed quantity override.
type QuantityRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

// PriceRequest is an operator-typed price override.
type PriceRequest struct {
	UnitPrice types.Money `json:"unitPrice" binding:"required"`
}

// LineResponse is one draft line on the wire.
type LineResponse struct {
	ProductID      string      `json:"productId,omitempty"`
	ProductName    string      `json:"productName,omitempty"`
	UnitPrice      types.Money `json:"unitPrice"`
	PriceManual    bool        `json:"priceManual"`
	Quantity       int         `json:"quantity"`
	QuantityManual bool        `json:"quantityManual"`
	Slots          []string    `json:"slots"`
	Amount         types.Money `json:"amount"`
}

// OutcomeResponse reports what one code did, for toast/audio wiring.
type OutcomeResponse struct {
	Kind      string         `json:"kind"`
	Class     string         `json:"class"`
	Code      string         `json:"code"`
	Message   string         `json:"message,omitempty"`
	Placement string         `json:"placement,omitempty"`
	Available []string       `json:"available,omitempty"`
	Lines     []LineResponse `json:"lines"`
}

// DraftResponse is the current draft snapshot.
type DraftResponse struct {
	Lines       []LineResponse `json:"lines"`
	TotalAmount types.Money    `json:"totalAmount"`
}

// FromLine converts a domain line.
func FromLine(l draft.Line) LineResponse {
	out := LineResponse{
		ProductName:    l.ProductName,
		UnitPrice:      l.UnitPrice,
		PriceManual:    l.PriceMode == draft.FieldManual,
		Quantity:       l.Quantity,
		QuantityManual: l.QuantityMode == draft.FieldManual,
		Slots:          l.Slots,
		Amount:         l.Amount(),
	}
	if !id.IsNil(l.ProductID) {
		out.ProductID = l.ProductID.String()
	}
	return out
}

// FromLines converts a line set.
func FromLines(lines []draft.Line) []LineResponse {
	out := make([]LineResponse, len(lines))
	for i, l := range lines {
		out[i] = FromLine(l)
	}
	return out
}

// FromOutcome converts a scan outcome plus the resulting line set.
func FromOutcome(o scan.Outcome, lines []draft.Line) OutcomeResponse {
	resp := OutcomeResponse{
		Kind:      o.Kind.String(),
		Class:     o.Kind.Class().String(),
		Code:      o.Code,
		Message:   o.Message,
		Available: o.Available,
		Lines:     FromLines(lines),
	}
	if o.Kind == scan.OutcomeSuccess {
		resp.Placement = o.Placement.String()
	}
	return resp
}

// FromSnapshot converts a submit snapshot.
func FromSnapshot(s draft.Snapshot) DraftResponse {
	return DraftResponse{
		Lines:       FromLines(s.Lines),
		TotalAmount: s.TotalAmount,
	}
}
