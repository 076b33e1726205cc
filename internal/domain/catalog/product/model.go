// Package product provides the read-side product catalog consumed by the
// scan pipeline. Products are owned by the remote store service; this package
// only looks them up.
package product

import (
	"strings"

	"github.com/prinzana/sellyticsOffline-sub002/internal/core/id"
	"github.com/prinzana/sellyticsOffline-sub002/internal/core/types"
)

// IdentifierSeparator delimits serial/IMEI codes inside the identifiers
// column of a product record. Legacy records use comma-separated lists.
const IdentifierSeparator = ","

// Product is a read-only product record resolved for a scanned code.
type Product struct {
	ID      id.ID `db:"id" json:"id"`
	StoreID id.ID `db:"store_id" json:"storeId"`

	// Name is the display name. Line merge/spawn decisions key on it, so it
	// is normalized (trimmed) at load time.
	Name string `db:"name" json:"name"`

	// UnitPrice is the default selling price bound to a fresh line.
	UnitPrice types.Money `db:"unit_price" json:"unitPrice"`

	// RawIdentifiers is the delimited identifier list as stored.
	RawIdentifiers string `db:"identifiers" json:"-"`

	// Quantity on hand, informational only for the scan surface.
	OnHand int `db:"on_hand" json:"onHand"`
}

// Identifiers returns the parsed, trimmed identifier list of the record.
// Empty entries produced by trailing separators are dropped.
func (p *Product) Identifiers() []string {
	if p.RawIdentifiers == "" {
		return nil
	}
	parts := strings.Split(p.RawIdentifiers, IdentifierSeparator)
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if s := strings.TrimSpace(part); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// HasIdentifier reports whether code matches one of the record's identifiers,
// case-insensitively.
func (p *Product) HasIdentifier(code string) bool {
	for _, ident := range p.Identifiers() {
		if strings.EqualFold(ident, code) {
			return true
		}
	}
	return false
}
