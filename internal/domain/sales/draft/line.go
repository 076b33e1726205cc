// Package draft models a sale in progress: the ordered line set assembled by
// scanning, with identifier slots, quantity inference, and the trailing empty
// slot every line keeps open for the next code.
package draft

import (
	"strings"

	"github.com/prinzana/sellyticsOffline-sub002/internal/core/id"
	"github.com/prinzana/sellyticsOffline-sub002/internal/core/types"
)

// FieldMode tells whether a derived line field follows automatic inference or
// has been pinned by the operator. Once Manual, inference is suspended for the
// life of the line.
type FieldMode int

const (
	FieldAuto FieldMode = iota
	FieldManual
)

func (m FieldMode) String() string {
	if m == FieldManual {
		return "manual"
	}
	return "auto"
}

// Line is one row of a sale in progress.
//
// Invariants:
//   - Slots always ends with exactly one empty pending slot.
//   - Quantity == max(1, non-empty slots) while QuantityMode is FieldAuto.
type Line struct {
	// Product binding. ProductID may lag the name in asynchronous flows;
	// reconciliation keys on ProductName.
	ProductID   id.ID  `json:"productId"`
	ProductName string `json:"productName"`

	UnitPrice types.Money `json:"unitPrice"`
	PriceMode FieldMode   `json:"priceMode"`

	Quantity     int       `json:"quantity"`
	QuantityMode FieldMode `json:"quantityMode"`

	// Slots holds confirmed codes plus the trailing pending slot.
	Slots []string `json:"slots"`
}

// NewLine creates an empty, unbound line with the pending slot open.
func NewLine() Line {
	return Line{
		Quantity:  1,
		UnitPrice: types.Zero(),
		Slots:     []string{""},
	}
}

// Bound reports whether a product has been bound to the line.
func (l *Line) Bound() bool {
	return l.ProductName != "" || !id.IsNil(l.ProductID)
}

// CodeCount returns the number of confirmed (non-empty) slots.
func (l *Line) CodeCount() int {
	n := 0
	for _, s := range l.Slots {
		if strings.TrimSpace(s) != "" {
			n++
		}
	}
	return n
}

// HasCode reports whether the code occupies a non-empty slot, case-insensitively.
func (l *Line) HasCode(code string) bool {
	for _, s := range l.Slots {
		if s != "" && strings.EqualFold(s, code) {
			return true
		}
	}
	return false
}

// WriteSlot places code into the slot at idx (or the trailing pending slot if
// idx is out of range), opens a new pending slot, and re-runs inference.
func (l *Line) WriteSlot(idx int, code string) {
	if len(l.Slots) == 0 {
		l.Slots = []string{""}
	}
	if idx < 0 || idx >= len(l.Slots) {
		idx = len(l.Slots) - 1
	}
	l.Slots[idx] = code
	l.ensurePendingSlot()
	l.InferQuantity()
}

// AppendCode places code into the trailing pending slot and opens a new one.
func (l *Line) AppendCode(code string) {
	l.WriteSlot(len(l.Slots)-1, code)
}

// ensurePendingSlot restores the trailing empty slot invariant.
func (l *Line) ensurePendingSlot() {
	if len(l.Slots) == 0 || l.Slots[len(l.Slots)-1] != "" {
		l.Slots = append(l.Slots, "")
	}
}

// InferQuantity recomputes quantity from the confirmed slots unless the
// operator has pinned it.
func (l *Line) InferQuantity() {
	if l.QuantityMode == FieldManual {
		return
	}
	l.Quantity = l.CodeCount()
	if l.Quantity < 1 {
		l.Quantity = 1
	}
}

// SetQuantity pins the quantity for the life of the line.
func (l *Line) SetQuantity(q int) {
	if q < 1 {
		q = 1
	}
	l.Quantity = q
	l.QuantityMode = FieldManual
}

// SetUnitPrice pins the price for the life of the line.
func (l *Line) SetUnitPrice(p types.Money) {
	l.UnitPrice = p
	l.PriceMode = FieldManual
}

// Bind attaches a product to the line, seeding price from the product unless
// the operator has pinned it. Explicit rebind is the only way inference ever
// changes an existing price.
func (l *Line) Bind(productID id.ID, name string, unitPrice types.Money) {
	l.ProductID = productID
	l.ProductName = name
	if l.PriceMode != FieldManual {
		l.UnitPrice = unitPrice
	}
}

// Amount returns quantity × unit price.
func (l *Line) Amount() types.Money {
	return types.MulInt(l.UnitPrice, l.Quantity)
}

// Clone returns a deep copy of the line.
func (l Line) Clone() Line {
	out := l
	out.Slots = append([]string(nil), l.Slots...)
	return out
}
