package scan

import (
	"strings"

	"github.com/prinzana/sellyticsOffline-sub002/internal/core/id"
	"github.com/prinzana/sellyticsOffline-sub002/internal/core/types"
	"github.com/prinzana/sellyticsOffline-sub002/internal/domain/sales/draft"
)

// Context tells which surface the scan target belongs to.
type Context int

const (
	// ContextAdd is the new-sale form: merge/spawn rules apply across lines.
	ContextAdd Context = iota
	// ContextEdit is the edit-existing-sale form: exactly one line is open.
	ContextEdit
)

func (c Context) String() string {
	if c == ContextEdit {
		return "edit"
	}
	return "add"
}

// Target identifies where the next resolved code lands. It advances to the
// new trailing empty slot every time reconciliation places a code.
type Target struct {
	Context Context `json:"context"`
	Line    int     `json:"line"`
	Slot    int     `json:"slot"`
}

// Placement names the branch of the decision tree a code went down.
type Placement int

const (
	PlacementNone Placement = iota
	// PlacementBound: the target line was fresh; the product was bound to it.
	PlacementBound
	// PlacementExtended: the code joined the target line's existing slots.
	PlacementExtended
	// PlacementMerged: the code joined another line for the same product.
	PlacementMerged
	// PlacementSpawned: a new line was created for a different product.
	PlacementSpawned
	// PlacementEdited: edit context, code written into the single open line.
	PlacementEdited
)

func (p Placement) String() string {
	switch p {
	case PlacementBound:
		return "bound"
	case PlacementExtended:
		return "extended"
	case PlacementMerged:
		return "merged"
	case PlacementSpawned:
		return "spawned"
	case PlacementEdited:
		return "edited"
	}
	return "none"
}

// ResolvedProduct is the read-only product record a code resolved to.
type ResolvedProduct struct {
	ID          id.ID
	Name        string
	UnitPrice   types.Money
	Identifiers []string
}

// Reconcile places a code that passed the guard into the draft and returns
// the advanced target plus the branch taken. This is the single decision tree
// behind all three entry channels.
//
// Product identity for merge/spawn decisions is resolved by display name, not
// id: a line's product binding may lag one tick behind the resolver in
// asynchronous flows, so the id can be unset when the name is already known.
func Reconcile(code string, target Target, p ResolvedProduct, d *draft.Draft) (Target, Placement) {
	if len(d.Lines) == 0 {
		d.Append(draft.NewLine())
	}
	if target.Line < 0 || target.Line >= len(d.Lines) {
		target.Line = len(d.Lines) - 1
	}

	// Edit context operates on exactly one line. No merge/spawn.
	if target.Context == ContextEdit {
		line := &d.Lines[target.Line]
		line.WriteSlot(target.Slot, code)
		return Target{Context: ContextEdit, Line: target.Line, Slot: len(line.Slots) - 1}, PlacementEdited
	}

	// Merge: another line already carries this product.
	if i := d.LineByProductName(p.Name, target.Line); i >= 0 {
		line := &d.Lines[i]
		line.AppendCode(code)
		return Target{Context: ContextAdd, Line: i, Slot: len(line.Slots) - 1}, PlacementMerged
	}

	line := &d.Lines[target.Line]

	// Bind: fresh target line, or one whose slots are all still empty.
	if !line.Bound() || line.CodeCount() == 0 {
		line.Bind(p.ID, p.Name, p.UnitPrice)
		line.Slots = []string{code, ""}
		line.InferQuantity()
		return Target{Context: ContextAdd, Line: target.Line, Slot: 1}, PlacementBound
	}

	// Spawn: the target line belongs to a different product.
	if !strings.EqualFold(line.ProductName, p.Name) {
		fresh := draft.NewLine()
		fresh.Bind(p.ID, p.Name, p.UnitPrice)
		fresh.Slots = []string{code, ""}
		fresh.InferQuantity()
		idx := d.Append(fresh)
		return Target{Context: ContextAdd, Line: idx, Slot: 1}, PlacementSpawned
	}

	// Extend: same product, line already has codes.
	line.WriteSlot(target.Slot, code)
	return Target{Context: ContextAdd, Line: target.Line, Slot: len(line.Slots) - 1}, PlacementExtended
}
