package draft

import (
	"strings"

	"github.com/prinzana/sellyticsOffline-sub002/internal/core/types"
)

// Draft is the line set of a sale being assembled. It is owned by the scan
// session and mutated only through the reconciliation engine and explicit
// operator edits.
type Draft struct {
	Lines []Line
}

// New creates a draft with a single empty line, matching a freshly opened
// sale form.
func New() *Draft {
	return &Draft{Lines: []Line{NewLine()}}
}

// ContainsCode reports whether the code occupies any non-empty slot of any
// line, case-insensitively.
func (d *Draft) ContainsCode(code string) bool {
	for i := range d.Lines {
		if d.Lines[i].HasCode(code) {
			return true
		}
	}
	return false
}

// LineByProductName returns the index of the first line bound to a product
// with the given name, skipping the line at exclude. Returns -1 when none
// matches. Matching is by display name: a line's product id may lag one tick
// behind the resolver in asynchronous flows.
func (d *Draft) LineByProductName(name string, exclude int) int {
	for i := range d.Lines {
		if i == exclude {
			continue
		}
		if d.Lines[i].ProductName != "" && strings.EqualFold(d.Lines[i].ProductName, name) {
			return i
		}
	}
	return -1
}

// Append adds a line to the draft and returns its index.
func (d *Draft) Append(l Line) int {
	d.Lines = append(d.Lines, l)
	return len(d.Lines) - 1
}

// Total returns the draft amount across all bound lines.
func (d *Draft) Total() types.Money {
	total := types.Zero()
	for i := range d.Lines {
		if d.Lines[i].Bound() {
			total = total.Add(d.Lines[i].Amount())
		}
	}
	return total
}

// Snapshot is a read-only copy of the draft handed to the commit step.
type Snapshot struct {
	Lines       []Line      `json:"lines"`
	TotalAmount types.Money `json:"totalAmount"`
}

// Snapshot deep-copies the current line set and total.
func (d *Draft) Snapshot() Snapshot {
	lines := make([]Line, len(d.Lines))
	for i := range d.Lines {
		lines[i] = d.Lines[i].Clone()
	}
	return Snapshot{Lines: lines, TotalAmount: d.Total()}
}
