// Package sold provides lookups against identifiers attached to committed
// sales. A code recorded here can never enter another draft for the store.
package sold

import (
	"context"

	"github.com/prinzana/sellyticsOffline-sub002/internal/core/id"
)

// Repository defines the interface for sold-identifier queries.
type Repository interface {
	// Exists reports whether the code is attached to a committed sale within
	// the store. The match is exact and case-insensitive.
	Exists(ctx context.Context, storeID id.ID, code string) (bool, error)

	// FindSoldOf returns the subset of identifiers already recorded as sold
	// within the store, lowercased.
	FindSoldOf(ctx context.Context, storeID id.ID, identifiers []string) ([]string, error)
}
