package product

import (
	"context"

	"github.com/prinzana/sellyticsOffline-sub002/internal/core/id"
)

// Repository defines the interface for product lookups.
type Repository interface {
	// FindByIdentifier retrieves the product whose identifier list contains
	// the given code fragment within the store. Contains-match is intentional:
	// legacy records store identifiers as a delimited list.
	FindByIdentifier(ctx context.Context, storeID id.ID, code string) (*Product, error)

	// GetByID retrieves a product by its id within the store.
	GetByID(ctx context.Context, storeID, productID id.ID) (*Product, error)
}
