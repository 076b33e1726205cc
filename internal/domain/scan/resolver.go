package scan

import (
	"context"
	"strings"

	"github.com/prinzana/sellyticsOffline-sub002/internal/core/apperror"
	"github.com/prinzana/sellyticsOffline-sub002/internal/core/id"
	"github.com/prinzana/sellyticsOffline-sub002/internal/domain/catalog/product"
	"github.com/prinzana/sellyticsOffline-sub002/pkg/logger"
)

// ProductLookup is the product-catalog collaborator consumed by the resolver.
type ProductLookup interface {
	FindByIdentifier(ctx context.Context, storeID id.ID, code string) (*product.Product, error)
}

// SoldLookup is the sold-identifier collaborator consumed by the resolver.
type SoldLookup interface {
	IsSold(ctx context.Context, storeID id.ID, code string) (bool, error)
	Available(ctx context.Context, storeID id.ID, identifiers []string) ([]string, error)
}

// Resolution is a successfully resolved code: the product plus its not-yet-sold
// identifiers for the inventory cross-check.
type Resolution struct {
	Product   ResolvedProduct
	Available []string
}

// Resolver turns a raw code into a resolved product or a typed failure.
type Resolver struct {
	products ProductLookup
	sold     SoldLookup
}

// NewResolver creates a resolver over the two lookup collaborators.
func NewResolver(products ProductLookup, sold SoldLookup) *Resolver {
	return &Resolver{products: products, sold: sold}
}

// Resolve checks the code in order: empty input, store-wide sold match,
// product lookup. Collaborator failures map to LOOKUP_FAILED and never
// partially mutate anything.
func (r *Resolver) Resolve(ctx context.Context, storeID id.ID, code string) (*Resolution, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, apperror.NewEmptyCode()
	}

	isSold, err := r.sold.IsSold(ctx, storeID, code)
	if err != nil {
		return nil, apperror.NewLookupFailed(err)
	}
	if isSold {
		return nil, apperror.NewAlreadySold(code)
	}

	p, err := r.products.FindByIdentifier(ctx, storeID, code)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewCodeNotFound(code)
		}
		if appErr, ok := apperror.AsAppError(err); ok && appErr.Code == apperror.CodeEmptyCode {
			return nil, err
		}
		return nil, apperror.NewLookupFailed(err)
	}

	res := &Resolution{
		Product: ResolvedProduct{
			ID:          p.ID,
			Name:        p.Name,
			UnitPrice:   p.UnitPrice,
			Identifiers: p.Identifiers(),
		},
	}

	// Informational, never fails the scan.
	available, err := r.sold.Available(ctx, storeID, res.Product.Identifiers)
	if err != nil {
		logger.Warn(ctx, "availability check failed", "code", code, "error", err)
	} else {
		res.Available = available
	}

	return res, nil
}
