package product

import (
	"context"
	"strings"

	"github.com/prinzana/sellyticsOffline-sub002/internal/core/apperror"
	"github.com/prinzana/sellyticsOffline-sub002/internal/core/id"
)

// Service provides read operations over the product catalog.
type Service struct {
	repo Repository
}

// NewService creates a new product catalog service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// FindByIdentifier looks up the product owning the given code.
// The name is normalized because reconciliation compares lines by it.
func (s *Service) FindByIdentifier(ctx context.Context, storeID id.ID, code string) (*Product, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, apperror.NewEmptyCode()
	}

	p, err := s.repo.FindByIdentifier(ctx, storeID, code)
	if err != nil {
		return nil, err
	}
	p.Name = strings.TrimSpace(p.Name)
	return p, nil
}

// GetByID retrieves a product record by id.
func (s *Service) GetByID(ctx context.Context, storeID, productID id.ID) (*Product, error) {
	if id.IsNil(productID) {
		return nil, apperror.NewValidation("product id is required")
	}
	return s.repo.GetByID(ctx, storeID, productID)
}
