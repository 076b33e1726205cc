package sold

import (
	"context"
	"strings"

	"github.com/prinzana/sellyticsOffline-sub002/internal/core/id"
)

// Service provides sold-identifier checks for the scan pipeline.
type Service struct {
	repo Repository
}

// NewService creates a new sold-identifier service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// IsSold reports whether the code is already attached to a committed sale.
func (s *Service) IsSold(ctx context.Context, storeID id.ID, code string) (bool, error) {
	return s.repo.Exists(ctx, storeID, strings.TrimSpace(code))
}

// Available returns the identifiers of a product not yet recorded as sold,
// preserving the input order. Informational cross-check for the scan surface.
func (s *Service) Available(ctx context.Context, storeID id.ID, identifiers []string) ([]string, error) {
	if len(identifiers) == 0 {
		return nil, nil
	}

	soldSet, err := s.repo.FindSoldOf(ctx, storeID, identifiers)
	if err != nil {
		return nil, err
	}

	sold := make(map[string]struct{}, len(soldSet))
	for _, code := range soldSet {
		sold[strings.ToLower(code)] = struct{}{}
	}

	available := make([]string, 0, len(identifiers))
	for _, ident := range identifiers {
		if _, ok := sold[strings.ToLower(ident)]; !ok {
			available = append(available, ident)
		}
	}
	return available, nil
}
