package query

import (
	"context"
	"sort"

	"github.com/tair/retail-dashboard/internal/product/domain"
	"github.com/tair/retail-dashboard/pkg/auth"
)

// ListCategoriesHandler returns the distinct categories in the catalog
type ListCategoriesHandler struct {
	repo domain.Repository
}

// NewListCategoriesHandler creates a new list categories handler
func NewListCategoriesHandler(repo domain.Repository) *ListCategoriesHandler {
	return &ListCategoriesHandler{repo: repo}
}

// Handle returns the categories sorted by name
func (h *ListCategoriesHandler) Handle(ctx context.Context, actor auth.Principal) ([]string, error) {
	if err := auth.Require(actor, auth.CapViewCatalog); err != nil {
		return nil, err
	}

	products, err := h.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	categories := make([]string, 0)
	for _, p := range products {
		if p.Category != "" && !seen[p.Category] {
			seen[p.Category] = true
			categories = append(categories, p.Category)
		}
	}
	sort.Strings(categories)
	return categories, nil
}
