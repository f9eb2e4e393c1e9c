package query

import (
	"context"
	"fmt"

	"github.com/tair/retail-dashboard/internal/product/domain"
	"github.com/tair/retail-dashboard/pkg/auth"
)

// ListProductsQuery represents the query to list products
type ListProductsQuery struct {
	Filter domain.Filter
}

// ListProductsHandler handles list products query
type ListProductsHandler struct {
	repo domain.Repository
}

// NewListProductsHandler creates a new list products handler
func NewListProductsHandler(repo domain.Repository) *ListProductsHandler {
	return &ListProductsHandler{repo: repo}
}

// Handle returns the rows matching the filter in catalog order
func (h *ListProductsHandler) Handle(ctx context.Context, actor auth.Principal, query ListProductsQuery) ([]domain.Product, error) {
	if err := auth.Require(actor, auth.CapViewCatalog); err != nil {
		return nil, err
	}

	products, err := h.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return query.Filter.Apply(products), nil
}
