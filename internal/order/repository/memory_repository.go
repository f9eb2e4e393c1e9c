package repository

import (
	"context"
	"sync"

	"github.com/tair/retail-dashboard/internal/order/domain"
)

// MemoryOrderRepository keeps the ledger in process memory
type MemoryOrderRepository struct {
	mu     sync.RWMutex
	orders []domain.Order
}

// NewMemoryOrderRepository creates an empty ledger
func NewMemoryOrderRepository() *MemoryOrderRepository {
	return &MemoryOrderRepository{}
}

func (r *MemoryOrderRepository) Append(ctx context.Context, orders []domain.Order) error {
	r.mu.Lock()
	r.orders = append(r.orders, orders...)
	r.mu.Unlock()
	return nil
}

func (r *MemoryOrderRepository) ListByUsername(ctx context.Context, username string) ([]domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Order, 0)
	for _, o := range r.orders {
		if o.Username == username {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *MemoryOrderRepository) ListAll(ctx context.Context) ([]domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Order, len(r.orders))
	copy(out, r.orders)
	return out, nil
}
