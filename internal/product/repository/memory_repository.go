package repository

import (
	"context"
	"sync"

	"github.com/tair/retail-dashboard/internal/product/domain"
)

// MemoryProductRepository keeps the catalog in process memory
type MemoryProductRepository struct {
	mu   sync.RWMutex
	rows []domain.Product
	seq  int64
}

// NewMemoryProductRepository creates an empty in-memory catalog
func NewMemoryProductRepository() *MemoryProductRepository {
	return &MemoryProductRepository{}
}

func (r *MemoryProductRepository) ListAll(ctx context.Context) ([]domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Product, len(r.rows))
	copy(out, r.rows)
	return out, nil
}

func (r *MemoryProductRepository) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if i := r.indexOf(id); i >= 0 {
		p := r.rows[i]
		return &p, nil
	}
	return nil, domain.NotFoundError(id)
}

func (r *MemoryProductRepository) ReplaceAll(ctx context.Context, rows []domain.Product) error {
	fresh := make([]domain.Product, len(rows))
	copy(fresh, rows)

	r.mu.Lock()
	r.rows = fresh
	r.mu.Unlock()
	return nil
}

func (r *MemoryProductRepository) Upsert(ctx context.Context, p domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if i := r.indexOf(p.ID); i >= 0 {
		r.rows[i] = p
		return nil
	}
	r.rows = append(r.rows, p)
	return nil
}

func (r *MemoryProductRepository) UpdateDerived(ctx context.Context, derived map[string]domain.Derived) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.rows {
		if d, ok := derived[r.rows[i].ID]; ok {
			r.rows[i].Revenue = d.Revenue
			r.rows[i].RecommendationScore = d.RecommendationScore
		}
	}
	return nil
}

func (r *MemoryProductRepository) AdjustStock(ctx context.Context, id string, qty int) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, domain.NotFoundError(id)
	}
	p := &r.rows[i]
	if p.Stock < qty {
		return nil, domain.InsufficientStockError(id, p.Stock)
	}
	p.Stock -= qty
	p.SalesVolume += qty
	if p.SalesVolume < 0 {
		p.SalesVolume = 0
	}
	out := *p
	return &out, nil
}

func (r *MemoryProductRepository) Delete(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return false, nil
	}
	r.rows = append(r.rows[:i], r.rows[i+1:]...)
	return true, nil
}

func (r *MemoryProductRepository) NextID(ctx context.Context) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	return domain.FormatID(r.seq), nil
}

func (r *MemoryProductRepository) SyncSequence(ctx context.Context, n int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if n > r.seq {
		r.seq = n
	}
	return nil
}

func (r *MemoryProductRepository) indexOf(id string) int {
	for i := range r.rows {
		if r.rows[i].ID == id {
			return i
		}
	}
	return -1
}
