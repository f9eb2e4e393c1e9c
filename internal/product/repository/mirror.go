package repository

import (
	"context"
	"sync"

	"github.com/tair/retail-dashboard/internal/product/domain"
	"github.com/tair/retail-dashboard/pkg/logger"
)

// MirrorProductRepository serves reads from an in-process copy of the
// catalog. Writes go to the backing store and drop the copy; the next read
// reloads it. A load that overlaps an invalidation is served but not kept.
type MirrorProductRepository struct {
	next domain.Repository

	mu         sync.RWMutex
	rows       []domain.Product
	loaded     bool
	generation uint64
}

// NewMirrorProductRepository wraps next with a read mirror
func NewMirrorProductRepository(next domain.Repository) *MirrorProductRepository {
	return &MirrorProductRepository{next: next}
}

// Source returns the backing repository
func (r *MirrorProductRepository) Source() domain.Repository {
	return r.next
}

// Invalidate drops the mirror
func (r *MirrorProductRepository) Invalidate() {
	r.mu.Lock()
	r.rows = nil
	r.loaded = false
	r.generation++
	r.mu.Unlock()
}

// Refresh reloads the mirror from the backing store and returns the rows
func (r *MirrorProductRepository) Refresh(ctx context.Context) ([]domain.Product, error) {
	r.mu.RLock()
	gen := r.generation
	r.mu.RUnlock()

	rows, err := r.next.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	kept := gen == r.generation
	if kept {
		r.rows = rows
		r.loaded = true
	}
	r.mu.Unlock()

	if kept {
		logger.Debug(ctx).Int("rows", len(rows)).Msg("Catalog mirror refreshed")
	} else {
		logger.Debug(ctx).Int("rows", len(rows)).Msg("Catalog changed during refresh, mirror left empty")
	}
	return clone(rows), nil
}

func (r *MirrorProductRepository) snapshot() ([]domain.Product, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if !r.loaded {
		return nil, false
	}
	return clone(r.rows), true
}

func (r *MirrorProductRepository) ListAll(ctx context.Context) ([]domain.Product, error) {
	if rows, ok := r.snapshot(); ok {
		return rows, nil
	}
	return r.Refresh(ctx)
}

func (r *MirrorProductRepository) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	rows, err := r.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range rows {
		if rows[i].ID == id {
			return &rows[i], nil
		}
	}
	return nil, domain.NotFoundError(id)
}

func (r *MirrorProductRepository) ReplaceAll(ctx context.Context, rows []domain.Product) error {
	defer r.Invalidate()
	return r.next.ReplaceAll(ctx, rows)
}

func (r *MirrorProductRepository) Upsert(ctx context.Context, p domain.Product) error {
	defer r.Invalidate()
	return r.next.Upsert(ctx, p)
}

func (r *MirrorProductRepository) UpdateDerived(ctx context.Context, derived map[string]domain.Derived) error {
	defer r.Invalidate()
	return r.next.UpdateDerived(ctx, derived)
}

func (r *MirrorProductRepository) AdjustStock(ctx context.Context, id string, qty int) (*domain.Product, error) {
	defer r.Invalidate()
	return r.next.AdjustStock(ctx, id, qty)
}

func (r *MirrorProductRepository) Delete(ctx context.Context, id string) (bool, error) {
	defer r.Invalidate()
	return r.next.Delete(ctx, id)
}

func (r *MirrorProductRepository) NextID(ctx context.Context) (string, error) {
	return r.next.NextID(ctx)
}

func (r *MirrorProductRepository) SyncSequence(ctx context.Context, n int64) error {
	return r.next.SyncSequence(ctx, n)
}

func clone(rows []domain.Product) []domain.Product {
	out := make([]domain.Product, len(rows))
	copy(out, rows)
	return out
}
