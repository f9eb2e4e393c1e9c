package command

import (
	"context"
	"fmt"
	"sync"

	"github.com/tair/retail-dashboard/internal/product/domain"
	"github.com/tair/retail-dashboard/pkg/logger"
)

// CatalogWriter serializes every catalog mutation in this process. It
// recomputes derived fields on write and re-normalizes all scores when the
// catalog's maximum Sales_Volume moves. Writes go through repo so read
// copies are invalidated; reads go to the authoritative store behind it.
type CatalogWriter struct {
	mu       sync.Mutex
	repo     domain.Repository
	source   domain.Repository
	notifier domain.ChangeNotifier
}

// NewCatalogWriter creates a new catalog writer
func NewCatalogWriter(repo domain.Repository, notifier domain.ChangeNotifier) *CatalogWriter {
	return &CatalogWriter{
		repo:     repo,
		source:   domain.Authoritative(repo),
		notifier: notifier,
	}
}

// Insert stores a new row under a freshly reserved identifier
func (w *CatalogWriter) Insert(ctx context.Context, d domain.Draft) (*domain.Product, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	id, err := w.repo.NextID(ctx)
	if err != nil {
		return nil, err
	}

	p := domain.Product{ID: id}
	p.Apply(d)
	return w.put(ctx, p, domain.ChangeUpsert)
}

// Modify loads the row, lets fn change it and stores the result. An error
// from fn aborts the write.
func (w *CatalogWriter) Modify(ctx context.Context, id, kind string, fn func(p *domain.Product) error) (*domain.Product, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	current, err := w.source.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	p := *current
	if err := fn(&p); err != nil {
		return nil, err
	}
	p.ID = current.ID
	return w.put(ctx, p, kind)
}

// Delete removes a row, reporting NotFound when it does not exist
func (w *CatalogWriter) Delete(ctx context.Context, id string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	rows, err := w.source.ListAll(ctx)
	if err != nil {
		return err
	}
	oldMax := domain.MaxSalesVolume(rows)

	deleted, err := w.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.NotFoundError(id)
	}

	remaining := make([]domain.Product, 0, len(rows))
	for _, r := range rows {
		if r.ID != id {
			remaining = append(remaining, r)
		}
	}
	if newMax := domain.MaxSalesVolume(remaining); newMax != oldMax {
		if err := w.rescore(ctx, remaining, newMax); err != nil {
			return err
		}
	}

	w.notify(ctx, domain.ChangeDelete, []string{id})
	return nil
}

// Purchase moves qty units from Stock to SalesVolume with one conditional
// store update, then refreshes the derived fields. A negative qty restocks.
func (w *CatalogWriter) Purchase(ctx context.Context, id string, qty int) (*domain.Product, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	p, err := w.repo.AdjustStock(ctx, id, qty)
	if err != nil {
		return nil, err
	}

	rows, err := w.source.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	others := make([]domain.Product, 0, len(rows))
	for _, r := range rows {
		if r.ID != id {
			others = append(others, r)
		}
	}
	newMax := domain.MaxSalesVolume(append(others, *p))

	domain.ComputeDerived(p, newMax)
	if err := w.repo.UpdateDerived(ctx, map[string]domain.Derived{p.ID: p.Derived()}); err != nil {
		return nil, err
	}
	// rescore only writes rows whose stored score is off
	if err := w.rescore(ctx, others, newMax); err != nil {
		return nil, err
	}

	w.notify(ctx, domain.ChangePurchase, []string{p.ID})
	return p, nil
}

// Replace discards the stored catalog and stores rows with recomputed
// derived fields. The identifier counter is raised past every incoming id.
func (w *CatalogWriter) Replace(ctx context.Context, rows []domain.Product) ([]domain.Product, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.replace(ctx, rows)
}

// ReplaceIfEmpty stores rows only when the catalog holds nothing, and
// reports whether it did
func (w *CatalogWriter) ReplaceIfEmpty(ctx context.Context, rows []domain.Product) ([]domain.Product, bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	existing, err := w.source.ListAll(ctx)
	if err != nil {
		return nil, false, err
	}
	if len(existing) > 0 {
		return nil, false, nil
	}

	fresh, err := w.replace(ctx, rows)
	if err != nil {
		return nil, false, err
	}
	return fresh, true, nil
}

func (w *CatalogWriter) replace(ctx context.Context, rows []domain.Product) ([]domain.Product, error) {
	fresh := make([]domain.Product, len(rows))
	copy(fresh, rows)
	domain.Rescore(fresh)

	if err := w.repo.ReplaceAll(ctx, fresh); err != nil {
		return nil, err
	}
	if err := w.repo.SyncSequence(ctx, domain.MaxIDSuffix(fresh)); err != nil {
		return nil, fmt.Errorf("catalog replaced but id sequence not advanced: %w", err)
	}

	ids := make([]string, len(fresh))
	for i, r := range fresh {
		ids[i] = r.ID
	}
	w.notify(ctx, domain.ChangeReplace, ids)
	return fresh, nil
}

// put stores p and keeps scores normalized. Callers hold mu.
func (w *CatalogWriter) put(ctx context.Context, p domain.Product, kind string) (*domain.Product, error) {
	rows, err := w.source.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	oldMax := domain.MaxSalesVolume(rows)

	next := make([]domain.Product, 0, len(rows)+1)
	others := make([]domain.Product, 0, len(rows))
	for _, r := range rows {
		if r.ID == p.ID {
			continue
		}
		next = append(next, r)
		others = append(others, r)
	}
	next = append(next, p)
	newMax := domain.MaxSalesVolume(next)

	domain.ComputeDerived(&p, newMax)
	if err := w.repo.Upsert(ctx, p); err != nil {
		return nil, err
	}

	if newMax != oldMax {
		if err := w.rescore(ctx, others, newMax); err != nil {
			return nil, err
		}
	}

	w.notify(ctx, kind, []string{p.ID})
	return &p, nil
}

func (w *CatalogWriter) rescore(ctx context.Context, rows []domain.Product, maxSales int) error {
	derived := make(map[string]domain.Derived)
	for _, r := range rows {
		s := domain.RecommendationScore(r.Rating, r.SalesVolume, r.Discount, maxSales)
		if s != r.RecommendationScore {
			derived[r.ID] = domain.Derived{Revenue: r.Revenue, RecommendationScore: s}
		}
	}
	if len(derived) == 0 {
		return nil
	}

	logger.Debug(ctx).
		Int("max_sales_volume", maxSales).
		Int("rows", len(derived)).
		Msg("Re-normalizing recommendation scores")
	if err := w.repo.UpdateDerived(ctx, derived); err != nil {
		return fmt.Errorf("failed to re-normalize scores: %w", err)
	}
	return nil
}

func (w *CatalogWriter) notify(ctx context.Context, kind string, ids []string) {
	if w.notifier == nil {
		return
	}
	if err := w.notifier.CatalogChanged(ctx, kind, ids); err != nil {
		logger.Warn(ctx).
			Err(err).
			Str("kind", kind).
			Msg("Failed to publish catalog change")
	}
}
