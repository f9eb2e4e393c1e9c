package repository

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/tair/retail-dashboard/internal/product/domain"
)

var tracer = otel.Tracer("product-repository")

// TracingProductRepository wraps a catalog repository with spans
type TracingProductRepository struct {
	next    domain.Repository
	backend string
}

// NewTracingProductRepository creates a new repository with tracing
func NewTracingProductRepository(next domain.Repository, backend string) *TracingProductRepository {
	return &TracingProductRepository{next: next, backend: backend}
}

func (r *TracingProductRepository) start(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	attrs = append(attrs, attribute.String("db.system", r.backend))
	return tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func fail(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

// ListAll with tracing
func (r *TracingProductRepository) ListAll(ctx context.Context) ([]domain.Product, error) {
	ctx, span := r.start(ctx, "repository.ListAll")
	defer span.End()

	products, err := r.next.ListAll(ctx)
	if err != nil {
		fail(span, err)
		return nil, err
	}

	span.SetAttributes(attribute.Int("result.count", len(products)))
	return products, nil
}

// FindByID with tracing
func (r *TracingProductRepository) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	ctx, span := r.start(ctx, "repository.FindByID", attribute.String("product.id", id))
	defer span.End()

	product, err := r.next.FindByID(ctx, id)
	if err != nil {
		fail(span, err)
		return nil, err
	}

	span.SetAttributes(
		attribute.String("product.name", product.Name),
		attribute.String("product.category", product.Category),
	)
	return product, nil
}

// ReplaceAll with tracing
func (r *TracingProductRepository) ReplaceAll(ctx context.Context, rows []domain.Product) error {
	ctx, span := r.start(ctx, "repository.ReplaceAll", attribute.Int("rows.count", len(rows)))
	defer span.End()

	if err := r.next.ReplaceAll(ctx, rows); err != nil {
		fail(span, err)
		return err
	}
	return nil
}

// Upsert with tracing
func (r *TracingProductRepository) Upsert(ctx context.Context, p domain.Product) error {
	ctx, span := r.start(ctx, "repository.Upsert",
		attribute.String("product.id", p.ID),
		attribute.String("product.name", p.Name),
		attribute.String("product.category", p.Category),
		attribute.Float64("product.price", p.Price),
		attribute.Int("product.stock", p.Stock),
	)
	defer span.End()

	if err := r.next.Upsert(ctx, p); err != nil {
		fail(span, err)
		return err
	}
	return nil
}

// UpdateDerived with tracing
func (r *TracingProductRepository) UpdateDerived(ctx context.Context, derived map[string]domain.Derived) error {
	ctx, span := r.start(ctx, "repository.UpdateDerived", attribute.Int("rows.count", len(derived)))
	defer span.End()

	if err := r.next.UpdateDerived(ctx, derived); err != nil {
		fail(span, err)
		return err
	}
	return nil
}

// AdjustStock with tracing
func (r *TracingProductRepository) AdjustStock(ctx context.Context, id string, qty int) (*domain.Product, error) {
	ctx, span := r.start(ctx, "repository.AdjustStock",
		attribute.String("product.id", id),
		attribute.Int("quantity", qty),
	)
	defer span.End()

	p, err := r.next.AdjustStock(ctx, id, qty)
	if err != nil {
		fail(span, err)
		return nil, err
	}
	return p, nil
}

// Delete with tracing
func (r *TracingProductRepository) Delete(ctx context.Context, id string) (bool, error) {
	ctx, span := r.start(ctx, "repository.Delete", attribute.String("product.id", id))
	defer span.End()

	deleted, err := r.next.Delete(ctx, id)
	if err != nil {
		fail(span, err)
		return false, err
	}

	span.SetAttributes(attribute.Bool("product.deleted", deleted))
	return deleted, nil
}

// NextID with tracing
func (r *TracingProductRepository) NextID(ctx context.Context) (string, error) {
	ctx, span := r.start(ctx, "repository.NextID")
	defer span.End()

	id, err := r.next.NextID(ctx)
	if err != nil {
		fail(span, err)
		return "", err
	}

	span.SetAttributes(attribute.String("product.id", id))
	return id, nil
}

// SyncSequence with tracing
func (r *TracingProductRepository) SyncSequence(ctx context.Context, n int64) error {
	ctx, span := r.start(ctx, "repository.SyncSequence", attribute.Int64("sequence.floor", n))
	defer span.End()

	if err := r.next.SyncSequence(ctx, n); err != nil {
		fail(span, err)
		return err
	}
	return nil
}
