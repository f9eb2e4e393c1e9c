package repository

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/tair/retail-dashboard/internal/order/domain"
)

var tracer = otel.Tracer("order-repository")

// TracingOrderRepository wraps the ledger with spans
type TracingOrderRepository struct {
	next    domain.Repository
	backend string
}

// NewTracingOrderRepository creates a new repository with tracing
func NewTracingOrderRepository(next domain.Repository, backend string) *TracingOrderRepository {
	return &TracingOrderRepository{next: next, backend: backend}
}

// Append with tracing
func (r *TracingOrderRepository) Append(ctx context.Context, orders []domain.Order) error {
	ctx, span := tracer.Start(ctx, "repository.Append", trace.WithAttributes(
		attribute.String("db.system", r.backend),
		attribute.Int("orders.count", len(orders)),
	))
	defer span.End()

	if err := r.next.Append(ctx, orders); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}

// ListByUsername with tracing
func (r *TracingOrderRepository) ListByUsername(ctx context.Context, username string) ([]domain.Order, error) {
	ctx, span := tracer.Start(ctx, "repository.ListByUsername", trace.WithAttributes(
		attribute.String("db.system", r.backend),
		attribute.String("user.username", username),
	))
	defer span.End()

	orders, err := r.next.ListByUsername(ctx, username)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.Int("result.count", len(orders)))
	return orders, nil
}

// ListAll with tracing
func (r *TracingOrderRepository) ListAll(ctx context.Context) ([]domain.Order, error) {
	ctx, span := tracer.Start(ctx, "repository.ListAll", trace.WithAttributes(
		attribute.String("db.system", r.backend),
	))
	defer span.End()

	orders, err := r.next.ListAll(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.Int("result.count", len(orders)))
	return orders, nil
}
