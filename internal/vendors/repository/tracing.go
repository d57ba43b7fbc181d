package repository

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/seydina/distriops/internal/vendors/domain"
)

var tracer = otel.Tracer("vendor-repository")

// GormVendorRepositoryWithTracing wraps GormVendorRepository with tracing
type GormVendorRepositoryWithTracing struct {
	*GormVendorRepository
}

// NewGormVendorRepositoryWithTracing creates a new repository with tracing
func NewGormVendorRepositoryWithTracing(db *gorm.DB) *GormVendorRepositoryWithTracing {
	return &GormVendorRepositoryWithTracing{
		GormVendorRepository: NewGormVendorRepository(db),
	}
}

// Sell with tracing
func (r *GormVendorRepositoryWithTracing) SellWithContext(ctx context.Context, activityID uint, sale *domain.Sale) (*domain.VendorActivity, error) {
	_, span := tracer.Start(ctx, "repository.Sell",
		trace.WithAttributes(
			attribute.Int("activity.id", int(activityID)),
			attribute.Int("sale.quantity", sale.Quantity),
		),
	)
	defer span.End()

	activity, err := r.GormVendorRepository.Sell(activityID, sale)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(
		attribute.Int("sale.id", int(sale.ID)),
		attribute.Int("activity.quantity_restante", activity.QuantityRestante),
		attribute.Int("activity.quantity_sales", activity.QuantitySales),
	)
	return activity, nil
}

// CreateActivity with tracing
func (r *GormVendorRepositoryWithTracing) CreateActivityWithContext(ctx context.Context, activity *domain.VendorActivity) error {
	_, span := tracer.Start(ctx, "repository.CreateActivity",
		trace.WithAttributes(
			attribute.Int("activity.vendor_id", int(activity.VendorID)),
			attribute.String("activity.type", activity.Type),
		),
	)
	defer span.End()

	err := r.GormVendorRepository.CreateActivity(activity)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	span.SetAttributes(attribute.Int("activity.id", int(activity.ID)))
	return nil
}

// FindActivityByID with tracing
func (r *GormVendorRepositoryWithTracing) FindActivityByIDWithContext(ctx context.Context, id uint) (*domain.VendorActivity, error) {
	_, span := tracer.Start(ctx, "repository.FindActivityByID",
		trace.WithAttributes(
			attribute.Int("activity.id", int(id)),
		),
	)
	defer span.End()

	activity, err := r.GormVendorRepository.FindActivityByID(id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(
		attribute.Int("activity.vendor_id", int(activity.VendorID)),
		attribute.String("activity.type", activity.Type),
	)
	return activity, nil
}
