package usecase

import (
	"context"

	"github.com/seydina/distriops/internal/analytics/domain"
	"github.com/seydina/distriops/kafka"
	"github.com/seydina/distriops/pkg/logger"
)

const dayLayout = "2006-01-02"

// Ingestor folds bus events into the daily report tables
type Ingestor struct {
	repo domain.AnalyticsRepository
}

// NewIngestor creates a new ingestor
func NewIngestor(repo domain.AnalyticsRepository) *Ingestor {
	return &Ingestor{repo: repo}
}

// HandleSaleCompleted processes a sale.completed event
func (i *Ingestor) HandleSaleCompleted(ctx context.Context, event kafka.SaleCompletedEvent) error {
	date := event.Timestamp.Format(dayLayout)
	if err := i.repo.RecordSale(event.EventID, date, event.VendorID, event.Quantity, event.TotalAmount); err != nil {
		return err
	}

	logger.Debug(ctx).
		Str("date", date).
		Uint("vendor_id", event.VendorID).
		Int("quantity", event.Quantity).
		Msg("sale folded into daily report")
	return nil
}

// HandleStockMovementApplied processes a stock.movement.applied event
func (i *Ingestor) HandleStockMovementApplied(ctx context.Context, event kafka.StockMovementAppliedEvent) error {
	date := event.Timestamp.Format(dayLayout)
	if err := i.repo.RecordStockMovement(event.EventID, date, event.VariantID, event.NewStock, event.ProductStatus); err != nil {
		return err
	}

	logger.Debug(ctx).
		Str("date", date).
		Uint("variant_id", event.VariantID).
		Int("new_stock", event.NewStock).
		Msg("stock movement folded into daily report")
	return nil
}

// Register attaches the ingestor's handlers to a consumer
func (i *Ingestor) Register(consumer *kafka.Consumer) {
	consumer.OnSaleCompleted(i.HandleSaleCompleted)
	consumer.OnStockMovementApplied(i.HandleStockMovementApplied)
}
