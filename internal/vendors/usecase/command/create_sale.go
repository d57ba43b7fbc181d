package command

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/seydina/distriops/internal/vendors/domain"
	"github.com/seydina/distriops/kafka"
	"github.com/seydina/distriops/pkg/logger"
)

// SalePublisher publishes sale events to the message bus
type SalePublisher interface {
	PublishSaleCompleted(ctx context.Context, event kafka.SaleCompletedEvent) error
}

// contextSeller is the optional traced variant of VendorRepository.Sell
type contextSeller interface {
	SellWithContext(ctx context.Context, activityID uint, sale *domain.Sale) (*domain.VendorActivity, error)
}

// CreateSaleCommand represents the command to record a sale against an activity
type CreateSaleCommand struct {
	ActivityID  uint
	VariantID   uint
	Quantity    int
	UnitPrice   float64
	TotalAmount float64
}

// CreateSaleResult carries the recorded sale and the activity's state after it
type CreateSaleResult struct {
	Sale     *domain.Sale           `json:"sale"`
	Activity *domain.VendorActivity `json:"activity"`
}

// CreateSaleHandler handles create sale command
type CreateSaleHandler struct {
	repo      domain.VendorRepository
	publisher SalePublisher
}

// NewCreateSaleHandler creates a new create sale handler
func NewCreateSaleHandler(repo domain.VendorRepository, publisher SalePublisher) *CreateSaleHandler {
	return &CreateSaleHandler{repo: repo, publisher: publisher}
}

// Handle executes the create sale command. The event publishes only
// after the sale and the activity debit have committed together.
func (h *CreateSaleHandler) Handle(ctx context.Context, cmd CreateSaleCommand) (*CreateSaleResult, error) {
	if cmd.ActivityID == 0 {
		return nil, fmt.Errorf("activity_id is required")
	}
	if cmd.Quantity <= 0 {
		return nil, fmt.Errorf("quantity must be greater than 0")
	}

	sale := &domain.Sale{
		Reference:   uuid.New().String(),
		VariantID:   cmd.VariantID,
		Quantity:    cmd.Quantity,
		UnitPrice:   cmd.UnitPrice,
		TotalAmount: cmd.TotalAmount,
	}

	var (
		activity *domain.VendorActivity
		err      error
	)
	if traced, ok := h.repo.(contextSeller); ok {
		activity, err = traced.SellWithContext(ctx, cmd.ActivityID, sale)
	} else {
		activity, err = h.repo.Sell(cmd.ActivityID, sale)
	}
	if err != nil {
		return nil, err
	}

	if h.publisher != nil {
		event := kafka.SaleCompletedEvent{
			SaleID:      sale.ID,
			VendorID:    sale.VendorID,
			ActivityID:  sale.ActivityID,
			VariantID:   sale.VariantID,
			Quantity:    sale.Quantity,
			TotalAmount: sale.TotalAmount,
		}
		if err := h.publisher.PublishSaleCompleted(ctx, event); err != nil {
			logger.Error(ctx).Err(err).
				Uint("sale_id", sale.ID).
				Msg("failed to publish sale.completed event")
		}
	}

	return &CreateSaleResult{Sale: sale, Activity: activity}, nil
}
