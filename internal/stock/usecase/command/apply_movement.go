package command

import (
	"context"
	"fmt"

	"github.com/seydina/distriops/internal/stock/domain"
	"github.com/seydina/distriops/kafka"
	"github.com/seydina/distriops/pkg/logger"
)

// MovementPublisher publishes stock movement events.
type MovementPublisher interface {
	PublishStockMovementApplied(ctx context.Context, event kafka.StockMovementAppliedEvent) error
}

// ApplyMovementCommand represents the command to apply a stock movement
type ApplyMovementCommand struct {
	VariantID uint
	Type      string
	Quantity  int
	Reason    string
	UserID    uint
}

// ApplyMovementResult carries the movement and the resulting ledger state
type ApplyMovementResult struct {
	Movement      *domain.StockMovement `json:"movement"`
	NewStock      int                   `json:"new_stock"`
	ProductStatus string                `json:"product_status"`
}

// ApplyMovementHandler handles apply movement command
type ApplyMovementHandler struct {
	repo      domain.StockRepository
	publisher MovementPublisher
}

// NewApplyMovementHandler creates a new apply movement handler
func NewApplyMovementHandler(repo domain.StockRepository, publisher MovementPublisher) *ApplyMovementHandler {
	return &ApplyMovementHandler{repo: repo, publisher: publisher}
}

// Handle executes the apply movement command. Quantity is validated here, at
// the boundary: the ledger arithmetic itself never fails.
func (h *ApplyMovementHandler) Handle(ctx context.Context, cmd ApplyMovementCommand) (*ApplyMovementResult, error) {
	if cmd.VariantID == 0 {
		return nil, fmt.Errorf("variant_id is required")
	}
	if !domain.ValidType(cmd.Type) {
		return nil, fmt.Errorf("invalid movement type: %q", cmd.Type)
	}
	if cmd.Quantity < 0 {
		return nil, fmt.Errorf("quantity cannot be negative")
	}

	movement := &domain.StockMovement{
		VariantID: cmd.VariantID,
		Type:      cmd.Type,
		Quantity:  cmd.Quantity,
		Reason:    cmd.Reason,
		UserID:    cmd.UserID,
	}

	newStock, status, err := h.repo.ApplyMovement(movement)
	if err != nil {
		return nil, fmt.Errorf("failed to apply movement: %w", err)
	}

	// Best effort: the movement is committed, the event stream lags on failure.
	if h.publisher != nil {
		event := kafka.StockMovementAppliedEvent{
			MovementID:    movement.ID,
			VariantID:     movement.VariantID,
			MovementType:  movement.Type,
			Quantity:      movement.Quantity,
			NewStock:      newStock,
			ProductStatus: status,
		}
		if err := h.publisher.PublishStockMovementApplied(ctx, event); err != nil {
			logger.Error(ctx).Err(err).Uint("movement_id", movement.ID).Msg("Failed to publish stock movement event")
		}
	}

	return &ApplyMovementResult{
		Movement:      movement,
		NewStock:      newStock,
		ProductStatus: status,
	}, nil
}
