package command

import (
	"fmt"

	"github.com/seydina/distriops/internal/order/domain"
)

// UpdateStatusCommand represents the command to update an order's status
type UpdateStatusCommand struct {
	OrderID uint
	Status  string
}

// UpdateStatusHandler handles update status command
type UpdateStatusHandler struct {
	repo domain.OrderRepository
}

// NewUpdateStatusHandler creates a new update status handler
func NewUpdateStatusHandler(repo domain.OrderRepository) *UpdateStatusHandler {
	return &UpdateStatusHandler{repo: repo}
}

// Handle executes the update status command
func (h *UpdateStatusHandler) Handle(cmd UpdateStatusCommand) error {
	if cmd.OrderID == 0 {
		return fmt.Errorf("order_id is required")
	}
	if !domain.ValidStatus(cmd.Status) {
		return fmt.Errorf("invalid status: %q", cmd.Status)
	}

	if _, err := h.repo.FindByID(cmd.OrderID); err != nil {
		return fmt.Errorf("order not found")
	}

	if err := h.repo.UpdateStatus(cmd.OrderID, cmd.Status); err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}

	return nil
}
