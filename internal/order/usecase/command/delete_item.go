package command

import (
	"fmt"

	"github.com/seydina/distriops/internal/order/domain"
)

// DeleteItemCommand represents the command to delete an order item
type DeleteItemCommand struct {
	ItemID uint
}

// DeleteItemHandler handles delete item command
type DeleteItemHandler struct {
	repo domain.OrderRepository
}

// NewDeleteItemHandler creates a new delete item handler
func NewDeleteItemHandler(repo domain.OrderRepository) *DeleteItemHandler {
	return &DeleteItemHandler{repo: repo}
}

// Handle executes the delete item command
func (h *DeleteItemHandler) Handle(cmd DeleteItemCommand) error {
	if cmd.ItemID == 0 {
		return fmt.Errorf("item_id is required")
	}

	if err := h.repo.DeleteItem(cmd.ItemID); err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}

	return nil
}
