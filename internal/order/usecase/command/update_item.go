package command

import (
	"fmt"

	"github.com/seydina/distriops/internal/order/domain"
)

// UpdateItemCommand represents the command to change an item's quantity
type UpdateItemCommand struct {
	ItemID   uint
	Quantity int
}

// UpdateItemHandler handles update item command
type UpdateItemHandler struct {
	repo domain.OrderRepository
}

// NewUpdateItemHandler creates a new update item handler
func NewUpdateItemHandler(repo domain.OrderRepository) *UpdateItemHandler {
	return &UpdateItemHandler{repo: repo}
}

// Handle executes the update item command
func (h *UpdateItemHandler) Handle(cmd UpdateItemCommand) (*domain.OrderItem, error) {
	if cmd.ItemID == 0 {
		return nil, fmt.Errorf("item_id is required")
	}
	if cmd.Quantity <= 0 {
		return nil, fmt.Errorf("quantity must be greater than 0")
	}

	item, err := h.repo.UpdateItemQuantity(cmd.ItemID, cmd.Quantity)
	if err != nil {
		return nil, err
	}

	return item, nil
}
