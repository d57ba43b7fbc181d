package query

import (
	"fmt"

	"github.com/seydina/distriops/internal/order/domain"
)

// GetOrderQuery represents the query to get an order
type GetOrderQuery struct {
	ID uint
}

// GetOrderHandler handles get order query
type GetOrderHandler struct {
	repo domain.OrderRepository
}

// NewGetOrderHandler creates a new get order handler
func NewGetOrderHandler(repo domain.OrderRepository) *GetOrderHandler {
	return &GetOrderHandler{repo: repo}
}

// Handle executes the get order query
func (h *GetOrderHandler) Handle(query GetOrderQuery) (*domain.Order, error) {
	if query.ID == 0 {
		return nil, fmt.Errorf("id is required")
	}

	order, err := h.repo.FindByID(query.ID)
	if err != nil {
		return nil, fmt.Errorf("order not found: %w", err)
	}

	return order, nil
}
