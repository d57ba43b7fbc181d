package query

import (
	"fmt"

	"github.com/seydina/distriops/internal/order/domain"
)

// ListOrdersQuery represents the query to list orders
type ListOrdersQuery struct {
	Status string
	Limit  int
	Offset int
}

// ListOrdersHandler handles list orders query
type ListOrdersHandler struct {
	repo domain.OrderRepository
}

// NewListOrdersHandler creates a new list orders handler
func NewListOrdersHandler(repo domain.OrderRepository) *ListOrdersHandler {
	return &ListOrdersHandler{repo: repo}
}

// Handle executes the list orders query
func (h *ListOrdersHandler) Handle(query ListOrdersQuery) ([]domain.Order, error) {
	if query.Limit == 0 {
		query.Limit = 10
	}
	if query.Limit > 100 {
		query.Limit = 100
	}

	var (
		orders []domain.Order
		err    error
	)
	if query.Status != "" {
		orders, err = h.repo.FindByStatus(query.Status, query.Limit, query.Offset)
	} else {
		orders, err = h.repo.FindAll(query.Limit, query.Offset)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	return orders, nil
}
