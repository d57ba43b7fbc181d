package query

import (
	"fmt"

	"github.com/seydina/distriops/internal/stock/domain"
)

// ListMovementsQuery represents the query to list stock movements
type ListMovementsQuery struct {
	VariantID uint
	Limit     int
	Offset    int
}

// ListMovementsHandler handles list movements query
type ListMovementsHandler struct {
	repo domain.StockRepository
}

// NewListMovementsHandler creates a new list movements handler
func NewListMovementsHandler(repo domain.StockRepository) *ListMovementsHandler {
	return &ListMovementsHandler{repo: repo}
}

// Handle executes the list movements query
func (h *ListMovementsHandler) Handle(query ListMovementsQuery) ([]domain.StockMovement, error) {
	if query.Limit == 0 {
		query.Limit = 20
	}
	if query.Limit > 100 {
		query.Limit = 100
	}

	var (
		movements []domain.StockMovement
		err       error
	)
	if query.VariantID != 0 {
		movements, err = h.repo.FindByVariant(query.VariantID, query.Limit, query.Offset)
	} else {
		movements, err = h.repo.FindAll(query.Limit, query.Offset)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list movements: %w", err)
	}

	return movements, nil
}
