package query

import (
	"fmt"

	"github.com/seydina/distriops/internal/vendors/domain"
)

// ListSalesQuery represents the query to list sales
type ListSalesQuery struct {
	VendorID   uint
	ActivityID uint
	Limit      int
	Offset     int
}

// ListSalesHandler handles list sales query
type ListSalesHandler struct {
	repo domain.VendorRepository
}

// NewListSalesHandler creates a new list sales handler
func NewListSalesHandler(repo domain.VendorRepository) *ListSalesHandler {
	return &ListSalesHandler{repo: repo}
}

// Handle executes the list sales query
func (h *ListSalesHandler) Handle(query ListSalesQuery) ([]domain.Sale, error) {
	if query.Limit == 0 {
		query.Limit = 20
	}
	if query.Limit > 100 {
		query.Limit = 100
	}

	var (
		sales []domain.Sale
		err   error
	)
	switch {
	case query.ActivityID != 0:
		sales, err = h.repo.FindSalesByActivity(query.ActivityID)
	case query.VendorID != 0:
		sales, err = h.repo.FindSalesByVendor(query.VendorID, query.Limit, query.Offset)
	default:
		sales, err = h.repo.FindAllSales(query.Limit, query.Offset)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list sales: %w", err)
	}

	return sales, nil
}
