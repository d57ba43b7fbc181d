package query

import (
	"fmt"

	"github.com/seydina/distriops/internal/vendors/domain"
)

// ListVendorsQuery represents the query to list vendors
type ListVendorsQuery struct {
	Limit  int
	Offset int
}

// ListVendorsHandler handles list vendors query
type ListVendorsHandler struct {
	repo domain.VendorRepository
}

// NewListVendorsHandler creates a new list vendors handler
func NewListVendorsHandler(repo domain.VendorRepository) *ListVendorsHandler {
	return &ListVendorsHandler{repo: repo}
}

// Handle executes the list vendors query
func (h *ListVendorsHandler) Handle(query ListVendorsQuery) ([]domain.Vendor, error) {
	if query.Limit == 0 {
		query.Limit = 20
	}
	if query.Limit > 100 {
		query.Limit = 100
	}

	vendors, err := h.repo.FindAllVendors(query.Limit, query.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list vendors: %w", err)
	}

	return vendors, nil
}
