package query

import (
	"fmt"

	"github.com/seydina/distriops/internal/vendors/domain"
)

// VendorStats summarizes one vendor's assignment and sales position
type VendorStats struct {
	VendorID         uint    `json:"vendor_id"`
	Activities       int     `json:"activities"`
	QuantityAssignes int     `json:"quantity_assignes"`
	QuantityRestante int     `json:"quantity_restante"`
	QuantitySales    int     `json:"quantity_sales"`
	SalesCount       int     `json:"sales_count"`
	SalesAmount      float64 `json:"sales_amount"`
}

// GetVendorStatsQuery represents the query to compute vendor stats
type GetVendorStatsQuery struct {
	VendorID uint
}

// GetVendorStatsHandler handles vendor stats query
type GetVendorStatsHandler struct {
	repo domain.VendorRepository
}

// NewGetVendorStatsHandler creates a new vendor stats handler
func NewGetVendorStatsHandler(repo domain.VendorRepository) *GetVendorStatsHandler {
	return &GetVendorStatsHandler{repo: repo}
}

// Handle executes the vendor stats query
func (h *GetVendorStatsHandler) Handle(query GetVendorStatsQuery) (*VendorStats, error) {
	if query.VendorID == 0 {
		return nil, fmt.Errorf("vendor_id is required")
	}

	if _, err := h.repo.FindVendorByID(query.VendorID); err != nil {
		return nil, fmt.Errorf("vendor not found")
	}

	stats := &VendorStats{VendorID: query.VendorID}

	offset := 0
	const page = 100
	for {
		activities, err := h.repo.FindActivitiesByVendor(query.VendorID, page, offset)
		if err != nil {
			return nil, fmt.Errorf("failed to load activities: %w", err)
		}
		for _, a := range activities {
			stats.Activities++
			stats.QuantityAssignes += a.QuantityAssignes
			stats.QuantityRestante += a.QuantityRestante
			stats.QuantitySales += a.QuantitySales
		}
		if len(activities) < page {
			break
		}
		offset += page
	}

	offset = 0
	for {
		sales, err := h.repo.FindSalesByVendor(query.VendorID, page, offset)
		if err != nil {
			return nil, fmt.Errorf("failed to load sales: %w", err)
		}
		for _, s := range sales {
			stats.SalesCount++
			stats.SalesAmount += s.TotalAmount
		}
		if len(sales) < page {
			break
		}
		offset += page
	}

	return stats, nil
}
