package query

import (
	"fmt"

	"github.com/seydina/distriops/internal/catalog/domain"
)

// GetStatsQuery represents the query to get catalog statistics
type GetStatsQuery struct{}

// CatalogStats represents product counts per stock status
type CatalogStats struct {
	TotalProducts int64 `json:"total_products"`
	EnStock       int64 `json:"en_stock"`
	StockFaible   int64 `json:"stock_faible"`
	Rupture       int64 `json:"rupture"`
	Surstockage   int64 `json:"surstockage"`
}

// GetStatsHandler handles get stats query
type GetStatsHandler struct {
	repo domain.CatalogRepository
}

// NewGetStatsHandler creates a new get stats handler
func NewGetStatsHandler(repo domain.CatalogRepository) *GetStatsHandler {
	return &GetStatsHandler{repo: repo}
}

// Handle executes the get stats query
func (h *GetStatsHandler) Handle(query GetStatsQuery) (*CatalogStats, error) {
	total, err := h.repo.CountProducts()
	if err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}

	stats := &CatalogStats{TotalProducts: total}

	counts := []struct {
		status string
		dest   *int64
	}{
		{domain.StatusEnStock, &stats.EnStock},
		{domain.StatusStockFaible, &stats.StockFaible},
		{domain.StatusRupture, &stats.Rupture},
		{domain.StatusSurstockage, &stats.Surstockage},
	}
	for _, c := range counts {
		n, err := h.repo.CountProductsByStatus(c.status)
		if err != nil {
			return nil, fmt.Errorf("failed to count products by status: %w", err)
		}
		*c.dest = n
	}

	return stats, nil
}
