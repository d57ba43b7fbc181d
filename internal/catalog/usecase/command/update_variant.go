package command

import (
	"fmt"

	"github.com/seydina/distriops/internal/catalog/domain"
)

// UpdateVariantCommand represents the command to update a variant's bounds
// and price. Stock itself moves only through stock movements, order items
// and sales.
type UpdateVariantCommand struct {
	ID       uint
	Name     string
	MinStock *int
	MaxStock *int
	Price    *float64
}

// UpdateVariantHandler handles update variant command
type UpdateVariantHandler struct {
	repo domain.CatalogRepository
}

// NewUpdateVariantHandler creates a new update variant handler
func NewUpdateVariantHandler(repo domain.CatalogRepository) *UpdateVariantHandler {
	return &UpdateVariantHandler{repo: repo}
}

// Handle executes the update variant command
func (h *UpdateVariantHandler) Handle(cmd UpdateVariantCommand) (*domain.ProductVariant, error) {
	if cmd.ID == 0 {
		return nil, fmt.Errorf("id is required")
	}

	variant, err := h.repo.FindVariantByID(cmd.ID)
	if err != nil {
		return nil, fmt.Errorf("variant not found")
	}

	if cmd.Name != "" {
		variant.Name = cmd.Name
	}
	if cmd.MinStock != nil {
		variant.MinStock = *cmd.MinStock
	}
	if cmd.MaxStock != nil {
		variant.MaxStock = *cmd.MaxStock
	}
	if variant.MinStock < 0 || variant.MaxStock < variant.MinStock {
		return nil, fmt.Errorf("invalid stock bounds")
	}
	if cmd.Price != nil {
		if *cmd.Price <= 0 {
			return nil, fmt.Errorf("price must be greater than 0")
		}
		variant.Price = *cmd.Price
	}

	if err := h.repo.UpdateVariant(variant); err != nil {
		return nil, fmt.Errorf("failed to update variant: %w", err)
	}

	return variant, nil
}
