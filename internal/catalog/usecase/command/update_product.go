package command

import (
	"fmt"

	"github.com/seydina/distriops/internal/catalog/domain"
)

// UpdateProductCommand represents the command to update a product
type UpdateProductCommand struct {
	ID          uint
	Name        string
	Description string
	Category    string
	IsActive    *bool
}

// UpdateProductHandler handles update product command
type UpdateProductHandler struct {
	repo domain.CatalogRepository
}

// NewUpdateProductHandler creates a new update product handler
func NewUpdateProductHandler(repo domain.CatalogRepository) *UpdateProductHandler {
	return &UpdateProductHandler{repo: repo}
}

// Handle executes the update product command
func (h *UpdateProductHandler) Handle(cmd UpdateProductCommand) (*domain.Product, error) {
	if cmd.ID == 0 {
		return nil, fmt.Errorf("id is required")
	}

	product, err := h.repo.FindProductByID(cmd.ID)
	if err != nil {
		return nil, fmt.Errorf("product not found")
	}

	if cmd.Name != "" {
		product.Name = cmd.Name
	}
	if cmd.Description != "" {
		product.Description = cmd.Description
	}
	if cmd.Category != "" {
		product.Category = cmd.Category
	}
	if cmd.IsActive != nil {
		product.IsActive = *cmd.IsActive
	}

	if err := h.repo.UpdateProduct(product); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	return product, nil
}
