package command

import (
	"fmt"

	"github.com/seydina/distriops/internal/catalog/domain"
)

// CreateProductCommand represents the command to create a product
type CreateProductCommand struct {
	Name        string
	Description string
	Category    string
	SKU         string
}

// CreateProductHandler handles create product command
type CreateProductHandler struct {
	repo domain.CatalogRepository
}

// NewCreateProductHandler creates a new create product handler
func NewCreateProductHandler(repo domain.CatalogRepository) *CreateProductHandler {
	return &CreateProductHandler{repo: repo}
}

// Handle executes the create product command
func (h *CreateProductHandler) Handle(cmd CreateProductCommand) (*domain.Product, error) {
	if cmd.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if cmd.SKU == "" {
		return nil, fmt.Errorf("sku is required")
	}

	if existing, _ := h.repo.FindProductBySKU(cmd.SKU); existing != nil {
		return nil, fmt.Errorf("sku already exists")
	}

	product := &domain.Product{
		Name:        cmd.Name,
		Description: cmd.Description,
		Category:    cmd.Category,
		SKU:         cmd.SKU,
		Status:      domain.StatusRupture,
		IsActive:    true,
	}

	if err := h.repo.CreateProduct(product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return product, nil
}
