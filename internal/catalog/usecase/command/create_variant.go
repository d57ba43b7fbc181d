package command

import (
	"fmt"

	"github.com/seydina/distriops/internal/catalog/domain"
)

// CreateVariantCommand represents the command to create a product variant
type CreateVariantCommand struct {
	ProductID    uint
	Name         string
	CurrentStock int
	MinStock     int
	MaxStock     int
	Price        float64
}

// CreateVariantHandler handles create variant command
type CreateVariantHandler struct {
	repo domain.CatalogRepository
}

// NewCreateVariantHandler creates a new create variant handler
func NewCreateVariantHandler(repo domain.CatalogRepository) *CreateVariantHandler {
	return &CreateVariantHandler{repo: repo}
}

// Handle executes the create variant command
func (h *CreateVariantHandler) Handle(cmd CreateVariantCommand) (*domain.ProductVariant, error) {
	if cmd.ProductID == 0 {
		return nil, fmt.Errorf("product_id is required")
	}
	if cmd.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if cmd.CurrentStock < 0 {
		return nil, fmt.Errorf("current_stock cannot be negative")
	}
	if cmd.MinStock < 0 || cmd.MaxStock < cmd.MinStock {
		return nil, fmt.Errorf("invalid stock bounds")
	}
	if cmd.Price <= 0 {
		return nil, fmt.Errorf("price must be greater than 0")
	}

	if _, err := h.repo.FindProductByID(cmd.ProductID); err != nil {
		return nil, fmt.Errorf("product not found")
	}

	variant := &domain.ProductVariant{
		ProductID:    cmd.ProductID,
		Name:         cmd.Name,
		CurrentStock: cmd.CurrentStock,
		MinStock:     cmd.MinStock,
		MaxStock:     cmd.MaxStock,
		Price:        cmd.Price,
	}

	if err := h.repo.CreateVariant(variant); err != nil {
		return nil, fmt.Errorf("failed to create variant: %w", err)
	}

	return variant, nil
}
