package command

import (
	"fmt"

	"github.com/seydina/distriops/internal/catalog/domain"
)

// DeleteProductCommand represents the command to delete a product
type DeleteProductCommand struct {
	ID uint
}

// DeleteProductHandler handles delete product command
type DeleteProductHandler struct {
	repo domain.CatalogRepository
}

// NewDeleteProductHandler creates a new delete product handler
func NewDeleteProductHandler(repo domain.CatalogRepository) *DeleteProductHandler {
	return &DeleteProductHandler{repo: repo}
}

// Handle executes the delete product command
func (h *DeleteProductHandler) Handle(cmd DeleteProductCommand) error {
	if cmd.ID == 0 {
		return fmt.Errorf("id is required")
	}

	if _, err := h.repo.FindProductByID(cmd.ID); err != nil {
		return fmt.Errorf("product not found")
	}

	if err := h.repo.DeleteProduct(cmd.ID); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	return nil
}
