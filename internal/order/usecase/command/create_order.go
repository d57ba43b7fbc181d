package command

import (
	"fmt"

	catalogdomain "github.com/seydina/distriops/internal/catalog/domain"
	"github.com/seydina/distriops/internal/order/domain"
)

// OrderItemInput is one requested line of a new order
type OrderItemInput struct {
	VariantID uint
	Quantity  int
	Price     float64 // optional, defaults to the variant price
}

// CreateOrderCommand represents the command to create an order with items
type CreateOrderCommand struct {
	PointOfSale string
	Phone       string
	Items       []OrderItemInput
}

// CreateOrderHandler handles create order command
type CreateOrderHandler struct {
	repo    domain.OrderRepository
	catalog catalogdomain.CatalogRepository
}

// NewCreateOrderHandler creates a new create order handler
func NewCreateOrderHandler(repo domain.OrderRepository, catalog catalogdomain.CatalogRepository) *CreateOrderHandler {
	return &CreateOrderHandler{repo: repo, catalog: catalog}
}

// Handle executes the create order command
func (h *CreateOrderHandler) Handle(cmd CreateOrderCommand) (*domain.Order, error) {
	if cmd.PointOfSale == "" {
		return nil, fmt.Errorf("point_of_sale is required")
	}
	if len(cmd.Items) == 0 {
		return nil, fmt.Errorf("at least one item is required")
	}

	order := &domain.Order{
		PointOfSale: cmd.PointOfSale,
		Phone:       cmd.Phone,
		Status:      domain.StatusPending,
	}

	for _, in := range cmd.Items {
		if in.Quantity <= 0 {
			return nil, fmt.Errorf("item quantity must be greater than 0")
		}

		variant, err := h.catalog.FindVariantByID(in.VariantID)
		if err != nil {
			return nil, fmt.Errorf("variant %d not found", in.VariantID)
		}

		price := in.Price
		if price == 0 {
			price = variant.Price
		}

		order.Items = append(order.Items, domain.OrderItem{
			VariantID: in.VariantID,
			Quantity:  in.Quantity,
			Price:     price,
		})
	}

	if err := h.repo.CreateWithItems(order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	return order, nil
}
