package command

import (
	"context"
	"errors"
	"fmt"

	orderdomain "github.com/seydina/distriops/internal/order/domain"
	"github.com/seydina/distriops/internal/vendors/domain"
	"github.com/seydina/distriops/pkg/logger"
)

// contextActivityCreator is the optional traced variant of
// VendorRepository.CreateActivity
type contextActivityCreator interface {
	CreateActivityWithContext(ctx context.Context, activity *domain.VendorActivity) error
}

// CreateActivityCommand represents the command to record a vendor
// activity. For stock_replenishment activities linked to an order,
// Quantity is the assignment handed to the vendor, distributed across
// the order's items on creation.
type CreateActivityCommand struct {
	VendorID  uint
	Type      string
	Zone      string
	Notes     string
	Latitude  float64
	Longitude float64
	OrderID   uint
	VariantID uint
	Quantity  int
}

// CreateActivityHandler handles create activity command
type CreateActivityHandler struct {
	repo   domain.VendorRepository
	orders orderdomain.OrderRepository
}

// NewCreateActivityHandler creates a new create activity handler
func NewCreateActivityHandler(repo domain.VendorRepository, orders orderdomain.OrderRepository) *CreateActivityHandler {
	return &CreateActivityHandler{repo: repo, orders: orders}
}

// Handle executes the create activity command. Replenishment activities
// with a linked order run the distribution pass after the activity row
// exists; if the pass fails unrecoverably the activity is deleted again
// and the error re-raised.
func (h *CreateActivityHandler) Handle(ctx context.Context, cmd CreateActivityCommand) (*domain.VendorActivity, error) {
	if cmd.VendorID == 0 {
		return nil, fmt.Errorf("vendor_id is required")
	}
	if !domain.ValidActivityType(cmd.Type) {
		return nil, fmt.Errorf("invalid activity type: %q", cmd.Type)
	}
	if cmd.Quantity < 0 {
		return nil, fmt.Errorf("quantity cannot be negative")
	}

	if _, err := h.repo.FindVendorByID(cmd.VendorID); err != nil {
		return nil, fmt.Errorf("vendor not found")
	}

	activity := &domain.VendorActivity{
		VendorID:  cmd.VendorID,
		OrderID:   cmd.OrderID,
		VariantID: cmd.VariantID,
		Type:      cmd.Type,
		Zone:      cmd.Zone,
		Notes:     cmd.Notes,
		Latitude:  cmd.Latitude,
		Longitude: cmd.Longitude,
	}

	// Only a replenishment with both an order and an assignment runs
	// the distribution pass.
	distribute := cmd.Type == domain.ActivityReplenishment && cmd.OrderID != 0 && cmd.Quantity > 0
	if distribute {
		if _, err := h.orders.FindByID(cmd.OrderID); err != nil {
			return nil, fmt.Errorf("order not found: %w", err)
		}
		activity.QuantityAssignes = cmd.Quantity
	}

	var createErr error
	if traced, ok := h.repo.(contextActivityCreator); ok {
		createErr = traced.CreateActivityWithContext(ctx, activity)
	} else {
		createErr = h.repo.CreateActivity(activity)
	}
	if createErr != nil {
		return nil, fmt.Errorf("failed to create activity: %w", createErr)
	}
	if !distribute {
		return activity, nil
	}

	leftover, err := h.distribute(activity)
	if err != nil {
		if delErr := h.repo.DeleteActivity(activity.ID); delErr != nil {
			logger.Logger.Error().Err(delErr).
				Uint("activity_id", activity.ID).
				Msg("failed to delete activity after distribution failure")
		}
		return nil, err
	}

	activity.QuantityRestante = leftover
	if err := h.repo.UpdateActivityRestante(activity.ID, leftover); err != nil {
		if delErr := h.repo.DeleteActivity(activity.ID); delErr != nil {
			logger.Logger.Error().Err(delErr).
				Uint("activity_id", activity.ID).
				Msg("failed to delete activity after remainder update failure")
		}
		return nil, fmt.Errorf("failed to record remainder: %w", err)
	}

	return activity, nil
}

// distribute walks the order's items in id order, allocating
// min(remaining, item unallocated) into each until the assignment is
// placed. Items that turn out to be exhausted are skipped rather than
// failing the whole pass. Returns the quantity that could not be
// placed anywhere.
func (h *CreateActivityHandler) distribute(activity *domain.VendorActivity) (int, error) {
	items, err := h.orders.FindItemsByOrder(activity.OrderID)
	if err != nil {
		return 0, fmt.Errorf("failed to load order items: %w", err)
	}

	remaining := activity.QuantityAssignes

	for i := range items {
		if remaining == 0 {
			break
		}
		item := &items[i]

		take := item.QuantiteRestante()
		if take <= 0 {
			continue
		}
		if take > remaining {
			take = remaining
		}

		if err := item.Allocate(take); err != nil {
			var allocErr *orderdomain.AllocationError
			if errors.As(err, &allocErr) {
				logger.Logger.Warn().
					Uint("item_id", item.ID).
					Int("requested", take).
					Int("available", allocErr.Available).
					Msg("skipping exhausted order item")
				continue
			}
			return 0, err
		}

		if err := h.orders.SaveItemAllocation(item); err != nil {
			return 0, fmt.Errorf("failed to save allocation for item %d: %w", item.ID, err)
		}

		remaining -= take
	}

	return remaining, nil
}
