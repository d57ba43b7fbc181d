package query

import (
	"context"
	"fmt"

	"github.com/seydina/distriops/internal/vendors/domain"
)

// contextActivityFinder is the optional traced variant of
// VendorRepository.FindActivityByID
type contextActivityFinder interface {
	FindActivityByIDWithContext(ctx context.Context, id uint) (*domain.VendorActivity, error)
}

// GetActivityQuery represents the query to get an activity
type GetActivityQuery struct {
	ID uint
}

// GetActivityHandler handles get activity query
type GetActivityHandler struct {
	repo domain.VendorRepository
}

// NewGetActivityHandler creates a new get activity handler
func NewGetActivityHandler(repo domain.VendorRepository) *GetActivityHandler {
	return &GetActivityHandler{repo: repo}
}

// Handle executes the get activity query
func (h *GetActivityHandler) Handle(ctx context.Context, query GetActivityQuery) (*domain.VendorActivity, error) {
	if query.ID == 0 {
		return nil, fmt.Errorf("id is required")
	}

	var (
		activity *domain.VendorActivity
		err      error
	)
	if traced, ok := h.repo.(contextActivityFinder); ok {
		activity, err = traced.FindActivityByIDWithContext(ctx, query.ID)
	} else {
		activity, err = h.repo.FindActivityByID(query.ID)
	}
	if err != nil {
		return nil, fmt.Errorf("activity not found: %w", err)
	}

	return activity, nil
}
