package query

import (
	"fmt"

	"github.com/seydina/distriops/internal/vendors/domain"
)

// ListActivitiesQuery represents the query to list activities
type ListActivitiesQuery struct {
	VendorID uint
	Limit    int
	Offset   int
}

// ListActivitiesHandler handles list activities query
type ListActivitiesHandler struct {
	repo domain.VendorRepository
}

// NewListActivitiesHandler creates a new list activities handler
func NewListActivitiesHandler(repo domain.VendorRepository) *ListActivitiesHandler {
	return &ListActivitiesHandler{repo: repo}
}

// Handle executes the list activities query
func (h *ListActivitiesHandler) Handle(query ListActivitiesQuery) ([]domain.VendorActivity, error) {
	if query.Limit == 0 {
		query.Limit = 20
	}
	if query.Limit > 100 {
		query.Limit = 100
	}

	var (
		activities []domain.VendorActivity
		err        error
	)
	if query.VendorID != 0 {
		activities, err = h.repo.FindActivitiesByVendor(query.VendorID, query.Limit, query.Offset)
	} else {
		activities, err = h.repo.FindAllActivities(query.Limit, query.Offset)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}

	return activities, nil
}
