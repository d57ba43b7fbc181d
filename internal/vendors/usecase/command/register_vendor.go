package command

import (
	"fmt"

	"github.com/seydina/distriops/internal/vendors/domain"
	"github.com/seydina/distriops/pkg/auth"
)

// RegisterVendorCommand represents the command to register a vendor
type RegisterVendorCommand struct {
	Username string
	Password string
	FullName string
	Phone    string
	Zone     string
}

// RegisterVendorHandler handles vendor registration
type RegisterVendorHandler struct {
	repo domain.VendorRepository
}

// NewRegisterVendorHandler creates a new register vendor handler
func NewRegisterVendorHandler(repo domain.VendorRepository) *RegisterVendorHandler {
	return &RegisterVendorHandler{repo: repo}
}

// Handle executes the register vendor command
func (h *RegisterVendorHandler) Handle(cmd RegisterVendorCommand) (*domain.Vendor, error) {
	if cmd.Username == "" {
		return nil, fmt.Errorf("username is required")
	}
	if len(cmd.Password) < 6 {
		return nil, fmt.Errorf("password must be at least 6 characters")
	}

	if _, err := h.repo.FindVendorByUsername(cmd.Username); err == nil {
		return nil, fmt.Errorf("username already taken")
	}

	hash, err := auth.HashPassword(cmd.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	vendor := &domain.Vendor{
		Username:     cmd.Username,
		PasswordHash: hash,
		FullName:     cmd.FullName,
		Phone:        cmd.Phone,
		Zone:         cmd.Zone,
		IsActive:     true,
	}

	if err := h.repo.CreateVendor(vendor); err != nil {
		return nil, fmt.Errorf("failed to create vendor: %w", err)
	}

	return vendor, nil
}
