package command

import (
	"fmt"

	"github.com/seydina/distriops/internal/vendors/domain"
	"github.com/seydina/distriops/pkg/auth"
)

// LoginVendorCommand represents the command to log a vendor in
type LoginVendorCommand struct {
	Username string
	Password string
}

// LoginResult carries the issued token and the authenticated vendor
type LoginResult struct {
	Token  string         `json:"token"`
	Vendor *domain.Vendor `json:"vendor"`
}

// LoginVendorHandler handles vendor login
type LoginVendorHandler struct {
	repo domain.VendorRepository
}

// NewLoginVendorHandler creates a new login vendor handler
func NewLoginVendorHandler(repo domain.VendorRepository) *LoginVendorHandler {
	return &LoginVendorHandler{repo: repo}
}

// Handle executes the login vendor command
func (h *LoginVendorHandler) Handle(cmd LoginVendorCommand) (*LoginResult, error) {
	if cmd.Username == "" || cmd.Password == "" {
		return nil, fmt.Errorf("username and password are required")
	}

	vendor, err := h.repo.FindVendorByUsername(cmd.Username)
	if err != nil {
		return nil, fmt.Errorf("invalid credentials")
	}
	if !vendor.IsActive {
		return nil, fmt.Errorf("account is disabled")
	}
	if !auth.CheckPassword(vendor.PasswordHash, cmd.Password) {
		return nil, fmt.Errorf("invalid credentials")
	}

	token, err := auth.GenerateToken(vendor.ID, vendor.Username, "vendor")
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &LoginResult{Token: token, Vendor: vendor}, nil
}
