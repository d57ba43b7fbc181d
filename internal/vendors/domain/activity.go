package domain

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Activity types
const (
	ActivityCheckIn       = "check_in"
	ActivityCheckOut      = "check_out"
	ActivitySale          = "sale"
	ActivityReplenishment = "stock_replenishment"
	ActivityIncident      = "incident"
	ActivityOther         = "other"
)

// ValidActivityType reports whether t is a known activity type
func ValidActivityType(t string) bool {
	switch t {
	case ActivityCheckIn, ActivityCheckOut, ActivitySale,
		ActivityReplenishment, ActivityIncident, ActivityOther:
		return true
	}
	return false
}

// VendorActivity represents one vendor event. A stock_replenishment
// activity linked to an order carries a stock assignment:
// quantity_assignes units handed to the vendor, of which
// quantity_restante are still unsold and quantity_sales already sold.
// quantity_restante + quantity_sales must always equal quantity_assignes
// once the sale executor is the only writer of the two counters.
type VendorActivity struct {
	ID               uint           `json:"id" gorm:"primaryKey"`
	VendorID         uint           `json:"vendor_id" gorm:"index;not null"`
	OrderID          uint           `json:"order_id" gorm:"index"`
	VariantID        uint           `json:"variant_id" gorm:"index"`
	Type             string         `json:"type" gorm:"not null"`
	Zone             string         `json:"zone"`
	Notes            string         `json:"notes"`
	Latitude         float64        `json:"latitude"`
	Longitude        float64        `json:"longitude"`
	QuantityAssignes int            `json:"quantity_assignes"`
	QuantityRestante int            `json:"quantity_restante"`
	QuantitySales    int            `json:"quantity_sales"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName specifies the table name for VendorActivity
func (VendorActivity) TableName() string {
	return "vendor_activities"
}

// Sale records one sale executed against an activity's remaining stock
type Sale struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Reference   string    `json:"reference" gorm:"uniqueIndex;not null"`
	ActivityID  uint      `json:"activity_id" gorm:"index;not null"`
	VendorID    uint      `json:"vendor_id" gorm:"index;not null"`
	VariantID   uint      `json:"variant_id" gorm:"index"`
	Quantity    int       `json:"quantity" gorm:"not null"`
	UnitPrice   float64   `json:"unit_price"`
	TotalAmount float64   `json:"total_amount"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName specifies the table name for Sale
func (Sale) TableName() string {
	return "sales"
}

// SellError is returned when a sale cannot be taken from an activity's
// remaining quantity
type SellError struct {
	ActivityID uint
	Requested  int
	Available  int
}

func (e *SellError) Error() string {
	return fmt.Sprintf("cannot sell %d from activity %d: only %d remaining",
		e.Requested, e.ActivityID, e.Available)
}

// VendorRepository provides access to vendor accounts, activities and sales
type VendorRepository interface {
	CreateVendor(vendor *Vendor) error
	FindVendorByID(id uint) (*Vendor, error)
	FindVendorByUsername(username string) (*Vendor, error)
	FindAllVendors(limit, offset int) ([]Vendor, error)
	UpdateVendor(vendor *Vendor) error

	CreateActivity(activity *VendorActivity) error
	FindActivityByID(id uint) (*VendorActivity, error)
	FindActivitiesByVendor(vendorID uint, limit, offset int) ([]VendorActivity, error)
	FindAllActivities(limit, offset int) ([]VendorActivity, error)
	// UpdateActivityRestante persists only the unallocated remainder,
	// written once by the allocation engine after distribution.
	UpdateActivityRestante(id uint, restante int) error
	DeleteActivity(id uint) error

	// Sell atomically debits quantity from the activity's remaining
	// stock and records the sale. It returns the refreshed activity
	// alongside the recorded sale.
	Sell(activityID uint, sale *Sale) (*VendorActivity, error)
	FindSaleByID(id uint) (*Sale, error)
	FindSalesByVendor(vendorID uint, limit, offset int) ([]Sale, error)
	FindSalesByActivity(activityID uint) ([]Sale, error)
	FindAllSales(limit, offset int) ([]Sale, error)
}
