package domain

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Order statuses
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusShipped   = "shipped"
	StatusDelivered = "delivered"
	StatusCancelled = "cancelled"
)

// ValidStatus reports whether s is a known order status.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// Order aggregates the items ordered by one point of sale.
type Order struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	PointOfSale string         `json:"point_of_sale" gorm:"not null"`
	Phone       string         `json:"phone"`
	Status      string         `json:"status" gorm:"not null;default:'pending'"`
	Total       float64        `json:"total" gorm:"not null;default:0"`
	Items       []OrderItem    `json:"items,omitempty" gorm:"foreignKey:OrderID"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName specifies the table name
func (Order) TableName() string {
	return "orders"
}

// OrderItem is one ordered line. QuantityAffecte tracks how much of the
// ordered quantity has been handed to vendors so far.
type OrderItem struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	OrderID         uint      `json:"order_id" gorm:"not null;index"`
	VariantID       uint      `json:"variant_id" gorm:"not null;index"`
	Quantity        int       `json:"quantity" gorm:"not null"`
	QuantityAffecte int       `json:"quantity_affecte" gorm:"not null;default:0"`
	Price           float64   `json:"price" gorm:"not null"`
	Total           float64   `json:"total" gorm:"not null"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// TableName specifies the table name
func (OrderItem) TableName() string {
	return "order_items"
}

// AllocationError is returned when an allocation would push an item past its
// ordered quantity. It carries the numbers the caller needs to retry.
type AllocationError struct {
	ItemID    uint `json:"item_id"`
	Requested int  `json:"requested"`
	Available int  `json:"available"`
}

func (e *AllocationError) Error() string {
	return fmt.Sprintf("cannot allocate %d to order item %d: only %d remaining", e.Requested, e.ItemID, e.Available)
}

// AllocatedQuantityError is returned when an item's ordered quantity would
// drop below what vendors already hold.
type AllocatedQuantityError struct {
	ItemID    uint `json:"item_id"`
	Requested int  `json:"requested"`
	Allocated int  `json:"allocated"`
}

func (e *AllocatedQuantityError) Error() string {
	return fmt.Sprintf("cannot set order item %d quantity to %d: %d already allocated to vendors", e.ItemID, e.Requested, e.Allocated)
}

// QuantiteRestante returns the quantity not yet allocated to vendors.
func (i *OrderItem) QuantiteRestante() int {
	return i.Quantity - i.QuantityAffecte
}

// EstCompletementAffecte reports whether the item is fully allocated.
func (i *OrderItem) EstCompletementAffecte() bool {
	return i.QuantityAffecte == i.Quantity
}

// Allocate adds qty to the item's allocated quantity. The item is left
// untouched when the allocation would exceed the ordered quantity. The caller
// owns the transactional boundary; this is pure bookkeeping.
func (i *OrderItem) Allocate(qty int) error {
	if qty <= 0 {
		return &AllocationError{ItemID: i.ID, Requested: qty, Available: i.QuantiteRestante()}
	}
	if i.QuantityAffecte+qty > i.Quantity {
		return &AllocationError{ItemID: i.ID, Requested: qty, Available: i.QuantiteRestante()}
	}
	i.QuantityAffecte += qty
	return nil
}

// OrderRepository defines the contract for order data access
type OrderRepository interface {
	CreateWithItems(order *Order) error
	FindByID(id uint) (*Order, error)
	FindAll(limit, offset int) ([]Order, error)
	FindByStatus(status string, limit, offset int) ([]Order, error)
	UpdateStatus(id uint, status string) error
	Delete(id uint) error

	FindItemByID(itemID uint) (*OrderItem, error)
	FindItemsByOrder(orderID uint) ([]OrderItem, error)
	UpdateItemQuantity(itemID uint, quantity int) (*OrderItem, error)
	DeleteItem(itemID uint) error
	SaveItemAllocation(item *OrderItem) error
}
