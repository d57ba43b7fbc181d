package domain

import (
	"time"
)

// Movement types. Stored ASCII: entrée -> entree.
const (
	MovementEntree     = "entree"
	MovementSortie     = "sortie"
	MovementAjustement = "ajustement"
)

// StockMovement is an immutable ledger entry applied to one product variant.
// Rows are only ever inserted; deleting one would NOT reverse its stock
// effect, so no delete operation is exposed.
type StockMovement struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	VariantID uint      `json:"variant_id" gorm:"not null;index"`
	Type      string    `json:"type" gorm:"not null"`
	Quantity  int       `json:"quantity" gorm:"not null"`
	Reason    string    `json:"reason"`
	UserID    uint      `json:"user_id" gorm:"index"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name
func (StockMovement) TableName() string {
	return "stock_movements"
}

// ValidType reports whether t is a known movement type.
func ValidType(t string) bool {
	return t == MovementEntree || t == MovementSortie || t == MovementAjustement
}

// Apply computes the stock level after this movement. A sortie larger than
// the available stock floors at zero instead of failing; the over-withdrawal
// is silently absorbed.
func (m *StockMovement) Apply(currentStock int) int {
	switch m.Type {
	case MovementEntree:
		return currentStock + m.Quantity
	case MovementSortie:
		next := currentStock - m.Quantity
		if next < 0 {
			return 0
		}
		return next
	case MovementAjustement:
		return m.Quantity
	default:
		return currentStock
	}
}

// StockRepository defines the contract for stock movement data access
type StockRepository interface {
	ApplyMovement(movement *StockMovement) (newStock int, productStatus string, err error)
	FindByVariant(variantID uint, limit, offset int) ([]StockMovement, error)
	FindAll(limit, offset int) ([]StockMovement, error)
}
