package domain

import (
	"time"

	"gorm.io/gorm"
)

// Product stock statuses, derived from variant stock levels.
const (
	StatusEnStock     = "en_stock"
	StatusStockFaible = "stock_faible"
	StatusRupture     = "rupture"
	StatusSurstockage = "surstockage"
)

// Product represents a catalog product. Status is derived: it is recomputed
// from the last-saved variant's stock against that variant's bounds.
type Product struct {
	ID          uint             `json:"id" gorm:"primaryKey"`
	Name        string           `json:"name" gorm:"not null"`
	Description string           `json:"description"`
	Category    string           `json:"category"`
	SKU         string           `json:"sku" gorm:"uniqueIndex"`
	Status      string           `json:"status" gorm:"not null;default:'en_stock'"`
	IsActive    bool             `json:"is_active" gorm:"default:true"`
	Variants    []ProductVariant `json:"variants,omitempty" gorm:"foreignKey:ProductID"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
	DeletedAt   gorm.DeletedAt   `json:"-" gorm:"index"`
}

// TableName specifies the table name
func (Product) TableName() string {
	return "products"
}

// ProductVariant holds the stock ledger for one sellable unit of a product.
type ProductVariant struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	ProductID    uint           `json:"product_id" gorm:"not null;index"`
	Name         string         `json:"name" gorm:"not null"`
	CurrentStock int            `json:"current_stock" gorm:"not null;default:0"`
	MinStock     int            `json:"min_stock" gorm:"not null;default:0"`
	MaxStock     int            `json:"max_stock" gorm:"not null;default:0"`
	Price        float64        `json:"price" gorm:"not null"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName specifies the table name
func (ProductVariant) TableName() string {
	return "product_variants"
}

// StatusFor computes the product status for a stock level against the
// variant's bounds. Order matters: rupture wins over stock_faible when the
// minimum is zero.
func StatusFor(currentStock, minStock, maxStock int) string {
	switch {
	case currentStock == 0:
		return StatusRupture
	case currentStock <= minStock:
		return StatusStockFaible
	case currentStock > maxStock:
		return StatusSurstockage
	default:
		return StatusEnStock
	}
}

// StatusOf computes the status a variant implies for its parent product.
func (v *ProductVariant) StatusOf() string {
	return StatusFor(v.CurrentStock, v.MinStock, v.MaxStock)
}

// CatalogRepository defines the contract for catalog data access
type CatalogRepository interface {
	CreateProduct(product *Product) error
	FindProductByID(id uint) (*Product, error)
	FindProductBySKU(sku string) (*Product, error)
	FindAllProducts(limit, offset int) ([]Product, error)
	FindProductsByCategory(category string, limit, offset int) ([]Product, error)
	UpdateProduct(product *Product) error
	DeleteProduct(id uint) error
	CountProducts() (int64, error)
	CountProductsByStatus(status string) (int64, error)

	CreateVariant(variant *ProductVariant) error
	FindVariantByID(id uint) (*ProductVariant, error)
	FindVariantsByProduct(productID uint) ([]ProductVariant, error)
	UpdateVariant(variant *ProductVariant) error
	DeleteVariant(id uint) error
}
