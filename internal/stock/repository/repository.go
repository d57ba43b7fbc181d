package repository

import (
	catalogdomain "github.com/seydina/distriops/internal/catalog/domain"
	"github.com/seydina/distriops/internal/stock/domain"
	"gorm.io/gorm"
)

type GormStockRepository struct {
	db *gorm.DB
}

func NewGormStockRepository(db *gorm.DB) *GormStockRepository {
	return &GormStockRepository{db: db}
}

func (r *GormStockRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.StockMovement{})
}

// ApplyMovement inserts the movement, moves the variant stock and refreshes
// the parent product status inside one transaction. The movement row and the
// ledger effect commit or roll back together.
func (r *GormStockRepository) ApplyMovement(movement *domain.StockMovement) (int, string, error) {
	var (
		newStock int
		status   string
	)

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var variant catalogdomain.ProductVariant
		if err := tx.First(&variant, movement.VariantID).Error; err != nil {
			return err
		}

		if err := tx.Create(movement).Error; err != nil {
			return err
		}

		variant.CurrentStock = movement.Apply(variant.CurrentStock)
		if err := tx.Save(&variant).Error; err != nil {
			return err
		}

		status = variant.StatusOf()
		if err := tx.Model(&catalogdomain.Product{}).
			Where("id = ?", variant.ProductID).
			Update("status", status).Error; err != nil {
			return err
		}

		newStock = variant.CurrentStock
		return nil
	})
	if err != nil {
		return 0, "", err
	}

	return newStock, status, nil
}

func (r *GormStockRepository) FindByVariant(variantID uint, limit, offset int) ([]domain.StockMovement, error) {
	var movements []domain.StockMovement
	err := r.db.Where("variant_id = ?", variantID).
		Limit(limit).Offset(offset).
		Order("created_at DESC").
		Find(&movements).Error
	return movements, err
}

func (r *GormStockRepository) FindAll(limit, offset int) ([]domain.StockMovement, error) {
	var movements []domain.StockMovement
	err := r.db.Limit(limit).Offset(offset).
		Order("created_at DESC").
		Find(&movements).Error
	return movements, err
}
