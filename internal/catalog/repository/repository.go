package repository

import (
	"github.com/seydina/distriops/internal/catalog/domain"
	"gorm.io/gorm"
)

type GormCatalogRepository struct {
	db *gorm.DB
}

func NewGormCatalogRepository(db *gorm.DB) *GormCatalogRepository {
	return &GormCatalogRepository{db: db}
}

func (r *GormCatalogRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Product{}, &domain.ProductVariant{})
}

func (r *GormCatalogRepository) CreateProduct(product *domain.Product) error {
	return r.db.Create(product).Error
}

func (r *GormCatalogRepository) FindProductByID(id uint) (*domain.Product, error) {
	var product domain.Product
	err := r.db.Preload("Variants").First(&product, id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *GormCatalogRepository) FindProductBySKU(sku string) (*domain.Product, error) {
	var product domain.Product
	err := r.db.Preload("Variants").Where("sku = ?", sku).First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *GormCatalogRepository) FindAllProducts(limit, offset int) ([]domain.Product, error) {
	var products []domain.Product
	err := r.db.Preload("Variants").Limit(limit).Offset(offset).Find(&products).Error
	return products, err
}

func (r *GormCatalogRepository) FindProductsByCategory(category string, limit, offset int) ([]domain.Product, error) {
	var products []domain.Product
	err := r.db.Preload("Variants").
		Where("category = ?", category).
		Limit(limit).Offset(offset).
		Find(&products).Error
	return products, err
}

func (r *GormCatalogRepository) UpdateProduct(product *domain.Product) error {
	return r.db.Omit("Variants").Save(product).Error
}

func (r *GormCatalogRepository) DeleteProduct(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&domain.ProductVariant{}).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Product{}, id).Error
	})
}

func (r *GormCatalogRepository) CountProducts() (int64, error) {
	var count int64
	err := r.db.Model(&domain.Product{}).Count(&count).Error
	return count, err
}

func (r *GormCatalogRepository) CountProductsByStatus(status string) (int64, error) {
	var count int64
	err := r.db.Model(&domain.Product{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

// CreateVariant inserts a variant and recomputes the parent product status
// from the new variant's stock, in one transaction.
func (r *GormCatalogRepository) CreateVariant(variant *domain.ProductVariant) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(variant).Error; err != nil {
			return err
		}
		return tx.Model(&domain.Product{}).
			Where("id = ?", variant.ProductID).
			Update("status", variant.StatusOf()).Error
	})
}

func (r *GormCatalogRepository) FindVariantByID(id uint) (*domain.ProductVariant, error) {
	var variant domain.ProductVariant
	err := r.db.First(&variant, id).Error
	if err != nil {
		return nil, err
	}
	return &variant, nil
}

func (r *GormCatalogRepository) FindVariantsByProduct(productID uint) ([]domain.ProductVariant, error) {
	var variants []domain.ProductVariant
	err := r.db.Where("product_id = ?", productID).Order("id").Find(&variants).Error
	return variants, err
}

// UpdateVariant saves a variant and refreshes the parent product status.
// Last variant saved wins when a product has several variants.
func (r *GormCatalogRepository) UpdateVariant(variant *domain.ProductVariant) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(variant).Error; err != nil {
			return err
		}
		return tx.Model(&domain.Product{}).
			Where("id = ?", variant.ProductID).
			Update("status", variant.StatusOf()).Error
	})
}

func (r *GormCatalogRepository) DeleteVariant(id uint) error {
	return r.db.Delete(&domain.ProductVariant{}, id).Error
}
