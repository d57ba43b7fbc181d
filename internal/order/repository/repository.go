package repository

import (
	"fmt"

	catalogdomain "github.com/seydina/distriops/internal/catalog/domain"
	"github.com/seydina/distriops/internal/order/domain"
	"gorm.io/gorm"
)

type GormOrderRepository struct {
	db *gorm.DB
}

func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

func (r *GormOrderRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Order{}, &domain.OrderItem{})
}

// applyVariantDelta moves a variant's stock by delta (floored at zero) and
// refreshes the parent product status. Must run inside tx.
func applyVariantDelta(tx *gorm.DB, variantID uint, delta int) error {
	var variant catalogdomain.ProductVariant
	if err := tx.First(&variant, variantID).Error; err != nil {
		return fmt.Errorf("variant %d: %w", variantID, err)
	}

	variant.CurrentStock += delta
	if variant.CurrentStock < 0 {
		variant.CurrentStock = 0
	}
	if err := tx.Save(&variant).Error; err != nil {
		return err
	}

	return tx.Model(&catalogdomain.Product{}).
		Where("id = ?", variant.ProductID).
		Update("status", variant.StatusOf()).Error
}

// CreateWithItems inserts the order and its items, debiting each item's
// variant stock by the ordered quantity. Item and order totals are derived
// here, not trusted from the caller.
func (r *GormOrderRepository) CreateWithItems(order *domain.Order) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var total float64
		for i := range order.Items {
			order.Items[i].Total = float64(order.Items[i].Quantity) * order.Items[i].Price
			total += order.Items[i].Total
		}
		order.Total = total

		if err := tx.Create(order).Error; err != nil {
			return err
		}

		for i := range order.Items {
			if err := applyVariantDelta(tx, order.Items[i].VariantID, -order.Items[i].Quantity); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *GormOrderRepository) FindByID(id uint) (*domain.Order, error) {
	var order domain.Order
	err := r.db.Preload("Items").First(&order, id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *GormOrderRepository) FindAll(limit, offset int) ([]domain.Order, error) {
	var orders []domain.Order
	err := r.db.Preload("Items").
		Limit(limit).Offset(offset).
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

func (r *GormOrderRepository) FindByStatus(status string, limit, offset int) ([]domain.Order, error) {
	var orders []domain.Order
	err := r.db.Preload("Items").
		Where("status = ?", status).
		Limit(limit).Offset(offset).
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

func (r *GormOrderRepository) UpdateStatus(id uint, status string) error {
	return r.db.Model(&domain.Order{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *GormOrderRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&domain.OrderItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Order{}, id).Error
	})
}

func (r *GormOrderRepository) FindItemByID(itemID uint) (*domain.OrderItem, error) {
	var item domain.OrderItem
	err := r.db.First(&item, itemID).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// FindItemsByOrder returns the order's items in stable persisted order, the
// order the allocation engine walks them in.
func (r *GormOrderRepository) FindItemsByOrder(orderID uint) ([]domain.OrderItem, error) {
	var items []domain.OrderItem
	err := r.db.Where("order_id = ?", orderID).Order("id").Find(&items).Error
	return items, err
}

// UpdateItemQuantity changes an item's ordered quantity and adjusts the
// variant stock by the delta: raising the quantity debits more stock,
// lowering it gives stock back.
func (r *GormOrderRepository) UpdateItemQuantity(itemID uint, quantity int) (*domain.OrderItem, error) {
	var item domain.OrderItem

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&item, itemID).Error; err != nil {
			return err
		}

		if quantity < item.QuantityAffecte {
			return &domain.AllocatedQuantityError{
				ItemID:    item.ID,
				Requested: quantity,
				Allocated: item.QuantityAffecte,
			}
		}

		delta := quantity - item.Quantity
		item.Quantity = quantity
		item.Total = float64(quantity) * item.Price
		if err := tx.Save(&item).Error; err != nil {
			return err
		}

		if err := applyVariantDelta(tx, item.VariantID, -delta); err != nil {
			return err
		}

		return refreshOrderTotal(tx, item.OrderID)
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// DeleteItem removes an item and restores its full ordered quantity to the
// variant stock. Symmetric with creation, unlike stock movements.
func (r *GormOrderRepository) DeleteItem(itemID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var item domain.OrderItem
		if err := tx.First(&item, itemID).Error; err != nil {
			return err
		}

		if err := tx.Delete(&domain.OrderItem{}, itemID).Error; err != nil {
			return err
		}

		if err := applyVariantDelta(tx, item.VariantID, item.Quantity); err != nil {
			return err
		}

		return refreshOrderTotal(tx, item.OrderID)
	})
}

// SaveItemAllocation persists only the allocation counter.
func (r *GormOrderRepository) SaveItemAllocation(item *domain.OrderItem) error {
	return r.db.Model(&domain.OrderItem{}).
		Where("id = ?", item.ID).
		Update("quantity_affecte", item.QuantityAffecte).Error
}

func refreshOrderTotal(tx *gorm.DB, orderID uint) error {
	var total float64
	if err := tx.Model(&domain.OrderItem{}).
		Where("order_id = ?", orderID).
		Select("COALESCE(SUM(total), 0)").
		Scan(&total).Error; err != nil {
		return err
	}
	return tx.Model(&domain.Order{}).
		Where("id = ?", orderID).
		Update("total", total).Error
}
