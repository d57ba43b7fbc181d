package repository

import (
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/seydina/distriops/internal/vendors/domain"
)

// GormVendorRepository implements VendorRepository using GORM
type GormVendorRepository struct {
	db *gorm.DB
}

// NewGormVendorRepository creates a new GORM vendor repository
func NewGormVendorRepository(db *gorm.DB) *GormVendorRepository {
	return &GormVendorRepository{db: db}
}

// CreateVendor creates a new vendor account
func (r *GormVendorRepository) CreateVendor(vendor *domain.Vendor) error {
	return r.db.Create(vendor).Error
}

// FindVendorByID finds a vendor by ID
func (r *GormVendorRepository) FindVendorByID(id uint) (*domain.Vendor, error) {
	var vendor domain.Vendor
	if err := r.db.First(&vendor, id).Error; err != nil {
		return nil, err
	}
	return &vendor, nil
}

// FindVendorByUsername finds a vendor by username
func (r *GormVendorRepository) FindVendorByUsername(username string) (*domain.Vendor, error) {
	var vendor domain.Vendor
	if err := r.db.Where("username = ?", username).First(&vendor).Error; err != nil {
		return nil, err
	}
	return &vendor, nil
}

// FindAllVendors finds all vendors with pagination
func (r *GormVendorRepository) FindAllVendors(limit, offset int) ([]domain.Vendor, error) {
	var vendors []domain.Vendor
	if err := r.db.Limit(limit).Offset(offset).Order("id").Find(&vendors).Error; err != nil {
		return nil, err
	}
	return vendors, nil
}

// UpdateVendor updates a vendor account
func (r *GormVendorRepository) UpdateVendor(vendor *domain.Vendor) error {
	return r.db.Save(vendor).Error
}

// CreateActivity creates a new vendor activity
func (r *GormVendorRepository) CreateActivity(activity *domain.VendorActivity) error {
	return r.db.Create(activity).Error
}

// FindActivityByID finds an activity by ID
func (r *GormVendorRepository) FindActivityByID(id uint) (*domain.VendorActivity, error) {
	var activity domain.VendorActivity
	if err := r.db.First(&activity, id).Error; err != nil {
		return nil, err
	}
	return &activity, nil
}

// FindActivitiesByVendor finds activities for one vendor with pagination
func (r *GormVendorRepository) FindActivitiesByVendor(vendorID uint, limit, offset int) ([]domain.VendorActivity, error) {
	var activities []domain.VendorActivity
	err := r.db.Where("vendor_id = ?", vendorID).
		Limit(limit).Offset(offset).Order("id DESC").
		Find(&activities).Error
	if err != nil {
		return nil, err
	}
	return activities, nil
}

// FindAllActivities finds all activities with pagination
func (r *GormVendorRepository) FindAllActivities(limit, offset int) ([]domain.VendorActivity, error) {
	var activities []domain.VendorActivity
	if err := r.db.Limit(limit).Offset(offset).Order("id DESC").Find(&activities).Error; err != nil {
		return nil, err
	}
	return activities, nil
}

// UpdateActivityRestante writes only the unallocated remainder column
func (r *GormVendorRepository) UpdateActivityRestante(id uint, restante int) error {
	return r.db.Model(&domain.VendorActivity{}).
		Where("id = ?", id).
		UpdateColumn("quantity_restante", restante).Error
}

// DeleteActivity deletes an activity. Used to compensate when allocation
// fails partway through activity creation.
func (r *GormVendorRepository) DeleteActivity(id uint) error {
	return r.db.Delete(&domain.VendorActivity{}, id).Error
}

// Sell executes a sale against an activity inside one transaction. The
// activity row is locked and re-read so concurrent sales serialize, the
// requested quantity is checked against what actually remains, and the
// sale row is only inserted if the quantity update succeeds.
func (r *GormVendorRepository) Sell(activityID uint, sale *domain.Sale) (*domain.VendorActivity, error) {
	var activity domain.VendorActivity

	err := r.db.Transaction(func(tx *gorm.DB) error {
		q := tx.Model(&domain.VendorActivity{})
		// SQLite serializes writers on its own and has no FOR UPDATE.
		if tx.Dialector.Name() == "postgres" {
			q = q.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		if err := q.First(&activity, activityID).Error; err != nil {
			return fmt.Errorf("activity not found: %w", err)
		}

		if activity.Type != domain.ActivityReplenishment {
			return fmt.Errorf("activity %d carries no stock assignment", activityID)
		}

		// An untouched assignment with nothing remaining means the
		// allocation engine distributed everything into order items,
		// or the row predates the remainder column. Either way the
		// vendor holds the full assignment.
		if activity.QuantityRestante == 0 && activity.QuantityAssignes > 0 && activity.QuantitySales == 0 {
			activity.QuantityRestante = activity.QuantityAssignes
		}

		if sale.Quantity <= 0 || sale.Quantity > activity.QuantityRestante {
			return &domain.SellError{
				ActivityID: activityID,
				Requested:  sale.Quantity,
				Available:  activity.QuantityRestante,
			}
		}

		activity.QuantityRestante -= sale.Quantity
		activity.QuantitySales += sale.Quantity

		err := tx.Model(&domain.VendorActivity{}).
			Where("id = ?", activityID).
			UpdateColumns(map[string]interface{}{
				"quantity_restante": activity.QuantityRestante,
				"quantity_sales":    activity.QuantitySales,
			}).Error
		if err != nil {
			return fmt.Errorf("failed to update activity quantities: %w", err)
		}

		sale.ActivityID = activityID
		sale.VendorID = activity.VendorID
		if sale.VariantID == 0 {
			sale.VariantID = activity.VariantID
		}
		if sale.TotalAmount == 0 {
			sale.TotalAmount = float64(sale.Quantity) * sale.UnitPrice
		}

		if err := tx.Create(sale).Error; err != nil {
			return fmt.Errorf("failed to record sale: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &activity, nil
}

// FindSaleByID finds a sale by ID
func (r *GormVendorRepository) FindSaleByID(id uint) (*domain.Sale, error) {
	var sale domain.Sale
	if err := r.db.First(&sale, id).Error; err != nil {
		return nil, err
	}
	return &sale, nil
}

// FindSalesByVendor finds sales for one vendor with pagination
func (r *GormVendorRepository) FindSalesByVendor(vendorID uint, limit, offset int) ([]domain.Sale, error) {
	var sales []domain.Sale
	err := r.db.Where("vendor_id = ?", vendorID).
		Limit(limit).Offset(offset).Order("id DESC").
		Find(&sales).Error
	if err != nil {
		return nil, err
	}
	return sales, nil
}

// FindSalesByActivity finds all sales recorded against one activity
func (r *GormVendorRepository) FindSalesByActivity(activityID uint) ([]domain.Sale, error) {
	var sales []domain.Sale
	if err := r.db.Where("activity_id = ?", activityID).Order("id").Find(&sales).Error; err != nil {
		return nil, err
	}
	return sales, nil
}

// FindAllSales finds all sales with pagination
func (r *GormVendorRepository) FindAllSales(limit, offset int) ([]domain.Sale, error) {
	var sales []domain.Sale
	if err := r.db.Limit(limit).Offset(offset).Order("id DESC").Find(&sales).Error; err != nil {
		return nil, err
	}
	return sales, nil
}
