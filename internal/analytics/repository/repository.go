package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/seydina/distriops/internal/analytics/domain"
)

// GormAnalyticsRepository implements AnalyticsRepository using GORM
type GormAnalyticsRepository struct {
	db *gorm.DB
}

// NewGormAnalyticsRepository creates a new GORM analytics repository
func NewGormAnalyticsRepository(db *gorm.DB) *GormAnalyticsRepository {
	return &GormAnalyticsRepository{db: db}
}

// markProcessed inserts the event ID, reporting whether it was new.
// The primary key makes redelivered events collide here instead of
// double-counting in the reports.
func markProcessed(tx *gorm.DB, eventID string) (bool, error) {
	var existing domain.ProcessedEvent
	err := tx.Where("event_id = ?", eventID).First(&existing).Error
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}
	if err := tx.Create(&domain.ProcessedEvent{EventID: eventID}).Error; err != nil {
		return false, err
	}
	return true, nil
}

// RecordSale folds one sale event into that day's vendor report
func (r *GormAnalyticsRepository) RecordSale(eventID, date string, vendorID uint, quantity int, amount float64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		fresh, err := markProcessed(tx, eventID)
		if err != nil {
			return err
		}
		if !fresh {
			return nil
		}

		var report domain.DailySalesReport
		err = tx.Where("date = ? AND vendor_id = ?", date, vendorID).First(&report).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			report = domain.DailySalesReport{Date: date, VendorID: vendorID}
		} else if err != nil {
			return err
		}

		report.SalesCount++
		report.Quantity += quantity
		report.TotalAmount += amount
		return tx.Save(&report).Error
	})
}

// RecordStockMovement folds one movement event into that day's variant report
func (r *GormAnalyticsRepository) RecordStockMovement(eventID, date string, variantID uint, newStock int, status string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		fresh, err := markProcessed(tx, eventID)
		if err != nil {
			return err
		}
		if !fresh {
			return nil
		}

		var report domain.DailyStockReport
		err = tx.Where("date = ? AND variant_id = ?", date, variantID).First(&report).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			report = domain.DailyStockReport{Date: date, VariantID: variantID}
		} else if err != nil {
			return err
		}

		report.Movements++
		report.LastStock = newStock
		report.LastStatus = status
		return tx.Save(&report).Error
	})
}

// FindSalesReports finds sales reports for one day
func (r *GormAnalyticsRepository) FindSalesReports(date string, limit, offset int) ([]domain.DailySalesReport, error) {
	var reports []domain.DailySalesReport
	q := r.db.Limit(limit).Offset(offset).Order("date DESC, vendor_id")
	if date != "" {
		q = q.Where("date = ?", date)
	}
	if err := q.Find(&reports).Error; err != nil {
		return nil, err
	}
	return reports, nil
}

// FindSalesReportsByVendor finds one vendor's sales reports
func (r *GormAnalyticsRepository) FindSalesReportsByVendor(vendorID uint, limit, offset int) ([]domain.DailySalesReport, error) {
	var reports []domain.DailySalesReport
	err := r.db.Where("vendor_id = ?", vendorID).
		Limit(limit).Offset(offset).Order("date DESC").
		Find(&reports).Error
	if err != nil {
		return nil, err
	}
	return reports, nil
}

// FindStockReports finds stock reports for one day
func (r *GormAnalyticsRepository) FindStockReports(date string, limit, offset int) ([]domain.DailyStockReport, error) {
	var reports []domain.DailyStockReport
	q := r.db.Limit(limit).Offset(offset).Order("date DESC, variant_id")
	if date != "" {
		q = q.Where("date = ?", date)
	}
	if err := q.Find(&reports).Error; err != nil {
		return nil, err
	}
	return reports, nil
}
