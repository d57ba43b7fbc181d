package domain

import "time"

// DailySalesReport aggregates one vendor's sales for one day
type DailySalesReport struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Date        string    `json:"date" gorm:"uniqueIndex:idx_sales_report_day;not null"`
	VendorID    uint      `json:"vendor_id" gorm:"uniqueIndex:idx_sales_report_day;not null"`
	SalesCount  int       `json:"sales_count"`
	Quantity    int       `json:"quantity"`
	TotalAmount float64   `json:"total_amount"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName specifies the table name for DailySalesReport
func (DailySalesReport) TableName() string {
	return "daily_sales_reports"
}

// DailyStockReport aggregates one variant's stock movements for one day
type DailyStockReport struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	Date       string    `json:"date" gorm:"uniqueIndex:idx_stock_report_day;not null"`
	VariantID  uint      `json:"variant_id" gorm:"uniqueIndex:idx_stock_report_day;not null"`
	Movements  int       `json:"movements"`
	LastStock  int       `json:"last_stock"`
	LastStatus string    `json:"last_status"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TableName specifies the table name for DailyStockReport
func (DailyStockReport) TableName() string {
	return "daily_stock_reports"
}

// ProcessedEvent keeps consumed event IDs so redelivered messages do not
// double-count
type ProcessedEvent struct {
	EventID   string    `json:"event_id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for ProcessedEvent
func (ProcessedEvent) TableName() string {
	return "processed_events"
}

// AnalyticsRepository builds and serves the daily reports
type AnalyticsRepository interface {
	// RecordSale folds one sale event into that day's vendor report.
	// A repeated event ID is a no-op.
	RecordSale(eventID, date string, vendorID uint, quantity int, amount float64) error
	// RecordStockMovement folds one movement event into that day's
	// variant report. A repeated event ID is a no-op.
	RecordStockMovement(eventID, date string, variantID uint, newStock int, status string) error

	FindSalesReports(date string, limit, offset int) ([]DailySalesReport, error)
	FindSalesReportsByVendor(vendorID uint, limit, offset int) ([]DailySalesReport, error)
	FindStockReports(date string, limit, offset int) ([]DailyStockReport, error)
}
