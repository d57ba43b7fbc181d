package repository

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/seydina/distriops/internal/analytics/domain"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	err = db.AutoMigrate(
		&domain.DailySalesReport{},
		&domain.DailyStockReport{},
		&domain.ProcessedEvent{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func TestRecordSaleAccumulates(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormAnalyticsRepository(db)

	if err := repo.RecordSale("evt-1", "2026-08-31", 3, 10, 5000); err != nil {
		t.Fatalf("RecordSale: %v", err)
	}
	if err := repo.RecordSale("evt-2", "2026-08-31", 3, 4, 2000); err != nil {
		t.Fatalf("RecordSale: %v", err)
	}
	// Same vendor, different day: separate row.
	if err := repo.RecordSale("evt-3", "2026-09-01", 3, 1, 500); err != nil {
		t.Fatalf("RecordSale: %v", err)
	}

	reports, err := repo.FindSalesReportsByVendor(3, 10, 0)
	if err != nil {
		t.Fatalf("FindSalesReportsByVendor: %v", err)
	}
	if len(reports) != 2 {
		t.Fatalf("reports = %d, want 2", len(reports))
	}

	byDate := map[string]domain.DailySalesReport{}
	for _, r := range reports {
		byDate[r.Date] = r
	}
	aug := byDate["2026-08-31"]
	if aug.SalesCount != 2 || aug.Quantity != 14 || aug.TotalAmount != 7000 {
		t.Fatalf("august report = count %d qty %d amount %.0f, want 2/14/7000",
			aug.SalesCount, aug.Quantity, aug.TotalAmount)
	}
	sep := byDate["2026-09-01"]
	if sep.SalesCount != 1 || sep.Quantity != 1 {
		t.Fatalf("september report = count %d qty %d, want 1/1", sep.SalesCount, sep.Quantity)
	}
}

func TestRecordSaleRedeliveryIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormAnalyticsRepository(db)

	for i := 0; i < 3; i++ {
		if err := repo.RecordSale("evt-dup", "2026-08-31", 5, 6, 3000); err != nil {
			t.Fatalf("RecordSale redelivery #%d: %v", i, err)
		}
	}

	reports, err := repo.FindSalesReportsByVendor(5, 10, 0)
	if err != nil {
		t.Fatalf("FindSalesReportsByVendor: %v", err)
	}
	if len(reports) != 1 {
		t.Fatalf("reports = %d, want 1", len(reports))
	}
	if reports[0].SalesCount != 1 || reports[0].Quantity != 6 || reports[0].TotalAmount != 3000 {
		t.Fatalf("report = count %d qty %d amount %.0f, want 1/6/3000",
			reports[0].SalesCount, reports[0].Quantity, reports[0].TotalAmount)
	}
}

func TestRecordStockMovementKeepsLastState(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormAnalyticsRepository(db)

	if err := repo.RecordStockMovement("mv-1", "2026-08-31", 9, 120, "en_stock"); err != nil {
		t.Fatalf("RecordStockMovement: %v", err)
	}
	if err := repo.RecordStockMovement("mv-2", "2026-08-31", 9, 0, "rupture"); err != nil {
		t.Fatalf("RecordStockMovement: %v", err)
	}

	reports, err := repo.FindStockReports("2026-08-31", 10, 0)
	if err != nil {
		t.Fatalf("FindStockReports: %v", err)
	}
	if len(reports) != 1 {
		t.Fatalf("reports = %d, want 1", len(reports))
	}
	r := reports[0]
	if r.Movements != 2 {
		t.Fatalf("movements = %d, want 2", r.Movements)
	}
	if r.LastStock != 0 || r.LastStatus != "rupture" {
		t.Fatalf("last state = %d/%q, want 0/rupture", r.LastStock, r.LastStatus)
	}
}

func TestFindSalesReportsDateFilter(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormAnalyticsRepository(db)

	if err := repo.RecordSale("f-1", "2026-08-30", 1, 1, 100); err != nil {
		t.Fatalf("RecordSale: %v", err)
	}
	if err := repo.RecordSale("f-2", "2026-08-31", 2, 1, 100); err != nil {
		t.Fatalf("RecordSale: %v", err)
	}

	reports, err := repo.FindSalesReports("2026-08-31", 10, 0)
	if err != nil {
		t.Fatalf("FindSalesReports: %v", err)
	}
	if len(reports) != 1 || reports[0].VendorID != 2 {
		t.Fatalf("filtered reports = %+v, want one row for vendor 2", reports)
	}

	all, err := repo.FindSalesReports("", 10, 0)
	if err != nil {
		t.Fatalf("FindSalesReports all: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("unfiltered reports = %d, want 2", len(all))
	}
}
