package usecase

import (
	"context"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/seydina/distriops/internal/analytics/domain"
	"github.com/seydina/distriops/internal/analytics/repository"
	"github.com/seydina/distriops/kafka"
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

func TestHandleSaleCompletedBucketsByEventDay(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewGormAnalyticsRepository(db)
	ingestor := NewIngestor(repo)

	// A late-delivered event still lands on the day it happened.
	happened := time.Date(2026, 8, 30, 23, 55, 0, 0, time.UTC)
	err := ingestor.HandleSaleCompleted(context.Background(), kafka.SaleCompletedEvent{
		EventID:     "late-1",
		VendorID:    4,
		Quantity:    8,
		TotalAmount: 4000,
		Timestamp:   happened,
	})
	if err != nil {
		t.Fatalf("HandleSaleCompleted: %v", err)
	}

	reports, err := repo.FindSalesReports("2026-08-30", 10, 0)
	if err != nil {
		t.Fatalf("FindSalesReports: %v", err)
	}
	if len(reports) != 1 {
		t.Fatalf("reports = %d, want 1", len(reports))
	}
	if reports[0].VendorID != 4 || reports[0].Quantity != 8 {
		t.Fatalf("report = %+v", reports[0])
	}
}

func TestHandleStockMovementApplied(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewGormAnalyticsRepository(db)
	ingestor := NewIngestor(repo)

	err := ingestor.HandleStockMovementApplied(context.Background(), kafka.StockMovementAppliedEvent{
		EventID:       "mv-1",
		VariantID:     12,
		MovementType:  "sortie",
		Quantity:      5,
		NewStock:      3,
		ProductStatus: "stock_faible",
		Timestamp:     time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("HandleStockMovementApplied: %v", err)
	}

	reports, err := repo.FindStockReports("2026-08-31", 10, 0)
	if err != nil {
		t.Fatalf("FindStockReports: %v", err)
	}
	if len(reports) != 1 {
		t.Fatalf("reports = %d, want 1", len(reports))
	}
	if reports[0].LastStock != 3 || reports[0].LastStatus != "stock_faible" {
		t.Fatalf("report = %+v", reports[0])
	}
}
