package query

import (
	"context"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/seydina/distriops/internal/vendors/domain"
	vendorrepo "github.com/seydina/distriops/internal/vendors/repository"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	err = db.AutoMigrate(
		&domain.Vendor{},
		&domain.VendorActivity{},
		&domain.Sale{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func TestGetActivity(t *testing.T) {
	db := setupTestDB(t)
	repo := vendorrepo.NewGormVendorRepositoryWithTracing(db)
	handler := NewGetActivityHandler(repo)

	vendor := domain.Vendor{Username: "awa", FullName: "Awa Diop", Zone: "Plateau"}
	if err := db.Create(&vendor).Error; err != nil {
		t.Fatalf("seed vendor: %v", err)
	}
	activity := domain.VendorActivity{
		VendorID:         vendor.ID,
		Type:             domain.ActivityReplenishment,
		QuantityAssignes: 20,
		QuantityRestante: 20,
	}
	if err := db.Create(&activity).Error; err != nil {
		t.Fatalf("seed activity: %v", err)
	}

	got, err := handler.Handle(context.Background(), GetActivityQuery{ID: activity.ID})
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if got.ID != activity.ID || got.QuantityAssignes != 20 {
		t.Fatalf("activity = %+v", got)
	}
}

func TestGetActivityValidation(t *testing.T) {
	db := setupTestDB(t)
	handler := NewGetActivityHandler(vendorrepo.NewGormVendorRepositoryWithTracing(db))

	if _, err := handler.Handle(context.Background(), GetActivityQuery{}); err == nil {
		t.Fatal("expected error for missing id")
	}
	if _, err := handler.Handle(context.Background(), GetActivityQuery{ID: 999}); err == nil {
		t.Fatal("expected error for unknown activity")
	}
}
