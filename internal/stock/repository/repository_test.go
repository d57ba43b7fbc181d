package repository

import (
	"fmt"
	"sync/atomic"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	catalogdomain "github.com/seydina/distriops/internal/catalog/domain"
	"github.com/seydina/distriops/internal/stock/domain"
)

var skuSeq atomic.Uint32

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	err = db.AutoMigrate(
		&catalogdomain.Product{},
		&catalogdomain.ProductVariant{},
		&domain.StockMovement{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func seedVariant(t *testing.T, db *gorm.DB, stock, min, max int) *catalogdomain.ProductVariant {
	t.Helper()

	sku := fmt.Sprintf("THE-%03d", skuSeq.Add(1))
	product := catalogdomain.Product{Name: "Attaya Thé Vert", SKU: sku, Status: catalogdomain.StatusEnStock}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("failed to seed product: %v", err)
	}
	variant := catalogdomain.ProductVariant{
		ProductID:    product.ID,
		Name:         "Boîte 250g",
		CurrentStock: stock,
		MinStock:     min,
		MaxStock:     max,
		Price:        1500,
	}
	if err := db.Create(&variant).Error; err != nil {
		t.Fatalf("failed to seed variant: %v", err)
	}
	return &variant
}

func TestApplyMovementEntree(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormStockRepository(db)
	variant := seedVariant(t, db, 20, 10, 50)

	movement := &domain.StockMovement{VariantID: variant.ID, Type: domain.MovementEntree, Quantity: 15, Reason: "livraison"}
	newStock, status, err := repo.ApplyMovement(movement)
	if err != nil {
		t.Fatalf("ApplyMovement: %v", err)
	}
	if newStock != 35 {
		t.Fatalf("newStock = %d, want 35", newStock)
	}
	if status != catalogdomain.StatusEnStock {
		t.Fatalf("status = %q, want %q", status, catalogdomain.StatusEnStock)
	}

	var fresh catalogdomain.ProductVariant
	if err := db.First(&fresh, variant.ID).Error; err != nil {
		t.Fatalf("reload variant: %v", err)
	}
	if fresh.CurrentStock != 35 {
		t.Fatalf("persisted stock = %d, want 35", fresh.CurrentStock)
	}

	var count int64
	db.Model(&domain.StockMovement{}).Where("variant_id = ?", variant.ID).Count(&count)
	if count != 1 {
		t.Fatalf("movement rows = %d, want 1", count)
	}
}

func TestApplyMovementSortieFloorsAtZero(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormStockRepository(db)
	variant := seedVariant(t, db, 10, 5, 50)

	movement := &domain.StockMovement{VariantID: variant.ID, Type: domain.MovementSortie, Quantity: 25}
	newStock, status, err := repo.ApplyMovement(movement)
	if err != nil {
		t.Fatalf("ApplyMovement: %v", err)
	}
	if newStock != 0 {
		t.Fatalf("newStock = %d, want 0", newStock)
	}
	if status != catalogdomain.StatusRupture {
		t.Fatalf("status = %q, want %q", status, catalogdomain.StatusRupture)
	}
}

func TestApplyMovementAjustementRefreshesProductStatus(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormStockRepository(db)
	variant := seedVariant(t, db, 30, 10, 50)

	movement := &domain.StockMovement{VariantID: variant.ID, Type: domain.MovementAjustement, Quantity: 7}
	newStock, status, err := repo.ApplyMovement(movement)
	if err != nil {
		t.Fatalf("ApplyMovement: %v", err)
	}
	if newStock != 7 {
		t.Fatalf("newStock = %d, want 7", newStock)
	}
	if status != catalogdomain.StatusStockFaible {
		t.Fatalf("status = %q, want %q", status, catalogdomain.StatusStockFaible)
	}

	var product catalogdomain.Product
	if err := db.First(&product, variant.ProductID).Error; err != nil {
		t.Fatalf("reload product: %v", err)
	}
	if product.Status != catalogdomain.StatusStockFaible {
		t.Fatalf("product status = %q, want %q", product.Status, catalogdomain.StatusStockFaible)
	}
}

func TestApplyMovementUnknownVariantRollsBack(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormStockRepository(db)

	movement := &domain.StockMovement{VariantID: 999, Type: domain.MovementEntree, Quantity: 5}
	if _, _, err := repo.ApplyMovement(movement); err == nil {
		t.Fatal("expected error for unknown variant")
	}

	var count int64
	db.Model(&domain.StockMovement{}).Count(&count)
	if count != 0 {
		t.Fatalf("movement rows = %d, want 0 after rollback", count)
	}
}

func TestFindByVariant(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormStockRepository(db)
	variant := seedVariant(t, db, 100, 10, 500)
	other := seedVariant(t, db, 100, 10, 500)

	for _, vid := range []uint{variant.ID, variant.ID, other.ID} {
		m := &domain.StockMovement{VariantID: vid, Type: domain.MovementSortie, Quantity: 1}
		if _, _, err := repo.ApplyMovement(m); err != nil {
			t.Fatalf("ApplyMovement: %v", err)
		}
	}

	movements, err := repo.FindByVariant(variant.ID, 10, 0)
	if err != nil {
		t.Fatalf("FindByVariant: %v", err)
	}
	if len(movements) != 2 {
		t.Fatalf("got %d movements, want 2", len(movements))
	}
}
