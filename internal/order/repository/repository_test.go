package repository

import (
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	catalogdomain "github.com/seydina/distriops/internal/catalog/domain"
	"github.com/seydina/distriops/internal/order/domain"
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
		&domain.Order{},
		&domain.OrderItem{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func seedVariant(t *testing.T, db *gorm.DB, stock int, price float64) *catalogdomain.ProductVariant {
	t.Helper()

	sku := fmt.Sprintf("CAF-%03d", skuSeq.Add(1))
	product := catalogdomain.Product{Name: "Café Touba", SKU: sku, Status: catalogdomain.StatusEnStock}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("failed to seed product: %v", err)
	}
	variant := catalogdomain.ProductVariant{
		ProductID:    product.ID,
		Name:         "Sachet 500g",
		CurrentStock: stock,
		MinStock:     5,
		MaxStock:     200,
		Price:        price,
	}
	if err := db.Create(&variant).Error; err != nil {
		t.Fatalf("failed to seed variant: %v", err)
	}
	return &variant
}

func variantStock(t *testing.T, db *gorm.DB, id uint) int {
	t.Helper()
	var variant catalogdomain.ProductVariant
	if err := db.First(&variant, id).Error; err != nil {
		t.Fatalf("reload variant: %v", err)
	}
	return variant.CurrentStock
}

func TestCreateWithItemsDebitsStockAndDerivesTotals(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormOrderRepository(db)
	v1 := seedVariant(t, db, 50, 1000)
	v2 := seedVariant(t, db, 30, 2500)

	order := &domain.Order{
		PointOfSale: "Marché Sandaga",
		Status:      domain.StatusPending,
		Items: []domain.OrderItem{
			{VariantID: v1.ID, Quantity: 10, Price: 1000},
			{VariantID: v2.ID, Quantity: 4, Price: 2500},
		},
	}
	if err := repo.CreateWithItems(order); err != nil {
		t.Fatalf("CreateWithItems: %v", err)
	}

	if order.Total != 20000 {
		t.Fatalf("order total = %.0f, want 20000", order.Total)
	}
	if order.Items[0].Total != 10000 || order.Items[1].Total != 10000 {
		t.Fatalf("item totals = %.0f/%.0f, want 10000/10000", order.Items[0].Total, order.Items[1].Total)
	}
	if got := variantStock(t, db, v1.ID); got != 40 {
		t.Fatalf("variant 1 stock = %d, want 40", got)
	}
	if got := variantStock(t, db, v2.ID); got != 26 {
		t.Fatalf("variant 2 stock = %d, want 26", got)
	}
}

func TestCreateWithItemsUnknownVariantRollsBack(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormOrderRepository(db)
	v1 := seedVariant(t, db, 50, 1000)

	order := &domain.Order{
		PointOfSale: "Boutique Liberté 6",
		Status:      domain.StatusPending,
		Items: []domain.OrderItem{
			{VariantID: v1.ID, Quantity: 5, Price: 1000},
			{VariantID: 999, Quantity: 2, Price: 1000},
		},
	}
	if err := repo.CreateWithItems(order); err == nil {
		t.Fatal("expected error for unknown variant")
	}

	var count int64
	db.Model(&domain.Order{}).Count(&count)
	if count != 0 {
		t.Fatalf("order rows = %d, want 0 after rollback", count)
	}
	if got := variantStock(t, db, v1.ID); got != 50 {
		t.Fatalf("variant stock = %d, want 50 after rollback", got)
	}
}

func TestUpdateItemQuantityAdjustsStockBothWays(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormOrderRepository(db)
	v := seedVariant(t, db, 100, 500)

	order := &domain.Order{
		PointOfSale: "Marché Tilène",
		Status:      domain.StatusPending,
		Items:       []domain.OrderItem{{VariantID: v.ID, Quantity: 10, Price: 500}},
	}
	if err := repo.CreateWithItems(order); err != nil {
		t.Fatalf("CreateWithItems: %v", err)
	}
	itemID := order.Items[0].ID

	// Raise the quantity: 5 more units leave the stock.
	item, err := repo.UpdateItemQuantity(itemID, 15)
	if err != nil {
		t.Fatalf("UpdateItemQuantity: %v", err)
	}
	if item.Quantity != 15 || item.Total != 7500 {
		t.Fatalf("item = qty %d total %.0f, want 15/7500", item.Quantity, item.Total)
	}
	if got := variantStock(t, db, v.ID); got != 85 {
		t.Fatalf("stock after raise = %d, want 85", got)
	}

	// Lower it: 7 units come back.
	if _, err := repo.UpdateItemQuantity(itemID, 8); err != nil {
		t.Fatalf("UpdateItemQuantity: %v", err)
	}
	if got := variantStock(t, db, v.ID); got != 92 {
		t.Fatalf("stock after lower = %d, want 92", got)
	}

	var fresh domain.Order
	if err := db.First(&fresh, order.ID).Error; err != nil {
		t.Fatalf("reload order: %v", err)
	}
	if fresh.Total != 4000 {
		t.Fatalf("order total = %.0f, want 4000", fresh.Total)
	}
}

func TestUpdateItemQuantityRejectsBelowAllocation(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormOrderRepository(db)
	v := seedVariant(t, db, 100, 500)

	order := &domain.Order{
		PointOfSale: "Marché HLM",
		Status:      domain.StatusPending,
		Items:       []domain.OrderItem{{VariantID: v.ID, Quantity: 10, Price: 500}},
	}
	if err := repo.CreateWithItems(order); err != nil {
		t.Fatalf("CreateWithItems: %v", err)
	}
	itemID := order.Items[0].ID

	if err := db.Model(&domain.OrderItem{}).Where("id = ?", itemID).
		Update("quantity_affecte", 6).Error; err != nil {
		t.Fatalf("seed allocation: %v", err)
	}

	_, err := repo.UpdateItemQuantity(itemID, 4)
	var lockedErr *domain.AllocatedQuantityError
	if !errors.As(err, &lockedErr) {
		t.Fatalf("expected *AllocatedQuantityError, got %v", err)
	}
	if lockedErr.Requested != 4 || lockedErr.Allocated != 6 {
		t.Fatalf("error carries requested=%d allocated=%d, want 4/6", lockedErr.Requested, lockedErr.Allocated)
	}
	if want := "cannot set order item"; !strings.HasPrefix(lockedErr.Error(), want) {
		t.Fatalf("error message = %q", lockedErr.Error())
	}

	// Nothing moved.
	item, ferr := repo.FindItemByID(itemID)
	if ferr != nil {
		t.Fatalf("FindItemByID: %v", ferr)
	}
	if item.Quantity != 10 {
		t.Fatalf("item quantity = %d, want 10", item.Quantity)
	}
	if got := variantStock(t, db, v.ID); got != 90 {
		t.Fatalf("stock = %d, want 90", got)
	}
}

func TestDeleteItemRestoresStockAndOrderTotal(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormOrderRepository(db)
	v1 := seedVariant(t, db, 50, 1000)
	v2 := seedVariant(t, db, 50, 2000)

	order := &domain.Order{
		PointOfSale: "Boutique Ouakam",
		Status:      domain.StatusPending,
		Items: []domain.OrderItem{
			{VariantID: v1.ID, Quantity: 6, Price: 1000},
			{VariantID: v2.ID, Quantity: 3, Price: 2000},
		},
	}
	if err := repo.CreateWithItems(order); err != nil {
		t.Fatalf("CreateWithItems: %v", err)
	}

	if err := repo.DeleteItem(order.Items[0].ID); err != nil {
		t.Fatalf("DeleteItem: %v", err)
	}

	if got := variantStock(t, db, v1.ID); got != 50 {
		t.Fatalf("stock = %d, want 50 restored", got)
	}

	fresh, err := repo.FindByID(order.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if len(fresh.Items) != 1 {
		t.Fatalf("items = %d, want 1", len(fresh.Items))
	}
	if fresh.Total != 6000 {
		t.Fatalf("order total = %.0f, want 6000", fresh.Total)
	}
}

func TestFindItemsByOrderStableOrder(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormOrderRepository(db)
	v := seedVariant(t, db, 100, 100)

	order := &domain.Order{
		PointOfSale: "Marché Castors",
		Status:      domain.StatusPending,
		Items: []domain.OrderItem{
			{VariantID: v.ID, Quantity: 1, Price: 100},
			{VariantID: v.ID, Quantity: 2, Price: 100},
			{VariantID: v.ID, Quantity: 3, Price: 100},
		},
	}
	if err := repo.CreateWithItems(order); err != nil {
		t.Fatalf("CreateWithItems: %v", err)
	}

	items, err := repo.FindItemsByOrder(order.ID)
	if err != nil {
		t.Fatalf("FindItemsByOrder: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("items = %d, want 3", len(items))
	}
	for i := 1; i < len(items); i++ {
		if items[i].ID <= items[i-1].ID {
			t.Fatalf("items not in id order: %d after %d", items[i].ID, items[i-1].ID)
		}
	}
}
