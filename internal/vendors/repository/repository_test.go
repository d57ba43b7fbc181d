package repository

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/seydina/distriops/internal/vendors/domain"
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

func seedReplenishment(t *testing.T, db *gorm.DB, assignes, restante, sales int) *domain.VendorActivity {
	t.Helper()

	vendor := domain.Vendor{Username: "moussa-" + uuid.NewString()[:8], FullName: "Moussa Ndiaye", Zone: "Dakar Plateau"}
	if err := db.Create(&vendor).Error; err != nil {
		t.Fatalf("failed to seed vendor: %v", err)
	}
	activity := domain.VendorActivity{
		VendorID:         vendor.ID,
		OrderID:          1,
		VariantID:        7,
		Type:             domain.ActivityReplenishment,
		Zone:             "Dakar Plateau",
		QuantityAssignes: assignes,
		QuantityRestante: restante,
		QuantitySales:    sales,
	}
	if err := db.Create(&activity).Error; err != nil {
		t.Fatalf("failed to seed activity: %v", err)
	}
	return &activity
}

func newSale(quantity int, unitPrice float64) *domain.Sale {
	return &domain.Sale{
		Reference: uuid.NewString(),
		Quantity:  quantity,
		UnitPrice: unitPrice,
	}
}

func TestSellDebitsRemainingAndRecordsSale(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormVendorRepository(db)
	activity := seedReplenishment(t, db, 100, 100, 0)

	sale := newSale(60, 250)
	updated, err := repo.Sell(activity.ID, sale)
	if err != nil {
		t.Fatalf("Sell: %v", err)
	}

	if updated.QuantityRestante != 40 || updated.QuantitySales != 60 {
		t.Fatalf("counters = restante %d / sales %d, want 40/60", updated.QuantityRestante, updated.QuantitySales)
	}
	if updated.QuantityRestante+updated.QuantitySales != updated.QuantityAssignes {
		t.Fatalf("restante %d + sales %d != assignes %d",
			updated.QuantityRestante, updated.QuantitySales, updated.QuantityAssignes)
	}

	if sale.ID == 0 {
		t.Fatal("sale was not persisted")
	}
	if sale.ActivityID != activity.ID || sale.VendorID != activity.VendorID || sale.VariantID != activity.VariantID {
		t.Fatalf("sale links = activity %d vendor %d variant %d", sale.ActivityID, sale.VendorID, sale.VariantID)
	}
	if sale.TotalAmount != 15000 {
		t.Fatalf("total amount = %.0f, want 15000", sale.TotalAmount)
	}

	var fresh domain.VendorActivity
	if err := db.First(&fresh, activity.ID).Error; err != nil {
		t.Fatalf("reload activity: %v", err)
	}
	if fresh.QuantityRestante != 40 || fresh.QuantitySales != 60 {
		t.Fatalf("persisted counters = restante %d / sales %d, want 40/60", fresh.QuantityRestante, fresh.QuantitySales)
	}
}

func TestSellRejectsOversellAtomically(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormVendorRepository(db)
	activity := seedReplenishment(t, db, 100, 40, 60)

	_, err := repo.Sell(activity.ID, newSale(50, 250))
	var sellErr *domain.SellError
	if !errors.As(err, &sellErr) {
		t.Fatalf("expected *SellError, got %v", err)
	}
	if sellErr.Requested != 50 || sellErr.Available != 40 {
		t.Fatalf("error carries requested=%d available=%d, want 50/40", sellErr.Requested, sellErr.Available)
	}

	// The rejection must leave no trace: counters untouched, no sale row.
	var fresh domain.VendorActivity
	if err := db.First(&fresh, activity.ID).Error; err != nil {
		t.Fatalf("reload activity: %v", err)
	}
	if fresh.QuantityRestante != 40 || fresh.QuantitySales != 60 {
		t.Fatalf("counters moved on rejection: restante %d / sales %d", fresh.QuantityRestante, fresh.QuantitySales)
	}

	var count int64
	db.Model(&domain.Sale{}).Count(&count)
	if count != 0 {
		t.Fatalf("sale rows = %d, want 0", count)
	}
}

func TestSellRejectsNonPositiveQuantity(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormVendorRepository(db)
	activity := seedReplenishment(t, db, 100, 100, 0)

	for _, qty := range []int{0, -5} {
		_, err := repo.Sell(activity.ID, newSale(qty, 100))
		var sellErr *domain.SellError
		if !errors.As(err, &sellErr) {
			t.Fatalf("Sell(quantity=%d): expected *SellError, got %v", qty, err)
		}
	}
}

func TestSellTreatsFullyDistributedAssignmentAsWhole(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormVendorRepository(db)
	// Distribution placed everything into order items, leaving the
	// remainder column at zero with nothing sold yet.
	activity := seedReplenishment(t, db, 80, 0, 0)

	updated, err := repo.Sell(activity.ID, newSale(30, 100))
	if err != nil {
		t.Fatalf("Sell: %v", err)
	}
	if updated.QuantityRestante != 50 || updated.QuantitySales != 30 {
		t.Fatalf("counters = restante %d / sales %d, want 50/30", updated.QuantityRestante, updated.QuantitySales)
	}
}

func TestSellSoldOutStaysSoldOut(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormVendorRepository(db)
	// Genuinely sold out: sales counter is non-zero, so zero remaining stands.
	activity := seedReplenishment(t, db, 80, 0, 80)

	_, err := repo.Sell(activity.ID, newSale(1, 100))
	var sellErr *domain.SellError
	if !errors.As(err, &sellErr) {
		t.Fatalf("expected *SellError, got %v", err)
	}
	if sellErr.Available != 0 {
		t.Fatalf("available = %d, want 0", sellErr.Available)
	}
}

func TestSellRejectsActivityWithoutAssignment(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormVendorRepository(db)

	vendor := domain.Vendor{Username: "awa-" + uuid.NewString()[:8]}
	if err := db.Create(&vendor).Error; err != nil {
		t.Fatalf("seed vendor: %v", err)
	}
	activity := domain.VendorActivity{VendorID: vendor.ID, Type: domain.ActivityCheckIn, Zone: "Pikine"}
	if err := db.Create(&activity).Error; err != nil {
		t.Fatalf("seed activity: %v", err)
	}

	if _, err := repo.Sell(activity.ID, newSale(1, 100)); err == nil {
		t.Fatal("expected error for an activity without a stock assignment")
	}
}

func TestSellUnknownActivity(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormVendorRepository(db)

	if _, err := repo.Sell(999, newSale(1, 100)); err == nil {
		t.Fatal("expected error for unknown activity")
	}
}

// TestSellConcurrentNoOversell hammers one activity from many goroutines and
// checks the counters never go negative or exceed the assignment.
func TestSellConcurrentNoOversell(t *testing.T) {
	db := setupTestDB(t)

	// A single connection serializes the writers the way a real deployment
	// relies on row locks; shared-cache SQLite otherwise returns "table is
	// locked" errors under write contention.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	repo := NewGormVendorRepository(db)
	activity := seedReplenishment(t, db, 50, 50, 0)

	const (
		workers = 10
		perSale = 10
	)

	var wg sync.WaitGroup
	succeeded := make(chan int, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := repo.Sell(activity.ID, newSale(perSale, 100)); err == nil {
				succeeded <- perSale
			}
		}()
	}
	wg.Wait()
	close(succeeded)

	sold := 0
	for qty := range succeeded {
		sold += qty
	}
	if sold != 50 {
		t.Fatalf("sold %d units from an assignment of 50", sold)
	}

	var fresh domain.VendorActivity
	if err := db.First(&fresh, activity.ID).Error; err != nil {
		t.Fatalf("reload activity: %v", err)
	}
	if fresh.QuantityRestante != 0 || fresh.QuantitySales != 50 {
		t.Fatalf("counters = restante %d / sales %d, want 0/50", fresh.QuantityRestante, fresh.QuantitySales)
	}

	var count int64
	db.Model(&domain.Sale{}).Count(&count)
	if count != 5 {
		t.Fatalf("sale rows = %d, want 5", count)
	}
}

func TestUpdateActivityRestante(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormVendorRepository(db)
	activity := seedReplenishment(t, db, 25, 0, 0)

	if err := repo.UpdateActivityRestante(activity.ID, 8); err != nil {
		t.Fatalf("UpdateActivityRestante: %v", err)
	}

	fresh, err := repo.FindActivityByID(activity.ID)
	if err != nil {
		t.Fatalf("FindActivityByID: %v", err)
	}
	if fresh.QuantityRestante != 8 {
		t.Fatalf("restante = %d, want 8", fresh.QuantityRestante)
	}
	if fresh.QuantityAssignes != 25 || fresh.QuantitySales != 0 {
		t.Fatalf("other counters moved: assignes %d sales %d", fresh.QuantityAssignes, fresh.QuantitySales)
	}
}

func TestFindSalesByActivity(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormVendorRepository(db)
	activity := seedReplenishment(t, db, 100, 100, 0)

	for i := 0; i < 3; i++ {
		if _, err := repo.Sell(activity.ID, newSale(10, float64(100*(i+1)))); err != nil {
			t.Fatalf("Sell #%d: %v", i, err)
		}
	}

	sales, err := repo.FindSalesByActivity(activity.ID)
	if err != nil {
		t.Fatalf("FindSalesByActivity: %v", err)
	}
	if len(sales) != 3 {
		t.Fatalf("sales = %d, want 3", len(sales))
	}
	for i, s := range sales {
		if s.TotalAmount != float64(1000*(i+1)) {
			t.Fatalf("sale %d total = %.0f, want %d", i, s.TotalAmount, 1000*(i+1))
		}
	}
}

func TestDeleteActivity(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormVendorRepository(db)
	activity := seedReplenishment(t, db, 10, 10, 0)

	if err := repo.DeleteActivity(activity.ID); err != nil {
		t.Fatalf("DeleteActivity: %v", err)
	}
	if _, err := repo.FindActivityByID(activity.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected record not found, got %v", err)
	}
}

func TestSellErrorMessage(t *testing.T) {
	err := &domain.SellError{ActivityID: 12, Requested: 50, Available: 40}
	want := fmt.Sprintf("cannot sell %d from activity %d: only %d remaining", 50, 12, 40)
	if err.Error() != want {
		t.Fatalf("message = %q, want %q", err.Error(), want)
	}
}
