package command

import (
	"context"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	catalogdomain "github.com/seydina/distriops/internal/catalog/domain"
	orderdomain "github.com/seydina/distriops/internal/order/domain"
	orderrepo "github.com/seydina/distriops/internal/order/repository"
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
		&catalogdomain.Product{},
		&catalogdomain.ProductVariant{},
		&orderdomain.Order{},
		&orderdomain.OrderItem{},
		&domain.Vendor{},
		&domain.VendorActivity{},
		&domain.Sale{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

type fixture struct {
	handler *CreateActivityHandler
	orders  *orderrepo.GormOrderRepository
	vendors *vendorrepo.GormVendorRepository
	db      *gorm.DB
	vendor  domain.Vendor
}

func setupFixture(t *testing.T) *fixture {
	t.Helper()

	db := setupTestDB(t)
	orders := orderrepo.NewGormOrderRepository(db)
	vendors := vendorrepo.NewGormVendorRepository(db)

	vendor := domain.Vendor{Username: "fatou", FullName: "Fatou Sall", Zone: "Médina"}
	if err := db.Create(&vendor).Error; err != nil {
		t.Fatalf("seed vendor: %v", err)
	}

	return &fixture{
		handler: NewCreateActivityHandler(vendors, orders),
		orders:  orders,
		vendors: vendors,
		db:      db,
		vendor:  vendor,
	}
}

// seedOrder creates a variant per item and the order holding them.
func (f *fixture) seedOrder(t *testing.T, quantities ...int) *orderdomain.Order {
	t.Helper()

	items := make([]orderdomain.OrderItem, 0, len(quantities))
	for _, qty := range quantities {
		variant := catalogdomain.ProductVariant{
			ProductID:    1,
			Name:         "Bissap 1L",
			CurrentStock: 1000,
			MinStock:     5,
			MaxStock:     5000,
			Price:        500,
		}
		if err := f.db.Create(&variant).Error; err != nil {
			t.Fatalf("seed variant: %v", err)
		}
		items = append(items, orderdomain.OrderItem{VariantID: variant.ID, Quantity: qty, Price: 500})
	}

	order := &orderdomain.Order{PointOfSale: "Marché Kermel", Status: orderdomain.StatusConfirmed, Items: items}
	if err := f.orders.CreateWithItems(order); err != nil {
		t.Fatalf("seed order: %v", err)
	}
	return order
}

func (f *fixture) replenish(t *testing.T, orderID uint, quantity int) (*domain.VendorActivity, error) {
	t.Helper()
	return f.handler.Handle(context.Background(), CreateActivityCommand{
		VendorID: f.vendor.ID,
		Type:     domain.ActivityReplenishment,
		Zone:     "Médina",
		OrderID:  orderID,
		Quantity: quantity,
	})
}

func TestCreateActivityNonReplenishmentPassthrough(t *testing.T) {
	f := setupFixture(t)

	activity, err := f.handler.Handle(context.Background(), CreateActivityCommand{
		VendorID:  f.vendor.ID,
		Type:      domain.ActivityCheckIn,
		Zone:      "Médina",
		Latitude:  14.6928,
		Longitude: -17.4467,
	})
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if activity.ID == 0 {
		t.Fatal("activity not persisted")
	}
	if activity.QuantityAssignes != 0 {
		t.Fatalf("check-in carries an assignment: %d", activity.QuantityAssignes)
	}
	if activity.Latitude != 14.6928 {
		t.Fatalf("latitude = %f", activity.Latitude)
	}
}

func TestCreateActivityDistributesAcrossItems(t *testing.T) {
	f := setupFixture(t)
	order := f.seedOrder(t, 20, 15)

	activity, err := f.replenish(t, order.ID, 30)
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}

	if activity.QuantityAssignes != 30 {
		t.Fatalf("assignes = %d, want 30", activity.QuantityAssignes)
	}
	// Everything was placed, so nothing is left over.
	if activity.QuantityRestante != 0 {
		t.Fatalf("restante = %d, want 0", activity.QuantityRestante)
	}

	// First item drained fully, second partially, in id order.
	items, err := f.orders.FindItemsByOrder(order.ID)
	if err != nil {
		t.Fatalf("FindItemsByOrder: %v", err)
	}
	if items[0].QuantityAffecte != 20 {
		t.Fatalf("item 1 allocated = %d, want 20", items[0].QuantityAffecte)
	}
	if items[1].QuantityAffecte != 10 {
		t.Fatalf("item 2 allocated = %d, want 10", items[1].QuantityAffecte)
	}

	fresh, err := f.vendors.FindActivityByID(activity.ID)
	if err != nil {
		t.Fatalf("FindActivityByID: %v", err)
	}
	if fresh.QuantityAssignes != 30 || fresh.QuantityRestante != 0 || fresh.QuantitySales != 0 {
		t.Fatalf("persisted counters = %d/%d/%d, want 30/0/0",
			fresh.QuantityAssignes, fresh.QuantityRestante, fresh.QuantitySales)
	}
}

func TestCreateActivityKeepsUnplacedLeftover(t *testing.T) {
	f := setupFixture(t)
	order := f.seedOrder(t, 12)

	// Assigning more than the order holds leaves the surplus as restante.
	activity, err := f.replenish(t, order.ID, 50)
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if activity.QuantityAssignes != 50 {
		t.Fatalf("assignes = %d, want 50", activity.QuantityAssignes)
	}
	if activity.QuantityRestante != 38 {
		t.Fatalf("restante = %d, want 38 unplaced", activity.QuantityRestante)
	}

	items, err := f.orders.FindItemsByOrder(order.ID)
	if err != nil {
		t.Fatalf("FindItemsByOrder: %v", err)
	}
	if !items[0].EstCompletementAffecte() {
		t.Fatalf("item allocated = %d, want full %d", items[0].QuantityAffecte, items[0].Quantity)
	}
}

func TestCreateActivitySkipsExhaustedItems(t *testing.T) {
	f := setupFixture(t)
	order := f.seedOrder(t, 10, 10)

	// Drain the first item through an earlier replenishment.
	if _, err := f.replenish(t, order.ID, 10); err != nil {
		t.Fatalf("first replenishment: %v", err)
	}

	activity, err := f.replenish(t, order.ID, 10)
	if err != nil {
		t.Fatalf("second replenishment: %v", err)
	}
	if activity.QuantityRestante != 0 {
		t.Fatalf("restante = %d, want 0", activity.QuantityRestante)
	}

	items, err := f.orders.FindItemsByOrder(order.ID)
	if err != nil {
		t.Fatalf("FindItemsByOrder: %v", err)
	}
	for i, item := range items {
		if !item.EstCompletementAffecte() {
			t.Fatalf("item %d allocated = %d, want full", i, item.QuantityAffecte)
		}
	}
}

func TestCreateActivityFullyAllocatedOrderKeepsAssignment(t *testing.T) {
	f := setupFixture(t)
	order := f.seedOrder(t, 10)

	if _, err := f.replenish(t, order.ID, 10); err != nil {
		t.Fatalf("first replenishment: %v", err)
	}

	// Nothing left to place: the whole assignment stays as restante.
	activity, err := f.replenish(t, order.ID, 5)
	if err != nil {
		t.Fatalf("second replenishment: %v", err)
	}
	if activity.QuantityAssignes != 5 || activity.QuantityRestante != 5 {
		t.Fatalf("counters = %d/%d, want 5/5", activity.QuantityAssignes, activity.QuantityRestante)
	}
}

func TestCreateActivityReplenishmentWithoutOrderIsPlain(t *testing.T) {
	f := setupFixture(t)

	activity, err := f.handler.Handle(context.Background(), CreateActivityCommand{
		VendorID: f.vendor.ID,
		Type:     domain.ActivityReplenishment,
		Zone:     "Médina",
	})
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if activity.QuantityAssignes != 0 || activity.QuantityRestante != 0 {
		t.Fatalf("counters = %d/%d, want 0/0", activity.QuantityAssignes, activity.QuantityRestante)
	}
}

func TestCreateActivityValidation(t *testing.T) {
	f := setupFixture(t)

	cases := []struct {
		name string
		cmd  CreateActivityCommand
	}{
		{"missing vendor", CreateActivityCommand{Type: domain.ActivityReplenishment}},
		{"bad type", CreateActivityCommand{VendorID: f.vendor.ID, Type: "pause"}},
		{"unknown vendor", CreateActivityCommand{VendorID: 999, Type: domain.ActivityCheckIn}},
		{"negative quantity", CreateActivityCommand{VendorID: f.vendor.ID, Type: domain.ActivityReplenishment, OrderID: 1, Quantity: -3}},
		{"unknown order", CreateActivityCommand{VendorID: f.vendor.ID, Type: domain.ActivityReplenishment, OrderID: 999, Quantity: 5}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := f.handler.Handle(context.Background(), tc.cmd); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}

	// Every case above fails before the insert, so nothing should exist.
	var count int64
	f.db.Model(&domain.VendorActivity{}).Count(&count)
	if count != 0 {
		t.Fatalf("activity rows = %d, want 0", count)
	}
}

func TestCreateActivityThroughTracedRepository(t *testing.T) {
	f := setupFixture(t)
	traced := vendorrepo.NewGormVendorRepositoryWithTracing(f.db)
	handler := NewCreateActivityHandler(traced, f.orders)
	order := f.seedOrder(t, 8)

	activity, err := handler.Handle(context.Background(), CreateActivityCommand{
		VendorID: f.vendor.ID,
		Type:     domain.ActivityReplenishment,
		Zone:     "Médina",
		OrderID:  order.ID,
		Quantity: 8,
	})
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if activity.QuantityAssignes != 8 || activity.QuantityRestante != 0 {
		t.Fatalf("counters = %d/%d, want 8/0", activity.QuantityAssignes, activity.QuantityRestante)
	}

	fresh, err := traced.FindActivityByID(activity.ID)
	if err != nil {
		t.Fatalf("FindActivityByID: %v", err)
	}
	if fresh.QuantityAssignes != 8 {
		t.Fatalf("persisted assignes = %d, want 8", fresh.QuantityAssignes)
	}
}
