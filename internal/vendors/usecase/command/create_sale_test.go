package command

import (
	"context"
	"errors"
	"testing"

	"github.com/seydina/distriops/internal/vendors/domain"
	"github.com/seydina/distriops/kafka"
)

type capturingPublisher struct {
	events []kafka.SaleCompletedEvent
	err    error
}

func (p *capturingPublisher) PublishSaleCompleted(_ context.Context, event kafka.SaleCompletedEvent) error {
	p.events = append(p.events, event)
	return p.err
}

func seedActivity(t *testing.T, f *fixture, assignes int) *domain.VendorActivity {
	t.Helper()

	activity := domain.VendorActivity{
		VendorID:         f.vendor.ID,
		VariantID:        7,
		Type:             domain.ActivityReplenishment,
		QuantityAssignes: assignes,
		QuantityRestante: assignes,
	}
	if err := f.db.Create(&activity).Error; err != nil {
		t.Fatalf("seed activity: %v", err)
	}
	return &activity
}

func TestCreateSalePublishesAfterCommit(t *testing.T) {
	f := setupFixture(t)
	pub := &capturingPublisher{}
	handler := NewCreateSaleHandler(f.vendors, pub)
	activity := seedActivity(t, f, 40)

	result, err := handler.Handle(context.Background(), CreateSaleCommand{
		ActivityID: activity.ID,
		Quantity:   15,
		UnitPrice:  300,
	})
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}

	if result.Sale.Reference == "" {
		t.Fatal("sale reference not generated")
	}
	if result.Activity.QuantityRestante != 25 {
		t.Fatalf("remaining = %d, want 25", result.Activity.QuantityRestante)
	}

	if len(pub.events) != 1 {
		t.Fatalf("published %d events, want 1", len(pub.events))
	}
	event := pub.events[0]
	if event.SaleID != result.Sale.ID || event.Quantity != 15 || event.TotalAmount != 4500 {
		t.Fatalf("event = %+v", event)
	}
	if event.VendorID != f.vendor.ID || event.ActivityID != activity.ID || event.VariantID != 7 {
		t.Fatalf("event links = vendor %d activity %d variant %d", event.VendorID, event.ActivityID, event.VariantID)
	}
}

func TestCreateSaleRejectionPublishesNothing(t *testing.T) {
	f := setupFixture(t)
	pub := &capturingPublisher{}
	handler := NewCreateSaleHandler(f.vendors, pub)
	activity := seedActivity(t, f, 10)

	_, err := handler.Handle(context.Background(), CreateSaleCommand{
		ActivityID: activity.ID,
		Quantity:   11,
		UnitPrice:  300,
	})
	var sellErr *domain.SellError
	if !errors.As(err, &sellErr) {
		t.Fatalf("expected *SellError, got %v", err)
	}
	if len(pub.events) != 0 {
		t.Fatalf("published %d events for a rejected sale", len(pub.events))
	}
}

func TestCreateSalePublishFailureDoesNotFailSale(t *testing.T) {
	f := setupFixture(t)
	pub := &capturingPublisher{err: errors.New("broker down")}
	handler := NewCreateSaleHandler(f.vendors, pub)
	activity := seedActivity(t, f, 10)

	result, err := handler.Handle(context.Background(), CreateSaleCommand{
		ActivityID: activity.ID,
		Quantity:   5,
		UnitPrice:  100,
	})
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if result.Sale.ID == 0 {
		t.Fatal("sale not persisted")
	}
}

func TestCreateSaleNilPublisher(t *testing.T) {
	f := setupFixture(t)
	handler := NewCreateSaleHandler(f.vendors, nil)
	activity := seedActivity(t, f, 10)

	if _, err := handler.Handle(context.Background(), CreateSaleCommand{
		ActivityID: activity.ID,
		Quantity:   3,
		UnitPrice:  100,
	}); err != nil {
		t.Fatalf("Handle without publisher: %v", err)
	}
}

func TestCreateSaleValidation(t *testing.T) {
	f := setupFixture(t)
	handler := NewCreateSaleHandler(f.vendors, nil)

	if _, err := handler.Handle(context.Background(), CreateSaleCommand{Quantity: 1}); err == nil {
		t.Fatal("expected error for missing activity_id")
	}
	if _, err := handler.Handle(context.Background(), CreateSaleCommand{ActivityID: 1}); err == nil {
		t.Fatal("expected error for zero quantity")
	}
}
