package domain

import (
	"errors"
	"testing"
)

func TestAllocatePartialThenOverflow(t *testing.T) {
	item := OrderItem{ID: 1, Quantity: 10}

	if err := item.Allocate(7); err != nil {
		t.Fatalf("first allocation: %v", err)
	}
	if item.QuantityAffecte != 7 {
		t.Fatalf("QuantityAffecte = %d, want 7", item.QuantityAffecte)
	}
	if item.QuantiteRestante() != 3 {
		t.Fatalf("QuantiteRestante() = %d, want 3", item.QuantiteRestante())
	}

	// 4 more would exceed the ordered quantity; the item must not move.
	err := item.Allocate(4)
	if err == nil {
		t.Fatal("expected allocation error")
	}
	var allocErr *AllocationError
	if !errors.As(err, &allocErr) {
		t.Fatalf("expected *AllocationError, got %T", err)
	}
	if allocErr.Requested != 4 || allocErr.Available != 3 {
		t.Fatalf("error carries requested=%d available=%d, want 4/3", allocErr.Requested, allocErr.Available)
	}
	if item.QuantityAffecte != 7 {
		t.Fatalf("failed allocation changed the item: QuantityAffecte = %d", item.QuantityAffecte)
	}

	if err := item.Allocate(3); err != nil {
		t.Fatalf("exact remaining allocation: %v", err)
	}
	if !item.EstCompletementAffecte() {
		t.Fatal("item should be fully allocated")
	}
}

func TestAllocateRejectsNonPositive(t *testing.T) {
	item := OrderItem{ID: 2, Quantity: 5}

	for _, qty := range []int{0, -3} {
		if err := item.Allocate(qty); err == nil {
			t.Fatalf("Allocate(%d) should fail", qty)
		}
	}
	if item.QuantityAffecte != 0 {
		t.Fatalf("QuantityAffecte = %d, want 0", item.QuantityAffecte)
	}
}

func TestValidStatus(t *testing.T) {
	for _, s := range []string{StatusPending, StatusConfirmed, StatusShipped, StatusDelivered, StatusCancelled} {
		if !ValidStatus(s) {
			t.Errorf("ValidStatus(%q) = false", s)
		}
	}
	if ValidStatus("archived") {
		t.Error(`ValidStatus("archived") = true`)
	}
}
