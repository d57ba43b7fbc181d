package domain

import "testing"

func TestApply(t *testing.T) {
	cases := []struct {
		name     string
		mtype    string
		quantity int
		current  int
		want     int
	}{
		{"entree adds", MovementEntree, 15, 10, 25},
		{"sortie subtracts", MovementSortie, 4, 10, 6},
		{"sortie floors at zero", MovementSortie, 25, 10, 0},
		{"ajustement sets exactly", MovementAjustement, 42, 10, 42},
		{"ajustement can set zero", MovementAjustement, 0, 10, 0},
		{"unknown type is a no-op", "transfert", 5, 10, 10},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := StockMovement{Type: tc.mtype, Quantity: tc.quantity}
			if got := m.Apply(tc.current); got != tc.want {
				t.Fatalf("Apply(%d) = %d, want %d", tc.current, got, tc.want)
			}
		})
	}
}

func TestValidType(t *testing.T) {
	for _, mt := range []string{MovementEntree, MovementSortie, MovementAjustement} {
		if !ValidType(mt) {
			t.Errorf("ValidType(%q) = false", mt)
		}
	}
	if ValidType("transfert") {
		t.Error(`ValidType("transfert") = true`)
	}
}
