package domain

import "testing"

func TestStatusFor(t *testing.T) {
	cases := []struct {
		name    string
		current int
		min     int
		max     int
		want    string
	}{
		{"zero stock is rupture", 0, 10, 50, StatusRupture},
		{"zero stock wins over low even with zero min", 0, 0, 50, StatusRupture},
		{"at minimum is low", 10, 10, 50, StatusStockFaible},
		{"below minimum is low", 5, 10, 50, StatusStockFaible},
		{"between bounds is in stock", 25, 10, 50, StatusEnStock},
		{"at maximum is in stock", 50, 10, 50, StatusEnStock},
		{"above maximum is overstock", 51, 10, 50, StatusSurstockage},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := StatusFor(tc.current, tc.min, tc.max); got != tc.want {
				t.Fatalf("StatusFor(%d, %d, %d) = %q, want %q", tc.current, tc.min, tc.max, got, tc.want)
			}
		})
	}
}

func TestVariantStatusOf(t *testing.T) {
	v := ProductVariant{CurrentStock: 3, MinStock: 10, MaxStock: 50}
	if got := v.StatusOf(); got != StatusStockFaible {
		t.Fatalf("StatusOf() = %q, want %q", got, StatusStockFaible)
	}
}
