package calculator

import (
	"math"
	"testing"
)

// FuzzProduct checks the two-place rounding invariants with random input.
func FuzzProduct(f *testing.F) {
	f.Add(0.1, 3.0)
	f.Add(1.5, 823.045)
	f.Add(0.0, 300.0)
	f.Add(1e6, 99.99)
	f.Fuzz(func(t *testing.T, a, b float64) {
		if math.IsNaN(a) || math.IsNaN(b) || math.IsInf(a, 0) || math.IsInf(b, 0) ||
			math.Abs(a) > 1e9 || math.Abs(b) > 1e9 {
			t.Skip()
		}
		defer func() {
			if r := recover(); r != nil {
				t.Errorf("Product panicked: %v (a=%v, b=%v)", r, a, b)
			}
		}()
		got := Product(a, b)
		if got != Product(a, b) {
			t.Errorf("Product is not deterministic for %v * %v", a, b)
		}
		if Round2(got) != got {
			t.Errorf("Product(%v, %v) = %v has more than two places", a, b, got)
		}
	})
}

func FuzzSeedRatePerKg(f *testing.F) {
	f.Add(1000.0, 3.0)
	f.Add(500.0, 0.0)
	f.Add(1.0, -2.0)
	f.Fuzz(func(t *testing.T, cost, qty float64) {
		if math.IsNaN(cost) || math.IsNaN(qty) || math.IsInf(cost, 0) || math.IsInf(qty, 0) ||
			math.Abs(cost) > 1e9 || math.Abs(qty) > 1e9 {
			t.Skip()
		}
		rate, ok := SeedRatePerKg(cost, qty)
		if ok != (qty > 0) {
			t.Errorf("ok = %v for quantity %v", ok, qty)
		}
		if !ok && rate != 0 {
			t.Errorf("rate %v set without a quantity", rate)
		}
	})
}
