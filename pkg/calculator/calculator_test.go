package calculator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRound2(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{name: "already two places", in: 12.34, want: 12.34},
		{name: "rounds half up", in: 2.345, want: 2.35},
		{name: "rounds down", in: 2.344, want: 2.34},
		{name: "negative rounds away from zero", in: -2.345, want: -2.35},
		{name: "integer", in: 100, want: 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Round2(tt.in))
		})
	}
}

func TestSeedRatePerKg(t *testing.T) {
	t.Parallel()

	rate, ok := SeedRatePerKg(1000, 3)
	assert.True(t, ok)
	assert.Equal(t, 333.33, rate)

	rate, ok = SeedRatePerKg(500, 4)
	assert.True(t, ok)
	assert.Equal(t, 125.0, rate)

	_, ok = SeedRatePerKg(500, 0)
	assert.False(t, ok, "zero quantity leaves the rate unset")
}

func TestLabourDailyTotal(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 4*3*350.0, LabourDailyTotal(4, 3, 350))
	assert.Equal(t, 1*1*1.0, LabourDailyTotal(1, 1, 1))
	assert.Equal(t, 2*5*412.5, LabourDailyTotal(2, 5, 412.5))
}

func TestMachineryTotal(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 1000.0, MachineryTotal(2, 500))
	assert.Equal(t, 1234.57, MachineryTotal(1.5, 823.045))
	assert.Equal(t, 0.3, MachineryTotal(0.1, 3))
}

func TestCropSaleAndRentalTotals(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 2000.0, CropSaleTotal(100, 20))
	assert.Equal(t, 33.34, CropSaleTotal(3.333, 10.003))
	assert.Equal(t, 1800.0, RentalTotal(6, 300))
	assert.Equal(t, 0.0, RentalTotal(0, 300))
}

func TestIdempotent(t *testing.T) {
	t.Parallel()
	first := MachineryTotal(7.77, 123.456)
	second := MachineryTotal(7.77, 123.456)
	assert.Equal(t, first, second)

	r1, _ := SeedRatePerKg(999.99, 7)
	r2, _ := SeedRatePerKg(999.99, 7)
	assert.Equal(t, r1, r2)
}
