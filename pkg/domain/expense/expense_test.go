package expense

import (
	"testing"

	"github.com/amirasaad/farmledger/pkg/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newExpense(category Category, d Detail) *Expense {
	e := New(uuid.New())
	e.CropID = uuid.New()
	e.Category = category
	e.Detail = d
	return e
}

func TestPrepare_DerivedTotals(t *testing.T) {
	t.Parallel()

	t.Run("seed rate per kg", func(t *testing.T) {
		t.Parallel()
		seed := &Seed{SeedType: "Hybrid", QuantityKg: 3, TotalCost: 1000}
		e := newExpense(CategorySeed, seed)
		require.NoError(t, e.Prepare())
		require.NotNil(t, seed.RatePerKg)
		assert.Equal(t, 333.33, *seed.RatePerKg)
		assert.Equal(t, 1000.0, e.Amount)
	})

	t.Run("seed without quantity leaves rate unset", func(t *testing.T) {
		t.Parallel()
		stale := 99.0
		seed := &Seed{SeedType: "Local/Desi", QuantityKg: 0, TotalCost: 450, RatePerKg: &stale}
		e := newExpense(CategorySeed, seed)
		require.NoError(t, e.Prepare())
		assert.Nil(t, seed.RatePerKg)
		assert.Equal(t, 450.0, e.Amount)
	})

	t.Run("labour daily", func(t *testing.T) {
		t.Parallel()
		l := &LabourDaily{Task: "Weeding", NumberOfPeople: 4, Days: 3, DailyRate: 350, TotalCost: 1}
		e := newExpense(CategoryLabour, l)
		require.NoError(t, e.Prepare())
		assert.Equal(t, float64(4*3)*350, l.TotalCost)
		assert.Equal(t, 4200.0, e.Amount)
	})

	t.Run("labour contract", func(t *testing.T) {
		t.Parallel()
		e := newExpense(CategoryLabour, &LabourContract{AdvanceReason: "Festival", AmountGiven: 2500})
		require.NoError(t, e.Prepare())
		assert.Equal(t, 2500.0, e.Amount)
	})

	t.Run("machinery", func(t *testing.T) {
		t.Parallel()
		m := &Machinery{Implement: "Rotavator", HoursOrAcres: 2, Rate: 500, TotalCost: 7}
		e := newExpense(CategoryMachinery, m)
		require.NoError(t, e.Prepare())
		assert.Equal(t, 1000.0, m.TotalCost)
		assert.Equal(t, 1000.0, e.Amount)
	})

	t.Run("fertilizer and pesticide amounts are authoritative", func(t *testing.T) {
		t.Parallel()
		f := newExpense(CategoryFertilizer, &Fertilizer{ProductName: "DAP", NumberOfBags: 2, TotalCost: 2700})
		require.NoError(t, f.Prepare())
		assert.Equal(t, 2700.0, f.Amount)

		p := newExpense(CategoryPesticide, &Pesticide{Category: "Fungicide", DosageML: 250, Cost: 780.5})
		require.NoError(t, p.Prepare())
		assert.Equal(t, 780.5, p.Amount)
	})
}

func TestPrepare_Idempotent(t *testing.T) {
	t.Parallel()

	m := &Machinery{Implement: "Thresher", HoursOrAcres: 3.33, Rate: 701.7}
	e := newExpense(CategoryMachinery, m)
	require.NoError(t, e.Prepare())
	first, firstAmount := m.TotalCost, e.Amount
	require.NoError(t, e.Prepare())
	assert.Equal(t, first, m.TotalCost)
	assert.Equal(t, firstAmount, e.Amount)
}

func TestValidate_CategoryMismatch(t *testing.T) {
	t.Parallel()

	e := newExpense(CategorySeed, &Machinery{Implement: "Plough", HoursOrAcres: 1, Rate: 100})
	err := e.Prepare()
	require.ErrorIs(t, err, domain.ErrValidation)

	e = newExpense(CategoryMachinery, nil)
	require.ErrorIs(t, e.Prepare(), domain.ErrValidation)

	e = newExpense("Fuel", &Seed{SeedType: "Hybrid", TotalCost: 10})
	require.ErrorIs(t, e.Prepare(), domain.ErrValidation)
}

func TestValidate_SubRecordBounds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		category Category
		detail   Detail
	}{
		{"seed cost below 1", CategorySeed, &Seed{SeedType: "Hybrid", QuantityKg: 1, TotalCost: 0.5}},
		{"seed type", CategorySeed, &Seed{SeedType: "GMO", QuantityKg: 1, TotalCost: 10}},
		{"fertilizer product", CategoryFertilizer, &Fertilizer{ProductName: "Potash", TotalCost: 10}},
		{"pesticide dosage", CategoryPesticide, &Pesticide{Category: "Herbicide", DosageML: -1, Cost: 10}},
		{"labour people", CategoryLabour, &LabourDaily{Task: "Sowing", NumberOfPeople: 0, Days: 1, DailyRate: 100}},
		{"labour days", CategoryLabour, &LabourDaily{Task: "Sowing", NumberOfPeople: 1, Days: 0, DailyRate: 100}},
		{"contract reason", CategoryLabour, &LabourContract{AdvanceReason: "Travel", AmountGiven: 100}},
		{"machinery rate", CategoryMachinery, &Machinery{Implement: "Plough", HoursOrAcres: 1, Rate: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			e := newExpense(tt.category, tt.detail)
			assert.ErrorIs(t, e.Prepare(), domain.ErrValidation)
		})
	}
}

func TestDetailCodec(t *testing.T) {
	t.Parallel()

	in := &LabourDaily{Task: "Harvesting", NumberOfPeople: 2, Days: 5, DailyRate: 412.5}
	in.Derive()
	kind, data, err := MarshalDetail(in)
	require.NoError(t, err)
	assert.Equal(t, KindLabourDaily, kind)

	out, err := UnmarshalDetail(kind, data)
	require.NoError(t, err)
	assert.Equal(t, in, out)

	_, err = UnmarshalDetail("fuel", "{}")
	assert.ErrorIs(t, err, ErrUnknownKind)
}
