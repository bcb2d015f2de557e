package income

import (
	"testing"

	"github.com/amirasaad/farmledger/pkg/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newIncome(category Category, d Detail) *Income {
	i := New(uuid.New())
	i.Category = category
	i.Detail = d
	return i
}

func TestPrepare_DerivedTotals(t *testing.T) {
	t.Parallel()

	sale := &CropSale{CropName: " Cotton ", QuantityKg: 100, PricePerKg: 20, TotalAmount: 5}
	i := newIncome(CategoryCropSale, sale)
	require.NoError(t, i.Prepare())
	assert.Equal(t, 2000.0, sale.TotalAmount)
	assert.Equal(t, 2000.0, i.Amount)
	assert.Equal(t, "Cotton", sale.CropName)

	rent := &RentalIncome{AssetType: "Tractor", HoursOrDays: 6, RatePerUnit: 300.555}
	i = newIncome(CategoryRentalIncome, rent)
	require.NoError(t, i.Prepare())
	assert.Equal(t, 1803.33, rent.TotalAmount)

	i = newIncome(CategorySubsidy, &Subsidy{SchemeType: "PM-KISAN", Amount: 2000})
	require.NoError(t, i.Prepare())
	assert.Equal(t, 2000.0, i.Amount)

	i = newIncome(CategoryOther, &OtherIncome{Source: "Dairy", Amount: 640})
	require.NoError(t, i.Prepare())
	assert.Equal(t, 640.0, i.Amount)
}

func TestPrepare_CropIsOptional(t *testing.T) {
	t.Parallel()

	i := newIncome(CategorySubsidy, &Subsidy{SchemeType: "Seed Subsidy", Amount: 500})
	assert.Nil(t, i.CropID)
	assert.NoError(t, i.Prepare())
}

func TestValidate_Rejects(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		category Category
		detail   Detail
	}{
		{"unknown category", "Lottery", &OtherIncome{Source: "Other", Amount: 10}},
		{"missing detail", CategoryCropSale, nil},
		{"mismatched detail", CategorySubsidy, &OtherIncome{Source: "Other", Amount: 10}},
		{"crop name", CategoryCropSale, &CropSale{QuantityKg: 1, PricePerKg: 1}},
		{"scheme", CategorySubsidy, &Subsidy{SchemeType: "State Bonus", Amount: 10}},
		{"subsidy amount", CategorySubsidy, &Subsidy{SchemeType: "PM-KISAN", Amount: 0}},
		{"rental rate", CategoryRentalIncome, &RentalIncome{AssetType: "Land", HoursOrDays: 1, RatePerUnit: 0}},
		{"other source", CategoryOther, &OtherIncome{Source: "Gift", Amount: 10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.ErrorIs(t, newIncome(tt.category, tt.detail).Prepare(), domain.ErrValidation)
		})
	}
}

func TestDetailCodec(t *testing.T) {
	t.Parallel()

	in := &CropSale{CropName: "Wheat", QuantityKg: 250, PricePerKg: 24.5, BuyerName: "APMC"}
	in.Derive()
	kind, data, err := MarshalDetail(in)
	require.NoError(t, err)

	out, err := UnmarshalDetail(kind, data)
	require.NoError(t, err)
	assert.Equal(t, in, out)

	_, err = UnmarshalDetail("gift", "{}")
	assert.ErrorIs(t, err, ErrUnknownKind)
}
