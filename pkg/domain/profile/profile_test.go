package profile

import (
	"testing"

	"github.com/amirasaad/farmledger/pkg/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validProfile() *FarmerProfile {
	p := New(uuid.New())
	p.Name = "Ramesh Patel"
	p.District = "Jamnagar"
	p.Taluka = "Kalavad"
	p.Village = "Khijadia"
	p.TotalLandValue = 12
	p.WaterSource = "Borewell"
	p.TractorAvailable = true
	p.LabourType = "Family"
	return p
}

func TestValidate(t *testing.T) {
	t.Parallel()

	require.NoError(t, validProfile().Validate())

	tests := map[string]func(p *FarmerProfile){
		"name":            func(p *FarmerProfile) { p.Name = "" },
		"district":        func(p *FarmerProfile) { p.District = "Ahmedabad" },
		"taluka":          func(p *FarmerProfile) { p.Taluka = "" },
		"village":         func(p *FarmerProfile) { p.Village = "" },
		"totalLand.value": func(p *FarmerProfile) { p.TotalLandValue = -1 },
		"totalLand.unit":  func(p *FarmerProfile) { p.TotalLandUnit = "hectare" },
		"waterSource":     func(p *FarmerProfile) { p.WaterSource = "River" },
		"labourType":      func(p *FarmerProfile) { p.LabourType = "Contract" },
	}
	for field, mutate := range tests {
		t.Run(field, func(t *testing.T) {
			t.Parallel()
			p := validProfile()
			mutate(p)
			err := p.Validate()
			require.ErrorIs(t, err, domain.ErrValidation)
			var ve *domain.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, field, ve.Field)
		})
	}
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	p := validProfile()
	p.Name = "  Ramesh  "
	p.TotalLandUnit = ""
	p.Normalize()
	assert.Equal(t, "Ramesh", p.Name)
	assert.Equal(t, DefaultLandUnit, p.TotalLandUnit)
}
