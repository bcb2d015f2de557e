package expense

import (
	"strings"

	"github.com/amirasaad/farmledger/pkg/calculator"
	"github.com/amirasaad/farmledger/pkg/domain"
)

// Kind names the concrete sub-record carried by an expense.
type Kind string

const (
	KindSeed           Kind = "seed"
	KindFertilizer     Kind = "fertilizer"
	KindPesticide      Kind = "pesticide"
	KindLabourDaily    Kind = "labourDaily"
	KindLabourContract Kind = "labourContract"
	KindMachinery      Kind = "machinery"
)

// Detail is the category-specific part of an expense. Exactly one concrete
// type is attached to every expense.
type Detail interface {
	// Kind identifies the concrete type.
	Kind() Kind
	// Validate checks the raw inputs.
	Validate() error
	// Derive recomputes the derived fields from the raw inputs.
	Derive()
	// Total is the effective amount: the derived total when there is one,
	// otherwise the submitted cost.
	Total() float64
}

var (
	SeedTypes = []string{"Company Brand", "Local/Desi", "Hybrid"}

	FertilizerProducts = []string{"Urea", "DAP", "NPK", "Organic", "Sulphur", "Micronutrients"}

	PesticideCategories = []string{"Insecticide", "Fungicide", "Herbicide", "Growth Booster"}

	LabourTasks = []string{"Weeding", "Sowing", "Spraying", "Harvesting", "Irrigation"}

	AdvanceReasons = []string{"Medical", "Grocery", "Mobile Recharge", "Festival", "Loan", "Other"}

	Implements = []string{
		"Rotavator",
		"Plough",
		"Sowing Machine",
		"Thresher",
		"Tractor Rental",
		"બલૂન (Baluun)",
		"રેપ (Rap)",
	}
)

// Seed purchase. RatePerKg is derived and stays nil when QuantityKg is 0.
type Seed struct {
	SeedType   string   `json:"seedType"`
	QuantityKg float64  `json:"quantityKg"`
	TotalCost  float64  `json:"totalCost"`
	RatePerKg  *float64 `json:"ratePerKg,omitempty"`
}

func (*Seed) Kind() Kind { return KindSeed }

func (s *Seed) Validate() error {
	switch {
	case !domain.OneOf(s.SeedType, SeedTypes...):
		return domain.Invalid("seed.seedType", "must be one of: %s", strings.Join(SeedTypes, ", "))
	case s.QuantityKg < 0:
		return domain.Invalid("seed.quantityKg", "must be at least 0")
	case s.TotalCost < 1:
		return domain.Invalid("seed.totalCost", "must be at least 1")
	}
	return nil
}

func (s *Seed) Derive() {
	s.RatePerKg = nil
	if rate, ok := calculator.SeedRatePerKg(s.TotalCost, s.QuantityKg); ok {
		s.RatePerKg = &rate
	}
}

func (s *Seed) Total() float64 { return s.TotalCost }

// Fertilizer purchase.
type Fertilizer struct {
	ProductName  string  `json:"productName"`
	NumberOfBags float64 `json:"numberOfBags"`
	TotalCost    float64 `json:"totalCost"`
}

func (*Fertilizer) Kind() Kind { return KindFertilizer }

func (f *Fertilizer) Validate() error {
	switch {
	case !domain.OneOf(f.ProductName, FertilizerProducts...):
		return domain.Invalid("fertilizer.productName", "must be one of: %s", strings.Join(FertilizerProducts, ", "))
	case f.NumberOfBags < 0:
		return domain.Invalid("fertilizer.numberOfBags", "must be at least 0")
	case f.TotalCost < 1:
		return domain.Invalid("fertilizer.totalCost", "must be at least 1")
	}
	return nil
}

func (*Fertilizer) Derive() {}

func (f *Fertilizer) Total() float64 { return f.TotalCost }

// Pesticide purchase.
type Pesticide struct {
	Category string  `json:"category"`
	DosageML float64 `json:"dosageML"`
	Cost     float64 `json:"cost"`
}

func (*Pesticide) Kind() Kind { return KindPesticide }

func (p *Pesticide) Validate() error {
	switch {
	case !domain.OneOf(p.Category, PesticideCategories...):
		return domain.Invalid("pesticide.category", "must be one of: %s", strings.Join(PesticideCategories, ", "))
	case p.DosageML < 0:
		return domain.Invalid("pesticide.dosageML", "must be at least 0")
	case p.Cost < 1:
		return domain.Invalid("pesticide.cost", "must be at least 1")
	}
	return nil
}

func (*Pesticide) Derive() {}

func (p *Pesticide) Total() float64 { return p.Cost }

// LabourDaily is day-wage labour. TotalCost is derived.
type LabourDaily struct {
	Task           string  `json:"task"`
	NumberOfPeople int     `json:"numberOfPeople"`
	Days           int     `json:"days"`
	DailyRate      float64 `json:"dailyRate"`
	TotalCost      float64 `json:"totalCost"`
}

func (*LabourDaily) Kind() Kind { return KindLabourDaily }

func (l *LabourDaily) Validate() error {
	switch {
	case !domain.OneOf(l.Task, LabourTasks...):
		return domain.Invalid("labourDaily.task", "must be one of: %s", strings.Join(LabourTasks, ", "))
	case l.NumberOfPeople < 1:
		return domain.Invalid("labourDaily.numberOfPeople", "must be at least 1")
	case l.Days < 1:
		return domain.Invalid("labourDaily.days", "must be at least 1")
	case l.DailyRate < 1:
		return domain.Invalid("labourDaily.dailyRate", "must be at least 1")
	}
	return nil
}

func (l *LabourDaily) Derive() {
	l.TotalCost = calculator.LabourDailyTotal(l.NumberOfPeople, l.Days, l.DailyRate)
}

func (l *LabourDaily) Total() float64 { return l.TotalCost }

// LabourContract is an advance paid to contract labour.
type LabourContract struct {
	AdvanceReason string  `json:"advanceReason"`
	AmountGiven   float64 `json:"amountGiven"`
}

func (*LabourContract) Kind() Kind { return KindLabourContract }

func (l *LabourContract) Validate() error {
	switch {
	case !domain.OneOf(l.AdvanceReason, AdvanceReasons...):
		return domain.Invalid("labourContract.advanceReason", "must be one of: %s", strings.Join(AdvanceReasons, ", "))
	case l.AmountGiven < 1:
		return domain.Invalid("labourContract.amountGiven", "must be at least 1")
	}
	return nil
}

func (*LabourContract) Derive() {}

func (l *LabourContract) Total() float64 { return l.AmountGiven }

// Machinery hire. TotalCost is derived.
type Machinery struct {
	Implement    string  `json:"implement"`
	IsContract   bool    `json:"isContract"`
	HoursOrAcres float64 `json:"hoursOrAcres"`
	Rate         float64 `json:"rate"`
	TotalCost    float64 `json:"totalCost"`
}

func (*Machinery) Kind() Kind { return KindMachinery }

func (m *Machinery) Validate() error {
	switch {
	case !domain.OneOf(m.Implement, Implements...):
		return domain.Invalid("machinery.implement", "must be one of: %s", strings.Join(Implements, ", "))
	case m.HoursOrAcres < 0:
		return domain.Invalid("machinery.hoursOrAcres", "must be at least 0")
	case m.Rate < 1:
		return domain.Invalid("machinery.rate", "must be at least 1")
	}
	return nil
}

func (m *Machinery) Derive() {
	m.TotalCost = calculator.MachineryTotal(m.HoursOrAcres, m.Rate)
}

func (m *Machinery) Total() float64 { return m.TotalCost }

var (
	_ Detail = (*Seed)(nil)
	_ Detail = (*Fertilizer)(nil)
	_ Detail = (*Pesticide)(nil)
	_ Detail = (*LabourDaily)(nil)
	_ Detail = (*LabourContract)(nil)
	_ Detail = (*Machinery)(nil)
)
