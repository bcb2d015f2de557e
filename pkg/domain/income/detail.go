package income

import (
	"strings"

	"github.com/amirasaad/farmledger/pkg/calculator"
	"github.com/amirasaad/farmledger/pkg/domain"
)

// Kind names the concrete sub-record carried by an income.
type Kind string

const (
	KindCropSale     Kind = "cropSale"
	KindSubsidy      Kind = "subsidy"
	KindRentalIncome Kind = "rentalIncome"
	KindOtherIncome  Kind = "otherIncome"
)

// Detail is the category-specific part of an income.
type Detail interface {
	Kind() Kind
	Validate() error
	Derive()
	// Total is the effective total of the sub-record.
	Total() float64
}

var (
	SchemeTypes = []string{
		"PM-KISAN",
		"Fasal Bima (Crop Insurance)",
		"Seed Subsidy",
		"Fertilizer Subsidy",
		"Irrigation Subsidy",
		"Equipment Subsidy",
		"Other Government Scheme",
	}

	AssetTypes = []string{"Tractor", "Rotavator", "Thresher", "Land", "Water Pump", "Other Equipment"}

	OtherSources = []string{"Labour Work", "Animal Husbandry", "Dairy", "Part-time Work", "Loan Received", "Other"}
)

// CropSale of harvested produce. TotalAmount is derived.
type CropSale struct {
	CropName    string  `json:"cropName"`
	QuantityKg  float64 `json:"quantityKg"`
	PricePerKg  float64 `json:"pricePerKg"`
	TotalAmount float64 `json:"totalAmount"`
	BuyerName   string  `json:"buyerName"`
	MarketName  string  `json:"marketName"`
}

func (*CropSale) Kind() Kind { return KindCropSale }

func (c *CropSale) Validate() error {
	c.CropName = strings.TrimSpace(c.CropName)
	switch {
	case c.CropName == "":
		return domain.Invalid("cropSale.cropName", "is required")
	case c.QuantityKg < 0:
		return domain.Invalid("cropSale.quantityKg", "must be at least 0")
	case c.PricePerKg < 0:
		return domain.Invalid("cropSale.pricePerKg", "must be at least 0")
	}
	return nil
}

func (c *CropSale) Derive() {
	c.TotalAmount = calculator.CropSaleTotal(c.QuantityKg, c.PricePerKg)
}

func (c *CropSale) Total() float64 { return c.TotalAmount }

// Subsidy received under a government scheme.
type Subsidy struct {
	SchemeType      string  `json:"schemeType"`
	Amount          float64 `json:"amount"`
	ReferenceNumber string  `json:"referenceNumber"`
}

func (*Subsidy) Kind() Kind { return KindSubsidy }

func (s *Subsidy) Validate() error {
	switch {
	case !domain.OneOf(s.SchemeType, SchemeTypes...):
		return domain.Invalid("subsidy.schemeType", "must be one of: %s", strings.Join(SchemeTypes, ", "))
	case s.Amount < 1:
		return domain.Invalid("subsidy.amount", "must be at least 1")
	}
	return nil
}

func (*Subsidy) Derive() {}

func (s *Subsidy) Total() float64 { return s.Amount }

// RentalIncome from renting out an asset. TotalAmount is derived.
type RentalIncome struct {
	AssetType    string  `json:"assetType"`
	RentedToName string  `json:"rentedToName"`
	HoursOrDays  float64 `json:"hoursOrDays"`
	RatePerUnit  float64 `json:"ratePerUnit"`
	TotalAmount  float64 `json:"totalAmount"`
}

func (*RentalIncome) Kind() Kind { return KindRentalIncome }

func (r *RentalIncome) Validate() error {
	switch {
	case !domain.OneOf(r.AssetType, AssetTypes...):
		return domain.Invalid("rentalIncome.assetType", "must be one of: %s", strings.Join(AssetTypes, ", "))
	case r.HoursOrDays < 0:
		return domain.Invalid("rentalIncome.hoursOrDays", "must be at least 0")
	case r.RatePerUnit < 1:
		return domain.Invalid("rentalIncome.ratePerUnit", "must be at least 1")
	}
	return nil
}

func (r *RentalIncome) Derive() {
	r.TotalAmount = calculator.RentalTotal(r.HoursOrDays, r.RatePerUnit)
}

func (r *RentalIncome) Total() float64 { return r.TotalAmount }

// OtherIncome covers income that is not farm produce, subsidy or rent.
type OtherIncome struct {
	Source      string  `json:"source"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
}

func (*OtherIncome) Kind() Kind { return KindOtherIncome }

func (o *OtherIncome) Validate() error {
	switch {
	case !domain.OneOf(o.Source, OtherSources...):
		return domain.Invalid("otherIncome.source", "must be one of: %s", strings.Join(OtherSources, ", "))
	case o.Amount < 1:
		return domain.Invalid("otherIncome.amount", "must be at least 1")
	}
	return nil
}

func (*OtherIncome) Derive() {}

func (o *OtherIncome) Total() float64 { return o.Amount }

var (
	_ Detail = (*CropSale)(nil)
	_ Detail = (*Subsidy)(nil)
	_ Detail = (*RentalIncome)(nil)
	_ Detail = (*OtherIncome)(nil)
)
