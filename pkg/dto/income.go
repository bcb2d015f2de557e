package dto

import (
	"time"

	"github.com/amirasaad/farmledger/pkg/domain"
	"github.com/amirasaad/farmledger/pkg/domain/income"
	"github.com/google/uuid"
)

// IncomeDetails carries the category sub-records on the wire.
type IncomeDetails struct {
	CropSale     *income.CropSale     `json:"cropSale,omitempty"`
	Subsidy      *income.Subsidy      `json:"subsidy,omitempty"`
	RentalIncome *income.RentalIncome `json:"rentalIncome,omitempty"`
	OtherIncome  *income.OtherIncome  `json:"otherIncome,omitempty"`
}

// Detail returns the single populated sub-record. ok is false when none is
// set; more than one is a validation error.
func (d *IncomeDetails) Detail() (detail income.Detail, ok bool, err error) {
	var found []income.Detail
	if d.CropSale != nil {
		found = append(found, d.CropSale)
	}
	if d.Subsidy != nil {
		found = append(found, d.Subsidy)
	}
	if d.RentalIncome != nil {
		found = append(found, d.RentalIncome)
	}
	if d.OtherIncome != nil {
		found = append(found, d.OtherIncome)
	}
	switch len(found) {
	case 0:
		return nil, false, nil
	case 1:
		return found[0], true, nil
	default:
		return nil, false, domain.Invalid("detail", "exactly one category sub-record must be supplied")
	}
}

func newIncomeDetails(d income.Detail) IncomeDetails {
	var out IncomeDetails
	switch v := d.(type) {
	case *income.CropSale:
		out.CropSale = v
	case *income.Subsidy:
		out.Subsidy = v
	case *income.RentalIncome:
		out.RentalIncome = v
	case *income.OtherIncome:
		out.OtherIncome = v
	}
	return out
}

// IncomeCreate is the body of POST /api/income.
type IncomeCreate struct {
	CropID   string `json:"cropId" validate:"omitempty,uuid"`
	Category string `json:"category" validate:"required"`
	Date     *Date  `json:"date"`
	Notes    string `json:"notes" validate:"max=500"`
	IncomeDetails
}

// IncomeUpdate is the allow-list for PUT /api/income/:id. An empty cropId
// string detaches the income from its crop.
type IncomeUpdate struct {
	CropID   *string `json:"cropId"`
	Category *string `json:"category"`
	Date     *Date   `json:"date"`
	Notes    *string `json:"notes" validate:"omitempty,max=500"`
	IncomeDetails
}

// IsEmpty reports whether the patch names none of the mutable fields.
func (u *IncomeUpdate) IsEmpty() bool {
	_, hasDetail, err := u.Detail()
	return u.CropID == nil && u.Category == nil && u.Date == nil &&
		u.Notes == nil && !hasDetail && err == nil
}

// IncomeRead is the API view of an income.
type IncomeRead struct {
	ID        uuid.UUID  `json:"id"`
	UserID    uuid.UUID  `json:"userId"`
	CropID    *uuid.UUID `json:"cropId"`
	Category  string     `json:"category"`
	Date      time.Time  `json:"date"`
	Notes     string     `json:"notes"`
	Amount    float64    `json:"amount"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	IncomeDetails
}

// NewIncomeRead maps an income to its API view.
func NewIncomeRead(i *income.Income) *IncomeRead {
	return &IncomeRead{
		ID:            i.ID,
		UserID:        i.UserID,
		CropID:        i.CropID,
		Category:      string(i.Category),
		Date:          i.Date,
		Notes:         i.Notes,
		Amount:        i.Amount,
		CreatedAt:     i.CreatedAt,
		UpdatedAt:     i.UpdatedAt,
		IncomeDetails: newIncomeDetails(i.Detail),
	}
}

// CategoryTotal is one row of the income summary.
type CategoryTotal struct {
	Category    string  `json:"category"`
	TotalAmount float64 `json:"totalAmount"`
	Count       int64   `json:"count"`
}

// IncomeSummary groups income by category. Year is "all" when no year was given.
type IncomeSummary struct {
	Year       string          `json:"year"`
	Summary    []CategoryTotal `json:"summary"`
	GrandTotal float64         `json:"grandTotal"`
}
