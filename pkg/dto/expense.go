package dto

import (
	"time"

	"github.com/amirasaad/farmledger/pkg/domain"
	"github.com/amirasaad/farmledger/pkg/domain/expense"
	"github.com/google/uuid"
)

// ExpenseDetails carries the category sub-records on the wire. Exactly one
// is expected on create; derived fields sent by the client are recomputed.
type ExpenseDetails struct {
	Seed           *expense.Seed           `json:"seed,omitempty"`
	Fertilizer     *expense.Fertilizer     `json:"fertilizer,omitempty"`
	Pesticide      *expense.Pesticide      `json:"pesticide,omitempty"`
	LabourDaily    *expense.LabourDaily    `json:"labourDaily,omitempty"`
	LabourContract *expense.LabourContract `json:"labourContract,omitempty"`
	Machinery      *expense.Machinery      `json:"machinery,omitempty"`
}

// Detail returns the single populated sub-record. ok is false when none is
// set; more than one is a validation error.
func (d *ExpenseDetails) Detail() (detail expense.Detail, ok bool, err error) {
	var found []expense.Detail
	if d.Seed != nil {
		found = append(found, d.Seed)
	}
	if d.Fertilizer != nil {
		found = append(found, d.Fertilizer)
	}
	if d.Pesticide != nil {
		found = append(found, d.Pesticide)
	}
	if d.LabourDaily != nil {
		found = append(found, d.LabourDaily)
	}
	if d.LabourContract != nil {
		found = append(found, d.LabourContract)
	}
	if d.Machinery != nil {
		found = append(found, d.Machinery)
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

func newExpenseDetails(d expense.Detail) ExpenseDetails {
	var out ExpenseDetails
	switch v := d.(type) {
	case *expense.Seed:
		out.Seed = v
	case *expense.Fertilizer:
		out.Fertilizer = v
	case *expense.Pesticide:
		out.Pesticide = v
	case *expense.LabourDaily:
		out.LabourDaily = v
	case *expense.LabourContract:
		out.LabourContract = v
	case *expense.Machinery:
		out.Machinery = v
	}
	return out
}

// ExpenseCreate is the body of POST /api/expenses.
type ExpenseCreate struct {
	CropID   string `json:"cropId" validate:"required,uuid"`
	Category string `json:"category" validate:"required"`
	Date     *Date  `json:"date"`
	Notes    string `json:"notes" validate:"max=500"`
	ExpenseDetails
}

// ExpenseUpdate is the allow-list for PUT /api/expenses/:id.
type ExpenseUpdate struct {
	CropID   *string `json:"cropId" validate:"omitempty,uuid"`
	Category *string `json:"category"`
	Date     *Date   `json:"date"`
	Notes    *string `json:"notes" validate:"omitempty,max=500"`
	ExpenseDetails
}

// IsEmpty reports whether the patch names none of the mutable fields.
func (u *ExpenseUpdate) IsEmpty() bool {
	_, hasDetail, err := u.Detail()
	return u.CropID == nil && u.Category == nil && u.Date == nil &&
		u.Notes == nil && !hasDetail && err == nil
}

// ExpenseRead is the API view of an expense.
type ExpenseRead struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"userId"`
	CropID    uuid.UUID `json:"cropId"`
	Category  string    `json:"category"`
	Date      time.Time `json:"date"`
	Notes     string    `json:"notes"`
	Amount    float64   `json:"amount"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	ExpenseDetails
}

// NewExpenseRead maps an expense to its API view.
func NewExpenseRead(e *expense.Expense) *ExpenseRead {
	return &ExpenseRead{
		ID:             e.ID,
		UserID:         e.UserID,
		CropID:         e.CropID,
		Category:       string(e.Category),
		Date:           e.Date,
		Notes:          e.Notes,
		Amount:         e.Amount,
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      e.UpdatedAt,
		ExpenseDetails: newExpenseDetails(e.Detail),
	}
}
