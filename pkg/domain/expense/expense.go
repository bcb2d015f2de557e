package expense

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/amirasaad/farmledger/pkg/calculator"
	"github.com/amirasaad/farmledger/pkg/domain"
	"github.com/google/uuid"
)

// Category discriminates which sub-record an expense carries.
type Category string

const (
	CategorySeed       Category = "Seed"
	CategoryFertilizer Category = "Fertilizer"
	CategoryPesticide  Category = "Pesticide"
	CategoryLabour     Category = "Labour"
	CategoryMachinery  Category = "Machinery"
)

// Categories lists the accepted expense categories.
var Categories = []Category{
	CategorySeed,
	CategoryFertilizer,
	CategoryPesticide,
	CategoryLabour,
	CategoryMachinery,
}

// categoryKinds maps a category to the sub-record kinds it accepts.
// Labour takes either daily or contract labour.
var categoryKinds = map[Category][]Kind{
	CategorySeed:       {KindSeed},
	CategoryFertilizer: {KindFertilizer},
	CategoryPesticide:  {KindPesticide},
	CategoryLabour:     {KindLabourDaily, KindLabourContract},
	CategoryMachinery:  {KindMachinery},
}

const MaxNotesLength = 500

var (
	// ErrExpenseNotFound is returned when an expense does not exist or belongs to another user.
	ErrExpenseNotFound = fmt.Errorf("expense not found: %w", domain.ErrNotFound)
	// ErrUnknownKind is returned when a stored sub-record kind cannot be decoded.
	ErrUnknownKind = fmt.Errorf("unknown expense detail kind: %w", domain.ErrValidation)
)

// Expense is a cost recorded against a crop.
//
// Amount is the effective total of Detail. It is recomputed by Prepare and
// never taken from the caller.
type Expense struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	CropID    uuid.UUID
	Category  Category
	Date      time.Time
	Notes     string
	Detail    Detail
	Amount    float64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// New returns an expense for userID dated now.
func New(userID uuid.UUID) *Expense {
	now := time.Now().UTC()
	return &Expense{
		ID:        uuid.New(),
		UserID:    userID,
		Date:      now,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Validate checks the header fields and that Detail matches Category.
func (e *Expense) Validate() error {
	if e.UserID == uuid.Nil {
		return domain.Invalid("userId", "owner is required")
	}
	if e.CropID == uuid.Nil {
		return domain.Invalid("cropId", "is required")
	}
	kinds, ok := categoryKinds[e.Category]
	if !ok {
		return domain.Invalid("category", "must be one of: %s", joinCategories())
	}
	if e.Detail == nil {
		return domain.Invalid(string(kinds[0]), "is required for category %s", e.Category)
	}
	if !domain.OneOf(e.Detail.Kind(), kinds...) {
		return domain.Invalid(string(e.Detail.Kind()), "does not match category %s", e.Category)
	}
	if len([]rune(e.Notes)) > MaxNotesLength {
		return domain.Invalid("notes", "cannot exceed %d characters", MaxNotesLength)
	}
	return e.Detail.Validate()
}

// Derive recomputes the derived fields of Detail and the effective Amount.
func (e *Expense) Derive() {
	e.Detail.Derive()
	e.Amount = calculator.Round2(e.Detail.Total())
}

// Prepare validates and derives. Every write goes through it.
func (e *Expense) Prepare() error {
	e.Notes = strings.TrimSpace(e.Notes)
	if err := e.Validate(); err != nil {
		return err
	}
	e.Derive()
	return nil
}

// MarshalDetail encodes the sub-record for storage.
func MarshalDetail(d Detail) (Kind, string, error) {
	if d == nil {
		return "", "", domain.Invalid("detail", "is required")
	}
	b, err := json.Marshal(d)
	if err != nil {
		return "", "", err
	}
	return d.Kind(), string(b), nil
}

// UnmarshalDetail decodes a stored sub-record of the given kind.
func UnmarshalDetail(kind Kind, data string) (Detail, error) {
	var d Detail
	switch kind {
	case KindSeed:
		d = &Seed{}
	case KindFertilizer:
		d = &Fertilizer{}
	case KindPesticide:
		d = &Pesticide{}
	case KindLabourDaily:
		d = &LabourDaily{}
	case KindLabourContract:
		d = &LabourContract{}
	case KindMachinery:
		d = &Machinery{}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	if err := json.Unmarshal([]byte(data), d); err != nil {
		return nil, fmt.Errorf("decode %s detail: %w", kind, err)
	}
	return d, nil
}

func joinCategories() string {
	parts := make([]string, len(Categories))
	for i, c := range Categories {
		parts[i] = string(c)
	}
	return strings.Join(parts, ", ")
}
