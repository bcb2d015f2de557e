package income

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/amirasaad/farmledger/pkg/calculator"
	"github.com/amirasaad/farmledger/pkg/domain"
	"github.com/google/uuid"
)

// Category discriminates which sub-record an income carries.
type Category string

const (
	CategoryCropSale     Category = "Crop Sale"
	CategorySubsidy      Category = "Subsidy"
	CategoryRentalIncome Category = "Rental Income"
	CategoryOther        Category = "Other"
)

// Categories lists the accepted income categories.
var Categories = []Category{
	CategoryCropSale,
	CategorySubsidy,
	CategoryRentalIncome,
	CategoryOther,
}

var categoryKinds = map[Category]Kind{
	CategoryCropSale:     KindCropSale,
	CategorySubsidy:      KindSubsidy,
	CategoryRentalIncome: KindRentalIncome,
	CategoryOther:        KindOtherIncome,
}

const MaxNotesLength = 500

var (
	// ErrIncomeNotFound is returned when an income does not exist or belongs to another user.
	ErrIncomeNotFound = fmt.Errorf("income not found: %w", domain.ErrNotFound)
	// ErrUnknownKind is returned when a stored sub-record kind cannot be decoded.
	ErrUnknownKind = fmt.Errorf("unknown income detail kind: %w", domain.ErrValidation)
)

// Income is money received by a farmer. CropID is optional: subsidies and
// rent are often not tied to a crop.
type Income struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	CropID    *uuid.UUID
	Category  Category
	Date      time.Time
	Notes     string
	Detail    Detail
	Amount    float64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// New returns an income for userID dated now.
func New(userID uuid.UUID) *Income {
	now := time.Now().UTC()
	return &Income{
		ID:        uuid.New(),
		UserID:    userID,
		Date:      now,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Validate checks the header fields and that Detail matches Category.
func (i *Income) Validate() error {
	if i.UserID == uuid.Nil {
		return domain.Invalid("userId", "owner is required")
	}
	kind, ok := categoryKinds[i.Category]
	if !ok {
		return domain.Invalid("category", "must be one of: %s", joinCategories())
	}
	if i.Detail == nil {
		return domain.Invalid(string(kind), "is required for category %s", i.Category)
	}
	if i.Detail.Kind() != kind {
		return domain.Invalid(string(i.Detail.Kind()), "does not match category %s", i.Category)
	}
	if len([]rune(i.Notes)) > MaxNotesLength {
		return domain.Invalid("notes", "cannot exceed %d characters", MaxNotesLength)
	}
	return i.Detail.Validate()
}

// Derive recomputes the derived fields of Detail and the effective Amount.
func (i *Income) Derive() {
	i.Detail.Derive()
	i.Amount = calculator.Round2(i.Detail.Total())
}

// Prepare validates and derives. Every write goes through it.
func (i *Income) Prepare() error {
	i.Notes = strings.TrimSpace(i.Notes)
	if err := i.Validate(); err != nil {
		return err
	}
	i.Derive()
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
	case KindCropSale:
		d = &CropSale{}
	case KindSubsidy:
		d = &Subsidy{}
	case KindRentalIncome:
		d = &RentalIncome{}
	case KindOtherIncome:
		d = &OtherIncome{}
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
