package profile

import (
	"fmt"
	"strings"
	"time"

	"github.com/amirasaad/farmledger/pkg/domain"
	"github.com/google/uuid"
)

// Districts are stored as stable English keys; display labels live in the client.
var Districts = []string{
	"Rajkot",
	"Jamnagar",
	"Junagadh",
	"Amreli",
	"Morbi",
	"Bhavnagar",
	"Surendranagar",
	"Other",
}

var (
	LandUnits    = []string{"acre", "bigha"}
	WaterSources = []string{"Rain", "Borewell", "Canal"}
	LabourTypes  = []string{"Family", "Hired", "Mixed"}
)

const DefaultLandUnit = "acre"

var (
	// ErrProfileNotFound is returned when the user has not completed a profile yet.
	ErrProfileNotFound = fmt.Errorf("profile not found: %w", domain.ErrNotFound)
	// ErrProfileExists is returned by a second completion attempt.
	ErrProfileExists = fmt.Errorf("profile already exists, use PUT /api/profile/update: %w", domain.ErrAlreadyExists)
)

// FarmerProfile holds one farmer's personal, location and resource details.
// There is at most one per user.
type FarmerProfile struct {
	ID               uuid.UUID
	UserID           uuid.UUID
	Name             string
	District         string
	Taluka           string
	Village          string
	TotalLandValue   float64
	TotalLandUnit    string
	WaterSource      string
	TractorAvailable bool
	LabourType       string
	AnalyticsConsent bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// New returns an empty profile for userID.
func New(userID uuid.UUID) *FarmerProfile {
	now := time.Now().UTC()
	return &FarmerProfile{
		ID:            uuid.New(),
		UserID:        userID,
		TotalLandUnit: DefaultLandUnit,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// Normalize trims the free-text fields.
func (p *FarmerProfile) Normalize() {
	p.Name = strings.TrimSpace(p.Name)
	p.Taluka = strings.TrimSpace(p.Taluka)
	p.Village = strings.TrimSpace(p.Village)
	if p.TotalLandUnit == "" {
		p.TotalLandUnit = DefaultLandUnit
	}
}

// Validate checks the required fields and enumerations.
func (p *FarmerProfile) Validate() error {
	switch {
	case p.UserID == uuid.Nil:
		return domain.Invalid("user", "owner is required")
	case p.Name == "":
		return domain.Invalid("name", "is required")
	case !domain.OneOf(p.District, Districts...):
		return domain.Invalid("district", "must be one of: %s", strings.Join(Districts, ", "))
	case p.Taluka == "":
		return domain.Invalid("taluka", "is required")
	case p.Village == "":
		return domain.Invalid("village", "is required")
	case p.TotalLandValue < 0:
		return domain.Invalid("totalLand.value", "must be at least 0")
	case !domain.OneOf(p.TotalLandUnit, LandUnits...):
		return domain.Invalid("totalLand.unit", "must be one of: %s", strings.Join(LandUnits, ", "))
	case !domain.OneOf(p.WaterSource, WaterSources...):
		return domain.Invalid("waterSource", "must be one of: %s", strings.Join(WaterSources, ", "))
	case !domain.OneOf(p.LabourType, LabourTypes...):
		return domain.Invalid("labourType", "must be one of: %s", strings.Join(LabourTypes, ", "))
	}
	return nil
}
