package dto

import (
	"time"

	"github.com/amirasaad/farmledger/pkg/domain/profile"
	"github.com/google/uuid"
)

// TotalLand is the land holding with its unit.
type TotalLand struct {
	Value *float64 `json:"value" validate:"required,gte=0"`
	Unit  string   `json:"unit"`
}

// ProfileCreate is the body of POST /api/profile/complete.
type ProfileCreate struct {
	Name             string    `json:"name" validate:"required"`
	District         string    `json:"district" validate:"required"`
	Taluka           string    `json:"taluka" validate:"required"`
	Village          string    `json:"village" validate:"required"`
	TotalLand        TotalLand `json:"totalLand"`
	WaterSource      string    `json:"waterSource" validate:"required"`
	TractorAvailable *bool     `json:"tractorAvailable" validate:"required"`
	LabourType       string    `json:"labourType" validate:"required"`
	AnalyticsConsent bool      `json:"analyticsConsent"`
}

// TotalLandPatch updates either part of the land holding.
type TotalLandPatch struct {
	Value *float64 `json:"value"`
	Unit  *string  `json:"unit"`
}

// ProfileUpdate is the allow-list for PUT /api/profile/update.
type ProfileUpdate struct {
	Name             *string         `json:"name"`
	District         *string         `json:"district"`
	Taluka           *string         `json:"taluka"`
	Village          *string         `json:"village"`
	TotalLand        *TotalLandPatch `json:"totalLand"`
	WaterSource      *string         `json:"waterSource"`
	TractorAvailable *bool           `json:"tractorAvailable"`
	LabourType       *string         `json:"labourType"`
	AnalyticsConsent *bool           `json:"analyticsConsent"`
}

// IsEmpty reports whether the patch names none of the mutable fields.
func (u *ProfileUpdate) IsEmpty() bool {
	landEmpty := u.TotalLand == nil || (u.TotalLand.Value == nil && u.TotalLand.Unit == nil)
	return u.Name == nil && u.District == nil && u.Taluka == nil &&
		u.Village == nil && landEmpty && u.WaterSource == nil &&
		u.TractorAvailable == nil && u.LabourType == nil && u.AnalyticsConsent == nil
}

// Apply copies the set fields onto p.
func (u *ProfileUpdate) Apply(p *profile.FarmerProfile) {
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.District != nil {
		p.District = *u.District
	}
	if u.Taluka != nil {
		p.Taluka = *u.Taluka
	}
	if u.Village != nil {
		p.Village = *u.Village
	}
	if u.TotalLand != nil {
		if u.TotalLand.Value != nil {
			p.TotalLandValue = *u.TotalLand.Value
		}
		if u.TotalLand.Unit != nil {
			p.TotalLandUnit = *u.TotalLand.Unit
		}
	}
	if u.WaterSource != nil {
		p.WaterSource = *u.WaterSource
	}
	if u.TractorAvailable != nil {
		p.TractorAvailable = *u.TractorAvailable
	}
	if u.LabourType != nil {
		p.LabourType = *u.LabourType
	}
	if u.AnalyticsConsent != nil {
		p.AnalyticsConsent = *u.AnalyticsConsent
	}
}

// LandRead is the land holding as returned by the API.
type LandRead struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
}

// ProfileRead is the API view of a farmer profile.
type ProfileRead struct {
	ID               uuid.UUID `json:"id"`
	UserID           uuid.UUID `json:"user"`
	Name             string    `json:"name"`
	District         string    `json:"district"`
	Taluka           string    `json:"taluka"`
	Village          string    `json:"village"`
	TotalLand        LandRead  `json:"totalLand"`
	WaterSource      string    `json:"waterSource"`
	TractorAvailable bool      `json:"tractorAvailable"`
	LabourType       string    `json:"labourType"`
	AnalyticsConsent bool      `json:"analyticsConsent"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// NewProfileRead maps a profile to its API view.
func NewProfileRead(p *profile.FarmerProfile) *ProfileRead {
	return &ProfileRead{
		ID:               p.ID,
		UserID:           p.UserID,
		Name:             p.Name,
		District:         p.District,
		Taluka:           p.Taluka,
		Village:          p.Village,
		WaterSource:      p.WaterSource,
		TractorAvailable: p.TractorAvailable,
		LabourType:       p.LabourType,
		AnalyticsConsent: p.AnalyticsConsent,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
		TotalLand: LandRead{
			Value: p.TotalLandValue,
			Unit:  p.TotalLandUnit,
		},
	}
}
