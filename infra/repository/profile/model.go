package profile

import (
	"time"

	"github.com/google/uuid"
)

// FarmerProfile represents a farmer profile record in the database.
type FarmerProfile struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID           uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	Name             string    `gorm:"not null;size:100"`
	District         string    `gorm:"not null;size:50"`
	Taluka           string    `gorm:"not null;size:100"`
	Village          string    `gorm:"not null;size:100"`
	TotalLandValue   float64   `gorm:"not null"`
	TotalLandUnit    string    `gorm:"not null;size:10;default:acre"`
	WaterSource      string    `gorm:"not null;size:30"`
	TractorAvailable bool      `gorm:"not null"`
	LabourType       string    `gorm:"not null;size:30"`
	AnalyticsConsent bool      `gorm:"not null;default:false"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// TableName specifies the table name for the FarmerProfile model.
func (FarmerProfile) TableName() string {
	return "farmer_profiles"
}
