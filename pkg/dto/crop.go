package dto

import (
	"time"

	"github.com/amirasaad/farmledger/pkg/domain/crop"
	"github.com/google/uuid"
)

// CropCreate is the body of POST /api/crops.
type CropCreate struct {
	Season     string  `json:"season" validate:"required"`
	Year       int     `json:"year" validate:"omitempty,min=1900,max=9999"`
	CropName   string  `json:"cropName" validate:"required,max=100"`
	CropType   string  `json:"cropType" validate:"max=100"`
	BatchLabel string  `json:"batchLabel" validate:"max=100"`
	CropEmoji  string  `json:"cropEmoji"`
	Area       float64 `json:"area" validate:"required"`
	AreaUnit   string  `json:"areaUnit"`
	SowingDate *Date   `json:"sowingDate"`
	Status     string  `json:"status"`
	Notes      string  `json:"notes" validate:"max=500"`
}

// ValidationMessage is reported when a required field is missing.
func (*CropCreate) ValidationMessage() string {
	return "season, cropName, and area are required."
}

// CropUpdate is the allow-list for PUT /api/crops/:id. Nil fields are left alone.
type CropUpdate struct {
	Season      *string  `json:"season"`
	Year        *int     `json:"year" validate:"omitempty,min=1900,max=9999"`
	CropName    *string  `json:"cropName" validate:"omitempty,max=100"`
	CropType    *string  `json:"cropType" validate:"omitempty,max=100"`
	BatchLabel  *string  `json:"batchLabel" validate:"omitempty,max=100"`
	CropEmoji   *string  `json:"cropEmoji"`
	Area        *float64 `json:"area"`
	AreaUnit    *string  `json:"areaUnit"`
	SowingDate  *Date    `json:"sowingDate"`
	HarvestDate *Date    `json:"harvestDate"`
	Status      *string  `json:"status"`
	Notes       *string  `json:"notes" validate:"omitempty,max=500"`
}

// IsEmpty reports whether the patch names none of the mutable fields.
func (u *CropUpdate) IsEmpty() bool {
	return u.Season == nil && u.Year == nil && u.CropName == nil &&
		u.CropType == nil && u.BatchLabel == nil && u.CropEmoji == nil &&
		u.Area == nil && u.AreaUnit == nil && u.SowingDate == nil &&
		u.HarvestDate == nil && u.Status == nil && u.Notes == nil
}

// Apply copies the set fields onto c.
func (u *CropUpdate) Apply(c *crop.Crop) {
	if u.Season != nil {
		c.Season = crop.Season(*u.Season)
	}
	if u.Year != nil {
		c.Year = *u.Year
	}
	if u.CropName != nil {
		c.CropName = *u.CropName
	}
	if u.CropType != nil {
		c.CropType = *u.CropType
	}
	if u.BatchLabel != nil {
		c.BatchLabel = *u.BatchLabel
	}
	if u.CropEmoji != nil {
		c.CropEmoji = *u.CropEmoji
	}
	if u.Area != nil {
		c.Area = *u.Area
	}
	if u.AreaUnit != nil {
		c.AreaUnit = crop.AreaUnit(*u.AreaUnit)
	}
	if u.SowingDate != nil {
		c.SowingDate = u.SowingDate.Ptr()
	}
	if u.HarvestDate != nil {
		c.HarvestDate = u.HarvestDate.Ptr()
	}
	if u.Status != nil {
		c.Status = crop.Status(*u.Status)
	}
	if u.Notes != nil {
		c.Notes = *u.Notes
	}
}

// CropStatusUpdate is the body of PATCH /api/crops/:id/status.
type CropStatusUpdate struct {
	Status string `json:"status" validate:"required"`
}

// CropHarvest is the body of PATCH /api/crops/:id/harvest.
type CropHarvest struct {
	HarvestDate *Date `json:"harvestDate"`
}

// CropRead is the API view of a crop.
type CropRead struct {
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"userId"`
	Season      string     `json:"season"`
	Year        int        `json:"year"`
	CropName    string     `json:"cropName"`
	CropType    string     `json:"cropType"`
	BatchLabel  string     `json:"batchLabel"`
	CropEmoji   string     `json:"cropEmoji"`
	Area        float64    `json:"area"`
	AreaUnit    string     `json:"areaUnit"`
	SowingDate  *time.Time `json:"sowingDate"`
	HarvestDate *time.Time `json:"harvestDate"`
	Status      string     `json:"status"`
	Notes       string     `json:"notes"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// NewCropRead maps a crop to its API view.
func NewCropRead(c *crop.Crop) *CropRead {
	return &CropRead{
		ID:          c.ID,
		UserID:      c.UserID,
		Season:      string(c.Season),
		Year:        c.Year,
		CropName:    c.CropName,
		CropType:    c.CropType,
		BatchLabel:  c.BatchLabel,
		CropEmoji:   c.CropEmoji,
		Area:        c.Area,
		AreaUnit:    string(c.AreaUnit),
		SowingDate:  c.SowingDate,
		HarvestDate: c.HarvestDate,
		Status:      string(c.Status),
		Notes:       c.Notes,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
