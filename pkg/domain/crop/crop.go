package crop

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/amirasaad/farmledger/pkg/domain"
	"github.com/google/uuid"
)

// Season of the agricultural year.
type Season string

const (
	SeasonKharif Season = "Kharif"
	SeasonRabi   Season = "Rabi"
	SeasonSummer Season = "Summer"
)

// Seasons lists the accepted seasons in calendar order.
var Seasons = []Season{SeasonKharif, SeasonRabi, SeasonSummer}

// Status of a planting. In practice it only moves forward.
type Status string

const (
	StatusActive    Status = "Active"
	StatusHarvested Status = "Harvested"
	StatusClosed    Status = "Closed"
)

// Statuses lists the accepted statuses.
var Statuses = []Status{StatusActive, StatusHarvested, StatusClosed}

// AreaUnit is recorded per crop and never converted.
type AreaUnit string

const (
	AreaBigha   AreaUnit = "Bigha"
	AreaAcre    AreaUnit = "Acre"
	AreaHectare AreaUnit = "Hectare"
)

// AreaUnits lists the accepted area units.
var AreaUnits = []AreaUnit{AreaBigha, AreaAcre, AreaHectare}

const (
	DefaultEmoji   = "🌱"
	MaxNameLength  = 100
	MaxNotesLength = 500
	MinArea        = 0.01
)

var (
	// ErrCropNotFound is returned when a crop does not exist or belongs to another user.
	ErrCropNotFound = fmt.Errorf("crop not found: %w", domain.ErrNotFound)
	// ErrDuplicateCrop is returned for a second (user, name, year, batch) planting.
	ErrDuplicateCrop = fmt.Errorf("crop with this name, year and batch label already exists: %w", domain.ErrAlreadyExists)
)

// Crop is one planting instance, identified by (user, name, year, batch label).
type Crop struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Season      Season
	Year        int
	CropName    string
	CropType    string
	BatchLabel  string
	CropEmoji   string
	Area        float64
	AreaUnit    AreaUnit
	SowingDate  *time.Time
	HarvestDate *time.Time
	Status      Status
	Notes       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// New returns a crop owned by userID with defaults applied. Callers set the
// remaining fields and call Validate before saving.
func New(userID uuid.UUID) *Crop {
	now := time.Now().UTC()
	return &Crop{
		ID:        uuid.New(),
		UserID:    userID,
		CropEmoji: DefaultEmoji,
		AreaUnit:  AreaBigha,
		Status:    StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Normalize trims free text and fills defaults left empty by a patch.
// A missing year is taken from the sowing date, else from now.
func (c *Crop) Normalize(now time.Time) {
	c.CropName = strings.TrimSpace(c.CropName)
	c.CropType = strings.TrimSpace(c.CropType)
	c.BatchLabel = strings.TrimSpace(c.BatchLabel)
	c.Notes = strings.TrimSpace(c.Notes)
	if c.CropEmoji == "" {
		c.CropEmoji = DefaultEmoji
	}
	if c.AreaUnit == "" {
		c.AreaUnit = AreaBigha
	}
	if c.Status == "" {
		c.Status = StatusActive
	}
	if c.Year == 0 {
		if c.SowingDate != nil {
			c.Year = c.SowingDate.Year()
		} else {
			c.Year = now.Year()
		}
	}
}

// Validate checks every field against its constraints.
func (c *Crop) Validate() error {
	if c.UserID == uuid.Nil {
		return domain.Invalid("userId", "owner is required")
	}
	if !domain.OneOf(c.Season, Seasons...) {
		return domain.Invalid("season", "must be one of: %s", join(Seasons))
	}
	if c.CropName == "" {
		return domain.Invalid("cropName", "Crop name is required")
	}
	if utf8.RuneCountInString(c.CropName) > MaxNameLength {
		return domain.Invalid("cropName", "Crop name cannot exceed %d characters", MaxNameLength)
	}
	if c.Year < 1900 || c.Year > 9999 {
		return domain.Invalid("year", "must be a four-digit year")
	}
	if c.Area < MinArea {
		return domain.Invalid("area", "Area must be greater than 0")
	}
	if !domain.OneOf(c.AreaUnit, AreaUnits...) {
		return domain.Invalid("areaUnit", "must be one of: %s", join(AreaUnits))
	}
	if !domain.OneOf(c.Status, Statuses...) {
		return domain.Invalid("status", "Status must be one of: %s", join(Statuses))
	}
	if utf8.RuneCountInString(c.Notes) > MaxNotesLength {
		return domain.Invalid("notes", "Notes cannot exceed %d characters", MaxNotesLength)
	}
	return nil
}

// SetStatus changes the status. Transitions are not restricted.
func (c *Crop) SetStatus(s Status) error {
	if !domain.OneOf(s, Statuses...) {
		return domain.Invalid("status", "Status must be one of: %s", join(Statuses))
	}
	c.Status = s
	c.UpdatedAt = time.Now().UTC()
	return nil
}

// MarkHarvested sets the status to Harvested and records the harvest date,
// defaulting to now.
func (c *Crop) MarkHarvested(at *time.Time, now time.Time) {
	if at == nil {
		at = &now
	}
	d := at.UTC()
	c.HarvestDate = &d
	c.Status = StatusHarvested
	c.UpdatedAt = now.UTC()
}

func join[T ~string](vs []T) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}
