package crop

import (
	"time"

	"github.com/google/uuid"
)

// Crop represents a crop record in the database. A user registers a given
// crop name once per year and batch label.
type Crop struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_crops_user_name_year_batch,priority:1"`
	Season      string    `gorm:"not null;size:10"`
	Year        int       `gorm:"not null;index;uniqueIndex:idx_crops_user_name_year_batch,priority:3"`
	CropName    string    `gorm:"not null;size:100;uniqueIndex:idx_crops_user_name_year_batch,priority:2"`
	CropType    string    `gorm:"size:50"`
	BatchLabel  string    `gorm:"not null;size:50;default:'';uniqueIndex:idx_crops_user_name_year_batch,priority:4"`
	CropEmoji   string    `gorm:"size:16"`
	Area        float64   `gorm:"not null"`
	AreaUnit    string    `gorm:"not null;size:10;default:Bigha"`
	SowingDate  *time.Time
	HarvestDate *time.Time
	Status      string `gorm:"not null;size:20;default:Active"`
	Notes       string `gorm:"size:500"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName specifies the table name for the Crop model.
func (Crop) TableName() string {
	return "crops"
}
