package income

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Income represents an income record in the database. CropID is null for
// income not tied to a crop.
type Income struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID       `gorm:"type:uuid;not null;index:idx_incomes_user_date,priority:1"`
	CropID    *uuid.UUID      `gorm:"type:uuid;index"`
	Category  string          `gorm:"not null;size:20"`
	Kind      string          `gorm:"not null;size:20"`
	Detail    string          `gorm:"type:text;not null"`
	Amount    decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	Date      time.Time       `gorm:"not null;index:idx_incomes_user_date,priority:2"`
	Notes     string          `gorm:"size:500"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the table name for the Income model.
func (Income) TableName() string {
	return "incomes"
}
