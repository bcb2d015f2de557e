package expense

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Expense represents an expense record in the database. Detail holds the
// JSON encoded sub-record named by Kind.
type Expense struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID       `gorm:"type:uuid;not null;index:idx_expenses_user_crop,priority:1"`
	CropID    uuid.UUID       `gorm:"type:uuid;not null;index:idx_expenses_user_crop,priority:2"`
	Category  string          `gorm:"not null;size:20"`
	Kind      string          `gorm:"not null;size:20"`
	Detail    string          `gorm:"type:text;not null"`
	Amount    decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	Date      time.Time       `gorm:"not null;index"`
	Notes     string          `gorm:"size:500"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the table name for the Expense model.
func (Expense) TableName() string {
	return "expenses"
}
