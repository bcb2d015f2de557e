package user

import (
	"time"

	"github.com/google/uuid"
)

// User represents a user record in the database.
type User struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey"`
	Phone              string    `gorm:"uniqueIndex;not null;size:10"`
	Role               string    `gorm:"not null;size:20;default:farmer"`
	IsProfileCompleted bool      `gorm:"not null;default:false"`
	AnalyticsConsent   *bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// TableName specifies the table name for the User model.
func (User) TableName() string {
	return "users"
}
