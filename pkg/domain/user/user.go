package user

import (
	"fmt"
	"time"

	"github.com/amirasaad/farmledger/pkg/domain"
	"github.com/amirasaad/farmledger/pkg/utils"
	"github.com/google/uuid"
)

// RoleFarmer is the role every self-registered user gets.
const RoleFarmer = "farmer"

var (
	// ErrUserNotFound is returned when a user cannot be found in the
	// repository.
	ErrUserNotFound = fmt.Errorf("user not found: %w", domain.ErrNotFound)
	// ErrUserUnauthorized is returned when the session token does not name a user.
	ErrUserUnauthorized = fmt.Errorf("user unauthorized: %w", domain.ErrUnauthorized)
	// ErrInvalidPhone is returned for anything but a 10-digit phone number.
	ErrInvalidPhone = &domain.ValidationError{Field: "phone", Message: "Valid 10-digit phone required"}
	// ErrConsentAlreadyRecorded is returned when consent was already given or refused.
	ErrConsentAlreadyRecorded = fmt.Errorf("analytics consent already recorded: %w", domain.ErrAlreadyExists)
)

// User is an account keyed by phone number.
//
// AnalyticsConsent is tri-state: nil means the user has not been asked yet.
type User struct {
	ID                 uuid.UUID `json:"id"`
	Phone              string    `json:"phone"`
	Role               string    `json:"role"`
	IsProfileCompleted bool      `json:"isProfileCompleted"`
	AnalyticsConsent   *bool     `json:"analyticsConsent"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// New creates a farmer with the given phone number.
func New(phone string) (*User, error) {
	if err := ValidatePhone(phone); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	return &User{
		ID:        uuid.New(),
		Phone:     phone,
		Role:      RoleFarmer,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// ValidatePhone accepts exactly ten ASCII digits.
func ValidatePhone(phone string) error {
	if !utils.IsPhone(phone) {
		return ErrInvalidPhone
	}
	return nil
}

// ConsentGiven reports whether the consent prompt was already answered.
func (u *User) ConsentGiven() bool {
	return u.AnalyticsConsent != nil
}

// RecordConsent stores the answer to the consent prompt. It can only be
// recorded once.
func (u *User) RecordConsent(consent bool) error {
	if u.ConsentGiven() {
		return ErrConsentAlreadyRecorded
	}
	u.AnalyticsConsent = &consent
	u.UpdatedAt = time.Now().UTC()
	return nil
}

// CompleteProfile flips the profile-completion flag.
func (u *User) CompleteProfile() {
	u.IsProfileCompleted = true
	u.UpdatedAt = time.Now().UTC()
}
