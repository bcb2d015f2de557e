package repository

import (
	"errors"
	"strings"

	"github.com/amirasaad/farmledger/pkg/domain"
	"gorm.io/gorm"
)

// duplicateMarkers are driver messages for unique violations that reach us
// untranslated.
var duplicateMarkers = []string{
	"UNIQUE constraint failed",
	"duplicate key value",
}

// MapGormErrorToDomain converts GORM errors to domain errors.
// This keeps infrastructure concerns (database errors) within the infrastructure layer.
// Traverses the error chain to find GORM errors and maps them to appropriate domain errors.
func MapGormErrorToDomain(err error) error {
	if err == nil {
		return nil
	}

	currentErr := err
	for currentErr != nil {
		switch {
		case errors.Is(currentErr, gorm.ErrDuplicatedKey):
			return domain.ErrAlreadyExists
		case errors.Is(currentErr, gorm.ErrRecordNotFound):
			return domain.ErrNotFound
		}

		currentErr = errors.Unwrap(currentErr)
	}

	msg := err.Error()
	for _, marker := range duplicateMarkers {
		if strings.Contains(msg, marker) {
			return domain.ErrAlreadyExists
		}
	}

	// Return original error if no mapping found
	return err
}

// WrapError wraps a GORM operation and automatically maps errors.
//
// Usage:
//
//	err := WrapError(func() error {
//	    return r.db.WithContext(ctx).Create(m).Error
//	})
func WrapError(op func() error) error {
	return MapGormErrorToDomain(op())
}

// MapNotFound maps err like MapGormErrorToDomain but reports a missing
// record as notFound, the entity-specific sentinel.
func MapNotFound(err, notFound error) error {
	mapped := MapGormErrorToDomain(err)
	if errors.Is(mapped, domain.ErrNotFound) {
		return notFound
	}
	return mapped
}

// MapAlreadyExists reports a mapped unique violation as exists, the
// entity-specific sentinel.
func MapAlreadyExists(err, exists error) error {
	if errors.Is(err, domain.ErrAlreadyExists) {
		return exists
	}
	return err
}
