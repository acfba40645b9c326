package models

import (
	"errors"

	"gorm.io/gorm"
)

// Error kinds the HTTP layer maps to status codes. Anything else coming
// out of this package is a storage failure and is passed through as-is.
var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")
)

// wrapRecordError converts gorm's missing-record error to ErrNotFound so
// callers never have to import gorm to classify a failure.
func wrapRecordError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
