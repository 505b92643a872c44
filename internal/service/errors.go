package service

import (
	"errors"
	"strings"

	"github.com/Drasasse/gestion-commerce-sub002/pkg/apperror"

	"gorm.io/gorm"
)

// notFoundOr maps a gorm record miss to a 404-kind error and everything else
// to an internal error, so persistence failures never leak raw to the client.
func notFoundOr(err error, message string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperror.NotFound(message)
	}
	return apperror.Internal(err)
}

// isDuplicateKey detects a storage-level unique constraint violation. The
// service-level pre-checks reduce the race window; this translation is the
// backstop that keeps a concurrent duplicate a structured conflict instead
// of a 500.
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint")
}
