package postgres

import (
	"strings"

	domainerrors "mealtrack/internal/domain/errors"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// Helper functions for PostgreSQL error checking
func isUniqueConstraintViolation(err error) bool {
	// Check for GORM's duplicate key error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	errMsg := strings.ToLower(err.Error())

	return strings.Contains(errMsg, "duplicate key") ||
		strings.Contains(errMsg, "unique constraint") ||
		strings.Contains(errMsg, "23505") // PostgreSQL unique_violation error code
}

// isSuperadminRoleViolation reports whether the error comes from the
// partial unique index guarding the singleton superadmin row. Must be
// checked before the generic unique-violation translation, which would
// otherwise report the conflict as a taken email.
func isSuperadminRoleViolation(err error) bool {
	return strings.Contains(strings.ToLower(err.Error()), superadminIndexName)
}

// translateAccountWriteError maps constraint violations raised by account
// inserts and updates to domain errors.
func translateAccountWriteError(err error, action string) error {
	if isSuperadminRoleViolation(err) {
		return domainerrors.ErrSuperadminExists.WrapMessage("superadmin row already exists")
	}
	if isUniqueConstraintViolation(err) {
		return domainerrors.ErrEmailTaken.WrapMessage("email already exists")
	}
	if isNotNullConstraintViolation(err) {
		return domainerrors.ErrValidationFailed.WrapMessage("missing required account information")
	}

	return domainerrors.NewDatabaseExecuteError(err, action)
}

func isForeignKeyConstraintViolation(err error) bool {
	// Check for GORM's foreign key violation error
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}

	errMsg := strings.ToLower(err.Error())

	return strings.Contains(errMsg, "foreign key") ||
		strings.Contains(errMsg, "23503") // PostgreSQL foreign_key_violation error code
}

func isNotNullConstraintViolation(err error) bool {
	// Check error message for PostgreSQL-specific not null constraint violation patterns
	errMsg := strings.ToLower(err.Error())

	return strings.Contains(errMsg, "null value") ||
		strings.Contains(errMsg, "not null") ||
		strings.Contains(errMsg, "23502") // PostgreSQL not_null_violation error code
}
