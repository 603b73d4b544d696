package postgres

import (
	"testing"

	domainerrors "mealtrack/internal/domain/errors"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstraintErrorClassification(t *testing.T) {
	superadminErr := errors.New(
		`ERROR: duplicate key value violates unique constraint "` + superadminIndexName + `" (SQLSTATE 23505)`)
	emailErr := errors.New(
		`ERROR: duplicate key value violates unique constraint "accounts_email_key" (SQLSTATE 23505)`)

	assert.True(t, isSuperadminRoleViolation(superadminErr))
	assert.False(t, isSuperadminRoleViolation(emailErr))

	// Both are unique violations; the superadmin check must therefore run
	// first inside translateAccountWriteError.
	assert.True(t, isUniqueConstraintViolation(superadminErr))
	assert.True(t, isUniqueConstraintViolation(emailErr))
}

func TestTranslateAccountWriteError(t *testing.T) {
	tests := []struct {
		name     string
		dbErr    error
		wantCode string
	}{
		{
			name: "superadmin index violation",
			dbErr: errors.New(`ERROR: duplicate key value violates unique constraint "` +
				superadminIndexName + `" (SQLSTATE 23505)`),
			wantCode: "SUPERADMIN_EXISTS",
		},
		{
			name:     "email unique violation",
			dbErr:    errors.New(`ERROR: duplicate key value violates unique constraint "accounts_email_key" (SQLSTATE 23505)`),
			wantCode: "EMAIL_TAKEN",
		},
		{
			name:     "not null violation",
			dbErr:    errors.New(`ERROR: null value in column "email" violates not-null constraint (SQLSTATE 23502)`),
			wantCode: "VALIDATION_FAILED",
		},
		{
			name:     "anything else is a database error",
			dbErr:    errors.New("connection reset by peer"),
			wantCode: "DATABASE_EXECUTE_FAILED",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			translated := translateAccountWriteError(tt.dbErr, "failed to create account")

			var appErr domainerrors.AppError
			require.ErrorAs(t, translated, &appErr)
			assert.Equal(t, tt.wantCode, appErr.ErrorCode())
		})
	}
}
