package usecase

import (
	"context"

	"mealtrack/internal/domain/entity"

	"github.com/google/uuid"
)

// SignupInput defines the data required to self-register. Role, status and
// subscription fields are never caller-supplied; signup always produces a
// free active user.
type SignupInput struct {
	Name          string
	Email         string
	Password      string
	Age           int
	Weight        float64
	Height        float64
	ActivityLevel string
	Goal          string
	DailyGoal     int
}

// ProfilePatch carries the profile fields a caller may change. Nil fields
// are left untouched. Role, status and subscription state are deliberately
// absent; those change only through the privileged admin operations.
type ProfilePatch struct {
	Name          *string
	Age           *int
	Weight        *float64
	Height        *float64
	ActivityLevel *string
	Goal          *string
	DailyGoal     *int
}

// AccountUsecase defines the interface for account lifecycle operations
// available to the account holder.
type AccountUsecase interface {
	// Signup registers a new user account with default role and status.
	Signup(ctx context.Context, input SignupInput) (*entity.Account, error)

	// UpdateProfile merges the patch into the account's profile fields.
	UpdateProfile(ctx context.Context, accountID uuid.UUID, patch ProfilePatch) (*entity.Account, error)

	// DeleteAccount removes the account and everything it owns. Dependent
	// records go first so an account record never outlives its dependents.
	DeleteAccount(ctx context.Context, accountID uuid.UUID) error
}
