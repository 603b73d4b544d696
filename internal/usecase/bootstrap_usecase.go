package usecase

import (
	"context"

	"mealtrack/internal/domain/entity"
)

// SuperadminInput defines the data required to create the bootstrap
// superadmin account.
type SuperadminInput struct {
	Name     string
	Email    string
	Password string
}

// BootstrapUsecase guards the "exactly one superadmin" invariant.
type BootstrapUsecase interface {
	// CreateSuperadmin creates the singleton superadmin. The existence
	// check and the settings writes are one atomic unit; losers of a
	// concurrent race receive a conflict error and no side effects occur.
	CreateSuperadmin(ctx context.Context, input SuperadminInput) (*entity.Account, error)

	// CheckSuperadminExists reports whether the singleton already exists.
	CheckSuperadminExists(ctx context.Context) (bool, error)
}
