// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"github.com/google/uuid"

	"mealtrack/internal/domain/entity"
)

// --- Input DTOs ---

// LoginInput defines the data required to authenticate.
type LoginInput struct {
	Email    string
	Password string
}

// --- Output DTOs ---

// LoginOutput returns the authenticated identity and its access token.
type LoginOutput struct {
	AccessToken string
	Account     *entity.Account
}

// AuthUsecase defines the interface for authentication operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type AuthUsecase interface {
	// Login resolves credentials demo-first, then against the selected
	// backend, applies account-state gating, and installs the session.
	Login(ctx context.Context, input LoginInput) (*LoginOutput, error)

	// Logout clears the current session.
	Logout(ctx context.Context)

	// Resume reloads the calling identity from the backend and applies
	// account-state gating again. The caller's ID comes from its access
	// token, never from the process session, so concurrent bearers only
	// ever see their own account. A gated identity loses the process
	// session when it is the one holding it.
	Resume(ctx context.Context, accountID uuid.UUID) (*entity.Account, error)
}
