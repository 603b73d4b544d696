package usecase

import (
	"context"

	"mealtrack/internal/domain/entity"

	"github.com/google/uuid"
)

// AccountStats aggregates the account population for the admin dashboard.
type AccountStats struct {
	Total          int
	ByRole         map[entity.Role]int
	Active         int
	Inactive       int
	BySubscription map[entity.SubscriptionStatus]int
}

// AdminUsecase defines the privileged account administration operations.
// Every method checks the actor's role or capability before any side
// effect; an unauthorized attempt leaves the target untouched.
type AdminUsecase interface {
	// SuspendUser moves the target to the suspended state, records one
	// audit event, and terminates any active session the target holds.
	SuspendUser(ctx context.Context, actorID, targetID uuid.UUID, reason string) error

	// ReactivateUser returns a suspended target to the free tier and
	// records one audit event.
	ReactivateUser(ctx context.Context, actorID, targetID uuid.UUID) error

	// UpdateRole changes the target's role. The superadmin role can never
	// be granted through this path; the bootstrap guard owns it.
	UpdateRole(ctx context.Context, actorID, targetID uuid.UUID, role entity.Role) (*entity.Account, error)

	// DeleteUser removes the target account and everything it owns. The
	// superadmin account can never be deleted through this path.
	DeleteUser(ctx context.Context, actorID, targetID uuid.UUID) error

	// ListAccounts returns all accounts for administration.
	ListAccounts(ctx context.Context, actorID uuid.UUID) ([]*entity.Account, error)

	// Stats aggregates account counts by role, status and subscription.
	Stats(ctx context.Context, actorID uuid.UUID) (*AccountStats, error)

	// SubscriptionHistory returns the target's audit trail, oldest first.
	SubscriptionHistory(ctx context.Context, actorID, targetID uuid.UUID) ([]*entity.SubscriptionEvent, error)

	// RecentSubscriptionEvents returns the newest audit events system-wide.
	RecentSubscriptionEvents(ctx context.Context, actorID uuid.UUID, limit int) ([]*entity.SubscriptionEvent, error)
}
