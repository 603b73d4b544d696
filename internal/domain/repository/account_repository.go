// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers
// and the infrastructure layer: the durable Postgres store and the
// ephemeral in-memory fallback implement the exact same shape, so every
// upstream component is backend-agnostic.
package repository

import (
	"context"
	"errors"

	"mealtrack/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrAccountNotFound is a domain-specific error returned when an account is not found.
var ErrAccountNotFound = errors.New("account not found")

// ErrSettingNotFound is returned when a settings key has never been written.
var ErrSettingNotFound = errors.New("setting not found")

// AccountRepository defines the standard operations for account persistence.
type AccountRepository interface {
	// FindByID retrieves a single account by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error)

	// FindByEmail retrieves a single account by normalized email.
	FindByEmail(ctx context.Context, email string) (*entity.Account, error)

	// Create persists a new account.
	Create(ctx context.Context, account *entity.Account) error

	// Update modifies an existing account.
	Update(ctx context.Context, account *entity.Account) error

	// Delete removes the account record. Dependent data must already be
	// gone; the lifecycle manager owns the cascade ordering.
	Delete(ctx context.Context, id uuid.UUID) error

	// ListByRole returns every account holding the given role.
	ListByRole(ctx context.Context, role entity.Role) ([]*entity.Account, error)

	// List returns all accounts.
	List(ctx context.Context) ([]*entity.Account, error)
}

// CredentialRepository stores the secret material separately from the
// account record, mirroring the split between a profile row and an
// external authentication record.
type CredentialRepository interface {
	// SetPasswordHash stores the bcrypt hash for an account.
	SetPasswordHash(ctx context.Context, accountID uuid.UUID, hash string) error

	// PasswordHash retrieves the stored hash, or ErrAccountNotFound.
	PasswordHash(ctx context.Context, accountID uuid.UUID) (string, error)

	// DeletePasswordHash removes the credential record.
	DeletePasswordHash(ctx context.Context, accountID uuid.UUID) error
}

// SettingsRepository manages the SystemSettings singleton.
type SettingsRepository interface {
	// ReadAll returns the whole settings map.
	ReadAll(ctx context.Context) (entity.SystemSettings, error)

	// Read returns one value, or ErrSettingNotFound.
	Read(ctx context.Context, key string) (string, error)

	// Write upserts one key.
	Write(ctx context.Context, key, value string) error
}

// SubscriptionEventRepository is the append-only audit trail.
type SubscriptionEventRepository interface {
	// Append records one transition. Events are never mutated or deleted,
	// except as part of cascading account deletion.
	Append(ctx context.Context, event *entity.SubscriptionEvent) error

	// ListByUser returns the events for one account, oldest first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.SubscriptionEvent, error)

	// ListRecent returns the most recent events across all accounts.
	ListRecent(ctx context.Context, limit int) ([]*entity.SubscriptionEvent, error)

	// DeleteByUser removes an account's events during cascading deletion.
	DeleteByUser(ctx context.Context, userID uuid.UUID) error
}

// Backend is the uniform persistence adapter selected once per process
// lifetime by the connectivity prober. Both implementations expose the
// identical shape.
type Backend interface {
	// Name identifies the backend in logs ("postgres" or "memory").
	Name() string

	// Ping is the lightweight heartbeat used by the connectivity prober.
	Ping(ctx context.Context) error

	Accounts() AccountRepository
	Credentials() CredentialRepository
	Settings() SettingsRepository
	Events() SubscriptionEventRepository

	// Atomically runs fn as a single logical unit against a backend bound
	// to the unit: a SQL transaction on the durable store, a store-wide
	// critical section on the in-memory store. The bootstrap guard's
	// check-then-write path and the lifecycle manager's multi-step
	// mutations must go through it.
	Atomically(ctx context.Context, fn func(tx Backend) error) error
}
