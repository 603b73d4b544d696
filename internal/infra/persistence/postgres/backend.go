// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"
	"fmt"

	"mealtrack/internal/domain/repository"
	"mealtrack/internal/infra/persistence/model"

	"gorm.io/gorm"
)

// backend implements the domain's Backend interface on top of a GORM
// connection. The same type also wraps a transaction handle, since in
// GORM a *gorm.Tx is itself a *gorm.DB.
type backend struct {
	db *gorm.DB
}

// NewBackend wraps a GORM connection as a durable repository.Backend.
// This function will be used as an Fx provider.
func NewBackend(db *gorm.DB) repository.Backend {
	return &backend{db: db}
}

// Name identifies the backend in logs and the health endpoint.
func (b *backend) Name() string {
	return "postgres"
}

// Ping is the heartbeat the connectivity prober relies on.
func (b *backend) Ping(ctx context.Context) error {
	sqlDB, err := b.db.DB()
	if err != nil {
		return fmt.Errorf("failed to access underlying connection: %w", err)
	}

	return sqlDB.PingContext(ctx)
}

// NewAccountRepository creates an account repository bound to this connection.
func (b *backend) Accounts() repository.AccountRepository {
	return newAccountRepository(b.db)
}

func (b *backend) Credentials() repository.CredentialRepository {
	return newCredentialRepository(b.db)
}

func (b *backend) Settings() repository.SettingsRepository {
	return newSettingsRepository(b.db)
}

func (b *backend) Events() repository.SubscriptionEventRepository {
	return newEventRepository(b.db)
}

// Atomically runs the given function within a single database transaction.
func (b *backend) Atomically(ctx context.Context, fn func(tx repository.Backend) error) error {
	// Begin a new transaction
	tx := b.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}

	// This defer block ensures that if a panic occurs within the callback function,
	// the transaction is always rolled back. This is a critical safety measure.
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			// Re-panic to allow Fx or other middleware to handle the panic.
			panic(r)
		}
	}()

	// Hand the callback a backend bound to this specific transaction.
	if err := fn(&backend{db: tx}); err != nil {
		// If the business logic returns an error, roll back the transaction.
		if rbErr := tx.Rollback().Error; rbErr != nil {
			// Log the rollback error, but return the original, more meaningful business error.
			return fmt.Errorf("transaction rollback failed: %v (original error: %w)", rbErr, err)
		}

		return err // Return the original business error.
	}

	// If the business logic completes without error, commit the transaction.
	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// allModels lists every persistence struct covered by auto-migration.
func allModels() []any {
	return []any{
		&model.AccountModel{},
		&model.CredentialModel{},
		&model.SystemSettingModel{},
		&model.SubscriptionEventModel{},
	}
}
