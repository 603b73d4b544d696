// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"

	domainerrors "mealtrack/internal/domain/errors"
	"mealtrack/internal/domain/repository"
	"mealtrack/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// credentialRepository implements the domain.CredentialRepository interface using GORM.
type credentialRepository struct {
	db *gorm.DB
}

func newCredentialRepository(db *gorm.DB) repository.CredentialRepository {
	return &credentialRepository{db: db}
}

// SetPasswordHash upserts the bcrypt hash for an account.
func (repo *credentialRepository) SetPasswordHash(ctx context.Context, accountID uuid.UUID, hash string) error {
	credM := &model.CredentialModel{
		AccountID:    accountID,
		PasswordHash: hash,
	}

	err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "account_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"password_hash", "updated_at"}),
		}).
		Create(credM).Error
	if err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrAccountNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to store credential")
	}

	return nil
}

// PasswordHash retrieves the stored hash for an account.
func (repo *credentialRepository) PasswordHash(ctx context.Context, accountID uuid.UUID) (string, error) {
	var credM model.CredentialModel
	err := repo.db.WithContext(ctx).
		First(&credM, "account_id = ?", accountID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", repository.ErrAccountNotFound
		}

		return "", errors.Wrap(err, "failed to load credential")
	}

	return credM.PasswordHash, nil
}

// DeletePasswordHash removes the credential row during account deletion.
// Deleting a missing row is not an error; the cascade must be idempotent.
func (repo *credentialRepository) DeletePasswordHash(ctx context.Context, accountID uuid.UUID) error {
	err := repo.db.WithContext(ctx).
		Delete(&model.CredentialModel{}, "account_id = ?", accountID).Error
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete credential")
	}

	return nil
}
