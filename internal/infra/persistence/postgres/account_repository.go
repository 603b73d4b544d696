// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"

	"mealtrack/internal/domain/entity"
	domainerrors "mealtrack/internal/domain/errors"
	"mealtrack/internal/domain/repository"
	"mealtrack/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// accountRepository implements the domain.AccountRepository interface using GORM.
type accountRepository struct {
	db *gorm.DB
}

func newAccountRepository(db *gorm.DB) repository.AccountRepository {
	return &accountRepository{db: db}
}

// FindByID retrieves a single account by its unique ID.
func (repo *accountRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error) {
	var accountM model.AccountModel
	if err := repo.db.WithContext(ctx).First(&accountM, "id = ?", id).Error; err != nil {
		// If the error is 'record not found', return a domain-specific error.
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAccountNotFound
		}
		// Otherwise, return the original database error.
		return nil, errors.Wrap(err, "failed to find account by id")
	}

	// Map the persistence model back to a pure domain entity before returning.
	return toAccountDomain(&accountM), nil
}

// FindByEmail retrieves a single account by its normalized email address.
func (repo *accountRepository) FindByEmail(ctx context.Context, email string) (*entity.Account, error) {
	var accountM model.AccountModel
	err := repo.db.WithContext(ctx).
		First(&accountM, "email = ?", entity.NormalizeEmail(email)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAccountNotFound
		}

		return nil, errors.Wrap(err, "failed to find account by email")
	}

	return toAccountDomain(&accountM), nil
}

// Create persists a new account entity to the database.
func (repo *accountRepository) Create(ctx context.Context, account *entity.Account) error {
	// Map the pure domain entity to a GORM persistence model.
	accountM := fromAccountDomain(account)

	if err := repo.db.WithContext(ctx).Create(accountM).Error; err != nil {
		// Convert PostgreSQL errors to domain errors
		return translateAccountWriteError(err, "failed to create account")
	}

	// Update the account entity with the generated ID and timestamps
	account.ID = accountM.ID
	account.CreatedAt = accountM.CreatedAt

	return nil
}

// Update modifies an existing account record.
func (repo *accountRepository) Update(ctx context.Context, account *entity.Account) error {
	accountM := fromAccountDomain(account)

	result := repo.db.WithContext(ctx).
		Model(&model.AccountModel{}).
		Where("id = ?", account.ID).
		Select("email", "name", "role", "status", "subscription_status",
			"payment_status", "age", "weight", "height", "activity_level",
			"goal", "daily_goal", "last_login").
		Updates(accountM)
	if err := result.Error; err != nil {
		return translateAccountWriteError(err, "failed to update account")
	}
	if result.RowsAffected == 0 {
		return repository.ErrAccountNotFound
	}

	return nil
}

// Delete removes the account row. Dependent rows are removed first by the
// account lifecycle manager, so no ON DELETE cascade is relied upon here.
func (repo *accountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Delete(&model.AccountModel{}, "id = ?", id)
	if err := result.Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrConflict.WrapMessage("account still has dependent records")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to delete account")
	}
	if result.RowsAffected == 0 {
		return repository.ErrAccountNotFound
	}

	return nil
}

// ListByRole returns every account holding the given role.
func (repo *accountRepository) ListByRole(ctx context.Context, role entity.Role) ([]*entity.Account, error) {
	var models []model.AccountModel
	err := repo.db.WithContext(ctx).
		Where("role = ?", role.String()).
		Order("created_at").
		Find(&models).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list accounts by role")
	}

	return toAccountDomainList(models), nil
}

// List returns all accounts ordered by creation time.
func (repo *accountRepository) List(ctx context.Context) ([]*entity.Account, error) {
	var models []model.AccountModel
	if err := repo.db.WithContext(ctx).Order("created_at").Find(&models).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list accounts")
	}

	return toAccountDomainList(models), nil
}

// --- Mapper Functions ---
// These helpers convert between domain entities and persistence models.

// toAccountDomain converts a GORM AccountModel to a domain Account entity.
func toAccountDomain(data *model.AccountModel) *entity.Account {
	if data == nil {
		return nil
	}

	return &entity.Account{
		ID:            data.ID,
		Email:         data.Email,
		Name:          data.Name,
		Role:          entity.Role(data.Role),
		Status:        entity.AccountStatus(data.Status),
		Subscription:  entity.SubscriptionStatus(data.SubscriptionStatus),
		Payment:       entity.PaymentStatus(data.PaymentStatus),
		Age:           data.Age,
		Weight:        data.Weight,
		Height:        data.Height,
		ActivityLevel: data.ActivityLevel,
		Goal:          data.Goal,
		DailyGoal:     data.DailyGoal,
		IsDemo:        entity.IsDemoAccountID(data.ID),
		CreatedAt:     data.CreatedAt,
		LastLogin:     data.LastLogin,
	}
}

func toAccountDomainList(models []model.AccountModel) []*entity.Account {
	accounts := make([]*entity.Account, 0, len(models))
	for i := range models {
		accounts = append(accounts, toAccountDomain(&models[i]))
	}

	return accounts
}

// fromAccountDomain converts a domain Account entity to a GORM AccountModel.
func fromAccountDomain(account *entity.Account) *model.AccountModel {
	if account == nil {
		return nil
	}

	return &model.AccountModel{
		ID:                 account.ID,
		Email:              entity.NormalizeEmail(account.Email),
		Name:               account.Name,
		Role:               account.Role.String(),
		Status:             string(account.Status),
		SubscriptionStatus: string(account.Subscription),
		PaymentStatus:      string(account.Payment),
		Age:                account.Age,
		Weight:             account.Weight,
		Height:             account.Height,
		ActivityLevel:      account.ActivityLevel,
		Goal:               account.Goal,
		DailyGoal:          account.DailyGoal,
		CreatedAt:          account.CreatedAt,
		LastLogin:          account.LastLogin,
	}
}
