package impl

import (
	"context"
	"log/slog"

	"mealtrack/config"
	deliverycontext "mealtrack/internal/delivery/context"
	"mealtrack/internal/domain/entity"
	domainerrors "mealtrack/internal/domain/errors"
	"mealtrack/internal/domain/repository"
	"mealtrack/internal/domain/service"
	"mealtrack/internal/errors"
	"mealtrack/internal/session"
	"mealtrack/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

// Defaults applied when signup omits the optional profile attributes.
const (
	defaultActivityLevel = "moderate"
	defaultGoal          = "maintain"
	defaultDailyGoal     = 2000
)

// accountService implements the AccountUsecase interface.
type accountService struct {
	backend                repository.Backend
	sessions               *session.Store
	hasher                 service.PasswordHasher
	allowSignupBeforeSetup bool
	logger                 *slog.Logger
}

// AccountServiceParams holds dependencies for accountService, injected by Fx.
type AccountServiceParams struct {
	fx.In

	Backend  repository.Backend
	Sessions *session.Store
	Hasher   service.PasswordHasher
	Config   *config.Config
	Logger   *slog.Logger
}

// NewAccountService is the constructor for accountService.
func NewAccountService(params AccountServiceParams) usecase.AccountUsecase {
	return &accountService{
		backend:                params.Backend,
		sessions:               params.Sessions,
		hasher:                 params.Hasher,
		allowSignupBeforeSetup: params.Config.AllowSignupBeforeSetup(),
		logger:                 params.Logger,
	}
}

func (srv *accountService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Signup registers a new user account. Role, status and subscription state
// are fixed; nothing the caller sends can influence them.
func (srv *accountService) Signup(ctx context.Context, input usecase.SignupInput) (*entity.Account, error) {
	email := entity.NormalizeEmail(input.Email)
	srv.log(ctx).Info("Starting signup", slog.String("email", email))

	if !srv.allowSignupBeforeSetup {
		exists, err := superadminExists(ctx, srv.backend)
		if err != nil {
			return nil, errors.Wrap(err, "failed to check bootstrap state for signup")
		}
		if !exists {
			return nil, errors.Wrap(domainerrors.ErrSignupDisabled, "signup rejected before bootstrap")
		}
	}

	if demoEmail(email) {
		// Demo addresses are reserved; registering one would shadow the fixtures.
		return nil, errors.Wrap(domainerrors.ErrEmailTaken, "email reserved for demo accounts")
	}

	if err := srv.hasher.ValidatePasswordStrength(input.Password); err != nil {
		return nil, errors.Wrap(domainerrors.ErrPasswordStrength, err.Error())
	}

	hash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash password during signup")
	}

	account := &entity.Account{
		Email:         email,
		Name:          input.Name,
		Role:          entity.RoleUser,
		Status:        entity.StatusActive,
		Subscription:  entity.SubscriptionFree,
		Payment:       entity.PaymentNone,
		Age:           input.Age,
		Weight:        input.Weight,
		Height:        input.Height,
		ActivityLevel: input.ActivityLevel,
		Goal:          input.Goal,
		DailyGoal:     input.DailyGoal,
	}
	applyProfileDefaults(account)

	err = srv.backend.Atomically(ctx, func(tx repository.Backend) error {
		if createErr := tx.Accounts().Create(ctx, account); createErr != nil {
			return createErr
		}

		return tx.Credentials().SetPasswordHash(ctx, account.ID, hash)
	})
	if err != nil {
		srv.log(ctx).Warn("Signup failed", slog.String("email", email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute signup")
	}

	srv.log(ctx).Info("Signup completed", slog.Any("accountID", account.ID))

	return account.Sanitized(), nil
}

// UpdateProfile merges the patch into the account's profile fields. Role,
// status and subscription state cannot travel through this path.
func (srv *accountService) UpdateProfile(ctx context.Context, accountID uuid.UUID, patch usecase.ProfilePatch) (*entity.Account, error) {
	if entity.IsDemoAccountID(accountID) {
		return nil, errors.Wrap(domainerrors.ErrDemoAccountImmutable, "profile update rejected")
	}

	account, err := srv.backend.Accounts().FindByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, errors.Wrap(domainerrors.ErrAccountNotFound, "profile update failed")
		}

		return nil, errors.Wrap(err, "failed to load account for profile update")
	}

	applyProfilePatch(account, patch)

	if err := srv.backend.Accounts().Update(ctx, account); err != nil {
		srv.log(ctx).Error("Failed to update profile",
			slog.Any("accountID", accountID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to update profile")
	}

	// Refresh the process session copy only when it is this account's.
	if current := srv.sessions.Current(); current != nil && current.ID == accountID {
		srv.sessions.ProfileUpdated(account)
	}
	srv.log(ctx).Debug("Profile updated", slog.Any("accountID", accountID))

	return account.Sanitized(), nil
}

// DeleteAccount removes the account and everything it owns. Dependent
// records are deleted first so an account record never outlives its
// dependents, even on a backend without transactional guarantees.
func (srv *accountService) DeleteAccount(ctx context.Context, accountID uuid.UUID) error {
	if entity.IsDemoAccountID(accountID) {
		return errors.Wrap(domainerrors.ErrDemoAccountImmutable, "deletion rejected")
	}

	srv.log(ctx).Info("Deleting account", slog.Any("accountID", accountID))

	err := srv.backend.Atomically(ctx, func(tx repository.Backend) error {
		if _, findErr := tx.Accounts().FindByID(ctx, accountID); findErr != nil {
			return findErr
		}

		if delErr := tx.Events().DeleteByUser(ctx, accountID); delErr != nil {
			return errors.Wrap(delErr, "failed to delete subscription events")
		}
		if delErr := tx.Credentials().DeletePasswordHash(ctx, accountID); delErr != nil {
			return errors.Wrap(delErr, "failed to delete credential")
		}

		return tx.Accounts().Delete(ctx, accountID)
	})
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return errors.Wrap(domainerrors.ErrAccountNotFound, "deletion failed")
		}
		srv.log(ctx).Error("Failed to delete account",
			slog.Any("accountID", accountID), slog.Any("error", err))

		return errors.Wrap(err, "failed to delete account")
	}

	srv.sessions.InvalidateIf(accountID, "deleted")
	srv.log(ctx).Info("Account deleted", slog.Any("accountID", accountID))

	return nil
}

func applyProfileDefaults(account *entity.Account) {
	if account.ActivityLevel == "" {
		account.ActivityLevel = defaultActivityLevel
	}
	if account.Goal == "" {
		account.Goal = defaultGoal
	}
	if account.DailyGoal <= 0 {
		account.DailyGoal = defaultDailyGoal
	}
}

func applyProfilePatch(account *entity.Account, patch usecase.ProfilePatch) {
	if patch.Name != nil {
		account.Name = *patch.Name
	}
	if patch.Age != nil {
		account.Age = *patch.Age
	}
	if patch.Weight != nil {
		account.Weight = *patch.Weight
	}
	if patch.Height != nil {
		account.Height = *patch.Height
	}
	if patch.ActivityLevel != nil {
		account.ActivityLevel = *patch.ActivityLevel
	}
	if patch.Goal != nil {
		account.Goal = *patch.Goal
	}
	if patch.DailyGoal != nil {
		account.DailyGoal = *patch.DailyGoal
	}
}

// demoEmail reports whether the address belongs to one of the fixtures.
func demoEmail(email string) bool {
	for _, demo := range entity.DemoAccounts() {
		if demo.Account.Email == email {
			return true
		}
	}

	return false
}
