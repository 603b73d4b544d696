package impl

import (
	"context"
	"log/slog"

	deliverycontext "mealtrack/internal/delivery/context"
	"mealtrack/internal/domain/entity"
	domainerrors "mealtrack/internal/domain/errors"
	"mealtrack/internal/domain/repository"
	"mealtrack/internal/domain/service"
	"mealtrack/internal/errors"
	"mealtrack/internal/usecase"

	"go.uber.org/fx"
)

// bootstrapService implements the BootstrapUsecase interface.
type bootstrapService struct {
	backend repository.Backend
	hasher  service.PasswordHasher
	logger  *slog.Logger
}

// BootstrapServiceParams holds dependencies for bootstrapService, injected by Fx.
type BootstrapServiceParams struct {
	fx.In

	Backend repository.Backend
	Hasher  service.PasswordHasher
	Logger  *slog.Logger
}

// NewBootstrapService is the constructor for bootstrapService.
func NewBootstrapService(params BootstrapServiceParams) usecase.BootstrapUsecase {
	return &bootstrapService{
		backend: params.Backend,
		hasher:  params.Hasher,
		logger:  params.Logger,
	}
}

func (srv *bootstrapService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateSuperadmin creates the singleton superadmin account. The existence
// re-check, the insert, and the two settings writes form one atomic unit;
// concurrent callers race inside the storage layer and exactly one wins.
func (srv *bootstrapService) CreateSuperadmin(ctx context.Context, input usecase.SuperadminInput) (*entity.Account, error) {
	email := entity.NormalizeEmail(input.Email)
	srv.log(ctx).Info("Attempting superadmin bootstrap", slog.String("email", email))

	if err := srv.hasher.ValidatePasswordStrength(input.Password); err != nil {
		return nil, errors.Wrap(domainerrors.ErrPasswordStrength, err.Error())
	}

	// Hash outside the critical section (bcrypt is CPU-bound).
	hash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash superadmin password")
	}

	account := &entity.Account{
		Email:        email,
		Name:         input.Name,
		Role:         entity.RoleSuperadmin,
		Status:       entity.StatusActive,
		Subscription: entity.SubscriptionPremium,
		Payment:      entity.PaymentPaid,
	}

	err = srv.backend.Atomically(ctx, func(tx repository.Backend) error {
		exists, checkErr := superadminExists(ctx, tx)
		if checkErr != nil {
			return errors.Wrap(checkErr, "failed to check superadmin existence")
		}
		if exists {
			return errors.Wrap(domainerrors.ErrSuperadminExists, "superadmin bootstrap rejected")
		}

		if createErr := tx.Accounts().Create(ctx, account); createErr != nil {
			return errors.Wrap(createErr, "failed to create superadmin account")
		}
		if credErr := tx.Credentials().SetPasswordHash(ctx, account.ID, hash); credErr != nil {
			return errors.Wrap(credErr, "failed to store superadmin credential")
		}

		if writeErr := tx.Settings().Write(ctx, entity.SettingSuperadminExists, entity.FormatBool(true)); writeErr != nil {
			return errors.Wrap(writeErr, "failed to record superadmin existence")
		}
		// Demo accounts are retired permanently the moment a real
		// superadmin exists.
		if writeErr := tx.Settings().Write(ctx, entity.SettingDemoAccountsEnabled, entity.FormatBool(false)); writeErr != nil {
			return errors.Wrap(writeErr, "failed to disable demo accounts")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Superadmin bootstrap failed",
			slog.String("email", email), slog.Any("error", err))

		return nil, err
	}

	srv.log(ctx).Info("Superadmin bootstrap completed", slog.Any("accountID", account.ID))

	return account.Sanitized(), nil
}

// CheckSuperadminExists reports whether the singleton exists, preferring
// the settings flag and falling back to a role-scoped query when the flag
// has never been written.
func (srv *bootstrapService) CheckSuperadminExists(ctx context.Context) (bool, error) {
	exists, err := superadminExists(ctx, srv.backend)
	if err != nil {
		return false, errors.Wrap(err, "failed to check superadmin existence")
	}

	return exists, nil
}

// superadminExists consults both the settings flag and the role-scoped
// existence query. Either one being positive counts: the two are kept in
// lockstep by CreateSuperadmin, but a store restored from partial state
// must still refuse a second superadmin.
func superadminExists(ctx context.Context, backend repository.Backend) (bool, error) {
	value, err := backend.Settings().Read(ctx, entity.SettingSuperadminExists)
	if err != nil && !errors.Is(err, repository.ErrSettingNotFound) {
		return false, err
	}
	if value == "true" {
		return true, nil
	}

	admins, err := backend.Accounts().ListByRole(ctx, entity.RoleSuperadmin)
	if err != nil {
		return false, err
	}

	return len(admins) > 0, nil
}
