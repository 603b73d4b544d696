// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"time"

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

// authService implements the AuthUsecase interface.
type authService struct {
	backend      repository.Backend
	sessions     *session.Store
	hasher       service.PasswordHasher
	tokenService service.TokenService
	logger       *slog.Logger
}

// AuthServiceParams holds dependencies for authService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	Backend      repository.Backend
	Sessions     *session.Store
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Logger       *slog.Logger
}

// NewAuthService is the constructor for authService. It receives all dependencies as interfaces.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	return &authService{
		backend:      params.Backend,
		sessions:     params.Sessions,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Login resolves the credentials demo-first, then against the selected
// backend. Both paths apply account-state gating before the session is
// installed.
func (srv *authService) Login(ctx context.Context, input usecase.LoginInput) (*usecase.LoginOutput, error) {
	email := entity.NormalizeEmail(input.Email)
	srv.log(ctx).Debug("Starting login", slog.String("email", email))

	if demo, ok := entity.FindDemoAccount(email, input.Password); ok && srv.demoAccountsUsable(ctx) {
		return srv.completeLogin(ctx, demo)
	}

	account, err := srv.backend.Accounts().FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			srv.log(ctx).Warn("Login failed", slog.String("email", email),
				slog.Any("error", domainerrors.ErrInvalidCredentials))

			return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
		}

		return nil, errors.Wrap(err, "failed to look up account for login")
	}

	hash, err := srv.backend.Credentials().PasswordHash(ctx, account.ID)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
		}

		return nil, errors.Wrap(err, "failed to load credential for login")
	}

	// bcrypt is CPU-bound; checked outside any storage critical section.
	if !srv.hasher.Check(input.Password, hash) {
		srv.log(ctx).Warn("Login failed", slog.String("email", email),
			slog.Any("error", domainerrors.ErrInvalidCredentials))

		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
	}

	return srv.completeLogin(ctx, account)
}

// completeLogin applies gating, persists last_login best-effort, issues a
// token and installs the session.
func (srv *authService) completeLogin(ctx context.Context, account *entity.Account) (*usecase.LoginOutput, error) {
	if reason := account.Gate(); reason != "" {
		srv.log(ctx).Warn("Login blocked by account state",
			slog.Any("accountID", account.ID), slog.String("reason", reason))

		return nil, errors.Wrap(domainerrors.AccountStateError(reason), "login blocked")
	}

	account.LastLogin = time.Now().UTC()
	if !account.IsDemo {
		// Best effort: a failed timestamp write never fails the login.
		if err := srv.backend.Accounts().Update(ctx, account); err != nil {
			srv.log(ctx).Warn("Failed to persist last login timestamp",
				slog.Any("accountID", account.ID), slog.Any("error", err))
		}
	}

	accessToken, err := srv.tokenService.GenerateToken(account.ID, account.Role.String())
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate access token")
	}

	srv.sessions.LoginSucceeded(account)
	srv.log(ctx).Info("Login succeeded",
		slog.Any("accountID", account.ID), slog.String("role", account.Role.String()))

	return &usecase.LoginOutput{
		AccessToken: accessToken,
		Account:     account.Sanitized(),
	}, nil
}

// demoAccountsUsable reports whether the demo fixtures may authenticate:
// always when the process degraded to the in-memory store, otherwise only
// while the demo_accounts_enabled setting still allows them.
func (srv *authService) demoAccountsUsable(ctx context.Context) bool {
	if srv.backend.Name() == "memory" {
		return true
	}

	value, err := srv.backend.Settings().Read(ctx, entity.SettingDemoAccountsEnabled)
	if err != nil {
		if !errors.Is(err, repository.ErrSettingNotFound) {
			srv.log(ctx).Warn("Failed to read demo accounts setting", slog.Any("error", err))
		}

		return false
	}

	return value == "true"
}

// Logout clears the session. Always succeeds.
func (srv *authService) Logout(ctx context.Context) {
	srv.log(ctx).Info("Logging out")
	srv.sessions.LoggedOut()
}

// Resume reloads the identity named by the caller's token and re-applies
// gating exactly as at login. The process session is only touched when it
// belongs to that same identity: another bearer's session is never read
// or invalidated here.
func (srv *authService) Resume(ctx context.Context, accountID uuid.UUID) (*entity.Account, error) {
	if demo, ok := entity.FindDemoAccountByID(accountID); ok {
		return demo, nil
	}

	account, err := srv.backend.Accounts().FindByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			srv.sessions.InvalidateIf(accountID, "deleted")

			return nil, errors.Wrap(domainerrors.ErrNoActiveSession, "account no longer exists")
		}

		return nil, errors.Wrap(err, "failed to reload account")
	}

	if reason := account.Gate(); reason != "" {
		srv.sessions.InvalidateIf(accountID, reason)
		srv.log(ctx).Warn("Session resume blocked by account state",
			slog.Any("accountID", account.ID), slog.String("reason", reason))

		return nil, errors.Wrap(domainerrors.AccountStateError(reason), "resume blocked")
	}

	if current := srv.sessions.Current(); current != nil && current.ID == accountID {
		srv.sessions.ProfileUpdated(account)
	}

	return account.Sanitized(), nil
}
