package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"mealtrack/config"
	"mealtrack/internal/domain/entity"
	domainerrors "mealtrack/internal/domain/errors"
	"mealtrack/internal/domain/repository"
	"mealtrack/internal/domain/service"
	"mealtrack/internal/infra/auth"
	"mealtrack/internal/infra/persistence/memory"
	"mealtrack/internal/session"
	"mealtrack/internal/usecase"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// testEnv wires every service against a fresh in-memory backend.
type testEnv struct {
	backend   repository.Backend
	sessions  *session.Store
	hasher    service.PasswordHasher
	tokens    service.TokenService
	auth      usecase.AuthUsecase
	accounts  usecase.AccountUsecase
	bootstrap usecase.BootstrapUsecase
	admin     usecase.AdminUsecase
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig() *config.Config {
	cfg := &config.Config{
		Auth: &config.AuthConfig{BcryptCost: bcrypt.MinCost},
		PasswordStrength: &config.PasswordStrengthConfig{
			MinLength: 6,
		},
	}
	cfg.SecretKey.Access = "test-access-secret"

	return cfg
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cfg := newTestConfig()
	logger := discardLogger()
	backend := memory.NewBackend()
	sessions := session.NewStore(logger)
	hasher := auth.NewBcryptHasher(cfg)
	tokens, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	return &testEnv{
		backend:  backend,
		sessions: sessions,
		hasher:   hasher,
		tokens:   tokens,
		auth: NewAuthService(AuthServiceParams{
			Backend:      backend,
			Sessions:     sessions,
			Hasher:       hasher,
			TokenService: tokens,
			Logger:       logger,
		}),
		accounts: NewAccountService(AccountServiceParams{
			Backend:  backend,
			Sessions: sessions,
			Hasher:   hasher,
			Config:   cfg,
			Logger:   logger,
		}),
		bootstrap: NewBootstrapService(BootstrapServiceParams{
			Backend: backend,
			Hasher:  hasher,
			Logger:  logger,
		}),
		admin: NewAdminService(AdminServiceParams{
			Backend:  backend,
			Sessions: sessions,
			Logger:   logger,
		}),
	}
}

// seedAccount inserts an account with a working credential directly
// through the backend, bypassing signup policy.
func (env *testEnv) seedAccount(t *testing.T, email, password string, role entity.Role) *entity.Account {
	t.Helper()
	ctx := context.Background()

	account := &entity.Account{
		Email:        email,
		Name:         "Seeded " + role.String(),
		Role:         role,
		Status:       entity.StatusActive,
		Subscription: entity.SubscriptionFree,
		Payment:      entity.PaymentNone,
		DailyGoal:    2000,
	}
	require.NoError(t, env.backend.Accounts().Create(ctx, account))

	hash, err := env.hasher.Hash(password)
	require.NoError(t, err)
	require.NoError(t, env.backend.Credentials().SetPasswordHash(ctx, account.ID, hash))

	return account
}

func usecaseLogin(email, password string) usecase.LoginInput {
	return usecase.LoginInput{Email: email, Password: password}
}

// demoPassword returns the fixture secret for a role.
func demoPassword(role entity.Role) string {
	for _, demo := range entity.DemoAccounts() {
		if demo.Account.Role == role {
			return demo.Password
		}
	}

	return ""
}

// requireErrorCode asserts the error chain carries the given business code.
func requireErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr, "expected an application error, got %v", err)
	require.Equal(t, code, appErr.ErrorCode())
}
