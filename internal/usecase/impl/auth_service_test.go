package impl

import (
	"context"
	"testing"

	"mealtrack/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthService_LoginSuccess(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	account := env.seedAccount(t, "alice@example.com", "secret123", entity.RoleUser)

	out, err := env.auth.Login(ctx, usecaseLogin("ALICE@example.com", "secret123"))
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.NotEmpty(t, out.AccessToken)
	assert.Equal(t, account.ID, out.Account.ID)
	assert.False(t, out.Account.LastLogin.IsZero())

	// The session is installed.
	require.True(t, env.sessions.IsAuthenticated())
	assert.Equal(t, account.ID, env.sessions.Current().ID)

	// The token round-trips through the token service.
	claims, err := env.tokens.ValidateToken(out.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, account.ID, claims.UserID)
	assert.Equal(t, entity.RoleUser.String(), claims.Role)
}

func TestAuthService_LoginWrongPassword(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedAccount(t, "alice@example.com", "secret123", entity.RoleUser)

	_, err := env.auth.Login(ctx, usecaseLogin("alice@example.com", "wrong"))
	requireErrorCode(t, err, "INVALID_CREDENTIALS")
	assert.False(t, env.sessions.IsAuthenticated())
}

func TestAuthService_LoginUnknownEmail(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.auth.Login(context.Background(), usecaseLogin("nobody@example.com", "whatever"))
	requireErrorCode(t, err, "INVALID_CREDENTIALS")
}

func TestAuthService_LoginGating(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*entity.Account)
		wantCode string
	}{
		{
			name:     "inactive account",
			mutate:   func(a *entity.Account) { a.Status = entity.StatusInactive },
			wantCode: "ACCOUNT_INACTIVE",
		},
		{
			name: "suspended account",
			mutate: func(a *entity.Account) {
				a.Subscription = entity.SubscriptionSuspended
			},
			wantCode: "ACCOUNT_SUSPENDED",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			ctx := context.Background()
			account := env.seedAccount(t, "gated@example.com", "secret123", entity.RoleUser)
			tt.mutate(account)
			require.NoError(t, env.backend.Accounts().Update(ctx, account))

			// Correct credentials still fail when the account is gated.
			_, err := env.auth.Login(ctx, usecaseLogin("gated@example.com", "secret123"))
			requireErrorCode(t, err, tt.wantCode)
			assert.False(t, env.sessions.IsAuthenticated())
		})
	}
}

func TestAuthService_DemoLoginOnMemoryBackend(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	out, err := env.auth.Login(ctx, usecaseLogin("demo@mealtracker.com", "demo123"))
	require.NoError(t, err)
	assert.True(t, out.Account.IsDemo)
	assert.Equal(t, entity.RoleUser, out.Account.Role)

	// Every fixture role authenticates.
	for email, role := range map[string]entity.Role{
		"superadmin@mealtracker.com": entity.RoleSuperadmin,
		"admin@mealtracker.com":      entity.RoleAdmin,
		"mod@mealtracker.com":        entity.RoleModerator,
	} {
		out, err := env.auth.Login(ctx, usecaseLogin(email, demoPassword(role)))
		require.NoError(t, err, email)
		assert.Equal(t, role, out.Account.Role)
	}
}

func TestAuthService_DemoPasswordCaseSensitive(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.auth.Login(context.Background(), usecaseLogin("demo@mealtracker.com", "DEMO123"))
	requireErrorCode(t, err, "INVALID_CREDENTIALS")
}

func TestAuthService_Logout(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedAccount(t, "alice@example.com", "secret123", entity.RoleUser)

	_, err := env.auth.Login(ctx, usecaseLogin("alice@example.com", "secret123"))
	require.NoError(t, err)
	require.True(t, env.sessions.IsAuthenticated())

	env.auth.Logout(ctx)
	assert.False(t, env.sessions.IsAuthenticated())
	assert.Nil(t, env.sessions.Current())
}

func TestAuthService_ResumeUnknownAccount(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.auth.Resume(context.Background(), uuid.New())
	requireErrorCode(t, err, "NO_ACTIVE_SESSION")
}

func TestAuthService_ResumeRefreshesAndGates(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	account := env.seedAccount(t, "alice@example.com", "secret123", entity.RoleUser)

	_, err := env.auth.Login(ctx, usecaseLogin("alice@example.com", "secret123"))
	require.NoError(t, err)

	resumed, err := env.auth.Resume(ctx, account.ID)
	require.NoError(t, err)
	assert.Equal(t, account.ID, resumed.ID)

	// Suspend behind the session's back, then resume again.
	stored, err := env.backend.Accounts().FindByID(ctx, account.ID)
	require.NoError(t, err)
	stored.Subscription = entity.SubscriptionSuspended
	stored.Status = entity.StatusInactive
	require.NoError(t, env.backend.Accounts().Update(ctx, stored))

	_, err = env.auth.Resume(ctx, account.ID)
	requireErrorCode(t, err, "ACCOUNT_INACTIVE")
	assert.False(t, env.sessions.IsAuthenticated())
}

func TestAuthService_ResumeIsCallerScoped(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.seedAccount(t, "alice@example.com", "secret123", entity.RoleUser)
	bob := env.seedAccount(t, "bob@example.com", "secret123", entity.RoleUser)

	// Bob logs in last and owns the process session.
	_, err := env.auth.Login(ctx, usecaseLogin("alice@example.com", "secret123"))
	require.NoError(t, err)
	_, err = env.auth.Login(ctx, usecaseLogin("bob@example.com", "secret123"))
	require.NoError(t, err)

	// Alice's token still resolves Alice, not whoever logged in last.
	resumed, err := env.auth.Resume(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, alice.ID, resumed.ID)
	assert.Equal(t, "alice@example.com", resumed.Email)

	// Gating Alice must not tear down Bob's session.
	stored, err := env.backend.Accounts().FindByID(ctx, alice.ID)
	require.NoError(t, err)
	stored.Status = entity.StatusInactive
	require.NoError(t, env.backend.Accounts().Update(ctx, stored))

	_, err = env.auth.Resume(ctx, alice.ID)
	requireErrorCode(t, err, "ACCOUNT_INACTIVE")
	require.True(t, env.sessions.IsAuthenticated())
	assert.Equal(t, bob.ID, env.sessions.Current().ID)
}

func TestAuthService_ResumeAfterDeletion(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	account := env.seedAccount(t, "alice@example.com", "secret123", entity.RoleUser)

	_, err := env.auth.Login(ctx, usecaseLogin("alice@example.com", "secret123"))
	require.NoError(t, err)

	require.NoError(t, env.backend.Accounts().Delete(ctx, account.ID))

	_, err = env.auth.Resume(ctx, account.ID)
	requireErrorCode(t, err, "NO_ACTIVE_SESSION")
	assert.False(t, env.sessions.IsAuthenticated())
}
