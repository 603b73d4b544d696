package impl

import (
	"context"
	"testing"

	"mealtrack/config"
	"mealtrack/internal/domain/entity"
	"mealtrack/internal/domain/repository"
	"mealtrack/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signupInput(email string) usecase.SignupInput {
	return usecase.SignupInput{
		Name:     "New User",
		Email:    email,
		Password: "secret123",
		Age:      30,
		Weight:   72.5,
		Height:   178,
	}
}

func TestAccountService_Signup(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	account, err := env.accounts.Signup(ctx, signupInput("New.User@Example.com"))
	require.NoError(t, err)

	assert.Equal(t, "new.user@example.com", account.Email)
	assert.Equal(t, entity.RoleUser, account.Role)
	assert.Equal(t, entity.StatusActive, account.Status)
	assert.Equal(t, entity.SubscriptionFree, account.Subscription)
	assert.Equal(t, entity.PaymentNone, account.Payment)

	// Omitted profile attributes fall back to defaults.
	assert.Equal(t, "moderate", account.ActivityLevel)
	assert.Equal(t, "maintain", account.Goal)
	assert.Equal(t, 2000, account.DailyGoal)

	// The credential was stored and works.
	out, err := env.auth.Login(ctx, usecaseLogin("new.user@example.com", "secret123"))
	require.NoError(t, err)
	assert.Equal(t, account.ID, out.Account.ID)
}

func TestAccountService_SignupDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	first, err := env.accounts.Signup(ctx, signupInput("taken@example.com"))
	require.NoError(t, err)

	_, err = env.accounts.Signup(ctx, signupInput("TAKEN@example.com"))
	requireErrorCode(t, err, "EMAIL_TAKEN")

	// The first account is unaffected.
	stored, err := env.backend.Accounts().FindByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, first.Email, stored.Email)
}

func TestAccountService_SignupDemoEmailReserved(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.accounts.Signup(context.Background(), signupInput("demo@mealtracker.com"))
	requireErrorCode(t, err, "EMAIL_TAKEN")
}

func TestAccountService_SignupWeakPassword(t *testing.T) {
	env := newTestEnv(t)

	input := signupInput("weak@example.com")
	input.Password = "abc"
	_, err := env.accounts.Signup(context.Background(), input)
	requireErrorCode(t, err, "PASSWORD_STRENGTH")
}

func TestAccountService_SignupBlockedBeforeBootstrap(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	// Rebuild the account service with a locked-down bootstrap policy.
	cfg := newTestConfig()
	cfg.Bootstrap = &config.BootstrapConfig{AllowSignupBeforeSetup: false}
	locked := NewAccountService(AccountServiceParams{
		Backend:  env.backend,
		Sessions: env.sessions,
		Hasher:   env.hasher,
		Config:   cfg,
		Logger:   discardLogger(),
	})

	_, err := locked.Signup(ctx, signupInput("early@example.com"))
	requireErrorCode(t, err, "SIGNUP_DISABLED")

	// Once the superadmin exists, signup opens up.
	_, err = env.bootstrap.CreateSuperadmin(ctx, superadminInput("root@example.com"))
	require.NoError(t, err)

	_, err = locked.Signup(ctx, signupInput("later@example.com"))
	require.NoError(t, err)
}

func TestAccountService_UpdateProfile(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	account := env.seedAccount(t, "alice@example.com", "secret123", entity.RoleUser)

	name := "Alice Renamed"
	weight := 68.0
	goal := "lose"
	updated, err := env.accounts.UpdateProfile(ctx, account.ID, usecase.ProfilePatch{
		Name:   &name,
		Weight: &weight,
		Goal:   &goal,
	})
	require.NoError(t, err)
	assert.Equal(t, "Alice Renamed", updated.Name)
	assert.Equal(t, 68.0, updated.Weight)
	assert.Equal(t, "lose", updated.Goal)

	// Untouched fields survive the merge.
	assert.Equal(t, account.DailyGoal, updated.DailyGoal)
	assert.Equal(t, entity.RoleUser, updated.Role)
	assert.Equal(t, entity.StatusActive, updated.Status)
}

func TestAccountService_UpdateProfileRefreshesSession(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	account := env.seedAccount(t, "alice@example.com", "secret123", entity.RoleUser)

	_, err := env.auth.Login(ctx, usecaseLogin("alice@example.com", "secret123"))
	require.NoError(t, err)

	name := "Session Copy"
	_, err = env.accounts.UpdateProfile(ctx, account.ID, usecase.ProfilePatch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Session Copy", env.sessions.Current().Name)
}

func TestAccountService_UpdateProfileLeavesOtherSessionAlone(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.seedAccount(t, "alice@example.com", "secret123", entity.RoleUser)
	bob := env.seedAccount(t, "bob@example.com", "secret123", entity.RoleUser)

	_, err := env.auth.Login(ctx, usecaseLogin("alice@example.com", "secret123"))
	require.NoError(t, err)

	// Bob's write must not replace Alice's session copy.
	name := "Bob Renamed"
	_, err = env.accounts.UpdateProfile(ctx, bob.ID, usecase.ProfilePatch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, alice.ID, env.sessions.Current().ID)
}

func TestAccountService_UpdateProfileMissingAccount(t *testing.T) {
	env := newTestEnv(t)

	name := "Ghost"
	_, err := env.accounts.UpdateProfile(context.Background(), uuid.New(), usecase.ProfilePatch{Name: &name})
	requireErrorCode(t, err, "ACCOUNT_NOT_FOUND")
}

func TestAccountService_UpdateProfileDemoImmutable(t *testing.T) {
	env := newTestEnv(t)

	demoID := entity.DemoAccounts()[0].Account.ID
	name := "Hacked"
	_, err := env.accounts.UpdateProfile(context.Background(), demoID, usecase.ProfilePatch{Name: &name})
	requireErrorCode(t, err, "DEMO_ACCOUNT_IMMUTABLE")
}

func TestAccountService_DeleteAccountCascades(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	account := env.seedAccount(t, "alice@example.com", "secret123", entity.RoleUser)

	// Give the account an audit trail to cascade.
	root, err := env.bootstrap.CreateSuperadmin(ctx, superadminInput("root@example.com"))
	require.NoError(t, err)
	require.NoError(t, env.admin.SuspendUser(ctx, root.ID, account.ID, "test"))
	require.NoError(t, env.admin.ReactivateUser(ctx, root.ID, account.ID))

	require.NoError(t, env.accounts.DeleteAccount(ctx, account.ID))

	_, err = env.backend.Accounts().FindByID(ctx, account.ID)
	assert.ErrorIs(t, err, repository.ErrAccountNotFound)

	_, err = env.backend.Credentials().PasswordHash(ctx, account.ID)
	assert.ErrorIs(t, err, repository.ErrAccountNotFound)

	events, err := env.backend.Events().ListByUser(ctx, account.ID)
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestAccountService_DeleteAccountTerminatesSession(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	account := env.seedAccount(t, "alice@example.com", "secret123", entity.RoleUser)

	_, err := env.auth.Login(ctx, usecaseLogin("alice@example.com", "secret123"))
	require.NoError(t, err)

	require.NoError(t, env.accounts.DeleteAccount(ctx, account.ID))
	assert.False(t, env.sessions.IsAuthenticated())
}

func TestAccountService_DeleteDemoRejected(t *testing.T) {
	env := newTestEnv(t)

	demoID := entity.DemoAccounts()[0].Account.ID
	err := env.accounts.DeleteAccount(context.Background(), demoID)
	requireErrorCode(t, err, "DEMO_ACCOUNT_IMMUTABLE")
}

func TestAccountService_DeleteMissingAccount(t *testing.T) {
	env := newTestEnv(t)

	err := env.accounts.DeleteAccount(context.Background(), uuid.New())
	requireErrorCode(t, err, "ACCOUNT_NOT_FOUND")
}
