package entity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDemoAccountsFixture(t *testing.T) {
	demos := DemoAccounts()
	require.Len(t, demos, 4)

	byRole := map[Role]DemoAccount{}
	for _, demo := range demos {
		assert.True(t, demo.Account.IsDemo)
		assert.Equal(t, StatusActive, demo.Account.Status)
		assert.NotEqual(t, uuid.Nil, demo.Account.ID)
		byRole[demo.Account.Role] = demo
	}

	require.Len(t, byRole, 4, "one fixture per role")
	assert.Equal(t, "superadmin@mealtracker.com", byRole[RoleSuperadmin].Account.Email)
	assert.Equal(t, "admin@mealtracker.com", byRole[RoleAdmin].Account.Email)
	assert.Equal(t, "mod@mealtracker.com", byRole[RoleModerator].Account.Email)
	assert.Equal(t, "demo@mealtracker.com", byRole[RoleUser].Account.Email)
	assert.Equal(t, SubscriptionPremium, byRole[RoleSuperadmin].Account.Subscription)
	assert.Equal(t, PaymentPaid, byRole[RoleSuperadmin].Account.Payment)
}

func TestDemoAccountIDsStable(t *testing.T) {
	first := DemoAccounts()
	second := DemoAccounts()
	for i := range first {
		assert.Equal(t, first[i].Account.ID, second[i].Account.ID)
		assert.True(t, IsDemoAccountID(first[i].Account.ID))
	}

	assert.False(t, IsDemoAccountID(uuid.New()))
}

func TestFindDemoAccount(t *testing.T) {
	account, ok := FindDemoAccount("Demo@MealTracker.com", "demo123")
	require.True(t, ok)
	assert.Equal(t, RoleUser, account.Role)

	// The secret comparison is case-sensitive.
	_, ok = FindDemoAccount("demo@mealtracker.com", "Demo123")
	assert.False(t, ok)

	_, ok = FindDemoAccount("unknown@mealtracker.com", "demo123")
	assert.False(t, ok)
}

func TestDemoAccountsReturnCopies(t *testing.T) {
	demos := DemoAccounts()
	demos[0].Account.Role = RoleUser
	demos[0].Password = "tampered"

	fresh := DemoAccounts()
	assert.Equal(t, RoleSuperadmin, fresh[0].Account.Role)
	assert.Equal(t, "super123", fresh[0].Password)
}
