package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "user@example.com", NormalizeEmail("  User@Example.COM "))
	assert.Equal(t, "", NormalizeEmail("   "))
}

func TestAccountGate(t *testing.T) {
	tests := []struct {
		name    string
		account Account
		want    string
	}{
		{
			name:    "active free account passes",
			account: Account{Status: StatusActive, Subscription: SubscriptionFree},
			want:    "",
		},
		{
			name:    "inactive account blocked",
			account: Account{Status: StatusInactive, Subscription: SubscriptionFree},
			want:    GateReasonInactive,
		},
		{
			name:    "suspended account blocked",
			account: Account{Status: StatusActive, Subscription: SubscriptionSuspended},
			want:    GateReasonSuspended,
		},
		{
			name: "inactive takes precedence over suspended",
			account: Account{
				Status: StatusInactive, Subscription: SubscriptionSuspended,
			},
			want: GateReasonInactive,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.account.Gate())
		})
	}
}

func TestSanitizedReturnsCopy(t *testing.T) {
	account := &Account{Name: "original", Role: RoleUser}

	cloned := account.Sanitized()
	require.NotNil(t, cloned)
	cloned.Name = "changed"
	cloned.Role = RoleAdmin

	assert.Equal(t, "original", account.Name)
	assert.Equal(t, RoleUser, account.Role)

	var nilAccount *Account
	assert.Nil(t, nilAccount.Sanitized())
}
