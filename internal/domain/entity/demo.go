// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// DemoAccount pairs a fixed demo identity with its plaintext secret. Demo
// accounts live only in process memory, are never persisted, and cannot be
// deleted or have their role changed. The secret comparison is
// case-sensitive string equality; no hashing is involved.
type DemoAccount struct {
	Account  Account
	Password string
}

// demoAccounts is the fixed set of demo identities, one per role. They are
// usable when the durable backend is unreachable, or when the
// demo_accounts_enabled setting still allows them.
var demoAccounts = []DemoAccount{
	{
		Password: "super123",
		Account: Account{
			Email: "superadmin@mealtracker.com", Name: "Superadmin Demo",
			Role: RoleSuperadmin, Status: StatusActive,
			Subscription: SubscriptionPremium, Payment: PaymentPaid,
			Age: 35, Weight: 80, Height: 180,
			ActivityLevel: "active", Goal: "maintain", DailyGoal: 2400,
			IsDemo: true,
		},
	},
	{
		Password: "admin123",
		Account: Account{
			Email: "admin@mealtracker.com", Name: "Admin Demo",
			Role: RoleAdmin, Status: StatusActive,
			Subscription: SubscriptionPremium, Payment: PaymentPaid,
			Age: 30, Weight: 75, Height: 175,
			ActivityLevel: "moderate", Goal: "maintain", DailyGoal: 2200,
			IsDemo: true,
		},
	},
	{
		Password: "mod123",
		Account: Account{
			Email: "mod@mealtracker.com", Name: "Moderator Demo",
			Role: RoleModerator, Status: StatusActive,
			Subscription: SubscriptionFree, Payment: PaymentNone,
			Age: 28, Weight: 68, Height: 168,
			ActivityLevel: "active", Goal: "lose", DailyGoal: 1800,
			IsDemo: true,
		},
	},
	{
		Password: "demo123",
		Account: Account{
			Email: "demo@mealtracker.com", Name: "Demo User",
			Role: RoleUser, Status: StatusActive,
			Subscription: SubscriptionFree, Payment: PaymentNone,
			Age: 25, Weight: 70, Height: 170,
			ActivityLevel: "moderate", Goal: "maintain", DailyGoal: 2000,
			IsDemo: true,
		},
	},
}

// DemoAccounts returns copies of the demo fixtures with stable IDs and
// fresh timestamps. Copies keep the package-level fixtures immutable.
func DemoAccounts() []DemoAccount {
	now := time.Now().UTC()
	out := make([]DemoAccount, len(demoAccounts))
	for i, demo := range demoAccounts {
		out[i] = demo
		out[i].Account.ID = demoAccountID(demo.Account.Role)
		out[i].Account.CreatedAt = now
		out[i].Account.LastLogin = now
	}

	return out
}

// FindDemoAccount matches an (email, password) pair against the demo set.
// The password check is case-sensitive; the email is normalized.
func FindDemoAccount(email, password string) (*Account, bool) {
	email = NormalizeEmail(email)
	for _, demo := range DemoAccounts() {
		if demo.Account.Email == email && demo.Password == password {
			matched := demo.Account

			return &matched, true
		}
	}

	return nil, false
}

// FindDemoAccountByID resolves a demo fixture from its stable ID.
func FindDemoAccountByID(id uuid.UUID) (*Account, bool) {
	for _, demo := range DemoAccounts() {
		if demo.Account.ID == id {
			matched := demo.Account

			return &matched, true
		}
	}

	return nil, false
}

// IsDemoAccountID reports whether the ID belongs to one of the fixtures.
func IsDemoAccountID(id uuid.UUID) bool {
	for _, demo := range demoAccounts {
		if demoAccountID(demo.Account.Role) == id {
			return true
		}
	}

	return false
}

// demoAccountID derives a stable, deterministic ID for a demo fixture so
// sessions and lookups behave consistently across restarts.
func demoAccountID(role Role) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte("mealtrack-demo-"+role.String()))
}
