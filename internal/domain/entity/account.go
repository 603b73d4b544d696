// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// AccountStatus indicates whether an account may hold a session at all.
type AccountStatus string

const (
	// StatusActive marks an account that may authenticate normally.
	StatusActive AccountStatus = "active"
	// StatusInactive marks an account that is blocked from authenticating.
	StatusInactive AccountStatus = "inactive"
)

// Account is the core identity entity. The backing store owns the
// authoritative record; the session store only ever holds a copy of it.
type Account struct {
	ID            uuid.UUID          // The Global Unique Identifier (GUID) for the account.
	Email         string             // Unique login identifier, stored trimmed and lower-cased.
	Name          string             // The account's display name.
	Role          Role               // Closed role enum; see role.go.
	Status        AccountStatus      // active or inactive.
	Subscription  SubscriptionStatus // free, premium or suspended.
	Payment       PaymentStatus      // none, paid or overdue.
	Age           int                // Profile attribute, consumed by collaborators outside this core.
	Weight        float64            // Kilograms.
	Height        float64            // Centimeters.
	ActivityLevel string             // e.g. "moderate", "active".
	Goal          string             // e.g. "maintain", "lose".
	DailyGoal     int                // Daily calorie goal.
	IsDemo        bool               // True only for the fixed demo fixtures; demo accounts are immutable.
	CreatedAt     time.Time          // Timestamp of when this account was created.
	LastLogin     time.Time          // Timestamp of the last successful authentication.
}

// NormalizeEmail canonicalizes an email for uniqueness comparison.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// HasRole reports whether the account holds exactly the given role.
func (a *Account) HasRole(role Role) bool {
	return a != nil && a.Role == role
}

// HasPermission reports whether the account's role grants the capability.
func (a *Account) HasPermission(capability Capability) bool {
	return a != nil && a.Role.HasPermission(capability)
}

// Gate checks account-state gating. It returns the reason that blocks a
// session ("inactive" or "suspended"), or an empty string when the account
// may proceed. Applied at authentication time and at session resume.
func (a *Account) Gate() string {
	switch {
	case a.Status == StatusInactive:
		return GateReasonInactive
	case a.Subscription == SubscriptionSuspended:
		return GateReasonSuspended
	default:
		return ""
	}
}

// Gating reasons carried by AccountStateError.
const (
	GateReasonInactive  = "inactive"
	GateReasonSuspended = "suspended"
)

// Sanitized returns a copy safe to hand to callers: secrets never appear on
// the entity, but this guards against future additions leaking by pointer.
func (a *Account) Sanitized() *Account {
	if a == nil {
		return nil
	}
	cloned := *a

	return &cloned
}
