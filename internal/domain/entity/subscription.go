// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// SubscriptionStatus is the account's position in the subscription state
// machine: free <-> premium is governed by external billing policy, while
// suspended is entered and left only through the privileged suspend and
// reactivate operations.
type SubscriptionStatus string

const (
	SubscriptionFree      SubscriptionStatus = "free"
	SubscriptionPremium   SubscriptionStatus = "premium"
	SubscriptionSuspended SubscriptionStatus = "suspended"
)

// PaymentStatus mirrors the billing side of the subscription state.
type PaymentStatus string

const (
	PaymentNone    PaymentStatus = "none"
	PaymentPaid    PaymentStatus = "paid"
	PaymentOverdue PaymentStatus = "overdue"
)

// SubscriptionAction names a transition recorded in the audit trail.
type SubscriptionAction string

const (
	ActionSuspended   SubscriptionAction = "suspended"
	ActionReactivated SubscriptionAction = "reactivated"
)

// SubscriptionEvent is one append-only audit record. Events are created on
// every suspend or reactivate transition and are never mutated or deleted.
type SubscriptionEvent struct {
	ID          uuid.UUID          // Unique ID for the audit record.
	UserID      uuid.UUID          // The account the transition was applied to.
	Action      SubscriptionAction // suspended or reactivated.
	OldStatus   SubscriptionStatus // Subscription status before the transition.
	NewStatus   SubscriptionStatus // Subscription status after the transition.
	Reason      string             // Free-text reason supplied by the actor.
	PerformedBy uuid.UUID          // The actor that triggered the transition.
	CreatedAt   time.Time          // When the transition happened.
}
