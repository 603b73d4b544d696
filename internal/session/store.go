// Package session holds the single current identity for the active
// process. It is a small state machine: every mutation is a tagged
// transition applied under one lock, so two concurrent role or status
// updates can never interleave into a merged record. Reads are
// side-effect-free and run concurrently.
package session

import (
	"log/slog"
	"sync"
	"time"

	"mealtrack/internal/domain/entity"

	"github.com/google/uuid"
)

// Status is the authentication state of the process session.
type Status string

const (
	StatusUnauthenticated Status = "unauthenticated"
	StatusAuthenticated   Status = "authenticated"
)

// transitionKind tags the transitions the store accepts. Any state change
// outside this closed set is a bug.
type transitionKind string

const (
	transitionLoginSucceeded transitionKind = "login-succeeded"
	transitionProfileUpdated transitionKind = "profile-updated"
	transitionLoggedOut      transitionKind = "logged-out"
	transitionInvalidated    transitionKind = "invalidated"
)

// transition is one tagged state-machine message.
type transition struct {
	kind    transitionKind
	account *entity.Account
	reason  string
}

// Store is the process-wide session holder. It keeps a copy of the
// authenticated identity, never the authoritative record; the backing
// store owns that.
type Store struct {
	mu     sync.RWMutex
	logger *slog.Logger

	status    Status
	current   *entity.Account
	changedAt time.Time
}

// NewStore creates an unauthenticated session store.
func NewStore(logger *slog.Logger) *Store {
	return &Store{
		logger: logger,
		status: StatusUnauthenticated,
	}
}

// apply is the single mutation point. Every transition goes through here
// under the write lock, in submission order.
func (s *Store) apply(t transition) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch t.kind {
	case transitionLoginSucceeded:
		s.status = StatusAuthenticated
		s.current = t.account.Sanitized()
	case transitionProfileUpdated:
		// A profile update for a different identity than the session's is
		// ignored; the session only mirrors its own account.
		if s.current == nil || t.account == nil || s.current.ID != t.account.ID {
			return
		}
		s.current = t.account.Sanitized()
	case transitionLoggedOut, transitionInvalidated:
		s.status = StatusUnauthenticated
		s.current = nil
	}
	s.changedAt = time.Now()

	if s.logger != nil {
		attrs := []any{
			slog.String("transition", string(t.kind)),
			slog.String("status", string(s.status)),
		}
		if t.reason != "" {
			attrs = append(attrs, slog.String("reason", t.reason))
		}
		s.logger.Debug("session transition applied", attrs...)
	}
}

// LoginSucceeded installs the authenticated identity.
func (s *Store) LoginSucceeded(account *entity.Account) {
	s.apply(transition{kind: transitionLoginSucceeded, account: account})
}

// ProfileUpdated refreshes the session's copy after a profile mutation.
func (s *Store) ProfileUpdated(account *entity.Account) {
	s.apply(transition{kind: transitionProfileUpdated, account: account})
}

// LoggedOut clears the session by the caller's own choice.
func (s *Store) LoggedOut() {
	s.apply(transition{kind: transitionLoggedOut})
}

// Invalidate terminates the session from the outside, carrying the reason
// ("suspended", "deleted"). Called as part of the transition that gated
// the account, never lazily on the next check.
func (s *Store) Invalidate(reason string) {
	s.apply(transition{kind: transitionInvalidated, reason: reason})
}

// InvalidateIf terminates the session only when it currently belongs to
// the given account. Used by privileged mutations targeting an account
// that may or may not be the one logged in on this process.
func (s *Store) InvalidateIf(accountID uuid.UUID, reason string) {
	s.mu.RLock()
	match := s.current != nil && s.current.ID == accountID
	s.mu.RUnlock()

	if match {
		s.Invalidate(reason)
	}
}

// Current returns a copy of the authenticated identity, or nil when the
// session is unauthenticated.
func (s *Store) Current() *entity.Account {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.current.Sanitized()
}

// Status reports the session's authentication state.
func (s *Store) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.status
}

// IsAuthenticated reports whether an identity currently holds the session.
func (s *Store) IsAuthenticated() bool {
	return s.Status() == StatusAuthenticated
}

// HasRole reports whether the session identity holds exactly the role.
func (s *Store) HasRole(role entity.Role) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.current.HasRole(role)
}

// HasPermission reports whether the session identity's role grants the
// capability. Unauthenticated sessions hold no capabilities.
func (s *Store) HasPermission(capability entity.Capability) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.current.HasPermission(capability)
}

// ChangedAt reports when the last transition was applied.
func (s *Store) ChangedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.changedAt
}
