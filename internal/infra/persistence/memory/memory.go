// Package memory implements the ephemeral fallback persistence backend.
// It keeps the entire store in process memory behind a single RWMutex, so
// everything vanishes on restart. Selected by the connectivity prober when
// the durable backend is unreachable, and used directly by tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"mealtrack/internal/domain/entity"
	domainerrors "mealtrack/internal/domain/errors"
	"mealtrack/internal/domain/repository"

	"github.com/google/uuid"
)

// store is the shared mutable state. All access goes through the backend's
// locking wrappers; the raw maps are never touched without holding mu.
type store struct {
	mu          sync.RWMutex
	accounts    map[uuid.UUID]*entity.Account
	emailIndex  map[string]uuid.UUID
	credentials map[uuid.UUID]string
	settings    entity.SystemSettings
	events      []*entity.SubscriptionEvent
}

// backend implements repository.Backend. The inTx flag marks a handle that
// is already inside Atomically and therefore must not re-acquire the lock.
type backend struct {
	s    *store
	inTx bool
}

// NewBackend creates a fresh in-memory store seeded with the default
// system settings, matching what a first-boot durable store would hold.
func NewBackend() repository.Backend {
	return &backend{
		s: &store{
			accounts:    make(map[uuid.UUID]*entity.Account),
			emailIndex:  make(map[string]uuid.UUID),
			credentials: make(map[uuid.UUID]string),
			settings:    entity.DefaultSystemSettings(),
		},
	}
}

func (b *backend) Name() string {
	return "memory"
}

// Ping always succeeds; process memory cannot be unreachable.
func (b *backend) Ping(_ context.Context) error {
	return nil
}

func (b *backend) Accounts() repository.AccountRepository {
	return &accountRepository{b: b}
}

func (b *backend) Credentials() repository.CredentialRepository {
	return &credentialRepository{b: b}
}

func (b *backend) Settings() repository.SettingsRepository {
	return &settingsRepository{b: b}
}

func (b *backend) Events() repository.SubscriptionEventRepository {
	return &eventRepository{b: b}
}

// Atomically serializes fn against every other access to the store. The
// critical section stands in for a SQL transaction; there is no rollback,
// so callers must perform their checks before their writes, which is
// exactly the shape the bootstrap guard and lifecycle manager have.
func (b *backend) Atomically(_ context.Context, fn func(tx repository.Backend) error) error {
	b.s.mu.Lock()
	defer b.s.mu.Unlock()

	return fn(&backend{s: b.s, inTx: true})
}

// read runs fn under at least a read lock.
func (b *backend) read(fn func(s *store) error) error {
	if !b.inTx {
		b.s.mu.RLock()
		defer b.s.mu.RUnlock()
	}

	return fn(b.s)
}

// write runs fn under the write lock.
func (b *backend) write(fn func(s *store) error) error {
	if !b.inTx {
		b.s.mu.Lock()
		defer b.s.mu.Unlock()
	}

	return fn(b.s)
}

// --- AccountRepository ---

type accountRepository struct {
	b *backend
}

func (repo *accountRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Account, error) {
	var account *entity.Account
	err := repo.b.read(func(s *store) error {
		stored, ok := s.accounts[id]
		if !ok {
			return repository.ErrAccountNotFound
		}
		account = stored.Sanitized()

		return nil
	})

	return account, err
}

func (repo *accountRepository) FindByEmail(_ context.Context, email string) (*entity.Account, error) {
	var account *entity.Account
	err := repo.b.read(func(s *store) error {
		id, ok := s.emailIndex[entity.NormalizeEmail(email)]
		if !ok {
			return repository.ErrAccountNotFound
		}
		account = s.accounts[id].Sanitized()

		return nil
	})

	return account, err
}

func (repo *accountRepository) Create(_ context.Context, account *entity.Account) error {
	return repo.b.write(func(s *store) error {
		email := entity.NormalizeEmail(account.Email)
		if _, taken := s.emailIndex[email]; taken {
			return domainerrors.ErrEmailTaken
		}

		if account.ID == uuid.Nil {
			account.ID = uuid.New()
		}
		if account.CreatedAt.IsZero() {
			account.CreatedAt = time.Now().UTC()
		}
		account.Email = email

		s.accounts[account.ID] = account.Sanitized()
		s.emailIndex[email] = account.ID

		return nil
	})
}

func (repo *accountRepository) Update(_ context.Context, account *entity.Account) error {
	return repo.b.write(func(s *store) error {
		current, ok := s.accounts[account.ID]
		if !ok {
			return repository.ErrAccountNotFound
		}

		email := entity.NormalizeEmail(account.Email)
		if other, taken := s.emailIndex[email]; taken && other != account.ID {
			return domainerrors.ErrEmailTaken
		}
		if current.Email != email {
			delete(s.emailIndex, current.Email)
			s.emailIndex[email] = account.ID
		}
		account.Email = email

		s.accounts[account.ID] = account.Sanitized()

		return nil
	})
}

func (repo *accountRepository) Delete(_ context.Context, id uuid.UUID) error {
	return repo.b.write(func(s *store) error {
		current, ok := s.accounts[id]
		if !ok {
			return repository.ErrAccountNotFound
		}

		delete(s.emailIndex, current.Email)
		delete(s.accounts, id)

		return nil
	})
}

func (repo *accountRepository) ListByRole(_ context.Context, role entity.Role) ([]*entity.Account, error) {
	var accounts []*entity.Account
	err := repo.b.read(func(s *store) error {
		for _, stored := range s.accounts {
			if stored.Role == role {
				accounts = append(accounts, stored.Sanitized())
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	sortAccounts(accounts)

	return accounts, nil
}

func (repo *accountRepository) List(_ context.Context) ([]*entity.Account, error) {
	var accounts []*entity.Account
	err := repo.b.read(func(s *store) error {
		for _, stored := range s.accounts {
			accounts = append(accounts, stored.Sanitized())
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	sortAccounts(accounts)

	return accounts, nil
}

// sortAccounts orders by creation time to match the durable backend's
// "ORDER BY created_at" listing.
func sortAccounts(accounts []*entity.Account) {
	sort.SliceStable(accounts, func(i, j int) bool {
		return accounts[i].CreatedAt.Before(accounts[j].CreatedAt)
	})
}

// --- CredentialRepository ---

type credentialRepository struct {
	b *backend
}

func (repo *credentialRepository) SetPasswordHash(_ context.Context, accountID uuid.UUID, hash string) error {
	return repo.b.write(func(s *store) error {
		s.credentials[accountID] = hash

		return nil
	})
}

func (repo *credentialRepository) PasswordHash(_ context.Context, accountID uuid.UUID) (string, error) {
	var hash string
	err := repo.b.read(func(s *store) error {
		stored, ok := s.credentials[accountID]
		if !ok {
			return repository.ErrAccountNotFound
		}
		hash = stored

		return nil
	})

	return hash, err
}

func (repo *credentialRepository) DeletePasswordHash(_ context.Context, accountID uuid.UUID) error {
	return repo.b.write(func(s *store) error {
		delete(s.credentials, accountID)

		return nil
	})
}

// --- SettingsRepository ---

type settingsRepository struct {
	b *backend
}

func (repo *settingsRepository) ReadAll(_ context.Context) (entity.SystemSettings, error) {
	settings := entity.SystemSettings{}
	err := repo.b.read(func(s *store) error {
		for k, v := range s.settings {
			settings[k] = v
		}

		return nil
	})

	return settings, err
}

func (repo *settingsRepository) Read(_ context.Context, key string) (string, error) {
	var value string
	err := repo.b.read(func(s *store) error {
		stored, ok := s.settings[key]
		if !ok {
			return repository.ErrSettingNotFound
		}
		value = stored

		return nil
	})

	return value, err
}

func (repo *settingsRepository) Write(_ context.Context, key, value string) error {
	return repo.b.write(func(s *store) error {
		s.settings[key] = value

		return nil
	})
}

// --- SubscriptionEventRepository ---

type eventRepository struct {
	b *backend
}

func (repo *eventRepository) Append(_ context.Context, event *entity.SubscriptionEvent) error {
	return repo.b.write(func(s *store) error {
		if event.ID == uuid.Nil {
			event.ID = uuid.New()
		}
		if event.CreatedAt.IsZero() {
			event.CreatedAt = time.Now().UTC()
		}

		cloned := *event
		s.events = append(s.events, &cloned)

		return nil
	})
}

func (repo *eventRepository) ListByUser(_ context.Context, userID uuid.UUID) ([]*entity.SubscriptionEvent, error) {
	var events []*entity.SubscriptionEvent
	err := repo.b.read(func(s *store) error {
		for _, stored := range s.events {
			if stored.UserID == userID {
				cloned := *stored
				events = append(events, &cloned)
			}
		}

		return nil
	})

	return events, err
}

func (repo *eventRepository) ListRecent(_ context.Context, limit int) ([]*entity.SubscriptionEvent, error) {
	var events []*entity.SubscriptionEvent
	err := repo.b.read(func(s *store) error {
		for i := len(s.events) - 1; i >= 0 && len(events) < limit; i-- {
			cloned := *s.events[i]
			events = append(events, &cloned)
		}

		return nil
	})

	return events, err
}

func (repo *eventRepository) DeleteByUser(_ context.Context, userID uuid.UUID) error {
	return repo.b.write(func(s *store) error {
		kept := s.events[:0]
		for _, stored := range s.events {
			if stored.UserID != userID {
				kept = append(kept, stored)
			}
		}
		s.events = kept

		return nil
	})
}
