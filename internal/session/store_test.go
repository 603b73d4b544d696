package session

import (
	"sync"
	"testing"

	"mealtrack/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authenticatedStore(t *testing.T) (*Store, *entity.Account) {
	t.Helper()

	account := &entity.Account{
		ID:     uuid.New(),
		Email:  "user@example.com",
		Name:   "Session User",
		Role:   entity.RoleUser,
		Status: entity.StatusActive,
	}

	store := NewStore(nil)
	store.LoginSucceeded(account)

	return store, account
}

func TestStore_StartsUnauthenticated(t *testing.T) {
	store := NewStore(nil)

	assert.Equal(t, StatusUnauthenticated, store.Status())
	assert.False(t, store.IsAuthenticated())
	assert.Nil(t, store.Current())
	assert.False(t, store.HasRole(entity.RoleUser))
	assert.False(t, store.HasPermission(entity.CapViewOwnData))
}

func TestStore_LoginInstallsCopy(t *testing.T) {
	store, account := authenticatedStore(t)

	require.True(t, store.IsAuthenticated())
	current := store.Current()
	require.NotNil(t, current)
	assert.Equal(t, account.ID, current.ID)

	// The store holds a copy; mutating the original must not leak in.
	account.Role = entity.RoleSuperadmin
	assert.False(t, store.HasRole(entity.RoleSuperadmin))
	assert.True(t, store.HasRole(entity.RoleUser))
}

func TestStore_ProfileUpdated(t *testing.T) {
	store, account := authenticatedStore(t)

	updated := account.Sanitized()
	updated.Name = "Renamed"
	store.ProfileUpdated(updated)
	assert.Equal(t, "Renamed", store.Current().Name)

	// An update for a different identity is ignored.
	stranger := account.Sanitized()
	stranger.ID = uuid.New()
	stranger.Name = "Stranger"
	store.ProfileUpdated(stranger)
	assert.Equal(t, "Renamed", store.Current().Name)
}

func TestStore_ProfileUpdateIgnoredWhenLoggedOut(t *testing.T) {
	store, account := authenticatedStore(t)
	store.LoggedOut()

	store.ProfileUpdated(account)
	assert.Nil(t, store.Current())
	assert.Equal(t, StatusUnauthenticated, store.Status())
}

func TestStore_Invalidate(t *testing.T) {
	store, _ := authenticatedStore(t)

	store.Invalidate("suspended")
	assert.False(t, store.IsAuthenticated())
	assert.Nil(t, store.Current())
}

func TestStore_InvalidateIf(t *testing.T) {
	store, account := authenticatedStore(t)

	// A different target leaves the session alone.
	store.InvalidateIf(uuid.New(), "suspended")
	assert.True(t, store.IsAuthenticated())

	store.InvalidateIf(account.ID, "suspended")
	assert.False(t, store.IsAuthenticated())
}

func TestStore_PermissionsFollowRole(t *testing.T) {
	store, account := authenticatedStore(t)

	assert.True(t, store.HasPermission(entity.CapViewOwnData))
	assert.False(t, store.HasPermission(entity.CapManageUsers))

	promoted := account.Sanitized()
	promoted.Role = entity.RoleAdmin
	store.LoginSucceeded(promoted)
	assert.True(t, store.HasPermission(entity.CapManageUsers))
	assert.False(t, store.HasPermission(entity.CapSuspendUsers))
}

func TestStore_ConcurrentReadsDuringTransitions(t *testing.T) {
	store, account := authenticatedStore(t)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = store.Current()
				_ = store.IsAuthenticated()
				_ = store.HasPermission(entity.CapViewOwnData)
			}
		}()
	}
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				store.LoginSucceeded(account)
				store.LoggedOut()
			}
		}()
	}
	wg.Wait()

	// Terminal state is whatever the last transition left; it must be one
	// of the two coherent states, never a half-applied mix.
	if store.IsAuthenticated() {
		assert.NotNil(t, store.Current())
	} else {
		assert.Nil(t, store.Current())
	}
}
