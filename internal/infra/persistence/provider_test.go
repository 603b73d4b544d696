package persistence

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"mealtrack/internal/domain/entity"
	"mealtrack/internal/domain/repository"
	"mealtrack/internal/errors"
	"mealtrack/internal/infra/persistence/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// flakyBackend wraps the in-memory store with a scriptable heartbeat.
type flakyBackend struct {
	repository.Backend

	pings     int
	failFirst int
}

func (f *flakyBackend) Name() string {
	return "flaky"
}

func (f *flakyBackend) Ping(_ context.Context) error {
	f.pings++
	if f.pings <= f.failFirst {
		return errors.New("connection refused")
	}

	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestProbe_SucceedsFirstAttempt(t *testing.T) {
	backend := &flakyBackend{Backend: memory.NewBackend()}

	var slept []time.Duration
	err := probe(context.Background(), discardLogger(), backend, 3, time.Second,
		func(d time.Duration) { slept = append(slept, d) })

	require.NoError(t, err)
	assert.Equal(t, 1, backend.pings)
	assert.Empty(t, slept)
}

func TestProbe_RecoversWithinBudget(t *testing.T) {
	backend := &flakyBackend{Backend: memory.NewBackend(), failFirst: 2}

	var slept []time.Duration
	err := probe(context.Background(), discardLogger(), backend, 3, time.Second,
		func(d time.Duration) { slept = append(slept, d) })

	require.NoError(t, err)
	assert.Equal(t, 3, backend.pings)
	// One backoff sleep between each failed attempt and the next.
	assert.Equal(t, []time.Duration{time.Second, time.Second}, slept)
}

func TestProbe_ExhaustsAttempts(t *testing.T) {
	backend := &flakyBackend{Backend: memory.NewBackend(), failFirst: 10}

	var slept []time.Duration
	err := probe(context.Background(), discardLogger(), backend, 3, time.Second,
		func(d time.Duration) { slept = append(slept, d) })

	require.Error(t, err)
	assert.Equal(t, 3, backend.pings)
	// No sleep after the final attempt.
	assert.Len(t, slept, 2)
}

func TestSeedDefaultSettings_FreshStore(t *testing.T) {
	backend := memory.NewBackend()
	ctx := context.Background()

	require.NoError(t, seedDefaultSettings(ctx, backend))

	settings, err := backend.Settings().ReadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, "false", settings[entity.SettingSuperadminExists])
	assert.Equal(t, "true", settings[entity.SettingDemoAccountsEnabled])
}

func TestSeedDefaultSettings_PreservesExistingValues(t *testing.T) {
	backend := memory.NewBackend()
	ctx := context.Background()

	// A store that already went through bootstrap keeps its state.
	require.NoError(t, backend.Settings().Write(ctx, entity.SettingSuperadminExists, "true"))
	require.NoError(t, backend.Settings().Write(ctx, entity.SettingDemoAccountsEnabled, "false"))

	require.NoError(t, seedDefaultSettings(ctx, backend))

	value, err := backend.Settings().Read(ctx, entity.SettingSuperadminExists)
	require.NoError(t, err)
	assert.Equal(t, "true", value)

	value, err = backend.Settings().Read(ctx, entity.SettingDemoAccountsEnabled)
	require.NoError(t, err)
	assert.Equal(t, "false", value)
}
