// Package persistence selects the process-wide storage backend. The
// durable Postgres store is preferred; when it cannot be reached within
// the probe budget the service degrades to the in-memory store instead of
// refusing to start.
package persistence

import (
	"context"
	"log/slog"
	"time"

	"mealtrack/config"
	"mealtrack/internal/domain/entity"
	"mealtrack/internal/domain/repository"
	"mealtrack/internal/errors"
	"mealtrack/internal/infra/persistence/memory"
	"mealtrack/internal/infra/persistence/postgres"

	"go.uber.org/fx"
	"gorm.io/gorm"
)

const probeTimeout = 3 * time.Second

// Params defines the required parameters
type Params struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
	DB     *gorm.DB `optional:"true"`
}

// SelectBackend decides, exactly once per process lifetime, which backend
// the service runs on. The decision never changes at runtime; a durable
// store that comes back later is only picked up by a restart.
func SelectBackend(params Params) repository.Backend {
	if params.DB == nil {
		params.Logger.Warn("Postgres not configured, using in-memory store",
			slog.String("backend", "memory"))

		return memory.NewBackend()
	}

	durable := postgres.NewBackend(params.DB)
	ctx := context.Background()

	err := probe(ctx, params.Logger, durable,
		params.Config.ProbeAttempts(), params.Config.ProbeBackoff(), time.Sleep)
	if err != nil {
		params.Logger.Warn("Postgres unreachable, falling back to in-memory store",
			slog.String("backend", "memory"),
			slog.Any("error", err))

		return memory.NewBackend()
	}

	if err := postgres.Migrate(params.DB); err != nil {
		params.Logger.Error("Postgres reachable but migration failed, falling back to in-memory store",
			slog.String("backend", "memory"),
			slog.Any("error", err))

		return memory.NewBackend()
	}

	// Seeding is best effort. A store that answers the heartbeat but cannot
	// serve the settings table is still treated as reachable.
	if err := seedDefaultSettings(ctx, durable); err != nil {
		params.Logger.Warn("failed to seed default system settings",
			slog.Any("error", err))
	}

	params.Logger.Info("storage backend selected",
		slog.String("backend", durable.Name()))

	return durable
}

// probe pings the backend up to attempts times, sleeping backoff between
// tries. The sleep function is injected so tests do not wait on the clock.
func probe(ctx context.Context, logger *slog.Logger, backend repository.Backend,
	attempts int, backoff time.Duration, sleep func(time.Duration),
) error {
	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		pingCtx, cancel := context.WithTimeout(ctx, probeTimeout)
		lastErr = backend.Ping(pingCtx)
		cancel()

		if lastErr == nil {
			return nil
		}

		logger.Warn("storage heartbeat failed",
			slog.String("backend", backend.Name()),
			slog.Int("attempt", attempt),
			slog.Int("maxAttempts", attempts),
			slog.Any("error", lastErr))

		if attempt < attempts {
			sleep(backoff)
		}
	}

	return lastErr
}

// seedDefaultSettings writes the first-boot defaults for any settings key
// that has never been written. Existing values are left untouched.
func seedDefaultSettings(ctx context.Context, backend repository.Backend) error {
	settings := backend.Settings()
	for key, value := range entity.DefaultSystemSettings() {
		if _, err := settings.Read(ctx, key); err == nil {
			continue
		} else if !errors.Is(err, repository.ErrSettingNotFound) {
			return err
		}

		if err := settings.Write(ctx, key, value); err != nil {
			return err
		}
	}

	return nil
}
