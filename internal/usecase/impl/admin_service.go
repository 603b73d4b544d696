package impl

import (
	"context"
	"log/slog"

	deliverycontext "mealtrack/internal/delivery/context"
	"mealtrack/internal/domain/entity"
	domainerrors "mealtrack/internal/domain/errors"
	"mealtrack/internal/domain/repository"
	"mealtrack/internal/errors"
	"mealtrack/internal/session"
	"mealtrack/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

const defaultRecentEventsLimit = 50

// adminService implements the AdminUsecase interface.
type adminService struct {
	backend  repository.Backend
	sessions *session.Store
	logger   *slog.Logger
}

// AdminServiceParams holds dependencies for adminService, injected by Fx.
type AdminServiceParams struct {
	fx.In

	Backend  repository.Backend
	Sessions *session.Store
	Logger   *slog.Logger
}

// NewAdminService is the constructor for adminService.
func NewAdminService(params AdminServiceParams) usecase.AdminUsecase {
	return &adminService{
		backend:  params.Backend,
		sessions: params.Sessions,
		logger:   params.Logger,
	}
}

func (srv *adminService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// resolveActor loads the acting identity. Demo actors resolve from the
// fixtures; everyone else from the backend.
func (srv *adminService) resolveActor(ctx context.Context, actorID uuid.UUID) (*entity.Account, error) {
	if entity.IsDemoAccountID(actorID) {
		for _, demo := range entity.DemoAccounts() {
			if demo.Account.ID == actorID {
				matched := demo.Account

				return &matched, nil
			}
		}
	}

	actor, err := srv.backend.Accounts().FindByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, errors.Wrap(domainerrors.ErrForbidden, "unknown actor")
		}

		return nil, errors.Wrap(err, "failed to load actor")
	}

	return actor, nil
}

// authorize checks the actor's capability before any side effect occurs.
func (srv *adminService) authorize(ctx context.Context, actorID uuid.UUID, capability entity.Capability) (*entity.Account, error) {
	actor, err := srv.resolveActor(ctx, actorID)
	if err != nil {
		return nil, err
	}

	if !actor.HasPermission(capability) {
		srv.log(ctx).Warn("Privileged operation refused",
			slog.Any("actorID", actorID),
			slog.String("role", actor.Role.String()),
			slog.String("capability", string(capability)))

		return nil, errors.Wrap(domainerrors.ErrForbidden, "missing capability "+string(capability))
	}

	return actor, nil
}

// SuspendUser moves the target into the suspended state. The status
// writes and the audit event are one atomic unit; the target's session is
// terminated as part of the transition, not lazily on its next check.
func (srv *adminService) SuspendUser(ctx context.Context, actorID, targetID uuid.UUID, reason string) error {
	actor, err := srv.authorize(ctx, actorID, entity.CapSuspendUsers)
	if err != nil {
		return err
	}

	if entity.IsDemoAccountID(targetID) {
		return errors.Wrap(domainerrors.ErrDemoAccountImmutable, "suspend rejected")
	}

	err = srv.backend.Atomically(ctx, func(tx repository.Backend) error {
		target, findErr := tx.Accounts().FindByID(ctx, targetID)
		if findErr != nil {
			return findErr
		}
		if target.Subscription == entity.SubscriptionSuspended {
			return errors.Wrap(domainerrors.ErrConflict, "account is already suspended")
		}

		oldStatus := target.Subscription
		target.Subscription = entity.SubscriptionSuspended
		target.Payment = entity.PaymentOverdue
		target.Status = entity.StatusInactive

		if updateErr := tx.Accounts().Update(ctx, target); updateErr != nil {
			return errors.Wrap(updateErr, "failed to suspend account")
		}

		event := &entity.SubscriptionEvent{
			UserID:      targetID,
			Action:      entity.ActionSuspended,
			OldStatus:   oldStatus,
			NewStatus:   entity.SubscriptionSuspended,
			Reason:      reason,
			PerformedBy: actor.ID,
		}

		return tx.Events().Append(ctx, event)
	})
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return errors.Wrap(domainerrors.ErrAccountNotFound, "suspend failed")
		}
		srv.log(ctx).Error("Failed to suspend account",
			slog.Any("targetID", targetID), slog.Any("error", err))

		return errors.Wrap(err, "failed to suspend account")
	}

	srv.sessions.InvalidateIf(targetID, entity.GateReasonSuspended)
	srv.log(ctx).Info("Account suspended",
		slog.Any("targetID", targetID), slog.Any("actorID", actorID), slog.String("reason", reason))

	return nil
}

// ReactivateUser returns a suspended target to the free tier.
func (srv *adminService) ReactivateUser(ctx context.Context, actorID, targetID uuid.UUID) error {
	actor, err := srv.authorize(ctx, actorID, entity.CapSuspendUsers)
	if err != nil {
		return err
	}

	if entity.IsDemoAccountID(targetID) {
		return errors.Wrap(domainerrors.ErrDemoAccountImmutable, "reactivate rejected")
	}

	err = srv.backend.Atomically(ctx, func(tx repository.Backend) error {
		target, findErr := tx.Accounts().FindByID(ctx, targetID)
		if findErr != nil {
			return findErr
		}
		// Reactivation only leaves the suspended state. An active premium
		// account must not be silently downgraded to free.
		if target.Subscription != entity.SubscriptionSuspended {
			return errors.Wrap(domainerrors.ErrConflict, "account is not suspended")
		}

		oldStatus := target.Subscription
		target.Subscription = entity.SubscriptionFree
		target.Payment = entity.PaymentNone
		target.Status = entity.StatusActive

		if updateErr := tx.Accounts().Update(ctx, target); updateErr != nil {
			return errors.Wrap(updateErr, "failed to reactivate account")
		}

		event := &entity.SubscriptionEvent{
			UserID:      targetID,
			Action:      entity.ActionReactivated,
			OldStatus:   oldStatus,
			NewStatus:   entity.SubscriptionFree,
			PerformedBy: actor.ID,
		}

		return tx.Events().Append(ctx, event)
	})
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return errors.Wrap(domainerrors.ErrAccountNotFound, "reactivate failed")
		}
		srv.log(ctx).Error("Failed to reactivate account",
			slog.Any("targetID", targetID), slog.Any("error", err))

		return errors.Wrap(err, "failed to reactivate account")
	}

	srv.log(ctx).Info("Account reactivated",
		slog.Any("targetID", targetID), slog.Any("actorID", actorID))

	return nil
}

// UpdateRole changes the target's role within the non-superadmin subset.
func (srv *adminService) UpdateRole(ctx context.Context, actorID, targetID uuid.UUID, role entity.Role) (*entity.Account, error) {
	if _, err := srv.authorize(ctx, actorID, entity.CapManageUsers); err != nil {
		return nil, err
	}

	if !role.IsValid() || role == entity.RoleSuperadmin {
		// The superadmin role is granted only by the bootstrap guard.
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "role cannot be assigned")
	}

	if entity.IsDemoAccountID(targetID) {
		return nil, errors.Wrap(domainerrors.ErrDemoAccountImmutable, "role change rejected")
	}

	var updated *entity.Account
	err := srv.backend.Atomically(ctx, func(tx repository.Backend) error {
		target, findErr := tx.Accounts().FindByID(ctx, targetID)
		if findErr != nil {
			return findErr
		}
		if target.Role == entity.RoleSuperadmin {
			return errors.Wrap(domainerrors.ErrForbidden, "superadmin role cannot be changed")
		}

		target.Role = role
		if updateErr := tx.Accounts().Update(ctx, target); updateErr != nil {
			return errors.Wrap(updateErr, "failed to update role")
		}
		updated = target

		return nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, errors.Wrap(domainerrors.ErrAccountNotFound, "role update failed")
		}

		return nil, err
	}

	srv.log(ctx).Info("Role updated",
		slog.Any("targetID", targetID), slog.String("role", role.String()), slog.Any("actorID", actorID))

	return updated.Sanitized(), nil
}

// DeleteUser removes the target account with the same cascade as a
// self-service deletion. Deleting the superadmin would break the
// bootstrap invariant, so that target is refused outright.
func (srv *adminService) DeleteUser(ctx context.Context, actorID, targetID uuid.UUID) error {
	if _, err := srv.authorize(ctx, actorID, entity.CapManageUsers); err != nil {
		return err
	}

	if entity.IsDemoAccountID(targetID) {
		return errors.Wrap(domainerrors.ErrDemoAccountImmutable, "deletion rejected")
	}

	err := srv.backend.Atomically(ctx, func(tx repository.Backend) error {
		target, findErr := tx.Accounts().FindByID(ctx, targetID)
		if findErr != nil {
			return findErr
		}
		if target.Role == entity.RoleSuperadmin {
			return errors.Wrap(domainerrors.ErrForbidden, "superadmin account cannot be deleted")
		}

		if delErr := tx.Events().DeleteByUser(ctx, targetID); delErr != nil {
			return errors.Wrap(delErr, "failed to delete subscription events")
		}
		if delErr := tx.Credentials().DeletePasswordHash(ctx, targetID); delErr != nil {
			return errors.Wrap(delErr, "failed to delete credential")
		}

		return tx.Accounts().Delete(ctx, targetID)
	})
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return errors.Wrap(domainerrors.ErrAccountNotFound, "deletion failed")
		}
		srv.log(ctx).Error("Failed to delete account",
			slog.Any("targetID", targetID), slog.Any("error", err))

		return err
	}

	srv.sessions.InvalidateIf(targetID, "deleted")
	srv.log(ctx).Info("Account deleted by administrator",
		slog.Any("targetID", targetID), slog.Any("actorID", actorID))

	return nil
}

// ListAccounts returns every account for administration.
func (srv *adminService) ListAccounts(ctx context.Context, actorID uuid.UUID) ([]*entity.Account, error) {
	if _, err := srv.authorize(ctx, actorID, entity.CapManageUsers); err != nil {
		return nil, err
	}

	accounts, err := srv.backend.Accounts().List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list accounts")
	}

	return accounts, nil
}

// Stats aggregates the account population.
func (srv *adminService) Stats(ctx context.Context, actorID uuid.UUID) (*usecase.AccountStats, error) {
	if _, err := srv.authorize(ctx, actorID, entity.CapViewAnalytics); err != nil {
		return nil, err
	}

	accounts, err := srv.backend.Accounts().List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list accounts for stats")
	}

	stats := &usecase.AccountStats{
		Total:          len(accounts),
		ByRole:         make(map[entity.Role]int),
		BySubscription: make(map[entity.SubscriptionStatus]int),
	}
	for _, account := range accounts {
		stats.ByRole[account.Role]++
		stats.BySubscription[account.Subscription]++
		if account.Status == entity.StatusActive {
			stats.Active++
		} else {
			stats.Inactive++
		}
	}

	return stats, nil
}

// SubscriptionHistory returns the target's audit trail, oldest first.
func (srv *adminService) SubscriptionHistory(ctx context.Context, actorID, targetID uuid.UUID) ([]*entity.SubscriptionEvent, error) {
	if _, err := srv.authorize(ctx, actorID, entity.CapManageUsers); err != nil {
		return nil, err
	}

	events, err := srv.backend.Events().ListByUser(ctx, targetID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load subscription history")
	}

	return events, nil
}

// RecentSubscriptionEvents returns the newest audit events system-wide.
func (srv *adminService) RecentSubscriptionEvents(ctx context.Context, actorID uuid.UUID, limit int) ([]*entity.SubscriptionEvent, error) {
	if _, err := srv.authorize(ctx, actorID, entity.CapViewAnalytics); err != nil {
		return nil, err
	}

	if limit <= 0 {
		limit = defaultRecentEventsLimit
	}

	events, err := srv.backend.Events().ListRecent(ctx, limit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load recent subscription events")
	}

	return events, nil
}
