// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"

	"mealtrack/internal/domain/entity"
	domainerrors "mealtrack/internal/domain/errors"
	"mealtrack/internal/domain/repository"
	"mealtrack/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// eventRepository implements the domain.SubscriptionEventRepository interface using GORM.
type eventRepository struct {
	db *gorm.DB
}

func newEventRepository(db *gorm.DB) repository.SubscriptionEventRepository {
	return &eventRepository{db: db}
}

// Append records one subscription transition in the audit trail.
func (repo *eventRepository) Append(ctx context.Context, event *entity.SubscriptionEvent) error {
	eventM := fromEventDomain(event)

	if err := repo.db.WithContext(ctx).Create(eventM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to append subscription event")
	}

	event.ID = eventM.ID
	event.CreatedAt = eventM.CreatedAt

	return nil
}

// ListByUser returns one account's audit trail, oldest first.
func (repo *eventRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.SubscriptionEvent, error) {
	var models []model.SubscriptionEventModel
	err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at").
		Find(&models).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list subscription events by user")
	}

	return toEventDomainList(models), nil
}

// ListRecent returns the newest events across all accounts.
func (repo *eventRepository) ListRecent(ctx context.Context, limit int) ([]*entity.SubscriptionEvent, error) {
	var models []model.SubscriptionEventModel
	err := repo.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list recent subscription events")
	}

	return toEventDomainList(models), nil
}

// DeleteByUser removes an account's events during cascading deletion.
func (repo *eventRepository) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	err := repo.db.WithContext(ctx).
		Delete(&model.SubscriptionEventModel{}, "user_id = ?", userID).Error
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete subscription events")
	}

	return nil
}

// --- Mapper Functions ---

func toEventDomain(data *model.SubscriptionEventModel) *entity.SubscriptionEvent {
	if data == nil {
		return nil
	}

	return &entity.SubscriptionEvent{
		ID:          data.ID,
		UserID:      data.UserID,
		Action:      entity.SubscriptionAction(data.Action),
		OldStatus:   entity.SubscriptionStatus(data.OldStatus),
		NewStatus:   entity.SubscriptionStatus(data.NewStatus),
		Reason:      data.Reason,
		PerformedBy: data.PerformedBy,
		CreatedAt:   data.CreatedAt,
	}
}

func toEventDomainList(models []model.SubscriptionEventModel) []*entity.SubscriptionEvent {
	events := make([]*entity.SubscriptionEvent, 0, len(models))
	for i := range models {
		events = append(events, toEventDomain(&models[i]))
	}

	return events
}

func fromEventDomain(event *entity.SubscriptionEvent) *model.SubscriptionEventModel {
	if event == nil {
		return nil
	}

	return &model.SubscriptionEventModel{
		ID:          event.ID,
		UserID:      event.UserID,
		Action:      string(event.Action),
		OldStatus:   string(event.OldStatus),
		NewStatus:   string(event.NewStatus),
		Reason:      event.Reason,
		PerformedBy: event.PerformedBy,
		CreatedAt:   event.CreatedAt,
	}
}
