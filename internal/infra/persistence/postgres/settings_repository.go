// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"

	"mealtrack/internal/domain/entity"
	domainerrors "mealtrack/internal/domain/errors"
	"mealtrack/internal/domain/repository"
	"mealtrack/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// settingsRepository implements the domain.SettingsRepository interface using GORM.
type settingsRepository struct {
	db *gorm.DB
}

func newSettingsRepository(db *gorm.DB) repository.SettingsRepository {
	return &settingsRepository{db: db}
}

// ReadAll loads the whole settings singleton.
func (repo *settingsRepository) ReadAll(ctx context.Context) (entity.SystemSettings, error) {
	var models []model.SystemSettingModel
	if err := repo.db.WithContext(ctx).Find(&models).Error; err != nil {
		return nil, errors.Wrap(err, "failed to read system settings")
	}

	settings := make(entity.SystemSettings, len(models))
	for _, m := range models {
		settings[m.Key] = m.Value
	}

	return settings, nil
}

// Read returns one setting value.
func (repo *settingsRepository) Read(ctx context.Context, key string) (string, error) {
	var settingM model.SystemSettingModel
	if err := repo.db.WithContext(ctx).First(&settingM, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", repository.ErrSettingNotFound
		}

		return "", errors.Wrap(err, "failed to read system setting")
	}

	return settingM.Value, nil
}

// Write upserts one setting key.
func (repo *settingsRepository) Write(ctx context.Context, key, value string) error {
	settingM := &model.SystemSettingModel{
		Key:   key,
		Value: value,
	}

	err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(settingM).Error
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to write system setting")
	}

	return nil
}
