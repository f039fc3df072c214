package sqlite

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/YelzhanWeb/goodplatters/internal/domain"
)

type settingsRepository struct {
	db *gorm.DB
}

func (r *settingsRepository) Get(ctx context.Context) (*domain.RestaurantSettings, error) {
	var model settingsModel
	err := r.db.WithContext(ctx).Where("id = ?", settingsRowID).First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	return model.toDomain(), nil
}

func (r *settingsRepository) Save(ctx context.Context, settings *domain.RestaurantSettings) error {
	var version int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		v, err := saveSettings(tx, settings)
		version = v
		return err
	})
	if errors.Is(err, domain.ErrVersionConflict) {
		return err
	}
	if err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	settings.Version = version
	return nil
}

// saveSettings writes the singleton inside tx and returns the new version.
func saveSettings(tx *gorm.DB, settings *domain.RestaurantSettings) (int64, error) {
	var existing settingsModel
	err := tx.Where("id = ?", settingsRowID).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		model := toSettingsModel(settings)
		model.Version = 1
		model.UpdatedAt = time.Now().UTC()
		return 1, tx.Create(model).Error
	}
	if err != nil {
		return 0, err
	}

	if settings.Version != 0 && settings.Version != existing.Version {
		return 0, domain.ErrVersionConflict
	}

	model := toSettingsModel(settings)
	model.Version = existing.Version + 1
	model.UpdatedAt = time.Now().UTC()
	res := tx.Model(&settingsModel{}).
		Where("id = ? AND version = ?", settingsRowID, existing.Version).
		Select("*").
		Updates(model)
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		return 0, domain.ErrVersionConflict
	}
	return model.Version, nil
}

type valueRepository struct {
	db *gorm.DB
}

func (r *valueRepository) Get(ctx context.Context, key string) (string, error) {
	var model valueModel
	err := r.db.WithContext(ctx).Where("name = ?", key).First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", domain.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to get value %s: %w", key, err)
	}
	return model.Value, nil
}

func (r *valueRepository) Set(ctx context.Context, key, value string) error {
	model := valueModel{Key: key, Value: value, UpdatedAt: time.Now().UTC()}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&model).Error
	if err != nil {
		return fmt.Errorf("failed to set value %s: %w", key, err)
	}
	return nil
}
