package sqlite

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/YelzhanWeb/goodplatters/internal/domain"
)

type menuRepository struct {
	db *gorm.DB
}

func (r *menuRepository) List(ctx context.Context) ([]*domain.MenuItem, error) {
	var models []menuItemModel
	if err := r.db.WithContext(ctx).Order("position ASC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list menu items: %w", err)
	}

	items := make([]*domain.MenuItem, 0, len(models))
	for i := range models {
		item, err := models[i].toDomain()
		if err != nil {
			return nil, fmt.Errorf("menu item %s: %w", models[i].ID, err)
		}
		items = append(items, item)
	}
	return items, nil
}

func (r *menuRepository) Get(ctx context.Context, id string) (*domain.MenuItem, error) {
	var model menuItemModel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get menu item: %w", err)
	}
	return model.toDomain()
}

// Upsert keeps the position of an existing item and appends new ones.
func (r *menuRepository) Upsert(ctx context.Context, item *domain.MenuItem) (bool, error) {
	var (
		created bool
		version int64
		now     = time.Now().UTC()
	)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing menuItemModel
		err := tx.Where("id = ?", item.ID).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			var last int64
			if err := tx.Model(&menuItemModel{}).Select("COALESCE(MAX(position), 0)").Row().Scan(&last); err != nil {
				return err
			}

			model := toMenuModel(item)
			model.Position = last + 1
			model.Version = 1
			model.UpdatedAt = now
			created, version = true, 1
			return tx.Create(model).Error
		}
		if err != nil {
			return err
		}

		if item.Version != 0 && item.Version != existing.Version {
			return domain.ErrVersionConflict
		}

		model := toMenuModel(item)
		res := tx.Model(&menuItemModel{}).
			Where("id = ? AND version = ?", item.ID, existing.Version).
			Updates(map[string]interface{}{
				"name":         model.Name,
				"category":     model.Category,
				"price":        model.Price,
				"description":  model.Description,
				"dietary_tags": model.DietaryTags,
				"image":        model.Image,
				"chef_special": model.ChefSpecial,
				"version":      existing.Version + 1,
				"updated_at":   now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrVersionConflict
		}
		version = existing.Version + 1
		return nil
	})
	if errors.Is(err, domain.ErrVersionConflict) {
		return false, err
	}
	if err != nil {
		return false, fmt.Errorf("failed to upsert menu item: %w", err)
	}

	item.Version = version
	item.UpdatedAt = now
	return created, nil
}

func (r *menuRepository) Delete(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&menuItemModel{})
	if res.Error != nil {
		return false, fmt.Errorf("failed to delete menu item: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}
