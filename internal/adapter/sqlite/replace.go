package sqlite

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/YelzhanWeb/goodplatters/internal/domain"
)

// ReplaceAll swaps menu, reservations, inquiries and settings in one
// transaction. Records that survive the swap get their version bumped so
// writers holding the old version are rejected.
func (s *Store) ReplaceAll(ctx context.Context, snapshot *domain.Snapshot) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		menuVersions, err := versionsByID(tx, &menuItemModel{})
		if err != nil {
			return err
		}
		reservationVersions, err := versionsByID(tx, &reservationModel{})
		if err != nil {
			return err
		}

		for _, model := range []interface{}{&menuItemModel{}, &reservationModel{}, &inquiryModel{}} {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
				return err
			}
		}

		for i, item := range snapshot.Menu {
			model := toMenuModel(item)
			model.Position = int64(i + 1)
			model.Version = menuVersions[item.ID] + 1
			if err := tx.Create(model).Error; err != nil {
				return fmt.Errorf("menu item %s: %w", item.ID, err)
			}
			item.Version = model.Version
			item.UpdatedAt = model.UpdatedAt
		}

		for _, r := range snapshot.Reservations {
			model := toReservationModel(r)
			model.Version = reservationVersions[r.ID] + 1
			if err := tx.Create(model).Error; err != nil {
				return fmt.Errorf("reservation %s: %w", r.ID, err)
			}
			r.Version = model.Version
		}

		for _, inq := range snapshot.Inquiries {
			if err := tx.Create(toInquiryModel(inq)).Error; err != nil {
				return fmt.Errorf("inquiry %s: %w", inq.ID, err)
			}
		}

		settings := *snapshot.Settings
		settings.Version = 0
		version, err := saveSettings(tx, &settings)
		if err != nil {
			return err
		}
		snapshot.Settings.Version = version
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to replace content: %w", err)
	}
	return nil
}

func versionsByID(tx *gorm.DB, model interface{}) (map[string]int64, error) {
	var rows []struct {
		ID      string
		Version int64
	}
	if err := tx.Model(model).Select("id, version").Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(rows))
	for _, r := range rows {
		out[r.ID] = r.Version
	}
	return out, nil
}
