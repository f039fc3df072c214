package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/YelzhanWeb/goodplatters/internal/domain"
	"github.com/YelzhanWeb/goodplatters/internal/interfaces"
)

type settingsRepository struct {
	db DB
}

func NewSettingsRepository(db DB) interfaces.SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) Get(ctx context.Context) (*domain.RestaurantSettings, error) {
	var s domain.RestaurantSettings
	err := r.db.QueryRow(ctx, `
		SELECT brand_name, tagline, primary_color, secondary_color, phone, email, address,
		       story_image, story_text, weekday_hours, weekend_hours, version
		FROM settings WHERE id = 1`,
	).Scan(&s.BrandName, &s.Tagline, &s.PrimaryColor, &s.SecondaryColor, &s.Phone, &s.Email, &s.Address,
		&s.StoryImage, &s.StoryText, &s.OpeningHours.Weekday, &s.OpeningHours.Weekend, &s.Version)
	if isNoRows(err) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	return &s, nil
}

func (r *settingsRepository) Save(ctx context.Context, settings *domain.RestaurantSettings) error {
	var version int64
	err := inTx(ctx, r.db, func(tx Tx) error {
		v, err := saveSettings(ctx, tx, settings, true)
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

// saveSettings writes the singleton row and returns its new version.
// With checkVersion unset the stored version is overwritten unconditionally.
func saveSettings(ctx context.Context, tx Tx, s *domain.RestaurantSettings, checkVersion bool) (int64, error) {
	var current int64
	err := tx.QueryRow(ctx, `SELECT version FROM settings WHERE id = 1 FOR UPDATE`).Scan(&current)
	switch {
	case isNoRows(err):
		current = 0
	case err != nil:
		return 0, err
	case checkVersion && s.Version != 0 && s.Version != current:
		return 0, domain.ErrVersionConflict
	}

	next := current + 1
	_, err = tx.Exec(ctx, `
		INSERT INTO settings (id, brand_name, tagline, primary_color, secondary_color, phone, email, address,
		                      story_image, story_text, weekday_hours, weekend_hours, version, updated_at)
		VALUES (1, $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, now())
		ON CONFLICT (id) DO UPDATE SET
			brand_name = EXCLUDED.brand_name,
			tagline = EXCLUDED.tagline,
			primary_color = EXCLUDED.primary_color,
			secondary_color = EXCLUDED.secondary_color,
			phone = EXCLUDED.phone,
			email = EXCLUDED.email,
			address = EXCLUDED.address,
			story_image = EXCLUDED.story_image,
			story_text = EXCLUDED.story_text,
			weekday_hours = EXCLUDED.weekday_hours,
			weekend_hours = EXCLUDED.weekend_hours,
			version = EXCLUDED.version,
			updated_at = now()`,
		s.BrandName, s.Tagline, s.PrimaryColor, s.SecondaryColor, s.Phone, s.Email, s.Address,
		s.StoryImage, s.StoryText, s.OpeningHours.Weekday, s.OpeningHours.Weekend, next,
	)
	if err != nil {
		return 0, err
	}
	return next, nil
}

type valueRepository struct {
	db DB
}

func NewValueRepository(db DB) interfaces.ValueRepository {
	return &valueRepository{db: db}
}

func (r *valueRepository) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.QueryRow(ctx, `SELECT value FROM site_values WHERE name = $1`, key).Scan(&value)
	if isNoRows(err) {
		return "", domain.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to get value %s: %w", key, err)
	}
	return value, nil
}

func (r *valueRepository) Set(ctx context.Context, key, value string) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO site_values (name, value, updated_at) VALUES ($1, $2, now())
		ON CONFLICT (name) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("failed to set value %s: %w", key, err)
	}
	return nil
}
