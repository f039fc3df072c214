package sqlite

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/YelzhanWeb/goodplatters/internal/domain"
)

type reservationRepository struct {
	db *gorm.DB
}

func (r *reservationRepository) Create(ctx context.Context, reservation *domain.Reservation) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&reservationModel{}).Where("id = ?", reservation.ID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return domain.ErrAlreadyExists
		}

		model := toReservationModel(reservation)
		model.Version = 1
		return tx.Create(model).Error
	})
	if errors.Is(err, domain.ErrAlreadyExists) {
		return err
	}
	if err != nil {
		return fmt.Errorf("failed to create reservation: %w", err)
	}

	reservation.Version = 1
	return nil
}

// List returns reservations newest first.
func (r *reservationRepository) List(ctx context.Context) ([]*domain.Reservation, error) {
	var models []reservationModel
	if err := r.db.WithContext(ctx).Order("created_at DESC, id ASC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list reservations: %w", err)
	}

	out := make([]*domain.Reservation, 0, len(models))
	for i := range models {
		out = append(out, models[i].toDomain())
	}
	return out, nil
}

func (r *reservationRepository) Get(ctx context.Context, id string) (*domain.Reservation, error) {
	var model reservationModel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get reservation: %w", err)
	}
	return model.toDomain(), nil
}

// Put inserts or replaces by id.
func (r *reservationRepository) Put(ctx context.Context, reservation *domain.Reservation) error {
	var version int64

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing reservationModel
		err := tx.Where("id = ?", reservation.ID).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			model := toReservationModel(reservation)
			model.Version = 1
			version = 1
			return tx.Create(model).Error
		}
		if err != nil {
			return err
		}

		if reservation.Version != 0 && reservation.Version != existing.Version {
			return domain.ErrVersionConflict
		}

		model := toReservationModel(reservation)
		res := tx.Model(&reservationModel{}).
			Where("id = ? AND version = ?", reservation.ID, existing.Version).
			Updates(map[string]interface{}{
				"date":             model.Date,
				"time":             model.Time,
				"guests":           model.Guests,
				"name":             model.Name,
				"email":            model.Email,
				"phone":            model.Phone,
				"status":           model.Status,
				"special_requests": model.SpecialRequests,
				"created_at":       model.CreatedAt,
				"version":          existing.Version + 1,
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
		return err
	}
	if err != nil {
		return fmt.Errorf("failed to put reservation: %w", err)
	}

	reservation.Version = version
	return nil
}
