package sqlite

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/YelzhanWeb/goodplatters/internal/domain"
)

type inquiryRepository struct {
	db *gorm.DB
}

func (r *inquiryRepository) Create(ctx context.Context, inquiry *domain.Inquiry) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&inquiryModel{}).Where("id = ?", inquiry.ID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return domain.ErrAlreadyExists
		}
		return tx.Create(toInquiryModel(inquiry)).Error
	})
	if errors.Is(err, domain.ErrAlreadyExists) {
		return err
	}
	if err != nil {
		return fmt.Errorf("failed to create inquiry: %w", err)
	}
	return nil
}

// List returns inquiries newest first.
func (r *inquiryRepository) List(ctx context.Context) ([]*domain.Inquiry, error) {
	var models []inquiryModel
	if err := r.db.WithContext(ctx).Order("date DESC, id ASC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list inquiries: %w", err)
	}

	out := make([]*domain.Inquiry, 0, len(models))
	for i := range models {
		out = append(out, models[i].toDomain())
	}
	return out, nil
}

func (r *inquiryRepository) Get(ctx context.Context, id string) (*domain.Inquiry, error) {
	var model inquiryModel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get inquiry: %w", err)
	}
	return model.toDomain(), nil
}

func (r *inquiryRepository) Delete(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Where("id = ?", id).Delete(&inquiryModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete inquiry: %w", err)
	}
	return nil
}
