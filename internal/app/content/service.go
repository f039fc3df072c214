package content

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/YelzhanWeb/goodplatters/internal/adapter/logger"
	"github.com/YelzhanWeb/goodplatters/internal/domain"
	"github.com/YelzhanWeb/goodplatters/internal/interfaces"
)

// Service exposes the whole-site document (menu, reservations, inquiries,
// settings) and the admin edits of menu, settings and story.
type Service struct {
	store   interfaces.Store
	suggest interfaces.SuggestionService
	logger  logger.Logger
}

func NewService(store interfaces.Store, suggest interfaces.SuggestionService, logger logger.Logger) *Service {
	return &Service{
		store:   store,
		suggest: suggest,
		logger:  logger,
	}
}

// Load returns the full document. A store that was never seeded gets the
// default content written first, so the second Load reads what the first wrote.
func (s *Service) Load(ctx context.Context) (*domain.Snapshot, error) {
	settings, err := s.store.Settings().Get(ctx)
	if errors.Is(err, domain.ErrNotFound) {
		return s.seed(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	menu, err := s.store.Menu().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load menu: %w", err)
	}

	reservations, err := s.store.Reservations().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load reservations: %w", err)
	}

	inquiries, err := s.store.Inquiries().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load inquiries: %w", err)
	}

	return &domain.Snapshot{
		Menu:         menu,
		Reservations: reservations,
		Inquiries:    inquiries,
		Settings:     settings,
	}, nil
}

func (s *Service) seed(ctx context.Context) (*domain.Snapshot, error) {
	snapshot := domain.DefaultSnapshot()
	if err := s.store.ReplaceAll(ctx, snapshot); err != nil {
		s.logger.Error("seed_failed", "Failed to write default content", "", nil, err)
		return nil, fmt.Errorf("failed to seed default content: %w", err)
	}

	s.logger.Info("content_seeded", "Default content written", "", map[string]interface{}{
		"menu_items":   len(snapshot.Menu),
		"reservations": len(snapshot.Reservations),
	})

	// re-read so versions and timestamps reflect what the store holds
	return s.Load(ctx)
}

// Save overwrites the whole document.
func (s *Service) Save(ctx context.Context, snapshot *domain.Snapshot) error {
	if snapshot == nil {
		return domain.ValidationErrors{{Field: "snapshot", Message: "document is required"}}
	}
	if snapshot.Inquiries == nil {
		snapshot.Inquiries = []*domain.Inquiry{}
	}
	for _, m := range snapshot.Menu {
		if m != nil {
			m.Normalize()
		}
	}

	if err := snapshot.Validate(); err != nil {
		return err
	}

	if err := s.store.ReplaceAll(ctx, snapshot); err != nil {
		s.logger.Error("snapshot_save_failed", "Failed to replace content", "", nil, err)
		return fmt.Errorf("failed to save snapshot: %w", err)
	}

	s.logger.Info("snapshot_saved", "Content replaced", "", map[string]interface{}{
		"menu_items":   len(snapshot.Menu),
		"reservations": len(snapshot.Reservations),
		"inquiries":    len(snapshot.Inquiries),
	})
	return nil
}

func (s *Service) Settings(ctx context.Context) (*domain.RestaurantSettings, error) {
	settings, err := s.store.Settings().Get(ctx)
	if errors.Is(err, domain.ErrNotFound) {
		snapshot, err := s.Load(ctx)
		if err != nil {
			return nil, err
		}
		return snapshot.Settings, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	return settings, nil
}

// UpdateSettings replaces the settings singleton. A non-zero Version must
// match the stored one or domain.ErrVersionConflict is returned.
func (s *Service) UpdateSettings(ctx context.Context, settings *domain.RestaurantSettings) (*domain.RestaurantSettings, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	// make sure the singleton exists before versioned writes
	if _, err := s.Settings(ctx); err != nil {
		return nil, err
	}

	if err := s.store.Settings().Save(ctx, settings); err != nil {
		if !errors.Is(err, domain.ErrVersionConflict) {
			s.logger.Error("settings_save_failed", "Failed to save settings", "", nil, err)
		}
		return nil, err
	}

	s.logger.Info("settings_updated", "Site settings updated", "", map[string]interface{}{
		"version": settings.Version,
	})
	return settings, nil
}

// UpdateStory changes only the story image and text.
func (s *Service) UpdateStory(ctx context.Context, image, text string, version int64) (*domain.RestaurantSettings, error) {
	current, err := s.Settings(ctx)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(text) == "" {
		return nil, domain.ValidationErrors{{Field: "storyText", Message: "story text is required"}}
	}

	current.StoryImage = strings.TrimSpace(image)
	current.StoryText = strings.TrimSpace(text)
	if version != 0 {
		current.Version = version
	}

	return s.UpdateSettings(ctx, current)
}

func (s *Service) Menu(ctx context.Context) ([]*domain.MenuItem, error) {
	if _, err := s.Settings(ctx); err != nil {
		return nil, err
	}

	menu, err := s.store.Menu().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load menu: %w", err)
	}
	return menu, nil
}

// UpsertMenuItem updates the item with the same id in place, or appends it.
// An empty id gets a fresh one.
func (s *Service) UpsertMenuItem(ctx context.Context, item *domain.MenuItem) (*domain.MenuItem, bool, error) {
	// seeding replaces the menu, so it must happen before the first edit
	if _, err := s.Settings(ctx); err != nil {
		return nil, false, err
	}

	item.Normalize()
	if item.ID == "" {
		item.ID = uuid.NewString()
	}

	if err := item.Validate(); err != nil {
		return nil, false, err
	}

	created, err := s.store.Menu().Upsert(ctx, item)
	if err != nil {
		if !errors.Is(err, domain.ErrVersionConflict) {
			s.logger.Error("menu_upsert_failed", "Failed to save menu item", "", map[string]interface{}{
				"id": item.ID,
			}, err)
		}
		return nil, false, err
	}

	s.logger.Info("menu_item_saved", "Menu item saved", "", map[string]interface{}{
		"id":      item.ID,
		"created": created,
	})
	return item, created, nil
}

// DeleteMenuItem removes the item; an unknown id is not an error.
func (s *Service) DeleteMenuItem(ctx context.Context, id string) error {
	if _, err := s.Settings(ctx); err != nil {
		return err
	}

	deleted, err := s.store.Menu().Delete(ctx, id)
	if err != nil {
		s.logger.Error("menu_delete_failed", "Failed to delete menu item", "", map[string]interface{}{"id": id}, err)
		return fmt.Errorf("failed to delete menu item: %w", err)
	}

	if deleted {
		s.logger.Info("menu_item_deleted", "Menu item deleted", "", map[string]interface{}{"id": id})
	}
	return nil
}

func (s *Service) WhatsAppNumber(ctx context.Context) (string, error) {
	number, err := s.store.Values().Get(ctx, domain.ValueWhatsAppNumber)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.DefaultWhatsAppNumber, nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to load whatsapp number: %w", err)
	}
	return number, nil
}

// SetWhatsAppNumber stores the number only when it is 8-15 digits.
func (s *Service) SetWhatsAppNumber(ctx context.Context, number string) error {
	if err := domain.ValidateWhatsAppNumber(number); err != nil {
		return err
	}

	if err := s.store.Values().Set(ctx, domain.ValueWhatsAppNumber, number); err != nil {
		return fmt.Errorf("failed to save whatsapp number: %w", err)
	}

	s.logger.Info("whatsapp_updated", "WhatsApp number updated", "", nil)
	return nil
}

func (s *Service) SuggestMenuDescription(ctx context.Context, name, category string) string {
	return s.suggest.MenuDescription(ctx, name, category)
}
