package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/YelzhanWeb/goodplatters/internal/adapter/logger"
	"github.com/YelzhanWeb/goodplatters/internal/domain"
	"github.com/YelzhanWeb/goodplatters/internal/interfaces"
)

type Service struct {
	store     interfaces.Store
	publisher interfaces.EventPublisher
	suggest   interfaces.SuggestionService
	logger    logger.Logger
}

// NewService accepts a nil publisher when event delivery is disabled.
func NewService(store interfaces.Store, publisher interfaces.EventPublisher, suggest interfaces.SuggestionService, logger logger.Logger) *Service {
	return &Service{
		store:     store,
		publisher: publisher,
		suggest:   suggest,
		logger:    logger,
	}
}

// SubmitReservation stores a public booking request. The id is always
// freshly generated and the status is always PENDING.
func (s *Service) SubmitReservation(ctx context.Context, cmd interfaces.SubmitReservationCommand) (*domain.Reservation, error) {
	reservation, err := domain.NewReservation(cmd.Date, cmd.Time, cmd.Guests, cmd.Name, cmd.Email, cmd.Phone, cmd.SpecialRequests)
	if err != nil {
		s.logger.Debug("validation_failed", "Reservation validation failed", "", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, err
	}

	if err := s.store.Reservations().Create(ctx, reservation); err != nil {
		s.logger.Error("reservation_create_failed", "Failed to store reservation", "", nil, err)
		return nil, fmt.Errorf("failed to store reservation: %w", err)
	}

	reservationsSubmitted.Inc()
	s.logger.Info("reservation_created", "Reservation request received", "", map[string]interface{}{
		"id":     reservation.ID,
		"date":   reservation.Date,
		"guests": reservation.Guests,
	})

	s.publish(ctx, interfaces.SiteEvent{
		Type:          interfaces.EventReservationCreated,
		ReservationID: reservation.ID,
		Name:          reservation.Name,
		Date:          reservation.Date,
		Time:          reservation.Time,
		Guests:        reservation.Guests,
		Status:        reservation.Status,
		Timestamp:     reservation.CreatedAt,
	})

	return reservation, nil
}

func (s *Service) Reservations(ctx context.Context) ([]*domain.Reservation, error) {
	reservations, err := s.store.Reservations().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list reservations: %w", err)
	}
	return reservations, nil
}

// PutReservation inserts or replaces a reservation by id.
func (s *Service) PutReservation(ctx context.Context, r *domain.Reservation) error {
	if err := r.Validate(); err != nil {
		return err
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
	return s.store.Reservations().Put(ctx, r)
}

// UpdateReservationStatus changes the status and nothing else.
func (s *Service) UpdateReservationStatus(ctx context.Context, id string, status domain.ReservationStatus) (*domain.Reservation, error) {
	if !status.Valid() {
		return nil, domain.ValidationErrors{{Field: "status", Message: "status must be one of PENDING, CONFIRMED, CANCELLED"}}
	}

	reservation, err := s.store.Reservations().Get(ctx, id)
	if err != nil {
		return nil, err
	}

	oldStatus := reservation.Status
	if err := reservation.TransitionTo(status); err != nil {
		return nil, err
	}
	if oldStatus == status {
		return reservation, nil
	}

	if err := s.store.Reservations().Put(ctx, reservation); err != nil {
		if !errors.Is(err, domain.ErrVersionConflict) {
			s.logger.Error("reservation_update_failed", "Failed to update reservation status", "", map[string]interface{}{
				"id": id,
			}, err)
		}
		return nil, err
	}

	s.logger.Info("reservation_status_changed", "Reservation status changed", "", map[string]interface{}{
		"id":         id,
		"old_status": oldStatus,
		"new_status": status,
	})

	s.publish(ctx, interfaces.SiteEvent{
		Type:          interfaces.EventReservationStatusChanged,
		ReservationID: reservation.ID,
		Name:          reservation.Name,
		Date:          reservation.Date,
		Time:          reservation.Time,
		Guests:        reservation.Guests,
		Status:        status,
		OldStatus:     oldStatus,
		Timestamp:     time.Now().UTC(),
	})

	return reservation, nil
}

func (s *Service) SubmitInquiry(ctx context.Context, cmd interfaces.SubmitInquiryCommand) (*domain.Inquiry, error) {
	inquiry, err := domain.NewInquiry(cmd.Name, cmd.Email, cmd.Subject, cmd.Message)
	if err != nil {
		return nil, err
	}

	if err := s.store.Inquiries().Create(ctx, inquiry); err != nil {
		s.logger.Error("inquiry_create_failed", "Failed to store inquiry", "", nil, err)
		return nil, fmt.Errorf("failed to store inquiry: %w", err)
	}

	inquiriesSubmitted.Inc()
	s.logger.Info("inquiry_created", "Inquiry received", "", map[string]interface{}{"id": inquiry.ID})

	s.publish(ctx, interfaces.SiteEvent{
		Type:      interfaces.EventInquiryCreated,
		InquiryID: inquiry.ID,
		Name:      inquiry.Name,
		Subject:   inquiry.Subject,
		Timestamp: inquiry.Date,
	})

	return inquiry, nil
}

func (s *Service) Inquiries(ctx context.Context) ([]*domain.Inquiry, error) {
	inquiries, err := s.store.Inquiries().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list inquiries: %w", err)
	}
	return inquiries, nil
}

// DeleteInquiry removes the inquiry; an unknown id is not an error.
func (s *Service) DeleteInquiry(ctx context.Context, id string) error {
	if err := s.store.Inquiries().Delete(ctx, id); err != nil {
		s.logger.Error("inquiry_delete_failed", "Failed to delete inquiry", "", map[string]interface{}{"id": id}, err)
		return fmt.Errorf("failed to delete inquiry: %w", err)
	}
	return nil
}

// SuggestInquiryReply drafts a reply to the stored inquiry.
func (s *Service) SuggestInquiryReply(ctx context.Context, id string) (string, error) {
	inquiry, err := s.store.Inquiries().Get(ctx, id)
	if err != nil {
		return "", err
	}

	brand := domain.DefaultSettings().BrandName
	settings, err := s.store.Settings().Get(ctx)
	switch {
	case err == nil:
		brand = settings.BrandName
	case !errors.Is(err, domain.ErrNotFound):
		return "", fmt.Errorf("failed to load settings: %w", err)
	}

	return s.suggest.InquiryReply(ctx, brand, inquiry.Name, inquiry.Message), nil
}

func (s *Service) Dashboard(ctx context.Context) (*interfaces.DashboardStats, error) {
	reservations, err := s.Reservations(ctx)
	if err != nil {
		return nil, err
	}
	inquiries, err := s.Inquiries(ctx)
	if err != nil {
		return nil, err
	}
	menu, err := s.store.Menu().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list menu: %w", err)
	}

	stats := &interfaces.DashboardStats{
		Reservations: len(reservations),
		MenuItems:    len(menu),
		Inquiries:    len(inquiries),
	}
	for _, r := range reservations {
		if r.Status == domain.StatusPending {
			stats.PendingReservations++
		}
	}
	return stats, nil
}

func (s *Service) publish(ctx context.Context, event interfaces.SiteEvent) {
	if s.publisher == nil {
		return
	}
	// publish failures are logged and never fail the caller
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Error("rabbitmq_publish_failed", "Failed to publish site event", "", map[string]interface{}{
			"type": event.Type,
		}, err)
	}
}
