package http

import (
	"net/http"

	"github.com/YelzhanWeb/goodplatters/internal/adapter/logger"
	"github.com/YelzhanWeb/goodplatters/internal/app/content"
	"github.com/YelzhanWeb/goodplatters/internal/domain"
	"github.com/YelzhanWeb/goodplatters/internal/interfaces"
)

// SiteHandler serves the public API used by the restaurant pages.
type SiteHandler struct {
	content interfaces.ContentService
	booking interfaces.BookingService
	logger  logger.Logger
}

func NewSiteHandler(content interfaces.ContentService, booking interfaces.BookingService, logger logger.Logger) *SiteHandler {
	return &SiteHandler{
		content: content,
		booking: booking,
		logger:  logger,
	}
}

type MenuResponse struct {
	Categories []string           `json:"categories"`
	Items      []*domain.MenuItem `json:"items"`
}

type ContactResponse struct {
	BrandName      string              `json:"brandName"`
	Phone          string              `json:"phone"`
	Email          string              `json:"email"`
	Address        string              `json:"address"`
	OpeningHours   domain.OpeningHours `json:"openingHours"`
	WhatsAppNumber string              `json:"whatsappNumber"`
}

func (h *SiteHandler) Settings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.content.Settings(r.Context())
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, settings)
}

func (h *SiteHandler) Menu(w http.ResponseWriter, r *http.Request) {
	menu, err := h.content.Menu(r.Context())
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, MenuResponse{
		Categories: content.Categories(menu),
		Items:      menu,
	})
}

func (h *SiteHandler) Contact(w http.ResponseWriter, r *http.Request) {
	contact, err := h.contact(r)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, contact)
}

func (h *SiteHandler) contact(r *http.Request) (*ContactResponse, error) {
	settings, err := h.content.Settings(r.Context())
	if err != nil {
		return nil, err
	}
	number, err := h.content.WhatsAppNumber(r.Context())
	if err != nil {
		return nil, err
	}
	return &ContactResponse{
		BrandName:      settings.BrandName,
		Phone:          settings.Phone,
		Email:          settings.Email,
		Address:        settings.Address,
		OpeningHours:   settings.OpeningHours,
		WhatsAppNumber: number,
	}, nil
}

func (h *SiteHandler) SubmitReservation(w http.ResponseWriter, r *http.Request) {
	var req ReservationRequest
	if err := decodeRequest(w, r, &req); err != nil {
		h.logger.Debug("validation_failed", "Reservation request rejected", RequestID(r.Context()), map[string]interface{}{
			"error": err.Error(),
		})
		respondError(w, r, h.logger, err)
		return
	}

	reservation, err := h.booking.SubmitReservation(r.Context(), interfaces.SubmitReservationCommand{
		Date:            req.Date,
		Time:            req.Time,
		Guests:          req.Guests,
		Name:            req.Name,
		Email:           req.Email,
		Phone:           req.Phone,
		SpecialRequests: req.SpecialRequests,
	})
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	respondJSON(w, http.StatusCreated, ReservationResponse{
		ID:     reservation.ID,
		Status: reservation.Status,
	})
}

func (h *SiteHandler) SubmitInquiry(w http.ResponseWriter, r *http.Request) {
	var req InquiryRequest
	if err := decodeRequest(w, r, &req); err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	inquiry, err := h.booking.SubmitInquiry(r.Context(), interfaces.SubmitInquiryCommand{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	})
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]string{"id": inquiry.ID})
}
