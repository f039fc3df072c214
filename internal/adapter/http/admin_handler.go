package http

import (
	"bytes"
	"errors"
	"net/http"
	"time"

	"github.com/YelzhanWeb/goodplatters/internal/adapter/logger"
	"github.com/YelzhanWeb/goodplatters/internal/domain"
	"github.com/YelzhanWeb/goodplatters/internal/interfaces"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// AdminHandler serves the API behind the admin session.
type AdminHandler struct {
	content interfaces.ContentService
	booking interfaces.BookingService
	auth    interfaces.AuthService
	logger  logger.Logger
}

func NewAdminHandler(content interfaces.ContentService, booking interfaces.BookingService, auth interfaces.AuthService, logger logger.Logger) *AdminHandler {
	return &AdminHandler{
		content: content,
		booking: booking,
		auth:    auth,
		logger:  logger,
	}
}

func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.booking.Dashboard(r.Context())
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}

func (h *AdminHandler) Reservations(w http.ResponseWriter, r *http.Request) {
	reservations, err := h.booking.Reservations(r.Context())
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, reservations)
}

func (h *AdminHandler) UpdateReservationStatus(w http.ResponseWriter, r *http.Request) {
	var req StatusRequest
	if err := decodeRequest(w, r, &req); err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	reservation, err := h.booking.UpdateReservationStatus(r.Context(), r.PathValue("id"), req.Status)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, reservation)
}

func (h *AdminHandler) ExportReservations(w http.ResponseWriter, r *http.Request) {
	// buffer the workbook so a failure can still be reported as JSON
	var buf bytes.Buffer
	if err := h.booking.ExportReservations(r.Context(), &buf); err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	filename := "reservations-" + time.Now().UTC().Format("20060102") + ".xlsx"
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

func (h *AdminHandler) Inquiries(w http.ResponseWriter, r *http.Request) {
	inquiries, err := h.booking.Inquiries(r.Context())
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, inquiries)
}

func (h *AdminHandler) DeleteInquiry(w http.ResponseWriter, r *http.Request) {
	if err := h.booking.DeleteInquiry(r.Context(), r.PathValue("id")); err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AdminHandler) SuggestInquiryReply(w http.ResponseWriter, r *http.Request) {
	text, err := h.booking.SuggestInquiryReply(r.Context(), r.PathValue("id"))
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, SuggestionResponse{Text: text})
}

func (h *AdminHandler) Settings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.content.Settings(r.Context())
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, settings)
}

func (h *AdminHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var settings domain.RestaurantSettings
	if err := decodeRequest(w, r, &settings); err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	saved, err := h.content.UpdateSettings(r.Context(), &settings)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, saved)
}

func (h *AdminHandler) UpdateStory(w http.ResponseWriter, r *http.Request) {
	var req StoryRequest
	if err := decodeRequest(w, r, &req); err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	saved, err := h.content.UpdateStory(r.Context(), req.StoryImage, req.StoryText, req.Version)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, saved)
}

func (h *AdminHandler) UpdateWhatsApp(w http.ResponseWriter, r *http.Request) {
	var req WhatsAppRequest
	if err := decodeRequest(w, r, &req); err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	if err := h.content.SetWhatsAppNumber(r.Context(), req.Number); err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, req)
}

func (h *AdminHandler) Menu(w http.ResponseWriter, r *http.Request) {
	menu, err := h.content.Menu(r.Context())
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, menu)
}

// CreateMenuItem appends a new item; any id in the body is replaced.
func (h *AdminHandler) CreateMenuItem(w http.ResponseWriter, r *http.Request) {
	var item domain.MenuItem
	if err := decodeRequest(w, r, &item); err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	item.ID = ""
	item.Version = 0

	saved, _, err := h.content.UpsertMenuItem(r.Context(), &item)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	respondJSON(w, http.StatusCreated, saved)
}

// PutMenuItem updates the item with the path id in place or appends it.
func (h *AdminHandler) PutMenuItem(w http.ResponseWriter, r *http.Request) {
	var item domain.MenuItem
	if err := decodeRequest(w, r, &item); err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	item.ID = r.PathValue("id")

	saved, created, err := h.content.UpsertMenuItem(r.Context(), &item)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	respondJSON(w, status, saved)
}

func (h *AdminHandler) DeleteMenuItem(w http.ResponseWriter, r *http.Request) {
	if err := h.content.DeleteMenuItem(r.Context(), r.PathValue("id")); err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AdminHandler) SuggestMenuDescription(w http.ResponseWriter, r *http.Request) {
	var req DescriptionRequest
	if err := decodeRequest(w, r, &req); err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, SuggestionResponse{
		Text: h.content.SuggestMenuDescription(r.Context(), req.Name, req.Category),
	})
}

func (h *AdminHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req PasswordRequest
	if err := decodeRequest(w, r, &req); err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	err := h.auth.ChangePassword(r.Context(), req.CurrentPassword, req.NewPassword, req.ConfirmPassword)
	if errors.Is(err, domain.ErrInvalidCredentials) {
		// reported against the form field, not as a 401
		err = domain.ValidationErrors{{Field: "currentPassword", Message: "current password is incorrect"}}
	}
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Password updated successfully"})
}

func (h *AdminHandler) Snapshot(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.content.Load(r.Context())
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, snapshot)
}

func (h *AdminHandler) ReplaceSnapshot(w http.ResponseWriter, r *http.Request) {
	var snapshot domain.Snapshot
	if err := decodeRequest(w, r, &snapshot); err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	if err := h.content.Save(r.Context(), &snapshot); err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
