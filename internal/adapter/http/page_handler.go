package http

import (
	"net/http"

	"github.com/YelzhanWeb/goodplatters/internal/adapter/logger"
	"github.com/YelzhanWeb/goodplatters/internal/app/content"
	"github.com/YelzhanWeb/goodplatters/internal/domain"
	"github.com/YelzhanWeb/goodplatters/internal/interfaces"
)

// PageHandler returns the data each site page renders, as JSON.
type PageHandler struct {
	site   *SiteHandler
	auth   *AuthHandler
	logger logger.Logger
}

func NewPageHandler(site *SiteHandler, auth *AuthHandler, logger logger.Logger) *PageHandler {
	return &PageHandler{
		site:   site,
		auth:   auth,
		logger: logger,
	}
}

type HomePage struct {
	Settings       *domain.RestaurantSettings `json:"settings"`
	ChefSpecials   []*domain.MenuItem         `json:"chefSpecials"`
	WhatsAppNumber string                     `json:"whatsappNumber"`
}

type ReservationPage struct {
	MinGuests    int                 `json:"minGuests"`
	MaxGuests    int                 `json:"maxGuests"`
	OpeningHours domain.OpeningHours `json:"openingHours"`
}

type AboutPage struct {
	BrandName  string   `json:"brandName"`
	Image      string   `json:"image"`
	Paragraphs []string `json:"paragraphs"`
}

type LegalPage struct {
	BrandName string                 `json:"brandName"`
	Sections  []content.LegalSection `json:"sections"`
}

type AdminPage struct {
	Page string      `json:"page"`
	Data interface{} `json:"data"`
}

func (h *PageHandler) Home(w http.ResponseWriter, r *http.Request) {
	settings, err := h.site.content.Settings(r.Context())
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	menu, err := h.site.content.Menu(r.Context())
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	number, err := h.site.content.WhatsAppNumber(r.Context())
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, HomePage{
		Settings:       settings,
		ChefSpecials:   content.ChefSpecials(menu),
		WhatsAppNumber: number,
	})
}

func (h *PageHandler) Reservations(w http.ResponseWriter, r *http.Request) {
	settings, err := h.site.content.Settings(r.Context())
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, ReservationPage{
		MinGuests:    domain.MinGuests,
		MaxGuests:    domain.MaxGuests,
		OpeningHours: settings.OpeningHours,
	})
}

func (h *PageHandler) Gallery(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{"images": content.GalleryImages()})
}

func (h *PageHandler) About(w http.ResponseWriter, r *http.Request) {
	settings, err := h.site.content.Settings(r.Context())
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, AboutPage{
		BrandName:  settings.BrandName,
		Image:      settings.StoryImage,
		Paragraphs: settings.StoryParagraphs(),
	})
}

func (h *PageHandler) Contact(w http.ResponseWriter, r *http.Request) {
	h.site.Contact(w, r)
}

func (h *PageHandler) Legal(w http.ResponseWriter, r *http.Request) {
	settings, err := h.site.content.Settings(r.Context())
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, LegalPage{
		BrandName: settings.BrandName,
		Sections:  content.LegalSections(settings.BrandName),
	})
}

func (h *PageHandler) Login(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{"authenticated": h.auth.Authenticated(r)})
}

// Admin renders the data returned by load as the named admin page.
func (h *PageHandler) Admin(page string, load func(r *http.Request) (interface{}, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := load(r)
		if err != nil {
			respondError(w, r, h.logger, err)
			return
		}
		respondJSON(w, http.StatusOK, AdminPage{Page: page, Data: data})
	}
}

func dashboardPage(booking interfaces.BookingService) func(r *http.Request) (interface{}, error) {
	return func(r *http.Request) (interface{}, error) {
		return booking.Dashboard(r.Context())
	}
}

func reservationsPage(booking interfaces.BookingService) func(r *http.Request) (interface{}, error) {
	return func(r *http.Request) (interface{}, error) {
		return booking.Reservations(r.Context())
	}
}

func inquiriesPage(booking interfaces.BookingService) func(r *http.Request) (interface{}, error) {
	return func(r *http.Request) (interface{}, error) {
		return booking.Inquiries(r.Context())
	}
}

func settingsPage(c interfaces.ContentService) func(r *http.Request) (interface{}, error) {
	return func(r *http.Request) (interface{}, error) {
		settings, err := c.Settings(r.Context())
		if err != nil {
			return nil, err
		}
		number, err := c.WhatsAppNumber(r.Context())
		if err != nil {
			return nil, err
		}
		return map[string]interface{}{"settings": settings, "whatsappNumber": number}, nil
	}
}

func menuPage(c interfaces.ContentService) func(r *http.Request) (interface{}, error) {
	return func(r *http.Request) (interface{}, error) {
		menu, err := c.Menu(r.Context())
		if err != nil {
			return nil, err
		}
		return MenuResponse{Categories: content.Categories(menu), Items: menu}, nil
	}
}

func storyPage(c interfaces.ContentService) func(r *http.Request) (interface{}, error) {
	return func(r *http.Request) (interface{}, error) {
		settings, err := c.Settings(r.Context())
		if err != nil {
			return nil, err
		}
		return StoryRequest{StoryImage: settings.StoryImage, StoryText: settings.StoryText, Version: settings.Version}, nil
	}
}

func securityPage(r *http.Request) (interface{}, error) {
	return map[string]interface{}{"minPasswordLength": domain.MinPasswordLength}, nil
}
