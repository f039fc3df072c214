package http

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/YelzhanWeb/goodplatters/internal/adapter/logger"
	"github.com/YelzhanWeb/goodplatters/internal/interfaces"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type RouterConfig struct {
	Content    interfaces.ContentService
	Booking    interfaces.BookingService
	Auth       interfaces.AuthService
	Health     Pinger
	SessionTTL time.Duration
	Logger     logger.Logger
}

// NewRouter wires every page, API route and probe behind the shared middleware.
func NewRouter(cfg RouterConfig) http.Handler {
	authHandler := NewAuthHandler(cfg.Auth, cfg.SessionTTL, cfg.Logger)
	site := NewSiteHandler(cfg.Content, cfg.Booking, cfg.Logger)
	admin := NewAdminHandler(cfg.Content, cfg.Booking, cfg.Auth, cfg.Logger)
	pages := NewPageHandler(site, authHandler, cfg.Logger)

	mux := http.NewServeMux()

	// Публичные страницы
	mux.HandleFunc("GET /{$}", pages.Home)
	mux.HandleFunc("GET /reservations", pages.Reservations)
	mux.HandleFunc("GET /gallery", pages.Gallery)
	mux.HandleFunc("GET /about", pages.About)
	mux.HandleFunc("GET /contact", pages.Contact)
	mux.HandleFunc("GET /legal", pages.Legal)
	mux.HandleFunc("GET /login", pages.Login)

	// Страницы админки
	page := func(pattern, name string, load func(r *http.Request) (interface{}, error)) {
		mux.Handle(pattern, authHandler.RequirePage(pages.Admin(name, load)))
	}
	page("GET /admin", "dashboard", dashboardPage(cfg.Booking))
	page("GET /admin/reservations", "reservations", reservationsPage(cfg.Booking))
	page("GET /admin/inquiries", "inquiries", inquiriesPage(cfg.Booking))
	page("GET /admin/settings", "settings", settingsPage(cfg.Content))
	page("GET /admin/security", "security", securityPage)
	page("GET /admin/menu", "menu", menuPage(cfg.Content))
	page("GET /admin/story", "story", storyPage(cfg.Content))

	// Публичный API
	mux.HandleFunc("GET /api/settings", site.Settings)
	mux.HandleFunc("GET /api/menu", site.Menu)
	mux.HandleFunc("GET /api/contact", site.Contact)
	mux.HandleFunc("POST /api/reservations", site.SubmitReservation)
	mux.HandleFunc("POST /api/inquiries", site.SubmitInquiry)
	mux.HandleFunc("POST /api/login", authHandler.Login)
	mux.HandleFunc("POST /api/logout", authHandler.Logout)

	// API админки
	api := func(pattern string, h http.HandlerFunc) {
		mux.Handle(pattern, authHandler.RequireAdmin(h))
	}
	api("GET /api/admin/dashboard", admin.Dashboard)
	api("GET /api/admin/reservations", admin.Reservations)
	api("GET /api/admin/reservations/export", admin.ExportReservations)
	api("PATCH /api/admin/reservations/{id}/status", admin.UpdateReservationStatus)
	api("GET /api/admin/inquiries", admin.Inquiries)
	api("DELETE /api/admin/inquiries/{id}", admin.DeleteInquiry)
	api("POST /api/admin/inquiries/{id}/suggest-reply", admin.SuggestInquiryReply)
	api("GET /api/admin/settings", admin.Settings)
	api("PUT /api/admin/settings", admin.UpdateSettings)
	api("PUT /api/admin/story", admin.UpdateStory)
	api("PUT /api/admin/whatsapp", admin.UpdateWhatsApp)
	api("GET /api/admin/menu", admin.Menu)
	api("POST /api/admin/menu", admin.CreateMenuItem)
	api("POST /api/admin/menu/suggest-description", admin.SuggestMenuDescription)
	api("PUT /api/admin/menu/{id}", admin.PutMenuItem)
	api("DELETE /api/admin/menu/{id}", admin.DeleteMenuItem)
	api("PUT /api/admin/security/password", admin.ChangePassword)
	api("GET /api/admin/snapshot", admin.Snapshot)
	api("PUT /api/admin/snapshot", admin.ReplaceSnapshot)

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := cfg.Health.Ping(r.Context()); err != nil {
			cfg.Logger.Error("health_check_failed", "Store is unreachable", RequestID(r.Context()), nil, err)
			respondJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.Handle("GET /metrics", promhttp.Handler())

	return Chain(mux,
		RecoveryMiddleware(cfg.Logger),
		LoggingMiddleware(cfg.Logger),
		MetricsMiddleware(),
	)
}
