package httpapi

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"starcast/internal/bootstrap/logging"
	"starcast/internal/ports"
	horoscopeuc "starcast/internal/usecase/horoscope"
)

// Service is the slice of the horoscope usecase the HTTP surface needs.
type Service interface {
	Daily(ctx context.Context, in horoscopeuc.DailyInput) (json.RawMessage, error)
	Personalized(ctx context.Context, in horoscopeuc.PersonalizedInput) (json.RawMessage, error)
	Subscribe(ctx context.Context, in horoscopeuc.SubscribeInput) (ports.Subscriber, error)
	SaveChart(ctx context.Context, in horoscopeuc.SaveChartInput) (ports.NatalChart, error)
	SendWeeklyAlerts(ctx context.Context) (int, error)
}

type handler struct {
	svc       Service
	publicURL string
}

// NewRouter wires the inbound HTTP surface.
func NewRouter(svc Service, publicURL string) http.Handler {
	h := &handler{
		svc:       svc,
		publicURL: publicURL,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(accessLog)
	r.Use(middleware.Recoverer)

	r.Get("/api/daily", h.daily)
	r.Post("/api/personalized", h.personalized)
	r.Post("/api/subscribe", h.subscribe)
	r.Post("/api/me/save-chart", h.saveChart)
	r.Post("/tasks/send-weekly-alerts", h.sendWeeklyAlerts)

	r.Get("/healthz", h.healthz)
	r.Get("/robots.txt", h.robots)
	r.Get("/sitemap.xml", h.sitemap)
	r.Get("/daily/{sign}", h.signPage)
	r.Get("/", h.landing)

	return r
}

func accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		logging.Info(r.Context(), "http request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", ww.Status()),
			slog.Duration("duration", time.Since(start)),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}

func (h *handler) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
