package handler

import (
	"net/http"
	"time"

	"upboard/internal/infra/observability"
	"upboard/internal/service"
	"upboard/internal/session"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("handler")

// RouterConfig carries the wiring a router needs beyond its services.
type RouterConfig struct {
	SessionTTL time.Duration
}

// NewRouter creates the HTTP router with all routes and middleware.
func NewRouter(svc *service.DashboardService, sessions *session.Manager, cfg RouterConfig, metrics *observability.Metrics, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// --- Middleware ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(observability.ZapLoggerMiddleware(logger))
	r.Use(observability.TracingMiddleware)
	r.Use(requestCounterMiddleware(metrics))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Heartbeat("/ping"))

	// --- Operational endpoints ---
	r.Get("/healthz", healthzHandler())
	r.Get("/readyz", readyzHandler())
	r.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	// --- API v1 ---
	r.Route("/v1", func(r chi.Router) {

		// =============================================
		// Token entry: verify against the bank, issue a session
		// POST /v1/session
		// =============================================
		r.Post("/session", createSessionHandler(svc, sessions, cfg.SessionTTL, metrics, logger))

		// =============================================
		// Dashboard reads (session required)
		// =============================================
		r.Group(func(r chi.Router) {
			r.Use(SessionMiddleware(sessions, logger))

			r.Get("/accounts", listAccountsHandler(svc, logger))
			r.Get("/dashboard", dashboardHandler(svc, logger))
			r.Get("/transactions", transactionsHandler(svc, logger))
			r.Get("/stats", usageStatsHandler(metrics))
		})
	})

	return r
}

// ============================================================
// Operational handlers
// ============================================================

func healthzHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	}
}

func readyzHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

func usageStatsHandler(metrics *observability.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, metrics.GetUsageSnapshot())
	}
}
