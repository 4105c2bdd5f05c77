package handler

import (
	"net/http"

	"upboard/internal/domain"
	"upboard/internal/service"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// ============================================================
// Dashboard
// ============================================================

func dashboardHandler(svc *service.DashboardService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/dashboard")
		defer span.End()

		filter := domain.TimeFilter(r.URL.Query().Get("filter"))
		category := r.URL.Query().Get("category")
		span.SetAttributes(
			attribute.String("dashboard.filter", string(filter)),
			attribute.String("dashboard.category", category),
		)

		view, err := svc.Overview(ctx, UpTokenFromContext(ctx), filter, category)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, view)
	}
}

func transactionsHandler(svc *service.DashboardService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/transactions")
		defer span.End()

		filter := domain.TimeFilter(r.URL.Query().Get("filter"))
		category := r.URL.Query().Get("category")

		txns, err := svc.Transactions(ctx, UpTokenFromContext(ctx), filter, category)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		if txns == nil {
			txns = []domain.Transaction{}
		}
		writeJSON(w, http.StatusOK, map[string]any{"transactions": txns})
	}
}

func listAccountsHandler(svc *service.DashboardService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/accounts")
		defer span.End()

		accounts, err := svc.Accounts(ctx, UpTokenFromContext(ctx))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		if accounts == nil {
			accounts = []domain.Account{}
		}
		writeJSON(w, http.StatusOK, map[string]any{"accounts": accounts})
	}
}
