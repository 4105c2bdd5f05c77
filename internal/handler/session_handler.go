package handler

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"upboard/internal/domain"
	"upboard/internal/infra/observability"
	"upboard/internal/service"
	"upboard/internal/session"

	"go.uber.org/zap"
)

// ============================================================
// Session (token entry)
// ============================================================

type createSessionRequest struct {
	Token string `json:"token"`
}

type createSessionResponse struct {
	SessionToken string `json:"sessionToken"`
	CustomerID   string `json:"customerId"`
	ExpiresIn    int64  `json:"expiresIn"`
}

func createSessionHandler(svc *service.DashboardService, sessions *session.Manager, sessionTTL time.Duration, metrics *observability.Metrics, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/session")
		defer span.End()

		var req createSessionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		req.Token = strings.TrimSpace(req.Token)
		if req.Token == "" {
			handleServiceError(w, &domain.ErrValidation{Field: "token", Message: "required"}, logger)
			return
		}

		customerID, err := svc.VerifyToken(ctx, req.Token)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		sessionToken, err := sessions.Issue(req.Token)
		if err != nil {
			logger.Error("session issue failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "internal server error")
			return
		}

		metrics.IncrSessionIssued()
		logger.Info("session issued", zap.String("customer_id", customerID))
		writeJSON(w, http.StatusCreated, createSessionResponse{
			SessionToken: sessionToken,
			CustomerID:   customerID,
			ExpiresIn:    int64(sessionTTL.Seconds()),
		})
	}
}
