package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"upboard/internal/domain"
	"upboard/internal/handler"
	"upboard/internal/infra/observability"
	"upboard/internal/service"
	"upboard/internal/session"

	"go.uber.org/zap"
)

const testSealKey = "00112233445566778899aabbccddeeff00112233445566778899aabbccddeeff"

// stubBank is a canned BankGateway for router tests.
type stubBank struct {
	pingErr error
}

func (s *stubBank) Ping(ctx context.Context, token string) (string, error) {
	if s.pingErr != nil {
		return "", s.pingErr
	}
	return "customer-1", nil
}

func (s *stubBank) ListAccounts(ctx context.Context, token string) ([]domain.Account, error) {
	return []domain.Account{
		{ID: "acc-1", DisplayName: "Spending", Type: domain.AccountTransactional},
	}, nil
}

func (s *stubBank) ListCategories(ctx context.Context, token string) ([]domain.Category, error) {
	return []domain.Category{{ID: "groceries", Name: "Groceries"}}, nil
}

func (s *stubBank) ListTransactions(ctx context.Context, token, accountID string, window domain.Window) ([]domain.Transaction, error) {
	return []domain.Transaction{
		{
			ID:         "tx-1",
			Status:     "SETTLED",
			Amount:     domain.Money{CurrencyCode: "AUD", ValueInBaseUnits: -450},
			CategoryID: "groceries",
			CreatedAt:  time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
		},
	}, nil
}

func newTestRouter(t *testing.T, bank *stubBank) (http.Handler, *session.Manager) {
	t.Helper()
	metrics := observability.NewMetrics()
	svc := service.NewDashboardService(bank, time.Minute, 10, metrics, zap.NewNop())
	sessions, err := session.NewManager("test-secret", testSealKey, time.Hour)
	if err != nil {
		t.Fatalf("session.NewManager() error = %v", err)
	}
	router := handler.NewRouter(svc, sessions, handler.RouterConfig{SessionTTL: time.Hour}, metrics, zap.NewNop())
	return router, sessions
}

func TestHealthz(t *testing.T) {
	router, _ := newTestRouter(t, &stubBank{})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestReadyz(t *testing.T) {
	router, _ := newTestRouter(t, &stubBank{})

	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	router, _ := newTestRouter(t, &stubBank{})

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestCreateSession(t *testing.T) {
	router, _ := newTestRouter(t, &stubBank{})

	body := bytes.NewBufferString(`{"token":"up:yeah:abc"}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/session", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		SessionToken string `json:"sessionToken"`
		CustomerID   string `json:"customerId"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.SessionToken == "" {
		t.Error("no session token in response")
	}
	if resp.CustomerID != "customer-1" {
		t.Errorf("customerId = %q, want customer-1", resp.CustomerID)
	}
}

func TestCreateSession_InvalidToken(t *testing.T) {
	router, _ := newTestRouter(t, &stubBank{pingErr: &domain.ErrInvalidToken{}})

	body := bytes.NewBufferString(`{"token":"bogus"}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/session", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestCreateSession_MissingToken(t *testing.T) {
	router, _ := newTestRouter(t, &stubBank{})

	body := bytes.NewBufferString(`{}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/session", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestDashboard_RequiresSession(t *testing.T) {
	router, _ := newTestRouter(t, &stubBank{})

	req := httptest.NewRequest(http.MethodGet, "/v1/dashboard?filter=this-month", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without a session, got %d", rec.Code)
	}
}

func TestDashboard_WithSession(t *testing.T) {
	router, sessions := newTestRouter(t, &stubBank{})

	sessionToken, err := sessions.Issue("up:yeah:abc")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/v1/dashboard?filter=this-month", nil)
	req.Header.Set("Authorization", "Bearer "+sessionToken)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var view struct {
		Filter     string  `json:"filter"`
		Total      float64 `json:"total"`
		TimeSeries []struct {
			Date   string  `json:"date"`
			Amount float64 `json:"amount"`
		} `json:"timeSeries"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&view); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if view.Filter != "this-month" {
		t.Errorf("filter = %q, want this-month", view.Filter)
	}
	if view.Total != 4.50 {
		t.Errorf("total = %v, want 4.50", view.Total)
	}
	if len(view.TimeSeries) != 1 || view.TimeSeries[0].Date != "01/03/2024" {
		t.Errorf("timeSeries = %+v, want one 01/03/2024 bucket", view.TimeSeries)
	}
}

func TestDashboard_UnknownFilter(t *testing.T) {
	router, sessions := newTestRouter(t, &stubBank{})
	sessionToken, err := sessions.Issue("up:yeah:abc")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/v1/dashboard?filter=fortnight", nil)
	req.Header.Set("Authorization", "Bearer "+sessionToken)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for unknown filter, got %d", rec.Code)
	}
}

func TestAccounts_WithSession(t *testing.T) {
	router, sessions := newTestRouter(t, &stubBank{})
	sessionToken, err := sessions.Issue("up:yeah:abc")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/v1/accounts", nil)
	req.Header.Set("Authorization", "Bearer "+sessionToken)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Accounts []domain.Account `json:"accounts"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Accounts) != 1 || resp.Accounts[0].ID != "acc-1" {
		t.Errorf("accounts = %+v, want acc-1", resp.Accounts)
	}
}

func TestTransactions_WithSession(t *testing.T) {
	router, sessions := newTestRouter(t, &stubBank{})
	sessionToken, err := sessions.Issue("up:yeah:abc")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/v1/transactions?filter=this-month", nil)
	req.Header.Set("Authorization", "Bearer "+sessionToken)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Transactions []domain.Transaction `json:"transactions"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Transactions) != 1 {
		t.Errorf("got %d transactions, want 1", len(resp.Transactions))
	}
}

func TestStats_WithSession(t *testing.T) {
	router, sessions := newTestRouter(t, &stubBank{})
	sessionToken, err := sessions.Issue("up:yeah:abc")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/v1/stats", nil)
	req.Header.Set("Authorization", "Bearer "+sessionToken)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestSession_GarbledTokenRejected(t *testing.T) {
	router, _ := newTestRouter(t, &stubBank{})

	req := httptest.NewRequest(http.MethodGet, "/v1/dashboard", nil)
	req.Header.Set("Authorization", "Bearer not-a-session")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}
