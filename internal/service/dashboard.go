// Package service provides the business logic layer (use cases).
// DashboardService orchestrates window resolution, upstream fetching and
// spend aggregation into the views the HTTP surface renders.
package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"upboard/internal/domain"
	"upboard/internal/infra/cache"
	"upboard/internal/infra/observability"
	"upboard/internal/infra/resilience"
	"upboard/internal/port"
	"upboard/internal/spend"
	"upboard/internal/timeframe"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var tracer = otel.Tracer("service/dashboard")

// lookups bundles the slow-changing upstream data cached per token.
type lookups struct {
	accounts   []domain.Account
	categories map[string]string
}

// DashboardService orchestrates dashboard reads against the bank gateway.
type DashboardService struct {
	bank     port.BankGateway
	cache    *cache.InMemory[lookups]
	bulkhead *resilience.Bulkhead
	metrics  *observability.Metrics
	logger   *zap.Logger
	now      func() time.Time
}

// NewDashboardService creates a dashboard service. Accounts and categories
// are cached for cacheTTL per token; maxConcurrency caps concurrent overview
// computations.
func NewDashboardService(bank port.BankGateway, cacheTTL time.Duration, maxConcurrency int, metrics *observability.Metrics, logger *zap.Logger) *DashboardService {
	return &DashboardService{
		bank:     bank,
		cache:    cache.New[lookups](cacheTTL),
		bulkhead: resilience.NewBulkhead(maxConcurrency),
		metrics:  metrics,
		logger:   logger,
		now:      time.Now,
	}
}

// Close releases the lookup cache's background resources.
func (s *DashboardService) Close() {
	s.cache.Close()
}

// DashboardView is the full dashboard payload: the resolved window plus the
// aggregated spend report, optionally narrowed to one category.
type DashboardView struct {
	Filter       domain.TimeFilter `json:"filter"`
	Window       domain.Window     `json:"window"`
	TotalDisplay string            `json:"totalDisplay"`
	domain.SpendReport
}

// VerifyToken checks an Up access token against the bank and returns the
// customer id it belongs to.
func (s *DashboardService) VerifyToken(ctx context.Context, token string) (string, error) {
	ctx, span := tracer.Start(ctx, "DashboardService.VerifyToken")
	defer span.End()

	return s.bank.Ping(ctx, token)
}

// Accounts returns the account snapshot, served from the lookup cache when
// fresh.
func (s *DashboardService) Accounts(ctx context.Context, token string) ([]domain.Account, error) {
	ctx, span := tracer.Start(ctx, "DashboardService.Accounts")
	defer span.End()

	lk, err := s.lookupsFor(ctx, token)
	if err != nil {
		return nil, err
	}
	return lk.accounts, nil
}

// Overview computes the dashboard for one filter. Accounts and categories
// come from the per-token cache; transactions are always fetched fresh so a
// window change never shows stale data. selectedCategory, when non-empty,
// narrows the category series and the listing but never the totals.
func (s *DashboardService) Overview(ctx context.Context, token string, filter domain.TimeFilter, selectedCategory string) (*DashboardView, error) {
	ctx, span := tracer.Start(ctx, "DashboardService.Overview")
	defer span.End()
	span.SetAttributes(attribute.String("dashboard.filter", string(filter)))

	start := time.Now()

	if filter == "" {
		filter = domain.FilterToday
	}
	window, err := timeframe.Resolve(filter, s.now())
	if err != nil {
		return nil, err
	}

	if err := s.bulkhead.Acquire(ctx); err != nil {
		return nil, err
	}
	defer s.bulkhead.Release()

	lk, err := s.lookupsFor(ctx, token)
	if err != nil {
		return nil, err
	}

	// Spending is read from the transactional account, matching how the
	// dashboard presents "your spending". No transactional account falls
	// back to the all-accounts stream.
	accountID := ""
	for _, a := range lk.accounts {
		if a.Type == domain.AccountTransactional {
			accountID = a.ID
			break
		}
	}

	txns, err := s.bank.ListTransactions(ctx, token, accountID, window)
	if err != nil {
		return nil, err
	}

	report := spend.Aggregate(txns, filter, lk.categories)
	view := &DashboardView{
		Filter:       filter,
		Window:       window,
		TotalDisplay: domain.FormatAmount(report.Total),
		SpendReport:  report.Narrow(selectedCategory),
	}

	s.metrics.RecordRequestDuration("overview", time.Since(start))
	s.logger.Debug("overview computed",
		zap.String("filter", string(filter)),
		zap.Int("transactions", len(txns)),
		zap.Float64("total", report.Total),
	)
	return view, nil
}

// Transactions returns just the filtered listing for one window.
func (s *DashboardService) Transactions(ctx context.Context, token string, filter domain.TimeFilter, selectedCategory string) ([]domain.Transaction, error) {
	ctx, span := tracer.Start(ctx, "DashboardService.Transactions")
	defer span.End()

	view, err := s.Overview(ctx, token, filter, selectedCategory)
	if err != nil {
		return nil, err
	}
	return view.Transactions, nil
}

// lookupsFor returns the cached accounts + category names for this token,
// fetching both in parallel on a miss. The cache key is a fingerprint, never
// the token itself.
func (s *DashboardService) lookupsFor(ctx context.Context, token string) (lookups, error) {
	key := fingerprint(token)
	if lk, ok := s.cache.Get(key); ok {
		s.metrics.IncrCacheHit("lookups")
		return lk, nil
	}
	s.metrics.IncrCacheMiss("lookups")

	var (
		accounts   []domain.Account
		categories []domain.Category
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		accounts, err = s.bank.ListAccounts(gctx, token)
		return err
	})
	g.Go(func() error {
		var err error
		categories, err = s.bank.ListCategories(gctx, token)
		return err
	})
	if err := g.Wait(); err != nil {
		return lookups{}, err
	}

	names := make(map[string]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}

	lk := lookups{accounts: accounts, categories: names}
	s.cache.Set(key, lk)
	return lk, nil
}

func fingerprint(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:16])
}
