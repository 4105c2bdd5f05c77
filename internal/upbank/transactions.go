package upbank

import (
	"context"
	"net/url"
	"strconv"

	"upboard/internal/domain"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// rfc3339Milli keeps fractional seconds in filter params. time.RFC3339 would
// truncate the inclusive end-of-day bound (23:59:59.999…) to 23:59:59,
// dropping the final second's sub-second transactions from the window.
const rfc3339Milli = "2006-01-02T15:04:05.000Z07:00"

// ListTransactions fetches every transaction in the window, following
// "links.next" until exhausted. An empty accountID lists across all accounts.
// An unbounded window sends no filter params at all; the API then returns the
// full history.
func (c *Client) ListTransactions(ctx context.Context, token, accountID string, window domain.Window) ([]domain.Transaction, error) {
	ctx, span := tracer.Start(ctx, "upbank.ListTransactions")
	defer span.End()

	base := c.baseURL + "/transactions"
	if accountID != "" {
		base = c.baseURL + "/accounts/" + url.PathEscape(accountID) + "/transactions"
	}

	q := url.Values{}
	q.Set("page[size]", strconv.Itoa(c.pageSize))
	if window.Bounded {
		q.Set("filter[since]", window.Since.Format(rfc3339Milli))
		q.Set("filter[until]", window.Until.Format(rfc3339Milli))
	}

	var (
		txns  []domain.Transaction
		pages int
	)
	next := base + "?" + q.Encode()
	for next != "" {
		var page listTransactionsResponse
		if err := c.call(ctx, "transactions", token, next, &page); err != nil {
			return nil, err
		}
		pages++
		for _, r := range page.Data {
			txns = append(txns, r.toDomain())
		}
		next = ""
		if page.Links.Next != nil {
			next = *page.Links.Next
		}
	}

	c.metrics.AddPagesFetched(pages)
	span.SetAttributes(
		attribute.Int("transactions.count", len(txns)),
		attribute.Int("transactions.pages", pages),
	)
	c.logger.Debug("up api: transactions fetched",
		zap.Int("count", len(txns)),
		zap.Int("pages", pages),
	)
	return txns, nil
}
