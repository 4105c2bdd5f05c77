package upbank

import (
	"context"

	"upboard/internal/domain"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// Ping verifies the token against the Up API and returns the customer id it
// belongs to.
func (c *Client) Ping(ctx context.Context, token string) (string, error) {
	ctx, span := tracer.Start(ctx, "upbank.Ping")
	defer span.End()

	var resp pingResponse
	if err := c.call(ctx, "ping", token, c.baseURL+"/util/ping", &resp); err != nil {
		return "", err
	}
	return resp.Meta.ID, nil
}

// ListAccounts fetches all accounts owned by the token's customer, following
// pagination links.
func (c *Client) ListAccounts(ctx context.Context, token string) ([]domain.Account, error) {
	ctx, span := tracer.Start(ctx, "upbank.ListAccounts")
	defer span.End()

	var accounts []domain.Account
	next := c.baseURL + "/accounts"
	for next != "" {
		var page listAccountsResponse
		if err := c.call(ctx, "accounts", token, next, &page); err != nil {
			return nil, err
		}
		for _, r := range page.Data {
			accounts = append(accounts, r.toDomain())
		}
		next = ""
		if page.Links.Next != nil {
			next = *page.Links.Next
		}
	}

	span.SetAttributes(attribute.Int("accounts.count", len(accounts)))
	c.logger.Debug("up api: accounts fetched", zap.Int("count", len(accounts)))
	return accounts, nil
}
