package upbank

import (
	"context"

	"upboard/internal/domain"

	"go.opentelemetry.io/otel/attribute"
)

// ListCategories fetches Up's full category taxonomy. The list is global (not
// per customer) but the endpoint still requires a valid token.
func (c *Client) ListCategories(ctx context.Context, token string) ([]domain.Category, error) {
	ctx, span := tracer.Start(ctx, "upbank.ListCategories")
	defer span.End()

	var resp listCategoriesResponse
	if err := c.call(ctx, "categories", token, c.baseURL+"/categories", &resp); err != nil {
		return nil, err
	}

	categories := make([]domain.Category, 0, len(resp.Data))
	for _, r := range resp.Data {
		categories = append(categories, r.toDomain())
	}

	span.SetAttributes(attribute.Int("categories.count", len(categories)))
	return categories, nil
}
