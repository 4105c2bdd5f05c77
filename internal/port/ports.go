// Package port defines the interfaces between the service layer and its
// adapters.
package port

import (
	"context"

	"upboard/internal/domain"
)

// BankGateway is everything the dashboard needs from the Up API. The token is
// the caller's personal access token and is passed per call; implementations
// must not retain it.
type BankGateway interface {
	// Ping verifies the token and returns the customer id it belongs to.
	Ping(ctx context.Context, token string) (string, error)
	ListAccounts(ctx context.Context, token string) ([]domain.Account, error)
	ListCategories(ctx context.Context, token string) ([]domain.Category, error)
	// ListTransactions returns every transaction in the window. An empty
	// accountID lists across all accounts; an unbounded window lists the
	// full history.
	ListTransactions(ctx context.Context, token, accountID string, window domain.Window) ([]domain.Transaction, error)
}

// SessionIssuer issues and verifies dashboard session tokens.
type SessionIssuer interface {
	Issue(upToken string) (string, error)
	Verify(sessionToken string) (string, error)
}
