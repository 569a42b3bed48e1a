package authdb

import (
	"context"
)

// Repository persists issued session tokens.
type Repository interface {
	// StoreToken records a freshly issued session token.
	StoreToken(ctx context.Context, token *APIToken) error
	// GetToken returns the stored row for a token id, or nil when the row
	// does not exist or has expired.
	GetToken(ctx context.Context, tokenID string) (*APIToken, error)
	// DeleteToken removes one stored token.
	DeleteToken(ctx context.Context, tokenID string) error
	// DeleteExpiredTokens purges rows past their expiry and reports how
	// many were removed.
	DeleteExpiredTokens(ctx context.Context) (int, error)
}
