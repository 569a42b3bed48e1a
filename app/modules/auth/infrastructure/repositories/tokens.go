// Package authdb implements session token storage over bun.
package authdb

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/uptrace/bun"
)

// AuthDBImpl stores and checks issued session tokens.
type AuthDBImpl struct {
	DB *bun.DB
}

var _ Repository = (*AuthDBImpl)(nil)

// StoreToken records a freshly issued session token.
func (db *AuthDBImpl) StoreToken(ctx context.Context, token *APIToken) error {
	_, err := db.DB.NewInsert().
		Model(token).
		Exec(ctx)
	return err
}

// GetToken returns the stored row for a token id. Missing and expired rows
// both resolve to (nil, nil).
func (db *AuthDBImpl) GetToken(ctx context.Context, tokenID string) (*APIToken, error) {
	var row APIToken
	err := db.DB.NewSelect().
		Model(&row).
		Where("token_id = ?", tokenID).
		Where("expires_at > ?", time.Now()).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// DeleteToken removes one stored token.
func (db *AuthDBImpl) DeleteToken(ctx context.Context, tokenID string) error {
	_, err := db.DB.NewDelete().
		Model((*APIToken)(nil)).
		Where("token_id = ?", tokenID).
		Exec(ctx)
	return err
}

// DeleteExpiredTokens purges rows past their expiry.
func (db *AuthDBImpl) DeleteExpiredTokens(ctx context.Context) (int, error) {
	res, err := db.DB.NewDelete().
		Model((*APIToken)(nil)).
		Where("expires_at <= ?", time.Now()).
		Exec(ctx)
	if err != nil {
		return 0, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(affected), nil
}
