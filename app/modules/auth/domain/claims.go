// Package authdomain holds the authentication domain types.
package authdomain

import (
	"time"

	"github.com/ZRunner/Axobot-API-V2/pkg/types"
)

// Claims is the domain model carried by a session token.
type Claims struct {
	TokenID   string
	UserID    types.Snowflake
	ExpiresAt time.Time
	IssuedAt  time.Time
}

// IsExpired checks if the claims have expired.
func (c *Claims) IsExpired() bool {
	return time.Now().After(c.ExpiresAt)
}

// AuthenticatedUser is the identity attached to a request once its token
// has been checked.
type AuthenticatedUser struct {
	UserID       types.Snowflake `json:"user_id"`
	Username     string          `json:"username"`
	GlobalName   *string         `json:"global_name"`
	Avatar       string          `json:"avatar"`
	DiscordToken string          `json:"-"`
}
