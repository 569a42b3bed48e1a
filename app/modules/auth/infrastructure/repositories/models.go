package authdb

import (
	"time"

	"github.com/uptrace/bun"

	"github.com/ZRunner/Axobot-API-V2/pkg/types"
)

// APIToken is one issued session token, stored alongside the Discord OAuth
// access token it was exchanged from. Rows past their expiry are ignored by
// lookups and purged opportunistically.
type APIToken struct {
	bun.BaseModel `bun:"table:api_tokens,alias:at"`

	ID           int64           `bun:"id,pk,autoincrement"`
	TokenID      string          `bun:"token_id,notnull,unique,type:varchar(36)"`
	UserID       types.Snowflake `bun:"user_id,notnull,type:varchar(20)"`
	APIToken     string          `bun:"api_token,notnull"`
	DiscordToken string          `bun:"discord_token,notnull"`
	ExpiresAt    time.Time       `bun:"expires_at,notnull"`
	CreatedAt    time.Time       `bun:"created_at,nullzero,notnull,default:current_timestamp"`
}
