package discorddb

import (
	"time"

	"github.com/uptrace/bun"

	"github.com/ZRunner/Axobot-API-V2/pkg/types"
)

// GlobalXP is one user's XP on the cross-guild leaderboard.
type GlobalXP struct {
	bun.BaseModel `bun:"table:xp,alias:x"`

	UserID types.Snowflake `bun:"user_id,pk,type:varchar(20)"`
	XP     int64           `bun:"xp,notnull,default:0"`
	Banned bool            `bun:"banned,notnull,default:false"`
}

// GuildXP is one member's XP inside one guild, for guilds running a local
// or MEE6-style leaderboard.
type GuildXP struct {
	bun.BaseModel `bun:"table:xp_guild,alias:xg"`

	GuildID types.Snowflake `bun:"guild_id,pk,type:varchar(20)"`
	UserID  types.Snowflake `bun:"user_id,pk,type:varchar(20)"`
	XP      int64           `bun:"xp,notnull,default:0"`
}

// CachedUser is a locally persisted copy of a Discord user's display data,
// refreshed by the bot so leaderboard pages rarely hit the Discord API.
type CachedUser struct {
	bun.BaseModel `bun:"table:users_cache,alias:uc"`

	UserID     types.Snowflake `bun:"user_id,pk,type:varchar(20)"`
	Username   string          `bun:"username,notnull"`
	GlobalName *string         `bun:"global_name"`
	AvatarHash *string         `bun:"avatar_hash"`
	IsBot      bool            `bun:"is_bot,notnull,default:false"`
	SavedAt    time.Time       `bun:"saved_at,nullzero,notnull,default:current_timestamp"`
}
