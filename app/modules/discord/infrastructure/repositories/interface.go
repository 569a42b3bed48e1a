package discorddb

import (
	"context"

	discorddomain "github.com/ZRunner/Axobot-API-V2/app/modules/discord/domain"
	"github.com/ZRunner/Axobot-API-V2/pkg/types"
)

// XPRepository serves leaderboard pages, already sorted by descending XP.
type XPRepository interface {
	GetGlobalLeaderboard(ctx context.Context, page, limit int) ([]discorddomain.LeaderboardRow, error)
	CountGlobalPlayers(ctx context.Context) (int, error)
	GetGuildLeaderboard(ctx context.Context, guildID types.Snowflake, page, limit int) ([]discorddomain.LeaderboardRow, error)
	CountGuildPlayers(ctx context.Context, guildID types.Snowflake) (int, error)
}

// UserCacheRepository reads locally persisted Discord user display data.
type UserCacheRepository interface {
	GetCachedUsers(ctx context.Context, userIDs []types.Snowflake) ([]discorddomain.RawUserData, error)
}
