// Package discorddb implements the discord module storage over bun.
package discorddb

import (
	"context"

	"github.com/uptrace/bun"

	discorddomain "github.com/ZRunner/Axobot-API-V2/app/modules/discord/domain"
	"github.com/ZRunner/Axobot-API-V2/pkg/types"
)

// XPDBImpl reads the XP tables maintained by the bot.
type XPDBImpl struct {
	DB *bun.DB
}

var _ XPRepository = (*XPDBImpl)(nil)

// GetGlobalLeaderboard returns one page of the cross-guild leaderboard,
// sorted by descending XP, banned players excluded. Ties keep the storage
// order, which makes pagination stable.
func (db *XPDBImpl) GetGlobalLeaderboard(ctx context.Context, page, limit int) ([]discorddomain.LeaderboardRow, error) {
	var rows []GlobalXP
	err := db.DB.NewSelect().
		Model(&rows).
		Where("banned = FALSE").
		Order("xp DESC").
		Offset(page * limit).
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	board := make([]discorddomain.LeaderboardRow, 0, len(rows))
	for _, row := range rows {
		board = append(board, discorddomain.LeaderboardRow{UserID: row.UserID, XP: row.XP})
	}
	return board, nil
}

func (db *XPDBImpl) CountGlobalPlayers(ctx context.Context) (int, error) {
	return db.DB.NewSelect().
		Model((*GlobalXP)(nil)).
		Where("banned = FALSE").
		Count(ctx)
}

// GetGuildLeaderboard returns one page of a guild's local leaderboard.
func (db *XPDBImpl) GetGuildLeaderboard(ctx context.Context, guildID types.Snowflake, page, limit int) ([]discorddomain.LeaderboardRow, error) {
	var rows []GuildXP
	err := db.DB.NewSelect().
		Model(&rows).
		Where("guild_id = ?", guildID).
		Order("xp DESC").
		Offset(page * limit).
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	board := make([]discorddomain.LeaderboardRow, 0, len(rows))
	for _, row := range rows {
		board = append(board, discorddomain.LeaderboardRow{UserID: row.UserID, XP: row.XP})
	}
	return board, nil
}

func (db *XPDBImpl) CountGuildPlayers(ctx context.Context, guildID types.Snowflake) (int, error) {
	return db.DB.NewSelect().
		Model((*GuildXP)(nil)).
		Where("guild_id = ?", guildID).
		Count(ctx)
}
