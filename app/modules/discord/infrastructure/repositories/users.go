package discorddb

import (
	"context"

	"github.com/uptrace/bun"

	discorddomain "github.com/ZRunner/Axobot-API-V2/app/modules/discord/domain"
	"github.com/ZRunner/Axobot-API-V2/pkg/types"
)

// UserCacheDBImpl reads the users_cache table maintained by the bot.
type UserCacheDBImpl struct {
	DB *bun.DB
}

var _ UserCacheRepository = (*UserCacheDBImpl)(nil)

// GetCachedUsers returns the cached display data for the given user IDs.
// Users missing from the cache are simply absent from the result.
func (db *UserCacheDBImpl) GetCachedUsers(ctx context.Context, userIDs []types.Snowflake) ([]discorddomain.RawUserData, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}
	ids := make([]string, 0, len(userIDs))
	for _, id := range userIDs {
		ids = append(ids, id.String())
	}
	var rows []CachedUser
	err := db.DB.NewSelect().
		Model(&rows).
		Where("user_id IN (?)", bun.In(ids)).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	users := make([]discorddomain.RawUserData, 0, len(rows))
	for _, row := range rows {
		users = append(users, discorddomain.RawUserData{
			UserID:     row.UserID,
			Username:   row.Username,
			GlobalName: row.GlobalName,
			AvatarHash: row.AvatarHash,
			IsBot:      row.IsBot,
		})
	}
	return users, nil
}
