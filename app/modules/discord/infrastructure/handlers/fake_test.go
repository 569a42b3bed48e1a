package discordhandlers

import (
	"context"

	discorddomain "github.com/ZRunner/Axobot-API-V2/app/modules/discord/domain"
	"github.com/ZRunner/Axobot-API-V2/pkg/types"
)

// ------------------------
// Fake Bot Gateway
// ------------------------

type FakeBotGateway struct {
	GetGuildInfoFunc               func(ctx context.Context, guildID types.Snowflake) (*discorddomain.GuildInfo, error)
	CheckUserPresenceInGuildFunc   func(ctx context.Context, guildID, userID types.Snowflake) (bool, error)
	CheckUserPermissionInGuildFunc func(ctx context.Context, guildID, userID types.Snowflake, permission int64) (bool, error)
}

func (f *FakeBotGateway) GetGuildInfo(ctx context.Context, guildID types.Snowflake) (*discorddomain.GuildInfo, error) {
	if f.GetGuildInfoFunc != nil {
		return f.GetGuildInfoFunc(ctx, guildID)
	}
	return nil, nil
}

func (f *FakeBotGateway) CheckUserPresenceInGuild(ctx context.Context, guildID, userID types.Snowflake) (bool, error) {
	if f.CheckUserPresenceInGuildFunc != nil {
		return f.CheckUserPresenceInGuildFunc(ctx, guildID, userID)
	}
	return false, nil
}

func (f *FakeBotGateway) CheckUserPermissionInGuild(ctx context.Context, guildID, userID types.Snowflake, permission int64) (bool, error) {
	if f.CheckUserPermissionInGuildFunc != nil {
		return f.CheckUserPermissionInGuildFunc(ctx, guildID, userID, permission)
	}
	return false, nil
}

// ------------------------
// Fake XP Repository
// ------------------------

type FakeXPRepository struct {
	GetGlobalLeaderboardFunc func(ctx context.Context, page, limit int) ([]discorddomain.LeaderboardRow, error)
	GetGuildLeaderboardFunc  func(ctx context.Context, guildID types.Snowflake, page, limit int) ([]discorddomain.LeaderboardRow, error)
}

func (f *FakeXPRepository) GetGlobalLeaderboard(ctx context.Context, page, limit int) ([]discorddomain.LeaderboardRow, error) {
	if f.GetGlobalLeaderboardFunc != nil {
		return f.GetGlobalLeaderboardFunc(ctx, page, limit)
	}
	return nil, nil
}

func (f *FakeXPRepository) CountGlobalPlayers(_ context.Context) (int, error) {
	return 0, nil
}

func (f *FakeXPRepository) GetGuildLeaderboard(ctx context.Context, guildID types.Snowflake, page, limit int) ([]discorddomain.LeaderboardRow, error) {
	if f.GetGuildLeaderboardFunc != nil {
		return f.GetGuildLeaderboardFunc(ctx, guildID, page, limit)
	}
	return nil, nil
}

func (f *FakeXPRepository) CountGuildPlayers(_ context.Context, _ types.Snowflake) (int, error) {
	return 0, nil
}

// ------------------------
// Fake User Data Source
// ------------------------

type FakeUserDataSource struct {
	GetRawUserDataFunc func(ctx context.Context, userID types.Snowflake) (*discorddomain.RawUserData, error)
}

func (f *FakeUserDataSource) GetRawUserData(ctx context.Context, userID types.Snowflake) (*discorddomain.RawUserData, error) {
	if f.GetRawUserDataFunc != nil {
		return f.GetRawUserDataFunc(ctx, userID)
	}
	return nil, nil
}

// ------------------------
// Fake Option Resolver
// ------------------------

type FakeOptionResolver struct {
	GetOptionValueFunc func(ctx context.Context, guildID types.Snowflake, optionName string) (any, error)
}

func (f *FakeOptionResolver) GetOptionValue(ctx context.Context, guildID types.Snowflake, optionName string) (any, error) {
	if f.GetOptionValueFunc != nil {
		return f.GetOptionValueFunc(ctx, guildID, optionName)
	}
	return "local", nil
}
