package discordservice

import (
	"context"
	"sync"

	discorddomain "github.com/ZRunner/Axobot-API-V2/app/modules/discord/domain"
	"github.com/ZRunner/Axobot-API-V2/pkg/types"
)

// ------------------------
// Fake XP Repository
// ------------------------

// FakeXPRepository provides a programmable stub for the XPRepository
// interface.
type FakeXPRepository struct {
	trace []string

	GetGlobalLeaderboardFunc func(ctx context.Context, page, limit int) ([]discorddomain.LeaderboardRow, error)
	CountGlobalPlayersFunc   func(ctx context.Context) (int, error)
	GetGuildLeaderboardFunc  func(ctx context.Context, guildID types.Snowflake, page, limit int) ([]discorddomain.LeaderboardRow, error)
	CountGuildPlayersFunc    func(ctx context.Context, guildID types.Snowflake) (int, error)
}

// Trace returns the sequence of method calls made to the fake.
func (f *FakeXPRepository) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeXPRepository) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeXPRepository) GetGlobalLeaderboard(ctx context.Context, page, limit int) ([]discorddomain.LeaderboardRow, error) {
	f.record("GetGlobalLeaderboard")
	if f.GetGlobalLeaderboardFunc != nil {
		return f.GetGlobalLeaderboardFunc(ctx, page, limit)
	}
	return nil, nil
}

func (f *FakeXPRepository) CountGlobalPlayers(ctx context.Context) (int, error) {
	f.record("CountGlobalPlayers")
	if f.CountGlobalPlayersFunc != nil {
		return f.CountGlobalPlayersFunc(ctx)
	}
	return 0, nil
}

func (f *FakeXPRepository) GetGuildLeaderboard(ctx context.Context, guildID types.Snowflake, page, limit int) ([]discorddomain.LeaderboardRow, error) {
	f.record("GetGuildLeaderboard")
	if f.GetGuildLeaderboardFunc != nil {
		return f.GetGuildLeaderboardFunc(ctx, guildID, page, limit)
	}
	return nil, nil
}

func (f *FakeXPRepository) CountGuildPlayers(ctx context.Context, guildID types.Snowflake) (int, error) {
	f.record("CountGuildPlayers")
	if f.CountGuildPlayersFunc != nil {
		return f.CountGuildPlayersFunc(ctx, guildID)
	}
	return 0, nil
}

// ------------------------
// Fake User Data Source
// ------------------------

// FakeUserDataSource is safe for concurrent calls, since the transform fans
// user lookups out.
type FakeUserDataSource struct {
	mu    sync.Mutex
	calls []types.Snowflake

	GetRawUserDataFunc func(ctx context.Context, userID types.Snowflake) (*discorddomain.RawUserData, error)
}

// Calls returns the user ids the fake was asked about, in call order.
func (f *FakeUserDataSource) Calls() []types.Snowflake {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]types.Snowflake, len(f.calls))
	copy(out, f.calls)
	return out
}

func (f *FakeUserDataSource) GetRawUserData(ctx context.Context, userID types.Snowflake) (*discorddomain.RawUserData, error) {
	f.mu.Lock()
	f.calls = append(f.calls, userID)
	f.mu.Unlock()
	if f.GetRawUserDataFunc != nil {
		return f.GetRawUserDataFunc(ctx, userID)
	}
	return nil, nil
}

// ------------------------
// Fake Guild Source
// ------------------------

type FakeGuildSource struct {
	GetGuildInfoFunc func(ctx context.Context, guildID types.Snowflake) (*discorddomain.GuildInfo, error)
}

func (f *FakeGuildSource) GetGuildInfo(ctx context.Context, guildID types.Snowflake) (*discorddomain.GuildInfo, error) {
	if f.GetGuildInfoFunc != nil {
		return f.GetGuildInfoFunc(ctx, guildID)
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
	return nil, nil
}
