package discordservice

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"

	discorddomain "github.com/ZRunner/Axobot-API-V2/app/modules/discord/domain"
	"github.com/ZRunner/Axobot-API-V2/internal/observability"
	"github.com/ZRunner/Axobot-API-V2/pkg/types"
)

func newTestService(t *testing.T, xp *FakeXPRepository, users *FakeUserDataSource, guilds *FakeGuildSource, config *FakeOptionResolver) *Service {
	t.Helper()
	if xp == nil {
		xp = &FakeXPRepository{}
	}
	if users == nil {
		users = &FakeUserDataSource{}
	}
	if guilds == nil {
		guilds = &FakeGuildSource{}
	}
	if config == nil {
		config = &FakeOptionResolver{}
	}
	obs := observability.NewTestObservability()
	logger := slog.New(slog.DiscardHandler)
	tracer := noop.NewTracerProvider().Tracer("test")
	return NewService(xp, users, guilds, config, logger, tracer, obs.Metrics)
}

func strPtr(s string) *string { return &s }

func TestTransformLeaderboard_GeneralCurve(t *testing.T) {
	users := &FakeUserDataSource{
		GetRawUserDataFunc: func(_ context.Context, userID types.Snowflake) (*discorddomain.RawUserData, error) {
			if userID == 2 {
				return &discorddomain.RawUserData{
					UserID:     2,
					Username:   "axolotl",
					AvatarHash: strPtr("a1b2c3"),
				}, nil
			}
			// User 1 left Discord since earning XP.
			return nil, nil
		},
	}
	service := newTestService(t, nil, users, nil, nil)

	rows := []discorddomain.LeaderboardRow{
		{UserID: 1, XP: 0},
		{UserID: 2, XP: 1000},
	}
	entries, err := service.TransformLeaderboard(context.Background(), rows, 0, false)
	require.NoError(t, err)

	want := []discorddomain.LeaderboardEntry{
		{
			Ranking:          0,
			UserID:           1,
			XP:               0,
			Level:            1,
			XPToCurrentLevel: 0,
			XPToNextLevel:    85,
			Username:         nil,
			Avatar:           "https://cdn.discordapp.com/embed/avatars/0.png",
		},
		{
			Ranking:          1,
			UserID:           2,
			XP:               1000,
			Level:            5,
			XPToCurrentLevel: 712,
			XPToNextLevel:    1003,
			Username:         strPtr("axolotl"),
			Avatar:           "https://cdn.discordapp.com/avatars/2/a1b2c3.webp",
		},
	}
	if diff := cmp.Diff(want, entries); diff != "" {
		t.Errorf("entries mismatch (-want +got):\n%s", diff)
	}
	assert.Len(t, users.Calls(), 2)
}

func TestTransformLeaderboard_LegacyCurve(t *testing.T) {
	service := newTestService(t, nil, nil, nil, nil)

	rows := []discorddomain.LeaderboardRow{{UserID: 42, XP: 4675}}
	entries, err := service.TransformLeaderboard(context.Background(), rows, 0, true)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	assert.Equal(t, int64(10), entries[0].Level)
	assert.Equal(t, int64(4675), entries[0].XPToCurrentLevel)
	assert.Equal(t, int64(5775), entries[0].XPToNextLevel)
}

func TestTransformLeaderboard_RankOffset(t *testing.T) {
	service := newTestService(t, nil, nil, nil, nil)

	rows := []discorddomain.LeaderboardRow{
		{UserID: 10, XP: 300},
		{UserID: 11, XP: 200},
		{UserID: 12, XP: 100},
	}
	entries, err := service.TransformLeaderboard(context.Background(), rows, 50, false)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	for i, entry := range entries {
		assert.Equal(t, 50+i, entry.Ranking)
		assert.Equal(t, rows[i].UserID, entry.UserID, "output order must match input order")
	}
}

func TestTransformLeaderboard_GlobalNamePreferred(t *testing.T) {
	users := &FakeUserDataSource{
		GetRawUserDataFunc: func(_ context.Context, _ types.Snowflake) (*discorddomain.RawUserData, error) {
			return &discorddomain.RawUserData{
				UserID:     7,
				Username:   "old_login",
				GlobalName: strPtr("Display Name"),
			}, nil
		},
	}
	service := newTestService(t, nil, users, nil, nil)

	entries, err := service.TransformLeaderboard(context.Background(), []discorddomain.LeaderboardRow{{UserID: 7, XP: 50}}, 0, false)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.NotNil(t, entries[0].Username)
	assert.Equal(t, "Display Name", *entries[0].Username)
}

func TestTransformLeaderboard_DefaultAvatarIndex(t *testing.T) {
	service := newTestService(t, nil, nil, nil, nil)

	// 279063893420122113 >> 22 ends in ...3 mod 6.
	entries, err := service.TransformLeaderboard(context.Background(), []discorddomain.LeaderboardRow{
		{UserID: 279063893420122113, XP: 10},
	}, 0, false)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "https://cdn.discordapp.com/embed/avatars/3.png", entries[0].Avatar)
}

func TestTransformLeaderboard_EnrichmentFailureAbortsAll(t *testing.T) {
	lookupErr := errors.New("discord api unavailable")
	users := &FakeUserDataSource{
		GetRawUserDataFunc: func(_ context.Context, userID types.Snowflake) (*discorddomain.RawUserData, error) {
			if userID == 2 {
				return nil, lookupErr
			}
			return &discorddomain.RawUserData{UserID: userID, Username: "fine"}, nil
		},
	}
	service := newTestService(t, nil, users, nil, nil)

	rows := []discorddomain.LeaderboardRow{
		{UserID: 1, XP: 500},
		{UserID: 2, XP: 400},
		{UserID: 3, XP: 300},
	}
	entries, err := service.TransformLeaderboard(context.Background(), rows, 0, false)
	require.Error(t, err)
	assert.ErrorIs(t, err, lookupErr)
	assert.Nil(t, entries, "no partial leaderboard on enrichment failure")
}

func TestTransformLeaderboard_Empty(t *testing.T) {
	service := newTestService(t, nil, nil, nil, nil)

	entries, err := service.TransformLeaderboard(context.Background(), nil, 0, false)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
