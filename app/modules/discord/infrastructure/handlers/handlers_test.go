package discordhandlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"

	discordservice "github.com/ZRunner/Axobot-API-V2/app/modules/discord/application"
	discorddomain "github.com/ZRunner/Axobot-API-V2/app/modules/discord/domain"
	configservice "github.com/ZRunner/Axobot-API-V2/app/modules/guildconfig/application"
	configdomain "github.com/ZRunner/Axobot-API-V2/app/modules/guildconfig/domain"
	"github.com/ZRunner/Axobot-API-V2/internal/observability"
	"github.com/ZRunner/Axobot-API-V2/pkg/types"
)

const testGuildID types.Snowflake = 625316773771608074

type handlerFixture struct {
	xp     *FakeXPRepository
	users  *FakeUserDataSource
	bot    *FakeBotGateway
	router *chi.Mux
}

// nullOverrideFetcher satisfies the override fetcher without any stored rows.
type nullOverrideFetcher struct{}

func (nullOverrideFetcher) GetFullGuildConfigOptions(_ context.Context, _ types.Snowflake) ([]configdomain.OptionOverride, error) {
	return nil, nil
}

func (nullOverrideFetcher) GetGuildConfigOptionValue(_ context.Context, _ types.Snowflake, _ string) (*string, error) {
	return nil, nil
}

type nullRewardFetcher struct{}

func (nullRewardFetcher) GetGuildRoleRewards(_ context.Context, _ types.Snowflake) ([]configdomain.RoleReward, error) {
	return nil, nil
}

type nullRoleResolver struct{}

func (nullRoleResolver) ResolveRole(_ context.Context, _, _ types.Snowflake) (*configdomain.RoleDescriptor, error) {
	return nil, nil
}

func newFixture(t *testing.T) *handlerFixture {
	t.Helper()
	obs := observability.NewTestObservability()
	logger := slog.New(slog.DiscardHandler)
	tracer := noop.NewTracerProvider().Tracer("test")

	schema, err := configdomain.LoadBundled()
	require.NoError(t, err)
	resolver := configservice.NewResolver(schema, nullOverrideFetcher{}, nullRewardFetcher{}, nullRoleResolver{}, logger, tracer)

	f := &handlerFixture{
		xp:    &FakeXPRepository{},
		users: &FakeUserDataSource{},
		bot: &FakeBotGateway{
			GetGuildInfoFunc: func(_ context.Context, guildID types.Snowflake) (*discorddomain.GuildInfo, error) {
				if guildID == testGuildID {
					return &discorddomain.GuildInfo{ID: guildID, Name: "Axobot Support"}, nil
				}
				return nil, nil
			},
		},
	}
	service := discordservice.NewService(f.xp, f.users, f.bot, &FakeOptionResolver{}, logger, tracer, obs.Metrics)
	handlers := NewDiscordHandlers(service, resolver, f.bot, logger, tracer)

	router := chi.NewRouter()
	router.Get("/discord/default-guild-config", handlers.HandleDefaultGuildConfig)
	router.Get("/discord/leaderboard/global", handlers.HandleGlobalLeaderboard)
	router.Get("/discord/leaderboard/{guildId}", handlers.HandleGuildLeaderboard)
	router.Get("/discord/user/{userId}", handlers.HandleGetUser)
	f.router = router
	return f
}

func (f *handlerFixture) get(t *testing.T, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func TestHandleDefaultGuildConfig(t *testing.T) {
	f := newFixture(t)

	rec := f.get(t, "/discord/default-guild-config")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body, "xp")
	assert.Contains(t, body["xp"], "xp_type")
}

func TestHandleGlobalLeaderboard(t *testing.T) {
	f := newFixture(t)
	f.xp.GetGlobalLeaderboardFunc = func(_ context.Context, page, limit int) ([]discorddomain.LeaderboardRow, error) {
		assert.Equal(t, 0, page)
		assert.Equal(t, 50, limit)
		return []discorddomain.LeaderboardRow{{UserID: 2, XP: 1000}}, nil
	}

	rec := f.get(t, "/discord/leaderboard/global")
	require.Equal(t, http.StatusOK, rec.Code)

	var page discorddomain.LeaderboardPage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	require.Len(t, page.Players, 1)
	assert.Equal(t, int64(5), page.Players[0].Level)
}

func TestHandleGlobalLeaderboard_PaginationValidation(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name  string
		query string
		want  int
	}{
		{name: "negative page", query: "?page=-1", want: http.StatusBadRequest},
		{name: "zero limit", query: "?limit=0", want: http.StatusBadRequest},
		{name: "limit above cap", query: "?limit=101", want: http.StatusBadRequest},
		{name: "not a number", query: "?page=abc", want: http.StatusBadRequest},
		{name: "limit at cap", query: "?limit=100", want: http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := f.get(t, "/discord/leaderboard/global"+tt.query)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestHandleGuildLeaderboard_UnknownGuild(t *testing.T) {
	f := newFixture(t)

	rec := f.get(t, "/discord/leaderboard/123456789")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleGuildLeaderboard_MalformedGuildID(t *testing.T) {
	f := newFixture(t)

	rec := f.get(t, "/discord/leaderboard/not-a-snowflake")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleGetUser(t *testing.T) {
	f := newFixture(t)
	f.users.GetRawUserDataFunc = func(_ context.Context, userID types.Snowflake) (*discorddomain.RawUserData, error) {
		if userID == 279063893420122113 {
			return &discorddomain.RawUserData{UserID: userID, Username: "z_runner"}, nil
		}
		return nil, nil
	}

	rec := f.get(t, "/discord/user/279063893420122113")
	require.Equal(t, http.StatusOK, rec.Code)
	var user discorddomain.RawUserData
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &user))
	assert.Equal(t, "z_runner", user.Username)

	rec = f.get(t, "/discord/user/999")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
