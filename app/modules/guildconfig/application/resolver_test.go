package configservice

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	configdomain "github.com/ZRunner/Axobot-API-V2/app/modules/guildconfig/domain"
	"github.com/ZRunner/Axobot-API-V2/pkg/types"
)

const testGuildID = types.Snowflake(625316773771608074)

func TestGetOptionValue(t *testing.T) {
	raw := "true"
	tests := []struct {
		name        string
		option      string
		fetcherFunc func(ctx context.Context, guildID types.Snowflake, optionName string) (*string, error)
		want        any
		wantErr     error
	}{
		{
			name:   "override present is coerced",
			option: "enable_xp",
			fetcherFunc: func(_ context.Context, _ types.Snowflake, _ string) (*string, error) {
				return &raw, nil
			},
			want: true,
		},
		{
			name:   "no override returns schema default verbatim",
			option: "xp_rate",
			fetcherFunc: func(_ context.Context, _ types.Snowflake, _ string) (*string, error) {
				return nil, nil
			},
			want: 1.0,
		},
		{
			name:    "unknown option",
			option:  "does_not_exist",
			wantErr: configdomain.ErrUnknownOption,
		},
		{
			name:   "fetcher error propagates",
			option: "enable_xp",
			fetcherFunc: func(_ context.Context, _ types.Snowflake, _ string) (*string, error) {
				return nil, errors.New("db unreachable")
			},
			wantErr: errors.New("db unreachable"),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fetcher := &FakeOverrideFetcher{GetGuildConfigOptionValueFunc: tt.fetcherFunc}
			resolver := newTestResolver(t, nil, fetcher, nil, nil)

			got, err := resolver.GetOptionValue(context.Background(), testGuildID, tt.option)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr.Error())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGetCategoriesConfig_DefaultsOnly(t *testing.T) {
	fetcher := &FakeOverrideFetcher{}
	resolver := newTestResolver(t, nil, fetcher, nil, nil)

	config, err := resolver.GetCategoriesConfig(context.Background(), testGuildID, []string{"xp"})
	require.NoError(t, err)
	require.Contains(t, config, "xp")

	xp := config["xp"]
	// Every declared xp option must resolve to its schema default.
	schema, err := configdomain.LoadBundled()
	require.NoError(t, err)
	declared, _ := schema.Category("xp")
	for name, option := range declared {
		require.Contains(t, xp, name)
		assert.Equal(t, option.Default, xp[name], "option %s", name)
	}
	// Plus the computed role reward list, empty when none are configured.
	require.Contains(t, xp, "role_rewards")
	assert.Empty(t, xp["role_rewards"])

	// Overrides were batch-fetched exactly once, never per option.
	assert.Equal(t, []string{"GetFullGuildConfigOptions"}, fetcher.Trace())
}

func TestGetCategoriesConfig_MergesOverrides(t *testing.T) {
	fetcher := &FakeOverrideFetcher{
		GetFullGuildConfigOptionsFunc: func(_ context.Context, _ types.Snowflake) ([]configdomain.OptionOverride, error) {
			return []configdomain.OptionOverride{
				{OptionName: "enable_xp", Value: "true"},
				{OptionName: "xp_type", Value: "mee6"},
				{OptionName: "noxp_roles", Value: "[123456789012345678]"},
				{OptionName: "welcome", Value: "Hello {user}!"},
			}, nil
		},
	}
	resolver := newTestResolver(t, nil, fetcher, nil, nil)

	config, err := resolver.GetCategoriesConfig(context.Background(), testGuildID, []string{"xp", "welcome"})
	require.NoError(t, err)

	xp := config["xp"]
	assert.Equal(t, true, xp["enable_xp"])
	assert.Equal(t, "mee6", xp["xp_type"])
	assert.Equal(t, []types.Snowflake{123456789012345678}, xp["noxp_roles"])
	// Untouched options keep their defaults.
	assert.Equal(t, 1.0, xp["xp_rate"])

	welcome := config["welcome"]
	assert.Equal(t, "Hello {user}!", welcome["welcome"])
	assert.Equal(t, "", welcome["leave"])
}

func TestGetCategoriesConfig_RoleRewards(t *testing.T) {
	addedAt := time.Date(2024, 5, 12, 10, 0, 0, 0, time.UTC)
	rewards := &FakeRoleRewardFetcher{
		GetGuildRoleRewardsFunc: func(_ context.Context, _ types.Snowflake) ([]configdomain.RoleReward, error) {
			return []configdomain.RoleReward{
				{ID: 1, GuildID: testGuildID, RoleID: 111111111111111111, Level: 5, AddedAt: addedAt},
				{ID: 2, GuildID: testGuildID, RoleID: 222222222222222222, Level: 10, AddedAt: addedAt},
			}, nil
		},
	}
	roles := &FakeRoleResolver{
		ResolveRoleFunc: func(_ context.Context, _ types.Snowflake, roleID types.Snowflake) (*configdomain.RoleDescriptor, error) {
			if roleID == 111111111111111111 {
				return &configdomain.RoleDescriptor{Name: "Regular", Color: 0x3498db}, nil
			}
			// Second role was deleted from the guild.
			return nil, nil
		},
	}
	resolver := newTestResolver(t, nil, nil, rewards, roles)

	config, err := resolver.GetCategoriesConfig(context.Background(), testGuildID, []string{"xp"})
	require.NoError(t, err)

	got, ok := config["xp"]["role_rewards"].([]configdomain.PopulatedRoleReward)
	require.True(t, ok)
	want := []configdomain.PopulatedRoleReward{
		{
			RoleReward: configdomain.RoleReward{ID: 1, GuildID: testGuildID, RoleID: 111111111111111111, Level: 5, AddedAt: addedAt},
			Role:       &configdomain.RoleDescriptor{Name: "Regular", Color: 0x3498db},
		},
		{
			RoleReward: configdomain.RoleReward{ID: 2, GuildID: testGuildID, RoleID: 222222222222222222, Level: 10, AddedAt: addedAt},
			Role:       nil,
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("role rewards mismatch (-want +got):\n%s", diff)
	}
}

func TestGetCategoriesConfig_UndeclaredCategory(t *testing.T) {
	resolver := newTestResolver(t, nil, nil, nil, nil)

	config, err := resolver.GetCategoriesConfig(context.Background(), testGuildID, []string{"spaceships"})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{}, config["spaceships"])
}

func TestGetCategoriesConfig_FetcherError(t *testing.T) {
	fetcher := &FakeOverrideFetcher{
		GetFullGuildConfigOptionsFunc: func(_ context.Context, _ types.Snowflake) ([]configdomain.OptionOverride, error) {
			return nil, errors.New("connection reset")
		},
	}
	resolver := newTestResolver(t, nil, fetcher, nil, nil)

	_, err := resolver.GetCategoriesConfig(context.Background(), testGuildID, []string{"core"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
}
