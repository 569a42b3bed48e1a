package configservice

import (
	"context"

	configdomain "github.com/ZRunner/Axobot-API-V2/app/modules/guildconfig/domain"
	"github.com/ZRunner/Axobot-API-V2/pkg/types"
)

// ------------------------
// Fake Override Fetcher
// ------------------------

// FakeOverrideFetcher provides a programmable stub for the OverrideFetcher
// interface.
type FakeOverrideFetcher struct {
	trace []string

	GetFullGuildConfigOptionsFunc func(ctx context.Context, guildID types.Snowflake) ([]configdomain.OptionOverride, error)
	GetGuildConfigOptionValueFunc func(ctx context.Context, guildID types.Snowflake, optionName string) (*string, error)
}

// Trace returns the sequence of method calls made to the fake.
func (f *FakeOverrideFetcher) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeOverrideFetcher) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeOverrideFetcher) GetFullGuildConfigOptions(ctx context.Context, guildID types.Snowflake) ([]configdomain.OptionOverride, error) {
	f.record("GetFullGuildConfigOptions")
	if f.GetFullGuildConfigOptionsFunc != nil {
		return f.GetFullGuildConfigOptionsFunc(ctx, guildID)
	}
	return nil, nil
}

func (f *FakeOverrideFetcher) GetGuildConfigOptionValue(ctx context.Context, guildID types.Snowflake, optionName string) (*string, error) {
	f.record("GetGuildConfigOptionValue")
	if f.GetGuildConfigOptionValueFunc != nil {
		return f.GetGuildConfigOptionValueFunc(ctx, guildID, optionName)
	}
	return nil, nil
}

// ------------------------
// Fake Role Reward Fetcher
// ------------------------

type FakeRoleRewardFetcher struct {
	GetGuildRoleRewardsFunc func(ctx context.Context, guildID types.Snowflake) ([]configdomain.RoleReward, error)
}

func (f *FakeRoleRewardFetcher) GetGuildRoleRewards(ctx context.Context, guildID types.Snowflake) ([]configdomain.RoleReward, error) {
	if f.GetGuildRoleRewardsFunc != nil {
		return f.GetGuildRoleRewardsFunc(ctx, guildID)
	}
	return nil, nil
}

// ------------------------
// Fake Role Resolver
// ------------------------

type FakeRoleResolver struct {
	ResolveRoleFunc func(ctx context.Context, guildID, roleID types.Snowflake) (*configdomain.RoleDescriptor, error)
}

func (f *FakeRoleResolver) ResolveRole(ctx context.Context, guildID, roleID types.Snowflake) (*configdomain.RoleDescriptor, error) {
	if f.ResolveRoleFunc != nil {
		return f.ResolveRoleFunc(ctx, guildID, roleID)
	}
	return nil, nil
}
