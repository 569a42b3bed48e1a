// Package configservice resolves guild configurations: persisted overrides
// merged with the schema defaults, one typed value per declared option.
package configservice

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	configdomain "github.com/ZRunner/Axobot-API-V2/app/modules/guildconfig/domain"
	"github.com/ZRunner/Axobot-API-V2/internal/observability/attr"
	"github.com/ZRunner/Axobot-API-V2/pkg/types"
)

// OverrideFetcher loads persisted per-guild option overrides.
type OverrideFetcher interface {
	// GetFullGuildConfigOptions returns every override set for the guild.
	GetFullGuildConfigOptions(ctx context.Context, guildID types.Snowflake) ([]configdomain.OptionOverride, error)
	// GetGuildConfigOptionValue returns the raw stored value for one
	// option, or nil when the option was never set for this guild.
	GetGuildConfigOptionValue(ctx context.Context, guildID types.Snowflake, optionName string) (*string, error)
}

// RoleRewardFetcher loads the guild's configured level/role associations.
type RoleRewardFetcher interface {
	GetGuildRoleRewards(ctx context.Context, guildID types.Snowflake) ([]configdomain.RoleReward, error)
}

// RoleResolver looks up the live display data of a guild role. A role that
// no longer exists is reported as (nil, nil), not an error.
type RoleResolver interface {
	ResolveRole(ctx context.Context, guildID, roleID types.Snowflake) (*configdomain.RoleDescriptor, error)
}

// Resolver merges schema defaults with persisted overrides. It holds no
// per-request state; configurations are computed fresh on every call since
// overrides can change between requests.
type Resolver struct {
	schema  *configdomain.Schema
	fetcher OverrideFetcher
	rewards RoleRewardFetcher
	roles   RoleResolver
	logger  *slog.Logger
	tracer  trace.Tracer
}

// NewResolver creates a Resolver. All collaborators are injected so the
// resolver can be exercised with fakes.
func NewResolver(
	schema *configdomain.Schema,
	fetcher OverrideFetcher,
	rewards RoleRewardFetcher,
	roles RoleResolver,
	logger *slog.Logger,
	tracer trace.Tracer,
) *Resolver {
	return &Resolver{
		schema:  schema,
		fetcher: fetcher,
		rewards: rewards,
		roles:   roles,
		logger:  logger,
		tracer:  tracer,
	}
}

// Schema returns the option catalog the resolver was built with.
func (r *Resolver) Schema() *configdomain.Schema {
	return r.schema
}

// GetOptionValue resolves a single option for a guild: the coerced override
// when one is stored, the schema default otherwise. Defaults are already
// typed and are returned verbatim.
func (r *Resolver) GetOptionValue(ctx context.Context, guildID types.Snowflake, optionName string) (any, error) {
	option, ok := r.schema.Option(optionName)
	if !ok {
		return nil, fmt.Errorf("%w: %s", configdomain.ErrUnknownOption, optionName)
	}

	raw, err := r.fetcher.GetGuildConfigOptionValue(ctx, guildID, optionName)
	if err != nil {
		return nil, fmt.Errorf("fetching override for %s: %w", optionName, err)
	}
	if raw == nil {
		return option.Default, nil
	}
	return r.ConvertToType(optionName, *raw)
}

// GetCategoriesConfig resolves every option of the requested categories.
// Overrides are fetched once for the whole guild, not per option. The xp
// category is augmented with its role-reward list. Categories absent from
// the schema resolve to an empty sub-map.
func (r *Resolver) GetCategoriesConfig(ctx context.Context, guildID types.Snowflake, categories []string) (map[string]map[string]any, error) {
	ctx, span := r.tracer.Start(ctx, "GetCategoriesConfig", trace.WithAttributes(
		attribute.String("guild_id", guildID.String()),
		attribute.Int("categories", len(categories)),
	))
	defer span.End()

	overrides, err := r.fetcher.GetFullGuildConfigOptions(ctx, guildID)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("fetching guild config options: %w", err)
	}
	stored := make(map[string]string, len(overrides))
	for _, override := range overrides {
		stored[override.OptionName] = override.Value
	}

	config := make(map[string]map[string]any, len(categories))
	for _, categoryName := range categories {
		resolved, err := r.categoryExtras(ctx, guildID, categoryName)
		if err != nil {
			span.RecordError(err)
			return nil, err
		}
		options, declared := r.schema.Category(categoryName)
		if !declared {
			r.logger.DebugContext(ctx, "requested undeclared config category",
				attr.String("category", categoryName),
				attr.String("guild_id", guildID.String()),
			)
			config[categoryName] = resolved
			continue
		}
		for optionName, option := range options {
			raw, set := stored[optionName]
			if !set {
				resolved[optionName] = option.Default
				continue
			}
			value, err := r.ConvertToType(optionName, raw)
			if err != nil {
				span.RecordError(err)
				return nil, err
			}
			resolved[optionName] = value
		}
		config[categoryName] = resolved
	}
	return config, nil
}

// categoryExtras seeds a category's resolved map with computed side-data
// that plain key/value storage cannot provide.
func (r *Resolver) categoryExtras(ctx context.Context, guildID types.Snowflake, category string) (map[string]any, error) {
	switch category {
	case "xp":
		rewards, err := r.populatedRoleRewards(ctx, guildID)
		if err != nil {
			return nil, err
		}
		return map[string]any{"role_rewards": rewards}, nil
	default:
		return map[string]any{}, nil
	}
}

// populatedRoleRewards loads the guild's role rewards and enriches each
// with the role's live name and color. A deleted role yields a nil
// descriptor instead of failing the whole request.
func (r *Resolver) populatedRoleRewards(ctx context.Context, guildID types.Snowflake) ([]configdomain.PopulatedRoleReward, error) {
	rewards, err := r.rewards.GetGuildRoleRewards(ctx, guildID)
	if err != nil {
		return nil, fmt.Errorf("fetching role rewards: %w", err)
	}
	populated := make([]configdomain.PopulatedRoleReward, 0, len(rewards))
	for _, reward := range rewards {
		role, err := r.roles.ResolveRole(ctx, guildID, reward.RoleID)
		if err != nil {
			return nil, fmt.Errorf("resolving role %s: %w", reward.RoleID, err)
		}
		populated = append(populated, configdomain.PopulatedRoleReward{
			RoleReward: reward,
			Role:       role,
		})
	}
	return populated, nil
}
