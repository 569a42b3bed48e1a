package configdb

import (
	"context"

	configdomain "github.com/ZRunner/Axobot-API-V2/app/modules/guildconfig/domain"
	"github.com/ZRunner/Axobot-API-V2/pkg/types"
)

// Repository is the storage surface of the guild configuration module.
type Repository interface {
	GetFullGuildConfigOptions(ctx context.Context, guildID types.Snowflake) ([]configdomain.OptionOverride, error)
	GetGuildConfigOptionValue(ctx context.Context, guildID types.Snowflake, optionName string) (*string, error)
	GetGuildRoleRewards(ctx context.Context, guildID types.Snowflake) ([]configdomain.RoleReward, error)
}
