package configdomain

import (
	"time"

	"github.com/ZRunner/Axobot-API-V2/pkg/types"
)

// OptionOverride is a persisted per-guild option value, as stored: one raw
// string per (guild, option) that has been explicitly set.
type OptionOverride struct {
	OptionName string `json:"option_name"`
	Value      string `json:"value"`
}

// RoleReward associates an XP level with a role grant for a guild.
type RoleReward struct {
	ID      int64           `json:"id"`
	GuildID types.Snowflake `json:"guild_id"`
	RoleID  types.Snowflake `json:"role_id"`
	Level   int64           `json:"level"`
	AddedAt time.Time       `json:"added_at"`
}

// RoleDescriptor is the display data of a live guild role.
type RoleDescriptor struct {
	Name  string `json:"name"`
	Color int    `json:"color"`
}

// PopulatedRoleReward is a reward enriched with the role's current display
// data. Role is nil when the role no longer exists in the guild.
type PopulatedRoleReward struct {
	RoleReward
	Role *RoleDescriptor `json:"role"`
}
