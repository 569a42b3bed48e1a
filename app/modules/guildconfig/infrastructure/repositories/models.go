package configdb

import (
	"time"

	"github.com/uptrace/bun"

	"github.com/ZRunner/Axobot-API-V2/pkg/types"
)

// ServerConfigOption is one persisted option override: a raw string stored
// for a (guild, option) pair. The beta column separates rows written by the
// beta bot entity from the stable one, both sharing the table.
type ServerConfigOption struct {
	bun.BaseModel `bun:"table:serverconfig,alias:sc"`

	GuildID    types.Snowflake `bun:"guild_id,pk,type:varchar(20)"`
	OptionName string          `bun:"option_name,pk,type:varchar(64)"`
	Value      string          `bun:"value,notnull"`
	Beta       bool            `bun:"beta,pk,notnull,default:false"`
	UpdatedAt  time.Time       `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

// RoleReward associates an XP level with a role granted when reaching it.
type RoleReward struct {
	bun.BaseModel `bun:"table:roles_rewards,alias:rr"`

	ID      int64           `bun:"id,pk,autoincrement"`
	GuildID types.Snowflake `bun:"guild_id,notnull,type:varchar(20)"`
	RoleID  types.Snowflake `bun:"role_id,notnull,type:varchar(20)"`
	Level   int64           `bun:"level,notnull"`
	AddedAt time.Time       `bun:"added_at,nullzero,notnull,default:current_timestamp"`
}
