// Package configdb implements the guild configuration storage over bun.
package configdb

import (
	"context"
	"database/sql"
	"errors"

	"github.com/uptrace/bun"

	configdomain "github.com/ZRunner/Axobot-API-V2/app/modules/guildconfig/domain"
	"github.com/ZRunner/Axobot-API-V2/pkg/types"
)

// ConfigDBImpl reads option overrides and role rewards for one bot entity.
type ConfigDBImpl struct {
	DB *bun.DB
	// Beta selects which rows of the shared serverconfig table belong to
	// this deployment.
	Beta bool
}

var _ Repository = (*ConfigDBImpl)(nil)

// GetFullGuildConfigOptions returns every override the guild has set, in a
// single query.
func (db *ConfigDBImpl) GetFullGuildConfigOptions(ctx context.Context, guildID types.Snowflake) ([]configdomain.OptionOverride, error) {
	var rows []ServerConfigOption
	err := db.DB.NewSelect().
		Model(&rows).
		Column("option_name", "value").
		Where("guild_id = ?", guildID).
		Where("beta = ?", db.Beta).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	overrides := make([]configdomain.OptionOverride, 0, len(rows))
	for _, row := range rows {
		overrides = append(overrides, configdomain.OptionOverride{
			OptionName: row.OptionName,
			Value:      row.Value,
		})
	}
	return overrides, nil
}

// GetGuildConfigOptionValue returns the raw stored value for one option,
// or nil when the guild never set it.
func (db *ConfigDBImpl) GetGuildConfigOptionValue(ctx context.Context, guildID types.Snowflake, optionName string) (*string, error) {
	var row ServerConfigOption
	err := db.DB.NewSelect().
		Model(&row).
		Column("value").
		Where("guild_id = ?", guildID).
		Where("option_name = ?", optionName).
		Where("beta = ?", db.Beta).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &row.Value, nil
}

// GetGuildRoleRewards returns the guild's role rewards ordered by level.
func (db *ConfigDBImpl) GetGuildRoleRewards(ctx context.Context, guildID types.Snowflake) ([]configdomain.RoleReward, error) {
	var rows []RoleReward
	err := db.DB.NewSelect().
		Model(&rows).
		Where("guild_id = ?", guildID).
		Order("level ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	rewards := make([]configdomain.RoleReward, 0, len(rows))
	for _, row := range rows {
		rewards = append(rewards, configdomain.RoleReward{
			ID:      row.ID,
			GuildID: row.GuildID,
			RoleID:  row.RoleID,
			Level:   row.Level,
			AddedAt: row.AddedAt,
		})
	}
	return rewards, nil
}
