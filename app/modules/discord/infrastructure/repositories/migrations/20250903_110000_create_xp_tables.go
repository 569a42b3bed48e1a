package migrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	discorddb "github.com/ZRunner/Axobot-API-V2/app/modules/discord/infrastructure/repositories"
)

func init() {
	Migrations.MustRegister(
		func(ctx context.Context, db *bun.DB) error {
			fmt.Println("Creating xp, xp_guild and users_cache tables...")
			for _, model := range []any{
				(*discorddb.GlobalXP)(nil),
				(*discorddb.GuildXP)(nil),
				(*discorddb.CachedUser)(nil),
			} {
				if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
					return err
				}
			}
			if _, err := db.NewCreateIndex().
				Model((*discorddb.GlobalXP)(nil)).
				Index("xp_ranking_idx").
				ColumnExpr("xp DESC").
				IfNotExists().
				Exec(ctx); err != nil {
				return err
			}
			if _, err := db.NewCreateIndex().
				Model((*discorddb.GuildXP)(nil)).
				Index("xp_guild_ranking_idx").
				ColumnExpr("guild_id, xp DESC").
				IfNotExists().
				Exec(ctx); err != nil {
				return err
			}
			return nil
		},
		func(ctx context.Context, db *bun.DB) error {
			fmt.Println("Dropping xp, xp_guild and users_cache tables...")
			for _, model := range []any{
				(*discorddb.CachedUser)(nil),
				(*discorddb.GuildXP)(nil),
				(*discorddb.GlobalXP)(nil),
			} {
				if _, err := db.NewDropTable().Model(model).IfExists().Exec(ctx); err != nil {
					return err
				}
			}
			return nil
		},
	)
}
