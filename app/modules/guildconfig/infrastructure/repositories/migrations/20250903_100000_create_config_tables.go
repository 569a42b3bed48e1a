package migrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	configdb "github.com/ZRunner/Axobot-API-V2/app/modules/guildconfig/infrastructure/repositories"
)

func init() {
	Migrations.MustRegister(
		func(ctx context.Context, db *bun.DB) error {
			fmt.Println("Creating serverconfig and roles_rewards tables...")
			if _, err := db.NewCreateTable().Model((*configdb.ServerConfigOption)(nil)).IfNotExists().Exec(ctx); err != nil {
				return err
			}
			if _, err := db.NewCreateTable().Model((*configdb.RoleReward)(nil)).IfNotExists().Exec(ctx); err != nil {
				return err
			}
			if _, err := db.NewCreateIndex().
				Model((*configdb.RoleReward)(nil)).
				Index("roles_rewards_guild_idx").
				Column("guild_id").
				IfNotExists().
				Exec(ctx); err != nil {
				return err
			}
			return nil
		},
		func(ctx context.Context, db *bun.DB) error {
			fmt.Println("Dropping serverconfig and roles_rewards tables...")
			if _, err := db.NewDropTable().Model((*configdb.RoleReward)(nil)).IfExists().Exec(ctx); err != nil {
				return err
			}
			if _, err := db.NewDropTable().Model((*configdb.ServerConfigOption)(nil)).IfExists().Exec(ctx); err != nil {
				return err
			}
			return nil
		},
	)
}
