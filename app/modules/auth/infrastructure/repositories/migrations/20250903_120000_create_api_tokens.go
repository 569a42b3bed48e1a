package migrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	authdb "github.com/ZRunner/Axobot-API-V2/app/modules/auth/infrastructure/repositories"
)

func init() {
	Migrations.MustRegister(
		func(ctx context.Context, db *bun.DB) error {
			fmt.Println("Creating api_tokens table...")
			if _, err := db.NewCreateTable().Model((*authdb.APIToken)(nil)).IfNotExists().Exec(ctx); err != nil {
				return err
			}
			if _, err := db.NewCreateIndex().
				Model((*authdb.APIToken)(nil)).
				Index("api_tokens_user_idx").
				Column("user_id").
				IfNotExists().
				Exec(ctx); err != nil {
				return err
			}
			if _, err := db.NewCreateIndex().
				Model((*authdb.APIToken)(nil)).
				Index("api_tokens_expiry_idx").
				Column("expires_at").
				IfNotExists().
				Exec(ctx); err != nil {
				return err
			}
			return nil
		},
		func(ctx context.Context, db *bun.DB) error {
			fmt.Println("Dropping api_tokens table...")
			_, err := db.NewDropTable().Model((*authdb.APIToken)(nil)).IfExists().Exec(ctx)
			return err
		},
	)
}
