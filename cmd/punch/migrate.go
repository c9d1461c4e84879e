package main

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/punch/cmd"
	"github.com/charmbracelet/punch/pkg/db"
	"github.com/charmbracelet/punch/pkg/db/migrate"
	"github.com/spf13/cobra"
)

var (
	rollback bool

	migrateCmd = &cobra.Command{
		Use:                "migrate",
		Short:              "Migrate the database to the latest version",
		Args:               cobra.NoArgs,
		PersistentPreRunE:  cmd.InitBackendContext,
		PersistentPostRunE: cmd.CloseDBContext,
		RunE: func(c *cobra.Command, _ []string) error {
			ctx := c.Context()
			dbx := db.FromContext(ctx)
			if rollback {
				if err := migrate.Rollback(ctx, dbx); err != nil {
					return fmt.Errorf("rollback error: %w", err)
				}
			} else if err := migrate.Migrate(ctx, dbx); err != nil {
				return fmt.Errorf("migration error: %w", err)
			}

			v, err := migrate.Version(ctx, dbx)
			if err != nil {
				return err
			}
			log.FromContext(ctx).Info("database migrated", "version", v)
			return nil
		},
	}
)

func init() {
	migrateCmd.Flags().BoolVar(&rollback, "rollback", false, "roll back the latest migration")
}
