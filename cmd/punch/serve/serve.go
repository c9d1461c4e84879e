// Package serve implements the serve command.
package serve

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/punch/cmd"
	"github.com/charmbracelet/punch/pkg/db"
	"github.com/charmbracelet/punch/pkg/db/migrate"
	"github.com/spf13/cobra"
)

// Command is the serve command.
var Command = &cobra.Command{
	Use:                "serve",
	Short:              "Start the server",
	Args:               cobra.NoArgs,
	PersistentPreRunE:  cmd.InitBackendContext,
	PersistentPostRunE: cmd.CloseDBContext,
	RunE: func(c *cobra.Command, _ []string) error {
		ctx := c.Context()

		dbx := db.FromContext(ctx)
		if err := migrate.Migrate(ctx, dbx); err != nil {
			return fmt.Errorf("migration error: %w", err)
		}

		s, err := NewServer(ctx)
		if err != nil {
			return fmt.Errorf("start server: %w", err)
		}

		lch := make(chan error, 1)
		done := make(chan os.Signal, 1)
		doneOnce := sync.OnceFunc(func() {
			signal.Stop(done)
			close(done)
		})

		signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

		go func() {
			lch <- s.Start()
			doneOnce()
		}()

		select {
		case err := <-lch:
			if err != nil {
				return fmt.Errorf("server error: %w", err)
			}
		case <-done:
		}

		ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
		return s.Shutdown(ctx)
	},
}
