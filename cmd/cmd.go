// Package cmd holds helpers shared by the punch subcommands.
package cmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/punch/pkg/backend"
	"github.com/charmbracelet/punch/pkg/config"
	"github.com/charmbracelet/punch/pkg/db"
	"github.com/charmbracelet/punch/pkg/store"
	"github.com/charmbracelet/punch/pkg/store/database"
	"github.com/spf13/cobra"
)

// InitBackendContext opens the database and attaches the store and backend
// to the command context.
func InitBackendContext(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	cfg := config.FromContext(ctx)
	if _, err := os.Stat(cfg.DataPath); errors.Is(err, fs.ErrNotExist) {
		if err := os.MkdirAll(cfg.DataPath, os.ModePerm); err != nil {
			return fmt.Errorf("create data directory: %w", err)
		}
	}
	dbx, err := db.Open(ctx, cfg.DB.Driver, cfg.DB.DataSource)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}

	ctx = db.WithContext(ctx, dbx)
	dbstore := database.New(ctx, dbx)
	ctx = store.WithContext(ctx, dbstore)
	be := backend.New(ctx, cfg, dbx, dbstore)
	ctx = backend.WithContext(ctx, be)

	cmd.SetContext(ctx)

	return nil
}

// CloseDBContext closes the database context.
func CloseDBContext(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	dbx := db.FromContext(ctx)
	if dbx != nil {
		if err := dbx.Close(); err != nil {
			return fmt.Errorf("close database: %w", err)
		}
	}

	return nil
}

var keyStyle = lipgloss.NewStyle().Bold(true)

// PrintField prints a labeled value on its own line.
func PrintField(w io.Writer, key string, value any) {
	fmt.Fprintf(w, "%s %v\n", keyStyle.Render(key+":"), value)
}

// FormatTime formats a timestamp for listings.
func FormatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(time.DateTime)
}
