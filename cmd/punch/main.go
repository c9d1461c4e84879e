package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/punch/cmd/punch/serve"
	"github.com/charmbracelet/punch/cmd/punch/team"
	"github.com/charmbracelet/punch/cmd/punch/user"
	"github.com/charmbracelet/punch/pkg/config"
	logr "github.com/charmbracelet/punch/pkg/log"
	"github.com/charmbracelet/punch/pkg/stats"
	"github.com/spf13/cobra"
	"go.uber.org/automaxprocs/maxprocs"
)

var (
	// Version contains the application version number. It's set via ldflags
	// when building.
	Version = ""

	// CommitSHA contains the SHA of the commit that this application was built
	// against. It's set via ldflags when building.
	CommitSHA = ""

	rootCmd = &cobra.Command{
		Use:          "punch",
		Short:        "A self-hostable time tracking server",
		Long:         "Punch tracks clock-ins, breaks, and time corrections for teams.",
		SilenceUsage: true,
	}
)

func init() {
	rootCmd.AddCommand(
		manCmd,
		migrateCmd,
		tokenCmd,
		serve.Command,
		user.Command,
		team.Command,
	)
	rootCmd.CompletionOptions.HiddenDefaultCmd = true

	if len(CommitSHA) >= 7 {
		vt := rootCmd.VersionTemplate()
		rootCmd.SetVersionTemplate(vt[:len(vt)-1] + " (" + CommitSHA[0:7] + ")\n")
	}
	if Version == "" {
		if info, ok := debug.ReadBuildInfo(); ok && info.Main.Sum != "" {
			Version = info.Main.Version
		} else {
			Version = "unknown (built from source)"
		}
	}
	rootCmd.Version = Version
}

func main() {
	ctx := context.Background()
	cfg := config.DefaultConfig()
	if !cfg.Exist() {
		// Write the default config to disk.
		if err := cfg.WriteConfig(); err != nil {
			log.Fatal(fmt.Errorf("write default config: %w", err))
		}
	}
	if err := cfg.Parse(); err != nil {
		log.Fatal(fmt.Errorf("parse config: %w", err))
	}

	ctx = config.WithContext(ctx, cfg)
	logger, f, err := logr.NewLogger(cfg)
	if err != nil {
		log.Fatal(fmt.Errorf("create logger: %w", err))
	}

	ctx = log.WithContext(ctx, logger)
	if f != nil {
		defer f.Close() //nolint:errcheck
	}

	// Set the max number of processes to the number of CPUs
	// This is useful when running punch in a container
	if _, err := maxprocs.Set(maxprocs.Logger(log.Debugf)); err != nil {
		log.Warn("couldn't set automaxprocs", "error", err)
	}

	stats.RegisterBuildInfo(Version, CommitSHA)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, context.Canceled) {
			os.Exit(1) //nolint:gocritic
		}
	}
}
