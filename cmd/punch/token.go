package main

import (
	"fmt"
	"time"

	"github.com/caarlos0/duration"
	"github.com/charmbracelet/punch/cmd"
	"github.com/charmbracelet/punch/pkg/backend"
	"github.com/charmbracelet/punch/pkg/config"
	"github.com/charmbracelet/punch/pkg/jwk"
	"github.com/spf13/cobra"
)

var (
	expiresIn string

	tokenCmd = &cobra.Command{
		Use:                "token EMAIL",
		Short:              "Issue an access token for a user",
		Long:               "Issue a signed bearer token for a user. Durations accept days and weeks, e.g. 7d or 2w.",
		Args:               cobra.ExactArgs(1),
		PersistentPreRunE:  cmd.InitBackendContext,
		PersistentPostRunE: cmd.CloseDBContext,
		RunE: func(c *cobra.Command, args []string) error {
			ctx := c.Context()
			cfg := config.FromContext(ctx)
			be := backend.FromContext(ctx)

			u, err := be.UserByEmail(ctx, args[0])
			if err != nil {
				return err
			}

			expiry := cfg.Auth.TokenExpiry
			if expiresIn != "" {
				expiry, err = duration.Parse(expiresIn)
				if err != nil {
					return fmt.Errorf("invalid expiration: %w", err)
				}
			}
			if expiry <= 0 {
				return fmt.Errorf("expiration must be positive")
			}

			kp, err := jwk.NewPair(cfg)
			if err != nil {
				return err
			}

			now := time.Now()
			token, err := kp.NewToken(cfg, u.Email(), u.ID(), now, expiry)
			if err != nil {
				return err
			}

			fmt.Fprintln(c.OutOrStdout(), token)
			c.PrintErrf("Expires at %s\n", cmd.FormatTime(now.Add(expiry)))
			return nil
		},
	}
)

func init() {
	tokenCmd.Flags().StringVarP(&expiresIn, "expires-in", "e", "", "token lifetime, defaults to the configured token expiry")
}
