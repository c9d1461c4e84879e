// Package user implements the user command.
package user

import (
	"fmt"
	"strconv"

	"github.com/caarlos0/tablewriter"
	"github.com/charmbracelet/punch/cmd"
	"github.com/charmbracelet/punch/pkg/backend"
	"github.com/charmbracelet/punch/pkg/proto"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

// Command is the user subcommand.
var Command = &cobra.Command{
	Use:                "user",
	Aliases:            []string{"users"},
	Short:              "Manage users",
	PersistentPreRunE:  cmd.InitBackendContext,
	PersistentPostRunE: cmd.CloseDBContext,
}

func init() {
	var admin bool
	var name string
	userCreateCommand := &cobra.Command{
		Use:   "create EMAIL",
		Short: "Create a new user",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			ctx := c.Context()
			be := backend.FromContext(ctx)

			u, err := be.CreateUser(ctx, args[0], proto.UserOptions{
				Admin:       admin,
				DisplayName: name,
			})
			if err != nil {
				return err
			}

			c.Printf("Created user %s (%d)\n", u.Email(), u.ID())
			return nil
		},
	}

	userCreateCommand.Flags().BoolVarP(&admin, "admin", "a", false, "make the user a superadmin")
	userCreateCommand.Flags().StringVarP(&name, "name", "n", "", "the user's display name")

	userListCommand := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List users",
		Args:    cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			ctx := c.Context()
			be := backend.FromContext(ctx)
			users, err := be.Users(ctx)
			if err != nil {
				return err
			}

			return tablewriter.Render(
				c.OutOrStdout(),
				users,
				[]string{"ID", "Email", "Name", "Superadmin"},
				func(u proto.User) ([]string, error) {
					return []string{
						strconv.FormatInt(u.ID(), 10),
						u.Email(),
						u.DisplayName(),
						strconv.FormatBool(be.IsSuperadmin(u)),
					}, nil
				},
			)
		},
	}

	userInfoCommand := &cobra.Command{
		Use:   "info EMAIL",
		Short: "Show information about a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			ctx := c.Context()
			be := backend.FromContext(ctx)
			u, err := be.UserByEmail(ctx, args[0])
			if err != nil {
				return err
			}

			w := c.OutOrStdout()
			cmd.PrintField(w, "ID", u.ID())
			cmd.PrintField(w, "Email", u.Email())
			cmd.PrintField(w, "Name", u.DisplayName())
			cmd.PrintField(w, "Superadmin", be.IsSuperadmin(u))
			cmd.PrintField(w, "Created", humanize.Time(u.CreatedAt()))

			teams, err := be.Teams(ctx, u)
			if err != nil {
				return err
			}
			cmd.PrintField(w, "Teams", len(teams))
			for _, t := range teams {
				fmt.Fprintf(w, "  %s (%s)\n", t.Name(), be.Role(ctx, u, t.ID()))
			}

			return nil
		},
	}

	userRenameCommand := &cobra.Command{
		Use:   "rename EMAIL NAME",
		Short: "Change a user's display name",
		Args:  cobra.ExactArgs(2),
		RunE: func(c *cobra.Command, args []string) error {
			ctx := c.Context()
			be := backend.FromContext(ctx)
			u, err := be.UserByEmail(ctx, args[0])
			if err != nil {
				return err
			}

			_, err = be.SetDisplayName(ctx, u.ID(), args[1])
			return err
		},
	}

	userSetAdminCommand := &cobra.Command{
		Use:   "set-admin EMAIL [true|false]",
		Short: "Make a user a superadmin",
		Args:  cobra.ExactArgs(2),
		RunE: func(c *cobra.Command, args []string) error {
			ctx := c.Context()
			be := backend.FromContext(ctx)
			isAdmin, err := strconv.ParseBool(args[1])
			if err != nil {
				return err
			}

			u, err := be.UserByEmail(ctx, args[0])
			if err != nil {
				return err
			}

			return be.SetAdmin(ctx, u.ID(), isAdmin)
		},
	}

	Command.AddCommand(
		userCreateCommand,
		userInfoCommand,
		userListCommand,
		userRenameCommand,
		userSetAdminCommand,
	)
}
