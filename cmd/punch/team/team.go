// Package team implements the team command.
package team

import (
	"fmt"
	"strconv"

	"github.com/caarlos0/tablewriter"
	"github.com/charmbracelet/punch/cmd"
	"github.com/charmbracelet/punch/pkg/access"
	"github.com/charmbracelet/punch/pkg/backend"
	"github.com/charmbracelet/punch/pkg/proto"
	"github.com/spf13/cobra"
)

// Command is the team subcommand.
var Command = &cobra.Command{
	Use:                "team",
	Aliases:            []string{"teams"},
	Short:              "Manage teams",
	PersistentPreRunE:  cmd.InitBackendContext,
	PersistentPostRunE: cmd.CloseDBContext,
}

func parseTeamID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid team id: %q", s)
	}
	return id, nil
}

func init() {
	var owner, color string
	teamCreateCommand := &cobra.Command{
		Use:   "create NAME",
		Short: "Create a new team",
		Long:  "Create a new team. The owner becomes the team's first admin.",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			ctx := c.Context()
			be := backend.FromContext(ctx)
			u, err := be.UserByEmail(ctx, owner)
			if err != nil {
				return err
			}

			t, err := be.CreateTeam(ctx, u, args[0], color)
			if err != nil {
				return err
			}

			c.Printf("Created team %s (%d)\n", t.Name(), t.ID())
			return nil
		},
	}

	teamCreateCommand.Flags().StringVarP(&owner, "owner", "o", "", "email of the team's first admin")
	teamCreateCommand.Flags().StringVar(&color, "color", "", "display color of the team, e.g. #ff00aa")
	teamCreateCommand.MarkFlagRequired("owner") //nolint:errcheck

	teamListCommand := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List teams",
		Args:    cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			ctx := c.Context()
			be := backend.FromContext(ctx)
			teams, err := be.Teams(ctx, backend.SystemUser())
			if err != nil {
				return err
			}

			return tablewriter.Render(
				c.OutOrStdout(),
				teams,
				[]string{"ID", "Name", "Color"},
				func(t proto.Team) ([]string, error) {
					return []string{strconv.FormatInt(t.ID(), 10), t.Name(), t.Color()}, nil
				},
			)
		},
	}

	teamMembersCommand := &cobra.Command{
		Use:   "members TEAM_ID",
		Short: "List the members of a team",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			ctx := c.Context()
			be := backend.FromContext(ctx)
			id, err := parseTeamID(args[0])
			if err != nil {
				return err
			}

			members, err := be.TeamMembers(ctx, backend.SystemUser(), id)
			if err != nil {
				return err
			}

			return tablewriter.Render(
				c.OutOrStdout(),
				members,
				[]string{"ID", "Email", "Name", "Role"},
				func(m proto.TeamMember) ([]string, error) {
					return []string{
						strconv.FormatInt(m.UserID, 10),
						m.Email,
						m.DisplayName,
						m.Role.String(),
					}, nil
				},
			)
		},
	}

	teamAddMemberCommand := &cobra.Command{
		Use:   "add-member TEAM_ID EMAIL [MEMBER|MANAGER|ADMIN]",
		Short: "Add a user to a team",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(c *cobra.Command, args []string) error {
			ctx := c.Context()
			be := backend.FromContext(ctx)
			id, err := parseTeamID(args[0])
			if err != nil {
				return err
			}

			role := access.MemberRole
			if len(args) > 2 {
				role = access.ParseRole(args[2])
			}

			u, err := be.UserByEmail(ctx, args[1])
			if err != nil {
				return err
			}

			m, err := be.AddTeamMember(ctx, backend.SystemUser(), id, u.ID(), role)
			if err != nil {
				return err
			}

			c.Printf("Added %s to team %d as %s\n", m.Email, id, m.Role)
			return nil
		},
	}

	Command.AddCommand(
		teamCreateCommand,
		teamListCommand,
		teamMembersCommand,
		teamAddMemberCommand,
	)
}
