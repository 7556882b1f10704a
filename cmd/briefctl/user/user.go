package user

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/tablewriter"
	"github.com/dustin/go-humanize"
	"github.com/morning-briefings/briefctl/cmd"
	"github.com/morning-briefings/briefctl/pkg/backend"
	"github.com/morning-briefings/briefctl/pkg/db/models"
	"github.com/spf13/cobra"
)

var (
	// Command is the user command.
	Command = &cobra.Command{
		Use:               "user",
		Aliases:           []string{"users"},
		Short:             "Manage users of the briefing application",
		PersistentPreRunE: cmd.InitBackendContext,
	}

	// ErrPasswordMismatch is returned by verify when the password doesn't
	// match the stored hash.
	ErrPasswordMismatch = errors.New("password does not match")
)

func init() {
	var name, role string
	userCreateCommand := &cobra.Command{
		Use:   "create EMAIL PASSWORD",
		Short: "Create a user, or update the password, name and role of an existing one",
		Args:  cobra.ExactArgs(2),
		RunE: func(c *cobra.Command, args []string) error {
			ctx := c.Context()
			be := backend.FromContext(ctx)
			out := c.OutOrStdout()

			fmt.Fprintf(out, "Creating user: %s\n", args[0])
			u, err := be.UpsertUser(ctx, args[0], args[1], backend.UserOptions{
				Name: name,
				Role: role,
			})
			if err != nil {
				return fmt.Errorf("error creating user: %w", err)
			}

			cmd.Success(out, "User created successfully:")
			fmt.Fprintf(out, "  ID: %s\n", u.ID)
			fmt.Fprintf(out, "  Email: %s\n", u.Email)
			fmt.Fprintf(out, "  Name: %s\n", displayName(u))
			fmt.Fprintf(out, "  Role: %s\n", u.Role)
			return nil
		},
	}

	userCreateCommand.Flags().StringVar(&name, "name", "", "display name of the user")
	userCreateCommand.Flags().StringVar(&role, "role", backend.DefaultRole, "role of the user")

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
				return fmt.Errorf("error listing users: %w", err)
			}

			if len(users) == 0 {
				fmt.Fprintln(c.OutOrStdout(), "No users found")
				return nil
			}

			return tablewriter.Render(
				c.OutOrStdout(),
				users,
				[]string{"Email", "Name", "Role", "Created", "Updated"},
				func(u models.User) ([]string, error) {
					return []string{
						u.Email,
						displayName(u),
						u.Role,
						humanize.Time(u.CreatedAt),
						humanize.Time(u.UpdatedAt),
					}, nil
				},
			)
		},
	}

	userVerifyCommand := &cobra.Command{
		Use:   "verify EMAIL PASSWORD",
		Short: "Check a password against the stored hash of a user",
		Args:  cobra.ExactArgs(2),
		RunE: func(c *cobra.Command, args []string) error {
			ctx := c.Context()
			be := backend.FromContext(ctx)
			v, err := be.VerifyUser(ctx, args[0], args[1])
			if err != nil {
				return fmt.Errorf("error verifying user: %w", err)
			}

			fmt.Fprintf(c.OutOrStdout(), "User: %s (%s)\n", v.User.Email, v.User.Role)
			fmt.Fprintf(c.OutOrStdout(), "  Created: %s\n", v.User.CreatedAt.Format(time.DateTime))
			if !v.IsBcrypt {
				return fmt.Errorf("stored password is not a bcrypt hash")
			}
			if !v.Match {
				return ErrPasswordMismatch
			}

			cmd.Success(c.OutOrStdout(), "Password matches")
			return nil
		},
	}

	userDeleteCommand := &cobra.Command{
		Use:     "delete EMAIL",
		Aliases: []string{"rm", "remove"},
		Short:   "Delete a user",
		Args:    cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			ctx := c.Context()
			be := backend.FromContext(ctx)
			if err := be.DeleteUser(ctx, args[0]); err != nil {
				return fmt.Errorf("error deleting user: %w", err)
			}

			cmd.Success(c.OutOrStdout(), "User %s deleted", args[0])
			return nil
		},
	}

	var yes bool
	userResetCommand := &cobra.Command{
		Use:   "reset",
		Short: "Delete every user",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			if !yes {
				return fmt.Errorf("refusing to delete every user without --yes")
			}

			ctx := c.Context()
			be := backend.FromContext(ctx)
			before, after, err := be.ResetUsers(ctx)
			if err != nil {
				return fmt.Errorf("error resetting users: %w", err)
			}

			fmt.Fprintf(c.OutOrStdout(), "Users before reset: %d\n", before)
			cmd.Success(c.OutOrStdout(), "Deleted %d users, %d remaining", before-after, after)
			return nil
		},
	}

	userResetCommand.Flags().BoolVarP(&yes, "yes", "y", false, "confirm the deletion")

	Command.AddCommand(
		userCreateCommand,
		userListCommand,
		userVerifyCommand,
		userDeleteCommand,
		userResetCommand,
	)
}

func displayName(u models.User) string {
	if !u.Name.Valid || u.Name.String == "" {
		return "-"
	}
	return u.Name.String
}
