package admin

import (
	"fmt"

	"github.com/morning-briefings/briefctl/cmd"
	"github.com/morning-briefings/briefctl/pkg/backend"
	"github.com/morning-briefings/briefctl/pkg/config"
	"github.com/spf13/cobra"
)

var (
	// Command is the admin command.
	Command = &cobra.Command{
		Use:   "admin",
		Short: "Administrate the database",
	}

	setupCmd = &cobra.Command{
		Use:               "setup",
		Short:             "Create the users table and its index if they don't exist",
		Args:              cobra.NoArgs,
		PersistentPreRunE: cmd.InitBackendContext,
		RunE: func(c *cobra.Command, _ []string) error {
			ctx := c.Context()
			be := backend.FromContext(ctx)
			out := c.OutOrStdout()

			fmt.Fprintln(out, "Creating users table...")
			if withEntries {
				fmt.Fprintln(out, "Creating entries table...")
			}
			if err := be.Setup(ctx, withEntries); err != nil {
				return fmt.Errorf("error creating users table: %w", err)
			}

			cmd.Success(out, "Users table created successfully!")
			if withEntries {
				cmd.Success(out, "Entries table created successfully!")
			}
			return nil
		},
	}

	pingCmd = &cobra.Command{
		Use:               "ping",
		Short:             "Check that the database is reachable",
		Args:              cobra.NoArgs,
		PersistentPreRunE: cmd.InitBackendContext,
		RunE: func(c *cobra.Command, _ []string) error {
			ctx := c.Context()
			cfg := config.FromContext(ctx)
			be := backend.FromContext(ctx)

			info, err := be.Ping(ctx)
			if err != nil {
				return fmt.Errorf("error pinging database: %w", err)
			}

			out := c.OutOrStdout()
			cmd.Success(out, "Connected to %s", cfg.DB.RedactedDSN())
			fmt.Fprintf(out, "  Driver: %s\n", info.Driver)
			fmt.Fprintf(out, "  Version: %s\n", info.Version)
			if cfg.DB.Schema != "" {
				fmt.Fprintf(out, "  Schema: %s\n", cfg.DB.Schema)
			}
			return nil
		},
	}

	configCmd = &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			cfg := config.FromContext(c.Context())
			fmt.Fprint(c.OutOrStdout(), cfg.String())
			return nil
		},
	}

	withEntries bool
)

func init() {
	setupCmd.Flags().BoolVar(&withEntries, "with-entries", false, "also create the entries table (sandbox databases only)")

	Command.AddCommand(
		setupCmd,
		pingCmd,
		configCmd,
	)
}
