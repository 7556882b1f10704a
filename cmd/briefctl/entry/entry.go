package entry

import (
	"fmt"
	"time"

	"github.com/caarlos0/duration"
	"github.com/caarlos0/tablewriter"
	"github.com/morning-briefings/briefctl/cmd"
	"github.com/morning-briefings/briefctl/pkg/backend"
	"github.com/morning-briefings/briefctl/pkg/db/models"
	"github.com/morning-briefings/briefctl/pkg/fixtures"
	"github.com/spf13/cobra"
)

// Command is the entry command.
var Command = &cobra.Command{
	Use:               "entry",
	Aliases:           []string{"entries"},
	Short:             "Manage briefing entries",
	PersistentPreRunE: cmd.InitBackendContext,
}

func init() {
	var fixture string
	seedCommand := &cobra.Command{
		Use:   "seed",
		Short: "Insert the example briefing entries",
		Long: "Insert the example briefing entries in a single transaction. " +
			"Every run inserts new rows, so seeding twice duplicates the entries.",
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			ctx := c.Context()
			be := backend.FromContext(ctx)

			f := fixtures.Default()
			if fixture != "" {
				var err error
				f, err = fixtures.LoadFile(fixture)
				if err != nil {
					return fmt.Errorf("error loading fixture: %w", err)
				}
			}

			res, err := be.SeedEntries(ctx, f)
			if err != nil {
				return fmt.Errorf("error inserting entries: %w", err)
			}

			out := c.OutOrStdout()
			cmd.Success(out, "Successfully inserted %d example entries into the database!", res.Inserted)
			fmt.Fprintf(out, "  - %d approved entries\n", res.Approved)
			fmt.Fprintf(out, "  - %d pending approval\n", res.Pending)
			return nil
		},
	}

	seedCommand.Flags().StringVarP(&fixture, "fixture", "f", "", "YAML file with the entries to insert instead of the built-in examples")

	var since, region string
	listCommand := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List briefing entries, newest first",
		Args:    cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			ctx := c.Context()
			be := backend.FromContext(ctx)

			filter := backend.EntryFilter{Region: region}
			if since != "" {
				d, err := duration.Parse(since)
				if err != nil {
					return fmt.Errorf("invalid --since %q: %w", since, err)
				}
				filter.Since = d
			}

			entries, err := be.Entries(ctx, filter)
			if err != nil {
				return fmt.Errorf("error listing entries: %w", err)
			}

			if len(entries) == 0 {
				fmt.Fprintln(c.OutOrStdout(), "No entries found")
				return nil
			}

			return tablewriter.Render(
				c.OutOrStdout(),
				entries,
				[]string{"Date", "Region", "Country", "Priority", "Headline", "State"},
				func(e models.Entry) ([]string, error) {
					state := "pending"
					if e.Approved {
						state = "approved"
					}
					return []string{
						e.Date.Format(time.DateOnly),
						e.Region,
						e.Country,
						e.Priority,
						e.Headline,
						state,
					}, nil
				},
			)
		},
	}

	listCommand.Flags().StringVar(&since, "since", "", "only list entries dated within this duration (e.g. 1w, 3d, 12h)")
	listCommand.Flags().StringVar(&region, "region", "", "only list entries whose region matches this glob (e.g. 'Africa - *')")

	Command.AddCommand(
		seedCommand,
		listCommand,
	)
}
