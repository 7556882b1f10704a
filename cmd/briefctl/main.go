package main

import (
	"context"
	"os"
	"os/signal"
	"runtime/debug"

	"github.com/charmbracelet/log"
	"github.com/morning-briefings/briefctl/cmd"
	"github.com/morning-briefings/briefctl/cmd/briefctl/admin"
	"github.com/morning-briefings/briefctl/cmd/briefctl/entry"
	"github.com/morning-briefings/briefctl/cmd/briefctl/user"
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
		Use:   "briefctl",
		Short: "Administer the morning briefings database",
		Long: "briefctl sets up the morning briefings database, manages the users " +
			"of the briefing application and seeds example entries.",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: cmd.InitConfigContext,
	}
)

func init() {
	cobra.EnableTraverseRunHooks = true

	rootCmd.PersistentFlags().StringP("config", "c", "", "path to a YAML config file")
	rootCmd.AddCommand(
		admin.Command,
		entry.Command,
		user.Command,
		manCmd,
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
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	// Set the max number of processes to the number of CPUs
	// This is useful when running in a container
	if _, err := maxprocs.Set(maxprocs.Logger(log.Debugf)); err != nil {
		log.Warn("couldn't set automaxprocs", "error", err)
	}

	c, err := rootCmd.ExecuteContextC(ctx)
	if c != nil {
		if cerr := cmd.Cleanup(c.Context()); cerr != nil && err == nil {
			err = cerr
		}
	}
	if err != nil {
		cmd.Failure(os.Stderr, err)
		return 1
	}

	return 0
}
