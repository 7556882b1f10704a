// Package cmd holds the plumbing shared by the briefctl subcommands:
// configuration loading, logger and backend setup, and output markers.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/morning-briefings/briefctl/pkg/backend"
	"github.com/morning-briefings/briefctl/pkg/config"
	"github.com/morning-briefings/briefctl/pkg/db"
	logr "github.com/morning-briefings/briefctl/pkg/log"
	"github.com/morning-briefings/briefctl/pkg/store"
	"github.com/morning-briefings/briefctl/pkg/store/database"
	"github.com/spf13/cobra"
)

var logFileKey = &struct{ string }{"log-file"}

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	failureStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
)

// Success prints a success line prefixed with a check mark.
func Success(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintln(w, successStyle.Render("✓")+" "+fmt.Sprintf(format, args...))
}

// Failure prints err prefixed with a cross mark.
func Failure(w io.Writer, err error) {
	fmt.Fprintln(w, failureStyle.Render("✗")+" "+err.Error())
}

// InitConfigContext builds the configuration from .env, the optional config
// file given with --config and the environment, in that order, and sets up
// the logger. Both are stored in the command context.
func InitConfigContext(c *cobra.Command, _ []string) error {
	ctx := c.Context()
	if err := config.LoadDotEnv(); err != nil {
		return err
	}

	cfg := config.DefaultConfig()
	if path, _ := c.Flags().GetString("config"); path != "" {
		if err := cfg.ParseFile(path); err != nil {
			return fmt.Errorf("parse config file: %w", err)
		}
	}
	if err := cfg.ParseEnv(); err != nil {
		return err
	}
	if err := cfg.Normalize(); err != nil {
		return err
	}

	logger, f, err := logr.NewLogger(cfg)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}

	ctx = config.WithContext(ctx, cfg)
	ctx = log.WithContext(ctx, logger)
	if f != nil {
		ctx = context.WithValue(ctx, logFileKey, f)
	}
	c.SetContext(ctx)

	return nil
}

// InitBackendContext opens the database and initializes the backend
// context. It expects InitConfigContext to have run first.
func InitBackendContext(c *cobra.Command, _ []string) error {
	ctx := c.Context()
	cfg := config.FromContext(ctx)
	if cfg == nil {
		return config.ErrNilConfig
	}
	if err := cfg.DB.Validate(); err != nil {
		return err
	}

	log.FromContext(ctx).Debug("opening database", "driver", cfg.DB.Driver, "dsn", cfg.DB.RedactedDSN())
	dbx, err := db.Open(ctx, cfg.DB.Driver, cfg.DB.DSN())
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}

	ctx = db.WithContext(ctx, dbx)
	dbstore := database.New(ctx, dbx)
	ctx = store.WithContext(ctx, dbstore)
	be := backend.New(ctx, cfg, dbx, dbstore)
	ctx = backend.WithContext(ctx, be)

	c.SetContext(ctx)

	return nil
}

// CloseDBContext closes the database context.
func CloseDBContext(ctx context.Context) error {
	dbx := db.FromContext(ctx)
	if dbx != nil {
		if err := dbx.Close(); err != nil {
			return fmt.Errorf("close database: %w", err)
		}
	}

	return nil
}

// Cleanup releases the database handle and the log file held by ctx. Post
// run hooks are skipped when a command fails, so this runs after every
// execution instead.
func Cleanup(ctx context.Context) error {
	if ctx == nil {
		return nil
	}

	err := CloseDBContext(ctx)
	if f, ok := ctx.Value(logFileKey).(*os.File); ok && f != nil {
		err = errors.Join(err, f.Close())
	}

	return err
}
