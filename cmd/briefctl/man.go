package main

import (
	"fmt"

	mcobra "github.com/muesli/mango-cobra"
	"github.com/muesli/roff"
	"github.com/spf13/cobra"
)

var manCmd = &cobra.Command{
	Use:    "man",
	Short:  "Generate man pages",
	Args:   cobra.NoArgs,
	Hidden: true,
	RunE: func(c *cobra.Command, _ []string) error {
		manPage, err := mcobra.NewManPage(1, rootCmd)
		if err != nil {
			return err
		}

		manPage = manPage.WithSection("Environment", "Connection settings are read from "+
			"AZURE_POSTGRES_HOST, AZURE_POSTGRES_DB, AZURE_POSTGRES_USER, AZURE_POSTGRES_PASSWORD, "+
			"AZURE_POSTGRES_PORT, AZURE_POSTGRES_SSLMODE and AZURE_POSTGRES_SCHEMA, or from "+
			"DATABASE_URL. A .env file in the working directory is loaded first.")
		fmt.Fprintln(c.OutOrStdout(), manPage.Build(roff.NewDocument()))
		return nil
	},
}
