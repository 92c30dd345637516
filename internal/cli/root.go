// Package cli is the storefront command tree.
package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCmd builds the storefront command. Running it without a subcommand serves HTTP.
func NewRootCmd() *cobra.Command {
	var configFile string

	root := &cobra.Command{
		Use:   "storefront",
		Short: "ACME storefront web server",
		Long: `storefront serves the ACME home and shop pages together with a JSON API
for the catalog, the session cart, the product selection and the home carousel.

Configuration is read from storefront.yaml (or --config), a .env file and
STOREFRONT_* environment variables.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Config file (default: ./storefront.{yaml,json,toml} if present)")

	serve := newServeCmd(&configFile)
	root.RunE = serve.RunE
	root.AddCommand(serve, newCatalogCmd())
	return root
}
