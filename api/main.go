package main

import (
	"os"

	"github.com/rogerio-castellano/acme-storefront/internal/cli"
)

// @title ACME Storefront API
// @version 1.0
// @description Catalog browsing, session cart, product selection and home carousel for the ACME storefront.
// @host localhost:8080
// @BasePath /
func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
