// Package cmd holds the command line interface of cartomat: a batch
// enrichment command and the upload server, sharing one configuration and
// provider wiring.
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "cartomat",
	Short: "géocodage et cartographie de tableaux nominatifs",
	Long: `
cartomat normalise un tableau de personnes et d'adresses, géocode chaque
adresse auprès de deux fournisseurs indépendants avec un cache persistant,
signale les désaccords entre fournisseurs et produit une carte interactive.
`,
}

var Version = "dev"

func Execute(version string) {
	Version = version

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
