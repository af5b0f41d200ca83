package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	configFile string
	verbose    bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "capdash",
	Short: "Workforce capability assessment dashboard",
	Long: `CapDash CLI

Imports workforce capability questionnaires and establishment registers,
and serves the assessment dashboard API.

Usage:
  go run ./cmd/capdash [command]

Examples:
  go run ./cmd/capdash api
  go run ./cmd/capdash import officers staff.xlsx --commit
  go run ./cmd/capdash snapshot
  go run ./cmd/capdash status`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is .env)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
