package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// version is set at build time with -ldflags "-X ...cmd.version=...".
var version = "dev"

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "puredry",
	Short: "PureDry - dehydrated food catalog, cart and quote service",
	Long: `PureDry serves the product catalog, the device cart and the
request-for-quote workflow over a JSON API.

Use "serve" to run the API, "migrate" and "seed" to prepare the databases,
and "quotes" to inspect submitted quote requests.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ./puredry.yaml)")
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
