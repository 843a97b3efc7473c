// Command storelinks runs the store/link operations on spreadsheet files
// without the web UI.
//
//	storelinks dedup --input visits.xlsx
//	storelinks extract --input visits.xlsx --store-letter E --link-letter L
//	storelinks compare --a january.csv --b february.xlsx --links
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/JonMunkholm/storelinks/internal/config"
	"github.com/JonMunkholm/storelinks/internal/core"
	"github.com/JonMunkholm/storelinks/internal/logging"
)

func main() {
	// .env is optional and never overrides the environment
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// app is shared by the subcommands once the root pre-run has configured it.
type app struct {
	service *core.Service
	links   config.LinksConfig
}

func newRootCmd() *cobra.Command {
	var logLevel, logFormat string
	a := &app{}

	rootCmd := &cobra.Command{
		Use:           "storelinks",
		Short:         "Deduplicate, extract and compare store links in spreadsheets",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logging.Setup(cmd.ErrOrStderr(), logLevel, logFormat)

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			a.links = cfg.Links
			a.service = core.NewService(core.Options{
				PreferredLinkColumns: cfg.Links.PreferredColumns,
				URLPrefix:            cfg.Links.URLPrefix,
				Timeout:              cfg.Upload.Timeout,
			}, nil)
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level: debug|info|warn|error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "Log format: text|json")

	rootCmd.AddCommand(
		newDedupCmd(a),
		newExtractCmd(a),
		newCompareCmd(a),
	)
	return rootCmd
}
