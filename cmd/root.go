package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mediawatch/labeling-api/pkg/config"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "labeling-api",
	Short: "Media labeling API server",
	Long: `Media Labeling API - event labeling and reporting for TV monitoring

The server exposes captured TV events for review, lets annotators group
them under typed labels (songs, ads, errors, programs), and produces
aggregate reports over the labeled data.

Features:
  • Event browsing with date, device and type filters
  • Exclusive label grouping with typed payloads
  • Daily program guide per monitoring device
  • Six aggregate reports with CSV export
  • Token-based authentication with role checks`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// NewRootCmd creates a new root command (exported for testing)
func NewRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	cobra.OnInitialize(loadConfig)
}

// loadConfig loads the configuration when a command needs it.
// Called lazily so version and help work without a config file.
func loadConfig() {
	cmd, _, _ := rootCmd.Find(os.Args[1:])
	if cmd != nil && (cmd.Name() == "version" || cmd.Name() == "help") {
		return
	}

	if err := config.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing config: %v\n", err)
		os.Exit(1)
	}
}
