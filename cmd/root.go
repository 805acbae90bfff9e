package cmd

import (
	"os"

	"github.com/brandkit/brandkit/pkg/buildinfo"
	"github.com/brandkit/brandkit/pkg/exitcode"
	"github.com/brandkit/brandkit/pkg/logger"
	"github.com/spf13/cobra"
)

// newRootCommand creates a fresh root command instance.
// This factory pattern allows tests to create isolated command trees without shared state.
func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "brandkit",
		Short: "Brand asset pipeline and catalog",
		Long: `Brandkit converts a tree of source images into a multi-format,
multi-resolution asset set, writes a manifest cataloging every generated
variant, and serves a searchable catalog over that manifest.

Examples:
   brandkit generate            # Convert sources and write the manifest
   brandkit manifest            # Re-index an existing output tree
   brandkit search "logo"       # Query the catalog from the terminal
   brandkit serve               # Browse the catalog over HTTP`,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			initializeLogger(cmd)
		},
	}

	cmd.PersistentFlags().String("log-level", "info", "Set log level (debug|info|warn|error)")
	cmd.PersistentFlags().Bool("json", false, "Output logs in JSON format")
	cmd.PersistentFlags().Bool("no-color", false, "Disable colored output")
	cmd.PersistentFlags().StringP("config", "c", "", "Path to the generation config file")

	cmd.Version = buildinfo.Effective()
	cmd.SetVersionTemplate("brandkit {{.Version}}\n")

	return cmd
}

// registerSubcommands adds all subcommands to the root command.
// This is called from init() for production and can be called explicitly in tests.
func registerSubcommands(cmd *cobra.Command) {
	cmd.AddCommand(versionCmd)
	cmd.AddCommand(generateCmd)
	cmd.AddCommand(manifestCmd)
	cmd.AddCommand(searchCmd)
	cmd.AddCommand(resolveCmd)
	cmd.AddCommand(serveCmd)
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = newRootCommand()

// Execute runs the CLI. It is called once from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error("Command execution failed", logger.Err(err))
		os.Exit(exitcode.GeneralError)
	}
}

func init() {
	registerSubcommands(rootCmd)
}

// initializeLogger sets up the logger based on command flags
func initializeLogger(cmd *cobra.Command) {
	logLevelStr, _ := cmd.Flags().GetString("log-level")
	jsonLogs, _ := cmd.Flags().GetBool("json")
	noColor, _ := cmd.Flags().GetBool("no-color")
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	logger.Initialize(logger.Config{
		Level:     logger.ParseLevel(logLevelStr),
		UseColor:  !noColor,
		JSON:      jsonLogs,
		Component: "brandkit",
		DryRun:    dryRun,
	})
}
