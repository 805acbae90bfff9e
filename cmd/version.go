package cmd

import (
	"fmt"
	"runtime"

	"github.com/brandkit/brandkit/pkg/buildinfo"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, _ []string) {
		extended, _ := cmd.Flags().GetBool("extended")
		fmt.Fprintf(cmd.OutOrStdout(), "brandkit %s\n", buildinfo.Effective())
		if extended {
			fmt.Fprintf(cmd.OutOrStdout(), "  go:       %s\n", runtime.Version())
			fmt.Fprintf(cmd.OutOrStdout(), "  platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)
			if mv := buildinfo.ModuleVersion(); mv != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "  module:   %s\n", mv)
			}
		}
	},
}

func init() {
	versionCmd.Flags().Bool("extended", false, "Show extended build information")
}
