// cmd/panel/main.go
//
// Usage:
//
//	panel run -c panel.yaml       # drive the panel until interrupted
//	panel validate -c panel.yaml  # check a config file
//	panel version
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// set via -ldflags "-X main.version=..."
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "panel",
	Short: "KY-028 sensor panel",
	Long: `panel polls a KY-028 temperature module (analog A0 + digital D0)
and draws both values on a small display, once per interval.

Example config:
  panel:
    interval_ms: 1000
  sensor:
    driver: sim
  display:
    driver: term`,
	SilenceUsage: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "panel %s\n", version)
		fmt.Fprintf(out, "  commit: %s\n", commit)
		fmt.Fprintf(out, "  built:  %s\n", date)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
