// Homectl is a terminal control panel for Smart Home Tech homes.
//
// It signs in to the Smart Home Tech cloud API and provides both an
// interactive full-screen panel and direct subcommands for managing
// devices, automation rules, the smart door, the camera, the TV and
// weather-based adjustment.
//
// Usage:
//
//	homectl [command] [flags]
//
// Running without arguments launches the interactive panel.
// See 'homectl --help' for available commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/smarthome-tech/homectl/internal/version"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "homectl",
	Short: "Smart Home Tech Control Panel",
	Long: `A terminal control panel for Smart Home Tech homes.

Signs in to the Smart Home Tech cloud API and manages devices,
automation rules, the smart door, the camera, the TV and weather-based
adjustment, either interactively or through direct subcommands.

If no command is specified, the interactive panel will launch automatically.`,
	Version: version.Version,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: run the interactive panel when no subcommand provided
		return runPanel(cmd, args)
	},
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("homectl %s (commit: %s)\n", version.Version, version.Commit)
	},
}
