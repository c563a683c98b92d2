// Remotectl drives a running plasma-remote API server from the terminal.
//
// Usage:
//
//	remotectl [command] [flags]
//
// See 'remotectl --help' for available commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var serverURL string

var rootCmd = &cobra.Command{
	Use:   "remotectl",
	Short: "Plasma TV remote command line client",
	Long: `A command line client for the plasma-remote API server.

Presses keys, zaps channels, manages shortcut keys and sends free-text
commands to the assistant.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", envOr("REMOTE_SERVER", "http://localhost:8080"), "API server base URL")

	rootCmd.AddCommand(stateCmd)
	rootCmd.AddCommand(pressCmd)
	rootCmd.AddCommand(zapCmd)
	rootCmd.AddCommand(shortcutsCmd)
	rootCmd.AddCommand(askCmd)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
