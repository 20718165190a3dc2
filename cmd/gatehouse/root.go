package main

import (
	"fmt"
	"os"

	"github.com/aretw0/gatehouse"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "gatehouse",
	Short: "Gatehouse is a capability-gated MCP tool gateway",
	Long: `Gatehouse serves a fixed tool catalog over the Model Context Protocol
and decides per session identity which tools are visible and callable.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "Path to the YAML configuration file")
}

// loadConfig resolves the configuration: the file when --config is set,
// built-in defaults otherwise.
func loadConfig(cmd *cobra.Command) (gatehouse.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		return gatehouse.DefaultConfig(), nil
	}
	return gatehouse.LoadConfig(path)
}
