package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/gatehouse"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of gatehouse",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("gatehouse version %s\n", strings.TrimSpace(gatehouse.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
