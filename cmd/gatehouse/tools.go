package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/aretw0/gatehouse"
	"github.com/aretw0/gatehouse/internal/dto"
	"github.com/aretw0/gatehouse/internal/presentation/tui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// toolsCmd represents the tools command
var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "List the tool catalog",
	Long: `Prints every registered tool with its parameters, bounds and defaults.

The listing ignores visibility guards: it shows the full catalog an operator
deploys, not what one identity sees.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(cmd)
		if err != nil {
			fmt.Printf("Error loading config: %v\n", err)
			os.Exit(1)
		}

		// Upstream endpoints are not needed to print the catalog.
		gw, err := gatehouse.New(cfg)
		if err != nil {
			fmt.Printf("Error initializing gatehouse: %v\n", err)
			os.Exit(1)
		}
		defer gw.Close()

		catalog := gw.Catalog()

		if jsonMode, _ := cmd.Flags().GetBool("json"); jsonMode {
			data, err := json.MarshalIndent(dto.FromDescriptors(catalog), "", "  ")
			if err != nil {
				fmt.Printf("Error marshaling catalog: %v\n", err)
				os.Exit(1)
			}
			fmt.Println(string(data))
			return
		}

		markdown := tui.CatalogMarkdown(catalog)

		plain, _ := cmd.Flags().GetBool("plain")
		if plain || !term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Print(markdown)
			return
		}

		render := tui.NewRenderer()
		out, err := render(markdown)
		if err != nil {
			// Unusable terminal profile: fall back to raw markdown.
			fmt.Print(markdown)
			return
		}
		fmt.Print(out)
	},
}

func init() {
	rootCmd.AddCommand(toolsCmd)

	toolsCmd.Flags().Bool("plain", false, "Print raw markdown without terminal rendering")
	toolsCmd.Flags().Bool("json", false, "Print the catalog as JSON")
}
