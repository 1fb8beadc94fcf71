package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/sehha/chicalc/internal/tui"
)

var rootCmd = &cobra.Command{
	Use:   "chicalc-tui",
	Short: "Interactive sub-limit and exclusion impact explorer",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		catalogPath, _ := cmd.Flags().GetString("catalog")
		members, _ := cmd.Flags().GetInt("members")
		lang, _ := cmd.Flags().GetString("lang")
		rawBase, _ := cmd.Flags().GetString("base-premium")

		base, err := decimal.NewFromString(rawBase)
		if err != nil {
			return fmt.Errorf("--base-premium: %q is not a number", rawBase)
		}
		if catalogPath != "" {
			if _, err := os.Stat(catalogPath); os.IsNotExist(err) {
				return fmt.Errorf("catalog file not found: %s", catalogPath)
			}
		}

		model := tui.NewModel(tui.Options{
			CatalogPath:    catalogPath,
			MemberCount:    members,
			BasePremiumSAR: base,
			Lang:           lang,
		})

		p := tea.NewProgram(model, tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("error running TUI: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.Flags().String("catalog", "", "Path to a benefit catalog YAML (default: embedded catalog)")
	rootCmd.Flags().Int("members", 1000, "Number of insured members")
	rootCmd.Flags().String("base-premium", "5000", "Base annual premium per member (SAR)")
	rootCmd.Flags().String("lang", "en", "Starting language (ar, en)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
