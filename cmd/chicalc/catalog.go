package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/sehha/chicalc/internal/output"
)

var catalogCmd = &cobra.Command{
	Use:       "catalog [sub-limits|exclusions|services|privileges]",
	Short:     "List benefit catalog reference data",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: output.CatalogKinds,
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := loadCatalog(cmd)
		if err != nil {
			return err
		}
		format, _ := cmd.Flags().GetString("format")
		lang, _ := cmd.Flags().GetString("lang")

		kinds := output.CatalogKinds
		if len(args) == 1 {
			kinds = []string{strings.ToLower(args[0])}
		}
		for _, kind := range kinds {
			data, err := output.FormatCatalog(cat, kind, format, lang)
			if err != nil {
				return err
			}
			if _, err := cmd.OutOrStdout().Write(data); err != nil {
				return err
			}
		}
		return nil
	},
}
