package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sehha/chicalc/internal/calculation"
)

var sweepCmd = &cobra.Command{
	Use:   "sweep [sub-limit-id]",
	Short: "Premium impact across a sub-limit's allowed range",
	Long: `Evaluates a sub-limit at evenly spaced limits from its minimum to its maximum.

Example:
  chicalc sweep dental --steps 10 --new-copay 10`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := loadCatalog(cmd)
		if err != nil {
			return err
		}
		members, base, err := groupFlags(cmd)
		if err != nil {
			return err
		}

		subLimit, ok := cat.SubLimit(args[0])
		if !ok {
			return fmt.Errorf("sub-limit %q: %w", args[0], calculation.ErrUnknownReference)
		}
		copay := subLimit.CopaymentPercent
		d, err := decimalFlag(cmd, "new-copay")
		if err != nil {
			return err
		}
		if d != nil {
			copay = *d
		}
		steps, _ := cmd.Flags().GetInt("steps")

		impacts, err := calculation.SweepSubLimit(subLimit, copay, steps, members, base)
		if err != nil {
			return err
		}
		report := newReport("sweep-" + subLimit.ID)
		report.Sweep = impacts
		return render(cmd, report)
	},
}

func init() {
	sweepCmd.Flags().Int("steps", 10, "Number of limits to evaluate (at least 2)")
	sweepCmd.Flags().String("new-copay", "", "Copayment percent to hold during the sweep (default: current)")
	addGroupFlags(sweepCmd)
}
