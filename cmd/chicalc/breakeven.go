package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sehha/chicalc/internal/breakeven"
	"github.com/sehha/chicalc/internal/calculation"
)

var breakEvenCmd = &cobra.Command{
	Use:   "breakeven [sub-limit-id]",
	Short: "Find the copayment or limit at which a sub-limit change is premium-neutral",
	Long: `Solves for the copayment (holding a new limit) or the limit (holding a new
copayment) at which the change has no premium impact.

Examples:
  chicalc breakeven dental --target copay --new-limit 4000
  chicalc breakeven dental --target limit --new-copay 10 --lang ar`,
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

		rawTarget, _ := cmd.Flags().GetString("target")
		target, err := breakeven.ParseTarget(rawTarget)
		if err != nil {
			return err
		}
		newLimit, err := decimalFlag(cmd, "new-limit")
		if err != nil {
			return err
		}
		newCopay, err := decimalFlag(cmd, "new-copay")
		if err != nil {
			return err
		}

		result, err := breakeven.NewDefaultSolver().Solve(cmd.Context(), breakeven.Request{
			SubLimit:            subLimit,
			Target:              target,
			NewLimitSAR:         newLimit,
			NewCopaymentPercent: newCopay,
			MemberCount:         members,
			BasePremiumSAR:      base,
		})
		if err != nil {
			return err
		}

		format, _ := cmd.Flags().GetString("format")
		lang, _ := cmd.Flags().GetString("lang")
		f := breakeven.GetFormatter(format, lang)
		if f == nil {
			return fmt.Errorf("format %q is not supported for break-even results (valid: console, json)", format)
		}
		data, err := f.Format(result)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

func init() {
	breakEvenCmd.Flags().String("target", "copay", "Parameter to solve for (copay, limit)")
	breakEvenCmd.Flags().String("new-limit", "", "Limit to hold when solving for copay (default: current)")
	breakEvenCmd.Flags().String("new-copay", "", "Copayment percent to hold when solving for limit (default: current)")
	addGroupFlags(breakEvenCmd)
}
