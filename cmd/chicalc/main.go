package main

import (
	"fmt"
	"os"
	"runtime/debug"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/sehha/chicalc/internal/calculation"
	"github.com/sehha/chicalc/internal/catalog"
	"github.com/sehha/chicalc/internal/domain"
	"github.com/sehha/chicalc/internal/logging"
	"github.com/sehha/chicalc/internal/output"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "chicalc %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.Main.Path + " " + bi.GoVersion
	}
	return ""
}

var rootCmd = &cobra.Command{
	Use:   "chicalc",
	Short: "CHI coverage impact calculator",
	Long: `Estimates the premium impact of Saudi CHI policy changes: covering new services,
moving sub-limits and copayments, adding excluded benefits, and screening
beneficiaries for preventive services.`,
	SilenceUsage: true,
}

// loadCatalog returns the catalog named by --catalog, or the embedded one
func loadCatalog(cmd *cobra.Command) (*catalog.Catalog, error) {
	path, _ := cmd.Flags().GetString("catalog")
	if path == "" {
		return catalog.Default(), nil
	}
	return catalog.Load(path)
}

// newEngine builds an engine with a zap CLI logger honouring --debug
func newEngine(cmd *cobra.Command, cat calculation.Catalog) (*calculation.Engine, error) {
	debugMode, _ := cmd.Flags().GetBool("debug")
	logger, err := logging.NewCLILogger(debugMode)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	engine := calculation.NewEngine(cat)
	engine.SetLogger(logging.EngineLogger(logger))
	engine.Debug = debugMode
	return engine, nil
}

// render writes the report in the format selected by --format and --lang
func render(cmd *cobra.Command, report *domain.Report) error {
	format, _ := cmd.Flags().GetString("format")
	lang, _ := cmd.Flags().GetString("lang")

	f := output.GetFormatterByName(format, output.Options{Lang: lang})
	if f == nil {
		return fmt.Errorf("unknown output format %q (valid: %s)", format, strings.Join(output.AvailableFormatAliases(), ", "))
	}
	data, err := f.Format(report)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

// newReport starts an ad-hoc report for single-calculation commands
func newReport(name string) *domain.Report {
	return &domain.Report{
		ID:           ulid.Make().String(),
		ScenarioName: name,
		GeneratedAt:  time.Now().UTC(),
	}
}

// decimalFlag parses a string flag as a decimal; unset flags return nil
func decimalFlag(cmd *cobra.Command, name string) (*decimal.Decimal, error) {
	if !cmd.Flags().Changed(name) {
		return nil, nil
	}
	raw, _ := cmd.Flags().GetString(name)
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return nil, fmt.Errorf("--%s: %q is not a number", name, raw)
	}
	return &d, nil
}

// groupFlags reads --members and --base-premium
func groupFlags(cmd *cobra.Command) (int, decimal.Decimal, error) {
	members, _ := cmd.Flags().GetInt("members")
	base := decimal.NewFromInt(5000)
	d, err := decimalFlag(cmd, "base-premium")
	if err != nil {
		return 0, base, err
	}
	if d != nil {
		base = *d
	}
	return members, base, nil
}

func addGroupFlags(cmd *cobra.Command) {
	cmd.Flags().Int("members", 1000, "Number of insured members")
	cmd.Flags().String("base-premium", "5000", "Base annual premium per member (SAR)")
}

func init() {
	rootCmd.PersistentFlags().StringP("format", "f", "console", "Output format (console, json, csv, html)")
	rootCmd.PersistentFlags().String("lang", "en", "Output language (ar, en)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging of intermediate calculations")
	rootCmd.PersistentFlags().String("catalog", "", "Path to a benefit catalog YAML (default: embedded catalog)")

	rootCmd.AddCommand(premiumCmd)
	rootCmd.AddCommand(subLimitCmd)
	rootCmd.AddCommand(exclusionCmd)
	rootCmd.AddCommand(eligibilityCmd)
	rootCmd.AddCommand(portfolioCmd)
	rootCmd.AddCommand(evaluateCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(sweepCmd)
	rootCmd.AddCommand(breakEvenCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
