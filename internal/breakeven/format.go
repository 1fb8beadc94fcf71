package breakeven

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	json "github.com/goccy/go-json"

	"github.com/sehha/chicalc/internal/output"
)

// Formatter renders a break-even result
type Formatter interface {
	Format(result *Result) ([]byte, error)
}

// GetFormatter returns the formatter for a format name, or nil when unsupported
func GetFormatter(name, lang string) Formatter {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "console", "text", "table":
		return TableFormatter{Lang: lang}
	case "json":
		return JSONFormatter{}
	}
	return nil
}

type JSONFormatter struct{}

func (JSONFormatter) Format(result *Result) ([]byte, error) {
	return json.MarshalIndent(result, "", "  ")
}

// TableFormatter formats a result as labelled console lines
type TableFormatter struct {
	Lang string
}

var titleStyle = lipgloss.NewStyle().Bold(true)

func (tf TableFormatter) Format(result *Result) ([]byte, error) {
	lang := tf.Lang
	var buf bytes.Buffer

	fmt.Fprintln(&buf, titleStyle.Render(strings.ToUpper(output.Label("break_even", lang))))
	name := result.Impact.Name.In(lang)
	if name == "" {
		name = result.SubLimitID
	}
	fmt.Fprintf(&buf, "%s: %s\n", output.Label("sub_limit", lang), name)

	var solved, fixed string
	switch result.Target {
	case TargetCopay:
		solved = fmt.Sprintf("%s: %s%%", output.Label("copay", lang), output.FormatNumber(result.Value, 2, lang))
		fixed = fmt.Sprintf("%s: %s", output.Label("new_limit", lang), output.FormatSAR(result.Impact.NewLimitSAR, lang))
	default:
		solved = fmt.Sprintf("%s: %s", output.Label("new_limit", lang), output.FormatSAR(result.Value, lang))
		fixed = fmt.Sprintf("%s: %s%%", output.Label("copay", lang), output.FormatNumber(result.Impact.NewCopayPercent, 2, lang))
	}
	fmt.Fprintln(&buf, fixed)
	fmt.Fprintln(&buf, titleStyle.Render(solved))

	fmt.Fprintf(&buf, "%s: %s (%s)\n",
		output.Label("premium_impact", lang),
		output.FormatSARCents(result.Impact.PremiumImpactSAR, lang),
		output.FormatDirection(result.Impact.Direction, lang))
	fmt.Fprintf(&buf, "%s: %d", output.Label("iterations", lang), result.Iterations)
	if !result.Converged {
		fmt.Fprintf(&buf, " (%s)", output.Label("not_converged", lang))
	}
	fmt.Fprintln(&buf)
	return buf.Bytes(), nil
}
