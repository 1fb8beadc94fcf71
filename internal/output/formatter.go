package output

import (
	"sort"
	"strings"

	"github.com/sehha/chicalc/internal/domain"
)

// Formatter renders a report in one output format
type Formatter interface {
	Name() string
	Format(report *domain.Report) ([]byte, error)
}

// FormatterFunc adapts a plain function to the Formatter interface
type FormatterFunc struct {
	ID string
	F  func(report *domain.Report) ([]byte, error)
}

func (f FormatterFunc) Name() string { return f.ID }

func (f FormatterFunc) Format(report *domain.Report) ([]byte, error) { return f.F(report) }

// Options carries presentation settings shared by all formatters
type Options struct {
	// Lang selects Arabic ("ar") or English ("en") labels and number formatting
	Lang string
}

var formatAliases = map[string]string{
	"console": "console",
	"text":    "console",
	"table":   "console",
	"json":    "json",
	"csv":     "csv",
	"html":    "html",
}

// GetFormatterByName returns the formatter registered under name or one of its
// aliases, or nil when none matches.
func GetFormatterByName(name string, opts Options) Formatter {
	switch formatAliases[strings.ToLower(strings.TrimSpace(name))] {
	case "console":
		return ConsoleFormatter{Lang: opts.Lang}
	case "json":
		return JSONFormatter{Indent: true}
	case "csv":
		return CSVFormatter{}
	case "html":
		return HTMLFormatter{Lang: opts.Lang}
	}
	return nil
}

// AvailableFormatAliases lists every accepted format name, sorted
func AvailableFormatAliases() []string {
	names := make([]string, 0, len(formatAliases))
	for alias := range formatAliases {
		names = append(names, alias)
	}
	sort.Strings(names)
	return names
}
