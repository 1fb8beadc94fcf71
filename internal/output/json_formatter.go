package output

import (
	"github.com/goccy/go-json"

	"github.com/sehha/chicalc/internal/domain"
)

// JSONFormatter renders the report as JSON. Decimal amounts are encoded as strings.
type JSONFormatter struct {
	Indent bool
}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(report *domain.Report) ([]byte, error) {
	if j.Indent {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	}
	return json.Marshal(report)
}
