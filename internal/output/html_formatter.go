package output

import (
	"bytes"
	_ "embed"
	"html/template"

	"github.com/sehha/chicalc/internal/domain"
)

// HTMLFormatter produces a standalone HTML report. Arabic output is laid out right to left.
type HTMLFormatter struct {
	Lang string
}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"sar":       FormatSAR,
	"sarc":      FormatSARCents,
	"pct":       FormatPercentage,
	"num":       FormatNumber,
	"direction": FormatDirection,
	"label":     Label,
	"reason":    ReasonText,
	"rate":      fraction,
}).Parse(htmlTemplateSource))

func (h HTMLFormatter) Format(report *domain.Report) ([]byte, error) {
	var buf bytes.Buffer
	dir := "ltr"
	lang := "en"
	if IsArabic(h.Lang) {
		dir, lang = "rtl", "ar"
	}
	data := struct {
		*domain.Report
		Lang        string
		Dir         string
		Assumptions []string
	}{report, lang, dir, Assumptions(lang)}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
