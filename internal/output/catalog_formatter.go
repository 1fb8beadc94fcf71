package output

import (
	"fmt"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/sehha/chicalc/internal/catalog"
)

// CatalogKinds are the listings FormatCatalog understands
var CatalogKinds = []string{"sub-limits", "exclusions", "services", "privileges"}

// FormatCatalog renders one catalog listing as a console table or JSON
func FormatCatalog(c *catalog.Catalog, kind, format, lang string) ([]byte, error) {
	if formatAliases[strings.ToLower(strings.TrimSpace(format))] == "json" {
		var v any
		switch kind {
		case "sub-limits":
			v = c.SubLimits()
		case "exclusions":
			v = c.Exclusions()
		case "services":
			v = c.Services()
		case "privileges":
			privileges := make(map[string]any)
			for _, s := range c.Specialties() {
				privileges[s], _ = c.Privileges(s)
			}
			v = privileges
		default:
			return nil, unknownKind(kind)
		}
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	}

	switch kind {
	case "sub-limits":
		t := newTable("ID", Label("sub_limit", lang), Label("current_limit", lang), "Min", "Max", Label("copay", lang), Label("utilization", lang))
		for _, s := range c.SubLimits() {
			t.Row(s.ID, s.Name.In(lang), FormatSAR(s.CurrentLimitSAR, lang), FormatSAR(s.MinLimitSAR, lang),
				FormatSAR(s.MaxLimitSAR, lang), s.CopaymentPercent.String()+"%", FormatNumber(s.UtilizationRate, 2, lang)+"%")
		}
		return []byte(t.Render() + "\n"), nil
	case "exclusions":
		t := newTable("ID", Label("exclusion", lang), "Prevalence / 1000", "Cost")
		for _, e := range c.Exclusions() {
			t.Row(e.ID, e.Name.In(lang), FormatNumber(e.PrevalencePerThousand, 2, lang), FormatSAR(e.PotentialCostSAR, lang))
		}
		return []byte(t.Render() + "\n"), nil
	case "services":
		t := newTable("ID", Label("service", lang), "Category", "Prevalence / 1000", "Cost", Label("payer", lang))
		for _, s := range c.Services() {
			payer := ""
			if s.Eligibility != nil {
				payer = string(s.Eligibility.Coverage)
			}
			t.Row(s.ID, s.Name.In(lang), string(s.Category), FormatNumber(s.PrevalencePerThousand, 2, lang),
				FormatSAR(s.AverageTreatmentCostSAR, lang), payer)
		}
		return []byte(t.Render() + "\n"), nil
	case "privileges":
		t := newTable("Specialty", "", "Procedures")
		for _, id := range c.Specialties() {
			p, _ := c.Privileges(id)
			t.Row(p.Specialty, p.Name.In(lang), strings.Join(p.Procedures, ", "))
		}
		return []byte(t.Render() + "\n"), nil
	}
	return nil, unknownKind(kind)
}

func unknownKind(kind string) error {
	return fmt.Errorf("unknown catalog listing %q (valid: %s)", kind, strings.Join(CatalogKinds, ", "))
}
