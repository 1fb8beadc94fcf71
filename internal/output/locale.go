package output

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/sehha/chicalc/internal/domain"
)

// IsArabic reports whether lang selects Arabic output
func IsArabic(lang string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(lang)), "ar")
}

func printerFor(lang string) *message.Printer {
	if IsArabic(lang) {
		return message.NewPrinter(language.Arabic)
	}
	return message.NewPrinter(language.English)
}

// FormatNumber renders a decimal with locale digit grouping and a fixed number of decimals
func FormatNumber(amount decimal.Decimal, places int, lang string) string {
	f := amount.Round(int32(places)).InexactFloat64()
	return printerFor(lang).Sprint(number.Decimal(f,
		number.MinFractionDigits(places),
		number.MaxFractionDigits(places),
	))
}

// FormatSAR renders whole riyals with locale grouping, e.g. "SAR 3,795" or "3,795 ر.س"
func FormatSAR(amount decimal.Decimal, lang string) string {
	return withCurrency(FormatNumber(amount, 0, lang), lang)
}

// FormatSARCents is FormatSAR with halalas, for per-member amounts
func FormatSARCents(amount decimal.Decimal, lang string) string {
	return withCurrency(FormatNumber(amount, 2, lang), lang)
}

func withCurrency(n, lang string) string {
	if IsArabic(lang) {
		return n + " ر.س"
	}
	return "SAR " + n
}

// FormatPercentage renders a percentage with two decimals and an explicit sign
func FormatPercentage(pct decimal.Decimal, lang string) string {
	s := FormatNumber(pct, 2, lang) + "%"
	if pct.IsPositive() {
		s = "+" + s
	}
	return s
}

var directionLabels = map[domain.Direction][2]string{
	domain.DirectionIncrease: {"زيادة", "Increase"},
	domain.DirectionDecrease: {"انخفاض", "Decrease"},
	domain.DirectionNeutral:  {"محايد", "Neutral"},
}

// FormatDirection returns the display label for a direction
func FormatDirection(d domain.Direction, lang string) string {
	l, ok := directionLabels[d]
	if !ok {
		return string(d)
	}
	if IsArabic(lang) {
		return l[0]
	}
	return l[1]
}

// labels holds the section headings and column titles in both languages
var labels = map[string][2]string{
	"report":          {"تقرير أثر التغطية", "Coverage Impact Report"},
	"scenario":        {"السيناريو", "Scenario"},
	"generated":       {"تاريخ الإنشاء", "Generated"},
	"portfolio":       {"أثر تغيير الحدود الفرعية", "Sub-limit Changes"},
	"sub_limit":       {"الحد الفرعي", "Sub-limit"},
	"current_limit":   {"الحد الحالي", "Current limit"},
	"new_limit":       {"الحد المقترح", "New limit"},
	"copay":           {"نسبة التحمل", "Copay"},
	"utilization":     {"الاستخدام", "Utilization"},
	"premium_impact":  {"الأثر على القسط", "Premium impact"},
	"percent":         {"النسبة", "Percent"},
	"annual":          {"الأثر السنوي", "Annual impact"},
	"direction":       {"الاتجاه", "Direction"},
	"total":           {"الإجمالي", "Total"},
	"new_premium":     {"القسط الجديد للعضو", "New premium per member"},
	"members":         {"عدد الأعضاء", "Members"},
	"base_premium":    {"القسط الأساسي", "Base premium"},
	"exclusions":      {"إضافة الاستثناءات", "Exclusion Additions"},
	"exclusion":       {"الاستثناء", "Exclusion"},
	"expected_claims": {"المطالبات المتوقعة لكل ألف", "Expected claims / 1000"},
	"loaded_cost":     {"التكلفة المحملة", "Loaded cost"},
	"pmpm":            {"لكل عضو شهرياً", "PMPM"},
	"best_case":       {"أفضل حالة", "Best case"},
	"expected":        {"المتوقع", "Expected"},
	"worst_case":      {"أسوأ حالة", "Worst case"},
	"coverage":        {"تغطية الخدمات", "Service Coverage"},
	"service":         {"الخدمة", "Service"},
	"risk_loading":    {"تحميل المخاطر", "Risk loading"},
	"eligibility":     {"أهلية الخدمات الوقائية", "Preventive Service Eligibility"},
	"profile":         {"المستفيد", "Beneficiary"},
	"eligible":        {"مؤهل", "Eligible"},
	"not_eligible":    {"غير مؤهل", "Not eligible"},
	"reason":          {"السبب", "Reason"},
	"payer":           {"جهة التغطية", "Payer"},
	"sweep":           {"تحليل حساسية الحد", "Limit Sensitivity Sweep"},
	"assumptions":     {"الافتراضات", "Assumptions"},
	"comparison":      {"مقارنة السيناريوهات", "Scenario Comparison"},
	"base_scenario":   {"السيناريو الأساسي", "Base scenario"},
	"sub_limits":      {"الحدود الفرعية", "Sub-limits"},
	"services":        {"الخدمات", "Services"},
	"projected":       {"القسط المتوقع", "Projected premium"},
	"vs_base":         {"الفرق عن الأساسي", "vs base"},
	"recommendations": {"التوصيات", "Recommendations"},
	"break_even":      {"نقطة التعادل", "Break-even"},
	"iterations":      {"عدد التكرارات", "Iterations"},
	"not_converged":   {"لم يتقارب", "did not converge"},
}

// Label returns the heading for key in the requested language
func Label(key, lang string) string {
	l, ok := labels[key]
	if !ok {
		return key
	}
	if IsArabic(lang) {
		return l[0]
	}
	return l[1]
}

// ReasonText picks the Arabic or English reason from an eligibility result
func ReasonText(r domain.EligibilityResult, lang string) string {
	if IsArabic(lang) {
		return r.ReasonAr
	}
	return r.ReasonEn
}
