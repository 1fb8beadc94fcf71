package output

// DefaultAssumptions lists the modeling assumptions rendered in console and HTML reports.
var DefaultAssumptions = map[string][]string{
	"en": {
		"Covered-service utilization: 65% of prevalent cases",
		"Administrative loading: 12%",
		"Risk loading: 1.15 chronic, 1.25 cardiovascular, 1.30 renal, 1.20 fertility, 1.10 otherwise",
		"Sub-limit elasticity: +15% utilization per 100% limit increase, +25% per 10-point copay decrease",
		"Claim severity drift: +5% per 100% limit increase",
		"Exclusion additions: 8% avoided cost, ±25% sensitivity band",
	},
	"ar": {
		"نسبة الاستخدام للخدمات المغطاة: 65% من الحالات",
		"التحميل الإداري: 12%",
		"تحميل المخاطر: 1.15 للأمراض المزمنة، 1.25 للقلب، 1.30 للكلى، 1.20 للخصوبة، 1.10 لغيرها",
		"مرونة الحد الفرعي: +15% استخدام لكل زيادة 100% في الحد، +25% لكل خفض 10 نقاط في نسبة التحمل",
		"انجراف شدة المطالبة: +5% لكل زيادة 100% في الحد",
		"إضافة الاستثناءات: 8% تكاليف متجنبة، نطاق حساسية ±25%",
	},
}

// Assumptions returns the assumption list for a language
func Assumptions(lang string) []string {
	if IsArabic(lang) {
		return DefaultAssumptions["ar"]
	}
	return DefaultAssumptions["en"]
}
