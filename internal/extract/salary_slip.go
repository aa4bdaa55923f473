package extract

import (
	"regexp"
	"strings"

	"loandocs/internal/domain"
)

const currencyAmount = `(?:rs\.?|inr|₹)?\s*([\d,]+(?:\.\d{1,2})?)`

// netPay tries the label synonyms in order before falling back to a generic
// "Total ... currency amount" line.
var salarySlipRules = []FieldRule{
	{
		Field: "monthYear",
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)(?:for\s+the\s+month\s+of|salary\s+month|pay\s+period|month)\s*[:\-]?\s*([A-Za-z]+[\s,\-]*\d{4})`),
			regexp.MustCompile(`\b([A-Za-z]{3,9}[\s\-]+\d{4})\b`),
		},
		Normalize: NormalizeText,
	},
	{
		Field: "netPay",
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)net\s*(?:pay|salary|amount)\s*(?:payable)?\s*[:\-]?\s*` + currencyAmount),
			regexp.MustCompile(`(?i)monthly\s*(?:pay|salary)\s*[:\-]?\s*` + currencyAmount),
			regexp.MustCompile(`(?i)take[\s\-]?home\s*(?:pay|salary)?\s*[:\-]?\s*` + currencyAmount),
			regexp.MustCompile(`(?i)in[\s\-]?hand\s*(?:pay|salary)?\s*[:\-]?\s*` + currencyAmount),
			regexp.MustCompile(`(?i)total\s*[^\n]*?(?:rs\.?|inr|₹)\s*([\d,]+(?:\.\d{1,2})?)`),
		},
		Normalize: NormalizeAmount,
	},
	{
		Field: "grossPay",
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)gross\s*(?:pay|salary|earnings)\s*[:\-]?\s*` + currencyAmount),
			regexp.MustCompile(`(?i)total\s*earnings\s*[:\-]?\s*` + currencyAmount),
		},
		Normalize: NormalizeAmount,
	},
}

// corporateSuffixes mark a line as an employer name.
var corporateSuffixes = []string{
	"LTD", "LIMITED", "PVT", "PRIVATE", "CORP", "INC", "LLP",
	"TECHNOLOGIES", "SOLUTIONS", "SERVICES", "INDUSTRIES", "ENTERPRISES",
}

// employerName is inferred from the first line containing a corporate-suffix
// keyword, else the first non-trivial line of the slip.
func employerName(text string) *string {
	lines := nonTrivialLines(text, 4)
	for _, line := range lines {
		upper := strings.ToUpper(line)
		for _, suffix := range corporateSuffixes {
			if strings.Contains(upper, suffix) {
				v := NormalizeText(line)
				return &v
			}
		}
	}
	if len(lines) > 0 {
		v := NormalizeText(lines[0])
		return &v
	}
	return nil
}

func extractSalarySlip(text string) *domain.SalarySlipData {
	fields := applyRules(text, salarySlipRules)
	return &domain.SalarySlipData{
		EmployerName: employerName(text),
		MonthYear:    fields["monthYear"],
		NetPay:       fields["netPay"],
		GrossPay:     fields["grossPay"],
	}
}
