package extract

import (
	"regexp"

	"loandocs/internal/domain"
)

var panShapedToken = regexp.MustCompile(`(?i)\b[A-Z]{5}\s?\d{4}\s?[A-Z]\b`)

var form16Rules = []FieldRule{
	{
		Field: "assessmentYear",
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)assessment\s+year\s*[:\-]?\s*(\d{4}\s*[\-–]\s*\d{2,4})`),
			regexp.MustCompile(`(?i)a\.?y\.?\s*[:\-]?\s*(\d{4}\s*[\-–]\s*\d{2,4})`),
		},
		Normalize: NormalizeDigits,
	},
	{
		Field: "totalIncome",
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)(?:gross\s+)?total\s+income\s*[:\-]?\s*` + currencyAmount),
			regexp.MustCompile(`(?i)total\s+taxable\s+income\s*[:\-]?\s*` + currencyAmount),
		},
		Normalize: NormalizeAmount,
	},
}

// extractForm16 collects PAN-shaped tokens: with two or more, the first is the
// employer's (deductor) and the second the employee's; with exactly one it is
// treated as the employee's.
func extractForm16(text string) *domain.Form16Data {
	fields := applyRules(text, form16Rules)
	data := &domain.Form16Data{
		AssessmentYear: fields["assessmentYear"],
		TotalIncome:    fields["totalIncome"],
	}

	pans := panShapedToken.FindAllString(text, -1)
	switch {
	case len(pans) >= 2:
		employer := NormalizeCode(pans[0])
		employee := NormalizeCode(pans[1])
		data.EmployerPAN = &employer
		data.EmployeePAN = &employee
	case len(pans) == 1:
		employee := NormalizeCode(pans[0])
		data.EmployeePAN = &employee
	}
	return data
}
