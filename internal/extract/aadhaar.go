package extract

import (
	"regexp"

	"loandocs/internal/domain"
)

// The name capture stops at the first of "No", "Aadhaar", "DOB", "Date", a
// digit, or a newline; the fallback takes the letters-only line directly above
// the date-of-birth line.
var aadhaarRules = []FieldRule{
	{
		Field: "name",
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)name\s*[:\-]?\s*([A-Za-z][A-Za-z .]*?)\s*(?:\bno\b|\baadhaar\b|\bdob\b|\bdate\b|\d|\n|$)`),
			regexp.MustCompile(`(?i)([A-Za-z][A-Za-z .]{2,40})\s*\n[^\n]*(?:dob|date of birth)`),
		},
		Normalize: NormalizeText,
	},
	{
		Field: "aadhaarNumber",
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`\b(\d{4}\s?\d{4}\s?\d{4})\b`),
		},
		Normalize: NormalizeDigits,
	},
	{
		Field: "dob",
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)(?:dob|date of birth|birth)\s*[:\-]?\s*(\d{1,2}[/\-]\d{1,2}[/\-]\d{2,4})`),
			regexp.MustCompile(`\b(\d{2}[/\-]\d{2}[/\-]\d{4})\b`),
		},
		Normalize: NormalizeText,
	},
	{
		Field: "gender",
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\b(male|female|transgender)\b`),
		},
		Normalize: NormalizeCode,
	},
	{
		// Address is captured as a block ending near a 6-digit pincode.
		Field: "address",
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?is)address\s*[:\-]?\s*(.{5,200}?\b\d{6}\b)`),
			regexp.MustCompile(`(?s)([A-Za-z][A-Za-z0-9,./ \t\n-]{10,200}?\b\d{6}\b)`),
		},
		Normalize: NormalizeText,
	},
}

func extractAadhaar(text string) *domain.AadhaarData {
	fields := applyRules(text, aadhaarRules)
	return &domain.AadhaarData{
		Name:          fields["name"],
		AadhaarNumber: fields["aadhaarNumber"],
		DOB:           fields["dob"],
		Gender:        fields["gender"],
		Address:       fields["address"],
	}
}
