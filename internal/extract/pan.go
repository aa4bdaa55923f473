package extract

import (
	"regexp"

	"loandocs/internal/domain"
)

// panNumber is tolerant of spaces the recognizer inserts inside the code; the
// normalizer strips them and uppercases.
var panRules = []FieldRule{
	{
		// Anchored to line start so "Father's Name" never satisfies it.
		Field: "name",
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?im)^\s*name\s*[:\-]?\s*([A-Za-z][A-Za-z .]+)`),
			regexp.MustCompile(`(?im)^\s*name\s*[:\-]?\s*\n\s*([A-Za-z][A-Za-z .]+)`),
		},
		Normalize: NormalizeText,
	},
	{
		Field: "panNumber",
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\b([A-Z]{5}\s?\d{4}\s?[A-Z])\b`),
			regexp.MustCompile(`(?i)permanent account number\s*[:\-]?\s*([A-Z0-9 ]{10,14})`),
		},
		Normalize: NormalizeCode,
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
		Field: "fatherName",
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)father'?s?\s*name\s*[:\-]?\s*\n?\s*([A-Za-z][A-Za-z .]+)`),
		},
		Normalize: NormalizeText,
	},
}

func extractPAN(text string) *domain.PANData {
	fields := applyRules(text, panRules)
	return &domain.PANData{
		Name:       fields["name"],
		PANNumber:  fields["panNumber"],
		DOB:        fields["dob"],
		FatherName: fields["fatherName"],
	}
}
