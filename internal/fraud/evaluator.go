// Package fraud cross-checks extracted identity fields against the stored
// applicant profile and per-type format rules.
package fraud

import (
	"strings"

	"loandocs/internal/domain"
)

const alertSeparator = " | "

// Evaluate runs every fraud heuristic against a document's parsed data and an
// immutable snapshot of the applicant profile. It is a total function: with no
// parsed data it reports not-fraudulent with empty notes, and it never mutates
// its inputs.
func Evaluate(parsed *domain.ParsedData, profile domain.ProfileSnapshot) domain.FraudAssessment {
	if parsed == nil {
		return domain.FraudAssessment{}
	}

	var alerts []string

	if alert := checkNameMatch(parsed, profile); alert != "" {
		alerts = append(alerts, alert)
	}
	if alert := checkPANFormat(parsed); alert != "" {
		alerts = append(alerts, alert)
	}
	if alert := checkAadhaarFormat(parsed); alert != "" {
		alerts = append(alerts, alert)
	}

	return domain.FraudAssessment{
		IsFraudulent: len(alerts) > 0,
		Notes:        strings.Join(alerts, alertSeparator),
	}
}

// normalizeName lowercases and strips everything that is not a letter, so
// "RAJESH KUMAR" and "Rajesh Kumar Singh" compare on letters alone.
func normalizeName(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if r >= 'a' && r <= 'z' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// checkNameMatch flags unless one normalized name contains the other.
func checkNameMatch(parsed *domain.ParsedData, profile domain.ProfileSnapshot) string {
	docName := parsed.ExtractedName()
	if docName == nil {
		return ""
	}
	profileName := profile.FullName
	if profileName == "" {
		profileName = profile.Username
	}

	a := normalizeName(*docName)
	b := normalizeName(profileName)
	if strings.Contains(a, b) || strings.Contains(b, a) {
		return ""
	}
	return "Name on document does not match applicant profile name"
}

// checkPANFormat flags an extracted PAN whose stripped length is not exactly
// 10 characters.
func checkPANFormat(parsed *domain.ParsedData) string {
	if parsed.Type != domain.DocTypePAN || parsed.PAN == nil || parsed.PAN.PANNumber == nil {
		return ""
	}
	stripped := strings.ReplaceAll(*parsed.PAN.PANNumber, " ", "")
	if len(stripped) == 10 {
		return ""
	}
	return "PAN number has invalid format"
}

// checkAadhaarFormat flags an extracted Aadhaar number whose digit count is
// not exactly 12.
func checkAadhaarFormat(parsed *domain.ParsedData) string {
	if parsed.Type != domain.DocTypeAadhaar || parsed.Aadhaar == nil || parsed.Aadhaar.AadhaarNumber == nil {
		return ""
	}
	digits := 0
	for _, r := range *parsed.Aadhaar.AadhaarNumber {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	if digits == 12 {
		return ""
	}
	return "Aadhaar number has invalid format"
}
