package extract

import (
	"regexp"
	"strings"

	"loandocs/internal/domain"
)

var (
	// 12 digits, optionally space-grouped in fours.
	aadhaarNumberPattern = regexp.MustCompile(`\b\d{4}\s?\d{4}\s?\d{4}\b`)
	// 5 letters + 4 digits + 1 letter, matched against uppercased text.
	panTokenPattern = regexp.MustCompile(`\b[A-Z]{5}\d{4}[A-Z]\b`)
)

// DetectType classifies raw OCR text into a document type. Signals are tested
// in fixed priority order and the first match wins; text matching nothing is
// an address proof. The function is pure: identical input always yields the
// same type, and it never fails.
func DetectType(text string) domain.DocumentType {
	upper := strings.ToUpper(text)

	switch {
	case aadhaarNumberPattern.MatchString(upper) || strings.Contains(upper, "AADHAAR"):
		return domain.DocTypeAadhaar
	case panTokenPattern.MatchString(upper) || strings.Contains(upper, "INCOME TAX"):
		return domain.DocTypePAN
	case strings.Contains(upper, "SALARY") || strings.Contains(upper, "PAY SLIP"):
		return domain.DocTypeSalarySlip
	case strings.Contains(upper, "FORM 16") || strings.Contains(upper, "FORM NO. 16"):
		return domain.DocTypeForm16
	case strings.Contains(upper, "ACCOUNT") || strings.Contains(upper, "IFSC"):
		return domain.DocTypeBankStatement
	default:
		return domain.DocTypeAddressProof
	}
}
