package extract

import (
	"regexp"
	"strings"

	"loandocs/internal/domain"
)

// billNoiseTokens mark utility-bill boilerplate lines that are discarded
// before address-block selection.
var billNoiseTokens = []string{
	"BILL", "INVOICE", "ELECTRICITY", "TELEPHONE", "MOBILE", "BROADBAND",
	"GAS", "WATER", "AMOUNT", "DUE", "METER", "UNITS", "TARIFF", "READING",
	"PAYMENT", "RECEIPT", "CONSUMER NO", "CONNECTION",
}

// localityKeywords identify lines that look like parts of an Indian address.
var localityKeywords = []string{
	"ROAD", "SECTOR", "NAGAR", "COLONY", "STREET", "LANE", "MARG", "GALI",
	"BLOCK", "PHASE", "APARTMENT", "FLAT", "HOUSE", "PLOT", "CHOWK", "BAZAR",
}

var (
	addressLabelPattern   = regexp.MustCompile(`(?is)address\s*[:\-]\s*(.{5,200}?)(?:\n\s*\n|$)`)
	addressLiteralPattern = regexp.MustCompile(`(?is)\baddress\b\s*(.{5,200}?)(?:\n\s*\n|$)`)
	pincodePattern        = regexp.MustCompile(`\b(\d{6})\b`)
	customerNamePattern   = regexp.MustCompile(`(?i)(?:customer|consumer)\s*(?:name)?\s*[:\-]\s*([A-Za-z][A-Za-z .]+)`)
	plainNamePattern      = regexp.MustCompile(`(?im)^\s*name\s*[:\-]\s*([A-Za-z][A-Za-z .]+)`)
)

func isNoiseLine(line string) bool {
	upper := strings.ToUpper(line)
	for _, tok := range billNoiseTokens {
		if strings.Contains(upper, tok) {
			return true
		}
	}
	return false
}

// addressBlock resolves the address from the de-noised text via, in order:
// an explicit "Address:" label, text following the literal "ADDRESS", or the
// lines containing locality keywords.
func addressBlock(text string) *string {
	if m := addressLabelPattern.FindStringSubmatch(text); m != nil {
		v := NormalizeText(m[1])
		if v != "" {
			return &v
		}
	}
	if m := addressLiteralPattern.FindStringSubmatch(text); m != nil {
		v := NormalizeText(m[1])
		if v != "" {
			return &v
		}
	}
	var parts []string
	for _, line := range nonTrivialLines(text, 4) {
		upper := strings.ToUpper(line)
		for _, kw := range localityKeywords {
			if strings.Contains(upper, kw) {
				parts = append(parts, line)
				break
			}
		}
	}
	if len(parts) > 0 {
		v := NormalizeText(strings.Join(parts, " "))
		return &v
	}
	return nil
}

func extractAddressProof(text string) *domain.AddressProofData {
	var kept []string
	for _, line := range strings.Split(text, "\n") {
		if !isNoiseLine(line) {
			kept = append(kept, line)
		}
	}
	cleaned := strings.Join(kept, "\n")

	data := &domain.AddressProofData{Address: addressBlock(cleaned)}

	if m := customerNamePattern.FindStringSubmatch(text); m != nil {
		v := NormalizeText(m[1])
		data.CustomerName = &v
	} else if m := plainNamePattern.FindStringSubmatch(cleaned); m != nil {
		v := NormalizeText(m[1])
		data.CustomerName = &v
	}
	if m := pincodePattern.FindStringSubmatch(cleaned); m != nil {
		v := m[1]
		data.Pincode = &v
	}
	return data
}
