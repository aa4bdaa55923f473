package extract

import (
	"regexp"
	"strings"

	"loandocs/internal/domain"
)

// knownBanks is the fixed list of bank name tokens matched against the text,
// in order; the value stored is the token that matched.
var knownBanks = []string{
	"STATE BANK OF INDIA", "SBI", "HDFC BANK", "ICICI BANK", "AXIS BANK",
	"KOTAK MAHINDRA BANK", "PUNJAB NATIONAL BANK", "BANK OF BARODA",
	"CANARA BANK", "UNION BANK OF INDIA", "YES BANK", "IDBI BANK",
	"INDUSIND BANK", "BANK OF INDIA", "CENTRAL BANK OF INDIA", "IDFC FIRST BANK",
}

var bankStatementRules = []FieldRule{
	{
		Field: "accountNumber",
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)(?:a/?c|account)\s*(?:no|number)?\.?\s*[:\-]?\s*(\d{9,18})\b`),
			regexp.MustCompile(`\b(\d{9,18})\b`),
		},
		Normalize: NormalizeDigits,
	},
	{
		// Fixed IFSC shape: 4 letters, a zero, 6 alphanumerics.
		Field: "ifscCode",
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)ifsc\s*(?:code)?\s*[:\-]?\s*([A-Z]{4}0[A-Z0-9]{6})\b`),
			regexp.MustCompile(`\b([A-Z]{4}0[A-Z0-9]{6})\b`),
		},
		Normalize: NormalizeCode,
	},
	{
		Field: "balance",
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)(?:closing|available|current)\s*balance\s*[:\-]?\s*` + currencyAmount),
			regexp.MustCompile(`(?i)\bbalance\s*[:\-]?\s*` + currencyAmount),
		},
		Normalize: NormalizeAmount,
	},
	{
		Field: "accountHolderName",
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)(?:account\s+holder|customer)\s*(?:name)?\s*[:\-]?\s*([A-Za-z][A-Za-z .]+)`),
			regexp.MustCompile(`(?im)^\s*name\s*[:\-]\s*([A-Za-z][A-Za-z .]+)`),
		},
		Normalize: NormalizeText,
	},
}

func bankName(text string) *string {
	upper := strings.ToUpper(text)
	for _, bank := range knownBanks {
		if strings.Contains(upper, bank) {
			v := bank
			return &v
		}
	}
	return nil
}

func extractBankStatement(text string) *domain.BankStatementData {
	fields := applyRules(text, bankStatementRules)
	return &domain.BankStatementData{
		BankName:          bankName(text),
		AccountNumber:     fields["accountNumber"],
		IFSCCode:          fields["ifscCode"],
		Balance:           fields["balance"],
		AccountHolderName: fields["accountHolderName"],
	}
}
