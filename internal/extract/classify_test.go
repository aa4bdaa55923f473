package extract_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"loandocs/internal/domain"
	"loandocs/internal/extract"
)

func TestDetectType_Signals(t *testing.T) {
	tests := []struct {
		name string
		text string
		want domain.DocumentType
	}{
		{"aadhaar number grouped", "Govt of India\n1234 5678 9012", domain.DocTypeAadhaar},
		{"aadhaar number unspaced", "ID 123456789012", domain.DocTypeAadhaar},
		{"aadhaar keyword", "AADHAAR - Unique Identification", domain.DocTypeAadhaar},
		{"pan token", "Permanent Account Number ABCDE1234F", domain.DocTypePAN},
		{"income tax keyword", "INCOME TAX DEPARTMENT GOVT OF INDIA", domain.DocTypePAN},
		{"salary keyword", "Salary slip for March 2024", domain.DocTypeSalarySlip},
		{"pay slip keyword", "PAY SLIP\nEmployee Code 42", domain.DocTypeSalarySlip},
		{"form 16 keyword", "FORM 16\nCertificate under section 203", domain.DocTypeForm16},
		{"form no 16 keyword", "FORM NO. 16\nPart A", domain.DocTypeForm16},
		{"account keyword", "Account Statement for the period", domain.DocTypeBankStatement},
		{"ifsc keyword", "Branch IFSC HDFC0001234", domain.DocTypeBankStatement},
		{"no signal falls back", "Electricity bill 45 Nehru Nagar Bhopal", domain.DocTypeAddressProof},
		{"empty text falls back", "", domain.DocTypeAddressProof},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extract.DetectType(tt.text))
		})
	}
}

func TestDetectType_PriorityOrder(t *testing.T) {
	// Aadhaar signal wins over a bank signal in the same text.
	text := "Account No linked to Aadhaar 1234 5678 9012"
	assert.Equal(t, domain.DocTypeAadhaar, extract.DetectType(text))

	// PAN token wins over a salary keyword.
	text = "Salary credited, PAN ABCDE1234F on record"
	assert.Equal(t, domain.DocTypePAN, extract.DetectType(text))
}

func TestDetectType_Deterministic(t *testing.T) {
	text := "IFSC SBIN0001234 savings statement"
	first := extract.DetectType(text)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, extract.DetectType(text))
	}
}
