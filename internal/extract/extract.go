package extract

import "loandocs/internal/domain"

// Extract runs the ruleset for docType against raw OCR text and returns the
// structured record. Unknown types yield nil; extraction itself never fails.
func Extract(docType domain.DocumentType, text string) *domain.ParsedData {
	switch docType {
	case domain.DocTypeAadhaar:
		return &domain.ParsedData{Type: docType, Aadhaar: extractAadhaar(text)}
	case domain.DocTypePAN:
		return &domain.ParsedData{Type: docType, PAN: extractPAN(text)}
	case domain.DocTypeSalarySlip:
		return &domain.ParsedData{Type: docType, SalarySlip: extractSalarySlip(text)}
	case domain.DocTypeForm16:
		return &domain.ParsedData{Type: docType, Form16: extractForm16(text)}
	case domain.DocTypeBankStatement:
		return &domain.ParsedData{Type: docType, BankStatement: extractBankStatement(text)}
	case domain.DocTypeAddressProof:
		return &domain.ParsedData{Type: docType, AddressProof: extractAddressProof(text)}
	default:
		return nil
	}
}
