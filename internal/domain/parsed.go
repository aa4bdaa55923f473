package domain

import (
	"encoding/json"
	"fmt"
)

// AadhaarData holds fields extracted from an Aadhaar card.
// Pointer fields carry no omitempty so unset fields marshal as explicit null.
type AadhaarData struct {
	Name          *string `json:"name"`
	AadhaarNumber *string `json:"aadhaarNumber"`
	DOB           *string `json:"dob"`
	Gender        *string `json:"gender"`
	Address       *string `json:"address"`
}

// PANData holds fields extracted from a PAN card.
type PANData struct {
	Name       *string `json:"name"`
	PANNumber  *string `json:"panNumber"`
	DOB        *string `json:"dob"`
	FatherName *string `json:"fatherName"`
}

// SalarySlipData holds fields extracted from a salary slip.
type SalarySlipData struct {
	EmployerName *string `json:"employerName"`
	MonthYear    *string `json:"monthYear"`
	NetPay       *string `json:"netPay"`
	GrossPay     *string `json:"grossPay"`
}

// Form16Data holds fields extracted from a Form 16 / ITR document.
type Form16Data struct {
	EmployerPAN    *string `json:"employerPAN"`
	EmployeePAN    *string `json:"employeePAN"`
	AssessmentYear *string `json:"assessmentYear"`
	TotalIncome    *string `json:"totalIncome"`
}

// BankStatementData holds fields extracted from a bank statement.
type BankStatementData struct {
	BankName          *string `json:"bankName"`
	AccountNumber     *string `json:"accountNumber"`
	IFSCCode          *string `json:"ifscCode"`
	Balance           *string `json:"balance"`
	AccountHolderName *string `json:"accountHolderName"`
}

// AddressProofData holds fields extracted from a generic address proof.
type AddressProofData struct {
	CustomerName *string `json:"customerName"`
	Address      *string `json:"address"`
	Pincode      *string `json:"pincode"`
}

// ParsedData is the per-type structured record extracted from a document.
// Exactly one variant is set, selected by Type; it marshals as the variant's
// flat object so the persisted shape is keyed by the document type alone.
type ParsedData struct {
	Type          DocumentType
	Aadhaar       *AadhaarData
	PAN           *PANData
	SalarySlip    *SalarySlipData
	Form16        *Form16Data
	BankStatement *BankStatementData
	AddressProof  *AddressProofData
}

func (p *ParsedData) variant() interface{} {
	switch p.Type {
	case DocTypeAadhaar:
		if p.Aadhaar != nil {
			return p.Aadhaar
		}
	case DocTypePAN:
		if p.PAN != nil {
			return p.PAN
		}
	case DocTypeSalarySlip:
		if p.SalarySlip != nil {
			return p.SalarySlip
		}
	case DocTypeForm16:
		if p.Form16 != nil {
			return p.Form16
		}
	case DocTypeBankStatement:
		if p.BankStatement != nil {
			return p.BankStatement
		}
	case DocTypeAddressProof:
		if p.AddressProof != nil {
			return p.AddressProof
		}
	}
	return nil
}

// MarshalJSON emits the active variant as a flat object.
func (p *ParsedData) MarshalJSON() ([]byte, error) {
	v := p.variant()
	if v == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(v)
}

// UnmarshalParsedData decodes a persisted parsed_data payload back into the
// variant selected by docType.
func UnmarshalParsedData(docType DocumentType, raw json.RawMessage) (*ParsedData, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	p := &ParsedData{Type: docType}
	var dst interface{}
	switch docType {
	case DocTypeAadhaar:
		p.Aadhaar = &AadhaarData{}
		dst = p.Aadhaar
	case DocTypePAN:
		p.PAN = &PANData{}
		dst = p.PAN
	case DocTypeSalarySlip:
		p.SalarySlip = &SalarySlipData{}
		dst = p.SalarySlip
	case DocTypeForm16:
		p.Form16 = &Form16Data{}
		dst = p.Form16
	case DocTypeBankStatement:
		p.BankStatement = &BankStatementData{}
		dst = p.BankStatement
	case DocTypeAddressProof:
		p.AddressProof = &AddressProofData{}
		dst = p.AddressProof
	default:
		return nil, fmt.Errorf("no parsed data variant for document type %q", docType)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return nil, fmt.Errorf("unmarshaling parsed data for %s: %w", docType, err)
	}
	return p, nil
}

// ExtractedName returns the person-name field of the active variant, if any.
// Salary slips and Form 16 carry no applicant name field.
func (p *ParsedData) ExtractedName() *string {
	switch p.Type {
	case DocTypeAadhaar:
		if p.Aadhaar != nil {
			return p.Aadhaar.Name
		}
	case DocTypePAN:
		if p.PAN != nil {
			return p.PAN.Name
		}
	case DocTypeBankStatement:
		if p.BankStatement != nil {
			return p.BankStatement.AccountHolderName
		}
	case DocTypeAddressProof:
		if p.AddressProof != nil {
			return p.AddressProof.CustomerName
		}
	}
	return nil
}
