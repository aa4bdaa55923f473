// Package export builds the document verification register as an XLSX
// workbook for back-office download.
package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"loandocs/internal/domain"
)

const sheetName = "Verification Register"

var headers = []string{
	"Document ID", "Applicant ID", "Document Type", "Status",
	"Verification Status", "Confidence", "Fraud Flag", "Fraud Notes",
	"Processed At", "Created At",
}

// VerificationRegister renders the current document set into an XLSX buffer.
func VerificationRegister(docs []domain.Document) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("creating register sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("removing default sheet: %w", err)
	}

	for col, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return nil, fmt.Errorf("writing header %q: %w", h, err)
		}
	}

	for i, doc := range docs {
		row := i + 2
		values := []interface{}{
			doc.ID.String(),
			doc.UserID.String(),
			string(doc.DocumentType),
			string(doc.Status),
			string(doc.VerificationState),
			doc.Confidence,
			doc.FraudFlag,
			doc.FraudNotes,
			formatTime(doc.ProcessedAt),
			doc.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return nil, fmt.Errorf("writing row %d: %w", row, err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("serializing register: %w", err)
	}
	return buf.Bytes(), nil
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02 15:04:05")
}
