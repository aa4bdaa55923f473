package export_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"loandocs/internal/domain"
	"loandocs/internal/export"
)

func TestVerificationRegister(t *testing.T) {
	processedAt := time.Date(2026, 8, 15, 10, 30, 0, 0, time.UTC)
	doc := domain.Document{
		ID:                uuid.New(),
		UserID:            uuid.New(),
		DocumentType:      domain.DocTypeAadhaar,
		Confidence:        88,
		Status:            domain.DocStatusCompleted,
		VerificationState: domain.VerificationVerified,
		FraudFlag:         true,
		FraudNotes:        "Name on document does not match applicant profile name",
		ProcessedAt:       &processedAt,
		CreatedAt:         time.Date(2026, 8, 15, 10, 0, 0, 0, time.UTC),
	}

	data, err := export.VerificationRegister([]domain.Document{doc})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows("Verification Register")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, []string{
		"Document ID", "Applicant ID", "Document Type", "Status",
		"Verification Status", "Confidence", "Fraud Flag", "Fraud Notes",
		"Processed At", "Created At",
	}, rows[0])

	row := rows[1]
	assert.Equal(t, doc.ID.String(), row[0])
	assert.Equal(t, doc.UserID.String(), row[1])
	assert.Equal(t, "aadhaar", row[2])
	assert.Equal(t, "completed", row[3])
	assert.Equal(t, "verified", row[4])
	assert.Equal(t, "88", row[5])
	assert.Equal(t, "TRUE", row[6])
	assert.Equal(t, "2026-08-15 10:30:00", row[8])
}

func TestVerificationRegister_EmptySet(t *testing.T) {
	data, err := export.VerificationRegister(nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows("Verification Register")
	require.NoError(t, err)
	require.Len(t, rows, 1)
}
