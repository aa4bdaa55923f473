package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"loandocs/internal/domain"
	"loandocs/internal/port"
)

type documentRepo struct {
	db *sqlx.DB
}

// NewDocumentRepo creates a new PostgreSQL-backed DocumentRepository.
func NewDocumentRepo(db *sqlx.DB) port.DocumentRepository {
	return &documentRepo{db: db}
}

func (r *documentRepo) Create(ctx context.Context, doc *domain.Document) error {
	now := time.Now().UTC()
	doc.CreatedAt = now
	doc.UpdatedAt = now

	query := `INSERT INTO documents (
		id, user_id, file_id, document_type,
		extracted_text, parsed_data, confidence,
		status, verification_status, verified_by, verification_notes,
		fraud_flag, fraud_notes, processing_error, processed_at,
		created_at, updated_at
	) VALUES (
		$1, $2, $3, $4,
		$5, $6, $7,
		$8, $9, $10, $11,
		$12, $13, $14, $15,
		$16, $17
	)`

	_, err := r.db.ExecContext(ctx, query,
		doc.ID, doc.UserID, doc.FileID, doc.DocumentType,
		doc.ExtractedText, doc.ParsedData, doc.Confidence,
		doc.Status, doc.VerificationState, doc.VerifiedBy, doc.VerificationNotes,
		doc.FraudFlag, doc.FraudNotes, doc.ProcessingError, doc.ProcessedAt,
		doc.CreatedAt, doc.UpdatedAt)
	if err != nil {
		return fmt.Errorf("documentRepo.Create: %w", err)
	}
	return nil
}

func (r *documentRepo) GetByID(ctx context.Context, docID uuid.UUID) (*domain.Document, error) {
	var doc domain.Document
	err := r.db.GetContext(ctx, &doc,
		"SELECT * FROM documents WHERE id = $1", docID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("documentRepo.GetByID: %w", err)
	}
	return &doc, nil
}

func (r *documentRepo) GetByFileID(ctx context.Context, fileID uuid.UUID) (*domain.Document, error) {
	var doc domain.Document
	err := r.db.GetContext(ctx, &doc,
		"SELECT * FROM documents WHERE file_id = $1", fileID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("documentRepo.GetByFileID: %w", err)
	}
	return &doc, nil
}

func (r *documentRepo) ListByUser(ctx context.Context, userID uuid.UUID, offset, limit int) ([]domain.Document, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM documents WHERE user_id = $1", userID)
	if err != nil {
		return nil, 0, fmt.Errorf("documentRepo.ListByUser count: %w", err)
	}

	var docs []domain.Document
	err = r.db.SelectContext(ctx, &docs,
		`SELECT * FROM documents WHERE user_id = $1
		 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("documentRepo.ListByUser: %w", err)
	}
	return docs, total, nil
}

func (r *documentRepo) ListAll(ctx context.Context, offset, limit int) ([]domain.Document, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM documents")
	if err != nil {
		return nil, 0, fmt.Errorf("documentRepo.ListAll count: %w", err)
	}

	var docs []domain.Document
	err = r.db.SelectContext(ctx, &docs,
		`SELECT * FROM documents
		 ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("documentRepo.ListAll: %w", err)
	}
	return docs, total, nil
}

func (r *documentRepo) UpdateProcessingResult(ctx context.Context, doc *domain.Document) error {
	doc.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE documents SET
			document_type = $1, extracted_text = $2, parsed_data = $3,
			confidence = $4, status = $5, processing_error = $6,
			processed_at = $7, updated_at = $8
		 WHERE id = $9`,
		doc.DocumentType, doc.ExtractedText, doc.ParsedData,
		doc.Confidence, doc.Status, doc.ProcessingError,
		doc.ProcessedAt, doc.UpdatedAt,
		doc.ID)
	if err != nil {
		return fmt.Errorf("documentRepo.UpdateProcessingResult: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrDocumentNotFound
	}
	return nil
}

func (r *documentRepo) UpdateFraudAssessment(ctx context.Context, doc *domain.Document) error {
	doc.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE documents SET
			fraud_flag = $1, fraud_notes = $2, updated_at = $3
		 WHERE id = $4`,
		doc.FraudFlag, doc.FraudNotes, doc.UpdatedAt, doc.ID)
	if err != nil {
		return fmt.Errorf("documentRepo.UpdateFraudAssessment: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrDocumentNotFound
	}
	return nil
}

func (r *documentRepo) UpdateVerification(ctx context.Context, doc *domain.Document) error {
	doc.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE documents SET
			status = $1, verification_status = $2, verified_by = $3,
			verification_notes = $4, updated_at = $5
		 WHERE id = $6`,
		doc.Status, doc.VerificationState, doc.VerifiedBy,
		doc.VerificationNotes, doc.UpdatedAt,
		doc.ID)
	if err != nil {
		return fmt.Errorf("documentRepo.UpdateVerification: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrDocumentNotFound
	}
	return nil
}

// ClaimStalled atomically claims documents stuck in pending or processing for
// longer than olderThan. FOR UPDATE SKIP LOCKED keeps concurrent workers from
// claiming the same rows.
func (r *documentRepo) ClaimStalled(ctx context.Context, olderThan time.Duration, limit int) ([]domain.Document, error) {
	cutoff := time.Now().UTC().Add(-olderThan)

	var docs []domain.Document
	err := r.db.SelectContext(ctx, &docs,
		`UPDATE documents SET status = $1, updated_at = NOW()
		 WHERE id IN (
			SELECT id FROM documents
			WHERE status IN ($2, $3) AND updated_at < $4
			ORDER BY updated_at ASC
			LIMIT $5
			FOR UPDATE SKIP LOCKED
		 )
		 RETURNING *`,
		domain.DocStatusProcessing,
		domain.DocStatusPending, domain.DocStatusProcessing,
		cutoff, limit)
	if err != nil {
		return nil, fmt.Errorf("documentRepo.ClaimStalled: %w", err)
	}
	return docs, nil
}

func (r *documentRepo) Delete(ctx context.Context, docID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM documents WHERE id = $1", docID)
	if err != nil {
		return fmt.Errorf("documentRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrDocumentNotFound
	}
	return nil
}
