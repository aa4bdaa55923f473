package port

import (
	"context"
	"time"

	"github.com/google/uuid"

	"loandocs/internal/domain"
)

// DocumentRepository defines the contract for document persistence.
type DocumentRepository interface {
	Create(ctx context.Context, doc *domain.Document) error
	GetByID(ctx context.Context, docID uuid.UUID) (*domain.Document, error)
	GetByFileID(ctx context.Context, fileID uuid.UUID) (*domain.Document, error)
	ListByUser(ctx context.Context, userID uuid.UUID, offset, limit int) ([]domain.Document, int, error)
	ListAll(ctx context.Context, offset, limit int) ([]domain.Document, int, error)
	UpdateProcessingResult(ctx context.Context, doc *domain.Document) error
	UpdateFraudAssessment(ctx context.Context, doc *domain.Document) error
	UpdateVerification(ctx context.Context, doc *domain.Document) error
	// ClaimStalled atomically moves documents that have sat in pending or
	// stalled in processing for longer than olderThan into processing and
	// returns them, so each is picked up by at most one worker.
	ClaimStalled(ctx context.Context, olderThan time.Duration, limit int) ([]domain.Document, error)
	Delete(ctx context.Context, docID uuid.UUID) error
}
