package port

import (
	"context"

	"github.com/google/uuid"

	"loandocs/internal/domain"
)

// UserRepository defines the contract for user persistence.
type UserRepository interface {
	GetByID(ctx context.Context, userID uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// FileMetaRepository defines the contract for uploaded file metadata.
type FileMetaRepository interface {
	Create(ctx context.Context, meta *domain.FileMeta) error
	GetByID(ctx context.Context, fileID uuid.UUID) (*domain.FileMeta, error)
	UpdateStatus(ctx context.Context, fileID uuid.UUID, status domain.FileStatus) error
	Delete(ctx context.Context, fileID uuid.UUID) error
}

// NotificationRepository defines the contract for notification persistence.
type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) error
	ListByUser(ctx context.Context, userID uuid.UUID, offset, limit int) ([]domain.Notification, int, error)
	MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error
}
