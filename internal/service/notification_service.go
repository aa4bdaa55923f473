package service

import (
	"context"
	"log"

	"github.com/google/uuid"

	"loandocs/internal/domain"
	"loandocs/internal/port"
)

// NotificationService defines the notification contract.
type NotificationService interface {
	// Notify persists a document notification for a user and mirrors it to
	// email when a sender is configured. Delivery failures are logged and
	// never surface to the caller.
	Notify(ctx context.Context, userID uuid.UUID, title, message string)
	ListByUser(ctx context.Context, userID uuid.UUID, offset, limit int) ([]domain.Notification, int, error)
	MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error
}

type notificationService struct {
	notifRepo port.NotificationRepository
	userRepo  port.UserRepository
	sender    port.EmailSender
}

// NewNotificationService creates a new NotificationService implementation.
// sender may be nil to disable the email mirror.
func NewNotificationService(notifRepo port.NotificationRepository, userRepo port.UserRepository, sender port.EmailSender) NotificationService {
	return &notificationService{
		notifRepo: notifRepo,
		userRepo:  userRepo,
		sender:    sender,
	}
}

func (s *notificationService) Notify(ctx context.Context, userID uuid.UUID, title, message string) {
	n := &domain.Notification{
		ID:      uuid.New(),
		UserID:  userID,
		Title:   title,
		Message: message,
		Type:    domain.NotificationTypeDocument,
	}
	if err := s.notifRepo.Create(ctx, n); err != nil {
		log.Printf("notificationService.Notify: failed to persist notification for user %s: %v", userID, err)
		return
	}

	if s.sender == nil {
		return
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		log.Printf("notificationService.Notify: failed to look up user %s for email mirror: %v", userID, err)
		return
	}
	if err := s.sender.SendNotificationEmail(ctx, user.Email, user.FullName, title, message); err != nil {
		log.Printf("notificationService.Notify: email mirror failed for user %s: %v", userID, err)
	}
}

func (s *notificationService) ListByUser(ctx context.Context, userID uuid.UUID, offset, limit int) ([]domain.Notification, int, error) {
	return s.notifRepo.ListByUser(ctx, userID, offset, limit)
}

func (s *notificationService) MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error {
	return s.notifRepo.MarkRead(ctx, userID, notificationID)
}
