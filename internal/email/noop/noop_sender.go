package noop

import (
	"context"
	"log"

	"loandocs/internal/port"
)

type noopSender struct{}

// NewNoopSender creates a no-op EmailSender that logs notifications to stdout.
func NewNoopSender() port.EmailSender {
	return &noopSender{}
}

func (s *noopSender) SendNotificationEmail(_ context.Context, toEmail, toName, title, message string) error {
	log.Printf("[NOOP EMAIL] Notification for %s (%s): %s - %s", toName, toEmail, title, message)
	return nil
}
