package port

import "context"

// EmailSender defines the contract for mirroring notifications to email.
// Messages are plain subject/body pairs; no templating.
type EmailSender interface {
	SendNotificationEmail(ctx context.Context, toEmail, toName, title, message string) error
}
