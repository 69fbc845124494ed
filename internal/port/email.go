package port

import "context"

// EmailSender delivers a single email. Implementations must be safe for
// concurrent use.
type EmailSender interface {
	Send(ctx context.Context, to, subject, htmlBody, textBody string) error
}
