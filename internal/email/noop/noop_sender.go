package noop

import (
	"context"
	"log"

	"docflow/internal/port"
)

type noopSender struct{}

// NewNoopSender creates a no-op EmailSender that logs instead of sending.
func NewNoopSender() port.EmailSender {
	return &noopSender{}
}

func (s *noopSender) Send(_ context.Context, to, subject, _ string, textBody string) error {
	log.Printf("[NOOP EMAIL] to=%s subject=%q body=%q", to, subject, textBody)
	return nil
}
