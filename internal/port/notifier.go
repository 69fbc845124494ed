package port

import (
	"context"

	"docflow/internal/domain"
)

// Notifier informs an affected party of a committed workflow transition.
// Dispatch is best-effort: the transition it describes has already committed
// and must not be rolled back on failure.
type Notifier interface {
	Dispatch(ctx context.Context, event domain.NotificationEvent) error
}
