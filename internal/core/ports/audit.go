package ports

import (
	"context"

	"github.com/homekeeper/account-service/internal/core/domain"
)

// AuditRepository persists account events into the audit trail.
type AuditRepository interface {
	InsertEvent(ctx context.Context, event *domain.AccountEvent) error
}

// AuditService consumes account events dequeued by the dispatcher workers.
type AuditService interface {
	Process(ctx context.Context, event domain.AccountEvent) error
}

// AuditRecorder is the producing side used by the user service. A nil-safe
// no-op implementation is acceptable when auditing is disabled.
type AuditRecorder interface {
	Record(event domain.AccountEvent)
}
