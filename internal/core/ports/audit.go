package ports

import (
	"context"

	"github.com/andypowell00/food-notes-ui/internal/core/domain"
)

// AuditRepository persists audit events.
type AuditRepository interface {
	InsertEvent(ctx context.Context, event *domain.AuditEvent) error
	// ListByEntry returns at most limit events for entryID, newest first.
	ListByEntry(ctx context.Context, entryID int64, limit int64) ([]domain.AuditEvent, error)
}

// AuditService records and reads back audit events.
type AuditService interface {
	Record(ctx context.Context, event domain.AuditEvent) error
	History(ctx context.Context, entryID int64, limit int64) ([]domain.AuditEvent, error)
}
