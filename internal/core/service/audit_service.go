package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/andypowell00/food-notes-ui/internal/api/metrics"
	"github.com/andypowell00/food-notes-ui/internal/core/domain"
	"github.com/andypowell00/food-notes-ui/internal/core/ports"
)

type auditService struct {
	repo ports.AuditRepository
	log  zerolog.Logger
}

// NewAuditService returns an AuditService. A nil repo turns recording into
// a debug log line.
func NewAuditService(repo ports.AuditRepository, log zerolog.Logger) ports.AuditService {
	return &auditService{repo: repo, log: log}
}

// Record stores one event, stamping OccurredAt when missing.
func (s *auditService) Record(ctx context.Context, event domain.AuditEvent) error {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}

	if s.repo == nil {
		s.log.Debug().
			Str("resource", event.Resource).
			Str("action", event.Action).
			Int64("entry_id", event.EntryID).
			Str("outcome", event.Outcome).
			Msg("audit event")
		return nil
	}

	if err := s.repo.InsertEvent(ctx, &event); err != nil {
		metrics.AuditEventsTotal.WithLabelValues(event.Resource, "failed").Inc()
		return fmt.Errorf("record audit event: %w", err)
	}
	metrics.AuditEventsTotal.WithLabelValues(event.Resource, "stored").Inc()
	return nil
}

const (
	defaultHistoryLimit = 50
	maxHistoryLimit     = 500
)

// History returns the recorded mutations of one entry. Without a repository
// it returns an empty list.
func (s *auditService) History(ctx context.Context, entryID int64, limit int64) ([]domain.AuditEvent, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}
	if s.repo == nil {
		return []domain.AuditEvent{}, nil
	}
	events, err := s.repo.ListByEntry(ctx, entryID, limit)
	if err != nil {
		return nil, fmt.Errorf("audit history: %w", err)
	}
	if events == nil {
		events = []domain.AuditEvent{}
	}
	return events, nil
}
