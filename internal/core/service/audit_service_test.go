package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/andypowell00/food-notes-ui/internal/core/domain"
)

type stubAuditRepo struct {
	insertErr error
	inserted  []*domain.AuditEvent
	lastLimit int64
}

func (r *stubAuditRepo) ListByEntry(_ context.Context, entryID int64, limit int64) ([]domain.AuditEvent, error) {
	r.lastLimit = limit
	var out []domain.AuditEvent
	for _, e := range r.inserted {
		if e.EntryID == entryID {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (r *stubAuditRepo) InsertEvent(_ context.Context, e *domain.AuditEvent) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	r.inserted = append(r.inserted, e)
	return nil
}

func TestAuditService_Record_StampsTime(t *testing.T) {
	repo := &stubAuditRepo{}
	svc := NewAuditService(repo, zerolog.Nop())

	err := svc.Record(context.Background(), domain.AuditEvent{
		Resource: "entry-symptoms",
		Action:   "create",
		EntryID:  42,
		Outcome:  domain.OutcomeSuccess,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.inserted) != 1 {
		t.Fatalf("expected 1 insert, got %d", len(repo.inserted))
	}
	if repo.inserted[0].OccurredAt.IsZero() {
		t.Fatalf("expected OccurredAt to be set")
	}
}

func TestAuditService_Record_RepoError(t *testing.T) {
	repo := &stubAuditRepo{insertErr: errors.New("mongo down")}
	svc := NewAuditService(repo, zerolog.Nop())

	err := svc.Record(context.Background(), domain.AuditEvent{Resource: "entries", Action: "create"})
	if err == nil {
		t.Fatalf("expected error")
	}
}

func TestAuditService_Record_NoRepo(t *testing.T) {
	svc := NewAuditService(nil, zerolog.Nop())
	if err := svc.Record(context.Background(), domain.AuditEvent{Resource: "entries"}); err != nil {
		t.Fatalf("expected nil without repository, got %v", err)
	}
}

func TestAuditService_History(t *testing.T) {
	repo := &stubAuditRepo{}
	svc := NewAuditService(repo, zerolog.Nop())
	ctx := context.Background()

	_ = svc.Record(ctx, domain.AuditEvent{Resource: "entry-symptoms", EntryID: 42})
	_ = svc.Record(ctx, domain.AuditEvent{Resource: "entry-symptoms", EntryID: 7})

	events, err := svc.History(ctx, 42, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 1 || events[0].EntryID != 42 {
		t.Fatalf("unexpected events: %+v", events)
	}
	if repo.lastLimit != defaultHistoryLimit {
		t.Fatalf("expected default limit %d, got %d", defaultHistoryLimit, repo.lastLimit)
	}

	if _, err := svc.History(ctx, 42, 10_000); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.lastLimit != maxHistoryLimit {
		t.Fatalf("expected limit to be capped at %d, got %d", maxHistoryLimit, repo.lastLimit)
	}

	empty, err := svc.History(ctx, 99, 5)
	if err != nil || empty == nil || len(empty) != 0 {
		t.Fatalf("expected empty non-nil slice, got %v (err %v)", empty, err)
	}
}
