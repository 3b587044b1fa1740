package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/andypowell00/food-notes-ui/internal/core/domain"
)

type recordingService struct {
	mu     sync.Mutex
	events []domain.AuditEvent
	done   chan struct{}
	want   int
}

func (s *recordingService) Record(_ context.Context, e domain.AuditEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, e)
	if len(s.events) == s.want {
		close(s.done)
	}
	return nil
}

func (s *recordingService) History(context.Context, int64, int64) ([]domain.AuditEvent, error) {
	return nil, nil
}

func TestDispatcher_PreservesPerEntryOrder(t *testing.T) {
	svc := &recordingService{done: make(chan struct{}), want: 20}
	d := NewDispatcher(3, svc, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	for i := 0; i < 20; i++ {
		if !d.Enqueue(domain.AuditEvent{Resource: "entry-symptoms", EntryID: 42, TargetID: int64(i)}) {
			t.Fatalf("enqueue %d rejected", i)
		}
	}

	select {
	case <-svc.done:
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for events")
	}

	svc.mu.Lock()
	defer svc.mu.Unlock()
	for i, e := range svc.events {
		if e.TargetID != int64(i) {
			t.Fatalf("event %d out of order: got target %d", i, e.TargetID)
		}
	}
}

func TestDispatcher_DropsWhenFull(t *testing.T) {
	svc := &recordingService{done: make(chan struct{}), want: -1}
	d := NewDispatcher(1, svc, zerolog.Nop())
	// Not started: nothing drains the channel.

	for i := 0; i < channelBuffer; i++ {
		if !d.Enqueue(domain.AuditEvent{Resource: "entries"}) {
			t.Fatalf("enqueue %d rejected before buffer was full", i)
		}
	}
	if d.Enqueue(domain.AuditEvent{Resource: "entries"}) {
		t.Fatalf("expected enqueue to drop when buffer is full")
	}
}

func TestDispatcher_ShardIndexIsStable(t *testing.T) {
	d := NewDispatcher(0, &recordingService{}, zerolog.Nop())
	if len(d.workers) != defaultWorkers {
		t.Fatalf("expected %d workers, got %d", defaultWorkers, len(d.workers))
	}
	a := d.shardIndex("entry-symptoms/42")
	for i := 0; i < 10; i++ {
		if d.shardIndex("entry-symptoms/42") != a {
			t.Fatalf("shard index changed between calls")
		}
	}
}
