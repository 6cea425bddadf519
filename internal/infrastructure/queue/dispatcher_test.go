package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/homekeeper/account-service/internal/core/domain"
)

type recordingAuditService struct {
	mu     sync.Mutex
	events []domain.AccountEvent
	done   chan struct{}
	want   int
}

func newRecordingAuditService(want int) *recordingAuditService {
	return &recordingAuditService{done: make(chan struct{}), want: want}
}

func (s *recordingAuditService) Process(_ context.Context, event domain.AccountEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	if len(s.events) == s.want {
		close(s.done)
	}
	return nil
}

func (s *recordingAuditService) snapshot() []domain.AccountEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.AccountEvent, len(s.events))
	copy(out, s.events)
	return out
}

func waitProcessed(t *testing.T, s *recordingAuditService) {
	t.Helper()
	select {
	case <-s.done:
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for events, got %d of %d", len(s.snapshot()), s.want)
	}
}

func TestDispatcher_ProcessesEvents(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	svc := newRecordingAuditService(3)
	d := NewDispatcher(2, svc, zerolog.Nop())
	d.Start(ctx)

	d.Record(domain.AccountEvent{Username: "ana", Action: domain.ActionRegistered})
	d.Record(domain.AccountEvent{Username: "bob", Action: domain.ActionUpdated})
	d.Record(domain.AccountEvent{Username: "ana", Action: domain.ActionDeleted})

	waitProcessed(t, svc)

	got := svc.snapshot()
	if len(got) != 3 {
		t.Fatalf("got %d events, want 3", len(got))
	}
}

func TestDispatcher_PerUserOrdering(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	const n = 50
	svc := newRecordingAuditService(n)
	d := NewDispatcher(4, svc, zerolog.Nop())
	d.Start(ctx)

	actions := []domain.AccountAction{
		domain.ActionRegistered,
		domain.ActionUpdated,
		domain.ActionDeleted,
	}
	var want []domain.AccountAction
	for i := 0; i < n; i++ {
		a := actions[i%len(actions)]
		want = append(want, a)
		d.Record(domain.AccountEvent{Username: "ana", Action: a})
	}

	waitProcessed(t, svc)

	got := svc.snapshot()
	for i, ev := range got {
		if ev.Action != want[i] {
			t.Fatalf("event %d: got action %q, want %q", i, ev.Action, want[i])
		}
	}
}

func TestDispatcher_ShardIsStablePerUsername(t *testing.T) {
	d := NewDispatcher(4, newRecordingAuditService(0), zerolog.Nop())

	first := d.shardIndex("ana")
	for i := 0; i < 10; i++ {
		if got := d.shardIndex("ana"); got != first {
			t.Fatalf("shard index changed between calls: %d vs %d", got, first)
		}
	}
}

func TestDispatcher_StopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	svc := newRecordingAuditService(1)
	d := NewDispatcher(1, svc, zerolog.Nop())
	d.Start(ctx)

	d.Record(domain.AccountEvent{Username: "ana", Action: domain.ActionRegistered})
	waitProcessed(t, svc)

	cancel()
	time.Sleep(50 * time.Millisecond)

	// Workers are gone, so the event stays queued and never reaches the service.
	d.Record(domain.AccountEvent{Username: "ana", Action: domain.ActionUpdated})
	time.Sleep(100 * time.Millisecond)
	if got := len(svc.snapshot()); got != 1 {
		t.Fatalf("expected no processing after cancel, got %d events", got)
	}
}
