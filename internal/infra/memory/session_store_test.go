package memory

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"quiz-scoring-engine/internal/domain"
)

func TestSessionStoreConsumeOnce(t *testing.T) {
	ctx := context.Background()
	store := NewSessionStore(time.Hour)

	session := domain.Session{ID: "s1", QuizID: 1, Nickname: "Alice", StartedAt: time.Now()}
	if err := store.Create(ctx, session); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := store.Consume(ctx, "s1")
	if err != nil {
		t.Fatalf("consume: %v", err)
	}
	if got.Nickname != "Alice" || got.QuizID != 1 {
		t.Fatalf("unexpected session: %+v", got)
	}

	if _, err := store.Consume(ctx, "s1"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected second consume to fail, got %v", err)
	}
	if store.Len() != 0 {
		t.Fatalf("expected store to be empty")
	}
}

func TestSessionStoreExpiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 11, 22, 10, 0, 0, 0, time.UTC)
	store := NewSessionStoreWithClock(time.Minute, func() time.Time { return now })

	_ = store.Create(ctx, domain.Session{ID: "old", QuizID: 1, StartedAt: now})
	now = now.Add(time.Minute)

	if _, err := store.Consume(ctx, "old"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected expired session to be rejected, got %v", err)
	}

	_ = store.Create(ctx, domain.Session{ID: "stale", QuizID: 1, StartedAt: now})
	now = now.Add(2 * time.Minute)
	_ = store.Create(ctx, domain.Session{ID: "fresh", QuizID: 1, StartedAt: now})
	if store.Len() != 1 {
		t.Fatalf("expected stale session to be evicted, have %d", store.Len())
	}
}

func TestSessionStoreConcurrentConsume(t *testing.T) {
	ctx := context.Background()
	store := NewSessionStore(0)
	_ = store.Create(ctx, domain.Session{ID: "s1", QuizID: 1, StartedAt: time.Now()})

	var wins atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := store.Consume(ctx, "s1"); err == nil {
				wins.Add(1)
			}
		}()
	}
	wg.Wait()

	if wins.Load() != 1 {
		t.Fatalf("expected exactly one consumer to win, got %d", wins.Load())
	}
}
