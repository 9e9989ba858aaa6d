package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"quiz-scoring-engine/internal/domain"
	"quiz-scoring-engine/internal/infra/memory"
)

func TestQuizRepositoryCachesInRedis(t *testing.T) {
	mr := startRedis(t)
	client := newClient(mr)

	loader := &countingLoader{
		QuizLoader: memory.NewStaticQuizLoader(map[int64]domain.Quiz{
			1: sampleQuiz(),
		}),
	}
	repo := NewQuizRepository(client, loader, time.Minute)

	quiz, err := repo.GetQuiz(context.Background(), 1)
	if err != nil {
		t.Fatalf("get quiz: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected loader called once, got %d", loader.calls)
	}
	if !mr.Exists("quiz:1:content") {
		t.Fatalf("expected quiz content to be cached")
	}
	if ttl := mr.TTL("quiz:1:content"); ttl < time.Minute || ttl > time.Minute+6*time.Second {
		t.Fatalf("unexpected cache ttl %v", ttl)
	}

	// Second call should hit cache, loader not incremented.
	cached, _ := repo.GetQuiz(context.Background(), 1)
	if loader.calls != 1 {
		t.Fatalf("expected cache hit, loader calls=%d", loader.calls)
	}
	if cached.Title != quiz.Title || len(cached.Questions) != 1 || !cached.Questions[0].Answers[1].Correct {
		t.Fatalf("cached quiz differs: %+v", cached)
	}
}

func TestQuizRepositoryReloadsAfterExpiry(t *testing.T) {
	mr := startRedis(t)
	loader := &countingLoader{
		QuizLoader: memory.NewStaticQuizLoader(map[int64]domain.Quiz{1: sampleQuiz()}),
	}
	repo := NewQuizRepository(newClient(mr), loader, time.Minute)

	_, _ = repo.GetQuiz(context.Background(), 1)
	mr.FastForward(2 * time.Minute)
	_, _ = repo.GetQuiz(context.Background(), 1)

	if loader.calls != 2 {
		t.Fatalf("expected reload after expiry, loader calls=%d", loader.calls)
	}
}

func TestQuizRepositoryUnknownQuiz(t *testing.T) {
	mr := startRedis(t)
	repo := NewQuizRepository(newClient(mr), memory.NewStaticQuizLoader(nil), time.Minute)

	if _, err := repo.GetQuiz(context.Background(), 7); !errors.Is(err, domain.ErrQuizNotFound) {
		t.Fatalf("expected ErrQuizNotFound, got %v", err)
	}
	if mr.Exists("quiz:7:content") {
		t.Fatalf("missing quizzes must not be cached")
	}
}

type countingLoader struct {
	memory.QuizLoader
	calls int
}

func (l *countingLoader) LoadQuiz(ctx context.Context, quizID int64) (domain.Quiz, error) {
	l.calls++
	return l.QuizLoader.LoadQuiz(ctx, quizID)
}

func sampleQuiz() domain.Quiz {
	return domain.Quiz{
		ID:    1,
		Title: "Arithmetic",
		Questions: []domain.Question{
			{
				ID:         1,
				Text:       "What is 2 + 2?",
				Type:       domain.SingleChoice,
				Points:     1,
				OrderIndex: 1,
				Answers: []domain.Answer{
					{ID: 1, Text: "3"},
					{ID: 2, Text: "4", Correct: true},
				},
			},
		},
	}
}

func startRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	t.Cleanup(mr.Close)
	return mr
}

func newClient(mr *miniredis.Miniredis) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
}
